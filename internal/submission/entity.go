package submission

import (
	"time"

	"gorm.io/datatypes"
)

// QuizSubmission is an immutable grading record. Answers holds the graded
// per-question breakdown as a JSON array.
type QuizSubmission struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	QuizID         uint           `gorm:"index;not null" json:"quiz_id"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	Score          int            `gorm:"not null" json:"score"`
	TotalQuestions int            `gorm:"not null" json:"total_questions"`
	SubmittedAt    time.Time      `gorm:"autoCreateTime" json:"submitted_at"`
	Answers        datatypes.JSON `gorm:"type:jsonb" json:"answers"`
}

// SubmittedAnswer is one element of the Answers array.
type SubmittedAnswer struct {
	QuestionID     uint `json:"question_id"`
	SelectedOption int  `json:"selected_option"`
	IsCorrect      bool `json:"is_correct"`
}
