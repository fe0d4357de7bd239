package quiz

import (
	"time"

	"github.com/quizmaster-app/backend/internal/catalog"
	util "github.com/quizmaster-app/backend/internal/utils"
)

type Quiz struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ChapterID    uint      `gorm:"index;not null" json:"chapter_id"`
	Title        string    `gorm:"size:100;not null" json:"title"`
	DateOfQuiz   util.Date `gorm:"type:date" json:"date_of_quiz"`
	LastDate     util.Date `gorm:"type:date" json:"last_date"`
	TimeDuration string    `gorm:"size:10;default:'01:00'" json:"time_duration"`
	Remarks      string    `gorm:"type:text" json:"remarks"`
	NumQuestions int       `gorm:"column:num_questions;not null;default:0" json:"num_questions"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// The belongs-to completes the cascade chain: removing a chapter (or its
	// subject) takes the quizzes with it, and the quizzes take their questions.
	Chapter   catalog.Chapter `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"-"`
	Questions []Question      `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	QuizID            uint   `gorm:"index;not null" json:"quiz_id"`
	QNo               int    `gorm:"column:q_no" json:"q_no"`
	Title             string `gorm:"size:100" json:"title"`
	QuestionStatement string `gorm:"type:text;not null" json:"question_statement"`
	Option1           string `gorm:"size:255;not null" json:"option1"`
	Option2           string `gorm:"size:255;not null" json:"option2"`
	Option3           string `gorm:"size:255;not null" json:"option3"`
	Option4           string `gorm:"size:255;not null" json:"option4"`
	CorrectOption     int    `gorm:"not null" json:"correct_option"`
}
