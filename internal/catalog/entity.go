package catalog

// Subject and Chapter form the upper half of the catalog hierarchy. The
// denormalized chapter counters are maintained by the quiz package's write
// transactions and are re-derivable through RecountChapter.

type Subject struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Chapters    []Chapter `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
}

type Chapter struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	SubjectID   uint   `gorm:"index;not null" json:"subject_id"`
	NQuestions  int    `gorm:"column:n_questions;not null;default:0" json:"n_questions"`
	NQuizzes    int    `gorm:"column:n_quizzes;not null;default:0" json:"n_quizzes"`
}
