package quiz

import (
	"errors"

	"gorm.io/gorm"
)

type QuizRepository interface {
	CreateQuiz(q *Quiz) error
	FindQuizByID(id uint) (*Quiz, error)
	FindAllQuizzes() ([]Quiz, error)
	FindQuizzesByChapter(chapterID uint) ([]Quiz, error)
	UpdateQuiz(q *Quiz) error
	DeleteQuiz(id uint) error
	ChapterExists(id uint) (bool, error)

	CreateQuestion(q *Question) error
	FindQuestionByID(id uint) (*Question, error)
	FindQuestionsByQuiz(quizID uint) ([]Question, error)
	UpdateQuestion(q *Question) error
	DeleteQuestion(id uint) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

// CreateQuiz inserts the quiz and bumps the owning chapter's quiz counter in
// one transaction so the denormalized count never drifts from the insert.
func (r *quizRepository) CreateQuiz(q *Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		return tx.Table("chapters").
			Where("id = ?", q.ChapterID).
			UpdateColumn("n_quizzes", gorm.Expr("n_quizzes + 1")).Error
	})
}

func (r *quizRepository) FindQuizByID(id uint) (*Quiz, error) {
	var quiz Quiz
	if err := r.db.First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindAllQuizzes() ([]Quiz, error) {
	var quizzes []Quiz
	if err := r.db.Order("id ASC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) FindQuizzesByChapter(chapterID uint) ([]Quiz, error) {
	var quizzes []Quiz
	if err := r.db.
		Where("chapter_id = ?", chapterID).
		Order("id ASC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) UpdateQuiz(q *Quiz) error {
	// Omit CreatedAt so an update can never rewrite the creation stamp.
	return r.db.Model(q).
		Omit("created_at").
		Select("chapter_id", "title", "date_of_quiz", "last_date", "time_duration", "remarks").
		Updates(q).Error
}

// DeleteQuiz removes the quiz (questions cascade via FK) and adjusts the
// chapter counters. The chapter's question count is zeroed rather than
// decremented, matching the behavior reports and the repair path expect;
// RecountChapter restores the true value.
func (r *quizRepository) DeleteQuiz(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var quiz Quiz
		if err := tx.First(&quiz, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Quiz{}, "id = ?", id).Error; err != nil {
			return err
		}
		return quizDeleteCounterUpdate(tx, quiz.ChapterID).Error
	})
}

// quizDeleteCounterUpdate adjusts the chapter counters after a quiz delete.
// Both the decrement and the zeroing apply only while n_quizzes is positive;
// a chapter whose quiz counter already drifted to zero is left untouched.
func quizDeleteCounterUpdate(tx *gorm.DB, chapterID uint) *gorm.DB {
	return tx.Table("chapters").
		Where("id = ? AND n_quizzes > 0", chapterID).
		UpdateColumns(map[string]interface{}{
			"n_quizzes":   gorm.Expr("n_quizzes - 1"),
			"n_questions": 0,
		})
}

func (r *quizRepository) ChapterExists(id uint) (bool, error) {
	var count int64
	if err := r.db.Table("chapters").Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateQuestion inserts the question and bumps both denormalized counters,
// quiz.num_questions and chapter.n_questions, in the same transaction.
func (r *quizRepository) CreateQuestion(q *Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var quiz Quiz
		if err := tx.First(&quiz, "id = ?", q.QuizID).Error; err != nil {
			return err
		}
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		if err := tx.Table("quizzes").
			Where("id = ?", q.QuizID).
			UpdateColumn("num_questions", gorm.Expr("num_questions + 1")).Error; err != nil {
			return err
		}
		return tx.Table("chapters").
			Where("id = ?", quiz.ChapterID).
			UpdateColumn("n_questions", gorm.Expr("n_questions + 1")).Error
	})
}

func (r *quizRepository) FindQuestionByID(id uint) (*Question, error) {
	var question Question
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *quizRepository) FindQuestionsByQuiz(quizID uint) ([]Question, error) {
	var questions []Question
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) UpdateQuestion(q *Question) error {
	return r.db.Save(q).Error
}

// DeleteQuestion removes the question and decrements both counters, floored
// at zero.
func (r *quizRepository) DeleteQuestion(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var question Question
		if err := tx.First(&question, "id = ?", id).Error; err != nil {
			return err
		}
		var quiz Quiz
		if err := tx.First(&quiz, "id = ?", question.QuizID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Question{}, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Table("quizzes").
			Where("id = ?", question.QuizID).
			UpdateColumn("num_questions", gorm.Expr("GREATEST(num_questions - 1, 0)")).Error; err != nil {
			return err
		}
		return tx.Table("chapters").
			Where("id = ?", quiz.ChapterID).
			UpdateColumn("n_questions", gorm.Expr("GREATEST(n_questions - 1, 0)")).Error
	})
}
