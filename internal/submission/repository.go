package submission

import (
	"errors"

	"gorm.io/gorm"

	"github.com/quizmaster-app/backend/internal/quiz"
)

type SubmissionRepository interface {
	FindQuizByID(id uint) (*quiz.Quiz, error)
	FindQuestionsByQuiz(quizID uint) ([]quiz.Question, error)
	CreateSubmission(s *QuizSubmission) error
	FindAll(quizID *uint) ([]QuizSubmission, error)
	FindByUser(userID uint, quizID *uint) ([]QuizSubmission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) FindQuizByID(id uint) (*quiz.Quiz, error) {
	var q quiz.Quiz
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *submissionRepository) FindQuestionsByQuiz(quizID uint) ([]quiz.Question, error) {
	var questions []quiz.Question
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *submissionRepository) CreateSubmission(s *QuizSubmission) error {
	return r.db.Create(s).Error
}

func (r *submissionRepository) FindAll(quizID *uint) ([]QuizSubmission, error) {
	q := r.db.Order("submitted_at DESC")
	if quizID != nil {
		q = q.Where("quiz_id = ?", *quizID)
	}
	var subs []QuizSubmission
	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepository) FindByUser(userID uint, quizID *uint) ([]QuizSubmission, error) {
	q := r.db.Where("user_id = ?", userID).Order("submitted_at DESC")
	if quizID != nil {
		q = q.Where("quiz_id = ?", *quizID)
	}
	var subs []QuizSubmission
	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
