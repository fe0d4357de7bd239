package notifier

import (
	"time"

	"gorm.io/gorm"

	"github.com/quizmaster-app/backend/internal/quiz"
	"github.com/quizmaster-app/backend/internal/submission"
	"github.com/quizmaster-app/backend/internal/user"
)

type NotifierRepository interface {
	ActiveUsers() ([]user.User, error)
	CountQuizzesCreatedSince(since time.Time) (int64, error)
	SubmissionsBetween(userID uint, start, end time.Time) ([]submission.QuizSubmission, error)
}

type notifierRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) NotifierRepository {
	return &notifierRepository{db: db}
}

func (r *notifierRepository) ActiveUsers() ([]user.User, error) {
	var users []user.User
	err := r.db.Where("status = ?", user.StatusActive).Find(&users).Error
	return users, err
}

func (r *notifierRepository) CountQuizzesCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&quiz.Quiz{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *notifierRepository) SubmissionsBetween(userID uint, start, end time.Time) ([]submission.QuizSubmission, error) {
	var subs []submission.QuizSubmission
	err := r.db.
		Where("user_id = ? AND submitted_at >= ? AND submitted_at < ?", userID, start, end).
		Find(&subs).Error
	return subs, err
}
