package report

import (
	"time"

	"gorm.io/gorm"

	"github.com/quizmaster-app/backend/internal/catalog"
	"github.com/quizmaster-app/backend/internal/quiz"
	"github.com/quizmaster-app/backend/internal/submission"
	"github.com/quizmaster-app/backend/internal/user"
)

type ReportRepository interface {
	CountUsers() (int64, error)
	CountQuizzes() (int64, error)
	SubmissionCountsByQuiz() ([]QuizSubmissionCount, error)

	SubmissionsByUser(userID uint) ([]submission.QuizSubmission, error)
	AllSubmissions() ([]submission.QuizSubmission, error)
	QuizzesDueBy(now time.Time) ([]quiz.Quiz, error)

	AllUsers() ([]user.User, error)
	AllQuizzes() ([]quiz.Quiz, error)
	AllChapters() ([]catalog.Chapter, error)
	AllSubjects() ([]catalog.Subject, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&user.User{}).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountQuizzes() (int64, error) {
	var count int64
	err := r.db.Model(&quiz.Quiz{}).Count(&count).Error
	return count, err
}

// SubmissionCountsByQuiz inner-joins quizzes to submissions, so quizzes
// without a single submission do not appear.
func (r *reportRepository) SubmissionCountsByQuiz() ([]QuizSubmissionCount, error) {
	var rows []QuizSubmissionCount
	err := r.db.Model(&submission.QuizSubmission{}).
		Select("quizzes.title AS quiz_title, COUNT(quiz_submissions.id) AS count").
		Joins("JOIN quizzes ON quizzes.id = quiz_submissions.quiz_id").
		Group("quizzes.title").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) SubmissionsByUser(userID uint) ([]submission.QuizSubmission, error) {
	var subs []submission.QuizSubmission
	err := r.db.
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *reportRepository) AllSubmissions() ([]submission.QuizSubmission, error) {
	var subs []submission.QuizSubmission
	err := r.db.Order("submitted_at ASC").Find(&subs).Error
	return subs, err
}

func (r *reportRepository) QuizzesDueBy(now time.Time) ([]quiz.Quiz, error) {
	var quizzes []quiz.Quiz
	err := r.db.Where("date_of_quiz <= ?", now).Find(&quizzes).Error
	return quizzes, err
}

func (r *reportRepository) AllUsers() ([]user.User, error) {
	var users []user.User
	err := r.db.Find(&users).Error
	return users, err
}

func (r *reportRepository) AllQuizzes() ([]quiz.Quiz, error) {
	var quizzes []quiz.Quiz
	err := r.db.Find(&quizzes).Error
	return quizzes, err
}

func (r *reportRepository) AllChapters() ([]catalog.Chapter, error) {
	var chapters []catalog.Chapter
	err := r.db.Find(&chapters).Error
	return chapters, err
}

func (r *reportRepository) AllSubjects() ([]catalog.Subject, error) {
	var subjects []catalog.Subject
	err := r.db.Find(&subjects).Error
	return subjects, err
}
