package report

import (
	"context"
	"time"

	"github.com/quizmaster-app/backend/internal/apperror"
	"github.com/quizmaster-app/backend/internal/config"
)

type ReportService interface {
	MyReports(ctx context.Context, userID uint) ([]UserReportRow, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
	SubmissionCounts(ctx context.Context) ([]QuizSubmissionCount, error)
	QuizCompletion(ctx context.Context) (*CompletionChart, error)
	UserDetails(ctx context.Context) ([]UserDetailRow, error)
	QuizData(ctx context.Context) ([]QuizDataRow, error)
}

type reportService struct {
	repo ReportRepository
}

func NewService(repo ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) loadCatalogIndex() (catalogIndex, error) {
	quizzes, err := s.repo.AllQuizzes()
	if err != nil {
		return catalogIndex{}, err
	}
	chapters, err := s.repo.AllChapters()
	if err != nil {
		return catalogIndex{}, err
	}
	subjects, err := s.repo.AllSubjects()
	if err != nil {
		return catalogIndex{}, err
	}
	return indexCatalog(quizzes, chapters, subjects), nil
}

func (s *reportService) MyReports(ctx context.Context, userID uint) ([]UserReportRow, error) {
	log := config.WithContext(ctx)

	subs, err := s.repo.SubmissionsByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to load user submissions")
		return nil, apperror.Internal("Failed to fetch reports", err)
	}

	idx, err := s.loadCatalogIndex()
	if err != nil {
		log.WithError(err).Error("Failed to load catalog for reports")
		return nil, apperror.Internal("Failed to fetch reports", err)
	}
	return buildUserReports(subs, idx), nil
}

func (s *reportService) AdminStats(ctx context.Context) (*AdminStats, error) {
	log := config.WithContext(ctx)

	totalUsers, err := s.repo.CountUsers()
	if err != nil {
		log.WithError(err).Error("Failed to count users")
		return nil, apperror.Internal("Failed to fetch stats", err)
	}
	totalQuizzes, err := s.repo.CountQuizzes()
	if err != nil {
		log.WithError(err).Error("Failed to count quizzes")
		return nil, apperror.Internal("Failed to fetch stats", err)
	}
	subs, err := s.repo.AllSubmissions()
	if err != nil {
		log.WithError(err).Error("Failed to load submissions")
		return nil, apperror.Internal("Failed to fetch stats", err)
	}

	stats := computeAdminStats(totalUsers, totalQuizzes, subs)
	return &stats, nil
}

func (s *reportService) SubmissionCounts(ctx context.Context) ([]QuizSubmissionCount, error) {
	log := config.WithContext(ctx)

	rows, err := s.repo.SubmissionCountsByQuiz()
	if err != nil {
		log.WithError(err).Error("Failed to count submissions per quiz")
		return nil, apperror.Internal("Failed to fetch submission counts", err)
	}
	if rows == nil {
		rows = []QuizSubmissionCount{}
	}
	return rows, nil
}

func (s *reportService) QuizCompletion(ctx context.Context) (*CompletionChart, error) {
	log := config.WithContext(ctx)

	due, err := s.repo.QuizzesDueBy(time.Now())
	if err != nil {
		log.WithError(err).Error("Failed to load due quizzes")
		return nil, apperror.Internal("Failed to fetch quiz completion", err)
	}
	subs, err := s.repo.AllSubmissions()
	if err != nil {
		log.WithError(err).Error("Failed to load submissions")
		return nil, apperror.Internal("Failed to fetch quiz completion", err)
	}

	chart := buildCompletionChart(due, subs)
	return &chart, nil
}

func (s *reportService) UserDetails(ctx context.Context) ([]UserDetailRow, error) {
	log := config.WithContext(ctx)

	subs, err := s.repo.AllSubmissions()
	if err != nil {
		log.WithError(err).Error("Failed to load submissions")
		return nil, apperror.Internal("Failed to fetch user details", err)
	}
	users, err := s.repo.AllUsers()
	if err != nil {
		log.WithError(err).Error("Failed to load users")
		return nil, apperror.Internal("Failed to fetch user details", err)
	}
	idx, err := s.loadCatalogIndex()
	if err != nil {
		log.WithError(err).Error("Failed to load catalog for user details")
		return nil, apperror.Internal("Failed to fetch user details", err)
	}
	return buildUserDetails(subs, users, idx), nil
}

func (s *reportService) QuizData(ctx context.Context) ([]QuizDataRow, error) {
	log := config.WithContext(ctx)

	subs, err := s.repo.AllSubmissions()
	if err != nil {
		log.WithError(err).Error("Failed to load submissions")
		return nil, apperror.Internal("Failed to fetch quiz data", err)
	}
	users, err := s.repo.AllUsers()
	if err != nil {
		log.WithError(err).Error("Failed to load users")
		return nil, apperror.Internal("Failed to fetch quiz data", err)
	}
	idx, err := s.loadCatalogIndex()
	if err != nil {
		log.WithError(err).Error("Failed to load catalog for quiz data")
		return nil, apperror.Internal("Failed to fetch quiz data", err)
	}
	return buildQuizData(subs, users, idx), nil
}
