package quiz

import (
	"context"
	"strings"
	"time"

	"github.com/quizmaster-app/backend/internal/apperror"
	"github.com/quizmaster-app/backend/internal/cache"
	"github.com/quizmaster-app/backend/internal/config"
	util "github.com/quizmaster-app/backend/internal/utils"
)

type QuizService interface {
	ListQuizzes(ctx context.Context, chapterID *uint) ([]QuizJSON, error)
	GetQuiz(ctx context.Context, id uint) (*QuizJSON, error)
	CreateQuiz(ctx context.Context, payload QuizPayload) (*QuizJSON, error)
	UpdateQuiz(ctx context.Context, id uint, payload QuizPayload) (*QuizJSON, error)
	DeleteQuiz(ctx context.Context, id uint) error

	ListQuestions(ctx context.Context, isAdmin bool, quizID uint) ([]QuestionJSON, error)
	ListQuizQuestions(ctx context.Context, quizID uint) ([]QuestionJSON, error)
	CreateQuestion(ctx context.Context, payload QuestionPayload) (*Question, error)
	UpdateQuestion(ctx context.Context, id uint, payload QuestionPayload) (*Question, error)
	DeleteQuestion(ctx context.Context, id uint) error
}

type quizService struct {
	repo  QuizRepository
	cache cache.Store
}

func NewService(repo QuizRepository, store cache.Store) QuizService {
	return &quizService{repo: repo, cache: store}
}

func parseQuizDate(raw string) (util.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return util.Today(), nil
	}
	return util.ParseDate(raw)
}

func quizJSON(q *Quiz) *QuizJSON {
	return &QuizJSON{
		ID:           q.ID,
		ChapterID:    q.ChapterID,
		Title:        q.Title,
		DateOfQuiz:   q.DateOfQuiz.String(),
		LastDate:     q.LastDate.String(),
		TimeDuration: q.TimeDuration,
		Remarks:      q.Remarks,
		NumQuestions: q.NumQuestions,
		CreatedAt:    q.CreatedAt.Format(time.RFC3339),
	}
}

func questionJSON(q Question) QuestionJSON {
	return QuestionJSON{
		ID:                q.ID,
		QuizID:            q.QuizID,
		QNo:               q.QNo,
		Title:             q.Title,
		QuestionStatement: q.QuestionStatement,
		Option1:           q.Option1,
		Option2:           q.Option2,
		Option3:           q.Option3,
		Option4:           q.Option4,
		CorrectOption:     q.CorrectOption,
	}
}

func (s *quizService) ListQuizzes(ctx context.Context, chapterID *uint) ([]QuizJSON, error) {
	log := config.WithContext(ctx)

	var (
		quizzes []Quiz
		err     error
	)
	if chapterID != nil {
		quizzes, err = s.repo.FindQuizzesByChapter(*chapterID)
	} else {
		quizzes, err = s.repo.FindAllQuizzes()
	}
	if err != nil {
		log.WithError(err).Error("Failed to list quizzes")
		return nil, apperror.Internal("Failed to fetch quizzes", err)
	}

	out := make([]QuizJSON, 0, len(quizzes))
	for i := range quizzes {
		out = append(out, *quizJSON(&quizzes[i]))
	}
	return out, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id uint) (*QuizJSON, error) {
	log := config.WithContext(ctx)

	quiz, err := s.repo.FindQuizByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz")
		return nil, apperror.Internal("Failed to fetch quiz", err)
	}
	if quiz == nil {
		return nil, apperror.NotFound("Quiz not found")
	}
	return quizJSON(quiz), nil
}

func (s *quizService) CreateQuiz(ctx context.Context, payload QuizPayload) (*QuizJSON, error) {
	log := config.WithContext(ctx)

	title := strings.TrimSpace(payload.Title)
	if title == "" || payload.ChapterID == 0 {
		return nil, apperror.Validation("Title & Chapter are required fields")
	}

	exists, err := s.repo.ChapterExists(payload.ChapterID)
	if err != nil {
		log.WithError(err).Error("Failed to check chapter")
		return nil, apperror.Internal("Failed to create quiz", err)
	}
	if !exists {
		return nil, apperror.Validation("Given chapter not found")
	}

	duration := strings.TrimSpace(payload.TimeDuration)
	if duration == "" {
		duration = "01:00"
	}
	if _, _, err := util.ParseClock(duration); err != nil {
		return nil, apperror.Validation("Time duration must be in HH:MM format")
	}

	dateOfQuiz, err := parseQuizDate(payload.DateOfQuiz)
	if err != nil {
		return nil, apperror.Validation("Invalid date_of_quiz, expected YYYY-MM-DD")
	}
	lastDate, err := parseQuizDate(payload.LastDate)
	if err != nil {
		return nil, apperror.Validation("Invalid last_date, expected YYYY-MM-DD")
	}

	quiz := &Quiz{
		ChapterID:    payload.ChapterID,
		Title:        title,
		DateOfQuiz:   dateOfQuiz,
		LastDate:     lastDate,
		TimeDuration: duration,
		Remarks:      strings.TrimSpace(payload.Remarks),
	}
	if err := s.repo.CreateQuiz(quiz); err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, apperror.Internal("Failed to create quiz", err)
	}

	log.WithField("quiz_id", quiz.ID).Info("Quiz created")
	return quizJSON(quiz), nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, id uint, payload QuizPayload) (*QuizJSON, error) {
	log := config.WithContext(ctx)

	quiz, err := s.repo.FindQuizByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz")
		return nil, apperror.Internal("Failed to update quiz", err)
	}
	if quiz == nil {
		return nil, apperror.NotFound("Quiz not found")
	}

	if payload.Title != "" {
		quiz.Title = strings.TrimSpace(payload.Title)
	}
	if payload.ChapterID != 0 {
		exists, err := s.repo.ChapterExists(payload.ChapterID)
		if err != nil {
			log.WithError(err).Error("Failed to check chapter")
			return nil, apperror.Internal("Failed to update quiz", err)
		}
		if !exists {
			return nil, apperror.Validation("Given chapter not found")
		}
		quiz.ChapterID = payload.ChapterID
	}
	if payload.TimeDuration != "" {
		duration := strings.TrimSpace(payload.TimeDuration)
		if _, _, err := util.ParseClock(duration); err != nil {
			return nil, apperror.Validation("Time duration must be in HH:MM format")
		}
		quiz.TimeDuration = duration
	}
	if payload.DateOfQuiz != "" {
		d, err := util.ParseDate(payload.DateOfQuiz)
		if err != nil {
			return nil, apperror.Validation("Invalid date_of_quiz, expected YYYY-MM-DD")
		}
		quiz.DateOfQuiz = d
	}
	if payload.LastDate != "" {
		d, err := util.ParseDate(payload.LastDate)
		if err != nil {
			return nil, apperror.Validation("Invalid last_date, expected YYYY-MM-DD")
		}
		quiz.LastDate = d
	}
	if payload.Remarks != "" {
		quiz.Remarks = strings.TrimSpace(payload.Remarks)
	}

	if err := s.repo.UpdateQuiz(quiz); err != nil {
		log.WithError(err).Error("Failed to update quiz")
		return nil, apperror.Internal("Failed to update quiz", err)
	}
	return quizJSON(quiz), nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, id uint) error {
	log := config.WithContext(ctx)

	quiz, err := s.repo.FindQuizByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz")
		return apperror.Internal("Failed to delete quiz", err)
	}
	if quiz == nil {
		return apperror.NotFound("Quiz not found")
	}

	if err := s.repo.DeleteQuiz(id); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return apperror.Internal("Failed to delete quiz", err)
	}

	// The questions_<id> cache entry is left to expire on its own; the
	// listing endpoints tolerate a short window of stale reads.
	log.WithField("quiz_id", id).Info("Quiz deleted")
	return nil
}

// ListQuestions serves the primary question listing. Non-admin reads go
// through the per-quiz cache; entries expire by TTL only, question writes do
// not invalidate them.
func (s *quizService) ListQuestions(ctx context.Context, isAdmin bool, quizID uint) ([]QuestionJSON, error) {
	log := config.WithContext(ctx)

	key := cache.QuestionsByQuizKey(quizID)
	if !isAdmin {
		var cached []QuestionJSON
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.WithError(err).Warn("Question cache read failed, falling back to database")
		} else if hit {
			return cached, nil
		}
	}

	questions, err := s.repo.FindQuestionsByQuiz(quizID)
	if err != nil {
		log.WithError(err).Error("Failed to list questions")
		return nil, apperror.Internal("Failed to fetch questions", err)
	}

	out := make([]QuestionJSON, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionJSON(q))
	}

	if !isAdmin {
		if err := s.cache.Set(ctx, key, out, cache.CatalogTTL); err != nil {
			log.WithError(err).Warn("Question cache write failed")
		}
	}
	return out, nil
}

// ListQuizQuestions is the quiz-taking variant of the listing. It shifts
// correct_option up by one and never touches the cache.
func (s *quizService) ListQuizQuestions(ctx context.Context, quizID uint) ([]QuestionJSON, error) {
	log := config.WithContext(ctx)

	quiz, err := s.repo.FindQuizByID(quizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz")
		return nil, apperror.Internal("Failed to fetch questions", err)
	}
	if quiz == nil {
		return nil, apperror.NotFound("Quiz not found")
	}

	questions, err := s.repo.FindQuestionsByQuiz(quizID)
	if err != nil {
		log.WithError(err).Error("Failed to list questions")
		return nil, apperror.Internal("Failed to fetch questions", err)
	}

	out := make([]QuestionJSON, 0, len(questions))
	for _, q := range questions {
		j := questionJSON(q)
		j.CorrectOption = q.CorrectOption + 1
		out = append(out, j)
	}
	return out, nil
}

func validateQuestion(payload QuestionPayload) error {
	if strings.TrimSpace(payload.QuestionStatement) == "" {
		return apperror.Validation("Question statement is required")
	}
	options := []string{payload.Option1, payload.Option2, payload.Option3, payload.Option4}
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return apperror.Validation("All four options are required")
		}
	}
	if payload.CorrectOption < 1 || payload.CorrectOption > 4 {
		return apperror.Validation("Correct option must be between 1 and 4")
	}
	return nil
}

func (s *quizService) CreateQuestion(ctx context.Context, payload QuestionPayload) (*Question, error) {
	log := config.WithContext(ctx)

	if payload.QuizID == 0 {
		return nil, apperror.Validation("Quiz id is a required field")
	}
	if err := validateQuestion(payload); err != nil {
		return nil, err
	}

	quiz, err := s.repo.FindQuizByID(payload.QuizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz")
		return nil, apperror.Internal("Failed to create question", err)
	}
	if quiz == nil {
		return nil, apperror.Validation("Given quiz not found")
	}

	question := &Question{
		QuizID:            payload.QuizID,
		QNo:               payload.QNo,
		Title:             strings.TrimSpace(payload.Title),
		QuestionStatement: strings.TrimSpace(payload.QuestionStatement),
		Option1:           strings.TrimSpace(payload.Option1),
		Option2:           strings.TrimSpace(payload.Option2),
		Option3:           strings.TrimSpace(payload.Option3),
		Option4:           strings.TrimSpace(payload.Option4),
		CorrectOption:     payload.CorrectOption,
	}
	if err := s.repo.CreateQuestion(question); err != nil {
		log.WithError(err).Error("Failed to create question")
		return nil, apperror.Internal("Failed to create question", err)
	}

	log.WithField("question_id", question.ID).Info("Question created")
	return question, nil
}

func (s *quizService) UpdateQuestion(ctx context.Context, id uint, payload QuestionPayload) (*Question, error) {
	log := config.WithContext(ctx)

	question, err := s.repo.FindQuestionByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to load question")
		return nil, apperror.Internal("Failed to update question", err)
	}
	if question == nil {
		return nil, apperror.NotFound("Question not found")
	}

	if payload.QuestionStatement != "" {
		question.QuestionStatement = strings.TrimSpace(payload.QuestionStatement)
	}
	if payload.Title != "" {
		question.Title = strings.TrimSpace(payload.Title)
	}
	if payload.QNo != 0 {
		question.QNo = payload.QNo
	}
	if payload.Option1 != "" {
		question.Option1 = strings.TrimSpace(payload.Option1)
	}
	if payload.Option2 != "" {
		question.Option2 = strings.TrimSpace(payload.Option2)
	}
	if payload.Option3 != "" {
		question.Option3 = strings.TrimSpace(payload.Option3)
	}
	if payload.Option4 != "" {
		question.Option4 = strings.TrimSpace(payload.Option4)
	}
	if payload.CorrectOption != 0 {
		if payload.CorrectOption < 1 || payload.CorrectOption > 4 {
			return nil, apperror.Validation("Correct option must be between 1 and 4")
		}
		question.CorrectOption = payload.CorrectOption
	}

	if err := s.repo.UpdateQuestion(question); err != nil {
		log.WithError(err).Error("Failed to update question")
		return nil, apperror.Internal("Failed to update question", err)
	}
	return question, nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, id uint) error {
	log := config.WithContext(ctx)

	question, err := s.repo.FindQuestionByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to load question")
		return apperror.Internal("Failed to delete question", err)
	}
	if question == nil {
		return apperror.NotFound("Question not found")
	}

	if err := s.repo.DeleteQuestion(id); err != nil {
		log.WithError(err).Error("Failed to delete question")
		return apperror.Internal("Failed to delete question", err)
	}

	log.WithField("question_id", id).Info("Question deleted")
	return nil
}
