package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizmaster-app/backend/internal/apperror"
	"github.com/quizmaster-app/backend/internal/cache"
)

type fakeQuizRepo struct {
	quizzes   map[uint]*Quiz
	questions map[uint]*Question
	chapters  map[uint]bool
	nextID    uint

	questionListCalls int
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{
		quizzes:   make(map[uint]*Quiz),
		questions: make(map[uint]*Question),
		chapters:  make(map[uint]bool),
		nextID:    1,
	}
}

func (f *fakeQuizRepo) CreateQuiz(q *Quiz) error {
	q.ID = f.nextID
	f.nextID++
	f.quizzes[q.ID] = q
	return nil
}

func (f *fakeQuizRepo) FindQuizByID(id uint) (*Quiz, error) {
	return f.quizzes[id], nil
}

func (f *fakeQuizRepo) FindAllQuizzes() ([]Quiz, error) {
	out := make([]Quiz, 0, len(f.quizzes))
	for id := uint(1); id < f.nextID; id++ {
		if q, ok := f.quizzes[id]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuizRepo) FindQuizzesByChapter(chapterID uint) ([]Quiz, error) {
	out := make([]Quiz, 0)
	for id := uint(1); id < f.nextID; id++ {
		if q, ok := f.quizzes[id]; ok && q.ChapterID == chapterID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuizRepo) UpdateQuiz(q *Quiz) error {
	f.quizzes[q.ID] = q
	return nil
}

func (f *fakeQuizRepo) DeleteQuiz(id uint) error {
	delete(f.quizzes, id)
	for qid, q := range f.questions {
		if q.QuizID == id {
			delete(f.questions, qid)
		}
	}
	return nil
}

func (f *fakeQuizRepo) ChapterExists(id uint) (bool, error) {
	return f.chapters[id], nil
}

func (f *fakeQuizRepo) CreateQuestion(q *Question) error {
	q.ID = f.nextID
	f.nextID++
	f.questions[q.ID] = q
	if quiz, ok := f.quizzes[q.QuizID]; ok {
		quiz.NumQuestions++
	}
	return nil
}

func (f *fakeQuizRepo) FindQuestionByID(id uint) (*Question, error) {
	return f.questions[id], nil
}

func (f *fakeQuizRepo) FindQuestionsByQuiz(quizID uint) ([]Question, error) {
	f.questionListCalls++
	out := make([]Question, 0)
	for id := uint(1); id < f.nextID; id++ {
		if q, ok := f.questions[id]; ok && q.QuizID == quizID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuizRepo) UpdateQuestion(q *Question) error {
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuizRepo) DeleteQuestion(id uint) error {
	q, ok := f.questions[id]
	if ok {
		if quiz, found := f.quizzes[q.QuizID]; found && quiz.NumQuestions > 0 {
			quiz.NumQuestions--
		}
	}
	delete(f.questions, id)
	return nil
}

func newQuizFixture(t *testing.T) (*fakeQuizRepo, QuizService) {
	t.Helper()
	repo := newFakeQuizRepo()
	repo.chapters[1] = true
	return repo, NewService(repo, cache.NewMemoryStore())
}

func validQuestion(quizID uint, correct int) QuestionPayload {
	return QuestionPayload{
		QuizID:            quizID,
		QuestionStatement: "What is 2+2?",
		Option1:           "3",
		Option2:           "4",
		Option3:           "5",
		Option4:           "6",
		CorrectOption:     correct,
	}
}

func TestCreateQuizValidation(t *testing.T) {
	ctx := context.Background()
	_, svc := newQuizFixture(t)

	_, err := svc.CreateQuiz(ctx, QuizPayload{ChapterID: 1})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.CreateQuiz(ctx, QuizPayload{Title: "Algebra Basics"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.CreateQuiz(ctx, QuizPayload{Title: "Algebra Basics", ChapterID: 99})
	require.Error(t, err)
	assert.Equal(t, "Given chapter not found", err.Error())

	_, err = svc.CreateQuiz(ctx, QuizPayload{Title: "Algebra Basics", ChapterID: 1, TimeDuration: "90 minutes"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.CreateQuiz(ctx, QuizPayload{Title: "Algebra Basics", ChapterID: 1, TimeDuration: "25:00"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreateQuizDefaults(t *testing.T) {
	ctx := context.Background()
	_, svc := newQuizFixture(t)

	quiz, err := svc.CreateQuiz(ctx, QuizPayload{Title: "Algebra Basics", ChapterID: 1})
	require.NoError(t, err)

	assert.Equal(t, "01:00", quiz.TimeDuration)
	assert.NotEmpty(t, quiz.DateOfQuiz, "date_of_quiz defaults to today")
	assert.NotEmpty(t, quiz.LastDate, "last_date defaults to today")
}

func TestUpdateQuizPartial(t *testing.T) {
	ctx := context.Background()
	_, svc := newQuizFixture(t)

	created, err := svc.CreateQuiz(ctx, QuizPayload{
		Title:        "Algebra Basics",
		ChapterID:    1,
		TimeDuration: "00:30",
		DateOfQuiz:   "2026-09-01",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateQuiz(ctx, created.ID, QuizPayload{Remarks: "Closed book"})
	require.NoError(t, err)

	assert.Equal(t, "Algebra Basics", updated.Title)
	assert.Equal(t, "00:30", updated.TimeDuration)
	assert.Equal(t, "2026-09-01", updated.DateOfQuiz)
	assert.Equal(t, "Closed book", updated.Remarks)
}

func TestQuestionValidation(t *testing.T) {
	ctx := context.Background()
	_, svc := newQuizFixture(t)

	quiz, err := svc.CreateQuiz(ctx, QuizPayload{Title: "Algebra Basics", ChapterID: 1})
	require.NoError(t, err)

	payload := validQuestion(quiz.ID, 2)
	payload.Option3 = ""
	_, err = svc.CreateQuestion(ctx, payload)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	payload = validQuestion(quiz.ID, 0)
	_, err = svc.CreateQuestion(ctx, payload)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	payload = validQuestion(quiz.ID, 5)
	_, err = svc.CreateQuestion(ctx, payload)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	payload = validQuestion(99, 2)
	_, err = svc.CreateQuestion(ctx, payload)
	require.Error(t, err)
	assert.Equal(t, "Given quiz not found", err.Error())

	_, err = svc.CreateQuestion(ctx, validQuestion(quiz.ID, 2))
	assert.NoError(t, err)
}

func TestQuestionListingCachesForNonAdmin(t *testing.T) {
	ctx := context.Background()
	repo, svc := newQuizFixture(t)

	quiz, err := svc.CreateQuiz(ctx, QuizPayload{Title: "Algebra Basics", ChapterID: 1})
	require.NoError(t, err)
	_, err = svc.CreateQuestion(ctx, validQuestion(quiz.ID, 3))
	require.NoError(t, err)

	first, err := svc.ListQuestions(ctx, false, quiz.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 3, first[0].CorrectOption, "primary listing returns the stored value")

	second, err := svc.ListQuestions(ctx, false, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.questionListCalls, "second read should be a cache hit")
}

func TestQuestionListingAdminBypassesCache(t *testing.T) {
	ctx := context.Background()
	repo, svc := newQuizFixture(t)

	quiz, err := svc.CreateQuiz(ctx, QuizPayload{Title: "Algebra Basics", ChapterID: 1})
	require.NoError(t, err)
	_, err = svc.CreateQuestion(ctx, validQuestion(quiz.ID, 1))
	require.NoError(t, err)

	_, err = svc.ListQuestions(ctx, true, quiz.ID)
	require.NoError(t, err)
	_, err = svc.ListQuestions(ctx, true, quiz.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.questionListCalls)
}

func TestQuizQuestionListingShiftsCorrectOption(t *testing.T) {
	ctx := context.Background()
	_, svc := newQuizFixture(t)

	quiz, err := svc.CreateQuiz(ctx, QuizPayload{Title: "Algebra Basics", ChapterID: 1})
	require.NoError(t, err)
	_, err = svc.CreateQuestion(ctx, validQuestion(quiz.ID, 2))
	require.NoError(t, err)

	questions, err := svc.ListQuizQuestions(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 3, questions[0].CorrectOption)
}

func TestQuizQuestionListingMissingQuiz(t *testing.T) {
	ctx := context.Background()
	_, svc := newQuizFixture(t)

	_, err := svc.ListQuizQuestions(ctx, 42)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteQuizMissing(t *testing.T) {
	ctx := context.Background()
	_, svc := newQuizFixture(t)

	err := svc.DeleteQuiz(ctx, 42)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteQuestionAdjustsQuizCount(t *testing.T) {
	ctx := context.Background()
	repo, svc := newQuizFixture(t)

	quiz, err := svc.CreateQuiz(ctx, QuizPayload{Title: "Algebra Basics", ChapterID: 1})
	require.NoError(t, err)
	question, err := svc.CreateQuestion(ctx, validQuestion(quiz.ID, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.quizzes[quiz.ID].NumQuestions)

	require.NoError(t, svc.DeleteQuestion(ctx, question.ID))
	assert.Equal(t, 0, repo.quizzes[quiz.ID].NumQuestions)
}
