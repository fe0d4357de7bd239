package notifier

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizmaster-app/backend/internal/submission"
	"github.com/quizmaster-app/backend/internal/user"
)

type fakeNotifierRepo struct {
	users       []user.User
	newQuizzes  int64
	submissions map[uint][]submission.QuizSubmission
}

func (f *fakeNotifierRepo) ActiveUsers() ([]user.User, error) {
	return f.users, nil
}

func (f *fakeNotifierRepo) CountQuizzesCreatedSince(since time.Time) (int64, error) {
	return f.newQuizzes, nil
}

func (f *fakeNotifierRepo) SubmissionsBetween(userID uint, start, end time.Time) ([]submission.QuizSubmission, error) {
	return f.submissions[userID], nil
}

type fakeMailer struct {
	failures int
	sent     []string
	attempts int
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.attempts++
	if f.attempts <= f.failures {
		return errors.New("smtp timeout")
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestScheduler(repo *fakeNotifierRepo, mailer *fakeMailer) *Scheduler {
	s := NewScheduler(repo, mailer)
	s.retryDelay = 0
	return s
}

func TestSendWithRetryRecovers(t *testing.T) {
	mailer := &fakeMailer{failures: 2}
	s := newTestScheduler(&fakeNotifierRepo{}, mailer)

	err := s.sendWithRetry("asha@example.com", "subject", "body")
	require.NoError(t, err)
	assert.Equal(t, 3, mailer.attempts)
	assert.Len(t, mailer.sent, 1)
}

func TestSendWithRetryGivesUp(t *testing.T) {
	mailer := &fakeMailer{failures: 10}
	s := newTestScheduler(&fakeNotifierRepo{}, mailer)

	err := s.sendWithRetry("asha@example.com", "subject", "body")
	require.Error(t, err)
	assert.Equal(t, 3, mailer.attempts, "exactly three attempts, then drop")
	assert.Empty(t, mailer.sent)
}

func TestShouldRemindInactiveUser(t *testing.T) {
	now := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)
	s := newTestScheduler(&fakeNotifierRepo{}, &fakeMailer{})
	s.now = func() time.Time { return now }

	u := user.User{LastSeen: now.Add(-48 * time.Hour)}
	remind, err := s.shouldRemind(u)
	require.NoError(t, err)
	assert.True(t, remind)
}

func TestShouldRemindNewQuiz(t *testing.T) {
	now := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)
	repo := &fakeNotifierRepo{newQuizzes: 2}
	s := newTestScheduler(repo, &fakeMailer{})
	s.now = func() time.Time { return now }

	u := user.User{LastSeen: now.Add(-time.Hour)}
	remind, err := s.shouldRemind(u)
	require.NoError(t, err)
	assert.True(t, remind, "a fresh quiz triggers the reminder even for recent visitors")
}

func TestShouldNotRemindActiveUserNoNews(t *testing.T) {
	now := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)
	s := newTestScheduler(&fakeNotifierRepo{}, &fakeMailer{})
	s.now = func() time.Time { return now }

	u := user.User{LastSeen: now.Add(-time.Hour)}
	remind, err := s.shouldRemind(u)
	require.NoError(t, err)
	assert.False(t, remind)
}

func TestSendReminderSkipsWhenNotDue(t *testing.T) {
	now := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)
	mailer := &fakeMailer{}
	s := newTestScheduler(&fakeNotifierRepo{}, mailer)
	s.now = func() time.Time { return now }

	s.sendReminder(user.User{Email: "asha@example.com", LastSeen: now.Add(-time.Hour)})
	assert.Zero(t, mailer.attempts)
}

func TestMonthlyReportsPerUser(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	august := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeNotifierRepo{
		users: []user.User{
			{ID: 7, Email: "asha@example.com", FullName: "Asha Rao"},
			{ID: 8, Email: "ben@example.com", FullName: "Ben Ortiz"},
		},
		submissions: map[uint][]submission.QuizSubmission{
			7: {
				{UserID: 7, Score: 3, SubmittedAt: august},
				{UserID: 7, Score: 5, SubmittedAt: august},
			},
		},
	}
	mailer := &fakeMailer{}
	s := newTestScheduler(repo, mailer)
	s.now = func() time.Time { return now }

	s.sendMonthlyReports()
	assert.Equal(t, []string{"asha@example.com", "ben@example.com"}, mailer.sent)
}

func TestReloadRemindersSkipsInvalidTimes(t *testing.T) {
	repo := &fakeNotifierRepo{
		users: []user.User{
			{ID: 7, Email: "asha@example.com", ReminderTime: "19:00"},
			{ID: 8, Email: "ben@example.com", ReminderTime: "25:99"},
		},
	}
	s := newTestScheduler(repo, &fakeMailer{})

	require.NoError(t, s.reloadReminders())
	assert.Len(t, s.reminder, 1, "users with unparseable times are skipped")
}
