package notifier

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/quizmaster-app/backend/internal/config"
	"github.com/quizmaster-app/backend/internal/user"
	util "github.com/quizmaster-app/backend/internal/utils"
)

const (
	maxSendAttempts   = 3
	defaultRetryDelay = time.Minute

	// Reminder entries are rebuilt nightly so changed reminder times and
	// newly activated users are picked up; the monthly report goes out on
	// the first at 08:00.
	resyncSpec  = "0 0 * * *"
	monthlySpec = "0 8 1 * *"
)

// Scheduler owns the cron runner for reminder and report mail. Each active
// user gets an entry at their personal reminder time.
type Scheduler struct {
	repo       NotifierRepository
	mailer     Mailer
	cron       *cron.Cron
	retryDelay time.Duration
	now        func() time.Time

	mu       sync.Mutex
	reminder []cron.EntryID
}

func NewScheduler(repo NotifierRepository, mailer Mailer) *Scheduler {
	return &Scheduler{
		repo:       repo,
		mailer:     mailer,
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		retryDelay: defaultRetryDelay,
		now:        time.Now,
	}
}

func (s *Scheduler) Start() error {
	log := config.Logger()

	if _, err := s.cron.AddFunc(resyncSpec, func() {
		if err := s.reloadReminders(); err != nil {
			log.WithError(err).Error("Failed to reload reminder schedule")
		}
	}); err != nil {
		return fmt.Errorf("register resync job: %w", err)
	}

	if _, err := s.cron.AddFunc(monthlySpec, s.sendMonthlyReports); err != nil {
		return fmt.Errorf("register monthly report job: %w", err)
	}

	if err := s.reloadReminders(); err != nil {
		return err
	}

	s.cron.Start()
	log.Info("Notification scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// reloadReminders replaces the per-user reminder entries with the current
// set of active users.
func (s *Scheduler) reloadReminders() error {
	log := config.Logger()

	users, err := s.repo.ActiveUsers()
	if err != nil {
		return fmt.Errorf("load active users: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.reminder {
		s.cron.Remove(id)
	}
	s.reminder = s.reminder[:0]

	for _, u := range users {
		hour, minute, err := util.ParseClock(u.ReminderTime)
		if err != nil {
			log.WithField("user_id", u.ID).WithError(err).Warn("Skipping user with invalid reminder time")
			continue
		}

		target := u
		id, err := s.cron.AddFunc(fmt.Sprintf("%d %d * * *", minute, hour), func() {
			s.sendReminder(target)
		})
		if err != nil {
			log.WithField("user_id", u.ID).WithError(err).Warn("Failed to schedule reminder")
			continue
		}
		s.reminder = append(s.reminder, id)
	}

	log.WithField("reminders", len(s.reminder)).Info("Reminder schedule loaded")
	return nil
}

// shouldRemind reports whether a reminder is worth sending: the user has
// been away for at least a day, or a quiz was created in the last 24 hours.
func (s *Scheduler) shouldRemind(u user.User) (bool, error) {
	now := s.now()
	if now.Sub(u.LastSeen) >= 24*time.Hour {
		return true, nil
	}

	newQuizzes, err := s.repo.CountQuizzesCreatedSince(now.Add(-24 * time.Hour))
	if err != nil {
		return false, err
	}
	return newQuizzes > 0, nil
}

func (s *Scheduler) sendReminder(u user.User) {
	log := config.Logger().WithField("user_id", u.ID)

	remind, err := s.shouldRemind(u)
	if err != nil {
		log.WithError(err).Error("Failed to evaluate reminder condition")
		return
	}
	if !remind {
		return
	}

	if err := s.sendWithRetry(u.Email, "We miss you at Quiz Master!", reminderBody(u.FullName)); err != nil {
		log.WithError(err).Error("Dropping reminder after repeated send failures")
	}
}

func (s *Scheduler) sendMonthlyReports() {
	log := config.Logger()

	users, err := s.repo.ActiveUsers()
	if err != nil {
		log.WithError(err).Error("Failed to load users for monthly report")
		return
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := monthStart.AddDate(0, -1, 0)

	for _, u := range users {
		subs, err := s.repo.SubmissionsBetween(u.ID, prevStart, monthStart)
		if err != nil {
			log.WithField("user_id", u.ID).WithError(err).Error("Failed to load submissions for monthly report")
			continue
		}

		var avg float64
		if len(subs) > 0 {
			var sum int
			for _, sub := range subs {
				sum += sub.Score
			}
			avg = float64(sum) / float64(len(subs))
		}

		body := monthlyReportBody(u.FullName, len(subs), avg)
		if err := s.sendWithRetry(u.Email, "Your monthly Quiz Master report", body); err != nil {
			log.WithField("user_id", u.ID).WithError(err).Error("Dropping monthly report after repeated send failures")
		}
	}
}

// sendWithRetry attempts the send up to maxSendAttempts times with a fixed
// delay between attempts.
func (s *Scheduler) sendWithRetry(to, subject, body string) error {
	var err error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		if err = s.mailer.Send(to, subject, body); err == nil {
			return nil
		}
		if attempt < maxSendAttempts {
			time.Sleep(s.retryDelay)
		}
	}
	return err
}
