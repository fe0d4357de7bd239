package container

import (
	"context"
	"log"
	"os"

	"github.com/quizmaster-app/backend/internal/auth"
	"github.com/quizmaster-app/backend/internal/cache"
	"github.com/quizmaster-app/backend/internal/catalog"
	"github.com/quizmaster-app/backend/internal/config"
	"github.com/quizmaster-app/backend/internal/notifier"
	"github.com/quizmaster-app/backend/internal/quiz"
	"github.com/quizmaster-app/backend/internal/report"
	"github.com/quizmaster-app/backend/internal/submission"
	"github.com/quizmaster-app/backend/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	CatalogContainer    *catalog.CatalogContainer
	QuizContainer       *quiz.QuizContainer
	SubmissionContainer *submission.SubmissionContainer
	ReportContainer     *report.ReportContainer
	Scheduler           *notifier.Scheduler
}

func New() *Container {
	config.Init()
	auth.Init()

	ctx := context.Background()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(ctx, dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&catalog.Subject{},
		&catalog.Chapter{},
		&quiz.Quiz{},
		&quiz.Question{},
		&user.User{},
		&user.Admin{},
		&submission.QuizSubmission{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Catalog and question listings degrade to an in-process cache when
	// redis is unreachable, so a missing instance never blocks startup.
	var store cache.Store
	if err := config.ConnectRedis(ctx); err != nil {
		config.Logger().WithError(err).Warn("Redis unavailable, using in-memory cache")
		store = cache.NewMemoryStore()
	} else {
		store = cache.NewRedisStore(config.Redis)
	}

	userContainer := user.NewUserContainer(config.DB)
	catalogContainer := catalog.NewCatalogContainer(config.DB, store)
	quizContainer := quiz.NewQuizContainer(config.DB, store)
	submissionContainer := submission.NewSubmissionContainer(config.DB)
	reportContainer := report.NewReportContainer(config.DB)

	if err := userContainer.Service.SeedAdmin(ctx); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	var scheduler *notifier.Scheduler
	mailer, err := notifier.NewSMTPMailer()
	if err != nil {
		config.Logger().WithError(err).Warn("Mailer not configured, notifications disabled")
	} else {
		scheduler = notifier.NewScheduler(notifier.NewRepository(config.DB), mailer)
	}

	return &Container{
		UserContainer:       userContainer,
		CatalogContainer:    catalogContainer,
		QuizContainer:       quizContainer,
		SubmissionContainer: submissionContainer,
		ReportContainer:     reportContainer,
		Scheduler:           scheduler,
	}
}
