package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quizmaster-app/backend/internal/catalog"
	"github.com/quizmaster-app/backend/internal/middlewares"
	"github.com/quizmaster-app/backend/internal/quiz"
	"github.com/quizmaster-app/backend/internal/report"
	"github.com/quizmaster-app/backend/internal/submission"
	"github.com/quizmaster-app/backend/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	CatalogHandler    *catalog.Handler
	QuizHandler       *quiz.Handler
	SubmissionHandler *submission.Handler
	ReportHandler     *report.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Route("/api", func(r chi.Router) {
		user.Register(r, cfg.UserHandler)
		catalog.Register(r, cfg.CatalogHandler)
		quiz.Register(r, cfg.QuizHandler)
		submission.Register(r, cfg.SubmissionHandler)
		report.Register(r, cfg.ReportHandler)
	})

	return r
}
