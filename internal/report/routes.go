package report

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizmaster-app/backend/internal/auth"
)

func Register(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/my-reports", h.MyReports)

		r.With(auth.AdminOnly).Get("/admin-stats", h.AdminStats)
		r.With(auth.AdminOnly).Get("/submission-counts", h.SubmissionCounts)
		r.With(auth.AdminOnly).Get("/quiz-completion", h.QuizCompletion)
		r.With(auth.AdminOnly).Get("/admin-user-details", h.UserDetails)
		r.With(auth.AdminOnly).Get("/admin-quiz-data", h.QuizData)
	})
}
