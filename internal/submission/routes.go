package submission

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizmaster-app/backend/internal/auth"
)

func Register(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Post("/submit-quiz", h.Submit)
		r.Get("/submit-quiz", h.List)
	})
}
