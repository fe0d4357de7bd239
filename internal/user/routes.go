package user

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizmaster-app/backend/internal/auth"
)

func Register(r chi.Router, h *Handler) {
	r.Post("/login", h.Login)
	r.Post("/signup", h.Signup)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.With(auth.AdminOnly).Get("/users", h.ListUsers)
		r.Get("/users/{userID}", h.Profile)
		r.With(auth.AdminOnly).Patch("/users/{userID}", h.UpdateStatus)
		r.With(auth.AdminOnly).Put("/users/bulk-update", h.BulkUpdate)
	})
}
