package catalog

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizmaster-app/backend/internal/auth"
)

func Register(r chi.Router, h *Handler) {
	// Chapter listing tolerates a missing token; anonymous callers get the
	// cached non-admin view.
	r.With(auth.OptionalAuthMiddleware).Get("/chapter", h.ListChapters)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/subject", h.ListSubjects)
		r.With(auth.AdminOnly).Post("/subject", h.CreateSubject)
		r.With(auth.AdminOnly).Put("/subject/{subjectID}", h.UpdateSubject)
		r.With(auth.AdminOnly).Delete("/subject/{subjectID}", h.DeleteSubject)

		r.With(auth.AdminOnly).Post("/chapter", h.CreateChapter)
		r.With(auth.AdminOnly).Put("/chapter/{chapterID}", h.UpdateChapter)
		r.With(auth.AdminOnly).Delete("/chapter/{chapterID}", h.DeleteChapter)
		r.With(auth.AdminOnly).Post("/chapter/{chapterID}/recount", h.RecountChapter)
	})
}
