package quiz

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizmaster-app/backend/internal/auth"
)

func Register(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/quiz", h.ListQuizzes)
		r.Get("/quiz/{quizID}", h.GetQuiz)
		r.With(auth.AdminOnly).Post("/quiz", h.CreateQuiz)
		r.With(auth.AdminOnly).Put("/quiz/{quizID}", h.UpdateQuiz)
		r.With(auth.AdminOnly).Delete("/quiz/{quizID}", h.DeleteQuiz)

		r.Get("/question", h.ListQuestions)
		r.Get("/quiz-questions", h.ListQuizQuestions)
		r.With(auth.AdminOnly).Post("/question", h.CreateQuestion)
		r.With(auth.AdminOnly).Put("/question/{questionID}", h.UpdateQuestion)
		r.With(auth.AdminOnly).Delete("/question/{questionID}", h.DeleteQuestion)
	})
}
