package quiz

import (
	"gorm.io/gorm"

	"github.com/quizmaster-app/backend/internal/cache"
)

type QuizContainer struct {
	Repo    QuizRepository
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(db *gorm.DB, store cache.Store) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(repo, store)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
