package catalog

import (
	"gorm.io/gorm"

	"github.com/quizmaster-app/backend/internal/cache"
)

type CatalogContainer struct {
	Repo    CatalogRepository
	Service CatalogService
	Handler *Handler
}

func NewCatalogContainer(db *gorm.DB, store cache.Store) *CatalogContainer {
	repo := NewRepository(db)
	service := NewService(repo, store)
	handler := NewHandler(service)

	return &CatalogContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
