package submission

import (
	"gorm.io/gorm"
)

type SubmissionContainer struct {
	Repo    SubmissionRepository
	Service SubmissionService
	Handler *Handler
}

func NewSubmissionContainer(db *gorm.DB) *SubmissionContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &SubmissionContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
