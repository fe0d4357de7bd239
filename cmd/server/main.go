package main

import (
	"net/http"
	"os"

	"github.com/quizmaster-app/backend/internal/config"
	"github.com/quizmaster-app/backend/internal/container"
	"github.com/quizmaster-app/backend/internal/router"
)

func main() {
	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		CatalogHandler:    c.CatalogContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		SubmissionHandler: c.SubmissionContainer.Handler,
		ReportHandler:     c.ReportContainer.Handler,
	})

	if c.Scheduler != nil {
		if err := c.Scheduler.Start(); err != nil {
			config.Logger().WithError(err).Fatal("Failed to start notification scheduler")
		}
		defer c.Scheduler.Stop()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	config.Logger().WithField("port", port).Info("Server listening")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		config.Logger().WithError(err).Fatal("Server stopped")
	}
}
