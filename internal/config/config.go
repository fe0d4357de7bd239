package config

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// Init loads the environment and configures the process logger. Safe to call
// more than once; later calls only re-read LOG_LEVEL.
func Init() {
	_ = godotenv.Load()

	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stdout)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}
}

func Logger() *logrus.Logger {
	if logger == nil {
		Init()
	}
	return logger
}

// WithContext returns a request-scoped log entry carrying the chi request id.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(Logger())
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	return entry
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		Logger().WithError(err).Error("Failed to encode JSON response")
	}
}

// Error writes the standard error envelope used by every endpoint.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
