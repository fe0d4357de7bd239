package report

import (
	"net/http"

	"github.com/quizmaster-app/backend/internal/apperror"
	"github.com/quizmaster-app/backend/internal/auth"
	"github.com/quizmaster-app/backend/internal/config"
)

type Handler struct {
	service ReportService
}

func NewHandler(s ReportService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) MyReports(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	rows, err := h.service.MyReports(r.Context(), claims.ID)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, rows)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.AdminStats(r.Context())
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, stats)
}

func (h *Handler) SubmissionCounts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.SubmissionCounts(r.Context())
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, rows)
}

func (h *Handler) QuizCompletion(w http.ResponseWriter, r *http.Request) {
	chart, err := h.service.QuizCompletion(r.Context())
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, chart)
}

func (h *Handler) UserDetails(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.UserDetails(r.Context())
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, rows)
}

func (h *Handler) QuizData(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.QuizData(r.Context())
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, rows)
}
