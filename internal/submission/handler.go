package submission

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/quizmaster-app/backend/internal/apperror"
	"github.com/quizmaster-app/backend/internal/auth"
	"github.com/quizmaster-app/backend/internal/config"
)

type Handler struct {
	service SubmissionService
}

func NewHandler(s SubmissionService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	var payload SubmitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	result, err := h.service.Submit(r.Context(), claims.ID, payload)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	var quizID *uint
	if raw := r.URL.Query().Get("quiz_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			config.Error(w, http.StatusBadRequest, "Invalid quiz_id parameter")
			return
		}
		id := uint(parsed)
		quizID = &id
	}

	subs, err := h.service.List(r.Context(), claims.IsAdmin(), claims.ID, quizID)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, subs)
}
