package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quizmaster-app/backend/internal/apperror"
	"github.com/quizmaster-app/backend/internal/auth"
	"github.com/quizmaster-app/backend/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	u, err := h.service.Signup(r.Context(), req)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Signup successful. Await activation by the administrator.",
		"user":    map[string]interface{}{"id": u.ID, "email": u.Email, "status": u.Status},
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindValidation {
			// Bad credentials are a 401, not a 400.
			config.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, users)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	profile, err := h.service.Profile(r.Context(), claims)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	message, err := h.service.UpdateStatus(r.Context(), uint(userID), req.Status)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	updated, err := h.service.BulkUpdateStatus(r.Context(), req)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Users updated successfully",
		"updated": updated,
	})
}
