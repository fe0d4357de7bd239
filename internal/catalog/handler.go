package catalog

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
	service CatalogService
}

func NewHandler(s CatalogService) *Handler {
	return &Handler{service: s}
}

func parseID(r *http.Request, param string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, param), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.ListSubjects(r.Context(), auth.IsAdmin(r.Context()))
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, subjects)
}

func (h *Handler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var payload SubjectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	subject, err := h.service.CreateSubject(r.Context(), payload)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Subject Created Successfully",
		"subject": map[string]interface{}{
			"id":          subject.ID,
			"name":        subject.Name,
			"description": subject.Description,
		},
	})
}

func (h *Handler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "subjectID")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid subject id")
		return
	}

	var payload SubjectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	subject, err := h.service.UpdateSubject(r.Context(), id, payload)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Subject Updated Successfully",
		"subject": map[string]interface{}{
			"id":          subject.ID,
			"name":        subject.Name,
			"description": subject.Description,
		},
	})
}

func (h *Handler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "subjectID")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid subject id")
		return
	}

	if err := h.service.DeleteSubject(r.Context(), id); err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "Subject Deleted Successfully"})
}

func (h *Handler) ListChapters(w http.ResponseWriter, r *http.Request) {
	var subjectID *uint
	if raw := r.URL.Query().Get("subject_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			config.Error(w, http.StatusBadRequest, "Invalid subject_id parameter")
			return
		}
		id := uint(parsed)
		subjectID = &id
	}

	chapters, err := h.service.ListChapters(r.Context(), auth.IsAdmin(r.Context()), subjectID)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, chapters)
}

func (h *Handler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	var payload ChapterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	chapter, err := h.service.CreateChapter(r.Context(), payload)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Chapter Created Successfully",
		"chapter": chapterJSON(chapter),
	})
}

func (h *Handler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "chapterID")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid chapter id")
		return
	}

	var payload ChapterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	chapter, err := h.service.UpdateChapter(r.Context(), id, payload)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Chapter Updated Successfully",
		"chapter": chapterJSON(chapter),
	})
}

func (h *Handler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "chapterID")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid chapter id")
		return
	}

	if err := h.service.DeleteChapter(r.Context(), id); err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "Chapter Deleted Successfully"})
}

func (h *Handler) RecountChapter(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "chapterID")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid chapter id")
		return
	}

	chapter, err := h.service.RecountChapter(r.Context(), id)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Chapter counters recomputed",
		"chapter": chapterJSON(chapter),
	})
}

func chapterJSON(c *Chapter) ChapterJSON {
	return ChapterJSON{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		NQuestions:  c.NQuestions,
		NQuizzes:    c.NQuizzes,
		SubjectID:   c.SubjectID,
	}
}
