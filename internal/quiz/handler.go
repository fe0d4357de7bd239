package quiz

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
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func pathID(r *http.Request, param string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, param), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func queryID(r *http.Request, param string) (*uint, bool) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	id := uint(parsed)
	return &id, true
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := queryID(r, "chapter_id")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid chapter_id parameter")
		return
	}

	quizzes, err := h.service.ListQuizzes(r.Context(), chapterID)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "quizID")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid quiz id")
		return
	}

	quiz, err := h.service.GetQuiz(r.Context(), id)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, quiz)
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var payload QuizPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	quiz, err := h.service.CreateQuiz(r.Context(), payload)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Quiz Created Successfully",
		"quiz":    quiz,
	})
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "quizID")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid quiz id")
		return
	}

	var payload QuizPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	quiz, err := h.service.UpdateQuiz(r.Context(), id, payload)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Quiz Updated Successfully",
		"quiz":    quiz,
	})
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "quizID")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid quiz id")
		return
	}

	if err := h.service.DeleteQuiz(r.Context(), id); err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "Quiz Deleted Successfully"})
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, ok := queryID(r, "quiz_id")
	if !ok || quizID == nil {
		config.Error(w, http.StatusBadRequest, "quiz_id parameter is required")
		return
	}

	questions, err := h.service.ListQuestions(r.Context(), auth.IsAdmin(r.Context()), *quizID)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, questions)
}

func (h *Handler) ListQuizQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, ok := queryID(r, "quiz_id")
	if !ok || quizID == nil {
		config.Error(w, http.StatusBadRequest, "quiz_id parameter is required")
		return
	}

	questions, err := h.service.ListQuizQuestions(r.Context(), *quizID)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, questions)
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var payload QuestionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	question, err := h.service.CreateQuestion(r.Context(), payload)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Question Created Successfully",
		"question": questionJSON(*question),
	})
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "questionID")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid question id")
		return
	}

	var payload QuestionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, http.StatusBadRequest, "Invalid or missing JSON data")
		return
	}

	question, err := h.service.UpdateQuestion(r.Context(), id, payload)
	if err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Question Updated Successfully",
		"question": questionJSON(*question),
	})
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "questionID")
	if !ok {
		config.Error(w, http.StatusBadRequest, "Invalid question id")
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), id); err != nil {
		status, msg := apperror.HTTP(err)
		config.Error(w, status, msg)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "Question Deleted Successfully"})
}
