package submission

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quizmaster-app/backend/internal/apperror"
	"github.com/quizmaster-app/backend/internal/config"
)

type SubmissionService interface {
	Submit(ctx context.Context, userID uint, payload SubmitPayload) (*SubmitResponse, error)
	List(ctx context.Context, isAdmin bool, userID uint, quizID *uint) ([]SubmissionJSON, error)
}

type submissionService struct {
	repo SubmissionRepository
}

func NewService(repo SubmissionRepository) SubmissionService {
	return &submissionService{repo: repo}
}

func (s *submissionService) Submit(ctx context.Context, userID uint, payload SubmitPayload) (*SubmitResponse, error) {
	log := config.WithContext(ctx)

	if payload.QuizID == 0 {
		return nil, apperror.Validation("Quiz id is a required field")
	}

	q, err := s.repo.FindQuizByID(payload.QuizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz for submission")
		return nil, apperror.Internal("Submission failed", err)
	}
	if q == nil {
		return nil, apperror.NotFound("Quiz not found")
	}

	questions, err := s.repo.FindQuestionsByQuiz(payload.QuizID)
	if err != nil {
		log.WithError(err).Error("Failed to load questions for submission")
		return nil, apperror.Internal("Submission failed", err)
	}

	score, total, graded := grade(questions, payload.Answers)

	answersJSON, err := json.Marshal(graded)
	if err != nil {
		log.WithError(err).Error("Failed to serialize graded answers")
		return nil, apperror.Internal("Submission failed", err)
	}

	record := &QuizSubmission{
		QuizID:         payload.QuizID,
		UserID:         userID,
		Score:          score,
		TotalQuestions: total,
		Answers:        answersJSON,
	}
	if err := s.repo.CreateSubmission(record); err != nil {
		log.WithError(err).Error("Failed to persist submission")
		return nil, apperror.Internal("Submission failed", err)
	}

	log.WithFields(map[string]interface{}{
		"quiz_id": payload.QuizID,
		"user_id": userID,
		"score":   score,
	}).Info("Quiz submission graded")

	return &SubmitResponse{
		Message: "Quiz submitted successfully",
		Score:   score,
		Total:   total,
	}, nil
}

// List returns submissions, scoped to the caller: admins see every record,
// users only their own.
func (s *submissionService) List(ctx context.Context, isAdmin bool, userID uint, quizID *uint) ([]SubmissionJSON, error) {
	log := config.WithContext(ctx)

	var (
		subs []QuizSubmission
		err  error
	)
	if isAdmin {
		subs, err = s.repo.FindAll(quizID)
	} else {
		subs, err = s.repo.FindByUser(userID, quizID)
	}
	if err != nil {
		log.WithError(err).Error("Failed to list submissions")
		return nil, apperror.Internal("Failed to fetch submissions", err)
	}

	out := make([]SubmissionJSON, 0, len(subs))
	for _, sub := range subs {
		var answers []SubmittedAnswer
		if len(sub.Answers) > 0 {
			if err := json.Unmarshal(sub.Answers, &answers); err != nil {
				log.WithError(err).WithField("submission_id", sub.ID).Warn("Skipping unreadable answers payload")
			}
		}
		out = append(out, SubmissionJSON{
			ID:             sub.ID,
			QuizID:         sub.QuizID,
			UserID:         sub.UserID,
			Score:          sub.Score,
			TotalQuestions: sub.TotalQuestions,
			SubmittedAt:    sub.SubmittedAt.Format(time.RFC3339),
			Answers:        answers,
		})
	}
	return out, nil
}
