package submission

import (
	"github.com/quizmaster-app/backend/internal/quiz"
)

// grade scores a set of submitted answers against the quiz's question set.
//
// The answer key stores correct_option 1-indexed while clients submit
// selected_option 0-indexed, so an answer is correct when
// selected == correct-1. Total is always the size of the question set,
// independent of how many answers were submitted. Answers referencing
// questions outside the quiz are dropped without error.
func grade(questions []quiz.Question, answers []AnswerInput) (score, total int, graded []SubmittedAnswer) {
	key := make(map[uint]int, len(questions))
	for _, q := range questions {
		key[q.ID] = q.CorrectOption
	}

	total = len(questions)
	graded = make([]SubmittedAnswer, 0, len(answers))
	for _, a := range answers {
		correct, ok := key[a.QuestionID]
		if !ok {
			continue
		}
		isCorrect := a.SelectedOption == correct-1
		if isCorrect {
			score++
		}
		graded = append(graded, SubmittedAnswer{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      isCorrect,
		})
	}
	return score, total, graded
}
