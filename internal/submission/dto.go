package submission

type AnswerInput struct {
	QuestionID     uint `json:"question_id"`
	SelectedOption int  `json:"selected_option"`
}

type SubmitPayload struct {
	QuizID  uint          `json:"quiz_id"`
	Answers []AnswerInput `json:"answers"`
}

type SubmitResponse struct {
	Message string `json:"message"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
}

type SubmissionJSON struct {
	ID             uint              `json:"id"`
	QuizID         uint              `json:"quiz_id"`
	UserID         uint              `json:"user_id"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	SubmittedAt    string            `json:"submitted_at"`
	Answers        []SubmittedAnswer `json:"answers"`
}
