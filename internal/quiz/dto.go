package quiz

type QuizPayload struct {
	ChapterID    uint   `json:"chapter_id"`
	Title        string `json:"title"`
	DateOfQuiz   string `json:"date_of_quiz"`
	LastDate     string `json:"last_date"`
	TimeDuration string `json:"time_duration"`
	Remarks      string `json:"remarks"`
}

type QuestionPayload struct {
	QuizID            uint   `json:"quiz_id"`
	QNo               int    `json:"q_no"`
	Title             string `json:"title"`
	QuestionStatement string `json:"question_statement"`
	Option1           string `json:"option1"`
	Option2           string `json:"option2"`
	Option3           string `json:"option3"`
	Option4           string `json:"option4"`
	CorrectOption     int    `json:"correct_option"`
}

type QuizJSON struct {
	ID           uint   `json:"id"`
	ChapterID    uint   `json:"chapter_id"`
	Title        string `json:"title"`
	DateOfQuiz   string `json:"date_of_quiz"`
	LastDate     string `json:"last_date"`
	TimeDuration string `json:"time_duration"`
	Remarks      string `json:"remarks"`
	NumQuestions int    `json:"num_questions"`
	CreatedAt    string `json:"created_at"`
}

type QuestionJSON struct {
	ID                uint   `json:"id"`
	QuizID            uint   `json:"quiz_id"`
	QNo               int    `json:"q_no"`
	Title             string `json:"title"`
	QuestionStatement string `json:"question_statement"`
	Option1           string `json:"option1"`
	Option2           string `json:"option2"`
	Option3           string `json:"option3"`
	Option4           string `json:"option4"`
	CorrectOption     int    `json:"correct_option"`
}
