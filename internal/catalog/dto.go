package catalog

type SubjectPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ChapterPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SubjectID   uint   `json:"subject_id"`
}

type ChapterJSON struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	NQuestions  int    `json:"n_questions"`
	NQuizzes    int    `json:"n_quizzes"`
	SubjectID   uint   `json:"subject_id,omitempty"`
}

type SubjectJSON struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Chapters    []ChapterJSON `json:"chapters"`
}
