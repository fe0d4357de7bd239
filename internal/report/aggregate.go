package report

import (
	"math"
	"time"

	"github.com/quizmaster-app/backend/internal/catalog"
	"github.com/quizmaster-app/backend/internal/quiz"
	"github.com/quizmaster-app/backend/internal/submission"
	"github.com/quizmaster-app/backend/internal/user"
)

// The aggregation functions below are pure: they join pre-loaded table
// snapshots in memory, which keeps every report shape testable without a
// database.

type UserReportRow struct {
	ID             uint   `json:"id"`
	QuizID         uint   `json:"quiz_id"`
	QuizTitle      string `json:"quiz_title"`
	ChapterName    string `json:"chapter_name"`
	SubjectName    string `json:"subject_name"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	SubmittedAt    string `json:"submitted_at"`
}

type AdminStats struct {
	TotalUsers       int64   `json:"totalUsers"`
	TotalQuizzes     int64   `json:"totalQuizzes"`
	TotalSubmissions int64   `json:"totalSubmissions"`
	AverageScore     float64 `json:"averageScore"`
}

type QuizSubmissionCount struct {
	QuizTitle string `json:"quiz_title"`
	Count     int64  `json:"count"`
}

type CompletionDataset struct {
	Data            []int64  `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
}

type CompletionChart struct {
	Labels   []string            `json:"labels"`
	Datasets []CompletionDataset `json:"datasets"`
}

type UserDetailRow struct {
	UserName        string  `json:"user_name"`
	Email           string  `json:"email"`
	QuizTitle       string  `json:"quiz_title"`
	SubjectName     string  `json:"subject_name"`
	Score           int     `json:"score"`
	TotalQuestions  int     `json:"total_questions"`
	AvgScoreSubject float64 `json:"avg_score_subject"`
	AvgScoreAll     float64 `json:"avg_score_all"`
	SubmittedAt     string  `json:"submitted_at"`
}

type QuizDataRow struct {
	UserName       string `json:"user_name"`
	QuizTitle      string `json:"quiz_title"`
	ChapterName    string `json:"chapter_name"`
	SubjectName    string `json:"subject_name"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	SubmittedAt    string `json:"submitted_at"`
}

const unknown = "Unknown"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type catalogIndex struct {
	quizzes  map[uint]quiz.Quiz
	chapters map[uint]catalog.Chapter
	subjects map[uint]catalog.Subject
}

func indexCatalog(quizzes []quiz.Quiz, chapters []catalog.Chapter, subjects []catalog.Subject) catalogIndex {
	idx := catalogIndex{
		quizzes:  make(map[uint]quiz.Quiz, len(quizzes)),
		chapters: make(map[uint]catalog.Chapter, len(chapters)),
		subjects: make(map[uint]catalog.Subject, len(subjects)),
	}
	for _, q := range quizzes {
		idx.quizzes[q.ID] = q
	}
	for _, c := range chapters {
		idx.chapters[c.ID] = c
	}
	for _, s := range subjects {
		idx.subjects[s.ID] = s
	}
	return idx
}

// names resolves the quiz/chapter/subject titles for a submission, falling
// back to "Unknown" for any link broken by a deletion.
func (idx catalogIndex) names(quizID uint) (quizTitle, chapterName, subjectName string) {
	quizTitle, chapterName, subjectName = unknown, unknown, unknown

	q, ok := idx.quizzes[quizID]
	if !ok {
		return
	}
	quizTitle = q.Title

	c, ok := idx.chapters[q.ChapterID]
	if !ok {
		return
	}
	chapterName = c.Name

	if s, ok := idx.subjects[c.SubjectID]; ok {
		subjectName = s.Name
	}
	return
}

// subjectID resolves the subject a submission belongs to; zero when the
// chain is broken.
func (idx catalogIndex) subjectID(quizID uint) uint {
	q, ok := idx.quizzes[quizID]
	if !ok {
		return 0
	}
	c, ok := idx.chapters[q.ChapterID]
	if !ok {
		return 0
	}
	return c.SubjectID
}

func buildUserReports(subs []submission.QuizSubmission, idx catalogIndex) []UserReportRow {
	rows := make([]UserReportRow, 0, len(subs))
	for _, s := range subs {
		quizTitle, chapterName, subjectName := idx.names(s.QuizID)
		rows = append(rows, UserReportRow{
			ID:             s.ID,
			QuizID:         s.QuizID,
			QuizTitle:      quizTitle,
			ChapterName:    chapterName,
			SubjectName:    subjectName,
			Score:          s.Score,
			TotalQuestions: s.TotalQuestions,
			SubmittedAt:    s.SubmittedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func computeAdminStats(totalUsers, totalQuizzes int64, subs []submission.QuizSubmission) AdminStats {
	stats := AdminStats{
		TotalUsers:       totalUsers,
		TotalQuizzes:     totalQuizzes,
		TotalSubmissions: int64(len(subs)),
	}
	if len(subs) == 0 {
		return stats
	}

	var sum int
	for _, s := range subs {
		sum += s.Score
	}
	stats.AverageScore = round2(float64(sum) / float64(len(subs)))
	return stats
}

func buildCompletionChart(due []quiz.Quiz, subs []submission.QuizSubmission) CompletionChart {
	submitted := make(map[uint]bool, len(subs))
	for _, s := range subs {
		submitted[s.QuizID] = true
	}

	var completed, notCompleted int64
	for _, q := range due {
		if submitted[q.ID] {
			completed++
		} else {
			notCompleted++
		}
	}

	return CompletionChart{
		Labels: []string{"Completed", "Not Completed"},
		Datasets: []CompletionDataset{{
			Data:            []int64{completed, notCompleted},
			BackgroundColor: []string{"#36A2EB", "#FF6384"},
		}},
	}
}

// buildUserDetails emits one row per surviving submission, with each row
// carrying the submitter's running averages. Rows keep first-seen user
// order, then submission order within a user. Submissions whose quiz or
// user no longer exists are skipped entirely.
func buildUserDetails(subs []submission.QuizSubmission, users []user.User, idx catalogIndex) []UserDetailRow {
	userIndex := make(map[uint]user.User, len(users))
	for _, u := range users {
		userIndex[u.ID] = u
	}

	type userBucket struct {
		subs      []submission.QuizSubmission
		scoreSum  int
		bySubject map[uint]struct {
			sum   int
			count int
		}
	}

	order := make([]uint, 0)
	buckets := make(map[uint]*userBucket)
	for _, s := range subs {
		if _, ok := idx.quizzes[s.QuizID]; !ok {
			continue
		}
		if _, ok := userIndex[s.UserID]; !ok {
			continue
		}

		b, ok := buckets[s.UserID]
		if !ok {
			b = &userBucket{bySubject: make(map[uint]struct {
				sum   int
				count int
			})}
			buckets[s.UserID] = b
			order = append(order, s.UserID)
		}
		b.subs = append(b.subs, s)
		b.scoreSum += s.Score

		sid := idx.subjectID(s.QuizID)
		agg := b.bySubject[sid]
		agg.sum += s.Score
		agg.count++
		b.bySubject[sid] = agg
	}

	rows := make([]UserDetailRow, 0, len(subs))
	for _, uid := range order {
		b := buckets[uid]
		u := userIndex[uid]
		avgAll := round2(float64(b.scoreSum) / float64(len(b.subs)))

		for _, s := range b.subs {
			quizTitle, _, subjectName := idx.names(s.QuizID)
			agg := b.bySubject[idx.subjectID(s.QuizID)]
			rows = append(rows, UserDetailRow{
				UserName:        u.FullName,
				Email:           u.Email,
				QuizTitle:       quizTitle,
				SubjectName:     subjectName,
				Score:           s.Score,
				TotalQuestions:  s.TotalQuestions,
				AvgScoreSubject: round2(float64(agg.sum) / float64(agg.count)),
				AvgScoreAll:     avgAll,
				SubmittedAt:     s.SubmittedAt.Format(time.RFC3339),
			})
		}
	}
	return rows
}

func buildQuizData(subs []submission.QuizSubmission, users []user.User, idx catalogIndex) []QuizDataRow {
	userIndex := make(map[uint]user.User, len(users))
	for _, u := range users {
		userIndex[u.ID] = u
	}

	rows := make([]QuizDataRow, 0, len(subs))
	for _, s := range subs {
		userName := unknown
		if u, ok := userIndex[s.UserID]; ok {
			userName = u.FullName
		}
		quizTitle, chapterName, subjectName := idx.names(s.QuizID)
		rows = append(rows, QuizDataRow{
			UserName:       userName,
			QuizTitle:      quizTitle,
			ChapterName:    chapterName,
			SubjectName:    subjectName,
			Score:          s.Score,
			TotalQuestions: s.TotalQuestions,
			SubmittedAt:    s.SubmittedAt.Format(time.RFC3339),
		})
	}
	return rows
}
