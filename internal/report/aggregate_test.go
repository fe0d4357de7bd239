package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizmaster-app/backend/internal/catalog"
	"github.com/quizmaster-app/backend/internal/quiz"
	"github.com/quizmaster-app/backend/internal/submission"
	"github.com/quizmaster-app/backend/internal/user"
)

func testIndex() catalogIndex {
	return indexCatalog(
		[]quiz.Quiz{
			{ID: 1, ChapterID: 10, Title: "Algebra Quiz"},
			{ID: 2, ChapterID: 20, Title: "Optics Quiz"},
		},
		[]catalog.Chapter{
			{ID: 10, SubjectID: 100, Name: "Algebra"},
			{ID: 20, SubjectID: 200, Name: "Optics"},
		},
		[]catalog.Subject{
			{ID: 100, Name: "Maths"},
			{ID: 200, Name: "Physics"},
		},
	)
}

func TestBuildUserReportsResolvesNames(t *testing.T) {
	subs := []submission.QuizSubmission{
		{ID: 1, QuizID: 1, UserID: 7, Score: 3, TotalQuestions: 5},
	}

	rows := buildUserReports(subs, testIndex())
	require.Len(t, rows, 1)
	assert.Equal(t, "Algebra Quiz", rows[0].QuizTitle)
	assert.Equal(t, "Algebra", rows[0].ChapterName)
	assert.Equal(t, "Maths", rows[0].SubjectName)
}

func TestBuildUserReportsUnknownFallbacks(t *testing.T) {
	subs := []submission.QuizSubmission{
		{ID: 1, QuizID: 42, UserID: 7, Score: 3, TotalQuestions: 5},
	}

	rows := buildUserReports(subs, testIndex())
	require.Len(t, rows, 1)
	assert.Equal(t, "Unknown", rows[0].QuizTitle)
	assert.Equal(t, "Unknown", rows[0].ChapterName)
	assert.Equal(t, "Unknown", rows[0].SubjectName)
}

func TestBuildUserReportsEmpty(t *testing.T) {
	rows := buildUserReports(nil, testIndex())
	assert.Empty(t, rows)
	assert.NotNil(t, rows, "empty result serializes as [] not null")
}

func TestComputeAdminStats(t *testing.T) {
	subs := []submission.QuizSubmission{
		{Score: 2},
		{Score: 3},
		{Score: 4},
	}

	stats := computeAdminStats(10, 5, subs)
	assert.Equal(t, int64(10), stats.TotalUsers)
	assert.Equal(t, int64(5), stats.TotalQuizzes)
	assert.Equal(t, int64(3), stats.TotalSubmissions)
	assert.Equal(t, 3.0, stats.AverageScore)
}

func TestComputeAdminStatsRounding(t *testing.T) {
	subs := []submission.QuizSubmission{
		{Score: 1},
		{Score: 1},
		{Score: 2},
	}

	stats := computeAdminStats(0, 0, subs)
	assert.Equal(t, 1.33, stats.AverageScore)
}

func TestComputeAdminStatsEmptyFleet(t *testing.T) {
	stats := computeAdminStats(0, 0, nil)
	assert.Equal(t, int64(0), stats.TotalSubmissions)
	assert.Equal(t, 0.0, stats.AverageScore, "no submissions means a zero average, not NaN")
}

func TestBuildCompletionChart(t *testing.T) {
	due := []quiz.Quiz{{ID: 1}, {ID: 2}, {ID: 3}}
	subs := []submission.QuizSubmission{
		{QuizID: 1},
		{QuizID: 1},
		{QuizID: 3},
	}

	chart := buildCompletionChart(due, subs)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, []string{"Completed", "Not Completed"}, chart.Labels)
	assert.Equal(t, []int64{2, 1}, chart.Datasets[0].Data)
}

func TestBuildCompletionChartNoDueQuizzes(t *testing.T) {
	chart := buildCompletionChart(nil, nil)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, []int64{0, 0}, chart.Datasets[0].Data)
}

func TestBuildUserDetailsAverages(t *testing.T) {
	users := []user.User{
		{ID: 7, FullName: "Asha Rao", Email: "asha@example.com"},
	}
	subs := []submission.QuizSubmission{
		{ID: 1, QuizID: 1, UserID: 7, Score: 2, TotalQuestions: 5},
		{ID: 2, QuizID: 1, UserID: 7, Score: 4, TotalQuestions: 5},
		{ID: 3, QuizID: 2, UserID: 7, Score: 5, TotalQuestions: 5},
	}

	rows := buildUserDetails(subs, users, testIndex())
	require.Len(t, rows, 3)

	// Maths rows average 3.0 within the subject, Physics row 5.0; every row
	// carries the overall average 3.67.
	assert.Equal(t, 3.0, rows[0].AvgScoreSubject)
	assert.Equal(t, 3.0, rows[1].AvgScoreSubject)
	assert.Equal(t, 5.0, rows[2].AvgScoreSubject)
	for _, row := range rows {
		assert.Equal(t, 3.67, row.AvgScoreAll)
		assert.Equal(t, "Asha Rao", row.UserName)
		assert.Equal(t, "asha@example.com", row.Email)
	}
}

func TestBuildUserDetailsSkipsBrokenLinks(t *testing.T) {
	users := []user.User{
		{ID: 7, FullName: "Asha Rao", Email: "asha@example.com"},
	}
	subs := []submission.QuizSubmission{
		{ID: 1, QuizID: 42, UserID: 7, Score: 2},
		{ID: 2, QuizID: 1, UserID: 99, Score: 3},
		{ID: 3, QuizID: 1, UserID: 7, Score: 4},
	}

	rows := buildUserDetails(subs, users, testIndex())
	require.Len(t, rows, 1, "rows with a deleted quiz or user are dropped")
	assert.Equal(t, 4, rows[0].Score)
	assert.Equal(t, 4.0, rows[0].AvgScoreAll)
}

func TestBuildUserDetailsFirstSeenOrder(t *testing.T) {
	users := []user.User{
		{ID: 7, FullName: "Asha Rao"},
		{ID: 8, FullName: "Ben Ortiz"},
	}
	subs := []submission.QuizSubmission{
		{ID: 1, QuizID: 1, UserID: 8, Score: 1},
		{ID: 2, QuizID: 1, UserID: 7, Score: 2},
		{ID: 3, QuizID: 2, UserID: 8, Score: 3},
	}

	rows := buildUserDetails(subs, users, testIndex())
	require.Len(t, rows, 3)
	assert.Equal(t, "Ben Ortiz", rows[0].UserName)
	assert.Equal(t, "Ben Ortiz", rows[1].UserName, "a user's rows stay contiguous")
	assert.Equal(t, "Asha Rao", rows[2].UserName)
}

func TestBuildQuizDataUnknownUser(t *testing.T) {
	subs := []submission.QuizSubmission{
		{ID: 1, QuizID: 1, UserID: 99, Score: 2, TotalQuestions: 5},
	}

	rows := buildQuizData(subs, nil, testIndex())
	require.Len(t, rows, 1)
	assert.Equal(t, "Unknown", rows[0].UserName)
	assert.Equal(t, "Algebra Quiz", rows[0].QuizTitle)
}
