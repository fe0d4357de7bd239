package cache

import (
	"fmt"
	"time"
)

// Typed key builders so invalidation call sites cannot typo a key.

const (
	// DefaultTTL matches the store-wide default timeout.
	DefaultTTL = 5 * time.Minute
	// CatalogTTL is the short backstop for subject and question listings;
	// question caches are never explicitly invalidated and rely on it.
	CatalogTTL = 120 * time.Second
)

func SubjectsKey() string {
	return "subjects"
}

func ChaptersKey() string {
	return "chapters"
}

func ChaptersBySubjectKey(subjectID uint) string {
	return fmt.Sprintf("chapters_%d", subjectID)
}

func QuestionsByQuizKey(quizID uint) string {
	return fmt.Sprintf("questions_%d", quizID)
}
