package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/quizmaster-app/backend/internal/apperror"
	"github.com/quizmaster-app/backend/internal/cache"
	"github.com/quizmaster-app/backend/internal/config"
)

type CatalogService interface {
	ListSubjects(ctx context.Context, isAdmin bool) ([]SubjectJSON, error)
	CreateSubject(ctx context.Context, payload SubjectPayload) (*Subject, error)
	UpdateSubject(ctx context.Context, id uint, payload SubjectPayload) (*Subject, error)
	DeleteSubject(ctx context.Context, id uint) error

	ListChapters(ctx context.Context, isAdmin bool, subjectID *uint) ([]ChapterJSON, error)
	CreateChapter(ctx context.Context, payload ChapterPayload) (*Chapter, error)
	UpdateChapter(ctx context.Context, id uint, payload ChapterPayload) (*Chapter, error)
	DeleteChapter(ctx context.Context, id uint) error

	RecountChapter(ctx context.Context, id uint) (*Chapter, error)
}

type catalogService struct {
	repo  CatalogRepository
	cache cache.Store
}

func NewService(repo CatalogRepository, store cache.Store) CatalogService {
	return &catalogService{repo: repo, cache: store}
}

func validateName(name, kind string) error {
	if name == "" {
		return apperror.Validation(kind + " name is required")
	}
	if len(name) < 3 || len(name) > 30 {
		return apperror.Validation(kind + " Name must be between 3 and 30 characters")
	}
	return nil
}

// ListSubjects serves admins from the live table and everyone else through
// the cache. The cached payload is the serialized listing itself.
func (s *catalogService) ListSubjects(ctx context.Context, isAdmin bool) ([]SubjectJSON, error) {
	log := config.WithContext(ctx)

	if !isAdmin {
		var cached []SubjectJSON
		hit, err := s.cache.Get(ctx, cache.SubjectsKey(), &cached)
		if err != nil {
			log.WithError(err).Warn("Subject cache read failed, falling back to database")
		} else if hit {
			return cached, nil
		}
	}

	subjects, err := s.repo.FindAllSubjects()
	if err != nil {
		log.WithError(err).Error("Failed to list subjects")
		return nil, apperror.Internal("Failed to fetch subjects", err)
	}

	out := make([]SubjectJSON, 0, len(subjects))
	for _, subject := range subjects {
		chapters := make([]ChapterJSON, 0, len(subject.Chapters))
		for _, c := range subject.Chapters {
			chapters = append(chapters, ChapterJSON{
				ID:          c.ID,
				Name:        c.Name,
				Description: c.Description,
				NQuestions:  c.NQuestions,
				NQuizzes:    c.NQuizzes,
			})
		}
		out = append(out, SubjectJSON{
			ID:          subject.ID,
			Name:        subject.Name,
			Description: subject.Description,
			Chapters:    chapters,
		})
	}

	if !isAdmin {
		if err := s.cache.Set(ctx, cache.SubjectsKey(), out, cache.CatalogTTL); err != nil {
			log.WithError(err).Warn("Subject cache write failed")
		}
	}
	return out, nil
}

func (s *catalogService) CreateSubject(ctx context.Context, payload SubjectPayload) (*Subject, error) {
	log := config.WithContext(ctx)

	name := strings.TrimSpace(payload.Name)
	if err := validateName(name, "Subject"); err != nil {
		return nil, err
	}

	subject := &Subject{Name: name, Description: strings.TrimSpace(payload.Description)}
	if err := s.repo.CreateSubject(subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Subject with this name already exists")
		}
		log.WithError(err).Error("Failed to create subject")
		return nil, apperror.Internal("Failed to create subject", err)
	}

	s.invalidateSubjects(ctx)
	log.WithField("subject_id", subject.ID).Info("Subject created")
	return subject, nil
}

func (s *catalogService) UpdateSubject(ctx context.Context, id uint, payload SubjectPayload) (*Subject, error) {
	log := config.WithContext(ctx)

	subject, err := s.repo.FindSubjectByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to load subject")
		return nil, apperror.Internal("Failed to update subject", err)
	}
	if subject == nil {
		return nil, apperror.NotFound("Subject not found")
	}

	name := strings.TrimSpace(payload.Name)
	if err := validateName(name, "Subject"); err != nil {
		return nil, err
	}

	taken, err := s.repo.SubjectNameTaken(name, id)
	if err != nil {
		log.WithError(err).Error("Failed to check subject name")
		return nil, apperror.Internal("Failed to update subject", err)
	}
	if taken {
		return nil, apperror.Conflict("Subject with this name already exists")
	}

	subject.Name = name
	subject.Description = strings.TrimSpace(payload.Description)
	if err := s.repo.UpdateSubject(subject); err != nil {
		log.WithError(err).Error("Failed to update subject")
		return nil, apperror.Internal("Failed to update subject", err)
	}

	s.invalidateSubjects(ctx)
	return subject, nil
}

func (s *catalogService) DeleteSubject(ctx context.Context, id uint) error {
	log := config.WithContext(ctx)

	subject, err := s.repo.FindSubjectByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to load subject")
		return apperror.Internal("Failed to delete subject", err)
	}
	if subject == nil {
		return apperror.NotFound("Subject not found")
	}

	if err := s.repo.DeleteSubject(id); err != nil {
		log.WithError(err).Error("Failed to delete subject")
		return apperror.Internal("Failed to delete subject", err)
	}

	s.invalidateSubjects(ctx)
	log.WithField("subject_id", id).Info("Subject deleted")
	return nil
}

// ListChapters is keyed by query shape: a bare listing and each subject
// filter cache independently so different filters never collide.
func (s *catalogService) ListChapters(ctx context.Context, isAdmin bool, subjectID *uint) ([]ChapterJSON, error) {
	log := config.WithContext(ctx)

	key := cache.ChaptersKey()
	if subjectID != nil {
		key = cache.ChaptersBySubjectKey(*subjectID)
	}

	if !isAdmin {
		var cached []ChapterJSON
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.WithError(err).Warn("Chapter cache read failed, falling back to database")
		} else if hit {
			return cached, nil
		}
	}

	var (
		chapters []Chapter
		err      error
	)
	if subjectID != nil {
		chapters, err = s.repo.FindChaptersBySubject(*subjectID)
	} else {
		chapters, err = s.repo.FindAllChapters()
	}
	if err != nil {
		log.WithError(err).Error("Failed to list chapters")
		return nil, apperror.Internal("Failed to fetch chapters", err)
	}

	out := make([]ChapterJSON, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, ChapterJSON{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			NQuestions:  c.NQuestions,
			NQuizzes:    c.NQuizzes,
			SubjectID:   c.SubjectID,
		})
	}

	if !isAdmin {
		if err := s.cache.Set(ctx, key, out, cache.DefaultTTL); err != nil {
			log.WithError(err).Warn("Chapter cache write failed")
		}
	}
	return out, nil
}

func (s *catalogService) CreateChapter(ctx context.Context, payload ChapterPayload) (*Chapter, error) {
	log := config.WithContext(ctx)

	name := strings.TrimSpace(payload.Name)
	if name == "" || payload.SubjectID == 0 {
		return nil, apperror.Validation("Name & Subject are required fields")
	}
	if err := validateName(name, "Chapter"); err != nil {
		return nil, err
	}

	subject, err := s.repo.FindSubjectByID(payload.SubjectID)
	if err != nil {
		log.WithError(err).Error("Failed to load subject")
		return nil, apperror.Internal("Failed to create chapter", err)
	}
	if subject == nil {
		return nil, apperror.Validation("Given subject not found")
	}

	chapter := &Chapter{
		Name:        name,
		Description: strings.TrimSpace(payload.Description),
		SubjectID:   payload.SubjectID,
	}
	if err := s.repo.CreateChapter(chapter); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Chapter with this name already exists")
		}
		log.WithError(err).Error("Failed to create chapter")
		return nil, apperror.Internal("Failed to create chapter", err)
	}

	s.invalidateChapters(ctx, chapter.SubjectID)
	log.WithField("chapter_id", chapter.ID).Info("Chapter created")
	return chapter, nil
}

func (s *catalogService) UpdateChapter(ctx context.Context, id uint, payload ChapterPayload) (*Chapter, error) {
	log := config.WithContext(ctx)

	chapter, err := s.repo.FindChapterByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to load chapter")
		return nil, apperror.Internal("Failed to update chapter", err)
	}
	if chapter == nil {
		return nil, apperror.NotFound("Chapter not found")
	}

	if payload.Name != "" {
		name := strings.TrimSpace(payload.Name)
		if err := validateName(name, "Chapter"); err != nil {
			return nil, err
		}
		taken, err := s.repo.ChapterNameTaken(name, id)
		if err != nil {
			log.WithError(err).Error("Failed to check chapter name")
			return nil, apperror.Internal("Failed to update chapter", err)
		}
		if taken {
			return nil, apperror.Conflict("Chapter with this name already exists")
		}
		chapter.Name = name
	}

	if payload.SubjectID != 0 {
		subject, err := s.repo.FindSubjectByID(payload.SubjectID)
		if err != nil {
			log.WithError(err).Error("Failed to load subject")
			return nil, apperror.Internal("Failed to update chapter", err)
		}
		if subject != nil {
			chapter.SubjectID = payload.SubjectID
		}
	}

	if payload.Description != "" {
		chapter.Description = strings.TrimSpace(payload.Description)
	}

	if err := s.repo.UpdateChapter(chapter); err != nil {
		log.WithError(err).Error("Failed to update chapter")
		return nil, apperror.Internal("Failed to update chapter", err)
	}

	// Invalidate under the post-change subject id so the chapter's new home
	// is refreshed on the next read.
	s.invalidateChapters(ctx, chapter.SubjectID)
	return chapter, nil
}

func (s *catalogService) DeleteChapter(ctx context.Context, id uint) error {
	log := config.WithContext(ctx)

	chapter, err := s.repo.FindChapterByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to load chapter")
		return apperror.Internal("Failed to delete chapter", err)
	}
	if chapter == nil {
		return apperror.NotFound("Chapter not found")
	}

	subjectID := chapter.SubjectID
	if err := s.repo.DeleteChapter(id); err != nil {
		log.WithError(err).Error("Failed to delete chapter")
		return apperror.Internal("Failed to delete chapter", err)
	}

	s.invalidateChapters(ctx, subjectID)
	log.WithField("chapter_id", id).Info("Chapter deleted")
	return nil
}

func (s *catalogService) RecountChapter(ctx context.Context, id uint) (*Chapter, error) {
	log := config.WithContext(ctx)

	chapter, err := s.repo.RecountChapter(id)
	if err != nil {
		log.WithError(err).Error("Failed to recount chapter")
		return nil, apperror.Internal("Failed to recount chapter", err)
	}
	if chapter == nil {
		return nil, apperror.NotFound("Chapter not found")
	}

	s.invalidateChapters(ctx, chapter.SubjectID)
	return chapter, nil
}

func (s *catalogService) invalidateSubjects(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.SubjectsKey()); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Subject cache invalidation failed")
	}
}

func (s *catalogService) invalidateChapters(ctx context.Context, subjectID uint) {
	keys := []string{cache.ChaptersKey(), cache.ChaptersBySubjectKey(subjectID)}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Chapter cache invalidation failed")
	}
}
