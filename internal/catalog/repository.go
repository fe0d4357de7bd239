package catalog

import (
	"errors"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	CreateSubject(s *Subject) error
	FindSubjectByID(id uint) (*Subject, error)
	FindAllSubjects() ([]Subject, error)
	SubjectNameTaken(name string, excludeID uint) (bool, error)
	UpdateSubject(s *Subject) error
	DeleteSubject(id uint) error

	CreateChapter(c *Chapter) error
	FindChapterByID(id uint) (*Chapter, error)
	FindAllChapters() ([]Chapter, error)
	FindChaptersBySubject(subjectID uint) ([]Chapter, error)
	ChapterNameTaken(name string, excludeID uint) (bool, error)
	UpdateChapter(c *Chapter) error
	DeleteChapter(id uint) error

	RecountChapter(id uint) (*Chapter, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateSubject(s *Subject) error {
	return r.db.Create(s).Error
}

func (r *catalogRepository) FindSubjectByID(id uint) (*Subject, error) {
	var s Subject
	if err := r.db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *catalogRepository) FindAllSubjects() ([]Subject, error) {
	var subjects []Subject
	if err := r.db.Preload("Chapters").Order("id ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *catalogRepository) SubjectNameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Subject{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *catalogRepository) UpdateSubject(s *Subject) error {
	return r.db.Save(s).Error
}

// DeleteSubject relies on the ON DELETE CASCADE constraints to remove the
// subject's chapters and, transitively, their quizzes and questions.
func (r *catalogRepository) DeleteSubject(id uint) error {
	return r.db.Delete(&Subject{}, id).Error
}

func (r *catalogRepository) CreateChapter(c *Chapter) error {
	return r.db.Create(c).Error
}

func (r *catalogRepository) FindChapterByID(id uint) (*Chapter, error) {
	var c Chapter
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *catalogRepository) FindAllChapters() ([]Chapter, error) {
	var chapters []Chapter
	if err := r.db.Order("id ASC").Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *catalogRepository) FindChaptersBySubject(subjectID uint) ([]Chapter, error) {
	var chapters []Chapter
	if err := r.db.Where("subject_id = ?", subjectID).Order("id ASC").Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *catalogRepository) ChapterNameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Chapter{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *catalogRepository) UpdateChapter(c *Chapter) error {
	return r.db.Save(c).Error
}

func (r *catalogRepository) DeleteChapter(id uint) error {
	return r.db.Delete(&Chapter{}, id).Error
}

// RecountChapter rederives the denormalized counters from the actual child
// rows. The write paths maintain the counters incrementally; this is the
// repair path for any drift.
func (r *catalogRepository) RecountChapter(id uint) (*Chapter, error) {
	chapter, err := r.FindChapterByID(id)
	if err != nil || chapter == nil {
		return chapter, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		var nQuizzes, nQuestions int64

		if err := tx.Table("quizzes").Where("chapter_id = ?", id).Count(&nQuizzes).Error; err != nil {
			return err
		}
		if err := tx.Table("questions").
			Joins("JOIN quizzes ON quizzes.id = questions.quiz_id").
			Where("quizzes.chapter_id = ?", id).
			Count(&nQuestions).Error; err != nil {
			return err
		}

		chapter.NQuizzes = int(nQuizzes)
		chapter.NQuestions = int(nQuestions)
		return tx.Model(&Chapter{}).Where("id = ?", id).Updates(map[string]interface{}{
			"n_quizzes":   chapter.NQuizzes,
			"n_questions": chapter.NQuestions,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return chapter, nil
}
