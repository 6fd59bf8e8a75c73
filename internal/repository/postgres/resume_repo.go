package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alex/resume-builder/internal/domain"
	"github.com/alex/resume-builder/internal/repository"
)

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *resumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	// gorm inserts the attached children in the same transaction as the root
	return r.db.WithContext(ctx).Create(resume).Error
}

func (r *resumeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error) {
	var resume domain.Resume
	err := r.db.WithContext(ctx).
		Preload("PersonalInfo").
		Preload("Educations").
		Preload("Experiences").
		Preload("Skills").
		Preload("Certifications").
		Preload("Awards").
		Preload("Projects").
		First(&resume, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resume, error) {
	var resumes []*domain.Resume
	err := r.db.WithContext(ctx).
		Preload("PersonalInfo").
		Preload("Educations").
		Preload("Experiences").
		Preload("Skills").
		Preload("Certifications").
		Preload("Awards").
		Preload("Projects").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, err
	}
	return resumes, nil
}

func (r *resumeRepository) Update(ctx context.Context, resume *domain.Resume, replaced []repository.Section) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Resume{}).
			Where("id = ?", resume.ID).
			Select("title", "updated_at").
			Updates(map[string]interface{}{
				"title":      resume.Title,
				"updated_at": resume.UpdatedAt,
			}).Error
		if err != nil {
			return err
		}

		if resume.PersonalInfo != nil {
			// Upsert keeps the singleton's identity when it already exists
			// and attaches it when the aggregate never had one.
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(resume.PersonalInfo).Error
			if err != nil {
				return err
			}
		}

		for _, section := range replaced {
			if err := replaceSection(tx, resume, section); err != nil {
				return err
			}
		}

		return nil
	})
}

// replaceSection discards a stored child collection and inserts the rows
// currently attached to the aggregate, if any.
func replaceSection(tx *gorm.DB, resume *domain.Resume, section repository.Section) error {
	switch section {
	case repository.SectionEducations:
		if err := tx.Where("resume_id = ?", resume.ID).Delete(&domain.Education{}).Error; err != nil {
			return err
		}
		if len(resume.Educations) > 0 {
			return tx.Create(&resume.Educations).Error
		}
	case repository.SectionExperiences:
		if err := tx.Where("resume_id = ?", resume.ID).Delete(&domain.Experience{}).Error; err != nil {
			return err
		}
		if len(resume.Experiences) > 0 {
			return tx.Create(&resume.Experiences).Error
		}
	case repository.SectionSkills:
		if err := tx.Where("resume_id = ?", resume.ID).Delete(&domain.Skill{}).Error; err != nil {
			return err
		}
		if len(resume.Skills) > 0 {
			return tx.Create(&resume.Skills).Error
		}
	case repository.SectionCertifications:
		if err := tx.Where("resume_id = ?", resume.ID).Delete(&domain.Certification{}).Error; err != nil {
			return err
		}
		if len(resume.Certifications) > 0 {
			return tx.Create(&resume.Certifications).Error
		}
	case repository.SectionAwards:
		if err := tx.Where("resume_id = ?", resume.ID).Delete(&domain.Award{}).Error; err != nil {
			return err
		}
		if len(resume.Awards) > 0 {
			return tx.Create(&resume.Awards).Error
		}
	case repository.SectionProjects:
		if err := tx.Where("resume_id = ?", resume.ID).Delete(&domain.Project{}).Error; err != nil {
			return err
		}
		if len(resume.Projects) > 0 {
			return tx.Create(&resume.Projects).Error
		}
	default:
		return fmt.Errorf("unknown resume section %q", section)
	}
	return nil
}

func (r *resumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Deleting children explicitly keeps the no-orphans invariant independent
	// of database-level cascade rules.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children := []interface{}{
			&domain.Education{},
			&domain.Experience{},
			&domain.Skill{},
			&domain.Certification{},
			&domain.Award{},
			&domain.Project{},
			&domain.PersonalInfo{},
		}
		for _, child := range children {
			if err := tx.Where("resume_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&domain.Resume{}, "id = ?", id).Error
	})
}
