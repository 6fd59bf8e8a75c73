package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/alex/resume-builder/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Section names a replaceable child collection of the resume aggregate.
type Section string

const (
	SectionEducations     Section = "educations"
	SectionExperiences    Section = "experiences"
	SectionSkills         Section = "skills"
	SectionCertifications Section = "certifications"
	SectionAwards         Section = "awards"
	SectionProjects       Section = "projects"
)

type ResumeRepository interface {
	// Create persists the root together with whatever children are attached.
	Create(ctx context.Context, resume *domain.Resume) error
	// GetByID loads the full aggregate: root, personal info and all six
	// child collections.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resume, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resume, error)
	// Update saves root scalars and personal info, and for every section in
	// replaced discards the stored rows and inserts the rows attached to
	// resume, all inside one transaction. Sections not listed are untouched.
	Update(ctx context.Context, resume *domain.Resume, replaced []Section) error
	// Delete removes the root and every child row in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User   UserRepository
	Resume ResumeRepository
}
