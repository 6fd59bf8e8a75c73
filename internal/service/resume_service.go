package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alex/resume-builder/internal/auth"
	"github.com/alex/resume-builder/internal/domain"
	"github.com/alex/resume-builder/internal/repository"
)

// ResumeService owns the lifecycle of the resume aggregate. Child records
// are value objects: they are always constructed fresh from payload fields
// and bound to the root, never aliased from caller-supplied structures.
type ResumeService struct {
	resumeRepo repository.ResumeRepository
	guard      auth.OwnerGuard
}

func NewResumeService(resumeRepo repository.ResumeRepository, guard auth.OwnerGuard) *ResumeService {
	return &ResumeService{
		resumeRepo: resumeRepo,
		guard:      guard,
	}
}

type PersonalInfoInput struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	LinkedinURL  string `json:"linkedinUrl"`
	GithubURL    string `json:"githubUrl"`
	PortfolioURL string `json:"portfolioUrl"`
	Summary      string `json:"summary"`
}

type EducationInput struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    string `json:"startYear"`
	EndYear      string `json:"endYear"`
	Location     string `json:"location"`
	Description  string `json:"description"`
}

type ExperienceInput struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartYear   string `json:"startYear"`
	EndYear     string `json:"endYear"`
	CurrentJob  bool   `json:"currentJob"`
	Description string `json:"description"`
}

type SkillInput struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type CertificationInput struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type AwardInput struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type ProjectInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	Link         string `json:"link"`
	StartYear    string `json:"startYear"`
	EndYear      string `json:"endYear"`
}

type CreateResumeInput struct {
	Title          string               `json:"title" validate:"required"`
	PersonalInfo   *PersonalInfoInput   `json:"personalInfo"`
	Educations     []EducationInput     `json:"educations"`
	Experiences    []ExperienceInput    `json:"experiences"`
	Skills         []SkillInput         `json:"skills"`
	Certifications []CertificationInput `json:"certifications"`
	Awards         []AwardInput         `json:"awards"`
	Projects       []ProjectInput       `json:"projects"`
}

// UpdateResumeInput distinguishes an absent collection (nil pointer, leave
// the stored rows alone) from a present-but-empty one (clear the section).
type UpdateResumeInput struct {
	Title          *string               `json:"title"`
	PersonalInfo   *PersonalInfoInput    `json:"personalInfo"`
	Educations     *[]EducationInput     `json:"educations"`
	Experiences    *[]ExperienceInput    `json:"experiences"`
	Skills         *[]SkillInput         `json:"skills"`
	Certifications *[]CertificationInput `json:"certifications"`
	Awards         *[]AwardInput         `json:"awards"`
	Projects       *[]ProjectInput       `json:"projects"`
}

func (s *ResumeService) Create(ctx context.Context, ownerID uuid.UUID, input CreateResumeInput) (*domain.Resume, error) {
	now := time.Now()
	resume := &domain.Resume{
		ID:        uuid.New(),
		Title:     input.Title,
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.PersonalInfo != nil {
		resume.PersonalInfo = buildPersonalInfo(resume.ID, *input.PersonalInfo)
	} else {
		// Every aggregate carries a personal-info slot, even if empty
		resume.PersonalInfo = buildPersonalInfo(resume.ID, PersonalInfoInput{})
	}

	resume.Educations = buildEducations(resume.ID, input.Educations)
	resume.Experiences = buildExperiences(resume.ID, input.Experiences)
	resume.Skills = buildSkills(resume.ID, input.Skills)
	resume.Certifications = buildCertifications(resume.ID, input.Certifications)
	resume.Awards = buildAwards(resume.ID, input.Awards)
	resume.Projects = buildProjects(resume.ID, input.Projects)

	if err := s.resumeRepo.Create(ctx, resume); err != nil {
		return nil, err
	}

	return resume, nil
}

func (s *ResumeService) Get(ctx context.Context, id, callerID uuid.UUID) (*domain.Resume, error) {
	return s.load(ctx, id, callerID)
}

func (s *ResumeService) List(ctx context.Context, callerID uuid.UUID) ([]*domain.Resume, error) {
	// Pre-scoped by owner, no per-aggregate guard check needed
	return s.resumeRepo.GetByOwner(ctx, callerID)
}

func (s *ResumeService) Update(ctx context.Context, id, callerID uuid.UUID, input UpdateResumeInput) (*domain.Resume, error) {
	resume, err := s.load(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		resume.Title = *input.Title
	}

	if input.PersonalInfo != nil {
		if resume.PersonalInfo == nil {
			resume.PersonalInfo = buildPersonalInfo(resume.ID, *input.PersonalInfo)
		} else {
			// Overwrite scalars in place, keeping the singleton's identity
			applyPersonalInfo(resume.PersonalInfo, *input.PersonalInfo)
		}
	}

	var replaced []repository.Section
	if input.Educations != nil {
		resume.Educations = buildEducations(resume.ID, *input.Educations)
		replaced = append(replaced, repository.SectionEducations)
	}
	if input.Experiences != nil {
		resume.Experiences = buildExperiences(resume.ID, *input.Experiences)
		replaced = append(replaced, repository.SectionExperiences)
	}
	if input.Skills != nil {
		resume.Skills = buildSkills(resume.ID, *input.Skills)
		replaced = append(replaced, repository.SectionSkills)
	}
	if input.Certifications != nil {
		resume.Certifications = buildCertifications(resume.ID, *input.Certifications)
		replaced = append(replaced, repository.SectionCertifications)
	}
	if input.Awards != nil {
		resume.Awards = buildAwards(resume.ID, *input.Awards)
		replaced = append(replaced, repository.SectionAwards)
	}
	if input.Projects != nil {
		resume.Projects = buildProjects(resume.ID, *input.Projects)
		replaced = append(replaced, repository.SectionProjects)
	}

	resume.UpdatedAt = time.Now()

	if err := s.resumeRepo.Update(ctx, resume, replaced); err != nil {
		return nil, err
	}

	return resume, nil
}

func (s *ResumeService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	if _, err := s.load(ctx, id, callerID); err != nil {
		return err
	}
	return s.resumeRepo.Delete(ctx, id)
}

// load fetches the aggregate and gates it on ownership. The guard runs only
// after a successful lookup, so a missing aggregate surfaces as not-found
// regardless of who asks.
func (s *ResumeService) load(ctx context.Context, id, callerID uuid.UUID) (*domain.Resume, error) {
	resume, err := s.resumeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, err
	}

	if !s.guard.Allow(callerID, resume.UserID) {
		return nil, domain.ErrForbidden
	}

	return resume, nil
}

func buildPersonalInfo(resumeID uuid.UUID, in PersonalInfoInput) *domain.PersonalInfo {
	info := &domain.PersonalInfo{
		ID:       uuid.New(),
		ResumeID: resumeID,
	}
	applyPersonalInfo(info, in)
	return info
}

func applyPersonalInfo(info *domain.PersonalInfo, in PersonalInfoInput) {
	info.FullName = in.FullName
	info.Email = in.Email
	info.Phone = in.Phone
	info.Address = in.Address
	info.City = in.City
	info.State = in.State
	info.ZipCode = in.ZipCode
	info.Country = in.Country
	info.LinkedinURL = in.LinkedinURL
	info.GithubURL = in.GithubURL
	info.PortfolioURL = in.PortfolioURL
	info.Summary = in.Summary
}

func buildEducations(resumeID uuid.UUID, in []EducationInput) []domain.Education {
	out := make([]domain.Education, 0, len(in))
	for _, e := range in {
		out = append(out, domain.Education{
			ID:           uuid.New(),
			ResumeID:     resumeID,
			Institution:  e.Institution,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			StartYear:    e.StartYear,
			EndYear:      e.EndYear,
			Location:     e.Location,
			Description:  e.Description,
		})
	}
	return out
}

func buildExperiences(resumeID uuid.UUID, in []ExperienceInput) []domain.Experience {
	out := make([]domain.Experience, 0, len(in))
	for _, e := range in {
		out = append(out, domain.Experience{
			ID:          uuid.New(),
			ResumeID:    resumeID,
			Company:     e.Company,
			Position:    e.Position,
			Location:    e.Location,
			StartYear:   e.StartYear,
			EndYear:     e.EndYear,
			CurrentJob:  e.CurrentJob,
			Description: e.Description,
		})
	}
	return out
}

func buildSkills(resumeID uuid.UUID, in []SkillInput) []domain.Skill {
	out := make([]domain.Skill, 0, len(in))
	for _, sk := range in {
		out = append(out, domain.Skill{
			ID:       uuid.New(),
			ResumeID: resumeID,
			Name:     sk.Name,
			Level:    sk.Level,
		})
	}
	return out
}

func buildCertifications(resumeID uuid.UUID, in []CertificationInput) []domain.Certification {
	out := make([]domain.Certification, 0, len(in))
	for _, c := range in {
		out = append(out, domain.Certification{
			ID:          uuid.New(),
			ResumeID:    resumeID,
			Name:        c.Name,
			Issuer:      c.Issuer,
			Date:        c.Date,
			Description: c.Description,
		})
	}
	return out
}

func buildAwards(resumeID uuid.UUID, in []AwardInput) []domain.Award {
	out := make([]domain.Award, 0, len(in))
	for _, a := range in {
		out = append(out, domain.Award{
			ID:          uuid.New(),
			ResumeID:    resumeID,
			Title:       a.Title,
			Issuer:      a.Issuer,
			Date:        a.Date,
			Description: a.Description,
		})
	}
	return out
}

func buildProjects(resumeID uuid.UUID, in []ProjectInput) []domain.Project {
	out := make([]domain.Project, 0, len(in))
	for _, p := range in {
		out = append(out, domain.Project{
			ID:           uuid.New(),
			ResumeID:     resumeID,
			Name:         p.Name,
			Description:  p.Description,
			Technologies: p.Technologies,
			Link:         p.Link,
			StartYear:    p.StartYear,
			EndYear:      p.EndYear,
		})
	}
	return out
}
