package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alex/resume-builder/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

// BuildAndAuthenticate creates a user via API and returns the user and token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:       userID,
		Username: authResp.User.Username,
		Email:    authResp.User.Email,
	}

	return user, authResp.Token
}

// ResumeBuilder creates test resumes with a builder pattern
type ResumeBuilder struct {
	owner       *domain.User
	title       string
	educations  []domain.Education
	experiences []domain.Experience
	skills      []domain.Skill
}

// NewResumeBuilder creates a new ResumeBuilder with default values
func NewResumeBuilder(owner *domain.User) *ResumeBuilder {
	return &ResumeBuilder{
		owner: owner,
		title: fmt.Sprintf("resume_%s", uuid.New().String()[:8]),
	}
}

// WithTitle sets the resume title
func (b *ResumeBuilder) WithTitle(title string) *ResumeBuilder {
	b.title = title
	return b
}

// WithEducation appends an education entry
func (b *ResumeBuilder) WithEducation(institution, degree string) *ResumeBuilder {
	b.educations = append(b.educations, domain.Education{
		ID:          uuid.New(),
		Institution: institution,
		Degree:      degree,
	})
	return b
}

// WithExperience appends an experience entry
func (b *ResumeBuilder) WithExperience(company, position string) *ResumeBuilder {
	b.experiences = append(b.experiences, domain.Experience{
		ID:       uuid.New(),
		Company:  company,
		Position: position,
	})
	return b
}

// WithSkill appends a skill entry
func (b *ResumeBuilder) WithSkill(name, level string) *ResumeBuilder {
	b.skills = append(b.skills, domain.Skill{
		ID:    uuid.New(),
		Name:  name,
		Level: level,
	})
	return b
}

// Build creates the resume aggregate in the database
func (b *ResumeBuilder) Build(t *testing.T, db *gorm.DB) *domain.Resume {
	t.Helper()

	now := time.Now()
	resume := &domain.Resume{
		ID:        uuid.New(),
		Title:     b.title,
		UserID:    b.owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resume.PersonalInfo = &domain.PersonalInfo{
		ID:       uuid.New(),
		ResumeID: resume.ID,
	}
	for i := range b.educations {
		b.educations[i].ResumeID = resume.ID
	}
	for i := range b.experiences {
		b.experiences[i].ResumeID = resume.ID
	}
	for i := range b.skills {
		b.skills[i].ResumeID = resume.ID
	}
	resume.Educations = b.educations
	resume.Experiences = b.experiences
	resume.Skills = b.skills

	if err := db.Create(resume).Error; err != nil {
		t.Fatalf("failed to create resume: %v", err)
	}

	return resume
}
