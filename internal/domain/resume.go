package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resume is the aggregate root. Every child row carries a ResumeID
// back-reference and is created and deleted together with the root.
type Resume struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title     string    `json:"title" gorm:"not null"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PersonalInfo   *PersonalInfo   `json:"personalInfo" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
	Educations     []Education     `json:"educations" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
	Experiences    []Experience    `json:"experiences" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
	Skills         []Skill         `json:"skills" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
	Certifications []Certification `json:"certifications" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
	Awards         []Award         `json:"awards" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
	Projects       []Project       `json:"projects" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
}

// PersonalInfo is the 0..1 singleton child of a resume. A default empty
// instance is synthesized at create time when the payload omits it.
type PersonalInfo struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ResumeID     uuid.UUID `json:"resumeId" gorm:"type:uuid;not null;uniqueIndex"`
	FullName     string    `json:"fullName" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zipCode"`
	Country      string    `json:"country"`
	LinkedinURL  string    `json:"linkedinUrl"`
	GithubURL    string    `json:"githubUrl"`
	PortfolioURL string    `json:"portfolioUrl"`
	Summary      string    `json:"summary" gorm:"type:text"`
}

type Education struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ResumeID     uuid.UUID `json:"resumeId" gorm:"type:uuid;not null;index"`
	Institution  string    `json:"institution" gorm:"not null"`
	Degree       string    `json:"degree"`
	FieldOfStudy string    `json:"fieldOfStudy"`
	StartYear    string    `json:"startYear"`
	EndYear      string    `json:"endYear"`
	Location     string    `json:"location"`
	Description  string    `json:"description" gorm:"type:text"`
}

type Experience struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ResumeID    uuid.UUID `json:"resumeId" gorm:"type:uuid;not null;index"`
	Company     string    `json:"company" gorm:"not null"`
	Position    string    `json:"position" gorm:"not null"`
	Location    string    `json:"location"`
	StartYear   string    `json:"startYear"`
	EndYear     string    `json:"endYear"`
	CurrentJob  bool      `json:"currentJob"`
	Description string    `json:"description" gorm:"type:text"`
}

type Skill struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ResumeID uuid.UUID `json:"resumeId" gorm:"type:uuid;not null;index"`
	Name     string    `json:"name" gorm:"not null"`
	Level    string    `json:"level"`
}

type Certification struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ResumeID    uuid.UUID `json:"resumeId" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Issuer      string    `json:"issuer"`
	Date        string    `json:"date"`
	Description string    `json:"description" gorm:"type:text"`
}

type Award struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ResumeID    uuid.UUID `json:"resumeId" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Issuer      string    `json:"issuer"`
	Date        string    `json:"date"`
	Description string    `json:"description" gorm:"type:text"`
}

type Project struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ResumeID     uuid.UUID `json:"resumeId" gorm:"type:uuid;not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Technologies string    `json:"technologies"`
	Link         string    `json:"link"`
	StartYear    string    `json:"startYear"`
	EndYear      string    `json:"endYear"`
}
