package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alex/resume-builder/internal/domain"
	"github.com/alex/resume-builder/internal/repository"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Resume{},
		&domain.PersonalInfo{},
		&domain.Education{},
		&domain.Experience{},
		&domain.Skill{},
		&domain.Certification{},
		&domain.Award{},
		&domain.Project{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:   NewUserRepository(db),
		Resume: NewResumeRepository(db),
	}
}
