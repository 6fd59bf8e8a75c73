package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/alex/resume-builder/internal/auth"
	"github.com/alex/resume-builder/internal/config"
	"github.com/alex/resume-builder/internal/repository"
)

type Services struct {
	Auth   *AuthService
	Resume *ResumeService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, logger *zap.Logger) *Services {
	tokens := auth.NewTokenManager(
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpirationHours)*time.Hour,
		logger,
	)

	return &Services{
		Auth:   NewAuthService(repos.User, tokens),
		Resume: NewResumeService(repos.Resume, auth.NewOwnerGuard()),
	}
}
