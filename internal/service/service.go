package service

import (
	"time"

	"home_inventory/internal/models"
	"home_inventory/internal/repository"
)

// Authorization covers the account lifecycle: registration through deletion.
type Authorization interface {
	Register(in RegisterInput) (int, error)
	Login(username, password string) (*LoginResult, error)
	ChangePassword(userID int, oldPassword, newPassword string) error
	DeleteAccount(userID int) error
}

// Sessions issues and verifies stateless session tokens.
type Sessions interface {
	Issue(userID int, username string) (string, time.Time, error)
	Verify(accessToken string) (*SessionClaims, error)
	Decode(accessToken string) (*SessionClaims, error)
}

// Profiles exposes the caller's own profile.
type Profiles interface {
	Get(userID int) (*models.Profile, error)
	Update(userID int, name, email, bio, place string) (*models.Profile, error)
}

// Config carries the construction-time knobs the services need. Built once
// at startup from the process configuration.
type Config struct {
	TokenSecret    []byte
	TokenTTL       time.Duration
	HashIterations int // 0 means the minimum
}

// Service aggregates all sub-services behind one wiring point.
type Service struct {
	Authorization
	Sessions
	Profiles
}

func NewService(repos *repository.Repository, cfg Config) *Service {
	hasher := NewHasher(cfg.HashIterations)
	tokens := NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	return &Service{
		Authorization: NewAuthService(repos.Credentials, repos.Profiles, hasher, tokens),
		Sessions:      tokens,
		Profiles:      NewProfileService(repos.Profiles),
	}
}
