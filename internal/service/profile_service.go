package service

import (
	"fmt"
	"net/mail"
	"strings"

	"home_inventory/internal/models"
	"home_inventory/internal/repository"
)

// ProfileService reads and updates the caller's own profile. The id always
// comes from verified session claims.
type ProfileService struct {
	profiles repository.ProfileStore
}

func NewProfileService(profiles repository.ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the profile for the given account id.
func (s *ProfileService) Get(userID int) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile id=%d: %w", userID, ErrNotFound)
	}
	return profile, nil
}

// Update rewrites the mutable profile fields for the given account id.
func (s *ProfileService) Update(userID int, name, email, bio, place string) (*models.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: bad email: %w", ErrValidation, err)
	}

	p := models.Profile{ID: userID, Name: name, Email: email, Bio: bio, Place: place}
	if err := s.profiles.Update(p); err != nil {
		return nil, err
	}
	return &p, nil
}
