package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"home_inventory/internal/repository"
)

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password" so responses cannot be used for username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("invalid user data")
	ErrConflict           = repository.ErrConflict
	ErrNotFound           = repository.ErrNotFound
)

// RegisterInput is the validated payload for account creation.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Email    string
}

// LoginResult carries the session token plus the denormalized profile
// fields the UI wants immediately after login.
type LoginResult struct {
	Token      string
	ExpiresAt  time.Time
	Name       string
	AdminLevel int
}

// AuthService orchestrates registration, login, password change, and
// account deletion over the credential store, the hasher, and the token
// service.
type AuthService struct {
	creds    repository.CredentialStore
	profiles repository.ProfileStore
	hasher   *Hasher
	tokens   *TokenService
}

func NewAuthService(creds repository.CredentialStore, profiles repository.ProfileStore, hasher *Hasher, tokens *TokenService) *AuthService {
	return &AuthService{creds: creds, profiles: profiles, hasher: hasher, tokens: tokens}
}

// Register creates the credential and its dependent profile atomically and
// returns the new account id.
func (s *AuthService) Register(in RegisterInput) (int, error) {
	if err := validateRegisterInput(in); err != nil {
		return 0, err
	}

	salt, err := NewSalt()
	if err != nil {
		return 0, err
	}
	hash, err := s.hasher.Derive(in.Password, salt)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return s.creds.CreateWithProfile(in.Username, hash, salt, in.Name, in.Email)
}

// Login verifies the password against the stored salt+hash and mints a
// session token embedding {id, username}. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	cred, err := s.creds.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, cred.Salt, cred.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(cred.ID, cred.Username)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{
		Token:      token,
		ExpiresAt:  expiresAt,
		AdminLevel: cred.AdminLevel,
	}
	if profile, err := s.profiles.GetByID(cred.ID); err == nil && profile != nil {
		result.Name = profile.Name
	}

	// Best-effort; a failed stamp must not fail the login.
	_ = s.creds.TouchLastLogin(cred.ID)

	return result, nil
}

// ChangePassword re-verifies the old password, then writes a fresh salt
// and rehash in one atomic update. userID comes from verified session
// claims, never from the request body.
func (s *AuthService) ChangePassword(userID int, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: new password is empty", ErrValidation)
	}

	cred, err := s.creds.GetByID(userID)
	if err != nil {
		return err
	}
	if cred == nil {
		return fmt.Errorf("account id=%d: %w", userID, ErrNotFound)
	}

	if !s.hasher.Verify(oldPassword, cred.Salt, cred.PasswordHash) {
		return ErrInvalidCredentials
	}

	salt, err := NewSalt()
	if err != nil {
		return err
	}
	hash, err := s.hasher.Derive(newPassword, salt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return s.creds.UpdatePassword(userID, hash, salt)
}

// DeleteAccount destroys the credential and its profile. userID comes
// from verified session claims only.
func (s *AuthService) DeleteAccount(userID int) error {
	return s.creds.Delete(userID)
}

func validateRegisterInput(in RegisterInput) error {
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("%w: username is empty", ErrValidation)
	}
	if strings.TrimSpace(in.Password) == "" {
		return fmt.Errorf("%w: password is empty", ErrValidation)
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: bad email: %w", ErrValidation, err)
	}
	return nil
}
