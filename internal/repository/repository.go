package repository

import (
	"database/sql"
	"errors"

	"home_inventory/internal/models"
	dbinit "home_inventory/internal/repository/db"
)

// Sentinel errors mapped to client-facing failures by the service layer.
// Anything else coming out of this package is a storage failure and must
// surface as a 5xx, never as "no such user".
var (
	ErrConflict = errors.New("unique constraint violated")
	ErrNotFound = errors.New("record not found")
)

// CredentialStore persists the userauth record and its dependent profile
// row. The credential is the root of the 1:1 relationship.
type CredentialStore interface {
	// CreateWithProfile inserts the credential and its profile in one
	// transaction and returns the generated id. Returns ErrConflict if
	// username or email is already taken.
	CreateWithProfile(username, passwordHash string, salt []byte, name, email string) (int, error)
	// GetByUsername returns (nil, nil) when the username is absent.
	GetByUsername(username string) (*models.Credential, error)
	// GetByID returns (nil, nil) when the id is absent.
	GetByID(id int) (*models.Credential, error)
	// UpdatePassword replaces hash and salt in a single statement.
	// Returns ErrNotFound if the id does not exist.
	UpdatePassword(id int, passwordHash string, salt []byte) error
	// Delete removes the profile row then the credential row in one
	// transaction. Returns ErrNotFound if the credential does not exist.
	Delete(id int) error
	// TouchLastLogin stamps last_login. Best-effort on successful login.
	TouchLastLogin(id int) error
}

// ProfileStore reads and updates the user-facing profile row.
type ProfileStore interface {
	// GetByID returns (nil, nil) when the id is absent.
	GetByID(id int) (*models.Profile, error)
	// Update rewrites the mutable profile fields. Returns ErrNotFound if
	// the id does not exist, ErrConflict if the new email is taken.
	Update(p models.Profile) error
}

type Repository struct {
	Credentials CredentialStore
	Profiles    ProfileStore
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Credentials: NewCredentialRepository(db),
		Profiles:    NewProfileRepository(db),
	}
}

// InitDB re-exports the sqlite bootstrap so main wires a single package.
func InitDB(path string) (*sql.DB, error) {
	return dbinit.InitDB(path)
}
