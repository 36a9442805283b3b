package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"home_inventory/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// CredentialRepository is the SQL implementation of CredentialStore.
type CredentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Ensure implementation of CredentialStore interface at compile time.
var _ CredentialStore = (*CredentialRepository)(nil)

const (
	insertCredentialSQL = `INSERT INTO userauth (username, password_hash, salt) VALUES (?, ?, ?)`
	insertProfileSQL    = `INSERT INTO users (id, name, email) VALUES (?, ?, ?)`

	selectCredentialByUsernameSQL = `SELECT id, username, password_hash, salt, adminlevel FROM userauth WHERE username = ?`
	selectCredentialByIDSQL       = `SELECT id, username, password_hash, salt, adminlevel FROM userauth WHERE id = ?`

	updatePasswordSQL   = `UPDATE userauth SET password_hash = ?, salt = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	touchLastLoginSQL   = `UPDATE userauth SET last_login = CURRENT_TIMESTAMP WHERE id = ?`
	deleteProfileSQL    = `DELETE FROM users WHERE id = ?`
	deleteCredentialSQL = `DELETE FROM userauth WHERE id = ?`
)

// isUniqueViolation reports whether err is a unique-constraint failure on
// any column. The string fallback covers drivers (and test doubles) that
// don't expose the sqlite error code.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateWithProfile inserts the userauth row, then the dependent users row
// with the generated id, inside one transaction. Any failure after the
// first insert rolls both back; a partial account never commits.
func (r *CredentialRepository) CreateWithProfile(username, passwordHash string, salt []byte, name, email string) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin create account: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after Commit
	}()

	res, err := tx.Exec(insertCredentialSQL, username, passwordHash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert credential %q: %w", username, ErrConflict)
		}
		return 0, fmt.Errorf("insert credential %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for %q: %w", username, err)
	}

	if _, err := tx.Exec(insertProfileSQL, lastID, name, email); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert profile for %q: %w", username, ErrConflict)
		}
		return 0, fmt.Errorf("insert profile for %q: %w", username, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create account %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a credential by username. Returns (nil, nil) if not found.
func (r *CredentialRepository) GetByUsername(username string) (*models.Credential, error) {
	var c models.Credential
	err := r.db.QueryRow(selectCredentialByUsernameSQL, username).
		Scan(&c.ID, &c.Username, &c.PasswordHash, &c.Salt, &c.AdminLevel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select credential %q: %w", username, err)
	}
	return &c, nil
}

// GetByID fetches a credential by id. Returns (nil, nil) if not found.
func (r *CredentialRepository) GetByID(id int) (*models.Credential, error) {
	var c models.Credential
	err := r.db.QueryRow(selectCredentialByIDSQL, id).
		Scan(&c.ID, &c.Username, &c.PasswordHash, &c.Salt, &c.AdminLevel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select credential id=%d: %w", id, err)
	}
	return &c, nil
}

// UpdatePassword replaces hash and salt in a single statement so a reader
// can never observe a new hash with the old salt.
func (r *CredentialRepository) UpdatePassword(id int, passwordHash string, salt []byte) error {
	res, err := r.db.Exec(updatePasswordSQL, passwordHash, salt, id)
	if err != nil {
		return fmt.Errorf("update password id=%d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for id=%d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("update password id=%d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes the dependent profile row first, then the credential, in
// one transaction.
func (r *CredentialRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete account: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(deleteProfileSQL, id); err != nil {
		return fmt.Errorf("delete profile id=%d: %w", id, err)
	}

	res, err := tx.Exec(deleteCredentialSQL, id)
	if err != nil {
		return fmt.Errorf("delete credential id=%d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for id=%d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete credential id=%d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete account id=%d: %w", id, err)
	}
	return nil
}

// TouchLastLogin stamps last_login on successful login.
func (r *CredentialRepository) TouchLastLogin(id int) error {
	if _, err := r.db.Exec(touchLastLoginSQL, id); err != nil {
		return fmt.Errorf("touch last_login id=%d: %w", id, err)
	}
	return nil
}
