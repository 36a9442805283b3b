package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"home_inventory/internal/models"
)

// ProfileRepository is the SQL implementation of ProfileStore.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

var _ ProfileStore = (*ProfileRepository)(nil)

const (
	selectProfileByIDSQL = `SELECT id, name, email, COALESCE(bio, ''), COALESCE(place, '') FROM users WHERE id = ?`
	updateProfileSQL     = `UPDATE users SET name = ?, email = ?, bio = ?, place = ? WHERE id = ?`
)

// GetByID fetches a profile by id. Returns (nil, nil) if not found.
func (r *ProfileRepository) GetByID(id int) (*models.Profile, error) {
	var p models.Profile
	err := r.db.QueryRow(selectProfileByIDSQL, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.Bio, &p.Place)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select profile id=%d: %w", id, err)
	}
	return &p, nil
}

// Update rewrites the mutable profile fields.
func (r *ProfileRepository) Update(p models.Profile) error {
	res, err := r.db.Exec(updateProfileSQL, p.Name, p.Email, p.Bio, p.Place, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update profile id=%d: %w", p.ID, ErrConflict)
		}
		return fmt.Errorf("update profile id=%d: %w", p.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for id=%d: %w", p.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update profile id=%d: %w", p.ID, ErrNotFound)
	}
	return nil
}
