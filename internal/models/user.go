package models

import "time"

// Credential is one row of the userauth table: the security-relevant half
// of an account. Salt is the exact salt that produced PasswordHash; the
// two are only ever written together.
type Credential struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // don't expose hash
	Salt         []byte     `json:"-"` // don't expose salt
	AdminLevel   int        `json:"adminlevel"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Profile is the user-facing half of an account (users table), linked
// 1:1 to a Credential by sharing its id. A Profile never exists without
// its Credential.
type Profile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio,omitempty"`
	Place string `json:"place,omitempty"`
}
