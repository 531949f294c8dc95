package domain

import "time"

type User struct {
	ID           string
	Username     string // unique, case-insensitive for lookup
	Name         string // display name
	PasswordHash string // argon2id encoded
	Role         Role
	MFAEnabled   *time.Time // Timestamp when TOTP was activated (nullable)
	MFASecret    *string    // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MFAActive reports whether the user has completed TOTP activation.
func (u User) MFAActive() bool {
	return u.MFAEnabled != nil && u.MFASecret != nil && *u.MFASecret != ""
}
