package domain

import (
	"crypto/sha512"
	"encoding/hex"
	"time"
)

// User represents an account. The password is stored as an unsalted SHA-512
// hex digest, kept for wire-format compatibility with the system this
// replaces. Switching to a salted scheme would invalidate existing hashes.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HashPassword returns the SHA-512 hex digest of the given password.
func HashPassword(password string) string {
	sum := sha512.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}
