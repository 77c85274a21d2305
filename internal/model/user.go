package model

import "time"

// User is the single persisted record of this service. PasswordHash is an
// opaque bcrypt digest, never the plaintext password.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	IsActive     bool
}
