package models

import (
	"time"
)

// Do not hold the password
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// It has the hashed password. Should never leave the storage and auth layers.
type UserWithPassword struct {
	User           User
	HashedPassword []byte
}

// Identity is the caller as proven by a verified credential. It is the only
// owner filter the post operations trust.
type Identity struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
