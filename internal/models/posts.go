package models

import (
	"time"
)

type Post struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	OwnerID   int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
