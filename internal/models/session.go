package models

import "time"

// Session is a logged-in user cached in the store with a fixed expiry.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}
