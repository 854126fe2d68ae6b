package domain

import "time"

// User represents a known bot user, recorded on first contact.
type User struct {
	UserID    int64
	Username  string
	CreatedAt time.Time
}

// QueryLogEntry is one logged search query. Append-only, never mutated.
type QueryLogEntry struct {
	UserID    int64
	Username  string
	Query     string
	Timestamp time.Time
}
