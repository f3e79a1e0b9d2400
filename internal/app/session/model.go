package session

import "time"

type Session struct {
	ID         uint64    `gorm:"primaryKey"`
	SessionKey string    `gorm:"unique;not null"`
	StartedAt  time.Time `gorm:"not null"`
	EndedAt    *time.Time
	UserAgent  *string `gorm:"type:text"`
	UserID     string  `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// User is a read-only view over the users table, scoped to what the session
// layer needs. The full profile lives in the user package.
type User struct {
	ID     string `gorm:"type:uuid;primaryKey"`
	Name   string
	Email  string
	Role   string
	TeamID string
}

type CreateSessionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
