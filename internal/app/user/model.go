package user

import "time"

type User struct {
	ID           string    `json:"_id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Role         string    `json:"role"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	TeamID       string    `json:"team_id" gorm:"index;not null"`
	ProfilePhoto string    `json:"-"`
	PhotoURL     string    `json:"profilePhoto" gorm:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Partner is the chat-list projection: a team member the caller can open a
// conversation with.
type Partner struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	PhotoURL string `json:"profilePhoto"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
