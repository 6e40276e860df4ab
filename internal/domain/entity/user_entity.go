package entity

import (
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Author returns the public author reference embedded in projects.
func (u *User) Author() Author {
	return Author{ID: u.ID, Name: u.Name, Email: u.Email}
}
