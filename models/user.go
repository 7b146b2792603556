package models

import (
	"time"
)

// User is a console account. Buyers never log in; the only accounts are
// admins and whatever non-admin accounts an operator provisions.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"-"`
	DeletedAt      *time.Time `gorm:"index" json:"-"`
	Email          string     `gorm:"size:255;not null;unique" json:"email"`
	HashedPassword []byte     `gorm:"not null" json:"-"`
	RoleID         *uint      `gorm:"index" json:"-"`
	Role           Role       `gorm:"foreignKey:RoleID;references:ID" json:"role"`
}

// IsAdmin reports whether the loaded role grants console access. Callers
// must have preloaded or resolved Role from the database; the zero value is
// never admin.
func (u User) IsAdmin() bool {
	return u.Role.Name == RoleAdmin
}
