package types

import (
	"time"
)

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Username       string     `gorm:"uniqueIndex;not null;column:username" json:"username"`
	HashedPassword string     `gorm:"not null;column:hashed_password" json:"-"`
	CreatedAt      time.Time  `gorm:"not null;column:created_at" json:"created_at"`
	LastLogin      *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
}

func (User) TableName() string { return "users" }
