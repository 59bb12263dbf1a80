package types

import (
	"time"
)

type UserFavorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_business;column:user_id" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	BusinessID uint      `gorm:"not null;uniqueIndex:idx_user_business;column:business_id" json:"business_id"`
	Business   *Business `gorm:"foreignKey:BusinessID;references:ID" json:"business,omitempty"`
	CreatedAt  time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (UserFavorite) TableName() string { return "user_favorites" }
