package types

import (
	"time"

	"gorm.io/datatypes"
)

// Achievement is a static badge definition. The catalog is seeded at startup
// and read-only afterwards.
type Achievement struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string         `gorm:"type:text;column:description" json:"description"`
	Icon        string         `gorm:"type:text;column:icon" json:"icon"`
	Criteria    datatypes.JSON `gorm:"column:criteria" json:"criteria"`
	Points      int            `gorm:"column:points" json:"points"`
	Category    string         `gorm:"index;column:category" json:"category"`
	Level       int            `gorm:"column:level" json:"level"`
}

func (Achievement) TableName() string { return "achievements" }

type UserAchievement struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        uint         `gorm:"not null;index;column:user_id" json:"user_id"`
	User          *User        `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	AchievementID uint         `gorm:"not null;index;column:achievement_id" json:"achievement_id"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID;references:ID" json:"achievement,omitempty"`
	EarnedAt      time.Time    `gorm:"not null;column:earned_at" json:"earned_at"`
}

func (UserAchievement) TableName() string { return "user_achievements" }
