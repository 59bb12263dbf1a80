package types

import (
	"time"
)

// Interaction kinds recorded by the tracker.
const (
	InteractionViewBusiness   = "view_business"
	InteractionSearchLocation = "search_location"
	InteractionFilterCategory = "filter_category"
)

// UserInteraction is an append-only log row. Rows are never updated or
// deleted; the only input to personalization.
type UserInteraction struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;index;column:user_id" json:"user_id"`
	User                *User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	InteractionType     string    `gorm:"not null;index;column:interaction_type" json:"interaction_type"`
	BusinessID          *uint     `gorm:"index;column:business_id" json:"business_id,omitempty"`
	Business            *Business `gorm:"foreignKey:BusinessID;references:ID" json:"business,omitempty"`
	Category            *string   `gorm:"column:category" json:"category,omitempty"`
	State               *string   `gorm:"size:2;column:state" json:"state,omitempty"`
	SustainabilityScore *float64  `gorm:"column:sustainability_score" json:"sustainability_score,omitempty"`
	CreatedAt           time.Time `gorm:"not null;index;column:created_at" json:"created_at"`
}

func (UserInteraction) TableName() string { return "user_interactions" }
