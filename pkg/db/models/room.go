package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Room is a bookable unit with a flat nightly rate.
type Room struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MerchantID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_rooms_merchant" json:"merchant_id"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	Description      string         `gorm:"type:text" json:"description,omitempty"`
	NightlyRateCents int64          `gorm:"not null" json:"nightly_rate_cents"`
	MaxGuests        int            `gorm:"not null;default:2" json:"max_guests"`
	Amenities        pq.StringArray `gorm:"type:text[]" json:"amenities,omitempty"`
	IsActive         bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default table name.
func (Room) TableName() string {
	return "rooms"
}
