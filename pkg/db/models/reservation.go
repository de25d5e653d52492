package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

// Reservation holds a room for an inclusive [check_in, check_out] span.
// Nights are billed as check_out minus check_in, but the check-out day
// itself still blocks the calendar.
type Reservation struct {
	ID         uuid.UUID               `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoomID     uuid.UUID               `gorm:"type:uuid;not null;index:idx_reservations_room" json:"room_id"`
	MerchantID uuid.UUID               `gorm:"type:uuid;not null;index:idx_reservations_merchant" json:"merchant_id"`
	GuestName  string                  `gorm:"size:255;not null" json:"guest_name"`
	CheckIn    types.Date              `gorm:"type:date;not null" json:"check_in"`
	CheckOut   types.Date              `gorm:"type:date;not null" json:"check_out"`
	Nights     int                     `gorm:"not null" json:"nights"`
	TotalCents int64                   `gorm:"not null" json:"total_cents"`
	Status     enums.ReservationStatus `gorm:"size:32;not null;default:'pending'" json:"status"`
	Channel    enums.BookingChannel    `gorm:"size:32;not null;default:'online'" json:"channel"`
	CreatedAt  time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time               `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default table name.
func (Reservation) TableName() string {
	return "reservations"
}
