package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/pkg/db/models"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

// RoomDTO represents a bookable unit returned to clients.
type RoomDTO struct {
	ID               uuid.UUID `json:"id"`
	MerchantID       uuid.UUID `json:"merchant_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	MaxGuests        int       `json:"max_guests"`
	Amenities        []string  `json:"amenities,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ReservationDTO represents a stay held against a room.
type ReservationDTO struct {
	ID         uuid.UUID  `json:"id"`
	RoomID     uuid.UUID  `json:"room_id"`
	MerchantID uuid.UUID  `json:"merchant_id"`
	GuestName  string     `json:"guest_name"`
	CheckIn    types.Date `json:"check_in"`
	CheckOut   types.Date `json:"check_out"`
	Nights     int        `json:"nights"`
	TotalCents int64      `json:"total_cents"`
	Status     string     `json:"status"`
	Channel    string     `json:"channel"`
	CreatedAt  time.Time  `json:"created_at"`
}

// StayQuoteDTO prices a candidate stay without persisting anything.
type StayQuoteDTO struct {
	RoomID           uuid.UUID  `json:"room_id"`
	CheckIn          types.Date `json:"check_in"`
	CheckOut         types.Date `json:"check_out"`
	Nights           int        `json:"nights"`
	NightlyRateCents int64      `json:"nightly_rate_cents"`
	TotalCents       int64      `json:"total_cents"`
	Available        bool       `json:"available"`
}

// NewRoomDTO builds a DTO from the persisted model.
func NewRoomDTO(room *models.Room) *RoomDTO {
	return &RoomDTO{
		ID:               room.ID,
		MerchantID:       room.MerchantID,
		Name:             room.Name,
		Description:      room.Description,
		NightlyRateCents: room.NightlyRateCents,
		MaxGuests:        room.MaxGuests,
		Amenities:        append([]string{}, room.Amenities...),
		IsActive:         room.IsActive,
		CreatedAt:        room.CreatedAt,
		UpdatedAt:        room.UpdatedAt,
	}
}

// NewReservationDTO builds a DTO from the persisted model.
func NewReservationDTO(reservation *models.Reservation) *ReservationDTO {
	return &ReservationDTO{
		ID:         reservation.ID,
		RoomID:     reservation.RoomID,
		MerchantID: reservation.MerchantID,
		GuestName:  reservation.GuestName,
		CheckIn:    reservation.CheckIn,
		CheckOut:   reservation.CheckOut,
		Nights:     reservation.Nights,
		TotalCents: reservation.TotalCents,
		Status:     reservation.Status.String(),
		Channel:    reservation.Channel.String(),
		CreatedAt:  reservation.CreatedAt,
	}
}
