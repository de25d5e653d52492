package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kolade-dev/vendorhub-backend/internal/availability"
	"github.com/kolade-dev/vendorhub-backend/pkg/db/models"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/pagination"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Service exposes room management, availability and reservation flows.
type Service interface {
	CreateRoom(ctx context.Context, merchantID uuid.UUID, input CreateRoomInput) (*RoomDTO, error)
	GetRoom(ctx context.Context, merchantID, roomID uuid.UUID) (*RoomDTO, error)
	ListRooms(ctx context.Context, merchantID uuid.UUID) ([]RoomDTO, error)
	DisabledDates(ctx context.Context, merchantID, roomID uuid.UUID) ([]types.Date, error)
	QuoteStay(ctx context.Context, merchantID, roomID uuid.UUID, checkIn, checkOut types.Date) (*StayQuoteDTO, error)
	CreateReservation(ctx context.Context, merchantID uuid.UUID, input CreateReservationInput) (*ReservationDTO, error)
	ListReservations(ctx context.Context, merchantID uuid.UUID, params pagination.Params) (*ReservationListResult, error)
}

// CreateRoomInput holds the validated payload to create a room.
type CreateRoomInput struct {
	Name             string
	Description      string
	NightlyRateCents int64
	MaxGuests        int
	Amenities        []string
	IsActive         bool
}

// CreateReservationInput captures a stay request. Walk-ins are confirmed
// immediately; online requests start out pending.
type CreateReservationInput struct {
	RoomID    uuid.UUID
	GuestName string
	CheckIn   types.Date
	CheckOut  types.Date
	Channel   enums.BookingChannel
}

// ReservationListResult is one page of reservations plus the next cursor.
type ReservationListResult struct {
	Reservations []ReservationDTO `json:"reservations"`
	NextCursor   string           `json:"next_cursor,omitempty"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService constructs a bookings service instance.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) CreateRoom(ctx context.Context, merchantID uuid.UUID, input CreateRoomInput) (*RoomDTO, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room name is required")
	}
	if input.NightlyRateCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nightly rate must not be negative")
	}
	if input.MaxGuests < 1 {
		input.MaxGuests = 2
	}

	record := &models.Room{
		MerchantID:       merchantID,
		Name:             strings.TrimSpace(input.Name),
		Description:      input.Description,
		NightlyRateCents: input.NightlyRateCents,
		MaxGuests:        input.MaxGuests,
		Amenities:        pq.StringArray(input.Amenities),
		IsActive:         input.IsActive,
	}

	created, err := s.repo.CreateRoom(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating room")
	}
	return NewRoomDTO(created), nil
}

func (s *service) GetRoom(ctx context.Context, merchantID, roomID uuid.UUID) (*RoomDTO, error) {
	room, err := s.findRoom(ctx, merchantID, roomID)
	if err != nil {
		return nil, err
	}
	return NewRoomDTO(room), nil
}

func (s *service) ListRooms(ctx context.Context, merchantID uuid.UUID) ([]RoomDTO, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	rooms, err := s.repo.ListRoomsByMerchant(ctx, merchantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing rooms")
	}
	out := make([]RoomDTO, len(rooms))
	for i := range rooms {
		out[i] = *NewRoomDTO(&rooms[i])
	}
	return out, nil
}

// DisabledDates returns every calendar day a date picker should grey out for
// the room, derived from its blocking reservations.
func (s *service) DisabledDates(ctx context.Context, merchantID, roomID uuid.UUID) ([]types.Date, error) {
	if _, err := s.findRoom(ctx, merchantID, roomID); err != nil {
		return nil, err
	}

	reservations, err := s.repo.ListBlockingByRoom(ctx, roomID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reservations")
	}

	intervals := make([]availability.Interval, len(reservations))
	for i, reservation := range reservations {
		intervals[i] = availability.Interval{
			Start: reservation.CheckIn,
			End:   reservation.CheckOut,
		}
	}
	return availability.DisabledDates(intervals), nil
}

func (s *service) QuoteStay(ctx context.Context, merchantID, roomID uuid.UUID, checkIn, checkOut types.Date) (*StayQuoteDTO, error) {
	room, err := s.findRoom(ctx, merchantID, roomID)
	if err != nil {
		return nil, err
	}

	total, err := availability.PriceForRange(checkIn, checkOut, room.NightlyRateCents)
	if err != nil {
		return nil, err
	}
	nights, err := availability.Nights(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.repo.CountOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking availability")
	}

	return &StayQuoteDTO{
		RoomID:           room.ID,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Nights:           nights,
		NightlyRateCents: room.NightlyRateCents,
		TotalCents:       total,
		Available:        overlapping == 0,
	}, nil
}

func (s *service) CreateReservation(ctx context.Context, merchantID uuid.UUID, input CreateReservationInput) (*ReservationDTO, error) {
	room, err := s.findRoom(ctx, merchantID, input.RoomID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.GuestName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest name is required")
	}
	if !input.Channel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid booking channel %q", input.Channel))
	}

	total, err := availability.PriceForRange(input.CheckIn, input.CheckOut, room.NightlyRateCents)
	if err != nil {
		return nil, err
	}
	nights, err := availability.Nights(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}

	status := enums.ReservationStatusPending
	if input.Channel == enums.BookingChannelWalkIn {
		status = enums.ReservationStatusConfirmed
	}

	record := &models.Reservation{
		RoomID:     room.ID,
		MerchantID: merchantID,
		GuestName:  strings.TrimSpace(input.GuestName),
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
		Nights:     nights,
		TotalCents: total,
		Status:     status,
		Channel:    input.Channel,
	}

	// Check and insert share a transaction; a race that slips past the count
	// still trips the reservations_no_overlap constraint on insert.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		overlapping, err := txRepo.CountOverlapping(ctx, input.RoomID, input.CheckIn, input.CheckOut)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "room is not available for the requested dates").
				WithDetails(map[string]string{
					"check_in":  input.CheckIn.String(),
					"check_out": input.CheckOut.String(),
				})
		}

		_, err = txRepo.CreateReservation(ctx, record)
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if isExclusionViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "room is not available for the requested dates").
				WithDetails(map[string]string{
					"check_in":  input.CheckIn.String(),
					"check_out": input.CheckOut.String(),
				})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating reservation")
	}
	return NewReservationDTO(record), nil
}

// isExclusionViolation reports whether err is the database rejecting an
// overlapping reservation span (SQLSTATE 23P01).
func isExclusionViolation(err error) bool {
	const exclusionViolation = "23P01"
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == exclusionViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == exclusionViolation
	}
	return false
}

func (s *service) ListReservations(ctx context.Context, merchantID uuid.UUID, params pagination.Params) (*ReservationListResult, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}

	rows, err := s.repo.ListReservationsByMerchant(ctx, merchantID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reservations")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	result := &ReservationListResult{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	result.Reservations = make([]ReservationDTO, len(rows))
	for i := range rows {
		result.Reservations[i] = *NewReservationDTO(&rows[i])
	}
	return result, nil
}

func (s *service) findRoom(ctx context.Context, merchantID, roomID uuid.UUID) (*models.Room, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	if roomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room id is required")
	}

	room, err := s.repo.FindRoomByMerchantAndID(ctx, merchantID, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading room")
	}
	return room, nil
}
