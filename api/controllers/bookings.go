package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kolade-dev/vendorhub-backend/api/responses"
	"github.com/kolade-dev/vendorhub-backend/api/validators"
	bookingsvc "github.com/kolade-dev/vendorhub-backend/internal/bookings"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/logger"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

// RoomCreate registers a bookable room for the acting merchant.
func RoomCreate(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createRoomRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		room, err := svc.CreateRoom(r.Context(), merchantID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, room)
	}
}

func RoomGet(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		roomID, err := validators.ParseUUIDParam(r, "roomId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		room, err := svc.GetRoom(r.Context(), merchantID, roomID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, room)
	}
}

func RoomList(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rooms, err := svc.ListRooms(r.Context(), merchantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"rooms": rooms})
	}
}

// RoomDisabledDates returns the sorted, deduplicated set of calendar dates the
// room cannot be booked on.
func RoomDisabledDates(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		roomID, err := validators.ParseUUIDParam(r, "roomId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dates, err := svc.DisabledDates(r.Context(), merchantID, roomID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"disabled_dates": dates})
	}
}

// RoomQuoteStay prices a candidate stay and reports availability without
// holding dates.
func RoomQuoteStay(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		roomID, err := validators.ParseUUIDParam(r, "roomId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		checkIn, checkOut, err := stayRangeFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.QuoteStay(r.Context(), merchantID, roomID, checkIn, checkOut)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// ReservationCreate books a stay. Walk-in reservations confirm immediately;
// online requests are created pending.
func ReservationCreate(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createReservationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reservation, err := svc.CreateReservation(r.Context(), merchantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, reservation)
	}
}

func ReservationList(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListReservations(r.Context(), merchantID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type createRoomRequest struct {
	Name             string   `json:"name" validate:"required"`
	Description      string   `json:"description,omitempty"`
	NightlyRateCents int64    `json:"nightly_rate_cents" validate:"min=0"`
	MaxGuests        int      `json:"max_guests,omitempty" validate:"omitempty,min=1"`
	Amenities        []string `json:"amenities,omitempty"`
	IsActive         *bool    `json:"is_active,omitempty"`
}

func (req createRoomRequest) toInput() bookingsvc.CreateRoomInput {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return bookingsvc.CreateRoomInput{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		NightlyRateCents: req.NightlyRateCents,
		MaxGuests:        req.MaxGuests,
		Amenities:        req.Amenities,
		IsActive:         isActive,
	}
}

type createReservationRequest struct {
	RoomID    string     `json:"room_id" validate:"required"`
	GuestName string     `json:"guest_name" validate:"required"`
	CheckIn   types.Date `json:"check_in" validate:"required"`
	CheckOut  types.Date `json:"check_out" validate:"required"`
	Channel   string     `json:"channel,omitempty"`
}

func (req createReservationRequest) toInput() (bookingsvc.CreateReservationInput, error) {
	roomID, err := uuid.Parse(strings.TrimSpace(req.RoomID))
	if err != nil {
		return bookingsvc.CreateReservationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid room id")
	}

	channel := enums.BookingChannelOnline
	if raw := strings.TrimSpace(req.Channel); raw != "" {
		parsed, err := enums.ParseBookingChannel(raw)
		if err != nil {
			return bookingsvc.CreateReservationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid channel")
		}
		channel = parsed
	}

	return bookingsvc.CreateReservationInput{
		RoomID:    roomID,
		GuestName: strings.TrimSpace(req.GuestName),
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Channel:   channel,
	}, nil
}

func stayRangeFromQuery(r *http.Request) (types.Date, types.Date, error) {
	checkIn, err := validators.ParseQueryDate(r, "check_in")
	if err != nil {
		return types.Date{}, types.Date{}, err
	}
	checkOut, err := validators.ParseQueryDate(r, "check_out")
	if err != nil {
		return types.Date{}, types.Date{}, err
	}
	if checkIn.IsZero() || checkOut.IsZero() {
		return types.Date{}, types.Date{}, pkgerrors.New(pkgerrors.CodeValidation, "check_in and check_out query parameters required")
	}
	return checkIn, checkOut, nil
}
