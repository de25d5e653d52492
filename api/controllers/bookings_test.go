package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	bookingsvc "github.com/kolade-dev/vendorhub-backend/internal/bookings"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	"github.com/kolade-dev/vendorhub-backend/pkg/pagination"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

type stubBookingService struct {
	createReservationFn func(ctx context.Context, merchantID uuid.UUID, input bookingsvc.CreateReservationInput) (*bookingsvc.ReservationDTO, error)
}

func (s stubBookingService) CreateRoom(ctx context.Context, merchantID uuid.UUID, input bookingsvc.CreateRoomInput) (*bookingsvc.RoomDTO, error) {
	return &bookingsvc.RoomDTO{ID: uuid.New(), MerchantID: merchantID}, nil
}

func (s stubBookingService) GetRoom(ctx context.Context, merchantID, roomID uuid.UUID) (*bookingsvc.RoomDTO, error) {
	return &bookingsvc.RoomDTO{ID: roomID, MerchantID: merchantID}, nil
}

func (s stubBookingService) ListRooms(ctx context.Context, merchantID uuid.UUID) ([]bookingsvc.RoomDTO, error) {
	return nil, nil
}

func (s stubBookingService) DisabledDates(ctx context.Context, merchantID, roomID uuid.UUID) ([]types.Date, error) {
	return nil, nil
}

func (s stubBookingService) QuoteStay(ctx context.Context, merchantID, roomID uuid.UUID, checkIn, checkOut types.Date) (*bookingsvc.StayQuoteDTO, error) {
	return &bookingsvc.StayQuoteDTO{RoomID: roomID}, nil
}

func (s stubBookingService) CreateReservation(ctx context.Context, merchantID uuid.UUID, input bookingsvc.CreateReservationInput) (*bookingsvc.ReservationDTO, error) {
	if s.createReservationFn != nil {
		return s.createReservationFn(ctx, merchantID, input)
	}
	return &bookingsvc.ReservationDTO{ID: uuid.New(), MerchantID: merchantID}, nil
}

func (s stubBookingService) ListReservations(ctx context.Context, merchantID uuid.UUID, params pagination.Params) (*bookingsvc.ReservationListResult, error) {
	return &bookingsvc.ReservationListResult{}, nil
}

func TestReservationCreateDefaultsToOnlineChannel(t *testing.T) {
	var captured bookingsvc.CreateReservationInput
	svc := stubBookingService{
		createReservationFn: func(ctx context.Context, merchantID uuid.UUID, input bookingsvc.CreateReservationInput) (*bookingsvc.ReservationDTO, error) {
			captured = input
			return &bookingsvc.ReservationDTO{ID: uuid.New(), MerchantID: merchantID}, nil
		},
	}
	handler := ReservationCreate(svc, nil)

	body := `{"room_id":"` + uuid.NewString() + `","guest_name":"Ada","check_in":"2026-03-01","check_out":"2026-03-04"}`
	req := withMerchant(httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.Channel != enums.BookingChannelOnline {
		t.Fatalf("expected online channel default, got %q", captured.Channel)
	}
}

func TestReservationCreateParsesWalkInChannel(t *testing.T) {
	var captured bookingsvc.CreateReservationInput
	svc := stubBookingService{
		createReservationFn: func(ctx context.Context, merchantID uuid.UUID, input bookingsvc.CreateReservationInput) (*bookingsvc.ReservationDTO, error) {
			captured = input
			return &bookingsvc.ReservationDTO{ID: uuid.New(), MerchantID: merchantID}, nil
		},
	}
	handler := ReservationCreate(svc, nil)

	body := `{"room_id":"` + uuid.NewString() + `","guest_name":"Ada","check_in":"2026-03-01","check_out":"2026-03-04","channel":"walk_in"}`
	req := withMerchant(httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.Channel != enums.BookingChannelWalkIn {
		t.Fatalf("expected walk_in channel, got %q", captured.Channel)
	}
}

func TestReservationCreateRejectsUnknownChannel(t *testing.T) {
	handler := ReservationCreate(stubBookingService{}, nil)

	body := `{"room_id":"` + uuid.NewString() + `","guest_name":"Ada","check_in":"2026-03-01","check_out":"2026-03-04","channel":"phone"}`
	req := withMerchant(httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown channel got %d", resp.Code)
	}
}

func TestReservationCreateRejectsBadRoomID(t *testing.T) {
	handler := ReservationCreate(stubBookingService{}, nil)

	body := `{"room_id":"nope","guest_name":"Ada","check_in":"2026-03-01","check_out":"2026-03-04"}`
	req := withMerchant(httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed room id got %d", resp.Code)
	}
}
