package bookings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kolade-dev/vendorhub-backend/pkg/db/models"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/pagination"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createRoomFn       func(ctx context.Context, room *models.Room) (*models.Room, error)
	findRoomFn         func(ctx context.Context, merchantID, id uuid.UUID) (*models.Room, error)
	listRoomsFn        func(ctx context.Context, merchantID uuid.UUID) ([]models.Room, error)
	createResFn        func(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	listBlockingFn     func(ctx context.Context, roomID uuid.UUID) ([]models.Reservation, error)
	countOverlappingFn func(ctx context.Context, roomID uuid.UUID, checkIn, checkOut types.Date) (int64, error)
	listResFn          func(ctx context.Context, merchantID uuid.UUID, params pagination.Params) ([]models.Reservation, error)
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepo) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if f.createRoomFn != nil {
		return f.createRoomFn(ctx, room)
	}
	return room, nil
}

func (f *fakeRepo) FindRoomByMerchantAndID(ctx context.Context, merchantID, id uuid.UUID) (*models.Room, error) {
	if f.findRoomFn != nil {
		return f.findRoomFn(ctx, merchantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListRoomsByMerchant(ctx context.Context, merchantID uuid.UUID) ([]models.Room, error) {
	if f.listRoomsFn != nil {
		return f.listRoomsFn(ctx, merchantID)
	}
	return nil, nil
}

func (f *fakeRepo) CreateReservation(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	if f.createResFn != nil {
		return f.createResFn(ctx, reservation)
	}
	return reservation, nil
}

func (f *fakeRepo) ListBlockingByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Reservation, error) {
	if f.listBlockingFn != nil {
		return f.listBlockingFn(ctx, roomID)
	}
	return nil, nil
}

func (f *fakeRepo) CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut types.Date) (int64, error) {
	if f.countOverlappingFn != nil {
		return f.countOverlappingFn(ctx, roomID, checkIn, checkOut)
	}
	return 0, nil
}

func (f *fakeRepo) ListReservationsByMerchant(ctx context.Context, merchantID uuid.UUID, params pagination.Params) ([]models.Reservation, error) {
	if f.listResFn != nil {
		return f.listResFn(ctx, merchantID, params)
	}
	return nil, nil
}

func mustDate(t *testing.T, value string) types.Date {
	t.Helper()
	d, err := types.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *fakeRepo) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func testRoom(merchantID uuid.UUID) *models.Room {
	return &models.Room{
		ID:               uuid.New(),
		MerchantID:       merchantID,
		Name:             "Garden Suite",
		NightlyRateCents: 5000,
		MaxGuests:        2,
		IsActive:         true,
	}
}

func TestDisabledDatesExpandsReservations(t *testing.T) {
	merchantID := uuid.New()
	room := testRoom(merchantID)

	repo := &fakeRepo{
		findRoomFn: func(ctx context.Context, mid, id uuid.UUID) (*models.Room, error) {
			return room, nil
		},
		listBlockingFn: func(ctx context.Context, roomID uuid.UUID) ([]models.Reservation, error) {
			return []models.Reservation{
				{CheckIn: mustDate(t, "2024-01-01"), CheckOut: mustDate(t, "2024-01-03")},
				{CheckIn: mustDate(t, "2024-01-05"), CheckOut: mustDate(t, "2024-01-05")},
			}, nil
		},
	}
	svc := newTestService(t, repo)

	dates, err := svc.DisabledDates(context.Background(), merchantID, room.ID)
	if err != nil {
		t.Fatalf("DisabledDates error: %v", err)
	}
	if len(dates) != 4 {
		t.Fatalf("expected 4 disabled dates, got %d: %v", len(dates), dates)
	}
	for _, date := range dates {
		if date.String() == "2024-01-04" {
			t.Fatal("2024-01-04 should remain selectable")
		}
	}
}

func TestQuoteStayPricesNights(t *testing.T) {
	merchantID := uuid.New()
	room := testRoom(merchantID)
	repo := &fakeRepo{
		findRoomFn: func(ctx context.Context, mid, id uuid.UUID) (*models.Room, error) {
			return room, nil
		},
	}
	svc := newTestService(t, repo)

	quote, err := svc.QuoteStay(context.Background(), merchantID, room.ID,
		mustDate(t, "2024-01-01"), mustDate(t, "2024-01-04"))
	if err != nil {
		t.Fatalf("QuoteStay error: %v", err)
	}
	if quote.Nights != 3 {
		t.Fatalf("nights = %d, want 3", quote.Nights)
	}
	if quote.TotalCents != 15000 {
		t.Fatalf("total = %d, want 15000", quote.TotalCents)
	}
	if !quote.Available {
		t.Fatal("expected availability with no overlaps")
	}
}

func TestQuoteStaySameDayFallsBackToOneNight(t *testing.T) {
	merchantID := uuid.New()
	room := testRoom(merchantID)
	repo := &fakeRepo{
		findRoomFn: func(ctx context.Context, mid, id uuid.UUID) (*models.Room, error) {
			return room, nil
		},
	}
	svc := newTestService(t, repo)

	day := mustDate(t, "2024-06-15")
	quote, err := svc.QuoteStay(context.Background(), merchantID, room.ID, day, day)
	if err != nil {
		t.Fatalf("QuoteStay error: %v", err)
	}
	if quote.TotalCents != room.NightlyRateCents {
		t.Fatalf("same-day total = %d, want one night %d", quote.TotalCents, room.NightlyRateCents)
	}
}

func TestQuoteStayRejectsInvertedRange(t *testing.T) {
	merchantID := uuid.New()
	room := testRoom(merchantID)
	repo := &fakeRepo{
		findRoomFn: func(ctx context.Context, mid, id uuid.UUID) (*models.Room, error) {
			return room, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.QuoteStay(context.Background(), merchantID, room.ID,
		mustDate(t, "2024-01-05"), mustDate(t, "2024-01-01"))
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInvalidRange {
		t.Fatalf("expected invalid range error, got %v", err)
	}
}

func TestCreateReservationWalkInConfirmsImmediately(t *testing.T) {
	merchantID := uuid.New()
	room := testRoom(merchantID)

	var created *models.Reservation
	repo := &fakeRepo{
		findRoomFn: func(ctx context.Context, mid, id uuid.UUID) (*models.Room, error) {
			return room, nil
		},
		createResFn: func(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
			created = reservation
			return reservation, nil
		},
	}
	svc := newTestService(t, repo)

	dto, err := svc.CreateReservation(context.Background(), merchantID, CreateReservationInput{
		RoomID:    room.ID,
		GuestName: "Ada Obi",
		CheckIn:   mustDate(t, "2024-02-01"),
		CheckOut:  mustDate(t, "2024-02-03"),
		Channel:   enums.BookingChannelWalkIn,
	})
	if err != nil {
		t.Fatalf("CreateReservation error: %v", err)
	}
	if created == nil {
		t.Fatal("expected reservation to be persisted")
	}
	if created.Status != enums.ReservationStatusConfirmed {
		t.Fatalf("walk-in status = %s, want confirmed", created.Status)
	}
	if created.Nights != 2 || created.TotalCents != 10000 {
		t.Fatalf("unexpected pricing: nights=%d total=%d", created.Nights, created.TotalCents)
	}
	if dto.Channel != enums.BookingChannelWalkIn.String() {
		t.Fatalf("dto channel = %s", dto.Channel)
	}
}

func TestCreateReservationOnlineStartsPending(t *testing.T) {
	merchantID := uuid.New()
	room := testRoom(merchantID)
	repo := &fakeRepo{
		findRoomFn: func(ctx context.Context, mid, id uuid.UUID) (*models.Room, error) {
			return room, nil
		},
	}
	svc := newTestService(t, repo)

	dto, err := svc.CreateReservation(context.Background(), merchantID, CreateReservationInput{
		RoomID:    room.ID,
		GuestName: "Sam Eze",
		CheckIn:   mustDate(t, "2024-02-10"),
		CheckOut:  mustDate(t, "2024-02-12"),
		Channel:   enums.BookingChannelOnline,
	})
	if err != nil {
		t.Fatalf("CreateReservation error: %v", err)
	}
	if dto.Status != enums.ReservationStatusPending.String() {
		t.Fatalf("online status = %s, want pending", dto.Status)
	}
}

func TestCreateReservationRejectsOverlap(t *testing.T) {
	merchantID := uuid.New()
	room := testRoom(merchantID)
	repo := &fakeRepo{
		findRoomFn: func(ctx context.Context, mid, id uuid.UUID) (*models.Room, error) {
			return room, nil
		},
		countOverlappingFn: func(ctx context.Context, roomID uuid.UUID, checkIn, checkOut types.Date) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.CreateReservation(context.Background(), merchantID, CreateReservationInput{
		RoomID:    room.ID,
		GuestName: "Late Guest",
		CheckIn:   mustDate(t, "2024-02-01"),
		CheckOut:  mustDate(t, "2024-02-03"),
		Channel:   enums.BookingChannelWalkIn,
	})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateReservationMapsExclusionViolationToConflict(t *testing.T) {
	merchantID := uuid.New()
	room := testRoom(merchantID)
	repo := &fakeRepo{
		findRoomFn: func(ctx context.Context, mid, id uuid.UUID) (*models.Room, error) {
			return room, nil
		},
		createResFn: func(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
			return nil, &pgconn.PgError{Code: "23P01", ConstraintName: "reservations_no_overlap"}
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.CreateReservation(context.Background(), merchantID, CreateReservationInput{
		RoomID:    room.ID,
		GuestName: "Racing Guest",
		CheckIn:   mustDate(t, "2024-02-01"),
		CheckOut:  mustDate(t, "2024-02-03"),
		Channel:   enums.BookingChannelWalkIn,
	})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for constraint violation, got %v", err)
	}
}

func TestListReservationsPaginates(t *testing.T) {
	merchantID := uuid.New()

	rows := make([]models.Reservation, 3)
	for i := range rows {
		rows[i] = models.Reservation{
			ID:         uuid.New(),
			MerchantID: merchantID,
			Status:     enums.ReservationStatusConfirmed,
			Channel:    enums.BookingChannelOnline,
		}
	}

	repo := &fakeRepo{
		listResFn: func(ctx context.Context, mid uuid.UUID, params pagination.Params) ([]models.Reservation, error) {
			return rows, nil
		},
	}
	svc := newTestService(t, repo)

	result, err := svc.ListReservations(context.Background(), merchantID, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("ListReservations error: %v", err)
	}
	if len(result.Reservations) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(result.Reservations))
	}
	if result.NextCursor == "" {
		t.Fatal("expected next cursor")
	}
}

func TestGetRoomMapsMissingToNotFound(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	_, err := svc.GetRoom(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
