package bookings

import (
	"context"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/pkg/db/models"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	"github.com/kolade-dev/vendorhub-backend/pkg/pagination"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
	"gorm.io/gorm"
)

// Repository wires together room and reservation persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error)
	FindRoomByMerchantAndID(ctx context.Context, merchantID, id uuid.UUID) (*models.Room, error)
	ListRoomsByMerchant(ctx context.Context, merchantID uuid.UUID) ([]models.Room, error)
	CreateReservation(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	ListBlockingByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Reservation, error)
	CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut types.Date) (int64, error)
	ListReservationsByMerchant(ctx context.Context, merchantID uuid.UUID, params pagination.Params) ([]models.Reservation, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// CreateRoom inserts a new room row.
func (r *repository) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// FindRoomByMerchantAndID loads a single room scoped to its owner.
func (r *repository) FindRoomByMerchantAndID(ctx context.Context, merchantID, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		First(&room, "id = ? AND merchant_id = ?", id, merchantID).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRoomsByMerchant returns every room the merchant owns, newest first.
func (r *repository) ListRoomsByMerchant(ctx context.Context, merchantID uuid.UUID) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC, id DESC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateReservation inserts a new reservation row.
func (r *repository) CreateReservation(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

// ListBlockingByRoom returns every reservation that occupies calendar days
// for the room, in creation order. Cancelled stays do not block.
func (r *repository) ListBlockingByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID, blockingStatuses()).
		Order("check_in ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// CountOverlapping counts blocking reservations whose inclusive span
// intersects [checkIn, checkOut].
func (r *repository) CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut types.Date) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ?", roomID, blockingStatuses()).
		Where("check_in <= ? AND check_out >= ?", checkOut.Time(), checkIn.Time()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListReservationsByMerchant returns a page of reservations, newest first.
func (r *repository) ListReservationsByMerchant(ctx context.Context, merchantID uuid.UUID, params pagination.Params) ([]models.Reservation, error) {
	query := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func blockingStatuses() []enums.ReservationStatus {
	return []enums.ReservationStatus{
		enums.ReservationStatusPending,
		enums.ReservationStatusConfirmed,
	}
}
