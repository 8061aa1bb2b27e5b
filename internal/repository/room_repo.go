package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hotelworks/room-engine/internal/models"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error)
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, roomID uint, status models.RoomStatus) error
	CountByStatus(ctx context.Context) (map[models.RoomStatus]int64, error)
	GetDB() *gorm.DB
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Preload("RoomType").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDForUpdate acquires a row-level lock on the room within the given
// transaction. Every compound lifecycle operation locks its room here first,
// serializing concurrent check-overlap-then-write sequences per room.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	var rooms []models.Room
	q := r.db.WithContext(ctx).Preload("RoomType")
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.RoomTypeID != nil {
		q = q.Where("room_type_id = ?", *filter.RoomTypeID)
	}
	if filter.Floor != nil {
		q = q.Where("floor = ?", *filter.Floor)
	}
	if filter.Search != "" {
		q = q.Where("room_number ILIKE ?", "%"+filter.Search+"%")
	}
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, roomID uint, status models.RoomStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("status", status).Error
}

func (r *roomRepository) CountByStatus(ctx context.Context) (map[models.RoomStatus]int64, error) {
	var rows []struct {
		Status models.RoomStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.RoomStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
