package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hotelworks/room-engine/internal/models"
)

// GuestRepository is the narrow read surface over the external guest
// record store; the engine never writes guests.
type GuestRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Guest, error)
}

type guestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).First(&guest, id).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}
