package models

import "time"

type RoomStatus string

const (
	RoomVacant      RoomStatus = "vacant"
	RoomOccupied    RoomStatus = "occupied"
	RoomCleaning    RoomStatus = "cleaning"
	RoomMaintenance RoomStatus = "maintenance"
)

type RoomType struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"not null;uniqueIndex" json:"name"`
	MaxOccupancy int     `gorm:"not null;default:2" json:"max_occupancy"`
	BasePrice    float64 `gorm:"not null" json:"base_price"`
}

type Room struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RoomNumber string     `gorm:"type:varchar(20);not null;uniqueIndex" json:"room_number"`
	Floor      int        `gorm:"not null;default:1" json:"floor"`
	RoomTypeID uint       `gorm:"not null" json:"room_type_id"`
	BasePrice  float64    `gorm:"not null" json:"base_price"`
	Status     RoomStatus `gorm:"type:varchar(20);not null;default:'vacant'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	RoomType *RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}

// RoomFilter enumerates the recognized room listing filters.
type RoomFilter struct {
	Status     *RoomStatus
	RoomTypeID *uint
	Floor      *int
	Search     string // matches against room_number
}
