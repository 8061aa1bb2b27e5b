package models

import "time"

// Guest is an external record store entity; the engine only reads it to
// resolve names for front-desk projections.
type Guest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"type:varchar(120);not null" json:"full_name"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Email     string    `gorm:"type:varchar(120)" json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
