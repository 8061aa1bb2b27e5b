package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hotelworks/room-engine/internal/models"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.RoomType{}, &models.Room{}, &models.Guest{}, &models.Booking{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// DB-level backstop for the no-double-booking invariant: two blocking
	// bookings can never hold intersecting date ranges on the same room,
	// even if an application bug slips past the row-lock path.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Printf("[Database] btree_gist extension unavailable, overlap backstop disabled: %v", err)
		return db
	}

	var constraintCount int64
	db.Raw(`SELECT count(*) FROM pg_constraint WHERE conname = 'bookings_no_overlap'`).Scan(&constraintCount)
	if constraintCount == 0 {
		err := db.Exec(`
			ALTER TABLE bookings
			ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (
				room_id WITH =,
				daterange(check_in_date, check_out_date) WITH &&
			)
			WHERE (status IN ('confirmed', 'active'))
		`).Error
		if err != nil {
			log.Printf("[Database] failed to create overlap backstop constraint: %v", err)
		}
	}

	return db
}
