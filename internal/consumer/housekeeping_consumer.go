package consumer

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"github.com/hotelworks/room-engine/internal/models"
)

// statusToggle is the payload housekeeping publishes when a room enters or
// leaves cleaning/maintenance.
type statusToggle struct {
	RoomID uint              `json:"room_id"`
	Status models.RoomStatus `json:"status"`
}

var allowedToggles = map[models.RoomStatus]bool{
	models.RoomVacant:      true,
	models.RoomCleaning:    true,
	models.RoomMaintenance: true,
}

type HousekeepingConsumer struct {
	db *gorm.DB
}

func NewHousekeepingConsumer(db *gorm.DB) *HousekeepingConsumer {
	return &HousekeepingConsumer{db: db}
}

// Start listens for housekeeping toggles and applies them to rooms.
func (hc *HousekeepingConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			hc.handleMessage(msg)
		}
		log.Println("[Housekeeping] channel closed, stopping consumer")
	}()
}

func (hc *HousekeepingConsumer) handleMessage(msg amqp.Delivery) {
	var toggle statusToggle
	if err := json.Unmarshal(msg.Body, &toggle); err != nil {
		log.Printf("[Housekeeping] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	if !allowedToggles[toggle.Status] {
		log.Printf("[Housekeeping] rejected toggle to %q for room %d", toggle.Status, toggle.RoomID)
		msg.Nack(false, false)
		return
	}

	// Occupancy is owned by the lifecycle orchestrator: a toggle never
	// overrides an occupied room.
	result := hc.db.Model(&models.Room{}).
		Where("id = ? AND status <> ?", toggle.RoomID, models.RoomOccupied).
		Update("status", toggle.Status)

	if result.Error != nil {
		log.Printf("[Housekeeping] failed to update room %d: %v", toggle.RoomID, result.Error)
		msg.Nack(false, true) // requeue
		return
	}
	if result.RowsAffected == 0 {
		log.Printf("[Housekeeping] skipped toggle for room %d (occupied or unknown)", toggle.RoomID)
		msg.Ack(false)
		return
	}

	log.Printf("[Housekeeping] room %d -> %s", toggle.RoomID, toggle.Status)
	msg.Ack(false)
}
