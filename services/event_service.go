package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"fundraising-room-system/ledger"
	"fundraising-room-system/models"
	"fundraising-room-system/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EventService struct {
	DB *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db}
}

// ListRoomEvents returns the emitted events for one room in emission order.
func (s *EventService) ListRoomEvents(c *fiber.Ctx) error {
	var events []models.LedgerEvent
	err := s.DB.Where("room_address = ?", c.Params("address")).
		Order("created_at ASC").Find(&events).Error
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"events": events, "count": len(events)})
}

// ExportRoomEvents archives a room's full event history to R2 as a JSON
// document and returns the public URL (admin only). Meant for ended rooms;
// the archive is a point-in-time copy, not a live feed.
func (s *EventService) ExportRoomEvents(c *fiber.Ctx) error {
	caller := walletFromCtx(c)
	roomAddress := c.Params("address")

	cfg, err := loadGlobalConfig(s.DB)
	if err != nil {
		return respondError(c, err)
	}
	if caller != cfg.Admin {
		return respondError(c, ledger.ErrUnauthorized)
	}

	var room models.Room
	if err := s.DB.First(&room, "address = ?", roomAddress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, ledger.ErrRoomNotFound)
		}
		return respondError(c, err)
	}

	var events []models.LedgerEvent
	if err := s.DB.Where("room_address = ?", roomAddress).
		Order("created_at ASC").Find(&events).Error; err != nil {
		return respondError(c, err)
	}

	archive := fiber.Map{
		"room":        room,
		"events":      events,
		"exported_at": time.Now().UTC(),
	}
	data, err := json.Marshal(archive)
	if err != nil {
		return respondError(c, err)
	}

	key := fmt.Sprintf("archives/%s/%d.json", roomAddress, time.Now().Unix())
	url, err := utils.UploadJSONToR2(key, data)
	if err != nil {
		log.Printf("❌ Failed to archive events for room %s: %v", roomAddress, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "archive upload failed"})
	}

	log.Printf("📦 Archived %d events for room %s → %s", len(events), roomAddress, url)
	return c.JSON(fiber.Map{"url": url, "event_count": len(events)})
}
