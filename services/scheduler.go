// services/scheduler.go
package services

import (
	"log"
	"time"

	"fundraising-room-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartExpirationReporter runs a periodic sweep that logs rooms past their
// expiration slot that nobody has closed yet. Read-only on purpose: closing
// an expired room moves funds and stays an explicit end_room or recover_room
// call.
func (s *RoomService) StartExpirationReporter() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 10 minutes: report expired rooms still holding funds
	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			var rooms []models.Room
			nowSlot := uint64(time.Now().Unix())
			err := s.DB.Where("ended = ? AND expiration_slot > 0 AND expiration_slot <= ?", false, nowSlot).
				Find(&rooms).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, r := range rooms {
				log.Printf("⏰ Room %s (%s) expired and unclosed — %d collected, %d players",
					r.RoomID, r.Address, r.TotalCollected, r.PlayerCount)
			}
		}),
	)
}
