package workers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"fundraising-room-system/models"

	"gorm.io/gorm"
)

// DispatchClient posts outbox events to the indexer webhook.
type DispatchClient struct {
	WebhookURL string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewDispatchClient(db *gorm.DB) *DispatchClient {
	webhookURL := os.Getenv("INDEXER_WEBHOOK_URL")
	if webhookURL == "" {
		log.Fatal("INDEXER_WEBHOOK_URL environment variable is required")
	}
	token := os.Getenv("ESCROW_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("ESCROW_SERVICE_TOKEN environment variable is required for event dispatch")
	}

	return &DispatchClient{
		WebhookURL: webhookURL,
		Token:      token,
		DB:         db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *DispatchClient) deliver(ctx context.Context, event *models.LedgerEvent) error {
	req, err := http.NewRequestWithContext(ctx, "POST", c.WebhookURL,
		bytes.NewBufferString(event.Payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Token", c.Token)
	req.Header.Set("X-Event-Type", event.Type)
	req.Header.Set("X-Event-ID", event.ID)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call indexer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("indexer returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// PollOutbox delivers undelivered events oldest-first. An event stays in the
// outbox until the indexer acknowledges it, so delivery is at-least-once and
// a failed tick retries the same batch next time.
func PollOutbox(ctx context.Context, client *DispatchClient, pollInterval time.Duration) {
	log.Println("Starting event outbox dispatcher...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Event dispatcher stopped.")
			return
		case <-ticker.C:
			var events []models.LedgerEvent
			err := client.DB.Where("delivered_at IS NULL").
				Order("created_at ASC").Limit(100).Find(&events).Error
			if err != nil {
				log.Printf("❌ Error loading outbox: %v", err)
				continue
			}
			if len(events) == 0 {
				continue
			}

			log.Printf("📤 Dispatching %d pending event(s)...", len(events))
			delivered := 0
			for i := range events {
				if err := client.deliver(ctx, &events[i]); err != nil {
					log.Printf("❌ Failed to deliver event %s: %v", events[i].ID, err)
					// Stop the batch to preserve per-room ordering; retry
					// from this event next tick.
					break
				}
				now := time.Now().UTC()
				if err := client.DB.Model(&events[i]).Update("delivered_at", &now).Error; err != nil {
					log.Printf("❌ Failed to mark event %s delivered: %v", events[i].ID, err)
					break
				}
				delivered++
			}
			if delivered > 0 {
				log.Printf("✅ Delivered %d event(s).", delivered)
			}
		}
	}
}
