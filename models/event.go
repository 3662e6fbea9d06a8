package models

import (
	"time"
)

// Event types emitted for off-chain consumers (indexers, UI).
const (
	EventRoomCreated     = "room_created"
	EventPlayerJoined    = "player_joined"
	EventWinnersDeclared = "winners_declared"
	EventRoomEnded       = "room_ended"
)

// LedgerEvent is an outbox row: written in the same transaction as the
// operation that produced it, delivered later by the dispatch worker.
type LedgerEvent struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	Type        string     `json:"type" gorm:"type:varchar(32);not null;index"`
	RoomAddress string     `json:"room_address" gorm:"type:varchar(64);not null;index"`
	Payload     string     `json:"payload" gorm:"type:jsonb;not null"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty" gorm:"index"`
}

// RoomCreatedEvent is emitted by init_pool_room and init_asset_room.
type RoomCreatedEvent struct {
	Room           string `json:"room"`
	RoomID         string `json:"room_id"`
	Host           string `json:"host"`
	EntryFee       uint64 `json:"entry_fee"`
	MaxPlayers     uint32 `json:"max_players"`
	ExpirationSlot uint64 `json:"expiration_slot"`
	Timestamp      int64  `json:"timestamp"`
}

// PlayerJoinedEvent is emitted by join_room.
type PlayerJoinedEvent struct {
	Room        string `json:"room"`
	Player      string `json:"player"`
	AmountPaid  uint64 `json:"amount_paid"` // entry fee + extras
	ExtrasPaid  uint64 `json:"extras_paid"`
	PlayerCount uint32 `json:"player_count"` // after this join
	Timestamp   int64  `json:"timestamp"`
}

// WinnersDeclaredEvent is emitted by declare_winners. The array always has
// 3 elements; trailing slots may be null.
type WinnersDeclaredEvent struct {
	Room      string     `json:"room"`
	Winners   [3]*string `json:"winners"`
	Timestamp int64      `json:"timestamp"`
}

// RoomEndedEvent is emitted by end_room.
type RoomEndedEvent struct {
	Room           string   `json:"room"`
	Winners        []string `json:"winners"`
	PlatformAmount uint64   `json:"platform_amount"`
	HostAmount     uint64   `json:"host_amount"`
	CharityAmount  uint64   `json:"charity_amount"` // includes all extras
	PrizeAmount    uint64   `json:"prize_amount"`
	TotalPlayers   uint32   `json:"total_players"`
	Timestamp      int64    `json:"timestamp"`
}
