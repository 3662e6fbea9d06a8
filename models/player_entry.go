package models

import (
	"time"
)

// PlayerEntry is the immutable per-player payment receipt. The composite
// unique index on (room_address, player) is the duplicate-join guard: a
// second join attempt fails on insert, it never silently succeeds.
//
// Entries are never updated or deleted.
type PlayerEntry struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid"`
	RoomAddress string `json:"room_address" gorm:"type:varchar(64);not null;uniqueIndex:idx_player_entries_room_player,priority:1"`
	Player      string `json:"player" gorm:"type:varchar(64);not null;uniqueIndex:idx_player_entries_room_player,priority:2"`

	EntryPaid  uint64 `json:"entry_paid" gorm:"not null"`
	ExtrasPaid uint64 `json:"extras_paid" gorm:"not null"`
	TotalPaid  uint64 `json:"total_paid" gorm:"not null"` // EntryPaid + ExtrasPaid

	JoinSlot  uint64    `json:"join_slot" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
