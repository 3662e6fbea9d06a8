package models

import (
	"time"
)

type PrizeMode string

const (
	PrizeModePoolSplit  PrizeMode = "pool_split"  // prizes are a percentage of entry fees
	PrizeModeAssetBased PrizeMode = "asset_based" // prizes are pre-escrowed assets
)

type RoomStatus string

const (
	StatusAwaitingFunding RoomStatus = "awaiting_funding" // asset room, no prizes deposited yet
	StatusPartiallyFunded RoomStatus = "partially_funded" // asset room, some prizes deposited
	StatusReady           RoomStatus = "ready"            // accepting players
	StatusActive          RoomStatus = "active"           // at least one player joined
	StatusEnded           RoomStatus = "ended"            // terminal; funds distributed
)

// MaxWinnerSlots is the fixed number of prize positions per room.
const MaxWinnerSlots = 3

// PrizeAsset is one declared asset-mode prize. Stored inline on the room
// (JSON column), mirroring the fixed 3-slot on-chain layout.
type PrizeAsset struct {
	Mint      string `json:"mint"`
	Amount    uint64 `json:"amount"`
	Deposited bool   `json:"deposited"`
}

// Room is one fundraising event: its economic configuration (fixed at
// creation), escrow accounting counters, lifecycle status and declared
// winners. The composite unique index on (host, room_id) is the
// one-room-per-host-and-id guarantee; inserting a duplicate fails atomically.
type Room struct {
	Address string `json:"address" gorm:"primaryKey;type:varchar(64)"`

	RoomID        string `json:"room_id" gorm:"type:varchar(32);not null;uniqueIndex:idx_rooms_host_room_id,priority:2"`
	Host          string `json:"host" gorm:"type:varchar(64);not null;uniqueIndex:idx_rooms_host_room_id,priority:1"`
	CharityWallet string `json:"charity_wallet" gorm:"type:varchar(64);not null"`
	FeeTokenMint  string `json:"fee_token_mint" gorm:"type:varchar(64);not null"`

	EntryFee     uint64 `json:"entry_fee" gorm:"not null"`
	HostFeeBps   uint16 `json:"host_fee_bps" gorm:"not null"`
	PrizePoolBps uint16 `json:"prize_pool_bps" gorm:"not null"`
	CharityBps   uint16 `json:"charity_bps" gorm:"not null"` // derived at creation

	PrizeMode         PrizeMode      `json:"prize_mode" gorm:"type:varchar(16);not null"`
	PrizeDistribution []uint16       `json:"prize_distribution" gorm:"serializer:json"` // [1st, 2nd, 3rd], sums to 100 in pool mode
	PrizeAssets       [3]*PrizeAsset `json:"prize_assets" gorm:"serializer:json"`

	Status      RoomStatus `json:"status" gorm:"type:varchar(24);not null;index"`
	PlayerCount uint32     `json:"player_count" gorm:"default:0"`
	MaxPlayers  uint32     `json:"max_players" gorm:"not null"`

	// Accounting counters. TotalCollected == TotalEntryFees + TotalExtrasFees
	// holds after every successful join; all three freeze once Ended.
	TotalCollected  uint64 `json:"total_collected" gorm:"default:0"`
	TotalEntryFees  uint64 `json:"total_entry_fees" gorm:"default:0"`
	TotalExtrasFees uint64 `json:"total_extras_fees" gorm:"default:0"`

	Ended bool `json:"ended" gorm:"default:false"`

	CreationSlot   uint64 `json:"creation_slot" gorm:"not null"`
	ExpirationSlot uint64 `json:"expiration_slot" gorm:"default:0"` // 0 = never expires

	CharityMemo string `json:"charity_memo" gorm:"type:varchar(28)"`

	// Winners are settable exactly once by declare_winners. A nil slot means
	// no winner declared for that position.
	Winners [3]*string `json:"winners" gorm:"serializer:json"`

	// Escrow accounts owned by this room; only lifecycle operations may move
	// their funds.
	VaultAddress      string `json:"vault_address" gorm:"type:varchar(64);not null"`
	PrizeVaultAddress string `json:"prize_vault_address" gorm:"type:varchar(64)"` // asset mode only

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsExpired reports whether the room is past its expiration slot.
func (r *Room) IsExpired(nowSlot uint64) bool {
	return r.ExpirationSlot > 0 && nowSlot >= r.ExpirationSlot
}

// HasDeclaredWinners reports whether any winner slot has been set.
func (r *Room) HasDeclaredWinners() bool {
	for _, w := range r.Winners {
		if w != nil {
			return true
		}
	}
	return false
}

// DeclaredWinners returns the non-empty winner slots in position order.
func (r *Room) DeclaredWinners() []string {
	var winners []string
	for _, w := range r.Winners {
		if w != nil {
			winners = append(winners, *w)
		}
	}
	return winners
}

// AllPrizesDeposited reports whether every declared asset prize has been
// escrowed. Undeclared slots count as funded.
func (r *Room) AllPrizesDeposited() bool {
	for _, p := range r.PrizeAssets {
		if p != nil && !p.Deposited {
			return false
		}
	}
	return true
}
