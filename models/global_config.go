package models

import (
	"time"
)

// GlobalConfig is the singleton platform configuration. Every economic
// operation reads it fresh at the start of its transaction; it is never
// cached across operations.
//
// Invariant: PlatformFeeBps + MaxHostFeeBps + MaxPrizePoolBps + MinCharityBps == 10000.
type GlobalConfig struct {
	ID             uint   `json:"-" gorm:"primaryKey"` // always 1 (singleton row)
	Admin          string `json:"admin" gorm:"type:varchar(64);not null"`
	PlatformWallet string `json:"platform_wallet" gorm:"type:varchar(64);not null"`
	CharityWallet  string `json:"charity_wallet" gorm:"type:varchar(64);not null"`

	PlatformFeeBps  uint16 `json:"platform_fee_bps" gorm:"not null"` // 2000 = 20%, fixed
	MaxHostFeeBps   uint16 `json:"max_host_fee_bps" gorm:"not null"` // 500 = 5%
	MaxPrizePoolBps uint16 `json:"max_prize_pool_bps" gorm:"not null"` // 3500 = 35%
	MinCharityBps   uint16 `json:"min_charity_bps" gorm:"not null"`  // 4000 = 40%

	EmergencyPause bool `json:"emergency_pause" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Default platform economics, set once at initialize.
const (
	DefaultPlatformFeeBps  uint16 = 2000
	DefaultMaxHostFeeBps   uint16 = 500
	DefaultMaxPrizePoolBps uint16 = 3500
	DefaultMinCharityBps   uint16 = 4000
)
