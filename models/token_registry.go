package models

import (
	"time"
)

// TokenRegistry is the singleton allowlist owner. The approved mints
// themselves live in ApprovedToken rows so adds/removes are single
// constrained inserts/deletes.
type TokenRegistry struct {
	ID        uint      `json:"-" gorm:"primaryKey"` // always 1 (singleton row)
	Admin     string    `json:"admin" gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// MaxApprovedTokens caps registry growth (mirrors the on-chain account size).
const MaxApprovedTokens = 50

// ApprovedToken is one allowlisted payment-asset mint. The unique index on
// Mint makes add-if-absent a single atomic insert.
type ApprovedToken struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Mint      string    `json:"mint" gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
