package models

import (
	"time"
)

// TokenAccount holds a balance of a single mint for a single owner. Room
// vaults are TokenAccounts whose owner is the room address; their balance
// only ever moves inside lifecycle operations.
type TokenAccount struct {
	Address   string    `json:"address" gorm:"primaryKey;type:varchar(64)"`
	Owner     string    `json:"owner" gorm:"type:varchar(64);not null;index"`
	Mint      string    `json:"mint" gorm:"type:varchar(64);not null;index"`
	Balance   uint64    `json:"balance" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Transfer kinds recorded on LedgerTransfer rows.
const (
	TransferEntryPayment = "entry_payment"
	TransferPrizeDeposit = "prize_deposit"
	TransferPlatformFee  = "platform_fee"
	TransferHostFee      = "host_fee"
	TransferCharity      = "charity"
	TransferPrize        = "prize"
	TransferRefund       = "refund"
)

// LedgerTransfer is the audit record of one balance move. Written in the
// same transaction as the move itself.
type LedgerTransfer struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	RoomAddress string    `json:"room_address" gorm:"type:varchar(64);index"`
	FromAddress string    `json:"from_address" gorm:"type:varchar(64);not null"`
	ToAddress   string    `json:"to_address" gorm:"type:varchar(64);not null"`
	Amount      uint64    `json:"amount" gorm:"not null"`
	Kind        string    `json:"kind" gorm:"type:varchar(24);not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}
