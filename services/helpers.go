package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"fundraising-room-system/ledger"
	"fundraising-room-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// currentSlot is the ledger clock. This deployment uses unix seconds as the
// slot unit; expiration_slot keeps the 0 = never-expires convention.
func currentSlot() uint64 {
	return uint64(time.Now().Unix())
}

// walletFromCtx returns the caller's wallet address set by the gateway
// middleware, or "" when the request carried no identity.
func walletFromCtx(c *fiber.Ctx) string {
	if wallet, ok := c.Locals("wallet_address").(string); ok {
		return wallet
	}
	return ""
}

// loadGlobalConfig reads the singleton config inside the operation's
// transaction. Refreshed per call, never cached across operations.
func loadGlobalConfig(tx *gorm.DB) (*models.GlobalConfig, error) {
	var cfg models.GlobalConfig
	if err := tx.First(&cfg, "id = ?", 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrNotInitialized
		}
		return nil, err
	}
	return &cfg, nil
}

// lockRoom loads a room FOR UPDATE, serializing all operations that touch it
// (the reimplementation of the ledger's per-account write-conflict
// detection).
func lockRoom(tx *gorm.DB, address string) (*models.Room, error) {
	var room models.Room
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, "address = ?", address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// lockTokenRegistry loads the registry singleton FOR UPDATE so allowlist
// mutations serialize and the capacity count stays accurate.
func lockTokenRegistry(tx *gorm.DB) (*models.TokenRegistry, error) {
	var registry models.TokenRegistry
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&registry, "id = ?", 1).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrNotInitialized
		}
		return nil, err
	}
	return &registry, nil
}

// lockAccount loads a token account FOR UPDATE.
func lockAccount(tx *gorm.DB, address string) (*models.TokenAccount, error) {
	var account models.TokenAccount
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "address = ?", address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// moveTokens debits one account and credits another inside the caller's
// transaction, recording the move as a LedgerTransfer row. Balance checks are
// checked arithmetic; an insufficient source balance aborts the whole
// operation.
func moveTokens(tx *gorm.DB, roomAddress, fromAddress, toAddress string, amount uint64, kind string) error {
	from, err := lockAccount(tx, fromAddress)
	if err != nil {
		return err
	}
	if from.Balance < amount {
		return ledger.ErrInsufficientBalance
	}
	to, err := lockAccount(tx, toAddress)
	if err != nil {
		return err
	}

	from.Balance -= amount
	newBalance, err := ledger.CheckedAdd(to.Balance, amount)
	if err != nil {
		return err
	}
	to.Balance = newBalance

	if err := tx.Save(from).Error; err != nil {
		return err
	}
	if err := tx.Save(to).Error; err != nil {
		return err
	}
	return tx.Create(&models.LedgerTransfer{
		ID:          uuid.NewString(),
		RoomAddress: roomAddress,
		FromAddress: fromAddress,
		ToAddress:   toAddress,
		Amount:      amount,
		Kind:        kind,
	}).Error
}

// recordEvent writes an outbox event row in the same transaction as the
// operation that produced it; the dispatch worker delivers it later.
func recordEvent(tx *gorm.DB, eventType, roomAddress string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Create(&models.LedgerEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		RoomAddress: roomAddress,
		Payload:     string(raw),
	}).Error
}

// respondError maps a ledger error code to an HTTP status and a stable JSON
// body. Anything that is not a *ledger.Error is an internal failure.
func respondError(c *fiber.Ctx, err error) error {
	var lerr *ledger.Error
	if !errors.As(err, &lerr) {
		log.Printf("❌ internal error on %s: %v", c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	status := fiber.StatusBadRequest
	switch lerr.Code {
	case "UNAUTHORIZED":
		status = fiber.StatusForbidden
	case "ROOM_NOT_FOUND", "ACCOUNT_NOT_FOUND":
		status = fiber.StatusNotFound
	case "ROOM_ALREADY_EXISTS", "PLAYER_ALREADY_JOINED", "TOKEN_ALREADY_APPROVED",
		"WINNERS_ALREADY_DECLARED", "PRIZE_ALREADY_DEPOSITED", "ROOM_ALREADY_ENDED",
		"ALREADY_INITIALIZED":
		status = fiber.StatusConflict
	case "EMERGENCY_PAUSE":
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"error": lerr.Message, "code": lerr.Code})
}
