package services

import (
	"errors"
	"log"

	"fundraising-room-system/ledger"
	"fundraising-room-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// Initialize creates the GlobalConfig singleton. One-time: the caller's
// wallet becomes the platform admin and the economic bounds are fixed at the
// platform defaults (20/5/35/40).
func (s *AdminService) Initialize(c *fiber.Ctx) error {
	caller := walletFromCtx(c)

	var req struct {
		PlatformWallet string `json:"platform_wallet"`
		CharityWallet  string `json:"charity_wallet"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.PlatformWallet == "" || req.CharityWallet == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "platform_wallet and charity_wallet are required"})
	}

	cfg := &models.GlobalConfig{
		ID:              1,
		Admin:           caller,
		PlatformWallet:  req.PlatformWallet,
		CharityWallet:   req.CharityWallet,
		PlatformFeeBps:  models.DefaultPlatformFeeBps,
		MaxHostFeeBps:   models.DefaultMaxHostFeeBps,
		MaxPrizePoolBps: models.DefaultMaxPrizePoolBps,
		MinCharityBps:   models.DefaultMinCharityBps,
		EmergencyPause:  false,
	}
	if err := s.DB.Create(cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return respondError(c, ledger.ErrAlreadyInitialized)
		}
		return respondError(c, err)
	}

	log.Printf("✅ Platform initialized — admin: %s, platform wallet: %s, charity wallet: %s",
		caller, req.PlatformWallet, req.CharityWallet)
	return c.Status(fiber.StatusCreated).JSON(cfg)
}

// InitializeTokenRegistry creates the registry singleton; the caller becomes
// the registry admin.
func (s *AdminService) InitializeTokenRegistry(c *fiber.Ctx) error {
	caller := walletFromCtx(c)

	registry := &models.TokenRegistry{ID: 1, Admin: caller}
	if err := s.DB.Create(registry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return respondError(c, ledger.ErrAlreadyInitialized)
		}
		return respondError(c, err)
	}

	log.Printf("✅ Token registry initialized — admin: %s", caller)
	return c.Status(fiber.StatusCreated).JSON(registry)
}

// AddApprovedToken allowlists a payment-asset mint (registry admin only).
func (s *AdminService) AddApprovedToken(c *fiber.Ctx) error {
	caller := walletFromCtx(c)

	var req struct {
		Mint string `json:"mint"`
	}
	if err := c.BodyParser(&req); err != nil || req.Mint == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mint is required"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		registry, err := lockTokenRegistry(tx)
		if err != nil {
			return err
		}
		if caller != registry.Admin {
			return ledger.ErrUnauthorized
		}

		// The registry row is held FOR UPDATE, so the count cannot race a
		// concurrent add past the capacity cap.
		var count int64
		if err := tx.Model(&models.ApprovedToken{}).Count(&count).Error; err != nil {
			return err
		}
		if err := ledger.CheckRegistryCapacity(count); err != nil {
			return err
		}

		if err := tx.Create(&models.ApprovedToken{Mint: req.Mint}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ledger.ErrTokenAlreadyApproved
			}
			return err
		}
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("Token approved: %s", req.Mint)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mint": req.Mint, "approved": true})
}

// RemoveApprovedToken delists a mint (registry admin only).
func (s *AdminService) RemoveApprovedToken(c *fiber.Ctx) error {
	caller := walletFromCtx(c)
	mint := c.Params("mint")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		registry, err := lockTokenRegistry(tx)
		if err != nil {
			return err
		}
		if caller != registry.Admin {
			return ledger.ErrUnauthorized
		}

		result := tx.Where("mint = ?", mint).Delete(&models.ApprovedToken{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ledger.ErrTokenNotApproved
		}
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("Token removed: %s", mint)
	return c.JSON(fiber.Map{"mint": mint, "approved": false})
}

// SetEmergencyPause toggles the platform circuit breaker (config admin only).
// Every funds-moving operation checks the flag before doing anything else.
func (s *AdminService) SetEmergencyPause(c *fiber.Ctx) error {
	caller := walletFromCtx(c)

	var req struct {
		Paused *bool `json:"paused"`
	}
	if err := c.BodyParser(&req); err != nil || req.Paused == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "paused is required"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadGlobalConfig(tx)
		if err != nil {
			return err
		}
		if caller != cfg.Admin {
			return ledger.ErrUnauthorized
		}
		cfg.EmergencyPause = *req.Paused
		return tx.Save(cfg).Error
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("⚠️  Emergency pause set to %t by %s", *req.Paused, caller)
	return c.JSON(fiber.Map{"emergency_pause": *req.Paused})
}

// CreateTokenAccount provisions a token account with a starting balance
// (config admin only). Outside this faucet, balances move only through
// lifecycle operations.
func (s *AdminService) CreateTokenAccount(c *fiber.Ctx) error {
	caller := walletFromCtx(c)

	var req struct {
		Address string `json:"address"`
		Owner   string `json:"owner"`
		Mint    string `json:"mint"`
		Balance uint64 `json:"balance"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Owner == "" || req.Mint == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "owner and mint are required"})
	}
	if req.Address == "" {
		req.Address = uuid.NewString()
	}

	var account models.TokenAccount
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadGlobalConfig(tx)
		if err != nil {
			return err
		}
		if caller != cfg.Admin {
			return ledger.ErrUnauthorized
		}
		account = models.TokenAccount{
			Address: req.Address,
			Owner:   req.Owner,
			Mint:    req.Mint,
			Balance: req.Balance,
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

// RecoverRoom is the fail-safe for abandoned rooms: admin-only, takes a flat
// 10% platform fee and refunds the rest equally among players. The refund
// destination list is positional and must cover every player.
func (s *AdminService) RecoverRoom(c *fiber.Ctx) error {
	caller := walletFromCtx(c)
	roomAddress := c.Params("address")

	var req struct {
		PlatformTokenAccount string   `json:"platform_token_account"`
		PlayerTokenAccounts  []string `json:"player_token_accounts"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var platformFee, refundPerPlayer uint64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadGlobalConfig(tx)
		if err != nil {
			return err
		}
		room, err := lockRoom(tx, roomAddress)
		if err != nil {
			return err
		}
		if err := ledger.CheckRecoverable(room, caller, cfg.Admin); err != nil {
			return err
		}
		if len(req.PlayerTokenAccounts) != int(room.PlayerCount) {
			return ledger.ErrInvalidWinners
		}

		platformFee, refundPerPlayer, err = ledger.ComputeRecovery(room.TotalCollected, room.PlayerCount)
		if err != nil {
			return err
		}

		log.Printf("Recovering abandoned room %s — collected: %d, players: %d, platform fee: %d, refund each: %d",
			room.RoomID, room.TotalCollected, room.PlayerCount, platformFee, refundPerPlayer)

		platformAccount, err := lockAccount(tx, req.PlatformTokenAccount)
		if err != nil {
			return err
		}
		if err := ledger.VerifyPayoutAccount(platformAccount, room.FeeTokenMint, cfg.PlatformWallet); err != nil {
			return err
		}
		if platformFee > 0 {
			if err := moveTokens(tx, room.Address, room.VaultAddress, platformAccount.Address, platformFee, models.TransferPlatformFee); err != nil {
				return err
			}
		}

		for _, destination := range req.PlayerTokenAccounts {
			account, err := lockAccount(tx, destination)
			if err != nil {
				return err
			}
			if account.Mint != room.FeeTokenMint {
				return ledger.ErrInvalidTokenMint
			}
			if refundPerPlayer > 0 {
				if err := moveTokens(tx, room.Address, room.VaultAddress, destination, refundPerPlayer, models.TransferRefund); err != nil {
					return err
				}
			}
		}

		room.Ended = true
		room.Status = models.StatusEnded
		return tx.Save(room).Error
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("✅ Room %s recovered and players refunded", roomAddress)
	return c.JSON(fiber.Map{
		"room":              roomAddress,
		"platform_fee":      platformFee,
		"refund_per_player": refundPerPlayer,
	})
}

// GetApprovedTokens lists the allowlisted payment-asset mints.
func (s *AdminService) GetApprovedTokens(c *fiber.Ctx) error {
	var tokens []models.ApprovedToken
	if err := s.DB.Order("created_at ASC").Find(&tokens).Error; err != nil {
		return respondError(c, err)
	}
	mints := make([]string, 0, len(tokens))
	for _, t := range tokens {
		mints = append(mints, t.Mint)
	}
	return c.JSON(fiber.Map{"tokens": mints, "count": len(mints)})
}

// GetAccountBalance returns one token account's balance.
func (s *AdminService) GetAccountBalance(c *fiber.Ctx) error {
	var account models.TokenAccount
	if err := s.DB.First(&account, "address = ?", c.Params("address")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, ledger.ErrAccountNotFound)
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"address": account.Address,
		"owner":   account.Owner,
		"mint":    account.Mint,
		"balance": account.Balance,
	})
}
