package services

import (
	"errors"
	"log"
	"time"

	"fundraising-room-system/ledger"
	"fundraising-room-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameService struct {
	DB *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{DB: db}
}

// JoinRoom charges the caller entry fee plus optional extras into the room
// vault and writes the payment receipt. The first join flips the room to
// Active. Every counter update is checked arithmetic; any failure rolls the
// whole join back.
func (s *GameService) JoinRoom(c *fiber.Ctx) error {
	player := walletFromCtx(c)
	roomAddress := c.Params("address")

	var req struct {
		ExtrasAmount       uint64 `json:"extras_amount"`
		PlayerTokenAccount string `json:"player_token_account"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var entry models.PlayerEntry
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadGlobalConfig(tx)
		if err != nil {
			return err
		}
		room, err := lockRoom(tx, roomAddress)
		if err != nil {
			return err
		}
		if err := ledger.CheckJoinable(room, cfg.EmergencyPause, currentSlot()); err != nil {
			return err
		}

		source, err := lockAccount(tx, req.PlayerTokenAccount)
		if err != nil {
			return err
		}
		if err := ledger.VerifyPayoutAccount(source, room.FeeTokenMint, player); err != nil {
			return err
		}

		totalPaid, err := ledger.CheckedAdd(room.EntryFee, req.ExtrasAmount)
		if err != nil {
			return err
		}
		if err := moveTokens(tx, room.Address, source.Address, room.VaultAddress, totalPaid, models.TransferEntryPayment); err != nil {
			return err
		}

		entry = models.PlayerEntry{
			ID:          uuid.NewString(),
			RoomAddress: room.Address,
			Player:      player,
			EntryPaid:   room.EntryFee,
			ExtrasPaid:  req.ExtrasAmount,
			TotalPaid:   totalPaid,
			JoinSlot:    currentSlot(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ledger.ErrPlayerAlreadyJoined
			}
			return err
		}

		if room.TotalEntryFees, err = ledger.CheckedAdd(room.TotalEntryFees, room.EntryFee); err != nil {
			return err
		}
		if room.TotalExtrasFees, err = ledger.CheckedAdd(room.TotalExtrasFees, req.ExtrasAmount); err != nil {
			return err
		}
		if room.TotalCollected, err = ledger.CheckedAdd(room.TotalCollected, totalPaid); err != nil {
			return err
		}
		room.PlayerCount++
		if room.Status == models.StatusReady {
			room.Status = models.StatusActive
		}
		if err := tx.Save(room).Error; err != nil {
			return err
		}

		return recordEvent(tx, models.EventPlayerJoined, room.Address, models.PlayerJoinedEvent{
			Room:        room.Address,
			Player:      player,
			AmountPaid:  totalPaid,
			ExtrasPaid:  req.ExtrasAmount,
			PlayerCount: room.PlayerCount,
			Timestamp:   time.Now().Unix(),
		})
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("Player %s joined room %s (paid %d)", player, roomAddress, entry.TotalPaid)
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// DeclareWinners records the winner list on the room. Host-only, exactly
// once; distribution happens later in EndRoom.
func (s *GameService) DeclareWinners(c *fiber.Ctx) error {
	caller := walletFromCtx(c)
	roomAddress := c.Params("address")

	var req struct {
		Winners []string `json:"winners"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var room *models.Room
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = lockRoom(tx, roomAddress)
		if err != nil {
			return err
		}
		if err := ledger.CheckDeclareWinners(room, caller, req.Winners); err != nil {
			return err
		}

		for i := range req.Winners {
			w := req.Winners[i]
			room.Winners[i] = &w
		}
		if err := tx.Save(room).Error; err != nil {
			return err
		}

		return recordEvent(tx, models.EventWinnersDeclared, room.Address, models.WinnersDeclaredEvent{
			Room:      room.Address,
			Winners:   room.Winners,
			Timestamp: time.Now().Unix(),
		})
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("🏆 Winners declared for room %s: %v", room.RoomID, req.Winners)
	return c.JSON(room)
}

type endRoomRequest struct {
	// Fallback winner list, used only when the host never called
	// declare_winners.
	Winners []string `json:"winners"`

	PlatformTokenAccount string   `json:"platform_token_account"`
	HostTokenAccount     string   `json:"host_token_account"`
	CharityTokenAccount  string   `json:"charity_token_account"`
	WinnerTokenAccounts  []string `json:"winner_token_accounts"`
}

// EndRoom distributes the room's funds. The terminal flags are committed
// before any transfer runs, so a reentrant end attempt fails on the ended
// check no matter where the first one is in its payout sequence.
func (s *GameService) EndRoom(c *fiber.Ctx) error {
	caller := walletFromCtx(c)
	roomAddress := c.Params("address")

	var req endRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var dist ledger.Distribution
	var winners []string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadGlobalConfig(tx)
		if err != nil {
			return err
		}
		room, err := lockRoom(tx, roomAddress)
		if err != nil {
			return err
		}
		if err := ledger.CheckEndable(room, caller, currentSlot()); err != nil {
			return err
		}
		winners, err = ledger.ResolveWinners(room, req.Winners)
		if err != nil {
			return err
		}
		if len(req.WinnerTokenAccounts) < len(winners) {
			return ledger.ErrInvalidWinners
		}

		prizePoolBps := room.PrizePoolBps
		if room.PrizeMode == models.PrizeModeAssetBased {
			prizePoolBps = 0
		}
		dist, err = ledger.ComputeDistribution(room.TotalEntryFees, room.TotalExtrasFees,
			cfg.PlatformFeeBps, room.HostFeeBps, prizePoolBps)
		if err != nil {
			return err
		}

		// Check-then-set-then-act: the terminal flags go down before a single
		// unit moves.
		room.Ended = true
		room.Status = models.StatusEnded
		if err := tx.Save(room).Error; err != nil {
			return err
		}

		if dist.PlatformFee > 0 {
			account, err := lockAccount(tx, req.PlatformTokenAccount)
			if err != nil {
				return err
			}
			if err := ledger.VerifyPayoutAccount(account, room.FeeTokenMint, cfg.PlatformWallet); err != nil {
				return err
			}
			if err := moveTokens(tx, room.Address, room.VaultAddress, account.Address, dist.PlatformFee, models.TransferPlatformFee); err != nil {
				return err
			}
		}
		if dist.HostFee > 0 {
			account, err := lockAccount(tx, req.HostTokenAccount)
			if err != nil {
				return err
			}
			if err := ledger.VerifyPayoutAccount(account, room.FeeTokenMint, room.Host); err != nil {
				return err
			}
			if err := moveTokens(tx, room.Address, room.VaultAddress, account.Address, dist.HostFee, models.TransferHostFee); err != nil {
				return err
			}
		}
		if dist.CharityAmount > 0 {
			account, err := lockAccount(tx, req.CharityTokenAccount)
			if err != nil {
				return err
			}
			if err := ledger.VerifyPayoutAccount(account, room.FeeTokenMint, room.CharityWallet); err != nil {
				return err
			}
			if err := moveTokens(tx, room.Address, room.VaultAddress, account.Address, dist.CharityAmount, models.TransferCharity); err != nil {
				return err
			}
		}
		if dist.PrizeAmount > 0 {
			for i, winner := range winners {
				pct := uint16(0)
				if i < len(room.PrizeDistribution) {
					pct = room.PrizeDistribution[i]
				}
				amount := ledger.WinnerAmount(dist.PrizeAmount, pct)
				if amount == 0 {
					continue
				}
				account, err := lockAccount(tx, req.WinnerTokenAccounts[i])
				if err != nil {
					return err
				}
				if err := ledger.VerifyPayoutAccount(account, room.FeeTokenMint, winner); err != nil {
					return err
				}
				if err := moveTokens(tx, room.Address, room.VaultAddress, account.Address, amount, models.TransferPrize); err != nil {
					return err
				}
			}
		}

		return recordEvent(tx, models.EventRoomEnded, room.Address, models.RoomEndedEvent{
			Room:           room.Address,
			Winners:        winners,
			PlatformAmount: dist.PlatformFee,
			HostAmount:     dist.HostFee,
			CharityAmount:  dist.CharityAmount,
			PrizeAmount:    dist.PrizeAmount,
			TotalPlayers:   room.PlayerCount,
			Timestamp:      time.Now().Unix(),
		})
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("✅ Room %s ended — platform %d, host %d, charity %d, prizes %d",
		roomAddress, dist.PlatformFee, dist.HostFee, dist.CharityAmount, dist.PrizeAmount)
	return c.JSON(fiber.Map{
		"room":            roomAddress,
		"winners":         winners,
		"platform_amount": dist.PlatformFee,
		"host_amount":     dist.HostFee,
		"charity_amount":  dist.CharityAmount,
		"prize_amount":    dist.PrizeAmount,
	})
}
