package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"fundraising-room-system/ledger"
	"fundraising-room-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type initPoolRoomRequest struct {
	RoomID          string  `json:"room_id"`
	Name            string  `json:"name"` // slugged into room_id when room_id is empty
	CharityWallet   string  `json:"charity_wallet"`
	FeeTokenMint    string  `json:"fee_token_mint"`
	EntryFee        uint64  `json:"entry_fee"`
	MaxPlayers      uint32  `json:"max_players"`
	HostFeeBps      uint16  `json:"host_fee_bps"`
	PrizePoolBps    uint16  `json:"prize_pool_bps"`
	FirstPlacePct   uint16  `json:"first_place_pct"`
	SecondPlacePct  *uint16 `json:"second_place_pct"`
	ThirdPlacePct   *uint16 `json:"third_place_pct"`
	ExpirationSlots uint64  `json:"expiration_slots"` // duration, 0 = never expires
	CharityMemo     string  `json:"charity_memo"`
}

// deriveRoomID slugs a human room name into a valid room id, trimming any
// hyphen left dangling by the length cut.
func deriveRoomID(name string) string {
	id := slug.Make(name)
	if len(id) > ledger.MaxRoomIDLen {
		id = strings.TrimRight(id[:ledger.MaxRoomIDLen], "-")
	}
	return id
}

// InitPoolRoom creates a pool-split room. The room goes straight to Ready:
// pool prizes are funded by entry fees, so there is nothing to escrow up
// front.
func (s *RoomService) InitPoolRoom(c *fiber.Ctx) error {
	host := walletFromCtx(c)

	var req initPoolRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.RoomID == "" && req.Name != "" {
		req.RoomID = deriveRoomID(req.Name)
	}
	if req.CharityWallet == "" || req.FeeTokenMint == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "charity_wallet and fee_token_mint are required"})
	}

	var room models.Room
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadGlobalConfig(tx)
		if err != nil {
			return err
		}
		if err := s.checkTokenApproved(tx, req.FeeTokenMint); err != nil {
			return err
		}

		charityBps, distribution, memo, err := ledger.ValidatePoolRoom(ledger.SnapshotOf(cfg), ledger.PoolRoomParams{
			RoomID:         req.RoomID,
			EntryFee:       req.EntryFee,
			MaxPlayers:     req.MaxPlayers,
			HostFeeBps:     req.HostFeeBps,
			PrizePoolBps:   req.PrizePoolBps,
			FirstPlacePct:  req.FirstPlacePct,
			SecondPlacePct: req.SecondPlacePct,
			ThirdPlacePct:  req.ThirdPlacePct,
			CharityMemo:    req.CharityMemo,
		})
		if err != nil {
			return err
		}

		creationSlot := currentSlot()
		expirationSlot, err := ledger.ExpirationAt(creationSlot, req.ExpirationSlots)
		if err != nil {
			return err
		}

		address := uuid.NewString()
		vault := models.TokenAccount{
			Address: uuid.NewString(),
			Owner:   address,
			Mint:    req.FeeTokenMint,
		}
		if err := tx.Create(&vault).Error; err != nil {
			return err
		}

		room = models.Room{
			Address:           address,
			RoomID:            req.RoomID,
			Host:              host,
			CharityWallet:     req.CharityWallet,
			FeeTokenMint:      req.FeeTokenMint,
			EntryFee:          req.EntryFee,
			HostFeeBps:        req.HostFeeBps,
			PrizePoolBps:      req.PrizePoolBps,
			CharityBps:        charityBps,
			PrizeMode:         models.PrizeModePoolSplit,
			PrizeDistribution: distribution,
			Status:            models.StatusReady,
			MaxPlayers:        req.MaxPlayers,
			CreationSlot:      creationSlot,
			ExpirationSlot:    expirationSlot,
			CharityMemo:       memo,
			VaultAddress:      vault.Address,
		}
		if err := tx.Create(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ledger.ErrRoomAlreadyExists
			}
			return err
		}

		return recordEvent(tx, models.EventRoomCreated, room.Address, models.RoomCreatedEvent{
			Room:           room.Address,
			RoomID:         room.RoomID,
			Host:           room.Host,
			EntryFee:       room.EntryFee,
			MaxPlayers:     room.MaxPlayers,
			ExpirationSlot: room.ExpirationSlot,
			Timestamp:      time.Now().Unix(),
		})
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("🎉 Pool room created: %s by %s (entry fee %d, charity %d bps)",
		room.RoomID, host, room.EntryFee, room.CharityBps)
	return c.Status(fiber.StatusCreated).JSON(room)
}

type initAssetRoomRequest struct {
	RoomID          string  `json:"room_id"`
	Name            string  `json:"name"`
	CharityWallet   string  `json:"charity_wallet"`
	FeeTokenMint    string  `json:"fee_token_mint"`
	EntryFee        uint64  `json:"entry_fee"`
	MaxPlayers      uint32  `json:"max_players"`
	HostFeeBps      uint16  `json:"host_fee_bps"`
	ExpirationSlots uint64  `json:"expiration_slots"` // duration, 0 = never expires
	CharityMemo     string  `json:"charity_memo"`
	Prize1Mint     string  `json:"prize_1_mint"`
	Prize1Amount   uint64  `json:"prize_1_amount"`
	Prize2Mint     *string `json:"prize_2_mint"`
	Prize2Amount   *uint64 `json:"prize_2_amount"`
	Prize3Mint     *string `json:"prize_3_mint"`
	Prize3Amount   *uint64 `json:"prize_3_amount"`
}

// InitAssetRoom creates an asset-based room. It starts in AwaitingFunding and
// refuses players until every declared prize has been escrowed into the prize
// vault.
func (s *RoomService) InitAssetRoom(c *fiber.Ctx) error {
	host := walletFromCtx(c)

	var req initAssetRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.RoomID == "" && req.Name != "" {
		req.RoomID = deriveRoomID(req.Name)
	}
	if req.CharityWallet == "" || req.FeeTokenMint == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "charity_wallet and fee_token_mint are required"})
	}

	var room models.Room
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadGlobalConfig(tx)
		if err != nil {
			return err
		}
		if err := s.checkTokenApproved(tx, req.FeeTokenMint); err != nil {
			return err
		}

		charityBps, memo, prizes, err := ledger.ValidateAssetRoom(ledger.SnapshotOf(cfg), ledger.AssetRoomParams{
			RoomID:       req.RoomID,
			EntryFee:     req.EntryFee,
			MaxPlayers:   req.MaxPlayers,
			HostFeeBps:   req.HostFeeBps,
			CharityMemo:  req.CharityMemo,
			Prize1Mint:   req.Prize1Mint,
			Prize1Amount: req.Prize1Amount,
			Prize2Mint:   req.Prize2Mint,
			Prize2Amount: req.Prize2Amount,
			Prize3Mint:   req.Prize3Mint,
			Prize3Amount: req.Prize3Amount,
		})
		if err != nil {
			return err
		}

		creationSlot := currentSlot()
		expirationSlot, err := ledger.ExpirationAt(creationSlot, req.ExpirationSlots)
		if err != nil {
			return err
		}

		address := uuid.NewString()
		vault := models.TokenAccount{
			Address: uuid.NewString(),
			Owner:   address,
			Mint:    req.FeeTokenMint,
		}
		if err := tx.Create(&vault).Error; err != nil {
			return err
		}
		// Asset prizes may use a different mint than the entry fee; the prize
		// vault tracks the first prize's mint.
		prizeVault := models.TokenAccount{
			Address: uuid.NewString(),
			Owner:   address,
			Mint:    req.Prize1Mint,
		}
		if err := tx.Create(&prizeVault).Error; err != nil {
			return err
		}

		room = models.Room{
			Address:           address,
			RoomID:            req.RoomID,
			Host:              host,
			CharityWallet:     req.CharityWallet,
			FeeTokenMint:      req.FeeTokenMint,
			EntryFee:          req.EntryFee,
			HostFeeBps:        req.HostFeeBps,
			CharityBps:        charityBps,
			PrizeMode:         models.PrizeModeAssetBased,
			PrizeAssets:       prizes,
			Status:            models.StatusAwaitingFunding,
			MaxPlayers:        req.MaxPlayers,
			CreationSlot:      creationSlot,
			ExpirationSlot:    expirationSlot,
			CharityMemo:       memo,
			VaultAddress:      vault.Address,
			PrizeVaultAddress: prizeVault.Address,
		}
		if err := tx.Create(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ledger.ErrRoomAlreadyExists
			}
			return err
		}

		return recordEvent(tx, models.EventRoomCreated, room.Address, models.RoomCreatedEvent{
			Room:           room.Address,
			RoomID:         room.RoomID,
			Host:           room.Host,
			EntryFee:       room.EntryFee,
			MaxPlayers:     room.MaxPlayers,
			ExpirationSlot: room.ExpirationSlot,
			Timestamp:      time.Now().Unix(),
		})
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("🎉 Asset room created: %s by %s (awaiting prize funding)", room.RoomID, host)
	return c.Status(fiber.StatusCreated).JSON(room)
}

// DepositPrizeAsset escrows one declared prize into the prize vault. The room
// becomes Ready once every declared slot is funded, PartiallyFunded before
// that.
func (s *RoomService) DepositPrizeAsset(c *fiber.Ctx) error {
	caller := walletFromCtx(c)
	roomAddress := c.Params("address")
	prizeIndex, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid prize index"})
	}

	var req struct {
		HostTokenAccount string `json:"host_token_account"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var room *models.Room
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		room, err = lockRoom(tx, roomAddress)
		if err != nil {
			return err
		}
		prize, err := ledger.CheckDepositPrize(room, caller, prizeIndex)
		if err != nil {
			return err
		}

		source, err := lockAccount(tx, req.HostTokenAccount)
		if err != nil {
			return err
		}
		if err := ledger.VerifyPayoutAccount(source, prize.Mint, caller); err != nil {
			return err
		}
		if err := moveTokens(tx, room.Address, source.Address, room.PrizeVaultAddress, prize.Amount, models.TransferPrizeDeposit); err != nil {
			return err
		}

		prize.Deposited = true
		if room.AllPrizesDeposited() {
			room.Status = models.StatusReady
		} else {
			room.Status = models.StatusPartiallyFunded
		}
		return tx.Save(room).Error
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("Prize %d deposited for room %s (status now %s)", prizeIndex, room.RoomID, room.Status)
	return c.JSON(room)
}

// GetRoom returns one room by address.
func (s *RoomService) GetRoom(c *fiber.Ctx) error {
	var room models.Room
	if err := s.DB.First(&room, "address = ?", c.Params("address")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, ledger.ErrRoomNotFound)
		}
		return respondError(c, err)
	}
	return c.JSON(room)
}

// ListRooms returns rooms, optionally filtered by status and host.
func (s *RoomService) ListRooms(c *fiber.Ctx) error {
	query := s.DB.Model(&models.Room{}).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if host := c.Query("host"); host != "" {
		query = query.Where("host = ?", host)
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var rooms []models.Room
	if err := query.Limit(limit).Find(&rooms).Error; err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"rooms": rooms, "count": len(rooms)})
}

// ListRoomEntries returns the join receipts for one room.
func (s *RoomService) ListRoomEntries(c *fiber.Ctx) error {
	var entries []models.PlayerEntry
	err := s.DB.Where("room_address = ?", c.Params("address")).
		Order("created_at ASC").Find(&entries).Error
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries, "count": len(entries)})
}

// ListRoomTransfers returns the audit trail of balance moves for one room.
func (s *RoomService) ListRoomTransfers(c *fiber.Ctx) error {
	var transfers []models.LedgerTransfer
	err := s.DB.Where("room_address = ?", c.Params("address")).
		Order("created_at ASC").Find(&transfers).Error
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"transfers": transfers, "count": len(transfers)})
}

func (s *RoomService) checkTokenApproved(tx *gorm.DB, mint string) error {
	var count int64
	if err := tx.Model(&models.ApprovedToken{}).Where("mint = ?", mint).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ledger.ErrTokenNotApproved
	}
	return nil
}
