package services

import (
	"fundraising-room-system/ledger"
	"fundraising-room-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FeeService struct {
	DB *gorm.DB
}

func NewFeeService(db *gorm.DB) *FeeService {
	return &FeeService{DB: db}
}

// FeeBreakdown is the preview of how a hypothetical pot would be split. The
// UI shows this to hosts before they commit to a room configuration.
type FeeBreakdown struct {
	TotalPot       uint64 `json:"total_pot"`
	PlatformFee    uint64 `json:"platform_fee"`
	HostFee        uint64 `json:"host_fee"`
	PrizeAmount    uint64 `json:"prize_amount"`
	CharityAmount  uint64 `json:"charity_amount"`
	PlatformFeeBps uint16 `json:"platform_fee_bps"`
	HostFeeBps     uint16 `json:"host_fee_bps"`
	PrizePoolBps   uint16 `json:"prize_pool_bps"`
	CharityBps     uint16 `json:"charity_bps"`
}

// CalculateFees previews a distribution without touching any room. Pool mode
// applies the prize share; asset mode routes that share to charity instead.
func (s *FeeService) CalculateFees(c *fiber.Ctx) error {
	var req struct {
		EntryFee     uint64           `json:"entry_fee"`
		Extras       uint64           `json:"extras"`
		PlayerCount  uint32           `json:"player_count"`
		HostFeeBps   uint16           `json:"host_fee_bps"`
		PrizePoolBps uint16           `json:"prize_pool_bps"`
		PrizeMode    models.PrizeMode `json:"prize_mode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.PrizeMode == "" {
		req.PrizeMode = models.PrizeModePoolSplit
	}

	cfg, err := loadGlobalConfig(s.DB)
	if err != nil {
		return respondError(c, err)
	}

	breakdown, err := computeFeeBreakdown(ledger.SnapshotOf(cfg), req.EntryFee, req.Extras,
		req.PlayerCount, req.HostFeeBps, req.PrizePoolBps, req.PrizeMode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(breakdown)
}

func computeFeeBreakdown(cfg ledger.ConfigSnapshot, entryFee, extras uint64, playerCount uint32, hostFeeBps, prizePoolBps uint16, mode models.PrizeMode) (FeeBreakdown, error) {
	if entryFee == 0 {
		return FeeBreakdown{}, ledger.ErrInvalidEntryFee
	}
	if hostFeeBps > cfg.MaxHostFeeBps {
		return FeeBreakdown{}, ledger.ErrHostFeeTooHigh
	}
	if mode == models.PrizeModeAssetBased {
		prizePoolBps = 0
	} else if prizePoolBps > cfg.MaxPrizePoolBps {
		return FeeBreakdown{}, ledger.ErrPrizePoolTooHigh
	}

	charityBps := ledger.DeriveCharityBps(cfg.PlatformFeeBps, hostFeeBps, prizePoolBps)
	if charityBps < cfg.MinCharityBps {
		return FeeBreakdown{}, ledger.ErrCharityBelowMinimum
	}

	totalEntryFees, err := ledger.CheckedMul(entryFee, uint64(playerCount))
	if err != nil {
		return FeeBreakdown{}, err
	}
	totalExtras, err := ledger.CheckedMul(extras, uint64(playerCount))
	if err != nil {
		return FeeBreakdown{}, err
	}
	dist, err := ledger.ComputeDistribution(totalEntryFees, totalExtras,
		cfg.PlatformFeeBps, hostFeeBps, prizePoolBps)
	if err != nil {
		return FeeBreakdown{}, err
	}

	totalPot, err := ledger.CheckedAdd(totalEntryFees, totalExtras)
	if err != nil {
		return FeeBreakdown{}, err
	}
	return FeeBreakdown{
		TotalPot:       totalPot,
		PlatformFee:    dist.PlatformFee,
		HostFee:        dist.HostFee,
		PrizeAmount:    dist.PrizeAmount,
		CharityAmount:  dist.CharityAmount,
		PlatformFeeBps: cfg.PlatformFeeBps,
		HostFeeBps:     hostFeeBps,
		PrizePoolBps:   prizePoolBps,
		CharityBps:     charityBps,
	}, nil
}
