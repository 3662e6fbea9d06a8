package ledger

import (
	"fundraising-room-system/models"

	"golang.org/x/text/unicode/norm"
)

const (
	MaxRoomIDLen    = 32
	MaxMemoBytes    = 28
	MaxPlayersLimit = 1000
)

// ConfigSnapshot is the read-only view of GlobalConfig an operation validates
// against. Built fresh per call; never cached across operations.
type ConfigSnapshot struct {
	Admin           string
	PlatformWallet  string
	CharityWallet   string
	PlatformFeeBps  uint16
	MaxHostFeeBps   uint16
	MaxPrizePoolBps uint16
	MinCharityBps   uint16
	EmergencyPause  bool
}

// SnapshotOf builds the per-call config view from the stored singleton.
func SnapshotOf(cfg *models.GlobalConfig) ConfigSnapshot {
	return ConfigSnapshot{
		Admin:           cfg.Admin,
		PlatformWallet:  cfg.PlatformWallet,
		CharityWallet:   cfg.CharityWallet,
		PlatformFeeBps:  cfg.PlatformFeeBps,
		MaxHostFeeBps:   cfg.MaxHostFeeBps,
		MaxPrizePoolBps: cfg.MaxPrizePoolBps,
		MinCharityBps:   cfg.MinCharityBps,
		EmergencyPause:  cfg.EmergencyPause,
	}
}

// ExpirationAt converts an expiration duration in slots to the absolute slot
// the room expires at. 0 keeps the never-expires convention.
func ExpirationAt(nowSlot, durationSlots uint64) (uint64, error) {
	if durationSlots == 0 {
		return 0, nil
	}
	return CheckedAdd(nowSlot, durationSlots)
}

// CheckRegistryCapacity rejects an add that would grow the registry past its
// cap. Callers must hold the registry lock so the count cannot move under
// them.
func CheckRegistryCapacity(count int64) error {
	if count >= models.MaxApprovedTokens {
		return ErrTokenRegistryFull
	}
	return nil
}

// ValidateRoomID enforces the 1-32 character bound.
func ValidateRoomID(roomID string) error {
	if len(roomID) == 0 || len(roomID) > MaxRoomIDLen {
		return ErrInvalidRoomID
	}
	return nil
}

// NormalizeMemo NFC-normalizes the charity memo and enforces the 28-byte
// serialized bound. Normalizing first keeps the byte-length check stable for
// equivalent unicode spellings.
func NormalizeMemo(memo string) (string, error) {
	memo = norm.NFC.String(memo)
	if len(memo) > MaxMemoBytes {
		return "", ErrInvalidMemo
	}
	return memo, nil
}

// DeriveCharityBps computes the charity share left after platform, host and
// prize allocations. Saturating: an over-allocation floors at 0 and is then
// rejected by the minimum-charity check.
func DeriveCharityBps(platformBps, hostFeeBps, prizePoolBps uint16) uint16 {
	c := saturatingSubBps(10000, platformBps)
	c = saturatingSubBps(c, hostFeeBps)
	return saturatingSubBps(c, prizePoolBps)
}

// PoolRoomParams are the host-supplied economics of a pool-split room.
type PoolRoomParams struct {
	RoomID         string
	EntryFee       uint64
	MaxPlayers     uint32
	HostFeeBps     uint16
	PrizePoolBps   uint16
	FirstPlacePct  uint16
	SecondPlacePct *uint16
	ThirdPlacePct  *uint16
	CharityMemo    string
}

// ValidatePoolRoom checks every pool-room creation precondition in order and
// returns the derived charity bps plus the fixed 3-slot prize distribution.
// No state is touched before the first failing check aborts the operation.
func ValidatePoolRoom(cfg ConfigSnapshot, p PoolRoomParams) (charityBps uint16, distribution []uint16, memo string, err error) {
	if cfg.EmergencyPause {
		return 0, nil, "", ErrEmergencyPause
	}
	if err := ValidateRoomID(p.RoomID); err != nil {
		return 0, nil, "", err
	}
	memo, err = NormalizeMemo(p.CharityMemo)
	if err != nil {
		return 0, nil, "", err
	}
	if p.EntryFee == 0 {
		return 0, nil, "", ErrInvalidEntryFee
	}
	if p.MaxPlayers == 0 || p.MaxPlayers > MaxPlayersLimit {
		return 0, nil, "", ErrInvalidMaxPlayers
	}
	if p.HostFeeBps > cfg.MaxHostFeeBps {
		return 0, nil, "", ErrHostFeeTooHigh
	}
	if p.PrizePoolBps > cfg.MaxPrizePoolBps {
		return 0, nil, "", ErrPrizePoolTooHigh
	}

	second := uint16(0)
	if p.SecondPlacePct != nil {
		second = *p.SecondPlacePct
	}
	third := uint16(0)
	if p.ThirdPlacePct != nil {
		third = *p.ThirdPlacePct
	}
	if int(p.FirstPlacePct)+int(second)+int(third) != 100 {
		return 0, nil, "", ErrInvalidPrizeDistribution
	}

	charityBps = DeriveCharityBps(cfg.PlatformFeeBps, p.HostFeeBps, p.PrizePoolBps)
	if charityBps < cfg.MinCharityBps {
		return 0, nil, "", ErrCharityBelowMinimum
	}

	return charityBps, []uint16{p.FirstPlacePct, second, third}, memo, nil
}

// AssetRoomParams are the host-supplied economics of an asset-based room.
// Prize slot 1 is mandatory; slots 2 and 3 are optional (mint, amount) pairs.
type AssetRoomParams struct {
	RoomID       string
	EntryFee     uint64
	MaxPlayers   uint32
	HostFeeBps   uint16
	CharityMemo  string
	Prize1Mint   string
	Prize1Amount uint64
	Prize2Mint   *string
	Prize2Amount *uint64
	Prize3Mint   *string
	Prize3Amount *uint64
}

// ValidateAssetRoom checks every asset-room creation precondition and returns
// the derived charity bps (no prize pool share in asset mode), the normalized
// memo and the declared prize slots.
func ValidateAssetRoom(cfg ConfigSnapshot, p AssetRoomParams) (charityBps uint16, memo string, prizes [3]*models.PrizeAsset, err error) {
	if cfg.EmergencyPause {
		return 0, "", prizes, ErrEmergencyPause
	}
	if err := ValidateRoomID(p.RoomID); err != nil {
		return 0, "", prizes, err
	}
	memo, err = NormalizeMemo(p.CharityMemo)
	if err != nil {
		return 0, "", prizes, err
	}
	if p.EntryFee == 0 {
		return 0, "", prizes, ErrInvalidEntryFee
	}
	if p.MaxPlayers == 0 || p.MaxPlayers > MaxPlayersLimit {
		return 0, "", prizes, ErrInvalidMaxPlayers
	}
	if p.HostFeeBps > cfg.MaxHostFeeBps {
		return 0, "", prizes, ErrHostFeeTooHigh
	}
	if p.Prize1Amount == 0 {
		return 0, "", prizes, ErrInvalidPrizeAmount
	}
	prizes[0] = &models.PrizeAsset{Mint: p.Prize1Mint, Amount: p.Prize1Amount}
	if p.Prize2Mint != nil && p.Prize2Amount != nil {
		if *p.Prize2Amount == 0 {
			return 0, "", prizes, ErrInvalidPrizeAmount
		}
		prizes[1] = &models.PrizeAsset{Mint: *p.Prize2Mint, Amount: *p.Prize2Amount}
	}
	if p.Prize3Mint != nil && p.Prize3Amount != nil {
		if *p.Prize3Amount == 0 {
			return 0, "", prizes, ErrInvalidPrizeAmount
		}
		prizes[2] = &models.PrizeAsset{Mint: *p.Prize3Mint, Amount: *p.Prize3Amount}
	}

	charityBps = DeriveCharityBps(cfg.PlatformFeeBps, p.HostFeeBps, 0)
	if charityBps < cfg.MinCharityBps {
		return 0, "", prizes, ErrCharityBelowMinimum
	}

	return charityBps, memo, prizes, nil
}
