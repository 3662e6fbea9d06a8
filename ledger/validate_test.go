package ledger

import (
	"math"
	"strings"
	"testing"

	"fundraising-room-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() ConfigSnapshot {
	return ConfigSnapshot{
		Admin:           "admin-wallet",
		PlatformWallet:  "platform-wallet",
		CharityWallet:   "charity-wallet",
		PlatformFeeBps:  2000,
		MaxHostFeeBps:   500,
		MaxPrizePoolBps: 3500,
		MinCharityBps:   4000,
		EmergencyPause:  false,
	}
}

func validPoolParams() PoolRoomParams {
	return PoolRoomParams{
		RoomID:        "spring-gala",
		EntryFee:      1_000_000,
		MaxPlayers:    100,
		HostFeeBps:    300,
		PrizePoolBps:  2000,
		FirstPlacePct: 100,
		CharityMemo:   "for the children",
	}
}

func TestValidatePoolRoomHappyPath(t *testing.T) {
	charityBps, distribution, memo, err := ValidatePoolRoom(testConfig(), validPoolParams())
	require.NoError(t, err)
	assert.Equal(t, uint16(5700), charityBps) // 10000 - 2000 - 300 - 2000
	assert.Equal(t, []uint16{100, 0, 0}, distribution)
	assert.Equal(t, "for the children", memo)
}

func TestValidatePoolRoomEmergencyPause(t *testing.T) {
	cfg := testConfig()
	cfg.EmergencyPause = true
	_, _, _, err := ValidatePoolRoom(cfg, validPoolParams())
	assert.ErrorIs(t, err, ErrEmergencyPause)
}

func TestValidatePoolRoomHostFeeBoundary(t *testing.T) {
	p := validPoolParams()
	p.HostFeeBps = 500 // exactly the max is allowed
	_, _, _, err := ValidatePoolRoom(testConfig(), p)
	require.NoError(t, err)

	p.HostFeeBps = 501
	_, _, _, err = ValidatePoolRoom(testConfig(), p)
	assert.ErrorIs(t, err, ErrHostFeeTooHigh)
}

func TestValidatePoolRoomPrizePoolBoundary(t *testing.T) {
	p := validPoolParams()
	p.PrizePoolBps = 3500
	p.HostFeeBps = 500
	// 10000 - 2000 - 500 - 3500 = 4000, exactly the charity minimum
	charityBps, _, _, err := ValidatePoolRoom(testConfig(), p)
	require.NoError(t, err)
	assert.Equal(t, uint16(4000), charityBps)

	p.PrizePoolBps = 3501
	_, _, _, err = ValidatePoolRoom(testConfig(), p)
	assert.ErrorIs(t, err, ErrPrizePoolTooHigh)
}

func TestValidatePoolRoomCharityBelowMinimum(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPrizePoolBps = 5000
	p := validPoolParams()
	p.PrizePoolBps = 4500
	// 10000 - 2000 - 300 - 4500 = 3200 < 4000
	_, _, _, err := ValidatePoolRoom(cfg, p)
	assert.ErrorIs(t, err, ErrCharityBelowMinimum)
}

func TestValidatePoolRoomPrizeDistribution(t *testing.T) {
	sixty, forty, thirty := uint16(60), uint16(40), uint16(30)

	p := validPoolParams()
	p.FirstPlacePct = 60
	p.SecondPlacePct = &forty
	_, distribution, _, err := ValidatePoolRoom(testConfig(), p)
	require.NoError(t, err)
	assert.Equal(t, []uint16{60, 40, 0}, distribution)

	p.SecondPlacePct = &thirty
	_, _, _, err = ValidatePoolRoom(testConfig(), p)
	assert.ErrorIs(t, err, ErrInvalidPrizeDistribution)

	p.FirstPlacePct = 60
	p.SecondPlacePct = &sixty
	_, _, _, err = ValidatePoolRoom(testConfig(), p)
	assert.ErrorIs(t, err, ErrInvalidPrizeDistribution)
}

func TestValidatePoolRoomBounds(t *testing.T) {
	p := validPoolParams()
	p.RoomID = ""
	_, _, _, err := ValidatePoolRoom(testConfig(), p)
	assert.ErrorIs(t, err, ErrInvalidRoomID)

	p = validPoolParams()
	p.RoomID = strings.Repeat("x", 33)
	_, _, _, err = ValidatePoolRoom(testConfig(), p)
	assert.ErrorIs(t, err, ErrInvalidRoomID)

	p = validPoolParams()
	p.EntryFee = 0
	_, _, _, err = ValidatePoolRoom(testConfig(), p)
	assert.ErrorIs(t, err, ErrInvalidEntryFee)

	p = validPoolParams()
	p.MaxPlayers = 0
	_, _, _, err = ValidatePoolRoom(testConfig(), p)
	assert.ErrorIs(t, err, ErrInvalidMaxPlayers)

	p = validPoolParams()
	p.MaxPlayers = 1001
	_, _, _, err = ValidatePoolRoom(testConfig(), p)
	assert.ErrorIs(t, err, ErrInvalidMaxPlayers)
}

func TestNormalizeMemo(t *testing.T) {
	memo, err := NormalizeMemo("donation ref 42")
	require.NoError(t, err)
	assert.Equal(t, "donation ref 42", memo)

	_, err = NormalizeMemo(strings.Repeat("a", 29))
	assert.ErrorIs(t, err, ErrInvalidMemo)

	// 28 bytes exactly passes
	memo, err = NormalizeMemo(strings.Repeat("a", 28))
	require.NoError(t, err)
	assert.Len(t, memo, 28)

	// NFC normalization: decomposed e + combining acute collapses to 2 bytes
	memo, err = NormalizeMemo("café")
	require.NoError(t, err)
	assert.Equal(t, "café", memo)
}

func TestValidateAssetRoom(t *testing.T) {
	cfg := testConfig()
	p := AssetRoomParams{
		RoomID:       "asset-night",
		EntryFee:     500_000,
		MaxPlayers:   50,
		HostFeeBps:   300,
		CharityMemo:  "memo",
		Prize1Mint:   "mint-a",
		Prize1Amount: 10,
	}

	charityBps, memo, prizes, err := ValidateAssetRoom(cfg, p)
	require.NoError(t, err)
	// No prize pool share in asset mode: 10000 - 2000 - 300
	assert.Equal(t, uint16(7700), charityBps)
	assert.Equal(t, "memo", memo)
	require.NotNil(t, prizes[0])
	assert.Equal(t, "mint-a", prizes[0].Mint)
	assert.False(t, prizes[0].Deposited)
	assert.Nil(t, prizes[1])
	assert.Nil(t, prizes[2])

	p.Prize1Amount = 0
	_, _, _, err = ValidateAssetRoom(cfg, p)
	assert.ErrorIs(t, err, ErrInvalidPrizeAmount)
}

func TestValidateAssetRoomOptionalPrizes(t *testing.T) {
	mintB := "mint-b"
	zero := uint64(0)
	five := uint64(5)

	p := AssetRoomParams{
		RoomID:       "asset-night",
		EntryFee:     500_000,
		MaxPlayers:   50,
		CharityMemo:  "memo",
		Prize1Mint:   "mint-a",
		Prize1Amount: 10,
		Prize2Mint:   &mintB,
		Prize2Amount: &five,
	}
	_, _, prizes, err := ValidateAssetRoom(testConfig(), p)
	require.NoError(t, err)
	require.NotNil(t, prizes[1])
	assert.Equal(t, uint64(5), prizes[1].Amount)

	p.Prize2Amount = &zero
	_, _, _, err = ValidateAssetRoom(testConfig(), p)
	assert.ErrorIs(t, err, ErrInvalidPrizeAmount)
}

func TestExpirationAt(t *testing.T) {
	// Duration is relative to creation; zero keeps the never-expires marker.
	at, err := ExpirationAt(1_700_000_000, 3600)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_700_003_600), at)

	at, err = ExpirationAt(1_700_000_000, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), at)

	_, err = ExpirationAt(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestCheckRegistryCapacity(t *testing.T) {
	assert.NoError(t, CheckRegistryCapacity(0))
	assert.NoError(t, CheckRegistryCapacity(models.MaxApprovedTokens-1))
	assert.ErrorIs(t, CheckRegistryCapacity(models.MaxApprovedTokens), ErrTokenRegistryFull)
	assert.ErrorIs(t, CheckRegistryCapacity(models.MaxApprovedTokens+1), ErrTokenRegistryFull)
}

func TestDeriveCharityBpsSaturates(t *testing.T) {
	assert.Equal(t, uint16(0), DeriveCharityBps(5000, 4000, 3000))
	assert.Equal(t, uint16(1000), DeriveCharityBps(5000, 2000, 2000))
}
