package services

import (
	"testing"

	"fundraising-room-system/ledger"
	"fundraising-room-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewConfig() ledger.ConfigSnapshot {
	return ledger.ConfigSnapshot{
		PlatformFeeBps:  2000,
		MaxHostFeeBps:   500,
		MaxPrizePoolBps: 3500,
		MinCharityBps:   4000,
	}
}

func TestComputeFeeBreakdownPoolMode(t *testing.T) {
	breakdown, err := computeFeeBreakdown(previewConfig(), 1_000_000, 0, 1, 300, 2000, models.PrizeModePoolSplit)
	require.NoError(t, err)

	assert.Equal(t, uint64(1_000_000), breakdown.TotalPot)
	assert.Equal(t, uint64(200_000), breakdown.PlatformFee)
	assert.Equal(t, uint64(30_000), breakdown.HostFee)
	assert.Equal(t, uint64(200_000), breakdown.PrizeAmount)
	assert.Equal(t, uint64(570_000), breakdown.CharityAmount)
	assert.Equal(t, uint16(5700), breakdown.CharityBps)
}

func TestComputeFeeBreakdownScalesWithPlayers(t *testing.T) {
	breakdown, err := computeFeeBreakdown(previewConfig(), 1_000_000, 500_000, 10, 300, 2000, models.PrizeModePoolSplit)
	require.NoError(t, err)

	assert.Equal(t, uint64(15_000_000), breakdown.TotalPot)
	assert.Equal(t, uint64(2_000_000), breakdown.PlatformFee)
	// all extras route to charity on top of the entry-fee remainder
	assert.Equal(t, uint64(5_700_000+5_000_000), breakdown.CharityAmount)
}

func TestComputeFeeBreakdownAssetMode(t *testing.T) {
	breakdown, err := computeFeeBreakdown(previewConfig(), 1_000_000, 0, 1, 300, 2000, models.PrizeModeAssetBased)
	require.NoError(t, err)

	// Asset mode zeroes the pool share; it flows to charity instead.
	assert.Equal(t, uint64(0), breakdown.PrizeAmount)
	assert.Equal(t, uint16(0), breakdown.PrizePoolBps)
	assert.Equal(t, uint64(770_000), breakdown.CharityAmount)
	assert.Equal(t, uint16(7700), breakdown.CharityBps)
}

func TestComputeFeeBreakdownRejectsBadParams(t *testing.T) {
	_, err := computeFeeBreakdown(previewConfig(), 0, 0, 1, 300, 2000, models.PrizeModePoolSplit)
	assert.ErrorIs(t, err, ledger.ErrInvalidEntryFee)

	_, err = computeFeeBreakdown(previewConfig(), 1_000_000, 0, 1, 501, 2000, models.PrizeModePoolSplit)
	assert.ErrorIs(t, err, ledger.ErrHostFeeTooHigh)

	_, err = computeFeeBreakdown(previewConfig(), 1_000_000, 0, 1, 300, 3501, models.PrizeModePoolSplit)
	assert.ErrorIs(t, err, ledger.ErrPrizePoolTooHigh)
}
