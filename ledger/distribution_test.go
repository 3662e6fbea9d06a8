package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDistributionRoundTrip(t *testing.T) {
	// entry fee 1_000_000, host 3%, prizes 20%, platform 20%: the four shares
	// must sum back to the pot exactly.
	dist, err := ComputeDistribution(1_000_000, 0, 2000, 300, 2000)
	require.NoError(t, err)

	assert.Equal(t, uint64(200_000), dist.PlatformFee)
	assert.Equal(t, uint64(30_000), dist.HostFee)
	assert.Equal(t, uint64(200_000), dist.PrizeAmount)
	assert.Equal(t, uint64(570_000), dist.CharityAmount)
	assert.Equal(t, uint64(1_000_000),
		dist.PlatformFee+dist.HostFee+dist.PrizeAmount+dist.CharityAmount)
}

func TestComputeDistributionExtrasGoToCharity(t *testing.T) {
	dist, err := ComputeDistribution(1_000_000, 500_000, 2000, 300, 2000)
	require.NoError(t, err)

	// Extras never touch the platform/host/prize shares.
	assert.Equal(t, uint64(200_000), dist.PlatformFee)
	assert.Equal(t, uint64(30_000), dist.HostFee)
	assert.Equal(t, uint64(200_000), dist.PrizeAmount)
	assert.Equal(t, uint64(1_070_000), dist.CharityAmount)
}

func TestComputeDistributionDustStaysWithCharity(t *testing.T) {
	// 333 units: every bps cut floors, the lost fractions land in the charity
	// remainder rather than disappearing.
	dist, err := ComputeDistribution(333, 0, 2000, 300, 2000)
	require.NoError(t, err)
	assert.Equal(t, uint64(333),
		dist.PlatformFee+dist.HostFee+dist.PrizeAmount+dist.CharityAmount)
}

func TestComputeDistributionZeroPot(t *testing.T) {
	dist, err := ComputeDistribution(0, 0, 2000, 300, 2000)
	require.NoError(t, err)
	assert.Equal(t, Distribution{}, dist)
}

func TestComputeRecovery(t *testing.T) {
	fee, refund, err := ComputeRecovery(900, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(90), fee)
	assert.Equal(t, uint64(270), refund)
}

func TestComputeRecoveryZeroPlayers(t *testing.T) {
	fee, refund, err := ComputeRecovery(1000, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), fee)
	assert.Equal(t, uint64(0), refund)
}

func TestComputeRecoveryEqualSplitIgnoresContributions(t *testing.T) {
	// 1000 collected, 10% fee, 4 players: each gets 225 regardless of what
	// they individually paid.
	fee, refund, err := ComputeRecovery(1000, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), fee)
	assert.Equal(t, uint64(225), refund)
}
