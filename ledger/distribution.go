package ledger

// Distribution is the computed end-of-room split. All division is floor
// division; dust left by truncation stays in the charity remainder, which is
// computed by checked subtraction rather than its own percentage.
type Distribution struct {
	PlatformFee   uint64
	HostFee       uint64
	PrizeAmount   uint64
	CharityAmount uint64 // remainder of entry fees + 100% of extras
}

// ComputeDistribution splits the room's entry fees between platform, host,
// prize pool and charity, then routes every extras unit to charity on top.
// Extras never touch the platform/host/prize shares.
func ComputeDistribution(totalEntryFees, totalExtrasFees uint64, platformFeeBps, hostFeeBps, prizePoolBps uint16) (Distribution, error) {
	platformFee, err := CalculateBps(totalEntryFees, platformFeeBps)
	if err != nil {
		return Distribution{}, err
	}
	hostFee, err := CalculateBps(totalEntryFees, hostFeeBps)
	if err != nil {
		return Distribution{}, err
	}
	prizeAmount, err := CalculateBps(totalEntryFees, prizePoolBps)
	if err != nil {
		return Distribution{}, err
	}

	charityFromEntry := totalEntryFees
	for _, cut := range []uint64{platformFee, hostFee, prizeAmount} {
		charityFromEntry, err = CheckedSub(charityFromEntry, cut)
		if err != nil {
			return Distribution{}, err
		}
	}
	charityAmount, err := CheckedAdd(charityFromEntry, totalExtrasFees)
	if err != nil {
		return Distribution{}, err
	}

	return Distribution{
		PlatformFee:   platformFee,
		HostFee:       hostFee,
		PrizeAmount:   prizeAmount,
		CharityAmount: charityAmount,
	}, nil
}

// RecoveryPlatformFeePct is the flat cut retained when an abandoned room is
// recovered.
const RecoveryPlatformFeePct = 10

// ComputeRecovery splits an abandoned room's collected funds: a flat 10%
// platform fee, the rest divided equally among players. Equal-split (not
// proportional to individual contributions) is the compatibility-mandated
// behavior. Zero players yields a zero refund.
func ComputeRecovery(totalCollected uint64, playerCount uint32) (platformFee, refundPerPlayer uint64, err error) {
	hiFee, err := CheckedMul(totalCollected, RecoveryPlatformFeePct)
	if err != nil {
		return 0, 0, err
	}
	platformFee = hiFee / 100
	remainder := totalCollected - platformFee // platformFee <= totalCollected by construction
	if playerCount == 0 {
		return platformFee, 0, nil
	}
	return platformFee, remainder / uint64(playerCount), nil
}
