package ledger

import (
	"fundraising-room-system/models"
)

// CheckJoinable verifies every join precondition against current room state.
// Ready and Active rooms both accept players; asset rooms are only Ready once
// all declared prizes are escrowed.
func CheckJoinable(room *models.Room, paused bool, nowSlot uint64) error {
	if paused {
		return ErrEmergencyPause
	}
	if room.IsExpired(nowSlot) {
		return ErrRoomExpired
	}
	if room.Ended {
		return ErrRoomAlreadyEnded
	}
	if room.Status == models.StatusAwaitingFunding || room.Status == models.StatusPartiallyFunded {
		return ErrPrizesNotFullyFunded
	}
	if room.Status != models.StatusReady && room.Status != models.StatusActive {
		return ErrRoomNotReady
	}
	if room.PlayerCount >= room.MaxPlayers {
		return ErrMaxPlayersReached
	}
	return nil
}

// CheckDeclareWinners verifies the declare-once commitment: host-only, room
// Active, no slot previously set, 1-3 pairwise-distinct winners, host
// excluded.
func CheckDeclareWinners(room *models.Room, caller string, winners []string) error {
	if caller != room.Host {
		return ErrUnauthorized
	}
	if room.Status != models.StatusActive {
		return ErrInvalidRoomStatus
	}
	if room.Ended {
		return ErrRoomAlreadyEnded
	}
	if room.HasDeclaredWinners() {
		return ErrWinnersAlreadyDeclared
	}
	return validateWinnerList(winners, room.Host)
}

// CheckEndable verifies end_room may start: not ended, Active, and host-only
// unless the room has expired (anyone may close an expired room).
func CheckEndable(room *models.Room, caller string, nowSlot uint64) error {
	if room.Ended {
		return ErrRoomAlreadyEnded
	}
	if room.Status != models.StatusActive {
		return ErrInvalidRoomStatus
	}
	if !room.IsExpired(nowSlot) && caller != room.Host {
		return ErrUnauthorized
	}
	return nil
}

// ResolveWinners picks the effective winners list for distribution: the
// declared array when any slot is set, otherwise the validated fallback
// parameter. Runs exactly once at the start of end_room.
func ResolveWinners(room *models.Room, fallback []string) ([]string, error) {
	if room.HasDeclaredWinners() {
		return room.DeclaredWinners(), nil
	}
	if err := validateWinnerList(fallback, room.Host); err != nil {
		return nil, err
	}
	return fallback, nil
}

// CheckDepositPrize verifies an asset-mode prize deposit and returns the
// targeted slot.
func CheckDepositPrize(room *models.Room, caller string, prizeIndex int) (*models.PrizeAsset, error) {
	if room.PrizeMode != models.PrizeModeAssetBased {
		return nil, ErrInvalidRoomStatus
	}
	if caller != room.Host {
		return nil, ErrUnauthorized
	}
	if prizeIndex < 0 || prizeIndex >= models.MaxWinnerSlots {
		return nil, ErrInvalidWinners
	}
	prize := room.PrizeAssets[prizeIndex]
	if prize == nil {
		return nil, ErrInvalidWinners
	}
	if prize.Deposited {
		return nil, ErrPrizeAlreadyDeposited
	}
	return prize, nil
}

// CheckRecoverable verifies the admin abandonment path may run.
func CheckRecoverable(room *models.Room, caller, admin string) error {
	if caller != admin {
		return ErrUnauthorized
	}
	if room.Ended {
		return ErrRoomAlreadyEnded
	}
	if room.TotalCollected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// VerifyPayoutAccount enforces the three mandatory destination checks before
// any transfer: the account exists, holds the room's payment asset, and is
// owned by the expected recipient.
func VerifyPayoutAccount(account *models.TokenAccount, expectedMint, expectedOwner string) error {
	if account == nil {
		return ErrAccountNotFound
	}
	if account.Mint != expectedMint {
		return ErrInvalidTokenMint
	}
	if account.Owner != expectedOwner {
		return ErrInvalidTokenOwner
	}
	return nil
}

func validateWinnerList(winners []string, host string) error {
	if len(winners) == 0 || len(winners) > models.MaxWinnerSlots {
		return ErrInvalidWinners
	}
	for i := 0; i < len(winners); i++ {
		for j := i + 1; j < len(winners); j++ {
			if winners[i] == winners[j] {
				return ErrInvalidWinners
			}
		}
	}
	for _, w := range winners {
		if w == host {
			return ErrHostCannotBeWinner
		}
	}
	return nil
}
