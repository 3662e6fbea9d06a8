package ledger

import (
	"testing"

	"fundraising-room-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeRoom() *models.Room {
	return &models.Room{
		Address:     "room-addr",
		RoomID:      "spring-gala",
		Host:        "host-wallet",
		Status:      models.StatusActive,
		PlayerCount: 2,
		MaxPlayers:  10,
	}
}

func TestCheckJoinable(t *testing.T) {
	t.Run("ready room accepts players", func(t *testing.T) {
		room := activeRoom()
		room.Status = models.StatusReady
		room.PlayerCount = 0
		assert.NoError(t, CheckJoinable(room, false, 100))
	})

	t.Run("active room accepts players", func(t *testing.T) {
		assert.NoError(t, CheckJoinable(activeRoom(), false, 100))
	})

	t.Run("pause blocks join", func(t *testing.T) {
		assert.ErrorIs(t, CheckJoinable(activeRoom(), true, 100), ErrEmergencyPause)
	})

	t.Run("expired room blocks join", func(t *testing.T) {
		room := activeRoom()
		room.ExpirationSlot = 50
		assert.ErrorIs(t, CheckJoinable(room, false, 100), ErrRoomExpired)
	})

	t.Run("zero expiration never expires", func(t *testing.T) {
		room := activeRoom()
		room.ExpirationSlot = 0
		assert.NoError(t, CheckJoinable(room, false, 1<<40))
	})

	t.Run("unfunded asset room blocks join", func(t *testing.T) {
		room := activeRoom()
		room.Status = models.StatusAwaitingFunding
		assert.ErrorIs(t, CheckJoinable(room, false, 100), ErrPrizesNotFullyFunded)

		room.Status = models.StatusPartiallyFunded
		assert.ErrorIs(t, CheckJoinable(room, false, 100), ErrPrizesNotFullyFunded)
	})

	t.Run("full room blocks join", func(t *testing.T) {
		room := activeRoom()
		room.PlayerCount = 10
		assert.ErrorIs(t, CheckJoinable(room, false, 100), ErrMaxPlayersReached)
	})

	t.Run("ended room surfaces its own error", func(t *testing.T) {
		room := activeRoom()
		room.Ended = true
		room.Status = models.StatusEnded
		assert.ErrorIs(t, CheckJoinable(room, false, 100), ErrRoomAlreadyEnded)
	})
}

func TestCheckDeclareWinners(t *testing.T) {
	winners := []string{"alice", "bob"}

	t.Run("host declares once", func(t *testing.T) {
		assert.NoError(t, CheckDeclareWinners(activeRoom(), "host-wallet", winners))
	})

	t.Run("non-host rejected", func(t *testing.T) {
		assert.ErrorIs(t, CheckDeclareWinners(activeRoom(), "alice", winners), ErrUnauthorized)
	})

	t.Run("second declaration rejected", func(t *testing.T) {
		room := activeRoom()
		alice := "alice"
		room.Winners[0] = &alice
		assert.ErrorIs(t, CheckDeclareWinners(room, "host-wallet", winners), ErrWinnersAlreadyDeclared)
	})

	t.Run("host cannot win", func(t *testing.T) {
		assert.ErrorIs(t,
			CheckDeclareWinners(activeRoom(), "host-wallet", []string{"alice", "host-wallet"}),
			ErrHostCannotBeWinner)
	})

	t.Run("duplicate winners rejected", func(t *testing.T) {
		assert.ErrorIs(t,
			CheckDeclareWinners(activeRoom(), "host-wallet", []string{"alice", "alice"}),
			ErrInvalidWinners)
	})

	t.Run("empty and oversized lists rejected", func(t *testing.T) {
		assert.ErrorIs(t, CheckDeclareWinners(activeRoom(), "host-wallet", nil), ErrInvalidWinners)
		assert.ErrorIs(t,
			CheckDeclareWinners(activeRoom(), "host-wallet", []string{"a", "b", "c", "d"}),
			ErrInvalidWinners)
	})

	t.Run("requires active status", func(t *testing.T) {
		room := activeRoom()
		room.Status = models.StatusReady
		assert.ErrorIs(t, CheckDeclareWinners(room, "host-wallet", winners), ErrInvalidRoomStatus)
	})
}

func TestCheckEndable(t *testing.T) {
	t.Run("host ends active room", func(t *testing.T) {
		assert.NoError(t, CheckEndable(activeRoom(), "host-wallet", 100))
	})

	t.Run("non-host rejected before expiry", func(t *testing.T) {
		assert.ErrorIs(t, CheckEndable(activeRoom(), "alice", 100), ErrUnauthorized)
	})

	t.Run("anyone ends expired room", func(t *testing.T) {
		room := activeRoom()
		room.ExpirationSlot = 50
		assert.NoError(t, CheckEndable(room, "alice", 100))
	})

	t.Run("ended room cannot end again", func(t *testing.T) {
		room := activeRoom()
		room.Ended = true
		assert.ErrorIs(t, CheckEndable(room, "host-wallet", 100), ErrRoomAlreadyEnded)
	})

	t.Run("non-active room cannot end", func(t *testing.T) {
		room := activeRoom()
		room.Status = models.StatusReady
		assert.ErrorIs(t, CheckEndable(room, "host-wallet", 100), ErrInvalidRoomStatus)
	})
}

func TestResolveWinners(t *testing.T) {
	t.Run("declared winners take precedence", func(t *testing.T) {
		room := activeRoom()
		alice, bob := "alice", "bob"
		room.Winners[0] = &alice
		room.Winners[1] = &bob

		winners, err := ResolveWinners(room, []string{"carol"})
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, winners)
	})

	t.Run("fallback used when nothing declared", func(t *testing.T) {
		winners, err := ResolveWinners(activeRoom(), []string{"carol"})
		require.NoError(t, err)
		assert.Equal(t, []string{"carol"}, winners)
	})

	t.Run("fallback is validated", func(t *testing.T) {
		_, err := ResolveWinners(activeRoom(), []string{"host-wallet"})
		assert.ErrorIs(t, err, ErrHostCannotBeWinner)

		_, err = ResolveWinners(activeRoom(), nil)
		assert.ErrorIs(t, err, ErrInvalidWinners)
	})
}

func TestCheckDepositPrize(t *testing.T) {
	assetRoom := func() *models.Room {
		room := activeRoom()
		room.PrizeMode = models.PrizeModeAssetBased
		room.Status = models.StatusAwaitingFunding
		room.PrizeAssets[0] = &models.PrizeAsset{Mint: "mint-a", Amount: 10}
		return room
	}

	t.Run("host deposits declared prize", func(t *testing.T) {
		prize, err := CheckDepositPrize(assetRoom(), "host-wallet", 0)
		require.NoError(t, err)
		assert.Equal(t, "mint-a", prize.Mint)
	})

	t.Run("non-host rejected", func(t *testing.T) {
		_, err := CheckDepositPrize(assetRoom(), "alice", 0)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("pool room rejected", func(t *testing.T) {
		room := assetRoom()
		room.PrizeMode = models.PrizeModePoolSplit
		_, err := CheckDepositPrize(room, "host-wallet", 0)
		assert.ErrorIs(t, err, ErrInvalidRoomStatus)
	})

	t.Run("undeclared slot rejected", func(t *testing.T) {
		_, err := CheckDepositPrize(assetRoom(), "host-wallet", 1)
		assert.ErrorIs(t, err, ErrInvalidWinners)
	})

	t.Run("double deposit rejected", func(t *testing.T) {
		room := assetRoom()
		room.PrizeAssets[0].Deposited = true
		_, err := CheckDepositPrize(room, "host-wallet", 0)
		assert.ErrorIs(t, err, ErrPrizeAlreadyDeposited)
	})
}

func TestCheckRecoverable(t *testing.T) {
	room := activeRoom()
	room.TotalCollected = 1000

	assert.NoError(t, CheckRecoverable(room, "admin-wallet", "admin-wallet"))
	assert.ErrorIs(t, CheckRecoverable(room, "host-wallet", "admin-wallet"), ErrUnauthorized)

	empty := activeRoom()
	assert.ErrorIs(t, CheckRecoverable(empty, "admin-wallet", "admin-wallet"), ErrInsufficientBalance)

	ended := activeRoom()
	ended.TotalCollected = 1000
	ended.Ended = true
	assert.ErrorIs(t, CheckRecoverable(ended, "admin-wallet", "admin-wallet"), ErrRoomAlreadyEnded)
}

func TestVerifyPayoutAccount(t *testing.T) {
	account := &models.TokenAccount{Address: "acc", Owner: "alice", Mint: "mint-a"}

	assert.NoError(t, VerifyPayoutAccount(account, "mint-a", "alice"))
	assert.ErrorIs(t, VerifyPayoutAccount(nil, "mint-a", "alice"), ErrAccountNotFound)
	assert.ErrorIs(t, VerifyPayoutAccount(account, "mint-b", "alice"), ErrInvalidTokenMint)
	assert.ErrorIs(t, VerifyPayoutAccount(account, "mint-a", "bob"), ErrInvalidTokenOwner)
}
