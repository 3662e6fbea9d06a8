package services

import (
	"strings"
	"testing"

	"fundraising-room-system/ledger"
	"fundraising-room-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveRoomID(t *testing.T) {
	assert.Equal(t, "spring-gala-2026", deriveRoomID("Spring Gala 2026"))
	assert.Equal(t, "cafe-night", deriveRoomID("Café Night"))

	// Long names are cut to the 32-char bound without a dangling hyphen.
	long := deriveRoomID("a charity event with a very long descriptive name")
	assert.LessOrEqual(t, len(long), ledger.MaxRoomIDLen)
	assert.False(t, strings.HasSuffix(long, "-"))

	// A word boundary landing exactly on the cut would otherwise leave one.
	boundary := deriveRoomID(strings.Repeat("abc ", 8) + "xyz")
	assert.Equal(t, "abc-abc-abc-abc-abc-abc-abc-abc", boundary)
	assert.NoError(t, ledger.ValidateRoomID(boundary))
}

func TestExpirationDurationYieldsJoinableRoom(t *testing.T) {
	// An hour-long duration must produce a room that is joinable now and
	// expired only after the hour passes.
	now := currentSlot()
	expiresAt, err := ledger.ExpirationAt(now, 3600)
	require.NoError(t, err)

	room := &models.Room{
		Host:           "host-wallet",
		Status:         models.StatusReady,
		MaxPlayers:     10,
		CreationSlot:   now,
		ExpirationSlot: expiresAt,
	}
	assert.NoError(t, ledger.CheckJoinable(room, false, now))
	assert.ErrorIs(t, ledger.CheckJoinable(room, false, now+3600), ledger.ErrRoomExpired)
}
