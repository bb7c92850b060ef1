package store_test

import (
	"testing"

	"storefront/models"
	"storefront/store"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newAuth(persist store.AuthPersistFunc) *store.AuthStore {
	logger, _ := zap.NewDevelopment()
	return store.NewAuthStore(persist, logger)
}

func alice() *models.SessionUser {
	return &models.SessionUser{ID: "u1", Email: "alice@example.com", Name: "Alice"}
}

func TestIsAuthenticated_RequiresUserAndToken(t *testing.T) {
	auth := newAuth(nil)
	assert.False(t, auth.IsAuthenticated())

	auth.SetSession(alice(), "")
	assert.False(t, auth.IsAuthenticated())

	auth.SetSession(alice(), "tok")
	assert.True(t, auth.IsAuthenticated())
	assert.NotNil(t, auth.User())
}

func TestClear_TearsDownSession(t *testing.T) {
	auth := newAuth(nil)
	auth.SetSession(alice(), "tok")

	auth.Clear()

	assert.False(t, auth.IsAuthenticated())
	assert.Nil(t, auth.User())
	assert.Empty(t, auth.Token())
}

func TestSetSession_ClearsPreviousError(t *testing.T) {
	auth := newAuth(nil)
	auth.SetError("invalid email or password")
	assert.Equal(t, "invalid email or password", auth.LastError())

	auth.SetSession(alice(), "tok")
	assert.Empty(t, auth.LastError())
}

func TestSnapshot_PersistedOnMutation(t *testing.T) {
	var snaps []models.SessionSnapshot
	auth := newAuth(func(snap models.SessionSnapshot) error {
		snaps = append(snaps, snap)
		return nil
	})

	auth.SetSession(alice(), "tok")
	auth.Clear()

	assert.Len(t, snaps, 2)
	assert.True(t, snaps[0].IsAuthenticated)
	assert.Equal(t, "tok", snaps[0].Token)
	assert.False(t, snaps[1].IsAuthenticated)
	assert.Nil(t, snaps[1].User)
}

func TestHydrate_RestoresSnapshot(t *testing.T) {
	auth := newAuth(nil)
	auth.Hydrate(models.SessionSnapshot{User: alice(), Token: "tok"})

	assert.True(t, auth.IsAuthenticated())
	assert.Equal(t, "alice@example.com", auth.User().Email)
}

func TestLoading_FlagTogglesOnly(t *testing.T) {
	writes := 0
	auth := newAuth(func(models.SessionSnapshot) error {
		writes++
		return nil
	})

	auth.SetLoading(true)
	assert.True(t, auth.Loading())
	auth.SetLoading(false)
	assert.False(t, auth.Loading())

	// the loading sub-state is never persisted
	assert.Equal(t, 0, writes)
}
