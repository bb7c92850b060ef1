package repository_test

import (
	"context"
	"testing"
	"time"

	"storefront/models"
	"storefront/repository"

	"github.com/stretchr/testify/assert"
)

func TestCartRepository_RoundTrip(t *testing.T) {
	repo := repository.NewCartRepository(repository.NewMemoryStateStore(), time.Hour)
	ctx := context.Background()

	items := []models.CartItem{
		{ID: models.VariantKey("p1", "black", "M"), ProductID: "p1", Name: "Shirt", Price: 10, Color: "black", Size: "M", Quantity: 3},
		{ID: models.VariantKey("p2", "", ""), ProductID: "p2", Name: "Mug", Price: 5, Quantity: 1},
	}

	assert.NoError(t, repo.Save(ctx, "sess-1", items))

	loaded, err := repo.Load(ctx, "sess-1")
	assert.NoError(t, err)
	assert.Equal(t, len(items), len(loaded))
	for i := range items {
		assert.Equal(t, items[i].ID, loaded[i].ID)
		assert.Equal(t, items[i].Quantity, loaded[i].Quantity)
	}
}

func TestCartRepository_MissingSnapshotIsNil(t *testing.T) {
	repo := repository.NewCartRepository(repository.NewMemoryStateStore(), time.Hour)

	items, err := repo.Load(context.Background(), "unknown")
	assert.NoError(t, err)
	assert.Nil(t, items)
}

func TestCartRepository_SessionsAreIndependent(t *testing.T) {
	repo := repository.NewCartRepository(repository.NewMemoryStateStore(), time.Hour)
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, "a", []models.CartItem{{ID: "p1||", ProductID: "p1", Quantity: 1}}))
	assert.NoError(t, repo.Delete(ctx, "b"))

	loaded, err := repo.Load(ctx, "a")
	assert.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	repo := repository.NewSessionRepository(repository.NewMemoryStateStore(), time.Hour)
	ctx := context.Background()

	snap := models.SessionSnapshot{
		User:            &models.SessionUser{ID: "u1", Email: "a@b.c", Name: "A"},
		Token:           "tok",
		IsAuthenticated: true,
	}
	assert.NoError(t, repo.Save(ctx, "sess-1", snap))

	loaded, err := repo.Load(ctx, "sess-1")
	assert.NoError(t, err)
	assert.True(t, loaded.IsAuthenticated)
	assert.Equal(t, "tok", loaded.Token)
	assert.Equal(t, "a@b.c", loaded.User.Email)

	empty, err := repo.Load(ctx, "unknown")
	assert.NoError(t, err)
	assert.Nil(t, empty.User)
	assert.False(t, empty.IsAuthenticated)
}
