package services_test

import (
	"context"
	"errors"
	"testing"

	"storefront/models"
	"storefront/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// --- Mock wishlist repository ---

type mockWishlistRepo struct {
	items  map[string]models.WishlistItem // keyed by product id
	addErr error
}

func newMockWishlistRepo() *mockWishlistRepo {
	return &mockWishlistRepo{items: make(map[string]models.WishlistItem)}
}

func (m *mockWishlistRepo) Add(_ context.Context, item *models.WishlistItem) error {
	if m.addErr != nil {
		return m.addErr
	}
	if _, ok := m.items[item.ProductID]; ok {
		return nil
	}
	m.items[item.ProductID] = *item
	return nil
}

func (m *mockWishlistRepo) Remove(_ context.Context, _ uuid.UUID, productID string) error {
	delete(m.items, productID)
	return nil
}

func (m *mockWishlistRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]models.WishlistItem, error) {
	var out []models.WishlistItem
	for _, item := range m.items {
		out = append(out, item)
	}
	return out, nil
}

func newWishlist(repo *mockWishlistRepo) services.WishlistService {
	logger, _ := zap.NewDevelopment()
	return services.NewWishlistService(repo, logger)
}

// --- Tests ---

func TestWishlistAdd_IsIdempotent(t *testing.T) {
	repo := newMockWishlistRepo()
	svc := newWishlist(repo)
	ctx := context.Background()
	userID := uuid.NewString()
	req := &models.AddWishlistRequest{ProductID: "p1", Name: "Shirt", Price: 10}

	_, svcErr := svc.Add(ctx, userID, req)
	assert.Nil(t, svcErr)
	_, svcErr = svc.Add(ctx, userID, req)
	assert.Nil(t, svcErr)

	assert.Len(t, repo.items, 1)
}

func TestWishlistAdd_RejectsBadUserID(t *testing.T) {
	svc := newWishlist(newMockWishlistRepo())

	_, svcErr := svc.Add(context.Background(), "not-a-uuid", &models.AddWishlistRequest{ProductID: "p1"})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestWishlistAdd_RepositoryFailure(t *testing.T) {
	repo := newMockWishlistRepo()
	repo.addErr = errors.New("db down")
	svc := newWishlist(repo)

	_, svcErr := svc.Add(context.Background(), uuid.NewString(), &models.AddWishlistRequest{ProductID: "p1"})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)
}

func TestWishlistRemove_ThenListEmptySlice(t *testing.T) {
	repo := newMockWishlistRepo()
	svc := newWishlist(repo)
	ctx := context.Background()
	userID := uuid.NewString()

	_, svcErr := svc.Add(ctx, userID, &models.AddWishlistRequest{ProductID: "p1"})
	assert.Nil(t, svcErr)
	assert.Nil(t, svc.Remove(ctx, userID, "p1"))

	items, listErr := svc.List(ctx, userID)
	assert.Nil(t, listErr)
	// an empty wishlist is an empty slice, never nil
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
