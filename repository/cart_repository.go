package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/models"
)

// CartRepository persists full cart snapshots under a fixed per-session
// namespace. Every store mutation writes the complete sequence; there is no
// batching or debouncing.
type CartRepository struct {
	store StateStore
	ttl   time.Duration
}

func NewCartRepository(store StateStore, ttl time.Duration) *CartRepository {
	return &CartRepository{store: store, ttl: ttl}
}

func (r *CartRepository) key(sessionID string) string {
	return fmt.Sprintf("storefront:cart:%s", sessionID)
}

// Load returns the persisted cart items, or (nil, nil) when no snapshot
// exists.
func (r *CartRepository) Load(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	data, err := r.store.Get(ctx, r.key(sessionID))
	if err == ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return cart.Items, nil
}

// Save writes the full cart sequence for the session.
func (r *CartRepository) Save(ctx context.Context, sessionID string, items []models.CartItem) error {
	cart := models.Cart{
		SessionID: sessionID,
		Items:     items,
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key(sessionID), data, r.ttl)
}

func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, r.key(sessionID))
}
