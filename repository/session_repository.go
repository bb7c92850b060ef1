package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/models"
)

// SessionRepository persists auth snapshots (user + token + derived flag)
// under a namespace independent from the cart entry. The two writes are
// unordered with respect to each other.
type SessionRepository struct {
	store StateStore
	ttl   time.Duration
}

func NewSessionRepository(store StateStore, ttl time.Duration) *SessionRepository {
	return &SessionRepository{store: store, ttl: ttl}
}

func (r *SessionRepository) key(sessionID string) string {
	return fmt.Sprintf("storefront:session:%s", sessionID)
}

// Load returns the persisted session snapshot; an empty snapshot when none
// exists.
func (r *SessionRepository) Load(ctx context.Context, sessionID string) (models.SessionSnapshot, error) {
	data, err := r.store.Get(ctx, r.key(sessionID))
	if err == ErrKeyNotFound {
		return models.SessionSnapshot{}, nil
	}
	if err != nil {
		return models.SessionSnapshot{}, err
	}

	var snap models.SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.SessionSnapshot{}, err
	}
	return snap, nil
}

func (r *SessionRepository) Save(ctx context.Context, sessionID string, snap models.SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key(sessionID), data, r.ttl)
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, r.key(sessionID))
}
