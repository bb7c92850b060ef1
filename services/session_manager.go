package services

import (
	"context"
	"net/http"
	"sync"

	"storefront/models"
	"storefront/repository"
	"storefront/store"

	"go.uber.org/zap"
)

// CartSyncer reconciles a guest cart with the backend's server-side cart
// after login. Sync failures are non-fatal; the local cart stays usable.
type CartSyncer interface {
	SyncCart(ctx context.Context, token string, items []models.CartSyncItem) error
}

// SessionManager owns the per-session cart and auth state containers. It is
// created once at the application root and injected into controllers; the
// stores themselves hold no global state.
//
// It is also the session-lifecycle orchestrator: logout clears auth state
// first and then the cart, so no session-scoped cart survives its session.
type SessionManager struct {
	mu    sync.Mutex
	carts map[string]*store.CartStore
	auths map[string]*store.AuthStore

	cartRepo    *repository.CartRepository
	sessionRepo *repository.SessionRepository
	provider    AuthProvider
	syncer      CartSyncer
	logger      *zap.Logger
}

func NewSessionManager(
	cartRepo *repository.CartRepository,
	sessionRepo *repository.SessionRepository,
	provider AuthProvider,
	syncer CartSyncer,
	logger *zap.Logger,
) *SessionManager {
	return &SessionManager{
		carts:       make(map[string]*store.CartStore),
		auths:       make(map[string]*store.AuthStore),
		cartRepo:    cartRepo,
		sessionRepo: sessionRepo,
		provider:    provider,
		syncer:      syncer,
		logger:      logger,
	}
}

// Cart returns the session's cart store, hydrating it from the persisted
// snapshot on first access. A broken snapshot read starts an empty cart;
// cart state is not safety-critical.
func (m *SessionManager) Cart(ctx context.Context, sessionID string) *store.CartStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cart, ok := m.carts[sessionID]; ok {
		return cart
	}

	cart := store.NewCartStore(func(items []models.CartItem) error {
		return m.cartRepo.Save(context.Background(), sessionID, items)
	}, m.logger)

	items, err := m.cartRepo.Load(ctx, sessionID)
	if err != nil {
		m.logger.Warn("Failed to load cart snapshot", zap.String("session_id", sessionID), zap.Error(err))
	} else if len(items) > 0 {
		cart.Hydrate(items)
	}

	m.carts[sessionID] = cart
	return cart
}

// Auth returns the session's auth store, hydrating it on first access.
func (m *SessionManager) Auth(ctx context.Context, sessionID string) *store.AuthStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	if auth, ok := m.auths[sessionID]; ok {
		return auth
	}

	auth := store.NewAuthStore(func(snap models.SessionSnapshot) error {
		return m.sessionRepo.Save(context.Background(), sessionID, snap)
	}, m.logger)

	snap, err := m.sessionRepo.Load(ctx, sessionID)
	if err != nil {
		m.logger.Warn("Failed to load session snapshot", zap.String("session_id", sessionID), zap.Error(err))
	} else if snap.User != nil || snap.Token != "" {
		auth.Hydrate(snap)
	}

	m.auths[sessionID] = auth
	return auth
}

// Login authenticates the session. On success the auth store holds the user
// and access token, and the guest cart is synced to the backend cart
// best-effort. On failure the error message is recorded on the store and
// returned for the login form to display.
func (m *SessionManager) Login(ctx context.Context, sessionID, email, password string) (*models.SessionUser, *TokenPair, *ServiceError) {
	auth := m.Auth(ctx, sessionID)
	auth.SetLoading(true)
	defer auth.SetLoading(false)

	user, pair, err := m.provider.Login(ctx, email, password)
	if err != nil {
		auth.SetError(err.Error())
		return nil, nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: err.Error()}
	}

	auth.SetSession(user, pair.AccessToken)
	m.syncGuestCart(ctx, sessionID, pair.AccessToken)

	m.logger.Info("User logged in", zap.String("user_id", user.ID))
	return user, pair, nil
}

// Signup creates an account and starts the session, same contract as Login.
func (m *SessionManager) Signup(ctx context.Context, sessionID, name, email, password string) (*models.SessionUser, *TokenPair, *ServiceError) {
	auth := m.Auth(ctx, sessionID)
	auth.SetLoading(true)
	defer auth.SetLoading(false)

	user, pair, err := m.provider.Signup(ctx, name, email, password)
	if err != nil {
		auth.SetError(err.Error())
		status := http.StatusBadRequest
		if err.Error() == "email already exists" {
			status = http.StatusConflict
		}
		return nil, nil, &ServiceError{StatusCode: status, Message: err.Error()}
	}

	auth.SetSession(user, pair.AccessToken)
	m.syncGuestCart(ctx, sessionID, pair.AccessToken)

	m.logger.Info("User signed up", zap.String("user_id", user.ID))
	return user, pair, nil
}

// UpdateProfile merges partial profile fields into the authenticated user.
func (m *SessionManager) UpdateProfile(ctx context.Context, sessionID string, update models.ProfileUpdate) (*models.SessionUser, *ServiceError) {
	auth := m.Auth(ctx, sessionID)
	if !auth.IsAuthenticated() {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "not authenticated"}
	}

	auth.SetLoading(true)
	defer auth.SetLoading(false)

	user, err := m.provider.UpdateProfile(ctx, auth.User().ID, update)
	if err != nil {
		auth.SetError(err.Error())
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}

	auth.SetUser(user)
	return user, nil
}

// Logout tears down the session unconditionally: auth state first, then the
// cart. The ordering is deliberate; no residual session-scoped cart state
// may survive a logout, even though the cart stores no user id.
func (m *SessionManager) Logout(ctx context.Context, sessionID string) {
	auth := m.Auth(ctx, sessionID)
	cart := m.Cart(ctx, sessionID)

	auth.Clear()
	cart.Clear()

	m.logger.Info("Session logged out", zap.String("session_id", sessionID))
}

// syncGuestCart pushes the local cart to the backend cart-sync endpoint.
// Best-effort: a failed sync leaves the local cart intact.
func (m *SessionManager) syncGuestCart(ctx context.Context, sessionID, token string) {
	if m.syncer == nil {
		return
	}
	items := m.Cart(ctx, sessionID).Items()
	if len(items) == 0 {
		return
	}
	if err := m.syncer.SyncCart(ctx, token, models.SyncItems(items)); err != nil {
		m.logger.Warn("Guest cart sync failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}
