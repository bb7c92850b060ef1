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
	"golang.org/x/crypto/bcrypt"
)

// --- In-memory user repository ---

type memUserRepo struct {
	users  map[string]*models.User // keyed by email
	tokens map[string]*models.RefreshToken
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) CreateRefreshToken(_ context.Context, rt *models.RefreshToken) error {
	r.tokens[rt.TokenID] = rt
	return nil
}

func (r *memUserRepo) GetRefreshTokenByTokenID(_ context.Context, tokenID string) (*models.RefreshToken, error) {
	rt, ok := r.tokens[tokenID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return rt, nil
}

func (r *memUserRepo) RevokeRefreshTokenByTokenID(_ context.Context, tokenID string) error {
	if rt, ok := r.tokens[tokenID]; ok {
		rt.Revoked = true
	}
	return nil
}

// --- Helpers ---

func newProvider(repo *memUserRepo) *services.LocalAuthProvider {
	logger, _ := zap.NewDevelopment()
	return services.NewLocalAuthProvider(repo, services.NewTokenService("test-secret"), logger)
}

func seedUser(repo *memUserRepo, email, password string) *models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Name:     "Alice",
		Password: string(hashed),
		Role:     "user",
	}
	repo.users[email] = user
	return user
}

// --- Tests ---

func TestLocalLogin_Success(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(repo, "alice@example.com", "secret")
	provider := newProvider(repo)

	user, pair, err := provider.Login(context.Background(), "alice@example.com", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// a refresh token record is stored for rotation
	assert.Len(t, repo.tokens, 1)
}

func TestLocalLogin_WrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(repo, "alice@example.com", "secret")
	provider := newProvider(repo)

	_, _, err := provider.Login(context.Background(), "alice@example.com", "nope")
	assert.EqualError(t, err, "invalid email or password")
}

func TestLocalLogin_UnknownEmailSameMessage(t *testing.T) {
	provider := newProvider(newMemUserRepo())

	// unknown account and bad password are indistinguishable to the caller
	_, _, err := provider.Login(context.Background(), "nobody@example.com", "secret")
	assert.EqualError(t, err, "invalid email or password")
}

func TestLocalSignup_HashesPassword(t *testing.T) {
	repo := newMemUserRepo()
	provider := newProvider(repo)

	user, pair, err := provider.Signup(context.Background(), "Bob", "bob@example.com", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "Bob", user.Name)
	assert.NotEmpty(t, pair.AccessToken)

	stored := repo.users["bob@example.com"]
	assert.NotEqual(t, "secret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")))
	assert.Equal(t, "user", stored.Role)
}

func TestLocalSignup_DuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(repo, "alice@example.com", "secret")
	provider := newProvider(repo)

	_, _, err := provider.Signup(context.Background(), "Alice", "alice@example.com", "other")
	assert.EqualError(t, err, "email already exists")
}

func TestLocalUpdateProfile_MergesNonEmptyFields(t *testing.T) {
	repo := newMemUserRepo()
	seeded := seedUser(repo, "alice@example.com", "secret")
	seeded.Address = "1 Main St"
	provider := newProvider(repo)

	user, err := provider.UpdateProfile(context.Background(), seeded.ID.String(), models.ProfileUpdate{Phone: "555"})
	assert.NoError(t, err)
	assert.Equal(t, "555", user.Phone)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "1 Main St", user.Address)
}

func TestLocalRefresh_RotatesToken(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(repo, "alice@example.com", "secret")
	provider := newProvider(repo)
	ctx := context.Background()

	_, pair, err := provider.Login(ctx, "alice@example.com", "secret")
	assert.NoError(t, err)

	fresh, err := provider.Refresh(ctx, pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// the used refresh token is revoked and cannot be replayed
	_, err = provider.Refresh(ctx, pair.RefreshToken)
	assert.EqualError(t, err, "refresh token revoked or expired")
}

func TestLocalRefresh_RejectsAccessToken(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(repo, "alice@example.com", "secret")
	provider := newProvider(repo)
	ctx := context.Background()

	_, pair, err := provider.Login(ctx, "alice@example.com", "secret")
	assert.NoError(t, err)

	_, err = provider.Refresh(ctx, pair.AccessToken)
	assert.EqualError(t, err, "invalid refresh token")
}
