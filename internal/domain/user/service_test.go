package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/session"
	"github.com/your-org/seed-marketplace/internal/pkg/auth"
	"github.com/your-org/seed-marketplace/internal/pkg/logger"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 7
	}
	return args.Error(0)
}

func (m *mockRepository) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

type memoryDenylist struct {
	revoked map[string]time.Duration
	err     error
}

func (d *memoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[tokenID] = ttl
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[tokenID]
	return ok, nil
}

type authEvent struct {
	sessionID string
	identity  *session.Identity
}

type recordingListener struct {
	events []authEvent
}

func (l *recordingListener) AuthStateChanged(sessionID string, identity *session.Identity) {
	l.events = append(l.events, authEvent{sessionID: sessionID, identity: identity})
}

type fixture struct {
	svc      *Service
	repo     *mockRepository
	denylist *memoryDenylist
	listener *recordingListener
	tokens   *auth.JWTManager
}

func newFixture() *fixture {
	cfg := &config.Config{
		App:      config.AppConfig{Name: "seed-marketplace"},
		JWT:      config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: 15 * time.Minute},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
	f := &fixture{
		repo:     &mockRepository{},
		denylist: &memoryDenylist{revoked: map[string]time.Duration{}},
		listener: &recordingListener{},
		tokens:   auth.NewJWTManager(cfg),
	}
	f.svc = NewService(f.repo, f.tokens, f.denylist, f.listener, cfg, logger.Discard())
	return f
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestSignUp_CreatesUserAndSignsSessionIn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("FindByEmail", ctx, "Asha@Example.com").Return(nil, ErrUserNotFound)
	f.repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Email == "asha@example.com" && u.FullName == "Asha Rao" && u.Password != "seeds4ever"
	})).Return(nil)
	f.repo.On("UpdateLastLogin", ctx, uint(7), mock.Anything).Return(nil)

	resp, err := f.svc.SignUp(ctx, "sess-1", &SignUpRequest{Email: "Asha@Example.com", Password: "seeds4ever", FullName: " Asha Rao "})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	assert.Equal(t, uint(7), resp.User.UserID)

	require.Len(t, f.listener.events, 1)
	assert.Equal(t, "sess-1", f.listener.events[0].sessionID)
	assert.Equal(t, "Asha Rao", f.listener.events[0].identity.FullName)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.On("FindByEmail", ctx, "asha@example.com").Return(&User{ID: 1}, nil)

	_, err := f.svc.SignUp(ctx, "sess-1", &SignUpRequest{Email: "asha@example.com", Password: "seeds4ever", FullName: "Asha"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Empty(t, f.listener.events)
}

func TestSignUp_RejectsWeakPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, "sess-1", &SignUpRequest{Email: "asha@example.com", Password: "abc", FullName: "Asha"})
	require.ErrorIs(t, err, ErrWeakPassword)
	assert.Contains(t, err.Error(), "at least 6 characters")
	f.repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUp_InvalidRequest(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SignUp(context.Background(), "sess-1", &SignUpRequest{Email: "not-an-email", Password: "seeds4ever", FullName: "Asha"})
	require.Error(t, err)
	f.repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestSignIn(t *testing.T) {
	tests := []struct {
		name     string
		user     *User
		findErr  error
		password string
		wantErr  error
	}{
		{name: "valid credentials", user: &User{ID: 3, Email: "asha@example.com", FullName: "Asha"}, password: "seeds4ever"},
		{name: "wrong password", user: &User{ID: 3, Email: "asha@example.com"}, password: "wrong1", wantErr: ErrInvalidCredentials},
		{name: "unknown email", findErr: ErrUserNotFound, password: "seeds4ever", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			if tt.user != nil {
				tt.user.Password = hashed(t, "seeds4ever")
			}
			f.repo.On("FindByEmail", ctx, "asha@example.com").Return(tt.user, tt.findErr)
			f.repo.On("UpdateLastLogin", ctx, mock.Anything, mock.Anything).Return(nil)

			resp, err := f.svc.SignIn(ctx, "sess-1", &SignInRequest{Email: "asha@example.com", Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.listener.events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Asha", resp.User.FullName)
			require.Len(t, f.listener.events, 1)
			assert.NotNil(t, f.listener.events[0].identity)
		})
	}
}

func TestSignIn_LastLoginFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.On("FindByEmail", ctx, "asha@example.com").Return(&User{ID: 3, Password: hashed(t, "seeds4ever")}, nil)
	f.repo.On("UpdateLastLogin", ctx, uint(3), mock.Anything).Return(errors.New("db down"))

	_, err := f.svc.SignIn(ctx, "sess-1", &SignInRequest{Email: "asha@example.com", Password: "seeds4ever"})
	assert.NoError(t, err)
}

func TestSignOut_RevokesTokenAndNotifies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	token, claims, err := f.tokens.GenerateAccessToken(3, "asha@example.com", "Asha")
	require.NoError(t, err)

	require.NoError(t, f.svc.SignOut(ctx, "sess-1", token))
	assert.Contains(t, f.denylist.revoked, claims.ID)

	require.Len(t, f.listener.events, 1)
	assert.Nil(t, f.listener.events[0].identity)

	_, err = f.svc.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestSignOut_WithoutTokenStillSignsOut(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.svc.SignOut(context.Background(), "sess-1", ""))
	require.Len(t, f.listener.events, 1)
	assert.Nil(t, f.listener.events[0].identity)
}

func TestSignOut_DenylistFailureStillSignsOut(t *testing.T) {
	f := newFixture()
	f.denylist.err = errors.New("redis unavailable")

	token, _, err := f.tokens.GenerateAccessToken(3, "asha@example.com", "Asha")
	require.NoError(t, err)

	err = f.svc.SignOut(context.Background(), "sess-1", token)
	require.Error(t, err)
	require.Len(t, f.listener.events, 1)
	assert.Nil(t, f.listener.events[0].identity)
}

func TestResolve(t *testing.T) {
	f := newFixture()

	token, _, err := f.tokens.GenerateAccessToken(3, "asha@example.com", "Asha")
	require.NoError(t, err)

	identity, err := f.svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &session.Identity{UserID: 3, Email: "asha@example.com", FullName: "Asha"}, identity)

	_, err = f.svc.Resolve(context.Background(), "garbage")
	assert.Error(t, err)
}
