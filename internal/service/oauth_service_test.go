package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quantumcloud/quantumcloud-backend/internal/config"
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	jwtPkg "github.com/quantumcloud/quantumcloud-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	user    *models.User
	getErr  error
	created *models.User
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	return f.user, f.getErr
}

func (f *fakeUserStore) Create(user *models.User) error {
	user.ID = 11
	f.created = user
	return nil
}

func newTestOAuthService() *OAuthService {
	return newTestOAuthServiceWithStore(nil)
}

func newTestOAuthServiceWithStore(store OAuthUserStore) *OAuthService {
	cfg := &config.Config{
		FrontendURL: "http://localhost:5173",
	}
	cfg.OAuth.Google.ClientID = "google-client"
	cfg.OAuth.Google.ClientSecret = "google-secret"
	cfg.OAuth.GitHub.ClientID = "github-client"
	cfg.OAuth.GitHub.ClientSecret = "github-secret"
	cfg.OAuth.RedirectBaseURL = "http://localhost:8080"

	tokens := jwtPkg.NewTokenManager("test-secret", "quantumcloud")
	return NewOAuthService(cfg, store, tokens, zap.NewNop())
}

func TestAuthURLKnownProviders(t *testing.T) {
	svc := newTestOAuthService()

	googleURL, err := svc.AuthURL("google")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(googleURL, "https://accounts.google.com/"))
	assert.Contains(t, googleURL, "state=")
	assert.Contains(t, googleURL, "client_id=google-client")

	githubURL, err := svc.AuthURL("github")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(githubURL, "https://github.com/login/oauth/authorize"))
}

func TestAuthURLUnknownProvider(t *testing.T) {
	svc := newTestOAuthService()

	_, err := svc.AuthURL("gitlab")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestStateIsSingleUse(t *testing.T) {
	svc := newTestOAuthService()

	url, err := svc.AuthURL("google")
	require.NoError(t, err)

	state := url[strings.Index(url, "state=")+len("state="):]
	if i := strings.Index(state, "&"); i >= 0 {
		state = state[:i]
	}

	assert.True(t, svc.consumeState(state))
	assert.False(t, svc.consumeState(state))
}

func TestStateExpires(t *testing.T) {
	svc := newTestOAuthService()

	svc.mu.Lock()
	svc.states["stale"] = time.Now().Add(-time.Minute)
	svc.mu.Unlock()

	assert.False(t, svc.consumeState("stale"))
}

func TestStateUnknown(t *testing.T) {
	svc := newTestOAuthService()
	assert.False(t, svc.consumeState("never-issued"))
}

func TestStatesAreDistinctAcrossCalls(t *testing.T) {
	svc := newTestOAuthService()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		url, err := svc.AuthURL("google")
		require.NoError(t, err)

		state := url[strings.Index(url, "state=")+len("state="):]
		if j := strings.Index(state, "&"); j >= 0 {
			state = state[:j]
		}

		assert.False(t, seen[state], "state repeated after %d draws", i)
		seen[state] = true
	}
}

func TestUpsertUserReturnsExistingAccount(t *testing.T) {
	store := &fakeUserStore{user: &models.User{ID: 3, Email: "ada@example.com"}}
	svc := newTestOAuthServiceWithStore(store)

	user, err := svc.upsertUser("google", "ada@example.com", "Ada")
	require.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)
	assert.Nil(t, store.created)
}

func TestUpsertUserCreatesOnMissingRow(t *testing.T) {
	store := &fakeUserStore{getErr: gorm.ErrRecordNotFound}
	svc := newTestOAuthServiceWithStore(store)

	user, err := svc.upsertUser("github", "grace@example.com", "")
	require.NoError(t, err)
	require.NotNil(t, store.created)
	assert.Equal(t, "github", user.Provider)
	assert.True(t, user.IsVerified)
	// Falls back to the email when the provider sends no display name.
	assert.Equal(t, "grace@example.com", user.FullName)
}

func TestUpsertUserPropagatesLookupFailure(t *testing.T) {
	store := &fakeUserStore{getErr: errors.New("connection refused")}
	svc := newTestOAuthServiceWithStore(store)

	_, err := svc.upsertUser("google", "ada@example.com", "Ada")
	require.EqualError(t, err, "connection refused")
	assert.Nil(t, store.created)
}
