package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/quantumcloud/quantumcloud-backend/internal/config"
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	jwtPkg "github.com/quantumcloud/quantumcloud-backend/pkg/jwt"
	"github.com/quantumcloud/quantumcloud-backend/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"gorm.io/gorm"
)

const oauthStateTTL = 10 * time.Minute

var ErrUnknownProvider = errors.New("unknown oauth provider")

// OAuthUserStore is the slice of the user repository the callback needs
// to bridge a provider identity into a local account.
type OAuthUserStore interface {
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
}

// OAuthService runs the authorization-code flow for Google and GitHub
// sign-in and bridges the resulting identity into a local account.
type OAuthService struct {
	userRepo    OAuthUserStore
	tokens      *jwtPkg.TokenManager
	configs     map[string]*oauth2.Config
	frontendURL string
	logger      *zap.Logger

	mu     sync.Mutex
	states map[string]time.Time
}

func NewOAuthService(cfg *config.Config, userRepo OAuthUserStore, tokens *jwtPkg.TokenManager, logger *zap.Logger) *OAuthService {
	configs := map[string]*oauth2.Config{
		models.ProviderGoogle: {
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			RedirectURL:  cfg.OAuth.RedirectBaseURL + "/api/auth/oauth/google/callback",
			Endpoint:     endpoints.Google,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
		},
		models.ProviderGitHub: {
			ClientID:     cfg.OAuth.GitHub.ClientID,
			ClientSecret: cfg.OAuth.GitHub.ClientSecret,
			RedirectURL:  cfg.OAuth.RedirectBaseURL + "/api/auth/oauth/github/callback",
			Endpoint:     endpoints.GitHub,
			Scopes:       []string{"read:user", "user:email"},
		},
	}

	return &OAuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		configs:     configs,
		frontendURL: cfg.FrontendURL,
		logger:      logger,
		states:      make(map[string]time.Time),
	}
}

// AuthURL returns the provider authorization URL with a fresh one-time
// state.
func (s *OAuthService) AuthURL(provider string) (string, error) {
	cfg, ok := s.configs[provider]
	if !ok {
		return "", ErrUnknownProvider
	}

	state, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("state generation failed: %w", err)
	}

	s.mu.Lock()
	s.states[state] = time.Now().Add(oauthStateTTL)
	s.mu.Unlock()

	return cfg.AuthCodeURL(state), nil
}

// HandleCallback exchanges the code, fetches the provider profile, upserts
// the local account and returns a frontend redirect URL carrying a session
// token.
func (s *OAuthService) HandleCallback(ctx context.Context, provider, code, state string) (string, error) {
	cfg, ok := s.configs[provider]
	if !ok {
		return "", ErrUnknownProvider
	}

	if !s.consumeState(state) {
		return "", errors.New("invalid or expired state")
	}

	oauthToken, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange failed: %w", err)
	}

	client := cfg.Client(ctx, oauthToken)

	var userEmail, fullName string
	switch provider {
	case models.ProviderGoogle:
		userEmail, fullName, err = fetchGoogleProfile(client)
	case models.ProviderGitHub:
		userEmail, fullName, err = fetchGitHubProfile(client)
	}
	if err != nil {
		return "", err
	}
	if userEmail == "" {
		return "", errors.New("provider returned no email")
	}

	user, err := s.upsertUser(provider, userEmail, fullName)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.GenerateToken(user.Email, user.ID)
	if err != nil {
		return "", err
	}

	return s.frontendURL + "/?token=" + token, nil
}

// upsertUser returns the existing account for the provider email or
// creates one. Only a missing row triggers creation; transient lookup
// errors are propagated.
func (s *OAuthService) upsertUser(provider, userEmail, fullName string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(userEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{
		FullName:   fullName,
		Email:      userEmail,
		Provider:   provider,
		IsVerified: true,
	}
	if user.FullName == "" {
		user.FullName = userEmail
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info("oauth account created",
		zap.String("provider", provider),
		zap.String("email", userEmail))
	return user, nil
}

func (s *OAuthService) consumeState(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)

	// Expired states are pruned lazily on lookup.
	for st, exp := range s.states {
		if time.Now().After(exp) {
			delete(s.states, st)
		}
	}

	return time.Now().Before(expiry)
}

func fetchGoogleProfile(client *http.Client) (string, string, error) {
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", "", err
	}

	return profile.Email, profile.Name, nil
}

func fetchGitHubProfile(client *http.Client) (string, string, error) {
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	var profile struct {
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", "", err
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}

	if profile.Email != "" {
		return profile.Email, name, nil
	}

	// The profile email can be private; fall back to the emails endpoint.
	emailResp, err := client.Get("https://api.github.com/user/emails")
	if err != nil {
		return "", "", err
	}
	defer emailResp.Body.Close()

	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := json.NewDecoder(emailResp.Body).Decode(&emails); err != nil {
		return "", "", err
	}

	for _, e := range emails {
		if e.Primary {
			return e.Email, name, nil
		}
	}
	if len(emails) > 0 {
		return emails[0].Email, name, nil
	}

	return "", name, nil
}
