package controller

import (
	"context"

	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"github.com/quantumcloud/quantumcloud-backend/internal/service"
)

type AuthController struct {
	authService  *service.AuthService
	oauthService *service.OAuthService
}

func NewAuthController(authService *service.AuthService, oauthService *service.OAuthService) *AuthController {
	return &AuthController{
		authService:  authService,
		oauthService: oauthService,
	}
}

func (c *AuthController) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	return c.authService.Register(req)
}

func (c *AuthController) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	return c.authService.Login(req)
}

func (c *AuthController) VerifyEmail(token string) error {
	return c.authService.VerifyEmail(token)
}

func (c *AuthController) ResendVerificationEmail(email string) error {
	return c.authService.ResendVerificationEmail(email)
}

func (c *AuthController) ForgotPassword(email string) error {
	return c.authService.ForgotPassword(email)
}

func (c *AuthController) ResetPassword(token string, newPassword string) error {
	return c.authService.ResetPassword(token, newPassword)
}

func (c *AuthController) OAuthURL(provider string) (string, error) {
	return c.oauthService.AuthURL(provider)
}

func (c *AuthController) OAuthCallback(ctx context.Context, provider, code, state string) (string, error) {
	return c.oauthService.HandleCallback(ctx, provider, code, state)
}
