package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"github.com/quantumcloud/quantumcloud-backend/internal/repository"
	"github.com/quantumcloud/quantumcloud-backend/pkg/bcrypt"
	"github.com/quantumcloud/quantumcloud-backend/pkg/email"
	jwtPkg "github.com/quantumcloud/quantumcloud-backend/pkg/jwt"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
	tokens       *jwtPkg.TokenManager
	logger       *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.EmailService, tokens *jwtPkg.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		tokens:       tokens,
		logger:       logger,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashedPassword,
		Company:  req.Company,
		Role:     req.Role,
		Provider: models.ProviderPassword,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse(time.RFC3339, req.DateOfBirth)
		if err != nil {
			return nil, errors.New("invalid date_of_birth")
		}
		user.DateOfBirth = &dob
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	verificationToken, err := s.generateVerificationToken(user.Email)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.emailService.SendVerificationEmail(user.Email, user.FullName, verificationToken); err != nil {
			s.logger.Warn("verification email failed", zap.String("email", user.Email), zap.Error(err))
		}
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			s.logger.Warn("welcome email failed", zap.String("email", user.Email), zap.Error(err))
		}
	}()

	token, err := s.tokens.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if user.Password == "" {
		// OAuth-only account
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %v", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) VerifyEmail(token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	if tokenType, _ := claims["type"].(string); tokenType != "email_verification" {
		return errors.New("invalid token type")
	}

	userEmail, ok := claims["email"].(string)
	if !ok {
		return errors.New("invalid token claims")
	}

	user, err := s.userRepo.GetByEmail(userEmail)
	if err != nil {
		return errors.New("user not found")
	}

	if user.IsVerified {
		return errors.New("email already verified")
	}

	user.IsVerified = true
	if err := s.userRepo.Update(user); err != nil {
		return errors.New("failed to verify email")
	}

	return nil
}

func (s *AuthService) ResendVerificationEmail(userEmail string) error {
	user, err := s.userRepo.GetByEmail(userEmail)
	if err != nil {
		return errors.New("user not found")
	}

	if user.IsVerified {
		return errors.New("email already verified")
	}

	verificationToken, err := s.generateVerificationToken(userEmail)
	if err != nil {
		return err
	}

	return s.emailService.SendVerificationEmail(user.Email, user.FullName, verificationToken)
}

func (s *AuthService) generateVerificationToken(userEmail string) (string, error) {
	return s.tokens.GenerateScopedToken(jwt.MapClaims{
		"email": userEmail,
		"type":  "email_verification",
	}, jwtPkg.TokenExpiryEmailVerify)
}

func (s *AuthService) ForgotPassword(userEmail string) error {
	user, err := s.userRepo.GetByEmail(userEmail)
	if err != nil {
		// No account enumeration
		return nil
	}

	resetToken, err := s.tokens.GenerateScopedToken(jwt.MapClaims{
		"sub":  user.Email,
		"type": "password_reset",
	}, jwtPkg.TokenExpiryReset)
	if err != nil {
		return err
	}

	return s.emailService.SendPasswordResetEmail(user.Email, resetToken)
}

func (s *AuthService) ResetPassword(token string, newPassword string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	if tokenType, _ := claims["type"].(string); tokenType != "password_reset" {
		return errors.New("invalid token type")
	}

	userEmail, ok := claims["sub"].(string)
	if !ok {
		return errors.New("invalid token claims")
	}

	user, err := s.userRepo.GetByEmail(userEmail)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(user.ID, hashedPassword)
}
