package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"github.com/quantumcloud/quantumcloud-backend/internal/repository"
	"github.com/quantumcloud/quantumcloud-backend/pkg/bcrypt"
	"github.com/quantumcloud/quantumcloud-backend/pkg/email"
	jwtPkg "github.com/quantumcloud/quantumcloud-backend/pkg/jwt"
	"github.com/quantumcloud/quantumcloud-backend/pkg/storage"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo         *repository.UserRepository
	settingsRepo     *repository.UserSettingsRepository
	subscriptionRepo *repository.SubscriptionRepository
	emailService     *email.EmailService
	exportStorage    *storage.ExportStorage
	tokens           *jwtPkg.TokenManager
	logger           *zap.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	settingsRepo *repository.UserSettingsRepository,
	subscriptionRepo *repository.SubscriptionRepository,
	emailService *email.EmailService,
	exportStorage *storage.ExportStorage,
	tokens *jwtPkg.TokenManager,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		settingsRepo:     settingsRepo,
		subscriptionRepo: subscriptionRepo,
		emailService:     emailService,
		exportStorage:    exportStorage,
		tokens:           tokens,
		logger:           logger,
	}
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *UserService) GetUserByEmail(userEmail string) (*models.User, error) {
	return s.userRepo.GetByEmail(userEmail)
}

func (s *UserService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.FullName = req.FullName
	user.Company = req.Company
	user.Role = req.Role

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) ChangePassword(userID uint, req models.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if user.Password == "" {
		return errors.New("account uses oauth sign-in")
	}

	if err := bcrypt.ComparePassword(user.Password, req.CurrentPassword); err != nil {
		return errors.New("current password is incorrect")
	}

	hashedPassword, err := bcrypt.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(user.ID, hashedPassword)
}

func (s *UserService) InitiateEmailChange(userID uint, req models.ChangeEmailRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return errors.New("invalid password")
	}

	exists, err := s.userRepo.EmailExists(req.NewEmail)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("email already in use")
	}

	token, err := s.tokens.GenerateScopedToken(jwt.MapClaims{
		"user_id":   userID,
		"new_email": req.NewEmail,
		"type":      "email_change",
	}, jwtPkg.TokenExpiryEmailChange)
	if err != nil {
		return err
	}

	return s.emailService.SendEmailChangeVerification(req.NewEmail, token)
}

func (s *UserService) CompleteEmailChange(token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	if tokenType, _ := claims["type"].(string); tokenType != "email_change" {
		return errors.New("invalid token type")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return errors.New("invalid token claims")
	}
	newEmail, ok := claims["new_email"].(string)
	if !ok {
		return errors.New("invalid token claims")
	}

	return s.userRepo.UpdateEmail(uint(userIDFloat), newEmail)
}

func (s *UserService) GetSettings(userID uint) (*models.UserSettings, error) {
	return s.settingsRepo.GetByUserID(userID)
}

func (s *UserService) UpdateSettings(userID uint, req models.UpdateSettingsRequest) (*models.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}
	if req.MarketingEmails != nil {
		settings.MarketingEmails = *req.MarketingEmails
	}
	if req.QuantumAlerts != nil {
		settings.QuantumAlerts = *req.QuantumAlerts
	}
	if req.DataSharing != nil {
		settings.DataSharing = *req.DataSharing
	}

	if err := s.settingsRepo.Update(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// ExportData uploads a JSON snapshot of everything stored for the user and
// emails the download link.
func (s *UserService) ExportData(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	settings, err := s.settingsRepo.GetByUserID(userID)
	if err != nil {
		return err
	}

	purchases, err := s.subscriptionRepo.GetByUserID(userID)
	if err != nil {
		return err
	}

	snapshot := map[string]interface{}{
		"exported_at": time.Now().UTC(),
		"user":        user,
		"settings":    settings,
		"purchases":   purchases,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	key := fmt.Sprintf("exports/%d/%s.json", userID, uuid.NewString())
	downloadURL, err := s.exportStorage.Upload(ctx, key, data)
	if err != nil {
		return err
	}

	go func() {
		if err := s.emailService.SendDataExportEmail(user.Email, user.FullName, downloadURL); err != nil {
			s.logger.Warn("data export email failed", zap.String("email", user.Email), zap.Error(err))
		}
	}()

	return nil
}

func (s *UserService) DeleteAccount(userID uint, req models.DeleteAccountRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if user.Password != "" {
		if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
			return errors.New("invalid password")
		}
	}

	if err := s.settingsRepo.DeleteByUserID(userID); err != nil {
		return err
	}
	if err := s.subscriptionRepo.DeleteByUserID(userID); err != nil {
		return err
	}

	return s.userRepo.Delete(userID)
}
