package service

import (
	"errors"
	"strconv"

	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	jwtPkg "github.com/quantumcloud/quantumcloud-backend/pkg/jwt"
)

// TokenIdentityVerifier resolves bearer tokens issued by this service's
// own auth subsystem.
type TokenIdentityVerifier struct {
	tokens *jwtPkg.TokenManager
}

func NewTokenIdentityVerifier(tokens *jwtPkg.TokenManager) *TokenIdentityVerifier {
	return &TokenIdentityVerifier{tokens: tokens}
}

func (v *TokenIdentityVerifier) Verify(token string) (*models.Principal, error) {
	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	email, _ := claims["email"].(string)
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid user ID in token")
	}

	return &models.Principal{
		UserID: uint(userIDFloat),
		Email:  email,
	}, nil
}

func formatUserID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
