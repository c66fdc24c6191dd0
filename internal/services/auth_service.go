package services

import (
	"errors"
	"log"
	"time"

	"github.com/hillcountrygardens/backend/internal/config"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/pkg/crypto"
	jwtpkg "github.com/hillcountrygardens/backend/pkg/jwt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// CreateDefaultAdmin creates the configured admin account if it doesn't
// exist yet
func (s *AuthService) CreateDefaultAdmin() error {
	var count int64
	if err := s.db.Model(&models.AdminUser{}).Where("username = ?", s.cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := s.cfg.AdminPassword
	if password == "" {
		// No password configured: provision with a generated one and print
		// it once so the operator can log in and change it
		password = crypto.GenerateRandomPassword(16)
		log.Printf("No ADMIN_PASSWORD set, generated initial password for %s: %s", s.cfg.AdminUsername, password)
	}

	hashedPassword, err := crypto.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := &models.AdminUser{
		Username: s.cfg.AdminUsername,
		Email:    s.cfg.AdminEmail,
		Password: hashedPassword,
		IsActive: true,
	}
	return s.db.Create(admin).Error
}

// Login authenticates an admin and returns an access/refresh token pair.
// A fixed delay is applied before reporting a failed attempt as a crude
// brute-force deterrent.
func (s *AuthService) Login(username, password string) (string, string, *models.AdminUser, error) {
	var user models.AdminUser
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(s.cfg.FailedLoginDelay)
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, err
	}

	if !user.IsActive {
		return "", "", nil, errors.New("account is deactivated")
	}

	if !crypto.CheckPassword(password, user.Password) {
		time.Sleep(s.cfg.FailedLoginDelay)
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := jwtpkg.GenerateToken(user.ID.String(), jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := jwtpkg.GenerateToken(user.ID.String(), jwtpkg.RefreshToken, s.cfg.JWTSecret, s.cfg.JWTRefreshTokenDuration)
	if err != nil {
		return "", "", nil, err
	}

	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshTokenDuration),
	}
	if err := s.db.Create(refreshTokenModel).Error; err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, &user, nil
}

// RefreshTokens rotates a refresh token and returns a new token pair
func (s *AuthService) RefreshTokens(refreshToken string) (string, string, error) {
	claims, err := jwtpkg.ValidateToken(refreshToken, s.cfg.JWTSecret)
	if err != nil || claims.TokenType != jwtpkg.RefreshToken {
		return "", "", ErrInvalidCredentials
	}

	var stored models.RefreshToken
	if err := s.db.Where("token = ?", refreshToken).First(&stored).Error; err != nil {
		return "", "", ErrInvalidCredentials
	}
	if time.Now().After(stored.ExpiresAt) {
		s.db.Delete(&stored)
		return "", "", ErrInvalidCredentials
	}

	newAccess, err := jwtpkg.GenerateToken(claims.UserID, jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := jwtpkg.GenerateToken(claims.UserID, jwtpkg.RefreshToken, s.cfg.JWTSecret, s.cfg.JWTRefreshTokenDuration)
	if err != nil {
		return "", "", err
	}

	// Rotate: replace the stored token in place
	stored.Token = newRefresh
	stored.ExpiresAt = time.Now().Add(s.cfg.JWTRefreshTokenDuration)
	if err := s.db.Save(&stored).Error; err != nil {
		return "", "", err
	}

	return newAccess, newRefresh, nil
}

// Logout invalidates a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	return s.db.Where("token = ?", refreshToken).Delete(&models.RefreshToken{}).Error
}

// CleanupExpiredTokens removes expired refresh tokens, called periodically
// from a background loop
func (s *AuthService) CleanupExpiredTokens() (int64, error) {
	result := s.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
