package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/o1egl/paseto"
)

const (
	// Expiration times for access and refresh tokens.
	AccessTokenExpiry  = 12 * time.Hour
	RefreshTokenExpiry = 7 * 24 * time.Hour

	// RoleAdmin is the only back-office role.
	RoleAdmin = "Admin"
)

// TokenClaims represents the data carried in an admin token.
type TokenClaims struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Expiry   time.Time `json:"expiry"`
}

// GetSymmetricKey retrieves the symmetric key from the environment
// variable and ensures it has the required length (32 bytes).
func GetSymmetricKey() []byte {
	key := os.Getenv("SYMMETRIC_KEY")
	if len(key) != 32 {
		log.Fatalf("SYMMETRIC_KEY must be 32 bytes long. Current length: %d", len(key))
	}
	return []byte(key)
}

// GenerateAdminTokens generates the access and refresh token pair for the
// admin account.
func GenerateAdminTokens(username string) (accessToken, refreshToken string, err error) {
	accessToken, err = generatePASEToken(username, RoleAdmin, AccessTokenExpiry)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = generatePASEToken(username, RoleAdmin, RefreshTokenExpiry)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// generatePASEToken generates a PASETO token for the given identity, role,
// and expiry duration.
func generatePASEToken(username, role string, expiry time.Duration) (string, error) {
	claims := TokenClaims{
		Username: username,
		Role:     role,
		Expiry:   time.Now().Add(expiry),
	}

	token, err := paseto.NewV2().Encrypt(GetSymmetricKey(), claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateToken validates the given token string and checks expiry and
// required roles.
func ValidateToken(tokenString string, requiredRoles ...string) (*TokenClaims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if time.Now().After(claims.Expiry) {
		return nil, errors.New("token expired")
	}

	if len(requiredRoles) == 0 {
		return claims, nil
	}
	for _, role := range requiredRoles {
		if claims.Role == role {
			return claims, nil
		}
	}
	return nil, errors.New("insufficient permissions")
}

// parseToken decrypts the token and extracts claims from it.
func parseToken(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, GetSymmetricKey(), &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}
	return &claims, nil
}
