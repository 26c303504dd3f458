// Package jwttest mints access tokens shaped like the identity service's,
// for tests that need an authenticated caller.
package jwttest

import (
	"time"

	"go-clinic-scheduling/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sign returns an HS256 access token for the user and its token id.
func Sign(secret string, userID uuid.UUID, email string, roleID int, expiry time.Duration) (string, string, error) {
	tokenID := uuid.New().String()
	now := time.Now()
	claims := jwt.Claims{
		UserID:    userID,
		Email:     email,
		RoleID:    roleID,
		TokenType: jwt.AccessToken,
		TokenID:   tokenID,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
		},
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}
