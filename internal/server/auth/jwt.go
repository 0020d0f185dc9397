// Package auth issues and verifies the signed session tokens returned to
// clients after registration, login and password changes.
package auth

import (
	"errors"
	"time"

	"github.com/campdir/campdir/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the registered JWT claims plus the asserted user identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken signs an HS256 token asserting userID, valid for
// validityDuration from now. Rotating the secret invalidates every token
// issued before the rotation.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString and returns the user identity it
// asserts. Expired tokens yield common.ErrorInvalidToken like every other
// verification failure; callers get no detail to enumerate against.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrorInvalidToken
	}

	return claims.UserID, nil
}
