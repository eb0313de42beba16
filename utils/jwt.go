package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie name the session token travels in.
const SessionCookie = "token"

type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 session token for a user. The secret and
// lifetime come from the caller's configuration so tests can run with
// distinct secrets.
func GenerateToken(secret []byte, ttl time.Duration, userID uint, role string) (string, error) {
	claims := &SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "restaurant-reservation",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates a session token and returns its claims. Expired,
// malformed and wrongly-signed tokens all come back as the same error.
func ParseToken(secret []byte, tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
