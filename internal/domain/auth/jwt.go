package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"confeito/internal/core/apperror"
	appctx "confeito/internal/core/context"
)

// JWTConfig holds token signing configuration.
type JWTConfig struct {
	Secret         []byte
	AccessTokenTTL time.Duration
	Issuer         string
}

// DefaultJWTConfig returns sensible defaults (HS256, short-lived tokens).
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret:         []byte(secret),
		AccessTokenTTL: 15 * time.Minute,
		Issuer:         "confeito",
	}
}

// Claims is the JWT payload.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a signed access token for the user.
func GenerateAccessToken(cfg JWTConfig, u *User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", apperror.NewInternal(err)
	}
	return signed, nil
}

// ValidateToken parses and verifies an access token, returning the
// authenticated user context.
func ValidateToken(cfg JWTConfig, tokenString string) (*appctx.UserContext, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.NewUnauthorized("unexpected signing method")
		}
		return cfg.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}

	return &appctx.UserContext{
		UserID:   claims.Subject,
		Username: claims.Username,
	}, nil
}
