package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alex/resume-builder/internal/domain"
)

var (
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("token signature is invalid")
)

// Claims is the authenticated identity carried by a session token.
type Claims struct {
	UserID   uuid.UUID
	Username string
}

// TokenManager issues and validates signed session tokens. Validation is
// purely computational, so a TokenManager is safe for concurrent use once
// constructed.
type TokenManager struct {
	key []byte
	ttl time.Duration
}

// NewTokenManager derives the signing key from the base64-encoded secret.
// If the secret does not decode, the process keeps running with a random
// per-process key; tokens issued with it become invalid after a restart.
func NewTokenManager(encodedSecret string, ttl time.Duration, logger *zap.Logger) *TokenManager {
	key, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil || len(key) == 0 {
		key = make([]byte, 32)
		if _, randErr := rand.Read(key); randErr != nil {
			// crypto/rand failing means the platform is broken
			panic(randErr)
		}
		logger.Warn("jwt secret is not valid base64, falling back to an ephemeral signing key; issued tokens will not survive a restart",
			zap.Error(err))
	}

	return &TokenManager{key: key, ttl: ttl}
}

func (m *TokenManager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"name": user.Username,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return m.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrTokenMalformed
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	username, _ := claims["name"].(string)

	return &Claims{UserID: userID, Username: username}, nil
}
