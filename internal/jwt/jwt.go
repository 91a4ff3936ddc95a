package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT provides methods to generate and validate session tokens.
type JWT struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Token expiration duration
}

// New creates a new JWT instance
func New(secretKey string, expiration time.Duration) *JWT {
	return &JWT{
		SecretKey: secretKey,
		Exp:       expiration,
	}
}

// Generate creates a signed token for a given clientID
func (j *JWT) Generate(ctx context.Context, clientID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"client_id": clientID.String(),
		"exp":       time.Now().Add(j.Exp).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GetClientID parses the token string and returns the clientID if the token
// is valid and unexpired
func (j *JWT) GetClientID(ctx context.Context, tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if clientIDStr, ok := claims["client_id"].(string); ok {
			clientID, err := uuid.Parse(clientIDStr)
			if err != nil {
				return uuid.Nil, errors.New("invalid client_id format")
			}
			return clientID, nil
		}
		return uuid.Nil, errors.New("client_id not found in token")
	}
	return uuid.Nil, errors.New("invalid token")
}
