package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	j := New("test-secret", time.Minute)

	clientID := uuid.New()
	ctx := context.Background()

	token, err := j.Generate(ctx, clientID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := j.GetClientID(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, clientID, parsed)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New("test-secret", -time.Minute) // already expired

	ctx := context.Background()
	token, err := j.Generate(ctx, uuid.New())
	assert.NoError(t, err)

	parsed, err := j.GetClientID(ctx, token)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsed)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	parsed, err := j.GetClientID(ctx, "invalid.token.string")
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsed)
}

func TestJWT_WrongSecret(t *testing.T) {
	ctx := context.Background()

	token, err := New("secret-one", time.Minute).Generate(ctx, uuid.New())
	assert.NoError(t, err)

	parsed, err := New("secret-two", time.Minute).GetClientID(ctx, token)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsed)
}
