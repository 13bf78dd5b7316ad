package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := primitive.NewObjectID()
	email := "alice@example.com"

	token, err := GenerateToken(userID, email)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, email, claims.Email)
	require.Equal(t, "filehive", claims.Issuer)
	require.Equal(t, userID.Hex(), claims.Subject)
	require.WithinDuration(t, time.Now().Add(TokenTTL()), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-jwt")
	require.Error(t, err)
}

func TestInitJWTSecretSignsTokens(t *testing.T) {
	// A secret that only becomes visible after process start (such as one
	// loaded from a .env file) must still be the one signing tokens.
	t.Setenv("JWT_SECRET", "stale-env-secret")
	InitJWT("secret-from-config", 2*time.Hour)

	token, err := GenerateToken(primitive.NewObjectID(), "carol@example.com")
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("secret-from-config"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	require.Equal(t, 2*time.Hour, TokenTTL())

	_, err = jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("stale-env-secret"), nil
	})
	require.Error(t, err)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(primitive.NewObjectID(), "bob@example.com")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	require.Error(t, err)
}
