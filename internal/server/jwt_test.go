package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testSecret,
		Issuer:          config.DefaultJWTIssuer,
		ExpirationHours: expirationHours,
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)

	// Test token format is valid JWT (three parts separated by dots)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, config.DefaultJWTIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key any) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	now := time.Now()

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{"empty", "", "empty"},
		{"garbage", "not.a.jwt", "malformed"},
		{
			"wrong secret",
			sign(&Claims{UserID: userID, RegisteredClaims: jwt.RegisteredClaims{Issuer: config.DefaultJWTIssuer}}, jwt.SigningMethodHS256, []byte("another-secret")),
			"signature",
		},
		{
			"expired",
			sign(&Claims{UserID: userID, RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    config.DefaultJWTIssuer,
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			}}, jwt.SigningMethodHS256, []byte(testSecret)),
			"expired",
		},
		{
			"wrong issuer",
			sign(&Claims{UserID: userID, RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"}}, jwt.SigningMethodHS256, []byte(testSecret)),
			"issuer",
		},
		{
			"wrong algorithm",
			sign(&Claims{UserID: userID, RegisteredClaims: jwt.RegisteredClaims{Issuer: config.DefaultJWTIssuer}}, jwt.SigningMethodHS512, []byte(testSecret)),
			"signature",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 1)
	userID := uuid.New()
	token, err := service.GenerateToken(userID)
	require.NoError(t, err)

	claims, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())

	_, err = service.AsTokenValidator().ValidateToken("bogus")
	assert.Error(t, err)
}
