package auth

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/arcanum-go/apperror"
	"github.com/user/arcanum-go/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:         "unit-test-secret",
		TokenDuration:     24 * time.Hour,
		CookieName:        "token",
		ReadingCost:       1,
		RegistrationGrant: 5,
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	svc := NewAuthService(nil, testAuthConfig())

	token, err := svc.IssueToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerifyTokenFailures(t *testing.T) {
	svc := NewAuthService(nil, testAuthConfig())
	valid, err := svc.IssueToken(7)
	require.NoError(t, err)

	expiredCfg := testAuthConfig()
	expiredCfg.TokenDuration = -time.Minute
	expired, err := NewAuthService(nil, expiredCfg).IssueToken(7)
	require.NoError(t, err)

	otherSecret := testAuthConfig()
	otherSecret.JWTSecret = "a-different-secret"
	foreign, err := NewAuthService(nil, otherSecret).IssueToken(7)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"expired", expired},
		{"wrong signature", foreign},
		{"tampered payload", valid[:len(valid)-4] + "AAAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifyToken(tt.token)
			require.Error(t, err)
			assert.True(t, apperror.IsAuthError(err))
		})
	}
}

func TestValidateRegisterRequest(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name      string
		req       RegisterRequest
		wantField string
	}{
		{
			name:      "missing username",
			req:       RegisterRequest{Email: "a@b.com", Password: "longenough"},
			wantField: "username",
		},
		{
			name:      "username too short",
			req:       RegisterRequest{Username: "ab", Email: "a@b.com", Password: "longenough"},
			wantField: "username",
		},
		{
			name:      "username not alphanumeric",
			req:       RegisterRequest{Username: "bad name!", Email: "a@b.com", Password: "longenough"},
			wantField: "username",
		},
		{
			name:      "invalid email",
			req:       RegisterRequest{Username: "alice", Email: "not-an-email", Password: "longenough"},
			wantField: "email",
		},
		{
			name:      "password too short",
			req:       RegisterRequest{Username: "alice", Email: "a@b.com", Password: "short"},
			wantField: "password",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStruct(v, tt.req)
			require.Error(t, err)
			require.True(t, apperror.IsValidationError(err))

			appErr, ok := apperror.FromError(err)
			require.True(t, ok)
			assert.Contains(t, appErr.Details, tt.wantField)
		})
	}

	err := validateStruct(v, RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "longenough",
	})
	assert.NoError(t, err)
}
