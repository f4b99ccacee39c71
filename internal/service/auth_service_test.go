package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/print-request-api/internal/models"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("copyroom"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(nil, nil, AuthConfig{
		PasscodeHash:      string(hash),
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
	})
}

func TestAuthServiceLoginIssuesStaffToken(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.StaffLoginRequest{Name: "Mrs Chan", Passcode: "copyroom"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Mrs Chan", claims.Name)
	assert.Equal(t, models.StaffRole, claims.Role)
	assert.Equal(t, "print-request-api", claims.Issuer)
}

func TestAuthServiceLoginRejectsWrongPasscode(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.StaffLoginRequest{Name: "Mrs Chan", Passcode: "guess"})
	requireAppError(t, err, appErrors.ErrUnauthorized.Code)

	_, err = svc.Login(context.Background(), models.StaffLoginRequest{Passcode: "copyroom"})
	requireAppError(t, err, appErrors.ErrValidation.Code)
}

func TestAuthServiceLoginNotConfigured(t *testing.T) {
	svc := NewAuthService(nil, nil, AuthConfig{AccessTokenSecret: "test-secret"})

	_, err := svc.Login(context.Background(), models.StaffLoginRequest{Name: "Mrs Chan", Passcode: "copyroom"})
	appErr := requireAppError(t, err, appErrors.ErrUnauthorized.Code)
	assert.Equal(t, "staff login is not configured", appErr.Message)
}

func TestAuthServiceValidateTokenRejectsExpiredAndForeign(t *testing.T) {
	svc := newAuthFixture(t)
	resp, err := svc.Login(context.Background(), models.StaffLoginRequest{Name: "Mrs Chan", Passcode: "copyroom"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(resp.AccessToken)
	requireAppError(t, err, appErrors.ErrUnauthorized.Code)

	other := NewAuthService(nil, nil, AuthConfig{AccessTokenSecret: "other-secret"})
	_, err = other.ValidateToken(resp.AccessToken)
	requireAppError(t, err, appErrors.ErrUnauthorized.Code)

	_, err = svc.ValidateToken("not-a-token")
	requireAppError(t, err, appErrors.ErrUnauthorized.Code)
}
