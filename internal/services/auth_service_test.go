package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/utils"
)

func newAuthService() (*AuthService, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	return NewAuthService(users, sessions, time.Hour), users, sessions
}

func TestSignUpCreatesUserAndSession(t *testing.T) {
	svc, users, sessions := newAuthService()

	user, session, err := svc.SignUp(context.Background(), &dtos.SignUpRequest{
		Name:     "Alex Landlord",
		Email:    "alex@example.com",
		Password: "Sup3rSecret",
		UserType: models.UserTypeLandlord,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, session)

	assert.Equal(t, models.UserTypeLandlord, user.UserType)
	assert.NotEqual(t, "Sup3rSecret", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("Sup3rSecret", user.PasswordHash))

	assert.Contains(t, users.users, user.ID)
	assert.Contains(t, sessions.sessions, session.ID)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()

	req := &dtos.SignUpRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "Sup3rSecret",
		UserType: models.UserTypeTenant,
	}
	_, _, err := svc.SignUp(context.Background(), req)
	require.NoError(t, err)

	_, _, err = svc.SignUp(context.Background(), req)
	require.Error(t, err)

	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
	assert.Equal(t, utils.ErrCodeConflict, appErr.Code)
}

func TestSignUpConcurrentDuplicateIsConflict(t *testing.T) {
	svc, users, _ := newAuthService()

	// A racing signup can pass the EmailExists check and lose to the
	// unique constraint on insert.
	users.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	_, _, err := svc.SignUp(context.Background(), &dtos.SignUpRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "Sup3rSecret",
		UserType: models.UserTypeTenant,
	})
	require.Error(t, err)

	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
	assert.Equal(t, utils.ErrCodeConflict, appErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthService()

	_, _, err := svc.SignUp(context.Background(), &dtos.SignUpRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "Sup3rSecret",
		UserType: models.UserTypeTenant,
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), &dtos.LoginRequest{
		Email:    "alex@example.com",
		Password: "WrongPass1",
	})
	require.Error(t, err)

	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode)
	assert.Equal(t, utils.ErrCodeInvalidCredentials, appErr.Code)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _, _ := newAuthService()

	_, _, err := svc.Login(context.Background(), &dtos.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Whatever1",
	})
	require.Error(t, err)

	// Unknown email and wrong password are indistinguishable.
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrCodeInvalidCredentials, appErr.Code)
}

func TestLoginSuccess(t *testing.T) {
	svc, _, sessions := newAuthService()

	_, first, err := svc.SignUp(context.Background(), &dtos.SignUpRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "Sup3rSecret",
		UserType: models.UserTypeTenant,
	})
	require.NoError(t, err)

	user, second, err := svc.Login(context.Background(), &dtos.LoginRequest{
		Email:    "alex@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", user.Email)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, sessions.sessions, 2)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, sessions := newAuthService()

	_, session, err := svc.SignUp(context.Background(), &dtos.SignUpRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "Sup3rSecret",
		UserType: models.UserTypeTenant,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.ID))
	assert.Empty(t, sessions.sessions)

	// Logging out a dead session is still a success.
	require.NoError(t, svc.Logout(context.Background(), session.ID))
}
