package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gw-converter-cli/internal/api"
	"gw-converter-cli/internal/custom_err"
	"gw-converter-cli/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupAuthService() (*AuthService, *MockClient, *MockSessionStore) {
	client := new(MockClient)
	store := new(MockSessionStore)
	service := NewAuthService(client, store, testLogger())
	return service, client, store
}

func TestAuthService_Login_Success(t *testing.T) {
	service, client, store := setupAuthService()
	ctx := context.Background()

	req := models.LoginRequest{Email: "user@example.com", Password: "secret"}
	client.On("Post", ctx, "/auth/login", req, mock.AnythingOfType("*models.LoginResponse")).
		Run(func(args mock.Arguments) {
			resp := args.Get(3).(*models.LoginResponse)
			resp.Token = "issued-token"
		}).
		Return(nil)
	store.On("SetToken", "issued-token").Return(nil)

	err := service.Login(ctx, "user@example.com", "secret")

	require.NoError(t, err)
	client.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestAuthService_Login_InvalidEmailFailsLocally(t *testing.T) {
	service, client, store := setupAuthService()

	err := service.Login(context.Background(), "not-an-email", "secret")

	assert.ErrorIs(t, err, custom_err.ErrInvalidInput)
	client.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "SetToken", mock.Anything)
}

func TestAuthService_Login_BackendFailureLeavesSessionUntouched(t *testing.T) {
	service, client, store := setupAuthService()
	ctx := context.Background()

	client.On("Post", ctx, "/auth/login", mock.Anything, mock.Anything).
		Return(&api.ResponseError{StatusCode: 401, Code: "invalid_credentials", Message: "Invalid email or password"})

	err := service.Login(ctx, "user@example.com", "wrong")

	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", api.HandleAPIError(err))
	store.AssertNotCalled(t, "SetToken", mock.Anything)
	store.AssertNotCalled(t, "Clear")
}

func TestAuthService_Login_EmptyTokenRejected(t *testing.T) {
	service, client, store := setupAuthService()
	ctx := context.Background()

	client.On("Post", ctx, "/auth/login", mock.Anything, mock.Anything).Return(nil)

	err := service.Login(ctx, "user@example.com", "secret")

	assert.ErrorIs(t, err, custom_err.ErrInvalidToken)
	store.AssertNotCalled(t, "SetToken", mock.Anything)
}

func TestAuthService_Signup_ShortPasswordFailsWithoutNetworkCall(t *testing.T) {
	service, client, _ := setupAuthService()

	_, err := service.Signup(context.Background(), "user@example.com", "12345", "User")

	assert.ErrorIs(t, err, custom_err.ErrInvalidInput)
	assert.Contains(t, err.Error(), "at least 6")
	client.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Signup_SixCharPasswordReachesBackend(t *testing.T) {
	service, client, store := setupAuthService()
	ctx := context.Background()

	req := models.SignupRequest{Email: "user@example.com", Password: "123456", Name: "User"}
	client.On("Post", ctx, "/auth/signup", req, mock.AnythingOfType("*models.SignupResponse")).
		Run(func(args mock.Arguments) {
			resp := args.Get(3).(*models.SignupResponse)
			resp.Email = "user@example.com"
			resp.Name = "User"
		}).
		Return(nil)

	resp, err := service.Signup(ctx, "user@example.com", "123456", "User")

	require.NoError(t, err)
	assert.Equal(t, "user@example.com", resp.Email)

	// Регистрация не создаёт сессию.
	store.AssertNotCalled(t, "SetToken", mock.Anything)
	client.AssertExpectations(t)
}

func TestAuthService_Signup_BackendError(t *testing.T) {
	service, client, _ := setupAuthService()
	ctx := context.Background()

	client.On("Post", ctx, "/auth/signup", mock.Anything, mock.Anything).
		Return(&api.ResponseError{StatusCode: 400, Code: "email_exists", Message: "Email already registered"})

	resp, err := service.Signup(ctx, "user@example.com", "123456", "User")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "Email already registered", api.HandleAPIError(err))
}

func TestAuthService_Logout_ClearsSessionWithoutBackendCall(t *testing.T) {
	service, client, store := setupAuthService()

	store.On("Clear").Return(nil)

	err := service.Logout()

	require.NoError(t, err)
	store.AssertExpectations(t)
	client.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}
