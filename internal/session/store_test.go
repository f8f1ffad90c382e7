package session

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gw-converter-cli/internal/custom_err"
	"gw-converter-cli/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.json")
	store, err := NewStore(path, testLogger())
	require.NoError(t, err)
	return store, path
}

func TestStore_EmptyByDefault(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Empty(t, store.Token())
	assert.False(t, store.IsAuthenticated())
}

func TestStore_SetTokenPersistsAcrossRestart(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, store.SetToken("issued-token"))
	assert.True(t, store.IsAuthenticated())

	reloaded, err := NewStore(path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "issued-token", reloaded.Token())
	assert.True(t, reloaded.IsAuthenticated())
}

func TestStore_ClearRemovesTokenDurably(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, store.SetToken("issued-token"))
	require.NoError(t, store.Clear())

	assert.Empty(t, store.Token())
	assert.False(t, store.IsAuthenticated())

	reloaded, err := NewStore(path, testLogger())
	require.NoError(t, err)
	assert.Empty(t, reloaded.Token())
	assert.False(t, reloaded.IsAuthenticated())
}

func TestStore_CorruptFileResetsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	store, err := NewStore(path, testLogger())
	require.NoError(t, err)
	assert.False(t, store.IsAuthenticated())
}

func TestStore_Claims(t *testing.T) {
	store, _ := newTestStore(t)

	claims := models.SessionClaims{
		UserID: "42",
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, store.SetToken(token))

	got, err := store.Claims()
	require.NoError(t, err)
	assert.Equal(t, "42", got.UserID)
	assert.Equal(t, "user@example.com", got.Email)
	require.NotNil(t, got.ExpiresAt)
}

func TestStore_ClaimsWithoutSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Claims()
	assert.ErrorIs(t, err, custom_err.ErrNoSession)
}

func TestStore_ClaimsMalformedToken(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SetToken("not-a-jwt"))

	_, err := store.Claims()
	assert.ErrorIs(t, err, custom_err.ErrInvalidToken)

	// Сессия при этом не сбрасывается: решение остаётся за бэкендом.
	assert.True(t, store.IsAuthenticated())
}
