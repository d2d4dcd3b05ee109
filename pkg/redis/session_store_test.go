package redis

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEncryptionKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func newMiniredisClient(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestNewSessionStore_KeyValidation(t *testing.T) {
	_, err := NewSessionStore("not-hex")
	assert.Error(t, err)

	_, err = NewSessionStore("abcd") // too short
	assert.Error(t, err)

	store, err := NewSessionStore(testEncryptionKey)
	assert.NoError(t, err)
	assert.NotNil(t, store)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	newMiniredisClient(t)
	store, err := NewSessionStore(testEncryptionKey)
	require.NoError(t, err)
	ctx := context.Background()

	data := &SessionData{UserID: "user-1", Role: "ADMIN", AccessToken: "access-token", RefreshToken: "refresh-token"}
	require.NoError(t, store.CreateSession(ctx, "user-1", data, time.Hour))

	got, err := store.GetSession(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "ADMIN", got.Role)
	assert.Equal(t, "access-token", got.AccessToken)
	assert.Equal(t, "refresh-token", got.RefreshToken)

	require.NoError(t, store.DeleteSession(ctx, "user-1"))
	_, err = store.GetSession(ctx, "user-1")
	assert.Error(t, err)
}

func TestSessionStore_StoredValueIsEncrypted(t *testing.T) {
	mr := newMiniredisClient(t)
	store, err := NewSessionStore(testEncryptionKey)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.CreateSession(ctx, "user-1", &SessionData{AccessToken: "access-token"}, time.Hour))

	// Stored under the application keyspace
	raw, err := mr.Get(Key("session", "user-1"))
	require.NoError(t, err)
	assert.NotContains(t, raw, "access-token")
	// Hex-encoded ciphertext only
	_, err = hex.DecodeString(raw)
	assert.NoError(t, err)
}

func TestSessionStore_WrongKeyCannotDecrypt(t *testing.T) {
	newMiniredisClient(t)
	writer, err := NewSessionStore(testEncryptionKey)
	require.NoError(t, err)
	reader, err := NewSessionStore(strings.Repeat("ff", 32))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, writer.CreateSession(ctx, "user-1", &SessionData{AccessToken: "access-token"}, time.Hour))
	_, err = reader.GetSession(ctx, "user-1")
	assert.Error(t, err)
}
