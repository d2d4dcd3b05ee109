package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"time"
)

// SessionData is the per-user session record: the most recently issued
// token pair and the role it was issued under. Logout deletes the
// record, which is what makes a refresh with an old token fail.
type SessionData struct {
	UserID       string `json:"userId"`
	Role         string `json:"role"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionStore keeps sessions in Redis, sealed with AES-GCM so token
// material never lands in Redis as plaintext.
type SessionStore struct {
	aead cipher.AEAD
}

var (
	setSessionValue = Set
	getSessionValue = Get
	delSessionValue = Del
)

// NewSessionStore builds a store from a 64-hex-character key
func NewSessionStore(encryptionKeyHex string) (*SessionStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil || len(key) != 32 {
		return nil, errors.New("session encryption key must be 64 hex characters")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &SessionStore{aead: aead}, nil
}

func sessionKey(sessionID string) string {
	return Key("session", sessionID)
}

// CreateSession seals and stores a session record
func (s *SessionStore) CreateSession(ctx context.Context, sessionID string, data *SessionData, expiration time.Duration) error {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}

	sealed, err := s.seal(plaintext)
	if err != nil {
		return err
	}

	return setSessionValue(ctx, sessionKey(sessionID), sealed, expiration)
}

// GetSession retrieves and opens a session record
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	sealed, err := getSessionValue(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}

	plaintext, err := s.open(sealed)
	if err != nil {
		return nil, err
	}

	var data SessionData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DeleteSession removes a session record
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return delSessionValue(ctx, sessionKey(sessionID))
}

// seal encrypts the plaintext and returns hex(nonce || ciphertext)
func (s *SessionStore) seal(plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return hex.EncodeToString(s.aead.Seal(nonce, nonce, plaintext, nil)), nil
}

func (s *SessionStore) open(sealedHex string) ([]byte, error) {
	sealed, err := hex.DecodeString(sealedHex)
	if err != nil {
		return nil, err
	}
	if len(sealed) < s.aead.NonceSize() {
		return nil, errors.New("sealed session too short")
	}
	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	return s.aead.Open(nil, nonce, ciphertext, nil)
}
