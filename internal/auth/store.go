package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

// Credentials is the secret material kept outside the environment.
type Credentials struct {
	GeminiAPIKey string `json:"gemini_api_key"`
}

// Store keeps credentials encrypted at rest: argon2id-derived key, AES-GCM,
// file layout salt||nonce||ciphertext with 0600 permissions.
type Store struct {
	Path string
}

func (s Store) Save(creds Credentials, masterPassword string) error {
	if s.Path == "" {
		return fmt.Errorf("store path is required")
	}
	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("salt: %w", err)
	}
	gcm, err := newGCM(masterPassword, salt)
	if err != nil {
		return err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("nonce: %w", err)
	}
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(append(salt, nonce...), ciphertext...)
	if err := os.WriteFile(s.Path, blob, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s Store) Load(masterPassword string) (Credentials, error) {
	if s.Path == "" {
		return Credentials{}, fmt.Errorf("store path is required")
	}
	blob, err := os.ReadFile(s.Path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}
	if len(blob) < saltSize {
		return Credentials{}, fmt.Errorf("invalid encrypted credentials")
	}
	salt := blob[:saltSize]
	gcm, err := newGCM(masterPassword, salt)
	if err != nil {
		return Credentials{}, err
	}
	if len(blob) < saltSize+gcm.NonceSize() {
		return Credentials{}, fmt.Errorf("invalid encrypted credentials")
	}
	nonce := blob[saltSize : saltSize+gcm.NonceSize()]
	ciphertext := blob[saltSize+gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return Credentials{}, fmt.Errorf("decrypt credentials: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return Credentials{}, fmt.Errorf("unmarshal credentials: %w", err)
	}
	return creds, nil
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(password), salt, 3, 64*1024, 4, 32)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm: %w", err)
	}
	return gcm, nil
}
