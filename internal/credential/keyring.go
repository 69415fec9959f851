package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "mailterm"

// tokenKey namespaces a per-account session token inside the keyring.
func tokenKey(email string) string {
	return "session-token:" + email
}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/mailterm/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("mailterm-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// GetToken retrieves the stored session token for an account.
func GetToken(email string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(tokenKey(email))
	if err != nil {
		return "", fmt.Errorf("getting session token for %q: %w", email, err)
	}

	return string(item.Data), nil
}

// SetToken stores the session token for an account.
func SetToken(email, token string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  tokenKey(email),
		Data: []byte(token),
	})
	if err != nil {
		return fmt.Errorf("storing session token for %q: %w", email, err)
	}

	return nil
}

// DeleteToken removes the session token for an account. Missing entries
// are not an error; sign-out must be idempotent.
func DeleteToken(email string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(tokenKey(email))
	if err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("deleting session token for %q: %w", email, err)
	}

	return nil
}
