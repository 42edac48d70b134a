package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the engine's secrets in the OS keychain.
const KeyringService = "marches-engine"

// GetFeedToken looks up the optional bearer token for the feed host.
// An empty account means the feed needs no auth; that is not an error.
func GetFeedToken(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", nil
	}
	tok, err := keyring.Get(KeyringService, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tok), nil
}

func SetFeedToken(account, token string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, account, token)
}

func DeleteFeedToken(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
