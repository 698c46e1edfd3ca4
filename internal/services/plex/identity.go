package plex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const identityFileName = "client_id"

// ClientIdentifier returns the persistent X-Plex-Client-Identifier for this
// installation, generating and saving one under stateDir on first use.
func ClientIdentifier(stateDir string) (string, error) {
	path := filepath.Join(stateDir, identityFileName)

	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read client identifier: %w", err)
	}

	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return "", fmt.Errorf("create state directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("save client identifier: %w", err)
	}
	return id, nil
}
