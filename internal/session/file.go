package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// credentials is the persisted session record: three opaque string entries
// written and cleared as a logical unit. The user entry stays a serialized
// string so a corrupt identity can be detected independently of the tokens.
type credentials struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         string `json:"user"`
}

// load reads the credentials file. A missing file is not an error; it just
// yields empty credentials.
func load(path string) (credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return credentials{}, nil
		}
		return credentials{}, fmt.Errorf("reading credentials: %w", err)
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return credentials{}, fmt.Errorf("parsing credentials: %w", err)
	}
	return creds, nil
}

// save writes the credentials file with owner-only permissions
func save(path string, creds credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// purge removes the credentials file; a file that is already gone is fine
func purge(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}

// DefaultPath returns the standard credentials file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".carectl-credentials.json")
	}
	return filepath.Join(home, ".config", "carectl", "credentials.json")
}
