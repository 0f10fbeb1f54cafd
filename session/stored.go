// ABOUTME: Persisted auth so a login survives restarts
// ABOUTME: JSON file at the XDG data path, written on login, removed on logout
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/1Lab-vibe/a1-client/config"
)

const authFileName = "auth.json"

// StoredAuth is the on-disk login state.
type StoredAuth struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	CompanyID string `json:"company_id"`
}

// AuthPath returns the auth file location.
func AuthPath() (string, error) {
	return config.DataPath(authFileName)
}

// LoadStored reads the persisted auth, returning nil when absent or
// incomplete (a partial file is treated as logged out).
func LoadStored() *StoredAuth {
	path, err := AuthPath()
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var auth StoredAuth
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil
	}
	if auth.Token == "" || auth.Email == "" || auth.CompanyID == "" {
		return nil
	}
	return &auth
}

// SaveStored persists the login state.
func SaveStored(token, email, companyID string) error {
	path, err := AuthPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(StoredAuth{Token: token, Email: email, CompanyID: companyID})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ClearStored removes the persisted login state.
func ClearStored() error {
	path, err := AuthPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Restore loads persisted auth into the store. Returns the auth when a
// login was restored.
func Restore(store *Store) *StoredAuth {
	auth := LoadStored()
	if auth == nil {
		store.Clear()
		return nil
	}
	store.Set(auth.CompanyID, auth.Token, auth.Email)
	return auth
}
