package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func isolateData(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "data"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

func TestStoredAuthRoundTrip(t *testing.T) {
	isolateData(t)

	if LoadStored() != nil {
		t.Error("Expected no stored auth in a fresh data dir")
	}

	if err := SaveStored("tok-1", "u@example.com", "co-1"); err != nil {
		t.Fatalf("SaveStored failed: %v", err)
	}

	auth := LoadStored()
	if auth == nil {
		t.Fatal("Expected stored auth after save")
	}
	if auth.Token != "tok-1" || auth.Email != "u@example.com" || auth.CompanyID != "co-1" {
		t.Errorf("Unexpected auth: %+v", auth)
	}

	if err := ClearStored(); err != nil {
		t.Fatalf("ClearStored failed: %v", err)
	}
	if LoadStored() != nil {
		t.Error("Expected no stored auth after clear")
	}
}

func TestClearStoredIdempotent(t *testing.T) {
	isolateData(t)
	if err := ClearStored(); err != nil {
		t.Errorf("Clearing a missing auth file should succeed, got %v", err)
	}
}

func TestLoadStoredPartialFileIsLoggedOut(t *testing.T) {
	isolateData(t)

	path, err := AuthPath()
	if err != nil {
		t.Fatalf("AuthPath failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"token":"t"}`), 0600); err != nil {
		t.Fatal(err)
	}

	if LoadStored() != nil {
		t.Error("A partial auth file must read as logged out")
	}
}

func TestRestore(t *testing.T) {
	isolateData(t)

	store := NewStore()
	if Restore(store) != nil {
		t.Error("Expected nil restore with no auth file")
	}
	if store.Get() != nil {
		t.Error("Expected empty store after failed restore")
	}

	if err := SaveStored("tok-1", "u@example.com", "co-1"); err != nil {
		t.Fatal(err)
	}
	if Restore(store) == nil {
		t.Fatal("Expected restore to succeed")
	}
	sess := store.Get()
	if sess == nil || sess.Token != "tok-1" || sess.UserID != "u@example.com" {
		t.Errorf("Unexpected restored session: %+v", sess)
	}
}
