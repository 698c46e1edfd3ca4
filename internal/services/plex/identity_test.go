package plex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClientIdentifierPersists(t *testing.T) {
	dir := t.TempDir()

	first, err := ClientIdentifier(dir)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first == "" {
		t.Fatal("expected non-empty identifier")
	}

	second, err := ClientIdentifier(dir)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second != first {
		t.Fatalf("identifier changed between runs: %q != %q", second, first)
	}

	data, err := os.ReadFile(filepath.Join(dir, identityFileName))
	if err != nil {
		t.Fatalf("read identity file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("identity file empty")
	}
}

func TestClientIdentifierCreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	if _, err := ClientIdentifier(dir); err != nil {
		t.Fatalf("client identifier: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("state dir not created: %v", err)
	}
}
