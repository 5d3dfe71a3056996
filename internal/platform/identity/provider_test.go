package identity

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestProvider_GetOrCreateIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	p := NewProvider(path)

	first, err := p.GetOrCreate()
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !strings.HasPrefix(first, "user_") {
		t.Fatalf("unexpected id shape: %q", first)
	}

	second, err := p.GetOrCreate()
	if err != nil {
		t.Fatalf("GetOrCreate again: %v", err)
	}
	if first != second {
		t.Fatalf("id changed between calls: %q vs %q", first, second)
	}

	// A fresh provider on the same file sees the same id.
	reloaded, err := NewProvider(path).GetOrCreate()
	if err != nil {
		t.Fatalf("GetOrCreate after reload: %v", err)
	}
	if reloaded != first {
		t.Fatalf("id not durable across restarts: %q vs %q", reloaded, first)
	}
}

func TestProvider_InitializedFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	p := NewProvider(path)

	if p.Initialized() {
		t.Fatal("fresh provider should not be initialized")
	}
	if err := p.MarkInitialized(); err == nil {
		t.Fatal("marking without a user id should fail")
	}

	if _, err := p.GetOrCreate(); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if err := p.MarkInitialized(); err != nil {
		t.Fatalf("MarkInitialized: %v", err)
	}

	if !NewProvider(path).Initialized() {
		t.Fatal("initialized flag should survive reload")
	}
}
