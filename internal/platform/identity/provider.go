package identity

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// Provider hands out one stable anonymous user id per installation and
// tracks whether that user has been registered with the recommendation
// backend. State lives in a small JSON file next to the service.
//
// GetOrCreate returns only after a newly generated id is durably stored,
// so callers can sequence dependent work without timers.
type Provider struct {
	mu     sync.Mutex
	path   string
	state  state
	loaded bool
	newID  func() (string, error)
}

type state struct {
	UserID      string `json:"user_id"`
	Initialized bool   `json:"initialized"`
}

func NewProvider(path string) *Provider {
	return &Provider{
		path:  path,
		newID: randomUserID,
	}
}

func (p *Provider) GetOrCreate() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.loadLocked(); err != nil {
		return "", err
	}
	if p.state.UserID != "" {
		return p.state.UserID, nil
	}

	id, err := p.newID()
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}
	p.state = state{UserID: id}
	if err := p.persistLocked(); err != nil {
		return "", err
	}

	return id, nil
}

// Initialized reports whether the backend registration already succeeded.
func (p *Provider) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.loadLocked(); err != nil {
		return false
	}
	return p.state.Initialized
}

// MarkInitialized persists the registration flag for the current user.
func (p *Provider) MarkInitialized() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.loadLocked(); err != nil {
		return err
	}
	if p.state.UserID == "" {
		return fmt.Errorf("no user id to mark initialized")
	}
	p.state.Initialized = true
	return p.persistLocked()
}

func (p *Provider) loadLocked() error {
	if p.loaded {
		return nil
	}

	raw, err := os.ReadFile(p.path)
	switch {
	case err == nil:
		if err := sonic.Unmarshal(raw, &p.state); err != nil {
			return fmt.Errorf("decode identity file %s: %w", p.path, err)
		}
	case os.IsNotExist(err):
		p.state = state{}
	default:
		return fmt.Errorf("read identity file %s: %w", p.path, err)
	}

	p.loaded = true
	return nil
}

func (p *Provider) persistLocked() error {
	raw, err := sonic.Marshal(p.state)
	if err != nil {
		return fmt.Errorf("encode identity state: %w", err)
	}
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create identity dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(p.path, raw, 0o600); err != nil {
		return fmt.Errorf("write identity file %s: %w", p.path, err)
	}
	return nil
}

func randomUserID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return "user_" + hex.EncodeToString(buf), nil
}
