package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// PrefCurrentUserID is the preference holding the id of the user last
// selected on this device.
const PrefCurrentUserID = "leavesync_currentUserId"

type localPreferences struct {
	path     string
	inMemory bool

	mu     sync.RWMutex
	values map[string]json.RawMessage
}

// NewLocalPreferences opens the preferences file at path, creating it on the
// first Set. An empty path or ":memory:" keeps preferences in memory only.
func NewLocalPreferences(path string) (Preferences, error) {
	if path == "" {
		path = ":memory:"
	}

	p := &localPreferences{
		path:     path,
		inMemory: path == ":memory:" || path == "memory",
		values:   make(map[string]json.RawMessage),
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *localPreferences) GetInt64(key string, fallback int64) int64 {
	var v int64
	if !p.get(key, &v) {
		return fallback
	}
	return v
}

func (p *localPreferences) GetString(key string, fallback string) string {
	var v string
	if !p.get(key, &v) {
		return fallback
	}
	return v
}

func (p *localPreferences) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode preference %q: %w", key, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.values[key] = raw
	return p.persist()
}

func (p *localPreferences) get(key string, dst any) bool {
	p.mu.RLock()
	raw, ok := p.values[key]
	p.mu.RUnlock()

	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (p *localPreferences) load() error {
	if p.inMemory {
		return nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read preferences file: %w", err)
	}

	var values map[string]json.RawMessage
	if err = json.Unmarshal(data, &values); err != nil {
		// a corrupt file behaves like an empty one and is overwritten on Set
		return nil
	}
	if values != nil {
		p.values = values
	}
	return nil
}

func (p *localPreferences) persist() error {
	if p.inMemory {
		return nil
	}

	dir := filepath.Dir(p.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(p.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if err = os.WriteFile(p.path, payload, 0o600); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}

	return nil
}
