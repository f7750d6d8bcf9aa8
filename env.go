package envcfg

import (
	"fmt"
	"os"
	"sync"
)

// Environment is the key/value store variables are resolved against.
// Lookup must distinguish an unset key from an empty value.
type Environment interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
}

// OSEnvironment reads and writes the process environment.
type OSEnvironment struct{}

func (OSEnvironment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (OSEnvironment) Set(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("set environment variable %q: %w", key, err)
	}
	return nil
}

// MapEnvironment is an in-memory Environment. It is safe for concurrent use.
type MapEnvironment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnvironment returns a MapEnvironment seeded with a copy of vars.
func NewMapEnvironment(vars map[string]string) *MapEnvironment {
	m := &MapEnvironment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}
	return m
}

func (m *MapEnvironment) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

func (m *MapEnvironment) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("set environment variable: empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vars == nil {
		m.vars = make(map[string]string)
	}
	m.vars[key] = value
	return nil
}

// Map returns a copy of the current contents.
func (m *MapEnvironment) Map() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.vars))
	for k, v := range m.vars {
		out[k] = v
	}
	return out
}
