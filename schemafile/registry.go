package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/containeroo/envcfg"
)

// Decoder turns the bytes of one schema file into a schema description.
type Decoder interface {
	Decode(data []byte) (*envcfg.NamespaceSpec, error)
}

// Registry maps file extensions to decoders. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	order   []string           // registration order (extensions with leading dot)
	backing map[string]Decoder // extension -> decoder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		backing: make(map[string]Decoder),
	}
}

// NewDefaultRegistry returns a registry with the built-in decoders.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".yaml", YAMLDecoder{})
	r.Register(".yml", YAMLDecoder{})
	r.Register(".toml", TOMLDecoder{})
	r.Register(".json", JSONDecoder{})
	r.Register(".jsonc", JSONDecoder{})
	r.Register(".ini", INIDecoder{})
	return r
}

// Register adds or replaces the decoder for ext (e.g. ".yaml"). Extensions
// are matched case-insensitively.
// Panics if ext is empty or does not start with ".".
func (r *Registry) Register(ext string, dec Decoder) {
	if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
		panic(fmt.Sprintf("schemafile: extension %q must start with a dot", ext))
	}
	ext = strings.ToLower(ext)
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backing[ext]; !exists {
		r.order = append(r.order, ext)
	}
	r.backing[ext] = dec
}

// Extensions returns a copy of the registered extensions in registration order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Decode decodes data with the decoder registered for ext.
func (r *Registry) Decode(ext string, data []byte) (*envcfg.NamespaceSpec, error) {
	r.mu.RLock()
	dec, ok := r.backing[strings.ToLower(ext)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return dec.Decode(data)
}

// Load reads path and decodes it according to its extension.
func (r *Registry) Load(path string) (*envcfg.NamespaceSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %q: %w", path, err)
	}
	spec, err := r.Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", path, err)
	}
	return spec, nil
}
