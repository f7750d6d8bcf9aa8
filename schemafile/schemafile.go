// Package schemafile reads envcfg schemas from YAML, TOML, JSON and INI files.
//
// Every format describes the same tree. A key whose value is a mapping (YAML
// mapping, TOML table, JSON object, INI section) is a namespace; a key whose
// value is a string is a variable declaration as accepted by
// envcfg.ParseDeclaration. Declaration order is kept.
//
//	DEBUG: bool => false
//	DB:
//	  HOST: string
//	  PORT: u16 => 5432
//	PER_PAGE@MY_CUSTOM_NAME: i32
//	DATABASE_URL: < postgres://${DB_USER:-app}@${DB_HOST}:${DB_PORT}
//
// The same schema as INI, where dotted section names nest namespaces and keys
// before the first section belong to the root:
//
//	DEBUG = bool => false
//	[DB]
//	HOST = string
//	PORT = u16 => 5432
package schemafile

import (
	"errors"

	"github.com/containeroo/envcfg"
)

var (
	ErrUnsupportedFormat = errors.New("schemafile: unsupported format")
	ErrBadSchema         = errors.New("schemafile: bad schema")
)

var defaultRegistry = NewDefaultRegistry()

// Register adds or replaces a decoder in the default registry.
// ext must start with a dot, e.g. ".yaml".
func Register(ext string, dec Decoder) {
	defaultRegistry.Register(ext, dec)
}

// Load reads a schema file using the default registry.
func Load(path string) (*envcfg.NamespaceSpec, error) {
	return defaultRegistry.Load(path)
}

// Decode decodes schema bytes of the given extension using the default registry.
func Decode(ext string, data []byte) (*envcfg.NamespaceSpec, error) {
	return defaultRegistry.Decode(ext, data)
}

// DefaultRegistry returns the global default registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
