package envcfg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingVariable = errors.New("envcfg: missing variable")
	ErrTypeConversion  = errors.New("envcfg: type conversion")
	ErrSchemaConflict  = errors.New("envcfg: schema conflict")
	ErrBadDeclaration  = errors.New("envcfg: bad declaration")
)

// MissingVariableError reports an environment key that is unset and has no default.
type MissingVariableError struct {
	Key string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("Cannot read %q environment variable", e.Key)
}

func (e *MissingVariableError) Unwrap() error { return ErrMissingVariable }

// TypeConversionError reports a raw value that cannot be parsed as the declared type.
type TypeConversionError struct {
	Key  string
	Raw  string
	Type Type
	Err  error
}

func (e *TypeConversionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot convert %q", e.Raw)
	if e.Key != "" {
		fmt.Fprintf(&b, " from %q environment variable", e.Key)
	}
	fmt.Fprintf(&b, " to %s", e.Type)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the sentinel and the underlying parse error.
func (e *TypeConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTypeConversion}
	}
	return []error{ErrTypeConversion, e.Err}
}

// SchemaConflictError reports two members sharing a local name in one namespace.
type SchemaConflictError struct {
	Path []string
	Name string
}

func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf("duplicate name %q in namespace %s", e.Name, displayPath(e.Path))
}

func (e *SchemaConflictError) Unwrap() error { return ErrSchemaConflict }
