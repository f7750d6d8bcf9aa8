package envcfg

import (
	"fmt"
	"strings"
)

// ParseDeclaration builds a VariableSpec from the textual declaration used in
// schema files:
//
//	u32              required variable of type u32
//	u32 => 40        variable with default "40"
//	=> localhost     string variable with a default
//	< pg://${USER}   string composed from a template (see ParseTemplate)
//	(empty)          required string variable
//
// name may carry an environment key override as "NAME@ENV_KEY". Defaults and
// templates may be single or double quoted; double quotes process \n \r \t \\ \" \'.
func ParseDeclaration(name, decl string) (*VariableSpec, error) {
	varName, envName, err := splitNameAndEnv(name)
	if err != nil {
		return nil, err
	}
	v := &VariableSpec{Name: varName, Type: String, EnvName: envName}

	decl = strings.TrimSpace(decl)
	if rest, ok := strings.CutPrefix(decl, "<"); ok {
		tmpl, err := ParseTemplate(unquoteValue(strings.TrimSpace(rest)))
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", varName, err)
		}
		if len(tmpl) == 0 {
			return nil, fmt.Errorf("%w: variable %q: empty template", ErrBadDeclaration, varName)
		}
		v.Template = tmpl
		v.Composed = true
		return v, nil
	}

	typ, def, hasDef := strings.Cut(decl, "=>")
	if typ = strings.TrimSpace(typ); typ != "" {
		t, err := ParseType(typ)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", varName, err)
		}
		v.Type = t
	}
	if hasDef {
		d := unquoteValue(strings.TrimSpace(def))
		v.Default = &d
	}
	return v, nil
}

// splitNameAndEnv splits "NAME@ENV_KEY" into its parts. Both parts must be
// non-empty when the delimiter is present.
func splitNameAndEnv(name string) (string, string, error) {
	const envDelim = "@"
	idx := strings.LastIndex(name, envDelim)
	if idx == -1 {
		varName := strings.TrimSpace(name)
		if varName == "" {
			return "", "", fmt.Errorf("%w: empty variable name in %q", ErrBadDeclaration, name)
		}
		return varName, "", nil
	}
	varName := strings.TrimSpace(name[:idx])
	envName := strings.TrimSpace(name[idx+len(envDelim):])
	if varName == "" {
		return "", "", fmt.Errorf("%w: empty variable name in %q", ErrBadDeclaration, name)
	}
	if envName == "" {
		return "", "", fmt.Errorf("%w: empty environment key in %q", ErrBadDeclaration, name)
	}
	return varName, envName, nil
}

// unquoteValue removes matching single or double quotes around s.
// Double-quoted content has its escapes processed; single-quoted content is
// literal except for \'.
func unquoteValue(s string) string {
	n := len(s)
	if n >= 2 && s[0] == '"' && s[n-1] == '"' {
		return unescapeDoubleQuoted(s[1 : n-1])
	}
	if n >= 2 && s[0] == '\'' && s[n-1] == '\'' {
		return strings.ReplaceAll(s[1:n-1], `\'`, `'`)
	}
	return s
}

func unescapeDoubleQuoted(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	escape := false
	for _, r := range s {
		if !escape {
			if r == '\\' {
				escape = true
				continue
			}
			b.WriteRune(r)
			continue
		}
		switch r {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		default:
			// unknown escape: keep the backslash so template escapes like \${ survive
			b.WriteByte('\\')
			b.WriteRune(r)
		}
		escape = false
	}
	if escape {
		b.WriteByte('\\')
	}
	return b.String()
}
