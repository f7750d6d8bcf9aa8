package envcfg

import (
	"errors"
	"fmt"
	"strings"
)

// Segment is one part of a Template: a literal when Key is empty, otherwise a
// reference to the environment key Key with an optional Default.
type Segment struct {
	Literal string
	Key     string
	Default *string
}

// Lit returns a literal segment.
func Lit(s string) Segment { return Segment{Literal: s} }

// Ref returns a segment read from the environment key.
func Ref(key string) Segment { return Segment{Key: key} }

// RefOr returns a segment read from the environment key, falling back to def.
func RefOr(key, def string) Segment { return Segment{Key: key, Default: &def} }

func (s Segment) isRef() bool { return s.Key != "" }

// validate rejects segments that are neither a literal nor a reference, or both.
func (s Segment) validate() error {
	switch {
	case s.Key == "" && s.Literal == "":
		return errors.New("segment has neither a key nor a literal")
	case s.Key != "" && s.Literal != "":
		return errors.New("segment has both a key and a literal")
	case s.Key == "" && s.Default != nil:
		return errors.New("default without a key")
	case strings.ContainsAny(s.Key, " \t$"):
		return fmt.Errorf("invalid key %q", s.Key)
	}
	return nil
}

// Template is an ordered concatenation of segments.
type Template []Segment

// Resolve concatenates the segments in order. A reference with no value in
// env and no default fails with a *MissingVariableError for its key.
// Segment defaults are used in place and not written to env.
func (t Template) Resolve(env Environment) (string, error) {
	var b strings.Builder
	for _, seg := range t {
		if !seg.isRef() {
			b.WriteString(seg.Literal)
			continue
		}
		if v, ok := env.Lookup(seg.Key); ok {
			b.WriteString(v)
			continue
		}
		if seg.Default == nil {
			return "", &MissingVariableError{Key: seg.Key}
		}
		b.WriteString(*seg.Default)
	}
	return b.String(), nil
}

// String renders t in the textual form accepted by ParseTemplate.
func (t Template) String() string {
	var b strings.Builder
	for _, seg := range t {
		if !seg.isRef() {
			b.WriteString(strings.ReplaceAll(seg.Literal, "${", `\${`))
			continue
		}
		b.WriteString("${")
		b.WriteString(seg.Key)
		if seg.Default != nil {
			b.WriteString(":-")
			b.WriteString(*seg.Default)
		}
		b.WriteByte('}')
	}
	return b.String()
}

// ParseTemplate splits s into segments. "${KEY}" references a key,
// "${KEY:-default}" adds a default, "\${" emits a literal "${" and a bare
// '$' is literal. Malformed references return ErrBadDeclaration.
func ParseTemplate(s string) (Template, error) {
	var out Template
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, Lit(lit.String()))
			lit.Reset()
		}
	}

	for p := 0; p < len(s); {
		dollarRel := strings.IndexByte(s[p:], '$')
		if dollarRel < 0 {
			lit.WriteString(s[p:])
			break
		}
		dollar := p + dollarRel

		if isEscapedDollarBrace(s, p, dollar) {
			lit.WriteString(s[p : dollar-1])
			lit.WriteString("${")
			p = dollar + 2
			continue
		}

		lit.WriteString(s[p:dollar])

		if !isTokenStart(s, dollar) {
			lit.WriteByte('$')
			p = dollar + 1
			continue
		}

		start, end, err := tokenBounds(s, dollar)
		if err != nil {
			return nil, err
		}
		seg, err := parseRef(s[start:end])
		if err != nil {
			return nil, err
		}
		flush()
		out = append(out, seg)
		p = end + 1
	}
	flush()
	return out, nil
}

func parseRef(token string) (Segment, error) {
	key, def, hasDef := strings.Cut(token, ":-")
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t$") {
		return Segment{}, fmt.Errorf("%w: invalid reference ${%s}", ErrBadDeclaration, token)
	}
	if hasDef {
		return RefOr(key, def), nil
	}
	return Ref(key), nil
}

// isEscapedDollarBrace reports whether s has "\${" with '\' immediately before '$'.
func isEscapedDollarBrace(s string, p, dollar int) bool {
	return dollar > p && s[dollar-1] == '\\' &&
		dollar+1 < len(s) &&
		s[dollar+1] == '{'
}

// isTokenStart reports whether "$" at index dollar begins a "${...}" token.
func isTokenStart(s string, dollar int) bool {
	return dollar+1 < len(s) && s[dollar+1] == '{'
}

// tokenBounds returns [start,end) of the token contents inside "${...}" and validates it.
func tokenBounds(s string, dollar int) (start, end int, err error) {
	start = dollar + 2
	closeRel := strings.IndexByte(s[start:], '}')
	if closeRel < 0 {
		return 0, 0, fmt.Errorf("%w: missing closing '}' at offset %d", ErrBadDeclaration, dollar)
	}
	end = start + closeRel
	if strings.TrimSpace(s[start:end]) == "" {
		return 0, 0, fmt.Errorf("%w: empty ${} at offset %d", ErrBadDeclaration, dollar)
	}
	return start, end, nil
}
