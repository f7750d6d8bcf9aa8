package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/containeroo/envcfg"
	"github.com/tidwall/jsonc"
)

// JSONDecoder decodes JSON schemas. Comments and trailing commas are accepted.
// Objects are read token by token so member order is kept.
type JSONDecoder struct{}

func (JSONDecoder) Decode(data []byte) (*envcfg.NamespaceSpec, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return envcfg.NS(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: JSON root must be an object", ErrBadSchema)
	}

	nodes, err := jsonObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrBadSchema)
	}
	return toSpec(nodes)
}

// jsonObject reads members up to and including the closing '}'.
func jsonObject(dec *json.Decoder) ([]*node, error) {
	var out []*node
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrBadSchema, tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		switch v := tok.(type) {
		case string:
			out = append(out, &node{name: name, decl: v})
		case nil:
			out = append(out, &node{name: name})
		case json.Delim:
			if v != '{' {
				return nil, fmt.Errorf("%w: %q must be a declaration string or an object", ErrBadSchema, name)
			}
			children, err := jsonObject(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, &node{name: name, namespace: true, children: children})
		default:
			return nil, fmt.Errorf("%w: %q must be a declaration string or an object", ErrBadSchema, name)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return out, nil
}
