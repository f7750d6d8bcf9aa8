package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/containeroo/envcfg"
)

const (
	formatEnv    = "env"
	formatExport = "export"
	formatJSON   = "json"
	formatYAML   = "yaml"
)

var writers = map[string]func(io.Writer, *envcfg.Snapshot) error{
	formatEnv:    writeEnv,
	formatExport: writeExport,
	formatJSON:   writeJSON,
	formatYAML:   writeYAML,
}

func writeEnv(w io.Writer, snap *envcfg.Snapshot) error {
	return snap.Walk(func(_ []string, _ string, v envcfg.Value) error {
		_, err := fmt.Fprintf(w, "%s=%s\n", v.Key(), v.Raw())
		return err
	})
}

func writeExport(w io.Writer, snap *envcfg.Snapshot) error {
	return snap.Walk(func(_ []string, _ string, v envcfg.Value) error {
		_, err := fmt.Fprintf(w, "export %s=%s\n", v.Key(), shellQuote(v.Raw()))
		return err
	})
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func writeJSON(w io.Writer, snap *envcfg.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonObject(snap))
}

// jsonObject converts snap into nested maps. Empty namespaces become empty objects.
func jsonObject(snap *envcfg.Snapshot) map[string]any {
	out := make(map[string]any)
	for _, name := range snap.Names() {
		if child, ok := snap.Namespace(name); ok {
			out[name] = jsonObject(child)
			continue
		}
		v, _ := snap.Get(nil, name)
		out[name] = jsonValue(v)
	}
	return out
}

// jsonValue returns the typed value, or the raw string for NaN and infinities
// which JSON cannot represent.
func jsonValue(v envcfg.Value) any {
	switch f := v.Interface().(type) {
	case float32:
		if !finite(float64(f)) {
			return v.Raw()
		}
	case float64:
		if !finite(f) {
			return v.Raw()
		}
	}
	return v.Interface()
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// writeYAML keeps declaration order by building the node tree directly.
func writeYAML(w io.Writer, snap *envcfg.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlMapping(snap)); err != nil {
		return err
	}
	return enc.Close()
}

func yamlMapping(snap *envcfg.Snapshot) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range snap.Names() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		if child, ok := snap.Namespace(name); ok {
			m.Content = append(m.Content, key, yamlMapping(child))
			continue
		}
		v, _ := snap.Get(nil, name)
		m.Content = append(m.Content, key, yamlScalar(v))
	}
	return m
}

func yamlScalar(v envcfg.Value) *yaml.Node {
	switch v.Type() {
	case envcfg.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Raw()}
	case envcfg.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: envcfg.FormatDefault(v.Interface())}
	case envcfg.Float32, envcfg.Float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(v)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: envcfg.FormatDefault(v.Interface())}
}

// yamlFloat spells NaN and infinities the way YAML 1.2 does.
func yamlFloat(v envcfg.Value) string {
	f := v.Float64()
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return envcfg.FormatDefault(v.Interface())
}
