package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = `
DEBUG: bool => false
DB:
  HOST: string
  PORT: u16 => 5432
DATABASE_URL: < postgres://${DB_HOST}:${DB_PORT}/app
`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o666))
	return p
}

// prepareEnv sets DB_HOST and guarantees the keys written back by the
// schema are removed again when the test ends.
func prepareEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DEBUG", "DB_PORT", "DATABASE_URL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("DB_HOST", "db.internal")
}

func TestRun_Formats(t *testing.T) {
	p := writeSchema(t, schema)

	t.Run("env", func(t *testing.T) {
		prepareEnv(t)
		var out, errOut bytes.Buffer
		require.NoError(t, run([]string{p}, &out, &errOut))
		assert.Equal(t, "DEBUG=false\nDB_HOST=db.internal\nDB_PORT=5432\nDATABASE_URL=postgres://db.internal:5432/app\n", out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("export", func(t *testing.T) {
		prepareEnv(t)
		t.Setenv("DB_HOST", "it's")
		var out bytes.Buffer
		require.NoError(t, run([]string{"--format", "export", p}, &out, &bytes.Buffer{}))
		assert.Contains(t, out.String(), `export DB_HOST='it'\''s'`+"\n")
		assert.Contains(t, out.String(), "export DB_PORT='5432'\n")
	})

	t.Run("json", func(t *testing.T) {
		prepareEnv(t)
		var out bytes.Buffer
		require.NoError(t, run([]string{"-f", "json", p}, &out, &bytes.Buffer{}))
		assert.JSONEq(t, `{
			"DEBUG": false,
			"DB": {"HOST": "db.internal", "PORT": 5432},
			"DATABASE_URL": "postgres://db.internal:5432/app"
		}`, out.String())
	})

	t.Run("yaml", func(t *testing.T) {
		prepareEnv(t)
		var out bytes.Buffer
		require.NoError(t, run([]string{"--format=yaml", p}, &out, &bytes.Buffer{}))
		assert.Equal(t, "DEBUG: false\nDB:\n  HOST: db.internal\n  PORT: 5432\nDATABASE_URL: postgres://db.internal:5432/app\n", out.String())
	})

	t.Run("empty namespaces are kept", func(t *testing.T) {
		t.Setenv("SHOW_NAME", "demo")
		p := writeSchema(t, "APP: {}\nSHOW:\n  NAME: string\n")

		var jsonOut bytes.Buffer
		require.NoError(t, run([]string{"--format", "json", p}, &jsonOut, &bytes.Buffer{}))
		assert.JSONEq(t, `{"APP": {}, "SHOW": {"NAME": "demo"}}`, jsonOut.String())

		var yamlOut bytes.Buffer
		require.NoError(t, run([]string{"--format", "yaml", p}, &yamlOut, &bytes.Buffer{}))
		assert.Equal(t, "APP: {}\nSHOW:\n  NAME: demo\n", yamlOut.String())
	})

	t.Run("verbose logs to stderr", func(t *testing.T) {
		prepareEnv(t)
		var errOut bytes.Buffer
		require.NoError(t, run([]string{"-v", p}, &bytes.Buffer{}, &errOut))
		assert.Contains(t, errOut.String(), "DB_PORT")
		assert.Contains(t, errOut.String(), "resolved schema")
	})
}

func TestRun_NonFiniteFloats(t *testing.T) {
	t.Setenv("RATIO", "NaN")
	t.Setenv("LIMIT", "-Inf")
	p := writeSchema(t, "RATIO: f64\nLIMIT: f32\n")

	var envOut bytes.Buffer
	require.NoError(t, run([]string{p}, &envOut, &bytes.Buffer{}))
	assert.Equal(t, "RATIO=NaN\nLIMIT=-Inf\n", envOut.String())

	var jsonOut bytes.Buffer
	require.NoError(t, run([]string{"--format", "json", p}, &jsonOut, &bytes.Buffer{}))
	assert.JSONEq(t, `{"RATIO": "NaN", "LIMIT": "-Inf"}`, jsonOut.String())

	var yamlOut bytes.Buffer
	require.NoError(t, run([]string{"--format", "yaml", p}, &yamlOut, &bytes.Buffer{}))
	assert.Equal(t, "RATIO: .nan\nLIMIT: -.inf\n", yamlOut.String())
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing variable", func(t *testing.T) {
		prepareEnv(t)
		require.NoError(t, os.Unsetenv("DB_HOST"))
		err := run([]string{writeSchema(t, schema)}, &bytes.Buffer{}, &bytes.Buffer{})
		require.EqualError(t, err, `Cannot read "DB_HOST" environment variable`)
	})

	t.Run("strict bool", func(t *testing.T) {
		t.Setenv("STRICT_FLAG", "yes")
		p := writeSchema(t, "STRICT_FLAG: bool\n")
		require.NoError(t, run([]string{p}, &bytes.Buffer{}, &bytes.Buffer{}))
		require.Error(t, run([]string{"--strict-bool", p}, &bytes.Buffer{}, &bytes.Buffer{}))
	})

	t.Run("unknown format", func(t *testing.T) {
		err := run([]string{"--format", "xml", "schema.yaml"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.EqualError(t, err, `unknown format "xml"`)
	})

	t.Run("argument count", func(t *testing.T) {
		require.Error(t, run(nil, &bytes.Buffer{}, &bytes.Buffer{}))
		require.Error(t, run([]string{"a.yaml", "b.yaml"}, &bytes.Buffer{}, &bytes.Buffer{}))
	})

	t.Run("unknown flag", func(t *testing.T) {
		require.Error(t, run([]string{"--nope"}, &bytes.Buffer{}, &bytes.Buffer{}))
	})

	t.Run("help", func(t *testing.T) {
		var errOut bytes.Buffer
		require.NoError(t, run([]string{"--help"}, &bytes.Buffer{}, &errOut))
		assert.Contains(t, errOut.String(), "Usage:")
		assert.Contains(t, errOut.String(), "--strict-bool")
	})
}

func TestShellQuote(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `''`, shellQuote(""))
	assert.Equal(t, `'a b'`, shellQuote("a b"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}
