package envcfg

import (
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	env := NewMapEnvironment(map[string]string{
		"DB_HOST":   "db.internal",
		"BIG":       "170141183460469231731687303715884105727",
		"RATIO":     "0.25",
		"DB_POOL_N": "8",
	})
	snap, err := Load(NS("",
		Var("DEBUG", Bool, WithDefault(true)),
		NS("DB",
			Var("HOST", String),
			Var("PORT", Uint16, WithDefault(5432)),
			NS("POOL", Var("N", Int8)),
		),
		Var("BIG", Int128),
		Var("RATIO", Float32),
	), WithEnvironment(env))
	require.NoError(t, err)
	return snap
}

func TestSnapshot_Access(t *testing.T) {
	t.Parallel()
	snap := loadTestSnapshot(t)

	t.Run("get", func(t *testing.T) {
		t.Parallel()
		v, ok := snap.Get([]string{"DB"}, "HOST")
		require.True(t, ok)
		assert.Equal(t, "db.internal", v.String())
		assert.Equal(t, "db.internal", v.Raw())
		assert.Equal(t, String, v.Type())

		_, ok = snap.Get([]string{"NOPE"}, "HOST")
		assert.False(t, ok)
		_, ok = snap.Get(nil, "HOST")
		assert.False(t, ok)
		_, ok = snap.Get(nil, "DB")
		assert.False(t, ok, "namespaces are not values")
	})

	t.Run("lookup", func(t *testing.T) {
		t.Parallel()
		v, ok := snap.Lookup("DB.POOL.N")
		require.True(t, ok)
		assert.Equal(t, int8(8), v.Interface())
		assert.Equal(t, "DB_POOL_N", v.Key())

		_, ok = snap.Lookup("DB..N")
		assert.False(t, ok)
	})

	t.Run("namespace", func(t *testing.T) {
		t.Parallel()
		db, ok := snap.Namespace("DB")
		require.True(t, ok)
		assert.Equal(t, "DB", db.Name())
		port, ok := db.Get(nil, "PORT")
		require.True(t, ok)
		assert.Equal(t, uint(5432), port.Uint())
		assert.Equal(t, 3, db.Len())

		_, ok = snap.Namespace("DEBUG")
		assert.False(t, ok)
	})

	t.Run("typed accessors", func(t *testing.T) {
		t.Parallel()
		big1, _ := snap.Get(nil, "BIG")
		assert.Equal(t, "170141183460469231731687303715884105727", big1.BigInt().String())

		// Interface hands out a copy
		n := big1.Interface().(*big.Int)
		n.SetInt64(0)
		assert.Equal(t, "170141183460469231731687303715884105727", big1.BigInt().String())

		ratio, _ := snap.Get(nil, "RATIO")
		assert.InDelta(t, 0.25, ratio.Float64(), 1e-9)

		debug, _ := snap.Get(nil, "DEBUG")
		assert.Panics(t, func() { debug.Int64() })
		assert.Panics(t, func() { debug.Float64() })
		assert.Panics(t, func() { debug.BigInt() })
		assert.Panics(t, func() { ratio.Bool() })
		assert.Panics(t, func() { ratio.Uint64() })
		assert.Equal(t, "true", debug.String())
	})

	t.Run("len", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 6, snap.Len())
	})
}

func TestSnapshot_Walk(t *testing.T) {
	t.Parallel()
	snap := loadTestSnapshot(t)

	t.Run("declaration order", func(t *testing.T) {
		t.Parallel()
		var got []string
		err := snap.Walk(func(path []string, name string, v Value) error {
			got = append(got, v.Key())
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"DEBUG", "DB_HOST", "DB_PORT", "DB_POOL_N", "BIG", "RATIO"}, got)
	})

	t.Run("paths", func(t *testing.T) {
		t.Parallel()
		paths := map[string][]string{}
		err := snap.Walk(func(path []string, name string, v Value) error {
			paths[name] = append([]string(nil), path...)
			return nil
		})
		require.NoError(t, err)
		assert.Empty(t, paths["DEBUG"])
		assert.Equal(t, []string{"DB"}, paths["HOST"])
		assert.Equal(t, []string{"DB", "POOL"}, paths["N"])
	})

	t.Run("stops on error", func(t *testing.T) {
		t.Parallel()
		stop := errors.New("stop")
		calls := 0
		err := snap.Walk(func([]string, string, Value) error {
			calls++
			return stop
		})
		require.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})
}

func TestSnapshot_Names(t *testing.T) {
	t.Parallel()
	snap, err := Load(NS("",
		Var("DEBUG", Bool, WithDefault(false)),
		NS("APP"),
		NS("DB", Var("HOST", String, WithDefault("localhost"))),
	), WithEnvironment(NewMapEnvironment(nil)))
	require.NoError(t, err)

	assert.Equal(t, []string{"DEBUG", "APP", "DB"}, snap.Names())

	app, ok := snap.Namespace("APP")
	require.True(t, ok)
	assert.Empty(t, app.Names())
	assert.Equal(t, 0, app.Len())

	names := snap.Names()
	names[0] = "changed"
	assert.Equal(t, "DEBUG", snap.Names()[0])
}

func TestSnapshot_ConcurrentReads(t *testing.T) {
	t.Parallel()
	snap := loadTestSnapshot(t)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				v, ok := snap.Lookup("DB.HOST")
				if !ok || v.String() != "db.internal" {
					t.Error("unexpected lookup result")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestSource_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "environment", SourceEnvironment.String())
	assert.Equal(t, "default", SourceDefault.String())
	assert.Equal(t, "template", SourceTemplate.String())
	assert.Equal(t, "Source(9)", Source(9).String())
}
