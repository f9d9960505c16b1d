package vocabulary

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type countingLoader struct {
	calls  atomic.Int32
	tables Tables
	err    error
}

func (c *countingLoader) Load() (Tables, error) {
	c.calls.Add(1)
	return c.tables, c.err
}

func testTables() Tables {
	return Tables{
		"grib-paramid": {"u": "131", "v": "132", "2t": "167"},
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry(StaticLoader(testTables()))

	canonical, ok, err := r.Lookup("grib-paramid", "2t")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "167", canonical)

	_, ok, err = r.Lookup("grib-paramid", "167")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = r.Lookup("missing", "u")
	require.ErrorIs(t, err, ErrUnknownTable)
}

func TestRegistry_UnaliasPassThrough(t *testing.T) {
	r := NewRegistry(StaticLoader(testTables()))

	assert.Equal(t, "131", r.Unalias("grib-paramid", "u"))
	assert.Equal(t, "131", r.Unalias("grib-paramid", "131"))
	assert.Equal(t, "xyz", r.Unalias("grib-paramid", "xyz"))
	assert.Equal(t, "u", r.Unalias("missing", "u"))
}

func TestRegistry_TableReturnsCopy(t *testing.T) {
	r := NewRegistry(StaticLoader(testTables()))

	table, err := r.Table("grib-paramid")
	require.NoError(t, err)
	table["u"] = "tampered"

	assert.Equal(t, "131", r.Unalias("grib-paramid", "u"))

	_, err = r.Table("missing")
	require.ErrorIs(t, err, ErrUnknownTable)

	names, err := r.Tables()
	require.NoError(t, err)
	assert.Equal(t, []string{"grib-paramid"}, names)

	ok, err := r.Has("grib-paramid")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegistry_LoadsOnceUnderConcurrency(t *testing.T) {
	loader := &countingLoader{tables: testTables()}
	r := NewRegistry(loader)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "132", r.Unalias("grib-paramid", "v"))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestRegistry_LoadErrorIsSticky(t *testing.T) {
	boom := errors.New("boom")
	loader := &countingLoader{err: boom}
	r := NewRegistry(loader)

	_, _, err := r.Lookup("grib-paramid", "u")
	require.ErrorIs(t, err, boom)

	_, err = r.Tables()
	require.ErrorIs(t, err, boom)

	assert.Equal(t, "u", r.Unalias("grib-paramid", "u"))
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestSetDefaultLoader(t *testing.T) {
	defaultMu.Lock()
	previous := defaultRegistry
	defaultRegistry = NewRegistry(EmbeddedLoader{})
	defaultMu.Unlock()

	t.Cleanup(func() {
		defaultMu.Lock()
		defaultRegistry = previous
		defaultMu.Unlock()
	})

	require.NoError(t, SetDefaultLoader(StaticLoader{"levtype": {"surface": "sfc"}}))
	assert.Equal(t, "sfc", Unalias("levtype", "surface"))
	assert.Equal(t, "pressure", Unalias("levtype", "pressure"))

	require.ErrorIs(t, SetDefaultLoader(EmbeddedLoader{}), ErrAlreadyLoaded)
}

func TestUnalias_Embedded(t *testing.T) {
	r := NewRegistry(EmbeddedLoader{})
	assert.Equal(t, "167", r.Unalias("grib-paramid", "2t"))
}

func TestUnalias_IdempotentOnEmbeddedTables(t *testing.T) {
	r := NewRegistry(EmbeddedLoader{})
	names, err := r.Tables()
	require.NoError(t, err)

	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.SampledFrom(names).Draw(rt, "table")

		table, err := r.Table(name)
		require.NoError(rt, err)

		keys := make([]string, 0, len(table))
		for alias := range table {
			keys = append(keys, alias)
		}

		alias := rapid.OneOf(
			rapid.SampledFrom(keys),
			rapid.StringMatching(`[a-z0-9]{1,6}`),
		).Draw(rt, "alias")

		once := r.Unalias(name, alias)
		twice := r.Unalias(name, once)

		if once != twice {
			rt.Fatalf("Unalias not idempotent in %s: %q -> %q -> %q", name, alias, once, twice)
		}
	})
}
