package reader

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}

	return fs
}

func TestOpen_Builtins(t *testing.T) {
	fs := memFs(t, map[string]string{
		"data/t2m.grib":  "GRIB\x00\x00\x00\x02rest",
		"data/old.grib1": "GRIB\x00\x00\x00\x01",
		"data/a.nc":      "CDF\x01....",
		"data/b.nc":      "CDF\x02....",
		"data/c.nc":      "\x89HDF\r\n\x1a\n",
		"data/obs.CSV":   "lat,lon\n1,2\n",
		"data/all.zip":   "PK\x03\x04....",
	})

	tests := []struct {
		path   string
		format string
		check  func(t *testing.T, r Reader)
	}{
		{"data/t2m.grib", "grib", func(t *testing.T, r Reader) {
			assert.Equal(t, 2, r.(*GRIB).Edition)
		}},
		{"data/old.grib1", "grib", func(t *testing.T, r Reader) {
			assert.Equal(t, 1, r.(*GRIB).Edition)
		}},
		{"data/a.nc", "netcdf", func(t *testing.T, r Reader) {
			assert.Equal(t, "classic", r.(*NetCDF).Variant)
		}},
		{"data/b.nc", "netcdf", func(t *testing.T, r Reader) {
			assert.Equal(t, "64-bit offset", r.(*NetCDF).Variant)
		}},
		{"data/c.nc", "netcdf", func(t *testing.T, r Reader) {
			assert.Equal(t, "netcdf4", r.(*NetCDF).Variant)
		}},
		{"data/obs.CSV", "csv", nil},
		{"data/all.zip", "zip", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, err := Open(fs, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.path, r.Path())
			assert.Equal(t, tt.format, r.Format())

			if tt.check != nil {
				tt.check(t, r)
			}
		})
	}
}

func TestOpen_ShortGRIB(t *testing.T) {
	r, err := Open(memFs(t, map[string]string{"x": "GRIB"}), "x")
	require.NoError(t, err)
	assert.Equal(t, 0, r.(*GRIB).Edition)
}

func TestOpen_Directory(t *testing.T) {
	fs := memFs(t, map[string]string{
		"archive/a.grib": "GRIB",
		"archive/b.nc":   "CDF\x01",
	})

	r, err := Open(fs, "archive")
	require.NoError(t, err)

	dir, ok := r.(*DirectoryReader)
	require.True(t, ok)
	assert.Equal(t, "directory", dir.Format())
	assert.Equal(t, []string{"a.grib", "b.nc"}, dir.Entries)
}

func TestOpen_Unknown(t *testing.T) {
	fs := memFs(t, map[string]string{
		"notes.txt": "hello world\n",
		"empty":     "",
	})

	r, err := Open(fs, "notes.txt")
	require.NoError(t, err)

	unknown, ok := r.(*Unknown)
	require.True(t, ok)
	assert.Equal(t, "unknown", unknown.Format())
	assert.True(t, strings.HasPrefix(unknown.MIME, "text/plain"), unknown.MIME)

	r, err = Open(fs, "empty")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", r.(*Unknown).MIME)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(afero.NewMemMapFs(), "nowhere.grib")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRegistry_RegistrationOrder(t *testing.T) {
	calls := 0
	r := NewRegistry(func() []NamedFactory {
		calls++
		return Builtins()
	})

	r.Register("bufr", func(path string, magic []byte) Reader {
		if strings.HasPrefix(string(magic), "BUFR") {
			return &file{path: path, format: "bufr"}
		}

		return nil
	})
	r.Register("grib-override", func(path string, _ []byte) Reader {
		return &file{path: path, format: "never"}
	})

	assert.Equal(t, []string{"grib", "netcdf", "csv", "zip", "bufr", "grib-override"}, r.Names())
	assert.Equal(t, 1, calls)

	fs := memFs(t, map[string]string{"obs.bufr": "BUFR....", "t.grib": "GRIB\x00\x00\x00\x02"})

	got, err := r.Open(fs, "obs.bufr")
	require.NoError(t, err)
	assert.Equal(t, "bufr", got.Format())

	got, err = r.Open(fs, "t.grib")
	require.NoError(t, err)
	assert.Equal(t, "grib", got.Format())
}

func TestRegistry_InitOnceUnderConcurrency(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)

	r := NewRegistry(func() []NamedFactory {
		mu.Lock()
		defer mu.Unlock()
		calls++

		return Builtins()
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, r.Names(), 4)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.Equal(t, []string{"grib", "netcdf", "csv", "zip"}, Default().Names()[:4])
}
