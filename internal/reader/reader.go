package reader

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
)

// MagicSize is the number of leading bytes passed to factories.
const MagicSize = 8

// Reader is an opened data source.
type Reader interface {
	Path() string
	Format() string
}

// Factory returns a Reader for path, or nil when it does not recognize
// the content.
type Factory func(path string, magic []byte) Reader

type file struct {
	path   string
	format string
}

func (f file) Path() string   { return f.path }
func (f file) Format() string { return f.format }

// GRIB is a GRIB file. Edition is read from the indicator section.
type GRIB struct {
	file
	Edition int
}

// NetCDF is a NetCDF file in one of its on-disk variants.
type NetCDF struct {
	file
	Variant string
}

// CSV is a comma-separated text file.
type CSV struct {
	file
}

// ZIP is a zip archive.
type ZIP struct {
	file
}

// DirectoryReader reads every entry of a directory.
type DirectoryReader struct {
	file
	Entries []string
}

// Unknown is a file no factory recognized.
type Unknown struct {
	file
	MIME string
}

var (
	gribMagic = []byte("GRIB")
	zipMagic  = []byte("PK\x03\x04")

	netcdfMagics = []struct {
		magic   []byte
		variant string
	}{
		{[]byte("CDF\x01"), "classic"},
		{[]byte("CDF\x02"), "64-bit offset"},
		{[]byte("\x89HDF"), "netcdf4"},
	}
)

// GRIBFactory recognizes "GRIB" files. The edition is byte 7.
func GRIBFactory(path string, magic []byte) Reader {
	if !bytes.HasPrefix(magic, gribMagic) {
		return nil
	}

	edition := 0
	if len(magic) >= MagicSize {
		edition = int(magic[7])
	}

	return &GRIB{file: file{path: path, format: "grib"}, Edition: edition}
}

// NetCDFFactory recognizes classic, 64-bit offset and HDF5 based files.
func NetCDFFactory(path string, magic []byte) Reader {
	for _, m := range netcdfMagics {
		if bytes.HasPrefix(magic, m.magic) {
			return &NetCDF{file: file{path: path, format: "netcdf"}, Variant: m.variant}
		}
	}

	return nil
}

// CSVFactory recognizes files by their .csv extension.
func CSVFactory(path string, _ []byte) Reader {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return &CSV{file: file{path: path, format: "csv"}}
	}

	return nil
}

// ZIPFactory recognizes zip archives.
func ZIPFactory(path string, magic []byte) Reader {
	if bytes.HasPrefix(magic, zipMagic) {
		return &ZIP{file: file{path: path, format: "zip"}}
	}

	return nil
}

func newDirectory(path string, entries []string) *DirectoryReader {
	return &DirectoryReader{
		file:    file{path: path, format: "directory"},
		Entries: slices.Clone(entries),
	}
}

func newUnknown(path, mime string) *Unknown {
	return &Unknown{file: file{path: path, format: "unknown"}, MIME: mime}
}
