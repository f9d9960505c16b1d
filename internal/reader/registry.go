package reader

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"argnorm/internal/logger"
)

const headSize = 512

// NamedFactory pairs a factory with its registration name.
type NamedFactory struct {
	Name    string
	Factory Factory
}

// Builtins returns the built-in factories in lookup order.
func Builtins() []NamedFactory {
	return []NamedFactory{
		{Name: "grib", Factory: GRIBFactory},
		{Name: "netcdf", Factory: NetCDFFactory},
		{Name: "csv", Factory: CSVFactory},
		{Name: "zip", Factory: ZIPFactory},
	}
}

// Registry holds factories in registration order. The initial set is
// produced once, on first use.
type Registry struct {
	once      sync.Once
	init      func() []NamedFactory
	mu        sync.RWMutex
	factories []NamedFactory
}

// NewRegistry creates a registry whose initial factories come from init.
func NewRegistry(init func() []NamedFactory) *Registry {
	return &Registry{init: init}
}

func (r *Registry) load() {
	r.once.Do(func() {
		if r.init == nil {
			return
		}

		initial := r.init()

		r.mu.Lock()
		r.factories = append(initial, r.factories...)
		r.mu.Unlock()

		logger.Debug("reader factories loaded", "count", len(initial))
	})
}

// Register appends a factory. Later registrations are asked last.
func (r *Registry) Register(name string, f Factory) {
	r.load()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = append(r.factories, NamedFactory{Name: name, Factory: f})
}

// Names returns the factory names in lookup order.
func (r *Registry) Names() []string {
	r.load()

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.factories))
	for i, f := range r.factories {
		names[i] = f.Name
	}

	return names
}

// Open returns a reader for path on fs.
func (r *Registry) Open(fs afero.Fs, path string) (Reader, error) {
	r.load()

	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if info.IsDir() {
		entries, err := afero.ReadDir(fs, path)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", path, err)
		}

		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}

		return newDirectory(path, names), nil
	}

	head, err := readHead(fs, path)
	if err != nil {
		return nil, err
	}

	magic := head
	if len(magic) > MagicSize {
		magic = magic[:MagicSize]
	}

	r.mu.RLock()
	factories := r.factories
	r.mu.RUnlock()

	for _, f := range factories {
		if rd := f.Factory(path, magic); rd != nil {
			logger.Debug("reader selected", "path", path, "factory", f.Name)
			return rd, nil
		}
	}

	return newUnknown(path, detectMIME(head)), nil
}

func readHead(fs afero.Fs, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, headSize)

	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return head[:n], nil
}

func detectMIME(head []byte) string {
	if len(head) == 0 {
		return "application/octet-stream"
	}

	return mimetype.Detect(head).String()
}

var defaultRegistry = NewRegistry(Builtins)

// Default returns the process-wide registry with the built-in factories.
func Default() *Registry {
	return defaultRegistry
}

// Open opens path with the default registry.
func Open(fs afero.Fs, path string) (Reader, error) {
	return defaultRegistry.Open(fs, path)
}
