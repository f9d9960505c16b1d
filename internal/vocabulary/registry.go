package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"argnorm/internal/logger"
)

var (
	ErrUnknownTable  = errors.New("unknown vocabulary table")
	ErrAlreadyLoaded = errors.New("vocabulary already loaded")
)

// Registry holds vocabulary tables. It loads them once, on first access,
// and serves them read-only afterwards.
type Registry struct {
	loader  Loader
	once    sync.Once
	started atomic.Bool
	tables  Tables
	err     error
}

// NewRegistry creates a registry backed by the given loader.
func NewRegistry(loader Loader) *Registry {
	return &Registry{loader: loader}
}

func (r *Registry) load() error {
	r.once.Do(func() {
		r.started.Store(true)

		tables, err := r.loader.Load()
		if err != nil {
			r.err = fmt.Errorf("failed to load vocabularies: %w", err)
			logger.Debug("vocabulary load failed", "error", err)

			return
		}

		r.tables = tables
		logger.Debug("vocabularies loaded", "tables", len(tables))
	})

	return r.err
}

// Lookup resolves alias in table. The boolean reports whether alias is a
// known alias; an unknown table is an error.
func (r *Registry) Lookup(table, alias string) (string, bool, error) {
	if err := r.load(); err != nil {
		return "", false, err
	}

	t, ok := r.tables[table]
	if !ok {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	canonical, ok := t[alias]

	return canonical, ok, nil
}

// Unalias returns the canonical code for alias, or alias itself when the
// alias or the table is unknown.
func (r *Registry) Unalias(table, alias string) string {
	canonical, ok, err := r.Lookup(table, alias)
	if err != nil || !ok {
		return alias
	}

	return canonical
}

// Has reports whether a table with the given name exists.
func (r *Registry) Has(table string) (bool, error) {
	if err := r.load(); err != nil {
		return false, err
	}

	_, ok := r.tables[table]

	return ok, nil
}

// Table returns a copy of the named table.
func (r *Registry) Table(name string) (map[string]string, error) {
	if err := r.load(); err != nil {
		return nil, err
	}

	t, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}

	return copyTable(t), nil
}

// Tables returns the sorted table names.
func (r *Registry) Tables() ([]string, error) {
	if err := r.load(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names, nil
}

var (
	defaultMu       sync.Mutex
	defaultRegistry = NewRegistry(EmbeddedLoader{})
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	return defaultRegistry
}

// SetDefaultLoader replaces the loader of the process-wide registry. It
// fails once the registry has been read.
func SetDefaultLoader(loader Loader) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry.started.Load() {
		return ErrAlreadyLoaded
	}

	defaultRegistry = NewRegistry(loader)

	return nil
}

// Unalias resolves alias in table using the process-wide registry.
func Unalias(table, alias string) string {
	return Default().Unalias(table, alias)
}

type registryKey struct{}

// WithRegistry returns a copy of ctx carrying reg.
func WithRegistry(ctx context.Context, reg *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, reg)
}

// FromContext returns the registry carried by ctx, or the process-wide
// registry when ctx carries none.
func FromContext(ctx context.Context) *Registry {
	if reg, ok := ctx.Value(registryKey{}).(*Registry); ok && reg != nil {
		return reg
	}

	return Default()
}
