package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/noah-isme/cohort-attendance/pkg/export"
	"github.com/noah-isme/cohort-attendance/pkg/storage"
)

// ErrNotFound is returned when a table or row does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidKey is returned for cohort keys that cannot name a cohort file.
var ErrInvalidKey = errors.New("invalid cohort key")

const tableExt = ".csv"

// TableStore loads and saves whole tables by name.
type TableStore interface {
	Load(ctx context.Context, name string) (export.Dataset, error)
	Save(ctx context.Context, name string, table export.Dataset) error
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

type fileBackend interface {
	Save(filename string, data []byte) error
	Read(filename string) ([]byte, error)
	Exists(filename string) (bool, error)
	Delete(filename string) error
	List(suffix string) ([]string, error)
}

// FileStore keeps one CSV file per table.
type FileStore struct {
	files fileBackend
	codec *export.CSVExporter
}

// NewFileStore constructs a CSV-backed store on top of local storage.
func NewFileStore(files *storage.LocalStorage) *FileStore {
	return &FileStore{files: files, codec: export.NewCSVExporter()}
}

// Load reads and decodes the table.
func (s *FileStore) Load(ctx context.Context, name string) (export.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return export.Dataset{}, err
	}
	raw, err := s.files.Read(name + tableExt)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return export.Dataset{}, fmt.Errorf("table %s: %w", name, ErrNotFound)
		}
		return export.Dataset{}, err
	}
	table, err := s.codec.Parse(raw)
	if err != nil {
		return export.Dataset{}, fmt.Errorf("decode table %s: %w", name, err)
	}
	return table, nil
}

// Save encodes and rewrites the whole table.
func (s *FileStore) Save(ctx context.Context, name string, table export.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := s.codec.Render(table)
	if err != nil {
		return fmt.Errorf("encode table %s: %w", name, err)
	}
	return s.files.Save(name+tableExt, raw)
}

// Delete removes the table file.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.files.Delete(name + tableExt)
}

// Exists reports whether the table file is present.
func (s *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.files.Exists(name + tableExt)
}

// List returns every table name, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := s.files.List(tableExt)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(f, tableExt))
	}
	return names, nil
}

// MemoryStore is an in-process TableStore used by tests and dry runs.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string]export.Dataset
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]export.Dataset)}
}

// Load returns a copy of the stored table.
func (s *MemoryStore) Load(ctx context.Context, name string) (export.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, ok := s.tables[name]
	if !ok {
		return export.Dataset{}, fmt.Errorf("table %s: %w", name, ErrNotFound)
	}
	return table.Clone(), nil
}

// Save stores a copy of the table.
func (s *MemoryStore) Save(ctx context.Context, name string, table export.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(table.Headers) == 0 {
		return fmt.Errorf("encode table %s: csv requires at least one header", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = table.Clone()
	return nil
}

// Delete drops the table.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, name)
	return nil
}

// Exists reports whether the table is stored.
func (s *MemoryStore) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tables[name]
	return ok, nil
}

// List returns every table name, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
