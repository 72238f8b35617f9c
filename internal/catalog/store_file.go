package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// State tags the lifecycle of a FileStore.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// FileStore holds the catalog as an in-memory map keyed by product ID,
// populated from a JSON document. Queries are safe for concurrent use;
// Load decodes into a fresh map and swaps it in under the write lock, so
// readers never observe a partially populated catalog.
type FileStore struct {
	path          string
	imagesBaseURL string
	log           *zap.Logger

	loadMu sync.Mutex // serializes Load/Reload

	mu    sync.RWMutex
	state State
	m     map[string]Product
}

var (
	_ Store  = (*FileStore)(nil)
	_ Loader = (*FileStore)(nil)
)

func NewFileStore(path, imagesBaseURL string, log *zap.Logger) *FileStore {
	return &FileStore{
		path:          path,
		imagesBaseURL: strings.TrimSuffix(imagesBaseURL, "/"),
		log:           log,
	}
}

// Load reads and decodes the full product collection, rewrites relative
// image URLs against the configured base URL, and atomically replaces
// the mapping. On failure the store is left in the failed state and
// queries keep returning ErrNotLoaded until a later load succeeds.
func (s *FileStore) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state != StateLoaded {
		s.state = StateLoading
	}
	s.mu.Unlock()

	m, err := s.read()
	if err != nil {
		s.mu.Lock()
		s.state = StateFailed
		s.m = nil
		s.mu.Unlock()

		s.log.Error("load product catalog failed", zap.String("path", s.path), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.m = m
	s.state = StateLoaded
	s.mu.Unlock()

	s.log.Info("product catalog loaded", zap.String("path", s.path), zap.Int("products", len(m)))
	return nil
}

// Reload rebuilds the entire mapping from the source document. There is
// no partial update: the result is equivalent to a fresh cold start.
func (s *FileStore) Reload(ctx context.Context) error {
	s.log.Info("reloading product catalog", zap.String("path", s.path))
	return s.Load(ctx)
}

// State reports the current lifecycle state.
func (s *FileStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *FileStore) read() (map[string]Product, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDataLoad, s.path, err)
	}
	defer f.Close()

	var products []Product
	if err := json.NewDecoder(f).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrDataLoad, s.path, err)
	}

	m := make(map[string]Product, len(products))
	for i := range products {
		p := products[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: product %d: %v", ErrDataLoad, i, err)
		}
		for j := range p.Images {
			p.Images[j].URL = s.absoluteImageURL(p.Images[j].URL)
		}
		// Duplicate IDs in the document: last one wins.
		m[p.ID] = p
	}
	return m, nil
}

// absoluteImageURL prefixes the configured base URL onto any image URL
// that does not already carry an http or https scheme. Rewriting an
// absolute URL is a no-op, so repeated loads are idempotent.
func (s *FileStore) absoluteImageURL(u string) string {
	if u == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return s.imagesBaseURL + "/" + u
}

func (s *FileStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return ErrNotLoaded
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return Product{}, false, ErrNotLoaded
	}
	p, ok := s.m[id]
	return p, ok, nil
}

func (s *FileStore) List(ctx context.Context) ([]Product, error) {
	return s.ListFunc(ctx, nil)
}

// ListFunc returns a snapshot of all products for which keep is true. A
// nil keep matches everything. The traversal is stateless; nothing is
// cached across calls.
func (s *FileStore) ListFunc(ctx context.Context, keep func(*Product) bool) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return nil, ErrNotLoaded
	}

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		if keep == nil || keep(&p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *FileStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return false, ErrNotLoaded
	}
	_, ok := s.m[id]
	return ok, nil
}

func (s *FileStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateLoaded {
		return 0, ErrNotLoaded
	}
	return len(s.m), nil
}
