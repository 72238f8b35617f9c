package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBaseURL = "http://localhost:3001/images/products"

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s := NewFileStore(filepath.Join("testdata", "products.json"), testBaseURL, zap.NewNop())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFileStoreLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, StateLoaded, s.State())

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, id := range []string{"p1", "p2", "p3"} {
		p, ok, err := s.Get(ctx, id)
		require.NoError(t, err)
		require.True(t, ok, "missing %s", id)
		assert.Equal(t, id, p.ID)
	}

	_, ok, err := s.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreImageURLRewrite(t *testing.T) {
	s := newTestStore(t)

	p, ok, err := s.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, p.Images, 2)

	assert.Equal(t, testBaseURL+"/p1-front.jpg", p.Images[0].URL, "relative URL gets the base prefix")
	assert.Equal(t, "https://cdn.example.com/p1-back.jpg", p.Images[1].URL, "absolute URL is untouched")
}

func TestFileStoreQueriesBeforeLoad(t *testing.T) {
	s := NewFileStore(filepath.Join("testdata", "products.json"), testBaseURL, zap.NewNop())
	ctx := context.Background()

	assert.Equal(t, StateUnloaded, s.State())
	assert.ErrorIs(t, s.Ping(ctx), ErrNotLoaded)

	_, _, err := s.Get(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = s.List(ctx)
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = s.Exists(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = s.Count(ctx)
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.json"), testBaseURL, zap.NewNop())

	err := s.Load(context.Background())
	require.ErrorIs(t, err, ErrDataLoad)
	assert.Equal(t, StateFailed, s.State())

	_, err = s.List(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestFileStoreMalformedDocument(t *testing.T) {
	path := writeCatalog(t, `[{"id": "p1", "title": `)
	s := NewFileStore(path, testBaseURL, zap.NewNop())

	err := s.Load(context.Background())
	require.ErrorIs(t, err, ErrDataLoad)
	assert.Equal(t, StateFailed, s.State())
}

func TestFileStoreMissingRequiredField(t *testing.T) {
	path := writeCatalog(t, `[{"id": "p1", "title": "only a title"}]`)
	s := NewFileStore(path, testBaseURL, zap.NewNop())

	err := s.Load(context.Background())
	require.ErrorIs(t, err, ErrDataLoad)
}

func TestFileStoreDuplicateIDsLastWins(t *testing.T) {
	path := writeCatalog(t, `[
		{"id": "p1", "title": "first", "description": "first copy"},
		{"id": "p1", "title": "second", "description": "second copy"}
	]`)
	s := NewFileStore(path, testBaseURL, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, ok, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", p.Title)
}

func TestFileStoreUnknownFieldsIgnored(t *testing.T) {
	// The fixture carries an unrecognized "promoted" field on p1; loading
	// must succeed regardless.
	s := newTestStore(t)
	assert.Equal(t, StateLoaded, s.State())
}

func TestFileStoreReloadIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.List(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Reload(ctx))
	assert.Equal(t, StateLoaded, s.State())

	second, err := s.List(ctx)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	byID := make(map[string]Product, len(first))
	for _, p := range first {
		byID[p.ID] = p
	}
	for _, p := range second {
		assert.Equal(t, byID[p.ID], p, "product %s changed across reloads", p.ID)
	}
}

func TestFileStoreReloadFailurePoisons(t *testing.T) {
	path := writeCatalog(t, `[{"id": "p1", "title": "t", "description": "d"}]`)
	s := NewFileStore(path, testBaseURL, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
	require.ErrorIs(t, s.Reload(ctx), ErrDataLoad)
	assert.Equal(t, StateFailed, s.State())

	_, err := s.Count(ctx)
	assert.ErrorIs(t, err, ErrNotLoaded)

	// A later successful load recovers the store.
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "p2", "title": "t", "description": "d"}]`), 0o600))
	require.NoError(t, s.Load(ctx))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFileStoreListFunc(t *testing.T) {
	s := newTestStore(t)

	out, err := s.ListFunc(context.Background(), func(p *Product) bool {
		return p.Brand == "Dell"
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p2", out[0].ID)
}

func TestFileStoreConcurrentReaders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				if _, err := s.List(ctx); err != nil {
					t.Error(err)
					return
				}
				if _, _, err := s.Get(ctx, "p1"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}

	for j := 0; j < 10; j++ {
		require.NoError(t, s.Reload(ctx))
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
