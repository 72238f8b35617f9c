package catalog

import "context"

// Store answers read queries over the loaded catalog. Iteration order of
// List and ListFunc is unspecified.
type Store interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, id string) (Product, bool, error)
	List(ctx context.Context) ([]Product, error)
	ListFunc(ctx context.Context, keep func(*Product) bool) ([]Product, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Loader is implemented by stores that can rebuild the catalog wholesale
// from their source document.
type Loader interface {
	Load(ctx context.Context) error
	Reload(ctx context.Context) error
}
