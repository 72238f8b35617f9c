package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Service is the validated query facade over the Store. Validation
// errors are raised before the store is touched.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// FindByID returns the product with the given ID or a NotFoundError.
func (s *Service) FindByID(ctx context.Context, id string) (Product, error) {
	if err := requireNonBlank(id, "product id"); err != nil {
		return Product{}, err
	}

	p, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if !ok {
		return Product{}, &NotFoundError{ID: id}
	}
	return p, nil
}

// FindAll applies at most one filter, picked by the Filter precedence,
// and returns the matching products. Empty criteria return the full
// catalog.
func (s *Service) FindAll(ctx context.Context, f Filter) ([]Product, error) {
	switch f.kind() {
	case filterCategory:
		return s.ByCategory(ctx, f.CategoryID)
	case filterBrand:
		return s.ByBrand(ctx, f.BrandID)
	case filterSearch:
		return s.SearchProducts(ctx, f.Search)
	case filterAvailable:
		return s.Available(ctx)
	case filterDiscounted:
		return s.Discounted(ctx)
	case filterPriceRange:
		return s.ByPriceRange(ctx, f.MinPrice, f.MaxPrice)
	}
	return s.store.List(ctx)
}

// ByCategory matches category.id exactly. An empty result is valid.
func (s *Service) ByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	if err := requireNonBlank(categoryID, "category id"); err != nil {
		return nil, err
	}
	return s.store.ListFunc(ctx, func(p *Product) bool {
		return p.Category != nil && p.Category.ID == categoryID
	})
}

// ByBrand matches the brand case-insensitively.
func (s *Service) ByBrand(ctx context.Context, brand string) ([]Product, error) {
	if err := requireNonBlank(brand, "brand"); err != nil {
		return nil, err
	}
	return s.store.ListFunc(ctx, func(p *Product) bool {
		return strings.EqualFold(p.Brand, brand)
	})
}

// SearchProducts matches the term as a case-insensitive substring of the
// title, description or short description.
func (s *Service) SearchProducts(ctx context.Context, term string) ([]Product, error) {
	if err := requireNonBlank(term, "search term"); err != nil {
		return nil, err
	}
	return s.store.ListFunc(ctx, func(p *Product) bool {
		return p.MatchesSearch(term)
	})
}

func (s *Service) Available(ctx context.Context) ([]Product, error) {
	return s.store.ListFunc(ctx, func(p *Product) bool {
		return p.IsAvailable()
	})
}

func (s *Service) Discounted(ctx context.Context) ([]Product, error) {
	return s.store.ListFunc(ctx, func(p *Product) bool {
		return p.HasDiscount()
	})
}

// ByPriceRange matches price.current within [min, max], bounds
// inclusive. Products without a current price are excluded.
func (s *Service) ByPriceRange(ctx context.Context, min, max *float64) ([]Product, error) {
	if err := validatePriceRange(min, max); err != nil {
		return nil, err
	}
	return s.store.ListFunc(ctx, func(p *Product) bool {
		if p.Price == nil || p.Price.Current == nil {
			return false
		}
		return *p.Price.Current >= *min && *p.Price.Current <= *max
	})
}

func (s *Service) ProductExists(ctx context.Context, id string) (bool, error) {
	if err := requireNonBlank(id, "product id"); err != nil {
		return false, err
	}
	return s.store.Exists(ctx, id)
}

func (s *Service) TotalProductCount(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func requireNonBlank(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be blank", ErrInvalidArgument, field)
	}
	return nil
}

func validatePriceRange(min, max *float64) error {
	switch {
	case min == nil || max == nil:
		return fmt.Errorf("%w: price range values cannot be null", ErrInvalidArgument)
	case *min < 0 || *max < 0:
		return fmt.Errorf("%w: price values cannot be negative", ErrInvalidArgument)
	case *min > *max:
		return fmt.Errorf("%w: minimum price cannot be greater than maximum price", ErrInvalidArgument)
	}
	return nil
}
