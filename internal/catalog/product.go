package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Product is the central catalog entity. Optional fields are pointers so
// that a permissively decoded document keeps absent and zero apart.
type Product struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	Price            *Price            `json:"price,omitempty"`
	Images           []ProductImage    `json:"images,omitempty"`
	Category         *Category         `json:"category,omitempty"`
	Brand            string            `json:"brand,omitempty"`
	SKU              string            `json:"sku,omitempty"`
	Stock            *Stock            `json:"stock,omitempty"`
	Rating           *Rating           `json:"rating,omitempty"`
	PaymentMethods   []PaymentMethod   `json:"paymentMethods,omitempty"`
	Shipping         *Shipping         `json:"shipping,omitempty"`
	Seller           *Seller           `json:"seller,omitempty"`
	Features         []string          `json:"features,omitempty"`
	Specifications   map[string]string `json:"specifications,omitempty"`
	Warranty         string            `json:"warranty,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

type Price struct {
	Current  *float64 `json:"current"`
	Original *float64 `json:"original,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Discount *int     `json:"discount,omitempty"`
}

// ProductImage identity is by ID.
type ProductImage struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Alt   string `json:"alt,omitempty"`
	Order *int   `json:"order,omitempty"`
}

// Category carries its breadcrumb as an ordered list of ancestor names.
type Category struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Path []string `json:"path,omitempty"`
}

type Stock struct {
	Available *int `json:"available"`
	Total     *int `json:"total,omitempty"`
}

// Rating distribution maps star value ("1".."5") to vote count.
type Rating struct {
	Average      *float64       `json:"average"`
	Count        *int           `json:"count,omitempty"`
	Distribution map[string]int `json:"distribution,omitempty"`
}

type PaymentMethod struct {
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	Icon         string   `json:"icon,omitempty"`
	Installments *int     `json:"installments,omitempty"`
	Discount     *float64 `json:"discount,omitempty"`
}

type Shipping struct {
	Free          *bool    `json:"free,omitempty"`
	EstimatedDays *int     `json:"estimatedDays,omitempty"`
	Cost          *float64 `json:"cost,omitempty"`
	Description   string   `json:"description,omitempty"`
}

type Seller struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Reputation      *float64 `json:"reputation,omitempty"`
	Location        string   `json:"location,omitempty"`
	IsOfficial      *bool    `json:"isOfficial,omitempty"`
	PositiveRating  *int     `json:"positiveRating,omitempty"`
	YearsOnPlatform *int     `json:"yearsOnPlatform,omitempty"`
	Avatar          string   `json:"avatar,omitempty"`
}

// NewProduct builds a product with the required fields set and both
// timestamps at now. ID, title and description must be non-blank.
func NewProduct(id, title, description string) (Product, error) {
	p := Product{ID: id, Title: title, Description: description}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// Validate checks the construction invariant: id, title and description
// are required.
func (p *Product) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: product id cannot be blank", ErrInvalidArgument)
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("%w: product title cannot be blank", ErrInvalidArgument)
	case strings.TrimSpace(p.Description) == "":
		return fmt.Errorf("%w: product description cannot be blank", ErrInvalidArgument)
	}
	return nil
}

// Equal reports product identity, which is by ID only.
func (p *Product) Equal(other *Product) bool {
	if other == nil {
		return false
	}
	return p.ID == other.ID
}

func (p *Product) IsAvailable() bool {
	return p.Stock != nil && p.Stock.IsAvailable()
}

func (p *Product) HasDiscount() bool {
	return p.Price != nil && p.Price.Discount != nil && *p.Price.Discount > 0
}

// MatchesSearch reports whether term occurs, case-insensitively, in the
// title, description or short description.
func (p *Product) MatchesSearch(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.ShortDescription), term)
}

func (s *Stock) IsAvailable() bool {
	return s.Available != nil && *s.Available > 0
}

func (r *Rating) HasGoodRating() bool {
	return r.Average != nil && *r.Average >= 4.0
}

func (m *PaymentMethod) AllowsInstallments() bool {
	return m.Installments != nil && *m.Installments > 1
}

func (s *Shipping) IsExpress() bool {
	return s.EstimatedDays != nil && *s.EstimatedDays <= 2
}

func (s *Seller) IsTrusted() bool {
	if s.IsOfficial != nil && *s.IsOfficial {
		return true
	}
	return s.Reputation != nil && *s.Reputation >= 4.5
}
