package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MercadoClone/pkg/kit"
)

type Server struct {
	Service  *Service
	Reloader Loader
	Log      *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Service.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", "NOT_READY", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.list)
		r.Get("/count", s.count)
		r.Get("/{id}", s.get)
		r.Get("/{id}/exists", s.exists)
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	products, err := s.Service.FindAll(r.Context(), f)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	kit.WriteData(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.Service.FindByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	kit.WriteData(w, http.StatusOK, p)
}

func (s *Server) exists(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := s.Service.ProductExists(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	kit.WriteData(w, http.StatusOK, ok)
}

func (s *Server) count(w http.ResponseWriter, r *http.Request) {
	n, err := s.Service.TotalProductCount(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	kit.WriteData(w, http.StatusOK, n)
}

// reload rebuilds the catalog wholesale from the source document. Wired
// behind the admin token, see NewHandler.
func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reloader.Reload(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}

	n, err := s.Service.TotalProductCount(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	kit.WriteData(w, http.StatusOK, map[string]any{"reloaded": true, "products": n})
}

// filterFromQuery binds the list query parameters. Absent price bounds
// default to zero, matching the original API contract.
func filterFromQuery(r *http.Request) (Filter, error) {
	q := r.URL.Query()

	f := Filter{
		CategoryID: q.Get("categoryId"),
		BrandID:    q.Get("brandId"),
		Search:     q.Get("value"),
	}

	var err error
	if f.Available, err = boolParam(q.Get("available"), "available"); err != nil {
		return Filter{}, err
	}
	if f.Discounted, err = boolParam(q.Get("discounted"), "discounted"); err != nil {
		return Filter{}, err
	}
	if f.RangePrice, err = boolParam(q.Get("rangePrice"), "rangePrice"); err != nil {
		return Filter{}, err
	}
	if f.MinPrice, err = floatParam(q.Get("minPrice"), "minPrice"); err != nil {
		return Filter{}, err
	}
	if f.MaxPrice, err = floatParam(q.Get("maxPrice"), "maxPrice"); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func boolParam(raw, name string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", ErrInvalidArgument, name)
	}
	return &v, nil
}

func floatParam(raw, name string) (*float64, error) {
	if raw == "" {
		zero := 0.0
		return &zero, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidArgument, name)
	}
	return &v, nil
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *NotFoundError

	switch {
	case errors.Is(err, ErrInvalidArgument):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), "INVALID_ARGUMENT", nil)

	case errors.As(err, &notFound):
		kit.WriteError(w, r, http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND",
			map[string]any{"productId": notFound.ID})

	case errors.Is(err, ErrNotLoaded), errors.Is(err, ErrDataLoad):
		if s.Log != nil {
			s.Log.Error("catalog unavailable", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "Internal server error", "DATA_LOAD_ERROR", nil)

	default:
		if s.Log != nil {
			s.Log.Error("unexpected error", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "An unexpected error occurred", "INTERNAL_ERROR", nil)
	}
}
