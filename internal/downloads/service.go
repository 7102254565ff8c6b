package downloads

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/brt-intranet/backend/internal/models"
	apperrors "github.com/brt-intranet/backend/pkg/errors"
	"github.com/brt-intranet/backend/pkg/metrics"
)

const (
	msgReadFailed = "Error al acceder a la base de datos."
	msgDumpFailed = "Error consultando la base de datos"
)

// Catalog maps a solucion code to its downloads.
type Catalog map[string][]models.DownloadItem

// ErrCacheMiss is returned by Cache.Get when nothing is cached for a product.
var ErrCacheMiss = errors.New("downloads: cache miss")

// Store reads the download catalog table.
type Store interface {
	// ByProduct returns the product's rows ordered by solucion code.
	ByProduct(ctx context.Context, productCode string) ([]models.Download, error)
	// Dump returns every row of the table as column → value.
	Dump(ctx context.Context) ([]map[string]any, error)
}

// Cache holds grouped catalogs per product code.
type Cache interface {
	Get(ctx context.Context, productCode string) (Catalog, error)
	Set(ctx context.Context, productCode string, c Catalog, ttl time.Duration) error
}

// Service serves download catalog lookups, read-through cached when a cache is set.
type Service struct {
	store  Store
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewService creates a downloads service. cache may be nil.
func NewService(store Store, cache Cache, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, cache: cache, ttl: ttl, logger: logger}
}

// Lookup returns the catalog for a product grouped by solucion. An unknown
// product is an empty catalog, not an error. Cache failures only get logged.
func (s *Service) Lookup(ctx context.Context, productCode string) (Catalog, error) {
	if s.cache != nil {
		c, err := s.cache.Get(ctx, productCode)
		switch {
		case err == nil:
			metrics.CatalogCache.WithLabelValues("hit").Inc()
			return c, nil
		case errors.Is(err, ErrCacheMiss):
			metrics.CatalogCache.WithLabelValues("miss").Inc()
		default:
			metrics.CatalogCache.WithLabelValues("error").Inc()
			s.logger.Warn("download cache read failed", zap.String("codigo", productCode), zap.Error(err))
		}
	}

	rows, err := s.store.ByProduct(ctx, productCode)
	if err != nil {
		s.logger.Error("query downloads", zap.String("codigo", productCode), zap.Error(err))
		return nil, apperrors.Store(err, msgReadFailed)
	}
	c := Group(rows)

	if s.cache != nil {
		if err := s.cache.Set(ctx, productCode, c, s.ttl); err != nil {
			s.logger.Warn("download cache write failed", zap.String("codigo", productCode), zap.Error(err))
		}
	}
	return c, nil
}

// Dump returns the raw catalog table.
func (s *Service) Dump(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.store.Dump(ctx)
	if err != nil {
		s.logger.Error("dump downloads", zap.Error(err))
		return nil, apperrors.Store(err, msgDumpFailed)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, nil
}

// Group buckets rows by solucion preserving row order.
func Group(rows []models.Download) Catalog {
	out := make(Catalog)
	for _, r := range rows {
		out[r.Solucion] = append(out[r.Solucion], models.DownloadItem{
			Nombre:   r.Nombre,
			Imagen:   r.Imagen,
			Programa: r.Programa,
			Manual:   r.Manual,
		})
	}
	return out
}
