package downloads

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/brt-intranet/backend/internal/models"
	"github.com/brt-intranet/backend/pkg/database"
)

// Repository reads dbw00001.
type Repository struct {
	db database.Querier
}

// NewRepository creates a downloads repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// ByProduct returns the product's downloads ordered by solucion code.
func (r *Repository) ByProduct(ctx context.Context, productCode string) ([]models.Download, error) {
	const query = `SELECT dw001002 AS solucion, dw001003 AS nombre, dw001004 AS imagen,
		dw001005 AS programa, dw001006 AS manual
		FROM dbw00001
		WHERE dw001001 = $1
		ORDER BY dw001002`
	rows, err := r.db.Query(ctx, query, productCode)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[models.Download])
}

// Dump returns every row keyed by column name.
func (r *Repository) Dump(ctx context.Context) ([]map[string]any, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM dbw00001`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToMap)
}
