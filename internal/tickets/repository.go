package tickets

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/brt-intranet/backend/internal/models"
	"github.com/brt-intranet/backend/pkg/database"
)

// Repository handles ticket persistence in dbw00002.
type Repository struct {
	db database.Querier
}

// NewRepository creates a tickets repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// Insert stores a new ticket.
func (r *Repository) Insert(ctx context.Context, t models.Ticket) error {
	const query = `INSERT INTO dbw00002
		(requerimiento, correo, asunto, tipo, solucion, programa, version, detalle, contacto)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		t.Requerimiento, t.Correo, t.Asunto, t.Tipo, t.Solucion, t.Programa, t.Version, t.Detalle, t.Contacto)
	return err
}

// List returns tickets ordered by solucion, newest code first within each.
func (r *Repository) List(ctx context.Context, solucion string) ([]models.Ticket, error) {
	query, args := listQuery(solucion)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[models.Ticket])
}

func listQuery(solucion string) (string, []any) {
	query := `SELECT requerimiento, correo, asunto, tipo, COALESCE(solucion, ''), programa, version,
		detalle, contacto, estado
		FROM dbw00002`
	var args []any
	if solucion != "" {
		query += ` WHERE solucion = $1`
		args = append(args, solucion)
	}
	return query + ` ORDER BY solucion, requerimiento DESC`, args
}
