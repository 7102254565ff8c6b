package announcements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brt-intranet/backend/internal/models"
	"github.com/brt-intranet/backend/pkg/database"
)

const columns = `id, activo, tipo, titulo, mensaje, link_url, image_url, image_alt, dismissible,
	starts_at, ends_at, include_pages, exclude_pages, created_at, updated_at`

// Repository handles banner persistence in dbw00003.
type Repository struct {
	db database.Querier
}

// NewRepository creates an announcements repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// Active returns the newest live banner, or nil when none is live.
func (r *Repository) Active(ctx context.Context) (*models.Announcement, error) {
	const query = `SELECT ` + columns + `
		FROM dbw00003
		WHERE activo
			AND (starts_at IS NULL OR starts_at <= NOW())
			AND (ends_at IS NULL OR ends_at >= NOW())
		ORDER BY updated_at DESC
		LIMIT 1`
	a, err := scanAnnouncement(r.db.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// List returns all banners ordered by updated_at descending.
func (r *Repository) List(ctx context.Context) ([]models.Announcement, error) {
	const query = `SELECT ` + columns + ` FROM dbw00003 ORDER BY updated_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

// Insert stores a banner with server-set timestamps and returns its id.
func (r *Repository) Insert(ctx context.Context, v Values) (int64, error) {
	const query = `INSERT INTO dbw00003
		(titulo, mensaje, tipo, link_url, image_url, image_alt, activo, dismissible,
		 starts_at, ends_at, include_pages, exclude_pages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		v.Titulo, v.Mensaje, v.Tipo, v.LinkURL, v.ImageURL, v.ImageAlt, v.Activo, v.Dismissible,
		v.StartsAt, v.EndsAt, v.IncludePages, v.ExcludePages,
	).Scan(&id)
	return id, err
}

// Get returns a banner by id, or nil when it does not exist.
func (r *Repository) Get(ctx context.Context, id int64) (*models.Announcement, error) {
	const query = `SELECT ` + columns + ` FROM dbw00003 WHERE id = $1`
	a, err := scanAnnouncement(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// Update applies a partial change set and returns the number of rows touched.
func (r *Repository) Update(ctx context.Context, id int64, changes []Change) (int64, error) {
	query, args := buildUpdate(id, changes)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// buildUpdate renders an UPDATE touching only the changed columns plus updated_at.
// Column names come from BuildChanges, never from the request.
func buildUpdate(id int64, changes []Change) (string, []any) {
	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+1)
	for i, ch := range changes {
		sets = append(sets, fmt.Sprintf("%s = $%d", ch.Column, i+1))
		args = append(args, ch.Value)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE dbw00003 SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return query, args
}

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var (
		a                                   models.Announcement
		titulo, linkURL, imageURL, imageAlt *string
		include, exclude                    *string
	)
	err := row.Scan(&a.ID, &a.Activo, &a.Tipo, &titulo, &a.Mensaje, &linkURL, &imageURL, &imageAlt,
		&a.Dismissible, &a.StartsAt, &a.EndsAt, &include, &exclude, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.StartsAt = inUTC(a.StartsAt)
	a.EndsAt = inUTC(a.EndsAt)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	if titulo != nil {
		a.Titulo = *titulo
	}
	if linkURL != nil {
		a.LinkURL = *linkURL
	}
	a.ImageURL = nonEmpty(imageURL)
	a.ImageAlt = nonEmpty(imageAlt)
	a.IncludePages = nonEmpty(include)
	a.ExcludePages = nonEmpty(exclude)
	return &a, nil
}

func inUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
