package announcements

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brt-intranet/backend/internal/models"
	apperrors "github.com/brt-intranet/backend/pkg/errors"
)

// Client-facing messages.
const (
	msgMensajeRequired = "mensaje es requerido"
	msgMensajeEmpty    = "mensaje no puede ser vacío"
	msgTipoInvalid     = "tipo inválido. Use: 'info'|'success'|'warning'|'danger'"
	msgNoChanges       = "No hay cambios para aplicar"
	msgNotFound        = "Anuncio no encontrado"
	msgReadFailed      = "Error al acceder a la base de datos."
	msgSaveFailed      = "Error al guardar en la base de datos."
)

var tipos = map[string]bool{
	models.TipoInfo:    true,
	models.TipoSuccess: true,
	models.TipoWarning: true,
	models.TipoDanger:  true,
}

// Fields is a decoded request body. A key that is present with a null value
// counts as supplied.
type Fields map[string]any

// Values is a fully normalized row ready to insert.
type Values struct {
	Titulo       *string
	Mensaje      string
	Tipo         string
	LinkURL      string
	ImageURL     *string
	ImageAlt     *string
	Activo       bool
	Dismissible  bool
	StartsAt     *time.Time
	EndsAt       *time.Time
	IncludePages *string
	ExcludePages *string
}

// Change assigns one column in a partial update.
type Change struct {
	Column string
	Value  any
}

// Store is the persistence the service needs.
type Store interface {
	// Active returns the live banner, or nil when none qualifies.
	Active(ctx context.Context) (*models.Announcement, error)
	List(ctx context.Context) ([]models.Announcement, error)
	Insert(ctx context.Context, v Values) (int64, error)
	// Get returns nil when no row has the id.
	Get(ctx context.Context, id int64) (*models.Announcement, error)
	// Update applies changes and bumps updated_at, returning rows affected.
	Update(ctx context.Context, id int64, changes []Change) (int64, error)
}

// Service implements the banner operations.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates an announcements service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// GetActive returns the most recently updated live banner, or nil.
func (s *Service) GetActive(ctx context.Context) (*models.Announcement, error) {
	a, err := s.store.Active(ctx)
	if err != nil {
		s.logger.Error("query active announcement", zap.Error(err))
		return nil, apperrors.Store(err, msgReadFailed)
	}
	return a, nil
}

// List returns every banner, most recently touched first.
func (s *Service) List(ctx context.Context) ([]models.Announcement, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("list announcements", zap.Error(err))
		return nil, apperrors.Store(err, msgReadFailed)
	}
	if list == nil {
		list = []models.Announcement{}
	}
	return list, nil
}

// Create validates and stores a banner, then returns it as read back.
func (s *Service) Create(ctx context.Context, in Fields) (*models.Announcement, error) {
	v, err := NewValues(in)
	if err != nil {
		return nil, err
	}

	id, err := s.store.Insert(ctx, v)
	if err != nil {
		s.logger.Error("insert announcement", zap.Error(err))
		return nil, apperrors.Store(err, msgSaveFailed)
	}

	a, err := s.store.Get(ctx, id)
	if err != nil {
		s.logger.Error("read created announcement", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.Store(err, msgReadFailed)
	}
	if a == nil {
		s.logger.Error("created announcement vanished", zap.Int64("id", id))
		return nil, apperrors.Store(errors.New("announcement not found after insert"), msgReadFailed)
	}
	s.logger.Info("announcement created", zap.Int64("id", id))
	return a, nil
}

// PatchUpdate changes only the supplied fields. The change set is validated
// before the id is looked at, so an empty patch is a validation error even
// for an id that does not exist.
func (s *Service) PatchUpdate(ctx context.Context, rawID string, in Fields) (*models.Announcement, error) {
	changes, err := BuildChanges(in)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return nil, apperrors.NotFound(msgNotFound)
	}

	n, err := s.store.Update(ctx, id, changes)
	if err != nil {
		s.logger.Error("update announcement", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.Store(err, msgSaveFailed)
	}
	if n == 0 {
		return nil, apperrors.NotFound(msgNotFound)
	}

	a, err := s.store.Get(ctx, id)
	if err != nil {
		s.logger.Error("read updated announcement", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.Store(err, msgReadFailed)
	}
	if a == nil {
		return nil, apperrors.NotFound(msgNotFound)
	}
	s.logger.Info("announcement updated", zap.Int64("id", id), zap.Int("fields", len(changes)))
	return a, nil
}

// NewValues validates a create body and applies the defaults: tipo info,
// activo false, dismissible true, link_url never null.
func NewValues(in Fields) (Values, error) {
	mensaje, ok := in["mensaje"]
	if !ok || falsy(mensaje) || strings.TrimSpace(text(mensaje)) == "" {
		return Values{}, apperrors.Validation(msgMensajeRequired)
	}

	tipo := models.TipoInfo
	if raw, ok := in["tipo"]; ok {
		t, isString := raw.(string)
		if !isString || !tipos[t] {
			return Values{}, apperrors.Validation(msgTipoInvalid)
		}
		tipo = t
	}

	v := Values{
		Mensaje:      text(mensaje),
		Tipo:         tipo,
		LinkURL:      text(in["link_url"]),
		ImageURL:     nullableText(in["image_url"]),
		ImageAlt:     nullableText(in["image_alt"]),
		Activo:       false,
		Dismissible:  true,
		IncludePages: nullableText(in["include_pages"]),
		ExcludePages: nullableText(in["exclude_pages"]),
	}
	if raw := in["titulo"]; raw != nil {
		t := text(raw)
		v.Titulo = &t
	}
	if b, ok := ParseBool(in["activo"]); ok {
		v.Activo = b
	}
	if b, ok := ParseBool(in["dismissible"]); ok {
		v.Dismissible = b
	}

	var err error
	if v.StartsAt, err = parseTimestamp(in["starts_at"]); err != nil {
		return Values{}, apperrors.Validation("starts_at inválido")
	}
	if v.EndsAt, err = parseTimestamp(in["ends_at"]); err != nil {
		return Values{}, apperrors.Validation("ends_at inválido")
	}
	return v, nil
}

// BuildChanges turns a patch body into column assignments in a fixed column
// order. Only keys present in the body are included; unknown keys are ignored.
func BuildChanges(in Fields) ([]Change, error) {
	var changes []Change
	add := func(column string, value any) {
		changes = append(changes, Change{Column: column, Value: value})
	}

	if raw, ok := in["titulo"]; ok {
		if raw == nil {
			add("titulo", nil)
		} else {
			add("titulo", text(raw))
		}
	}
	if raw, ok := in["mensaje"]; ok {
		if falsy(raw) || strings.TrimSpace(text(raw)) == "" {
			return nil, apperrors.Validation(msgMensajeEmpty)
		}
		add("mensaje", text(raw))
	}
	if raw, ok := in["tipo"]; ok {
		t, isString := raw.(string)
		if !isString || !tipos[t] {
			return nil, apperrors.Validation(msgTipoInvalid)
		}
		add("tipo", t)
	}
	if raw, ok := in["link_url"]; ok {
		add("link_url", text(raw))
	}
	for _, column := range []string{"image_url", "image_alt"} {
		if raw, ok := in[column]; ok {
			add(column, nullableText(raw))
		}
	}
	for _, column := range []string{"activo", "dismissible"} {
		if raw, ok := in[column]; ok {
			b, _ := ParseBool(raw)
			add(column, b)
		}
	}
	for _, column := range []string{"starts_at", "ends_at"} {
		if raw, ok := in[column]; ok {
			t, err := parseTimestamp(raw)
			if err != nil {
				return nil, apperrors.Validation(column + " inválido")
			}
			add(column, t)
		}
	}
	for _, column := range []string{"include_pages", "exclude_pages"} {
		if raw, ok := in[column]; ok {
			add(column, nullableText(raw))
		}
	}

	if len(changes) == 0 {
		return nil, apperrors.Validation(msgNoChanges)
	}
	return changes, nil
}
