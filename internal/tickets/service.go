package tickets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brt-intranet/backend/internal/models"
	apperrors "github.com/brt-intranet/backend/pkg/errors"
	"github.com/brt-intranet/backend/pkg/metrics"
	"github.com/brt-intranet/backend/pkg/storage"
)

const (
	msgMissingFields = "Faltan campos obligatorios."
	msgFileType      = "Tipo de archivo no permitido"
	msgSaveFailed    = "Error al guardar el requerimiento."
	msgReadFailed    = "Error al acceder a la base de datos."
)

// Form is a ticket submission. Contacto is optional.
type Form struct {
	Email    string
	Asunto   string
	Tipo     string
	Solucion string
	Programa string
	Version  string
	Detalle  string
	Contacto string
}

// Attachment is an uploaded file accompanying a form.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Store is the ticket persistence the service needs.
type Store interface {
	Insert(ctx context.Context, t models.Ticket) error
	// List returns tickets ordered by solucion then code descending;
	// an empty solucion means all.
	List(ctx context.Context, solucion string) ([]models.Ticket, error)
}

// Service implements ticket submission and listing.
type Service struct {
	store  Store
	files  storage.FileStore
	logger *zap.Logger
	now    func() time.Time
	intn   func(int) int
}

// NewService creates a tickets service. files may be nil when uploads are disabled.
func NewService(store Store, files storage.FileStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, files: files, logger: logger, now: time.Now}
}

// Create validates the form, stores the optional attachment and inserts the
// ticket with a fresh code. estado is left to the table default.
func (s *Service) Create(ctx context.Context, f Form, file *Attachment) (string, error) {
	if missingRequired(f) {
		return "", apperrors.Validation(msgMissingFields)
	}
	if file != nil {
		if err := storage.ValidateAttachment(file.Filename); err != nil {
			return "", apperrors.Validation(msgFileType)
		}
	}

	code := GenerateCode(s.now(), s.intn)
	detalle := f.Detalle

	if file != nil {
		if s.files == nil {
			return "", apperrors.Store(errors.New("no file store configured"), msgSaveFailed)
		}
		ref, err := s.files.Save(ctx, storage.FolderTickets, file.Filename, file.ContentType, file.Body, file.Size)
		if err != nil {
			s.logger.Error("store ticket attachment", zap.String("codigo", code), zap.Error(err))
			return "", apperrors.Store(err, msgSaveFailed)
		}
		detalle = fmt.Sprintf("%s\n\nArchivo adjunto: %s", detalle, ref)
	}

	t := models.Ticket{
		Requerimiento: code,
		Correo:        f.Email,
		Asunto:        f.Asunto,
		Tipo:          f.Tipo,
		Solucion:      f.Solucion,
		Programa:      f.Programa,
		Version:       f.Version,
		Detalle:       detalle,
		Contacto:      f.Contacto,
	}
	if err := s.store.Insert(ctx, t); err != nil {
		s.logger.Error("insert ticket", zap.String("codigo", code), zap.Error(err))
		return "", apperrors.Store(err, msgSaveFailed)
	}

	metrics.TicketsCreated.Inc()
	s.logger.Info("ticket stored", zap.String("codigo", code), zap.String("solucion", f.Solucion))
	return code, nil
}

// List returns tickets grouped by solucion, optionally restricted to one.
func (s *Service) List(ctx context.Context, solucion string) (map[string][]models.TicketSummary, error) {
	rows, err := s.store.List(ctx, strings.TrimSpace(solucion))
	if err != nil {
		s.logger.Error("list tickets", zap.String("solucion", solucion), zap.Error(err))
		return nil, apperrors.Store(err, msgReadFailed)
	}
	return GroupBySolucion(rows), nil
}

func missingRequired(f Form) bool {
	for _, v := range []string{f.Email, f.Asunto, f.Tipo, f.Solucion, f.Programa, f.Version, f.Detalle} {
		if v == "" {
			return true
		}
	}
	return false
}
