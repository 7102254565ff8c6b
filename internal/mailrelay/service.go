package mailrelay

import (
	"bytes"
	"context"
	"net/mail"
	"time"

	"go.uber.org/zap"

	"github.com/brt-intranet/backend/internal/tickets"
	apperrors "github.com/brt-intranet/backend/pkg/errors"
	pkgmail "github.com/brt-intranet/backend/pkg/mail"
	"github.com/brt-intranet/backend/pkg/metrics"
	"github.com/brt-intranet/backend/pkg/storage"
)

// Client-facing messages.
const (
	MsgTicketSent    = "Correo enviado correctamente."
	MsgTicketFailed  = "Error al enviar el correo."
	MsgContactSent   = "Mensaje enviado correctamente."
	MsgContactFailed = "Error al enviar el mensaje."
)

// Upload is a form attachment read into memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service formats form submissions into notification emails.
type Service struct {
	mailer pkgmail.Mailer
	files  storage.FileStore
	from   string
	to     []string
	logger *zap.Logger
	now    func() time.Time
	intn   func(int) int
}

// NewService creates a mail relay. from is the bare sender address, to the
// notification recipients. files may be nil, in which case uploads are only
// forwarded, never kept.
func NewService(mailer pkgmail.Mailer, files storage.FileStore, from string, to []string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{mailer: mailer, files: files, from: from, to: to, logger: logger, now: time.Now}
}

// SendTicketForm mails a new-ticket notification with the attachment
// forwarded. The generated code is for display; it is not persisted.
func (s *Service) SendTicketForm(ctx context.Context, f tickets.Form, up *Upload) (string, error) {
	code := tickets.GenerateCode(s.now(), s.intn)
	s.keep(ctx, storage.FolderForms, up)

	msg := pkgmail.Message{
		From:    s.sender("Formulario Web"),
		To:      s.to,
		Subject: ticketSubject(f, code),
		HTML:    ticketBody(f, code),
	}
	if up != nil {
		msg.Attachments = []pkgmail.Attachment{{Filename: up.Filename, ContentType: up.ContentType, Data: up.Data}}
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.MailsSent.WithLabelValues("formulario", "failed").Inc()
		s.logger.Error("send ticket form mail", zap.String("codigo", code), zap.Error(err))
		return "", apperrors.Mail(err, MsgTicketFailed)
	}
	metrics.MailsSent.WithLabelValues("formulario", "sent").Inc()
	s.logger.Info("ticket form mailed", zap.String("codigo", code))
	return code, nil
}

// SendContact mails a contact-page message. An upload is kept but not attached.
func (s *Service) SendContact(ctx context.Context, f ContactForm, up *Upload) (string, error) {
	code := tickets.GenerateCode(s.now(), s.intn)
	s.keep(ctx, storage.FolderContacts, up)

	msg := pkgmail.Message{
		From:    s.sender("Contacto Web"),
		To:      s.to,
		Subject: contactSubject(f),
		HTML:    contactBody(f),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.MailsSent.WithLabelValues("contacto", "failed").Inc()
		s.logger.Error("send contact mail", zap.String("codigo", code), zap.Error(err))
		return "", apperrors.Mail(err, MsgContactFailed)
	}
	metrics.MailsSent.WithLabelValues("contacto", "sent").Inc()
	s.logger.Info("contact form mailed", zap.String("codigo", code))
	return code, nil
}

func (s *Service) sender(name string) string {
	if s.from == "" {
		return ""
	}
	return (&mail.Address{Name: name, Address: s.from}).String()
}

// keep stores an upload. Failure is logged; the mail still goes out.
func (s *Service) keep(ctx context.Context, folder string, up *Upload) {
	if up == nil || s.files == nil {
		return
	}
	ref, err := s.files.Save(ctx, folder, up.Filename, up.ContentType, bytes.NewReader(up.Data), int64(len(up.Data)))
	if err != nil {
		s.logger.Warn("store form upload", zap.String("folder", folder), zap.String("filename", up.Filename), zap.Error(err))
		return
	}
	s.logger.Debug("form upload stored", zap.String("ref", ref))
}
