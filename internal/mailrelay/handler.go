package mailrelay

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brt-intranet/backend/internal/tickets"
	"github.com/brt-intranet/backend/pkg/response"
)

// Handler handles the two mail relay forms.
type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler creates a mail relay handler; maxBytes caps an upload (0 = no cap).
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// TicketForm handles POST /api/formulario.
func (h *Handler) TicketForm(c *gin.Context) {
	form := tickets.Form{
		Email:    c.PostForm("email"),
		Asunto:   c.PostForm("asunto"),
		Tipo:     c.PostForm("tipo"),
		Solucion: c.PostForm("solucion"),
		Programa: c.PostForm("programa"),
		Version:  c.PostForm("version"),
		Detalle:  c.PostForm("detalle"),
		Contacto: c.PostForm("contacto"),
	}
	up, ok := h.upload(c)
	if !ok {
		response.Message(c, http.StatusBadRequest, msgBadUpload, "")
		return
	}

	code, err := h.svc.SendTicketForm(c.Request.Context(), form, up)
	if err != nil {
		response.Message(c, http.StatusInternalServerError, MsgTicketFailed, "")
		return
	}
	response.Message(c, http.StatusOK, MsgTicketSent, code)
}

// Contact handles POST /api/contacto.
func (h *Handler) Contact(c *gin.Context) {
	form := ContactForm{
		Nombre:  c.PostForm("nombre"),
		Email:   c.PostForm("email"),
		Asunto:  c.PostForm("asunto"),
		Mensaje: c.PostForm("mensaje"),
	}
	up, ok := h.upload(c)
	if !ok {
		response.Message(c, http.StatusBadRequest, msgBadUpload, "")
		return
	}

	code, err := h.svc.SendContact(c.Request.Context(), form, up)
	if err != nil {
		response.Message(c, http.StatusInternalServerError, MsgContactFailed, "")
		return
	}
	response.Message(c, http.StatusOK, MsgContactSent, code)
}

const msgBadUpload = "Archivo adjunto inválido"

// upload reads the optional "archivo" field into memory. ok is false for a
// malformed or oversized upload.
func (h *Handler) upload(c *gin.Context) (up *Upload, ok bool) {
	fh, err := c.FormFile("archivo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, true
	}
	if err != nil || (h.maxBytes > 0 && fh.Size > h.maxBytes) {
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, false
	}
	return &Upload{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, true
}
