package tickets

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brt-intranet/backend/pkg/response"
)

// CreateResponse is the body returned after a ticket is stored.
type CreateResponse struct {
	Success bool   `json:"success"`
	Mensaje string `json:"mensaje"`
	Codigo  string `json:"codigo"`
}

// Handler handles ticket HTTP endpoints.
type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler creates a tickets handler; maxBytes caps the attachment size (0 = no cap).
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// Create handles POST /api/requerimientosdb (multipart, optional "archivo").
func (h *Handler) Create(c *gin.Context) {
	form := Form{
		Email:    c.PostForm("email"),
		Asunto:   c.PostForm("asunto"),
		Tipo:     c.PostForm("tipo"),
		Solucion: c.PostForm("solucion"),
		Programa: c.PostForm("programa"),
		Version:  c.PostForm("version"),
		Detalle:  c.PostForm("detalle"),
		Contacto: c.PostForm("contacto"),
	}

	var attachment *Attachment
	fh, err := c.FormFile("archivo")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		response.BadRequest(c, "Formulario inválido")
		return
	default:
		if h.maxBytes > 0 && fh.Size > h.maxBytes {
			response.BadRequest(c, fmt.Sprintf("El archivo supera el máximo de %d MB", h.maxBytes>>20))
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, "Formulario inválido")
			return
		}
		defer f.Close()
		attachment = &Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	}

	code, err := h.svc.Create(c.Request.Context(), form, attachment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, CreateResponse{
		Success: true,
		Mensaje: fmt.Sprintf("Requerimiento %s enviado correctamente.", code),
		Codigo:  code,
	})
}

// List handles GET /api/requerimientosdb and GET /api/requerimientosdb/:codigo,
// where codigo filters by solucion.
func (h *Handler) List(c *gin.Context) {
	groups, err := h.svc.List(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, groups)
}
