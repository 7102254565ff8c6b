package announcements

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/brt-intranet/backend/pkg/response"
)

// Handler handles banner HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates an announcements handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Active handles GET /api/anuncios/activo. No live banner is 204, not an error.
func (h *Handler) Active(c *gin.Context) {
	a, err := h.svc.GetActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if a == nil {
		response.NoContent(c)
		return
	}
	response.OK(c, a)
}

// List handles GET /api/anuncios.
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

// Create handles POST /api/anuncios.
func (h *Handler) Create(c *gin.Context) {
	in, ok := bindFields(c)
	if !ok {
		return
	}
	a, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, a)
}

// Patch handles PATCH /api/anuncios/:id.
func (h *Handler) Patch(c *gin.Context) {
	in, ok := bindFields(c)
	if !ok {
		return
	}
	a, err := h.svc.PatchUpdate(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, a)
}

// bindFields decodes the JSON body into a field map. An empty body is an
// empty map so validation, not decoding, reports what is missing.
func bindFields(c *gin.Context) (Fields, bool) {
	in := Fields{}
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "JSON inválido")
		return nil, false
	}
	return in, true
}
