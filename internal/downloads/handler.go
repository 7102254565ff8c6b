package downloads

import (
	"github.com/gin-gonic/gin"

	"github.com/brt-intranet/backend/pkg/response"
)

// Handler handles download catalog endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a downloads handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Lookup handles GET /descargas/:codigo.
func (h *Handler) Lookup(c *gin.Context) {
	cat, err := h.svc.Lookup(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

// Dump handles GET /api/dbw00001.
func (h *Handler) Dump(c *gin.Context) {
	rows, err := h.svc.Dump(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}
