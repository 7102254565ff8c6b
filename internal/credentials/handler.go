package credentials

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/brt-intranet/backend/pkg/errors"
	"github.com/brt-intranet/backend/pkg/metrics"
)

// LoginRequest is the body for POST /api/login, as JSON or form fields.
type LoginRequest struct {
	Usuario    string `json:"usuario" form:"usuario"`
	Contrasena string `json:"contrasena" form:"contrasena"`
}

// Handler handles the login check endpoint.
type Handler struct {
	verifier *Verifier
	logger   *zap.Logger
}

// NewHandler creates a login handler.
func NewHandler(verifier *Verifier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{verifier: verifier, logger: logger}
}

// Login handles POST /api/login. No session is issued; the response only
// says whether the pair matched and for which organization.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Debug("login body not bound", zap.String("content_type", c.ContentType()), zap.Error(err))
	}

	res, err := h.verifier.Check(req.Usuario, req.Contrasena)
	if err != nil {
		appErr := apperrors.FromError(err)
		if errors.Is(err, apperrors.ErrAuth) {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			h.logger.Info("login rejected", zap.String("usuario", req.Usuario), zap.String("client_ip", c.ClientIP()))
		} else {
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		}
		c.JSON(apperrors.StatusOf(appErr), Result{Success: false, Error: appErr.Message})
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	h.logger.Info("login accepted", zap.String("codigo", res.Codigo))
	c.JSON(http.StatusOK, res)
}
