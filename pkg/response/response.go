package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/brt-intranet/backend/pkg/errors"
)

// ErrorBody is the error payload used by the JSON API.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the payload used by the mail relay forms.
type MessageBody struct {
	Message string `json:"message"`
	Codigo  string `json:"codigo,omitempty"`
}

// OK sends a 200 JSON response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 JSON response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends 204 with an empty body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends 400 with error message.
func BadRequest(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: err})
}

// Error renders an error returned by a service. Only the client-facing
// message is written; the internal cause stays in the server logs.
func Error(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	if appErr == nil {
		appErr = apperrors.ErrInternal
	}
	c.JSON(apperrors.StatusOf(appErr), ErrorBody{Error: appErr.Message})
}

// Message writes a {message, codigo} body with the given status.
func Message(c *gin.Context, status int, message, codigo string) {
	c.JSON(status, MessageBody{Message: message, Codigo: codigo})
}
