package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kinds of failure surfaced by the services.
const (
	CodeValidation = "VALIDATION"
	CodeNotFound   = "NOT_FOUND"
	CodeAuth       = "AUTH"
	CodeStore      = "STORE"
	CodeMail       = "MAIL"
	CodeInternal   = "INTERNAL"
)

// AppError is a service error that carries the HTTP status it maps to.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap exposes the internal error for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// WithInternal returns a copy of the AppError with an attached internal error.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}
	cpy := *e
	cpy.Internal = err
	return &cpy
}

// Is matches AppErrors by code so callers can test against the sentinels below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// Sentinels for errors.Is checks.
var (
	ErrValidation = &AppError{Code: CodeValidation, Message: "Solicitud inválida", StatusCode: http.StatusBadRequest}
	ErrNotFound   = &AppError{Code: CodeNotFound, Message: "Recurso no encontrado", StatusCode: http.StatusNotFound}
	ErrAuth       = &AppError{Code: CodeAuth, Message: "Credenciales inválidas", StatusCode: http.StatusUnauthorized}
	ErrStore      = &AppError{Code: CodeStore, Message: "Error al acceder a la base de datos.", StatusCode: http.StatusInternalServerError}
	ErrMail       = &AppError{Code: CodeMail, Message: "Error al enviar el correo.", StatusCode: http.StatusInternalServerError}
	ErrInternal   = &AppError{Code: CodeInternal, Message: "Error inesperado en el servidor.", StatusCode: http.StatusInternalServerError}
)

// Validation builds a 400 error with a client-facing message.
func Validation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, StatusCode: http.StatusBadRequest}
}

// NotFound builds a 404 error.
func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, StatusCode: http.StatusNotFound}
}

// Auth builds a 401 error.
func Auth(message string) *AppError {
	return &AppError{Code: CodeAuth, Message: message, StatusCode: http.StatusUnauthorized}
}

// Store wraps a database failure; message is what the client sees.
func Store(err error, message string) *AppError {
	if message == "" {
		message = ErrStore.Message
	}
	return &AppError{Code: CodeStore, Message: message, StatusCode: http.StatusInternalServerError, Internal: err}
}

// Mail wraps a delivery failure.
func Mail(err error, message string) *AppError {
	if message == "" {
		message = ErrMail.Message
	}
	return &AppError{Code: CodeMail, Message: message, StatusCode: http.StatusInternalServerError, Internal: err}
}

// FromError converts a generic error into an AppError, defaulting to ErrInternal.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal.WithInternal(err)
}

// StatusOf returns the HTTP status an error maps to.
func StatusOf(err error) int {
	appErr := FromError(err)
	if appErr == nil {
		return http.StatusOK
	}
	if appErr.StatusCode == 0 {
		return http.StatusInternalServerError
	}
	return appErr.StatusCode
}
