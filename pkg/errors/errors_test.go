package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyStatusCodes(t *testing.T) {
	cause := errors.New("boom")

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", Validation("mensaje es requerido"), http.StatusBadRequest},
		{"not found", NotFound("Anuncio no encontrado"), http.StatusNotFound},
		{"auth", Auth("Credenciales inválidas"), http.StatusUnauthorized},
		{"store", Store(cause, ""), http.StatusInternalServerError},
		{"mail", Mail(cause, ""), http.StatusInternalServerError},
		{"plain error", cause, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, StatusOf(tc.err))
		})
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("create: %w", Validation("tipo inválido"))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestStoreKeepsCauseButHidesIt(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store(cause, "")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "Error al acceder a la base de datos.", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(errors.New("unexpected"))

	require.NotNil(t, appErr)
	assert.Equal(t, CodeInternal, appErr.Code)
	assert.Nil(t, FromError(nil))
}
