package credentials

import (
	"github.com/brt-intranet/backend/config"
	apperrors "github.com/brt-intranet/backend/pkg/errors"
	"github.com/brt-intranet/backend/pkg/utils"
)

const (
	msgMissing = "Usuario y contraseña son obligatorios"
	msgInvalid = "Credenciales inválidas"
)

// Result is the outcome of a credential check.
type Result struct {
	Success bool   `json:"success"`
	Codigo  string `json:"codigo,omitempty"`
	Nombre  string `json:"nombre,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Verifier checks a username/password against the configured organization logins.
type Verifier struct {
	entries []config.Credential
}

// NewVerifier keeps entries in the given order; the first match wins.
func NewVerifier(entries []config.Credential) *Verifier {
	cp := make([]config.Credential, len(entries))
	copy(cp, entries)
	return &Verifier{entries: cp}
}

// Verify scans the entries in order. Entries with an empty user or password
// are skipped so an unset organization can never be logged into.
func (v *Verifier) Verify(user, pass string) Result {
	for _, e := range v.entries {
		if e.User == "" || e.Password == "" {
			continue
		}
		if e.User == user && utils.MatchSecret(pass, e.Password) {
			return Result{Success: true, Codigo: e.Codigo, Nombre: e.Nombre}
		}
	}
	return Result{Success: false, Error: msgInvalid}
}

// Check validates the pair and verifies it. Missing fields give a validation
// error, an unknown pair an auth error.
func (v *Verifier) Check(user, pass string) (Result, error) {
	if user == "" || pass == "" {
		return Result{}, apperrors.Validation(msgMissing)
	}
	res := v.Verify(user, pass)
	if !res.Success {
		return Result{}, apperrors.Auth(msgInvalid)
	}
	return res, nil
}
