package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brt-intranet/backend/config"
	"github.com/brt-intranet/backend/internal/credentials"
	"github.com/brt-intranet/backend/pkg/storage"
)

func testRouter(t *testing.T, uploadDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:  config.ServerConfig{CORSAllowedOrigins: "*"},
		Uploads: config.UploadConfig{Dir: uploadDir, URLPrefix: "/uploads", MaxMB: 1},
		Metrics: true,
		Login: []config.Credential{
			{Codigo: "AA1681", Nombre: "Unión Caribe - Aruba", User: "aruba", Password: "clave"},
		},
	}
	h := handlers{login: credentials.NewHandler(credentials.NewVerifier(cfg.Login), nil)}
	return newRouter(cfg, h, uploadDir != "", zap.NewNop())
}

func TestHealth(t *testing.T) {
	r := testRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLoginUnknownCredentials(t *testing.T) {
	r := testRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"usuario":"nadie","contrasena":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Credenciales inválidas"}`, w.Body.String())
}

func TestMetricsExposed(t *testing.T) {
	r := testRouter(t, "")
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "intranet_api_latency_seconds")
}

func TestUploadsServedFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "requerimientos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requerimientos", "a.pdf"), []byte("%PDF"), 0o644))
	r := testRouter(t, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/requerimientos/a.pdf", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF", w.Body.String())
}

func TestStoredUploadReferenceIsServed(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "/uploads", nil)
	require.NoError(t, err)
	ref, err := store.Save(context.Background(), storage.FolderTickets, "factura.pdf", "application/pdf", strings.NewReader("%PDF-1.4"), 8)
	require.NoError(t, err)
	r := testRouter(t, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, ref, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}
