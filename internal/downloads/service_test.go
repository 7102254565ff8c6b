package downloads

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brt-intranet/backend/internal/models"
	apperrors "github.com/brt-intranet/backend/pkg/errors"
)

type fakeStore struct {
	rows    []models.Download
	dump    []map[string]any
	queries int
	err     error
}

func (f *fakeStore) ByProduct(_ context.Context, productCode string) ([]models.Download, error) {
	f.queries++
	if f.err != nil {
		return nil, f.err
	}
	if productCode != "P01" {
		return nil, nil
	}
	return f.rows, nil
}

func (f *fakeStore) Dump(context.Context) ([]map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.dump, nil
}

type fakeCache struct {
	entries map[string]Catalog
	getErr  error
	setErr  error
	ttl     time.Duration
}

func (f *fakeCache) Get(_ context.Context, productCode string) (Catalog, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.entries[productCode]
	if !ok {
		return nil, ErrCacheMiss
	}
	return c, nil
}

func (f *fakeCache) Set(_ context.Context, productCode string, c Catalog, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[productCode] = c
	f.ttl = ttl
	return nil
}

func strp(s string) *string { return &s }

func sampleRows() []models.Download {
	return []models.Download{
		{Solucion: "S01", Nombre: "Instalador", Imagen: strp("img/s01.png"), Programa: strp("files/setup.exe"), Manual: strp("files/manual.pdf")},
		{Solucion: "S01", Nombre: "Parche", Programa: strp("files/patch.exe")},
		{Solucion: "S02", Nombre: "Reportes"},
	}
}

func TestLookupGroupsBySolucion(t *testing.T) {
	svc := NewService(&fakeStore{rows: sampleRows()}, nil, 0, nil)

	cat, err := svc.Lookup(context.Background(), "P01")
	require.NoError(t, err)

	require.Len(t, cat, 2)
	require.Len(t, cat["S01"], 2)
	assert.Equal(t, "Instalador", cat["S01"][0].Nombre)
	assert.Equal(t, "Parche", cat["S01"][1].Nombre)
	assert.Nil(t, cat["S01"][1].Manual)
	assert.Equal(t, "Reportes", cat["S02"][0].Nombre)
}

func TestLookupUnknownProductIsEmpty(t *testing.T) {
	svc := NewService(&fakeStore{rows: sampleRows()}, nil, 0, nil)

	cat, err := svc.Lookup(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.NotNil(t, cat)
	assert.Empty(t, cat)
}

func TestLookupReadsThroughCache(t *testing.T) {
	store := &fakeStore{rows: sampleRows()}
	cache := &fakeCache{entries: map[string]Catalog{}}
	svc := NewService(store, cache, 5*time.Minute, nil)

	first, err := svc.Lookup(context.Background(), "P01")
	require.NoError(t, err)
	second, err := svc.Lookup(context.Background(), "P01")
	require.NoError(t, err)

	assert.Equal(t, 1, store.queries)
	assert.Equal(t, first, second)
	assert.Equal(t, 5*time.Minute, cache.ttl)
}

func TestLookupCacheFailuresFallThrough(t *testing.T) {
	store := &fakeStore{rows: sampleRows()}
	cache := &fakeCache{entries: map[string]Catalog{}, getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	svc := NewService(store, cache, time.Minute, nil)

	cat, err := svc.Lookup(context.Background(), "P01")
	require.NoError(t, err)
	assert.Len(t, cat, 2)
	assert.Equal(t, 1, store.queries)
}

func TestLookupStoreFailure(t *testing.T) {
	svc := NewService(&fakeStore{err: errors.New("db down")}, nil, 0, nil)

	_, err := svc.Lookup(context.Background(), "P01")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStore))
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fakeStore{rows: sampleRows(), dump: []map[string]any{{"dw001001": "P01", "dw001002": "S01"}}}
	h := NewHandler(NewService(store, nil, 0, nil))
	r := gin.New()
	r.GET("/descargas/:codigo", h.Lookup)
	r.GET("/api/dbw00001", h.Dump)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/descargas/P01", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"S01":[
			{"nombre":"Instalador","imagen":"img/s01.png","programa":"files/setup.exe","manual":"files/manual.pdf"},
			{"nombre":"Parche","imagen":null,"programa":"files/patch.exe","manual":null}
		],
		"S02":[{"nombre":"Reportes","imagen":null,"programa":null,"manual":null}]
	}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/descargas/X", nil))
	assert.JSONEq(t, `{}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dbw00001", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"dw001001":"P01","dw001002":"S01"}]`, w.Body.String())

	store.err = errors.New("db down")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dbw00001", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error consultando la base de datos"}`, w.Body.String())
}
