package suppliers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T) (http.Handler, *memoryRepo) {
	t.Helper()
	svc, repo := newTestService(staticChecker{})
	h := NewHandler(discardLogger(), svc)
	r := chi.NewRouter()
	r.Route("/suppliers", h.MountRoutes)
	return r, repo
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreateSupplier(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/suppliers", `{"name":"Acme","contact":"0412345678"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Supplier
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, "Acme", created.Name)
}

func TestHandlerDuplicateIsConflict(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/suppliers", `{"name":"Acme","contact":"0412345678"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, "/suppliers", `{"name":"Acme","contact":"0498765432"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "name already used by another supplier")
}

func TestHandlerInvalidContactIsUnprocessable(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/suppliers", `{"name":"Acme","contact":"0312345678"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandlerMissingFieldIsBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/suppliers", `{"contact":"0412345678"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerDeleteNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/suppliers/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerDeleteWithDependentsIsConflict(t *testing.T) {
	svc, _ := newTestService(staticChecker{1: 2})
	h := NewHandler(discardLogger(), svc)
	r := chi.NewRouter()
	r.Route("/suppliers", h.MountRoutes)

	rec := postJSON(t, r, "/suppliers", `{"name":"Acme","contact":"0412345678"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/suppliers/1", nil)
	del := httptest.NewRecorder()
	r.ServeHTTP(del, req)
	require.Equal(t, http.StatusConflict, del.Code)
	require.Contains(t, del.Body.String(), "supplier has associated products")

	_, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
}
