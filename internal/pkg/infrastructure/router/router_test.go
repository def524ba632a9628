package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func newTestRouter(t *testing.T) http.Handler {
	r := New(context.Background(), "test-service")
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func originHeaderFor(t *testing.T, handler http.Handler, origin string) string {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", origin)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	return w.Header().Get("Access-Control-Allow-Origin")
}

func TestAllowsAnyOriginByDefault(t *testing.T) {
	is := is.New(t)

	r := newTestRouter(t)

	is.Equal(originHeaderFor(t, r, "https://app.example.com"), "*")
}

func TestRestrictsOriginsFromTheEnvironment(t *testing.T) {
	is := is.New(t)

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.cryk.io")

	r := newTestRouter(t)

	is.Equal(originHeaderFor(t, r, "https://app.cryk.io"), "https://app.cryk.io")
	is.Equal(originHeaderFor(t, r, "https://somewhere.else"), "")
}
