package mvc_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/mvc"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	d := mvc.New(mvc.WithLogger(quietLogger()))
	d.Use(mvc.Recovery(logger))
	d.Use(func(http.Handler) http.Handler {
		return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("middleware boom")
		})
	})
	require.NoError(t, d.Init())

	rec := get(t, d, "/anything")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "middleware boom")
}

func TestRecovery_nil_logger_uses_default(t *testing.T) {
	t.Parallel()

	mw := mvc.Recovery(nil)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	d := mvc.New(mvc.WithLogger(quietLogger()))
	d.Use(func(http.Handler) http.Handler { return h })
	require.NoError(t, d.Init())

	assert.Equal(t, http.StatusAccepted, get(t, d, "/").Code)
}

func TestMiddleware_ordering(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) mvc.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				w.Header().Set("X-"+name, "1")
				next.ServeHTTP(w, r)
			})
		}
	}

	d := mvc.New(mvc.WithLogger(quietLogger()))
	d.Use(mark("First"))
	d.Use(mark("Second"))
	mvc.Handle(d, "/test", text("ok"))
	require.NoError(t, d.Init())

	rec := get(t, d, "/test")

	assert.Equal(t, []string{"First", "Second"}, order)
	assert.Equal(t, "1", rec.Header().Get("X-First"))
	assert.Equal(t, "1", rec.Header().Get("X-Second"))
	assert.Equal(t, "ok", rec.Body.String())
}
