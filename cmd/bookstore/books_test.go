package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/mvc/mvctest"
)

func newTestClient(t *testing.T, cfg Config) *mvctest.Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := newApp(cfg, logger, newBookStore("Go in Action", "The Go Programming Language"))
	require.NoError(t, err)
	return mvctest.NewClient(t, a.dispatcher)
}

func TestBookController(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path       string
		wantStatus int
		wantCT     string
		wantBody   []string
	}{
		"list renders an html table": {
			path:       "/book/list",
			wantStatus: http.StatusOK,
			wantCT:     "text/html; charset=utf-8",
			wantBody: []string{
				"<h1>Book List</h1>",
				"<table",
				"<td>1</td>",
				"<td>Go in Action</td>",
				"<td>The Go Programming Language</td>",
			},
		},
		"json lists every book": {
			path:       "/book/json",
			wantStatus: http.StatusOK,
			wantCT:     "text/html; charset=utf-8",
			wantBody:   []string{`[{"id":1,"name":"Go in Action"},{"id":2,"name":"The Go Programming Language"}]`},
		},
		"get binds id": {
			path:       "/book/get?id=2",
			wantStatus: http.StatusOK,
			wantBody:   []string{`{"id":2,"name":"The Go Programming Language"}`},
		},
		"get with unknown id forwards to missing view": {
			path:       "/book/get?id=42",
			wantStatus: http.StatusOK,
			wantBody:   []string{"No such book"},
		},
		"get ignores the argument's own name": {
			path:       "/book/get?bookID=1",
			wantStatus: http.StatusOK,
			wantBody:   []string{"No such book"},
		},
		"index forwards to the landing view": {
			path:       "/",
			wantStatus: http.StatusOK,
			wantBody:   []string{"<h1>Bookstore</h1>"},
		},
		"unknown path": {
			path:       "/book/delete",
			wantStatus: http.StatusNotFound,
			wantBody:   []string{"<h1>404 NOT FOUND</h1>"},
		},
	}

	c := newTestClient(t, defaultConfig())

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resp := mvctest.Get(t, c, tc.path)

			assert.Equal(t, tc.wantStatus, resp.Status)
			if tc.wantCT != "" {
				assert.Equal(t, tc.wantCT, resp.Headers.Get("Content-Type"))
			}
			for _, s := range tc.wantBody {
				assert.Contains(t, resp.Body, s)
			}
		})
	}
}

func TestBookController_add(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, defaultConfig())

	resp := mvctest.PostForm(t, c, "/book/add", url.Values{"name": {"Dune Messiah"}})
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/book/list?added=Dune+Messiah", resp.Location)

	list := mvctest.Get(t, c, resp.Location)
	assert.Contains(t, list.Body, "Added Dune Messiah")
	assert.Contains(t, list.Body, "<td>3</td>")
	assert.Contains(t, list.Body, "<td>Dune Messiah</td>")
}

func TestBookController_add_without_name(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, defaultConfig())

	resp := mvctest.PostForm(t, c, "/book/add", url.Values{"name": {"  "}})

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, "<h1>Add a book</h1>")
}

func TestBookController_context_path(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.ContextPath = "/shop"
	c := newTestClient(t, cfg)

	assert.Contains(t, mvctest.Get(t, c, "/shop/book/list").Body, "<h1>Book List</h1>")
	assert.Equal(t, http.StatusNotFound, mvctest.Get(t, c, "/book/list").Status)
	assert.Contains(t, mvctest.Get(t, c, "/shop/").Body, "<h1>Bookstore</h1>")

	resp := mvctest.PostForm(t, c, "/shop/book/add", url.Values{"name": {"Dune"}})
	assert.Equal(t, "/shop/book/list?added=Dune", resp.Location)
}

func TestBookController_yaml_codec(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Codec = "yaml"
	c := newTestClient(t, cfg)

	resp := mvctest.Get(t, c, "/book/get?id=1")

	assert.Equal(t, "id: 1\nname: Go in Action\n", resp.Body)
}

func TestBookController_rate_limited_add(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.RateLimit = RateLimitConfig{RPS: 0.001, Burst: 1}
	c := newTestClient(t, cfg)

	first := mvctest.PostForm(t, c, "/book/add", url.Values{"name": {"One"}})
	second := mvctest.PostForm(t, c, "/book/add", url.Values{"name": {"Two"}})

	assert.Equal(t, http.StatusFound, first.Status)
	assert.Equal(t, http.StatusTooManyRequests, second.Status)
	assert.NotEmpty(t, second.Headers.Get("Retry-After"))
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, defaultConfig())

	mvctest.Get(t, c, "/book/list")
	resp := mvctest.Get(t, c, "/metrics")

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, `mvc_dispatches_total{outcome="noop",route="book.list"} 1`)
}

func TestMetricsEndpoint_disabled(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Metrics.Enabled = false
	c := newTestClient(t, cfg)

	assert.Equal(t, http.StatusNotFound, mvctest.Get(t, c, "/metrics").Status)
}

func TestRoutesCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"routes"})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Contains(t, out.String(), "PATH")
	assert.Contains(t, out.String(), "CONTROLLER")

	tests := map[string][]string{
		"/book/add":  {"book.add", "BookController", "name"},
		"/book/get":  {"book.get", "BookController", "bookID<-id", "yes"},
		"/book/list": {"book.list", "request, response"},
		"/book/json": {"book.json", "yes"},
		"/metrics":   {"metrics"},
	}
	for path, want := range tests {
		var line string
		for _, l := range lines {
			if strings.Contains(l, path) {
				line = l
				break
			}
		}
		require.NotEmpty(t, line, "route %s listed", path)
		for _, s := range want {
			assert.Contains(t, line, s)
		}
	}
}
