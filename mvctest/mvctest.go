// Package mvctest provides test helpers for the mvc dispatcher.
package mvctest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bjaus/mvc"
)

// Client wraps an httptest.Server serving a dispatcher. Redirects are not
// followed so tests can observe them.
type Client struct {
	Server *httptest.Server
	HTTP   *http.Client
}

// NewClient initializes d and starts a test server for it.
func NewClient(t testing.TB, d *mvc.Dispatcher) *Client {
	t.Helper()
	if err := d.Init(); err != nil {
		t.Fatalf("mvctest: init dispatcher: %v", err)
	}
	srv := httptest.NewServer(d)
	t.Cleanup(srv.Close)
	return &Client{
		Server: srv,
		HTTP: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Response holds a fully read response.
type Response struct {
	Status   int
	Headers  http.Header
	Body     string
	Location string
}

// Get sends a GET request. path may carry a query string.
func Get(t testing.TB, c *Client, path string) *Response {
	t.Helper()
	return do(t, c, http.MethodGet, path, nil)
}

// PostForm sends a POST request with a form-encoded body.
func PostForm(t testing.TB, c *Client, path string, form url.Values) *Response {
	t.Helper()
	return do(t, c, http.MethodPost, path, form)
}

func do(t testing.TB, c *Client, method, path string, form url.Values) *Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, body)
	if err != nil {
		t.Fatalf("mvctest: create request: %v", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("mvctest: execute request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("mvctest: close body: %v", closeErr)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("mvctest: read body: %v", err)
	}

	return &Response{
		Status:   resp.StatusCode,
		Headers:  resp.Header,
		Body:     string(b),
		Location: resp.Header.Get("Location"),
	}
}
