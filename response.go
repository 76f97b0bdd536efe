package mvc

import (
	"errors"
	"io"
	"mime"
	"net/http"
)

// Response is the response handle passed to handlers. It implements
// http.ResponseWriter and adds character encoding control, internal
// forwards and client redirects.
type Response struct {
	w       http.ResponseWriter
	req     *http.Request
	d       *Dispatcher
	charset string
	depth   int
	closed  bool
}

func newResponse(d *Dispatcher, w http.ResponseWriter, r *http.Request) *Response {
	return &Response{w: w, req: r, d: d}
}

// Header returns the response header map.
func (r *Response) Header() http.Header { return r.w.Header() }

// WriteHeader sends the status code. It does nothing once the response is closed.
func (r *Response) WriteHeader(code int) {
	if r.closed {
		return
	}
	r.w.WriteHeader(code)
}

// Write writes body bytes. It fails with ErrResponseClosed after Close.
func (r *Response) Write(p []byte) (int, error) {
	if r.closed {
		return 0, ErrResponseClosed
	}
	return r.w.Write(p)
}

// Writer returns the body stream.
func (r *Response) Writer() io.Writer { return r }

// Unwrap returns the underlying ResponseWriter (supports http.ResponseController).
func (r *Response) Unwrap() http.ResponseWriter { return r.w }

// SetContentType sets the Content-Type header. When the value carries no
// charset and a character encoding is set, the encoding is appended.
func (r *Response) SetContentType(ct string) {
	r.w.Header().Set("Content-Type", withCharset(ct, r.charset, false))
}

// SetCharacterEncoding sets the charset used for the body. An already set
// Content-Type is updated to carry it.
func (r *Response) SetCharacterEncoding(charset string) {
	r.charset = charset
	if ct := r.w.Header().Get("Content-Type"); ct != "" {
		r.w.Header().Set("Content-Type", withCharset(ct, charset, true))
	}
}

// CharacterEncoding returns the charset set on the response.
func (r *Response) CharacterEncoding() string { return r.charset }

// Forward dispatches the current request internally to path. The client
// sees only the forwarded target's response.
func (r *Response) Forward(path string) error {
	return r.d.forward(r, path)
}

// Redirect instructs the client to request url.
func (r *Response) Redirect(url string) error {
	if r.closed {
		return ErrResponseClosed
	}
	http.Redirect(r.w, r.req, url, http.StatusFound)
	return nil
}

// Close flushes buffered output and closes the response to further writes.
// Closing twice is a no-op.
func (r *Response) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := http.NewResponseController(r.w).Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}

// withCharset returns ct carrying charset. Unless override is set, an
// existing charset parameter wins.
func withCharset(ct, charset string, override bool) string {
	if charset == "" {
		return ct
	}
	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	if _, ok := params["charset"]; ok && !override {
		return ct
	}
	params["charset"] = charset
	if formatted := mime.FormatMediaType(mediaType, params); formatted != "" {
		return formatted
	}
	return ct
}
