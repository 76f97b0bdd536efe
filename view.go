package mvc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// bodyContentType is the Content-Type of direct-body responses.
const bodyContentType = "text/html; charset=utf-8"

// resolveResult performs the single response action a Result calls for.
func (d *Dispatcher) resolveResult(rt *route, result Result, resp *Response, r *http.Request) (Outcome, error) {
	switch result.kind {
	case ResultView:
		directive, target, ok := splitView(result.view)
		if !ok {
			return OutcomeForwarded, resp.Forward(result.view)
		}
		switch directive {
		case directiveForward:
			return OutcomeForwarded, resp.Forward(target)
		case directiveRedirect:
			return OutcomeRedirected, resp.Redirect(target)
		default:
			d.logger.WarnContext(r.Context(), "unrecognized view directive",
				append(rt.logAttrs(), "directive", directive, "view", result.view)...)
			return OutcomeNoOp, nil
		}

	case ResultBody:
		if !rt.responseBody {
			d.logger.DebugContext(r.Context(), "body result on a route without response body", rt.logAttrs()...)
			return OutcomeNoOp, nil
		}
		return OutcomeBodyWritten, d.writeBody(resp, result.body)

	default:
		return OutcomeNoOp, nil
	}
}

// writeBody serializes v and writes it as the whole response. The response
// is closed on every path.
func (d *Dispatcher) writeBody(resp *Response, v any) (err error) {
	defer func() {
		if cerr := resp.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	var buf bytes.Buffer
	if err := d.codec.Encode(&buf, v); err != nil {
		return fmt.Errorf("encode body: %w", err)
	}

	resp.Header().Set("Content-Type", bodyContentType)
	_, err = resp.Write(buf.Bytes())
	return err
}

// Views returns a handler serving forwarded view names as files from fsys.
// A directory serves its index.html. Missing views get the not-found body.
func Views(fsys fs.FS) http.Handler {
	return viewHandler{fsys: fsys}
}

type viewHandler struct {
	fsys fs.FS
}

func (v viewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "."
	}

	f, info, err := openView(v.fsys, name)
	if err != nil {
		writeNotFound(w)
		return
	}
	defer f.Close() //nolint:errcheck // read-only file

	content, ok := f.(io.ReadSeeker)
	if !ok {
		b, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		content = bytes.NewReader(b)
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

func openView(fsys fs.FS, name string) (fs.File, fs.FileInfo, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return nil, nil, err
	}
	if !info.IsDir() {
		return f, info, nil
	}

	f.Close() //nolint:errcheck,gosec // directory handle
	f, err = fsys.Open(path.Join(name, "index.html"))
	if err != nil {
		return nil, nil, err
	}
	info, err = f.Stat()
	if err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return nil, nil, err
	}
	if info.IsDir() {
		f.Close() //nolint:errcheck,gosec // directory handle
		return nil, nil, errors.New("view is a directory")
	}
	return f, info, nil
}
