package mvc

import (
	"net/http"
	"net/url"
)

// Test-only exports for internal functions.
var (
	SplitView      = splitView
	ContentCharset = withCharset
)

// ResolveArgs builds a descriptor from params and binds values against it.
func ResolveArgs(params []Param, values url.Values, r *http.Request, w *Response) (Args, int, error) {
	d, err := newDescriptor(params, nil)
	if err != nil {
		return nil, 0, err
	}
	args, dropped := resolveArgs(d, values, r, w)
	return args, dropped, nil
}

// ValidateParams runs descriptor validation without handler types.
func ValidateParams(params ...Param) error {
	_, err := newDescriptor(params, nil)
	return err
}
