package mvc

import (
	"fmt"
	"strings"
)

// Registrar is the interface accepted by Handle.
// Both *Dispatcher and *Controller implement it.
type Registrar interface {
	addRoute(rt *route)
}

// Handle registers target under the exact path. Registration errors such as
// duplicate paths or malformed parameter metadata are reported by
// Dispatcher.Init. Handle panics when called after Init.
func Handle(reg Registrar, path string, target Target, opts ...RouteOption) {
	rt := &route{
		path:   path,
		target: target,
	}
	if !strings.HasPrefix(path, "/") {
		rt.err = fmt.Errorf("%w: %q is not absolute", ErrInvalidPath, path)
	}
	for _, opt := range opts {
		opt(rt)
	}
	reg.addRoute(rt)
}
