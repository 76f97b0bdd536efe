package mvc

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/time/rate"
)

// registry is the routing table. Routes are collected during the build
// phase and published by build; after that the table is read-only and
// lookups need no locking.
type registry struct {
	pending []*route
	routes  map[string]*route
}

func (g *registry) add(rt *route) {
	g.pending = append(g.pending, rt)
}

// build validates every pending route and publishes the table. It returns
// all configuration errors joined; on error no table is published.
func (g *registry) build() error {
	routes := make(map[string]*route, len(g.pending))
	var errs []error

	for _, rt := range g.pending {
		if err := prepare(rt); err != nil {
			errs = append(errs, fmt.Errorf("route %q: %w", rt.path, err))
			continue
		}
		if prev, ok := routes[rt.path]; ok {
			errs = append(errs, fmt.Errorf("%w: %q registered by %s and %s",
				ErrDuplicateRoute, rt.path, owner(prev), owner(rt)))
			continue
		}
		routes[rt.path] = rt
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	g.routes = routes
	g.pending = nil
	return nil
}

// prepare validates a route and builds its descriptor.
func prepare(rt *route) error {
	if rt.err != nil {
		return rt.err
	}
	if !strings.HasPrefix(rt.path, "/") {
		return ErrInvalidPath
	}
	if rt.target == nil {
		return ErrNilTarget
	}

	params, types := rt.target.params(), rt.target.types()
	if types != nil && len(types) != len(params) {
		return fmt.Errorf("%w: %d parameters declared for %d handler arguments", ErrInvalidParam, len(params), len(types))
	}

	desc, err := newDescriptor(params, types)
	if err != nil {
		return err
	}
	rt.desc = desc

	if rt.limit > 0 {
		burst := rt.burst
		if burst <= 0 {
			burst = 1
		}
		rt.limiter = rate.NewLimiter(rt.limit, burst)
	}

	return nil
}

// checkPrefix accepts an empty prefix or an absolute path without a
// trailing slash.
func checkPrefix(kind, prefix string) error {
	if prefix == "" {
		return nil
	}
	if !strings.HasPrefix(prefix, "/") || strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("%w: %s %q", ErrInvalidPath, kind, prefix)
	}
	return nil
}

func owner(rt *route) string {
	if rt.controller != "" {
		return rt.controller + "." + rt.label()
	}
	return rt.label()
}

// lookup returns the route registered for the exact path.
func (g *registry) lookup(path string) (*route, bool) {
	rt, ok := g.routes[path]
	return rt, ok
}

// list returns the published routes sorted by path.
func (g *registry) list() []RouteInfo {
	out := make([]RouteInfo, 0, len(g.routes))
	for _, rt := range g.routes {
		out = append(out, rt.info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
