package mvc

import (
	"golang.org/x/time/rate"
)

// route is one entry of the routing table.
type route struct {
	path       string
	name       string
	controller string

	// err is a registration fault found before the path was prefixed.
	err error

	target Target
	desc   *descriptor

	responseBody bool

	limit   rate.Limit
	burst   int
	limiter *rate.Limiter
}

// RouteOption configures a route at registration time.
type RouteOption func(*route)

// WithResponseBody marks the route as a direct-body responder: a Body result
// is serialized with the dispatcher's codec and written as the response.
func WithResponseBody() RouteOption {
	return func(rt *route) {
		rt.responseBody = true
	}
}

// WithName sets a display name used in logs, metrics and route listings.
func WithName(name string) RouteOption {
	return func(rt *route) {
		rt.name = name
	}
}

// WithRateLimit caps invocations of the route to rps per second with the
// given burst. Requests over the limit receive 429 and are not invoked.
func WithRateLimit(rps float64, burst int) RouteOption {
	return func(rt *route) {
		rt.limit = rate.Limit(rps)
		rt.burst = burst
	}
}

// label is the name reported for the route.
func (rt *route) label() string {
	if rt.name != "" {
		return rt.name
	}
	return rt.path
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Path         string
	Name         string
	Controller   string
	Params       []Param
	ResponseBody bool
}

func (rt *route) info() RouteInfo {
	return RouteInfo{
		Path:         rt.path,
		Name:         rt.name,
		Controller:   rt.controller,
		Params:       append([]Param(nil), rt.target.params()...),
		ResponseBody: rt.responseBody,
	}
}
