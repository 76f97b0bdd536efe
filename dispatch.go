package mvc

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const notFoundBody = "<h1>404 NOT FOUND</h1>"

// unmatchedRoute labels dispatches that matched no route.
const unmatchedRoute = "unmatched"

// dispatchResult is the terminal state of one pass through the pipeline.
type dispatchResult struct {
	route   *route
	outcome Outcome
	err     error
}

func (res dispatchResult) routeLabel() string {
	if res.route == nil {
		return unmatchedRoute
	}
	return res.route.label()
}

// dispatch is the innermost handler behind the middleware chain.
func (d *Dispatcher) dispatch(w http.ResponseWriter, r *http.Request) {
	if !d.ready.Load() {
		d.logger.ErrorContext(r.Context(), "request before initialization", "path", r.URL.Path, "err", ErrNotInitialized)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	var span trace.Span
	if d.tracer != nil {
		ctx, s := d.tracer.Start(r.Context(), "mvc.dispatch",
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			),
		)
		span = s
		defer span.End()
		r = r.WithContext(ctx)
	}

	resp := newResponse(d, w, r)
	res := d.serve(resp, r)

	if res.err != nil {
		d.logger.ErrorContext(r.Context(), "dispatch failed",
			"path", r.URL.Path,
			"route", res.routeLabel(),
			"request_id", GetRequestID(r),
			"err", res.err,
		)
	}

	if span != nil {
		span.SetAttributes(
			attribute.String("mvc.route", res.routeLabel()),
			attribute.String("mvc.outcome", res.outcome.String()),
		)
		if res.err != nil {
			span.RecordError(res.err)
			span.SetStatus(codes.Error, res.err.Error())
		}
	}

	if d.metrics != nil {
		d.metrics.observeDispatch(res.routeLabel(), res.outcome)
	}

	if entry, ok := valueOf[*accessEntry](r.Context()); ok {
		entry.route = res.routeLabel()
		entry.outcome = res.outcome
	}
}

// serve resolves r against the routing table and runs the matched route.
func (d *Dispatcher) serve(resp *Response, r *http.Request) dispatchResult {
	rt, ok := d.reg.lookup(r.URL.Path)
	if !ok {
		writeNotFound(resp)
		return dispatchResult{outcome: OutcomeNotFound}
	}

	outcome, err := d.invoke(rt, resp, r)
	return dispatchResult{route: rt, outcome: outcome, err: err}
}

// invoke binds the arguments, calls the handler and resolves its result.
func (d *Dispatcher) invoke(rt *route, resp *Response, r *http.Request) (Outcome, error) {
	if rt.limiter != nil && !rt.limiter.Allow() {
		retryAfter := strconv.FormatFloat(max(1/float64(rt.limit), 1), 'f', 0, 64)
		resp.Header().Set("Retry-After", retryAfter)
		http.Error(resp, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		return OutcomeLimited, nil
	}

	// A malformed query or body leaves the parameters parsed so far in r.Form.
	if err := r.ParseForm(); err != nil {
		d.logger.WarnContext(r.Context(), "parse request parameters", "path", r.URL.Path, "err", err)
	}

	args, dropped := resolveArgs(rt.desc, r.Form, r, resp)
	if dropped > 0 {
		d.logger.DebugContext(r.Context(), "request parameters without a matching argument",
			"route", rt.label(), "dropped", dropped)
		if d.metrics != nil {
			d.metrics.observeDropped(rt.label(), dropped)
		}
	}

	resp.SetCharacterEncoding(d.charset)

	start := time.Now()
	result, err := call(rt, args)
	if d.metrics != nil {
		d.metrics.observeInvocation(rt.label(), time.Since(start))
	}
	if err != nil {
		return OutcomeFailed, &InvocationError{Path: rt.path, Err: err}
	}

	outcome, err := d.resolveResult(rt, result, resp, r)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("%s result of %s: %w", result.Kind(), rt.path, err)
	}
	return outcome, nil
}

// call invokes the route's handler, converting a panic into a PanicError.
func call(rt *route, args Args) (result Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return rt.target.invoke(args)
}

// forward re-dispatches the request of resp to target on the same response.
// Query parameters of target are merged ahead of the original ones.
// Targets without a route are served by the views handler, if any.
func (d *Dispatcher) forward(resp *Response, target string) error {
	if resp.closed {
		return ErrResponseClosed
	}
	if resp.depth >= d.maxForwards {
		return fmt.Errorf("%w: %s", ErrForwardLoop, target)
	}

	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("forward %q: %w", target, err)
	}

	orig := resp.req
	fr := orig.Clone(orig.Context())
	fr.URL.Path = d.contextPath + u.Path
	fr.URL.RawPath = ""
	fr.URL.RawQuery = mergeQuery(u.Query(), orig.URL.Query()).Encode()
	fr.RequestURI = fr.URL.RequestURI()

	// Target query values precede every original value, body values included.
	base := orig.Form
	if base == nil {
		base = orig.URL.Query()
	}
	fr.Form = mergeQuery(u.Query(), base)

	resp.req = fr
	resp.depth++
	defer func() {
		resp.req = orig
		resp.depth--
	}()

	d.logger.DebugContext(fr.Context(), "forward", "from", orig.URL.Path, "to", fr.URL.Path, "depth", resp.depth)

	if _, ok := d.reg.lookup(fr.URL.Path); !ok && d.views != nil {
		// View names are relative to the context path.
		vr := fr.Clone(fr.Context())
		vr.URL.Path = u.Path
		d.views.ServeHTTP(resp, vr)
		return nil
	}

	res := d.serve(resp, fr)
	if res.err != nil {
		return fmt.Errorf("forward %s: %w", fr.URL.Path, res.err)
	}
	return nil
}

func mergeQuery(first, second url.Values) url.Values {
	out := make(url.Values, len(first)+len(second))
	for k, vs := range first {
		out[k] = append(out[k], vs...)
	}
	for k, vs := range second {
		out[k] = append(out[k], vs...)
	}
	return out
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	//nolint:errcheck // best-effort after WriteHeader
	io.WriteString(w, notFoundBody)
}

// logAttrs are the attributes identifying a route in diagnostics.
func (rt *route) logAttrs() []any {
	attrs := []any{slog.String("route", rt.label())}
	if rt.controller != "" {
		attrs = append(attrs, slog.String("controller", rt.controller))
	}
	return attrs
}
