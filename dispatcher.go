package mvc

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	defaultCharset     = "utf-8"
	defaultMaxForwards = 10
)

// Dispatcher is the front controller. Every request is resolved to a route
// by exact path, its parameters are bound to the handler's arguments, the
// handler is invoked, and its Result decides the response.
//
// A Dispatcher has two phases. Routes are registered with Handle until Init
// builds the routing table; from then on the table is read-only and the
// Dispatcher serves requests.
type Dispatcher struct {
	reg        registry
	middleware []Middleware

	mu    sync.Mutex
	ready atomic.Bool

	logger      *slog.Logger
	codec       Encoder
	contextPath string
	views       http.Handler
	metrics     *Metrics
	tracer      trace.Tracer
	charset     string
	maxForwards int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger for dispatch faults and diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithCodec sets the encoder used for direct-body results (default JSONCodec).
func WithCodec(enc Encoder) Option {
	return func(d *Dispatcher) {
		d.codec = enc
	}
}

// WithContextPath mounts every route below prefix.
func WithContextPath(prefix string) Option {
	return func(d *Dispatcher) {
		d.contextPath = prefix
	}
}

// WithViews sets the handler serving forward targets that are not routes.
func WithViews(h http.Handler) Option {
	return func(d *Dispatcher) {
		d.views = h
	}
}

// WithMetrics enables Prometheus metrics for dispatches.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithTracer starts a span for every dispatch.
func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = t
	}
}

// WithCharset sets the character encoding applied to every response before
// the handler runs (default "utf-8").
func WithCharset(charset string) Option {
	return func(d *Dispatcher) {
		d.charset = charset
	}
}

// WithMaxForwards bounds nested forwards per request (default 10).
// Values below 1 keep the default.
func WithMaxForwards(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxForwards = n
		}
	}
}

// New creates a Dispatcher with the given options.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:      slog.Default(),
		codec:       JSONCodec{},
		charset:     defaultCharset,
		maxForwards: defaultMaxForwards,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Use adds middleware around dispatch. Middleware is applied in the order added.
func (d *Dispatcher) Use(mw ...Middleware) {
	d.middleware = append(d.middleware, mw...)
}

// addRoute implements Registrar for Dispatcher.
func (d *Dispatcher) addRoute(rt *route) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ready.Load() {
		panic("mvc: route " + rt.path + " registered after Init")
	}
	if rt.err == nil {
		rt.err = checkPrefix("context path", d.contextPath)
	}
	rt.path = d.contextPath + rt.path
	d.reg.add(rt)
}

// Init builds the routing table from the registered routes and switches the
// dispatcher to serving. It returns every configuration error found; on
// error the dispatcher keeps refusing requests. Calling Init again after a
// successful Init is a no-op.
func (d *Dispatcher) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ready.Load() {
		return nil
	}
	if err := d.reg.build(); err != nil {
		return err
	}
	d.ready.Store(true)

	d.logger.Info("handler mapping initialized", "routes", len(d.reg.routes), "context_path", d.contextPath)
	return nil
}

// Routes returns the routing table sorted by path. It is empty before Init.
func (d *Dispatcher) Routes() []RouteInfo {
	if !d.ready.Load() {
		return nil
	}
	return d.reg.list()
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := http.Handler(http.HandlerFunc(d.dispatch))
	for i := len(d.middleware) - 1; i >= 0; i-- {
		handler = d.middleware[i](handler)
	}
	handler.ServeHTTP(w, r)
}

// ListenAndServe initializes the dispatcher if needed and starts an HTTP
// server on the given address. It blocks until the context is cancelled,
// then shuts down gracefully.
func (d *Dispatcher) ListenAndServe(ctx context.Context, addr string) error {
	if err := d.Init(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           d,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
