package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/bjaus/mvc"
)

//go:embed views
var viewFiles embed.FS

// app holds the wired dispatcher and its collaborators.
type app struct {
	dispatcher *mvc.Dispatcher
	metrics    *mvc.Metrics
	books      *BookController
}

func newApp(cfg Config, logger *slog.Logger, store *bookStore) (*app, error) {
	views, err := fs.Sub(viewFiles, "views")
	if err != nil {
		return nil, err
	}

	opts := []mvc.Option{
		mvc.WithLogger(logger),
		mvc.WithContextPath(cfg.ContextPath),
		mvc.WithCharset(cfg.Charset),
		mvc.WithMaxForwards(cfg.MaxForwards),
		mvc.WithViews(mvc.Views(views)),
	}
	if cfg.Codec == "yaml" {
		opts = append(opts, mvc.WithCodec(mvc.YAMLCodec{}))
	}
	if cfg.Tracing {
		opts = append(opts, mvc.WithTracer(otel.Tracer("bookstore")))
	}

	var metrics *mvc.Metrics
	if cfg.Metrics.Enabled {
		metrics, err = mvc.NewMetrics(prometheus.NewRegistry())
		if err != nil {
			return nil, err
		}
		opts = append(opts, mvc.WithMetrics(metrics))
	}

	d := mvc.New(opts...)
	d.Use(mvc.Recovery(logger), mvc.RequestID(), mvc.Logger(logger))

	books := &BookController{store: store, contextPath: cfg.ContextPath}
	books.register(d, cfg.RateLimit)

	if metrics != nil {
		mvc.Handle(d, cfg.Metrics.Path, mvc.Method2(func(r *http.Request, w *mvc.Response) (mvc.Result, error) {
			metrics.Handler().ServeHTTP(w, r)
			return mvc.None(), nil
		}, mvc.RequestParam(), mvc.ResponseParam()), mvc.WithName("metrics"))
	}

	return &app{dispatcher: d, metrics: metrics, books: books}, nil
}
