// Command tracedemo wires the tracing core into a small chi HTTP server: a
// middleware opens a root span per request, handlers fire nested spans and
// tagged events, and the emitter flushes completed trees to whatever sink
// each root span's "output" field selected.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/QnnOkabayashi/tracing-tests/config"
	"github.com/QnnOkabayashi/tracing-tests/emit"
	"github.com/QnnOkabayashi/tracing-tests/facade"
	"github.com/QnnOkabayashi/tracing-tests/format"
	"github.com/QnnOkabayashi/tracing-tests/ingest"
	"github.com/QnnOkabayashi/tracing-tests/logger"
	"github.com/QnnOkabayashi/tracing-tests/middleware"
	"github.com/QnnOkabayashi/tracing-tests/sectags"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg)

	log.Info().Str("env", cfg.Env).Str("format", cfg.LogFormat).Msg("tracedemo starting")

	emitter := emit.New(log, emit.WithQueueCapacity(cfg.ChannelBuffer))
	emitter.Start()

	layer := ingest.New(sectags.Decoder, emitter, format.ParseKind(cfg.LogFormat))
	registry := facade.NewRegistry(layer)

	r := chi.NewRouter()
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(rootSpanMiddleware(registry, cfg))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/work", func(w http.ResponseWriter, req *http.Request) {
		handleWork(req.Context(), registry)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"traced"}`))
	})

	srv := &http.Server{
		Addr:         cfg.DemoAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.DemoAddr).Msg("tracedemo listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-done
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	emitter.Stop()
	log.Info().Msg("tracedemo stopped")
}

// rootSpanMiddleware opens a root span per request, tagged with the chi
// request id as its uuid and cfg.DefaultOutput as its sink, and closes it
// once the handler returns.
func rootSpanMiddleware(registry *facade.Registry, cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqID := chimw.GetReqID(req.Context())
			ctx, span := registry.NewSpan(req.Context(), "http.request",
				facade.Field{Name: "uuid", Value: reqID},
				facade.Field{Name: "output", Value: cfg.DefaultOutput},
			)
			span.Enter()
			registry.Event(ctx, facade.LevelInfo,
				facade.Field{Name: "event_tag", Value: sectags.RequestInfo.ID()},
				facade.Field{Name: "message", Value: "request started"},
				facade.Field{Name: "method", Value: req.Method},
				facade.Field{Name: "path", Value: req.URL.Path},
			)

			next.ServeHTTP(w, req.WithContext(ctx))

			span.Exit()
			span.Close()
		})
	}
}

// handleWork demonstrates a nested span plus a tagged and an alarm event,
// exercising every callback the ingestion layer responds to.
func handleWork(ctx context.Context, registry *facade.Registry) {
	childCtx, child := registry.NewSpan(ctx, "work.compute")
	child.Enter()
	time.Sleep(2 * time.Millisecond)

	registry.Event(childCtx, facade.LevelInfo,
		facade.Field{Name: "event_tag", Value: sectags.PerfTrace.ID()},
		facade.Field{Name: "message", Value: "computed result"},
		facade.Field{Name: "rows", Value: 42},
	)

	child.Exit()
	child.Close()

	registry.Event(ctx, facade.LevelError,
		facade.Field{Name: "alarm", Value: true},
		facade.Field{Name: "message", Value: "simulated degraded dependency"},
	)
}
