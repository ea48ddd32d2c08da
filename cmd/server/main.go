package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/ratecraft/internal/config"
	"github.com/mmynk/ratecraft/internal/editor"
	"github.com/mmynk/ratecraft/internal/export"
	"github.com/mmynk/ratecraft/internal/metrics"
	"github.com/mmynk/ratecraft/internal/middleware"
	"github.com/mmynk/ratecraft/internal/persist"
	"github.com/mmynk/ratecraft/internal/render"
	"github.com/mmynk/ratecraft/internal/service"
	"github.com/mmynk/ratecraft/internal/storage"
	"github.com/mmynk/ratecraft/internal/storage/memory"
	"github.com/mmynk/ratecraft/internal/storage/redis"
	"github.com/mmynk/ratecraft/internal/storage/sqlite"
	"github.com/mmynk/ratecraft/pkg/api/apiconnect"
	"github.com/mmynk/ratecraft/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(ctx, cfg)
	defer store.Close()

	m := metrics.New()
	session := editor.New(
		persist.New(store, cfg.KeyPrefix),
		editor.WithRenderOptions(render.Options{Locale: cfg.Locale}),
		editor.WithRecorder(m),
	)
	session.Load(ctx)

	downloads := export.NewDownloads(cfg.DownloadTTL)
	exporter := export.New(export.WithDownloads(downloads), export.WithObserver(m))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(loggingMiddleware(corsMiddleware(routes(session, exporter, downloads, m))), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", cfg.Addr, "store", cfg.Store)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// openStore opens the configured backend. A backend that cannot be opened
// degrades to an in-memory store so startup never fails on persistence.
func openStore(ctx context.Context, cfg config.Config) storage.Store {
	var (
		store storage.Store
		err   error
	)
	switch cfg.Store {
	case config.StoreSQLite:
		store, err = sqlite.New(cfg.DBPath)
	case config.StoreRedis:
		store, err = redis.New(ctx, redis.Conf{Addr: cfg.RedisAddr, PW: cfg.RedisPW, DB: cfg.RedisDB})
	default:
		return memory.New()
	}
	if err != nil {
		slog.Warn("Storage unavailable, keeping state in memory only", "store", cfg.Store, "error", err)
		return memory.New()
	}
	slog.Info("Storage initialized", "store", cfg.Store)
	return store
}

func routes(session *editor.Session, exporter *export.Exporter, downloads *export.Downloads, m *metrics.Metrics) *http.ServeMux {
	interceptors := connect.WithInterceptors(
		middleware.RequestID(),
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewEditorServiceHandler(service.NewEditorService(session), interceptors))
	mux.Handle(apiconnect.NewSettingsServiceHandler(service.NewSettingsService(session), interceptors))
	mux.Handle(apiconnect.NewExportServiceHandler(service.NewExportService(session, exporter), interceptors))

	mux.Handle("GET "+service.DownloadsPath+"{token}", downloads)
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /{$}", service.NewPreviewHandler(session))
	return mux
}

// loggingMiddleware logs all plain HTTP requests; RPCs are logged by the
// interceptor.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id, Content-Disposition")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
