package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/procyonhq/defscope/internal/config"
	dbRedis "github.com/procyonhq/defscope/internal/db/redis"
	"github.com/procyonhq/defscope/internal/domain/record"
	"github.com/procyonhq/defscope/internal/lexicon"
	logpkg "github.com/procyonhq/defscope/internal/logger"
	"github.com/procyonhq/defscope/internal/metrics"
	"github.com/procyonhq/defscope/internal/repository/corpus"
	"github.com/procyonhq/defscope/internal/transport/chihttp"
	analyticsuc "github.com/procyonhq/defscope/internal/usecase/analytics"
	"github.com/procyonhq/defscope/internal/usecase/classify"
	healthuc "github.com/procyonhq/defscope/internal/usecase/health"
	ingestuc "github.com/procyonhq/defscope/internal/usecase/ingest"
	searchuc "github.com/procyonhq/defscope/internal/usecase/search"
	"github.com/procyonhq/defscope/internal/version"
)

// corpusRepo is the corpus surface the composition root wires together.
type corpusRepo interface {
	Store(ctx context.Context, records ...record.Record) error
	List(ctx context.Context) ([]record.Record, error)
	Ping(ctx context.Context) error
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting defscope API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("corpus_driver", cfg.Corpus.Driver),
	)

	// Load vocabulary: builtin defaults, optionally overridden from file
	lex := lexicon.Default()
	if cfg.Lexicon.Path != "" {
		lex, err = lexicon.Load(cfg.Lexicon.Path)
		if err != nil {
			logger.Fatal("Failed to load lexicon", zap.Error(err))
		}
		logger.Info("Loaded lexicon overrides", zap.String("path", cfg.Lexicon.Path))
	}

	// Create corpus repository based on driver
	var repo corpusRepo
	switch cfg.Corpus.Driver {
	case "memory":
		repo = corpus.NewMemory()
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Corpus.Addrs,
			Password: cfg.Corpus.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Corpus.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(context.Background(), readiness); err != nil {
			logger.Fatal("Corpus store not ready", zap.Error(err))
		}
		logger.Info("Connected to corpus store")

		repo = corpus.NewRedis(store, cfg.Corpus.KeyPrefix)
	default:
		logger.Fatal("Unknown corpus driver", zap.String("driver", cfg.Corpus.Driver))
	}

	// Register domain metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Create use case services
	classifier := classify.New(lex)
	pipeline, err := ingestuc.New(classifier, repo, cfg.Ingest.PoolSize, logger)
	if err != nil {
		logger.Fatal("Failed to create ingest pipeline", zap.Error(err))
	}
	defer pipeline.Release()

	searchSvc := searchuc.New(lex)
	analyticsSvc := analyticsuc.New(searchSvc).WithTopK(cfg.Search.AnalyticsTopK)
	healthSvc := healthuc.New(repo)

	// Create chi server
	server := chihttp.NewServer(repo, pipeline, searchSvc, analyticsSvc, healthSvc, logger).
		WithMaxBatchSize(cfg.Ingest.MaxBatchSize)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
