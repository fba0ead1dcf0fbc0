package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/amaru-ids/flowsink/internal/application"
	"github.com/amaru-ids/flowsink/internal/application/ingest"
	"github.com/amaru-ids/flowsink/internal/config"
	domain "github.com/amaru-ids/flowsink/internal/domain/batch"
	"github.com/amaru-ids/flowsink/internal/infra/batchlog"
	"github.com/amaru-ids/flowsink/internal/infra/httpserver"
	minioArchive "github.com/amaru-ids/flowsink/internal/infra/storage"
	"github.com/amaru-ids/flowsink/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config (missing file falls back to defaults)
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// batch log dir is created once here, never per request
	store, err := batchlog.New(cfg.Logs.Dir)
	if err != nil {
		log.Fatalf("batch log init error: %v", err)
	}

	// optional MinIO archive
	var archiver domain.Archiver
	if cfg.Archive.Enabled {
		a, err := minioArchive.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.Prefix,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			log.Fatalf("archive init error: %v", err)
		}
		archiver = a
	}

	// init service
	svc := &ingest.Service{
		Log:     store,
		Archive: archiver,
		Clock:   application.SystemClock{},
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	mux.Mount("/", httpserver.NewRouter(svc))

	addr := cfg.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("starting flowsink test server")
		log.Printf("server listening on %s", addr)
		log.Printf("batches will be saved to %s/", store.Dir())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
