package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jlucaswrk/vet-ai-chat/internal/api/handlers"
	"github.com/jlucaswrk/vet-ai-chat/internal/config"
	"github.com/jlucaswrk/vet-ai-chat/internal/core/extract"
	"github.com/jlucaswrk/vet-ai-chat/internal/core/ingest"
)

// Standalone extraction service: receives a multipart upload, extracts
// and normalizes the text, returns it. Runs separately from the chat API
// so heavy parsing never competes with chat traffic. Only the direct
// in-memory path exists here; object storage is not wired behind it.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	extractor := extract.NewDocconvExtractor(false)
	ingestor := ingest.NewIngestor(nil, extractor, cfg)
	docHandler := handlers.NewDocumentHandler(ingestor, cfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://vet-ai-chat.vercel.app", "http://localhost:3000"},
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return strings.HasSuffix(origin, ".vercel.app") ||
				origin == "http://localhost:3000"
		},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", handlers.Root("VetAI File Processor"))
	r.Get("/health", handlers.Health)
	r.Post("/process", docHandler.ProcessDirect)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("File processor running on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
