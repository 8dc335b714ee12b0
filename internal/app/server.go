package app

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jlucaswrk/vet-ai-chat/internal/api/handlers"
	"github.com/jlucaswrk/vet-ai-chat/internal/config"
	"github.com/jlucaswrk/vet-ai-chat/internal/core"
	"github.com/jlucaswrk/vet-ai-chat/internal/core/ingest"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, ingestor *ingest.Ingestor, provider core.ChatProvider) *Server {
	docHandler := handlers.NewDocumentHandler(ingestor, cfg)
	chatHandler := handlers.NewChatHandler(provider)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://vet-ai-chat.vercel.app", "http://localhost:3000"},
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return strings.HasSuffix(origin, ".vercel.app") ||
				origin == "https://vet-ai-chat.vercel.app" ||
				origin == "http://localhost:3000"
		},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	// Serve static files from the web directory
	fileServer := http.FileServer(http.Dir("./web"))
	r.Handle("/*", fileServer)

	r.Get("/health", handlers.Health)

	// API routes
	r.Route("/api", func(api chi.Router) {
		api.Post("/upload", docHandler.Upload)
		api.Post("/spaces/upload-url", docHandler.UploadURL)
		api.Post("/spaces/process", docHandler.ProcessStored)
		api.Post("/chat", chatHandler.Chat)
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
