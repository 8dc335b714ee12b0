package app

import (
	"context"
	"log"

	"github.com/jlucaswrk/vet-ai-chat/internal/config"
	"github.com/jlucaswrk/vet-ai-chat/internal/core/extract"
	"github.com/jlucaswrk/vet-ai-chat/internal/core/ingest"
	"github.com/jlucaswrk/vet-ai-chat/internal/core/llm"
	objectclient "github.com/jlucaswrk/vet-ai-chat/internal/core/object-client"
)

type App struct {
	ObjectClient *objectclient.SpacesClient
	Ingestor     *ingest.Ingestor
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	objClient, err := objectclient.NewSpacesClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	useReadability := false
	extractor := extract.NewDocconvExtractor(useReadability)

	ingestor := ingest.NewIngestor(objClient, extractor, cfg)
	chatProvider := llm.NewGeminiChat(cfg.GenModel)

	server := NewServer(cfg, ingestor, chatProvider)

	return &App{ObjectClient: objClient, Ingestor: ingestor, Server: server}, nil
}
