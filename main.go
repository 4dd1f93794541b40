package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/lukenewport-prog/nptgpt/config"
	"github.com/lukenewport-prog/nptgpt/controllers"
	"github.com/lukenewport-prog/nptgpt/routes"
	"github.com/lukenewport-prog/nptgpt/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize conversation store: %v", err)
	}

	encoder := services.NewImageEncoder(cfg.StaticDir)
	composer := services.NewMessageComposer(encoder)
	completer := services.NewOpenAIService(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	chat := services.NewChatService(store, composer, completer)
	auth := services.NewAuthService(cfg.AuthUsername, cfg.AuthPassword, cfg.JWTSecret)

	router := routes.SetupRouter(routes.Options{
		StaticDir: cfg.StaticDir,
		UploadDir: cfg.UploadDir,
		Auth:      auth,
		Chat:      chat,
		Upload:    controllers.NewUploadController(cfg.UploadDir),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Server starting on port %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func newStore(cfg *config.Config) (services.ConversationStore, error) {
	switch cfg.StoreBackend {
	case "dynamodb":
		return services.NewDynamoStore(context.Background(), services.DynamoOptions{
			Endpoint: cfg.DynamoEndpoint,
			Region:   cfg.DynamoRegion,
			Table:    cfg.DynamoTable,
		})
	default:
		return services.NewMemoryStore(), nil
	}
}
