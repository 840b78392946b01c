package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tobenna/maestro/internal/config"
	"github.com/tobenna/maestro/internal/database"
	"github.com/tobenna/maestro/internal/domains/chat"
	"github.com/tobenna/maestro/internal/domains/dataset"
	"github.com/tobenna/maestro/internal/domains/plan"
	"github.com/tobenna/maestro/internal/domains/query"
	"github.com/tobenna/maestro/internal/domains/routing"
	"github.com/tobenna/maestro/internal/domains/user"
	"github.com/tobenna/maestro/internal/embedding"
	chatrepo "github.com/tobenna/maestro/internal/repository/chat"
	documentrepo "github.com/tobenna/maestro/internal/repository/document"
	planrepo "github.com/tobenna/maestro/internal/repository/plan"
	userrepo "github.com/tobenna/maestro/internal/repository/user"
	"github.com/tobenna/maestro/internal/server"
	"github.com/tobenna/maestro/pkg/Logger"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
	geminiadapter "github.com/tobenna/maestro/pkg/assistant/adapters/gemini"
	ollamaadapter "github.com/tobenna/maestro/pkg/assistant/adapters/ollama"
	openaiadapter "github.com/tobenna/maestro/pkg/assistant/adapters/openai"
	geminiprovider "github.com/tobenna/maestro/pkg/assistant/providers/gemini"
	ollamaprovider "github.com/tobenna/maestro/pkg/assistant/providers/ollama"
	"github.com/tobenna/maestro/pkg/assistant/router"
)

// @title Maestro API
// @version 1.0
// @description Conversational assistant backend that routes prompts to chat, plan, query and database agents.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := Logger.New(cfg.Debug)
	logger.Info("Logger initialized")

	db, err := database.InitDB(*cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		logger.Warnf("Redis unavailable, chat caching disabled: %v", err)
		redisClient = nil
	}

	mux := buildMux(cfg, logger)

	embedder := embedding.NewTEIEmbedder(cfg.Embedder.URL, cfg.Embedder.ChunkSize, logger)

	chatRepository := chatrepo.New(db, redisClient, logger)
	userRepository := userrepo.New(db)
	planRepository := planrepo.New(db)
	documentRepository := documentrepo.New(db)

	registry := routing.NewRegistry(cfg.Agents)
	defaultLLM := defaultLLMType(cfg.Agents)

	userService := user.New(userRepository, cfg.Auth, logger)
	chatService := chat.New(chatRepository, mux, defaultLLM, logger)
	planService := plan.New(planRepository, mux, defaultLLM, logger)
	queryService := query.New(documentRepository, embedder, mux, logger)
	datasetService := dataset.New(db, mux, allDatasets(cfg.Agents), logger)

	routingService := routing.New(
		registry,
		routing.NewClassifier(mux, logger),
		chatRepository,
		chatService,
		planService,
		queryService,
		datasetService,
		logger,
	)

	engine := gin.Default()
	deps := server.NewServerDependencies(
		cfg, logger, userService, chatService, planService, queryService, routingService)
	server.InitializeRoutes(engine, deps)

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: engine.Handler(),
	}
	go func() {
		logger.Infof("Listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server exiting: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown err %v", err)
	}
	logger.Info("Shutdown system")
}

func buildMux(cfg *config.Settings, logger *Logger.Logger) *router.Mux {
	var registered []adapters.ContractAdapter

	if cfg.AssistantKeys.OpenAiApiKey != "" {
		registered = append(registered, openaiadapter.New(cfg.AssistantKeys.OpenAiApiKey))
	}
	if len(cfg.Ollama.Servers) > 0 {
		provider := ollamaprovider.New(cfg.Ollama)
		registered = append(registered, ollamaadapter.New(provider))
	}
	if cfg.AssistantKeys.GeminiApiKey != "" {
		provider, err := geminiprovider.New(context.Background(), cfg.AssistantKeys.GeminiApiKey)
		if err != nil {
			logger.Warnf("Gemini provider unavailable: %v", err)
		} else {
			registered = append(registered, geminiadapter.New(provider))
		}
	}

	if len(registered) == 0 {
		logger.Warn("No model providers configured; every dispatch will fail")
	}
	return router.NewMux(registered...)
}

func defaultLLMType(agents []config.AgentConfig) string {
	for _, a := range agents {
		if a.LLMType != "" {
			return a.LLMType
		}
	}
	return ""
}

func allDatasets(agents []config.AgentConfig) []config.DatasetConfig {
	var datasets []config.DatasetConfig
	seen := make(map[string]bool)
	for _, a := range agents {
		for _, ds := range a.Datasets {
			if !seen[ds.Name] {
				seen[ds.Name] = true
				datasets = append(datasets, ds)
			}
		}
	}
	return datasets
}
