package ollama

import (
	"context"
	"fmt"
	"log"

	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"
	"github.com/tobenna/maestro/internal/config"
)

// OllamaProvider fronts one or more ollama hosts through a farm and
// hands requests to the first one that is online.
type OllamaProvider struct {
	farm *ollamafarm.Farm
}

func New(cfg config.OllamaConfig) OllamaProvider {
	farm := ollamafarm.New()

	for _, srv := range cfg.Servers {
		if err := farm.RegisterURL(srv.URL, nil); err != nil {
			log.Printf("ollama server registration failed for %s: %v", srv.URL, err)
		}
	}

	return OllamaProvider{farm: farm}
}

func (o *OllamaProvider) Chat(
	ctx context.Context,
	req api.ChatRequest,
	fn api.ChatResponseFunc,
) error {
	ollama := o.farm.First(&ollamafarm.Where{Offline: false})
	if ollama == nil {
		return fmt.Errorf("no online ollama host for model %v", req.Model)
	}
	return ollama.Client().Chat(ctx, &req, fn)
}
