package routing

import (
	"context"
	"fmt"
	"strings"

	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
)

// Reasoner runs one completion against the model named by llmID.
// *router.Mux satisfies this.
type Reasoner interface {
	Run(ctx context.Context, llmID string, msgs []adapters.ContractMessage, tools []adapters.ContractTool) (*adapters.ContractOutput, error)
}

// maxHistoryTurns bounds how much prior conversation the intent model
// sees.
const maxHistoryTurns = 10

// Classifier decides the best route for a prompt by asking the agent's
// model.
type Classifier struct {
	reasoner Reasoner
	logger   *Logger.Logger
}

func NewClassifier(reasoner Reasoner, logger *Logger.Logger) *Classifier {
	return &Classifier{reasoner: reasoner, logger: logger}
}

// Classify runs the dispatch prompt and parses the chosen route from
// the model's answer. Parse failures fall back to the chat route;
// model transport failures propagate.
func (c *Classifier) Classify(ctx context.Context, agent *RoutingAgent, llmID, prompt string, history []types.ChatEntry) (RouteDescriptor, string, error) {
	msgs := make([]adapters.ContractMessage, 0, len(history)+2)
	msgs = append(msgs, adapters.ContractMessage{
		Role:    adapters.SYSTEM,
		Content: DispatchPrompt(agent),
	})
	msgs = append(msgs, historyMessages(history)...)
	msgs = append(msgs, adapters.ContractMessage{
		Role:    adapters.USER,
		Content: prompt,
	})

	out, err := c.reasoner.Run(ctx, llmID, msgs, nil)
	if err != nil {
		return RouteDescriptor{}, "", fmt.Errorf("intent agent %s: %w", agent.Name, err)
	}

	route := ParseRouteOutput(out.Text)
	c.logger.Infof("intent for agent %s chose route %s", agent.Name, route)
	return route, out.Trace, nil
}

// DispatchPrompt lists every route the agent can take: the fixed chat
// and plan capabilities first, then its query engines and datasets
// with their topics, in registration order.
func DispatchPrompt(agent *RoutingAgent) string {
	var b strings.Builder
	b.WriteString("The AI Routing Assistant has access to the following routes for a user prompt:\n")
	b.WriteString("- Chat to perform generic chat conversation.\n")
	b.WriteString("- Plan to compose, generate or create a plan.\n")
	for _, qe := range agent.QueryEngines {
		fmt.Fprintf(&b,
			"- [Query:%s] to run a query on a search engine for information (not raw data) on the topics of %s\n",
			qe.Name, qe.Description)
	}
	for _, ds := range agent.Datasets {
		fmt.Fprintf(&b,
			"- [Database:%s] to use SQL to retrieve rows of data from a database for data related to these areas: %s\n",
			ds.Name, ds.Description)
	}
	b.WriteString("Choose one route for the question below and answer with a single line of the form \"Route: <choice>\".\n")
	return b.String()
}

func historyMessages(history []types.ChatEntry) []adapters.ContractMessage {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	msgs := make([]adapters.ContractMessage, 0, len(history))
	for _, entry := range history {
		output, ok := entry[chatAIField].(string)
		if !ok || output == "" {
			continue
		}
		msgs = append(msgs, adapters.ContractMessage{
			Role:    adapters.ASSISTANT,
			Content: output,
		})
	}
	return msgs
}
