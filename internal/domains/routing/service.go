package routing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/domains/chat"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
)

// chatAIField keys the assistant's answer inside a history entry.
const chatAIField = "AIOutput"

const (
	dbResultFoundMsg    = "Here is the database query result in the attached resource."
	dbResultNotFoundMsg = "Unable to find the query result from the database."
)

// Fixed collaborator agents for the chat and plan routes.
const (
	chatAgentName = "Chat"
	planAgentName = "Plan"
)

// Envelope is the normalized response of one dispatch.
type Envelope map[string]any

type DispatchRequest struct {
	AgentName string
	Prompt    string
	User      *types.User
	ChatID    uuid.UUID
	// LLMType optionally overrides the routing agent's model.
	LLMType string
}

// Collaborators behind the routes. Each is the narrow slice of a
// domain service the dispatcher needs.
type (
	ChatAgent interface {
		RunAgent(ctx context.Context, agentName string, prompt string) (string, error)
	}
	PlanAgent interface {
		GeneratePlan(ctx context.Context, agentName string, prompt string, userID uuid.UUID) (string, *types.Plan, error)
	}
	QueryAgent interface {
		Generate(ctx context.Context, userID uuid.UUID, prompt, engineName, llmID string, sentenceReferences bool) (*types.QueryResult, []types.QueryReference, error)
	}
	DBAgent interface {
		RunDBAgent(ctx context.Context, prompt, llmID, datasetName, userEmail string) (*types.DBResult, string, error)
	}
)

// RoutingService classifies a prompt, executes the chosen route and
// folds the result into the conversation.
type RoutingService interface {
	Dispatch(ctx context.Context, req DispatchRequest) (Envelope, error)
	Registry() *Registry
}

type routingService struct {
	registry   *Registry
	classifier *Classifier
	chats      chat.ChatRepository
	chatAgent  ChatAgent
	planAgent  PlanAgent
	queryAgent QueryAgent
	dbAgent    DBAgent
	logger     *Logger.Logger
}

func New(
	registry *Registry,
	classifier *Classifier,
	chats chat.ChatRepository,
	chatAgent ChatAgent,
	planAgent PlanAgent,
	queryAgent QueryAgent,
	dbAgent DBAgent,
	logger *Logger.Logger,
) RoutingService {
	return &routingService{
		registry:   registry,
		classifier: classifier,
		chats:      chats,
		chatAgent:  chatAgent,
		planAgent:  planAgent,
		queryAgent: queryAgent,
		dbAgent:    dbAgent,
		logger:     logger,
	}
}

func (s *routingService) Registry() *Registry {
	return s.registry
}

// Dispatch implements RoutingService. Exactly one history entry is
// appended per successful dispatch; any error leaves the conversation
// untouched.
func (s *routingService) Dispatch(ctx context.Context, req DispatchRequest) (Envelope, error) {
	agent, err := s.registry.Lookup(req.AgentName)
	if err != nil {
		return nil, err
	}

	llmID := req.LLMType
	if llmID == "" {
		llmID = agent.LLMType
	}
	if llmID == "" {
		return nil, fmt.Errorf("%w: %s", ErrLLMTypeUnset, agent.Name)
	}

	userChat, err := s.chats.Get(ctx, req.ChatID)
	if err != nil {
		return nil, err
	}
	if userChat.UserID != req.User.ID {
		return nil, chat.ErrNotChatOwner
	}

	route, routeLogs, err := s.classifier.Classify(ctx, agent, llmID, req.Prompt, userChat.History)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("agent %s routed prompt to %s", agent.Name, route)

	entry := types.ChatEntry{
		"route":      string(route.Kind()),
		"route_name": route.String(),
	}
	var payload Envelope
	var agentLogs string

	switch route.Kind() {
	case RouteQuery:
		engineName := route.Target()
		if _, ok := agent.FindQueryEngine(engineName); !ok {
			return nil, fmt.Errorf("%w: %s", ErrQueryEngineNotFound, engineName)
		}

		result, references, err := s.queryAgent.Generate(
			ctx, req.User.ID, req.Prompt, engineName, llmID, true)
		if err != nil {
			return nil, err
		}

		payload = Envelope{
			"route":            string(RouteQuery),
			"route_name":       "Query Engine: " + engineName,
			"output":           result.Response,
			"query_engine_id":  result.QueryEngineID.String(),
			"query_references": references,
		}
		entry = entryFromPayload(payload)
		entry[chatAIField] = result.Response

	case RouteDatabase:
		datasetName := route.Target()
		if _, ok := agent.FindDataset(datasetName); !ok {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, datasetName)
		}

		dbResult, logs, err := s.dbAgent.RunDBAgent(
			ctx, req.Prompt, llmID, datasetName, req.User.Email)
		if err != nil {
			return nil, err
		}
		agentLogs = logs

		responseOutput := dbResultNotFoundMsg
		if len(dbResult.Data) > 0 {
			responseOutput = dbResultFoundMsg
		}

		payload = Envelope{
			"route":      string(RouteDatabase),
			"route_name": "Database Query: " + datasetName,
			chatAIField:  responseOutput,
			"content":    responseOutput,
			"dataset":    datasetName,
			"resources":  dbResult.Resources,
		}
		entry = entryFromPayload(payload)

	case RoutePlan:
		output, userPlan, err := s.planAgent.GeneratePlan(
			ctx, planAgentName, req.Prompt, req.User.ID)
		if err != nil {
			return nil, err
		}
		agentLogs = output

		planData := userPlan.Fields(true)
		entry[chatAIField] = output
		entry["plan"] = planData

		payload = Envelope{
			"route":      string(RoutePlan),
			"route_name": string(RoutePlan),
			"content":    output,
			"plan":       planData,
		}

	default:
		output, err := s.chatAgent.RunAgent(ctx, chatAgentName, req.Prompt)
		if err != nil {
			return nil, err
		}

		entry[chatAIField] = output
		payload = Envelope{
			"route":      string(RouteChat),
			"route_name": string(RouteChat),
			"content":    output,
		}
	}

	if agentLogs != "" {
		entry["agent_logs"] = agentLogs
		payload["agent_logs"] = agentLogs
	}
	if routeLogs != "" {
		entry["route_logs"] = routeLogs
		payload["route_logs"] = routeLogs
	}

	updated, err := s.chats.AppendEntry(ctx, userChat.ID, entry)
	if err != nil {
		return nil, err
	}
	payload["chat"] = updated.Fields(true)

	return payload, nil
}

func entryFromPayload(payload Envelope) types.ChatEntry {
	entry := make(types.ChatEntry, len(payload)+1)
	for k, v := range payload {
		entry[k] = v
	}
	return entry
}
