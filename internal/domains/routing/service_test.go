package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobenna/maestro/internal/config"
	chatdomain "github.com/tobenna/maestro/internal/domains/chat"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
)

type memChatRepo struct {
	chats map[uuid.UUID]*types.Chat
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{chats: make(map[uuid.UUID]*types.Chat)}
}

func (m *memChatRepo) Get(_ context.Context, chatID uuid.UUID) (*types.Chat, error) {
	c, ok := m.chats[chatID]
	if !ok {
		return nil, chatdomain.ErrChatNotFound
	}
	cp := *c
	cp.History = append([]types.ChatEntry(nil), c.History...)
	return &cp, nil
}

func (m *memChatRepo) Create(_ context.Context, c *types.Chat) error {
	m.chats[c.ID] = c
	return nil
}

func (m *memChatRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]types.Chat, error) {
	var out []types.Chat
	for _, c := range m.chats {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memChatRepo) AppendEntry(_ context.Context, chatID uuid.UUID, entry types.ChatEntry) (*types.Chat, error) {
	c, ok := m.chats[chatID]
	if !ok {
		return nil, chatdomain.ErrChatNotFound
	}
	c.History = append(c.History, entry)
	cp := *c
	cp.History = append([]types.ChatEntry(nil), c.History...)
	return &cp, nil
}

type stubChatAgent struct {
	out string
	err error
}

func (s *stubChatAgent) RunAgent(_ context.Context, _ string, _ string) (string, error) {
	return s.out, s.err
}

type stubPlanAgent struct {
	output string
	plan   *types.Plan
	err    error
}

func (s *stubPlanAgent) GeneratePlan(_ context.Context, _ string, _ string, _ uuid.UUID) (string, *types.Plan, error) {
	return s.output, s.plan, s.err
}

type stubQueryAgent struct {
	result     *types.QueryResult
	refs       []types.QueryReference
	err        error
	lastEngine string
	lastRefs   bool
}

func (s *stubQueryAgent) Generate(_ context.Context, _ uuid.UUID, _, engineName, _ string, sentenceReferences bool) (*types.QueryResult, []types.QueryReference, error) {
	s.lastEngine = engineName
	s.lastRefs = sentenceReferences
	return s.result, s.refs, s.err
}

type stubDBAgent struct {
	result *types.DBResult
	logs   string
	err    error
}

func (s *stubDBAgent) RunDBAgent(_ context.Context, _, _, _, _ string) (*types.DBResult, string, error) {
	return s.result, s.logs, s.err
}

type dispatchFixture struct {
	svc    RoutingService
	repo   *memChatRepo
	chatID uuid.UUID
	user   *types.User
	query  *stubQueryAgent
}

func newDispatchFixture(t *testing.T, reasoner *fakeReasoner, chatA *stubChatAgent, planA *stubPlanAgent, queryA *stubQueryAgent, dbA *stubDBAgent) *dispatchFixture {
	t.Helper()

	repo := newMemChatRepo()
	user := &types.User{ID: uuid.New(), Email: "ada@example.com"}
	chatID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &types.Chat{
		ID:      chatID,
		UserID:  user.ID,
		History: []types.ChatEntry{},
	}))

	registry := NewRegistry(testAgentConfigs())
	classifier := NewClassifier(reasoner, Logger.Noop())
	svc := New(registry, classifier, repo, chatA, planA, queryA, dbA, Logger.Noop())

	return &dispatchFixture{svc: svc, repo: repo, chatID: chatID, user: user, query: queryA}
}

func (f *dispatchFixture) dispatch(t *testing.T, prompt string) (Envelope, error) {
	t.Helper()
	return f.svc.Dispatch(context.Background(), DispatchRequest{
		AgentName: "Router",
		Prompt:    prompt,
		User:      f.user,
		ChatID:    f.chatID,
	})
}

func (f *dispatchFixture) history(t *testing.T) []types.ChatEntry {
	t.Helper()
	c, err := f.repo.Get(context.Background(), f.chatID)
	require.NoError(t, err)
	return c.History
}

func TestDispatchChatRoute(t *testing.T) {
	reasoner := &fakeReasoner{text: "no route marker here", trace: "intent trace"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{out: "hello there"}, &stubPlanAgent{}, &stubQueryAgent{}, &stubDBAgent{})

	payload, err := f.dispatch(t, "hi")
	require.NoError(t, err)

	assert.Equal(t, "Chat", payload["route"])
	assert.Equal(t, "Chat", payload["route_name"])
	assert.Equal(t, "hello there", payload["content"])
	assert.Equal(t, "intent trace", payload["route_logs"])

	history := f.history(t)
	require.Len(t, history, 1)
	assert.Equal(t, "hello there", history[0]["AIOutput"])
	assert.Equal(t, "intent trace", history[0]["route_logs"])

	chatData, ok := payload["chat"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, f.chatID.String(), chatData["id"])
}

func TestDispatchQueryRoute(t *testing.T) {
	engineID := uuid.New()
	queryA := &stubQueryAgent{
		result: &types.QueryResult{Response: "42 flights", QueryEngineID: engineID},
		refs:   []types.QueryReference{{Chunk: "flights left SFO", Sentence: "42 flights"}},
	}
	reasoner := &fakeReasoner{text: "Route: Query:flights"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{}, &stubPlanAgent{}, queryA, &stubDBAgent{})

	payload, err := f.dispatch(t, "how many flights left SFO?")
	require.NoError(t, err)

	assert.Equal(t, "Query", payload["route"])
	assert.Equal(t, "Query Engine: flights", payload["route_name"])
	assert.Equal(t, "42 flights", payload["output"])
	assert.Equal(t, engineID.String(), payload["query_engine_id"])
	assert.Equal(t, "flights", queryA.lastEngine)
	assert.True(t, queryA.lastRefs)

	history := f.history(t)
	require.Len(t, history, 1)
	assert.Equal(t, "42 flights", history[0]["AIOutput"])
	assert.Equal(t, "42 flights", history[0]["output"])
}

func TestDispatchQueryUnknownEngine(t *testing.T) {
	reasoner := &fakeReasoner{text: "Route: Query:weather"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{}, &stubPlanAgent{}, &stubQueryAgent{}, &stubDBAgent{})

	_, err := f.dispatch(t, "what's the weather?")
	require.ErrorIs(t, err, ErrQueryEngineNotFound)
	assert.Empty(t, f.history(t), "failed dispatch must not touch the conversation")
}

func TestDispatchDatabaseRouteWithRows(t *testing.T) {
	dbA := &stubDBAgent{
		result: &types.DBResult{
			Data:      []map[string]any{{"total": 12}},
			Resources: map[string]any{"query": "SELECT 1"},
		},
		logs: "sql agent logs",
	}
	reasoner := &fakeReasoner{text: "Route: Database:sales"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{}, &stubPlanAgent{}, &stubQueryAgent{}, dbA)

	payload, err := f.dispatch(t, "total sales last month")
	require.NoError(t, err)

	assert.Equal(t, "Here is the database query result in the attached resource.", payload["content"])
	assert.Equal(t, "Database Query: sales", payload["route_name"])
	assert.Equal(t, "sales", payload["dataset"])
	assert.Equal(t, "sql agent logs", payload["agent_logs"])

	history := f.history(t)
	require.Len(t, history, 1)
	assert.Equal(t, "Here is the database query result in the attached resource.", history[0]["AIOutput"])
	assert.Equal(t, "sql agent logs", history[0]["agent_logs"])
}

func TestDispatchDatabaseRouteNoRows(t *testing.T) {
	dbA := &stubDBAgent{result: &types.DBResult{Resources: map[string]any{}}}
	reasoner := &fakeReasoner{text: "Route: Database:sales"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{}, &stubPlanAgent{}, &stubQueryAgent{}, dbA)

	payload, err := f.dispatch(t, "sales for a year we have no data for")
	require.NoError(t, err)
	assert.Equal(t, "Unable to find the query result from the database.", payload["content"])
}

func TestDispatchDatabaseUnknownDataset(t *testing.T) {
	reasoner := &fakeReasoner{text: "Route: Database:inventory"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{}, &stubPlanAgent{}, &stubQueryAgent{}, &stubDBAgent{})

	_, err := f.dispatch(t, "inventory levels")
	require.ErrorIs(t, err, ErrDatasetNotFound)
	assert.Empty(t, f.history(t))
}

func TestDispatchPlanRoute(t *testing.T) {
	userPlan := &types.Plan{
		ID:    uuid.New(),
		Steps: []types.PlanStep{{Index: 1, Description: "book flights"}},
	}
	planA := &stubPlanAgent{output: "1. book flights", plan: userPlan}
	reasoner := &fakeReasoner{text: "Route: Plan"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{}, planA, &stubQueryAgent{}, &stubDBAgent{})

	payload, err := f.dispatch(t, "plan my trip")
	require.NoError(t, err)

	assert.Equal(t, "Plan", payload["route"])
	assert.Equal(t, "Plan", payload["route_name"])
	assert.Equal(t, "1. book flights", payload["content"])
	assert.Equal(t, "1. book flights", payload["agent_logs"])

	planData, ok := payload["plan"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, userPlan.ID.String(), planData["id"])

	history := f.history(t)
	require.Len(t, history, 1)
	assert.Equal(t, "1. book flights", history[0]["AIOutput"])
	assert.Equal(t, planData, history[0]["plan"])
}

func TestDispatchAppendsOneEntryPerCall(t *testing.T) {
	reasoner := &fakeReasoner{text: "Route: Chat"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{out: "ok"}, &stubPlanAgent{}, &stubQueryAgent{}, &stubDBAgent{})

	_, err := f.dispatch(t, "first")
	require.NoError(t, err)
	_, err = f.dispatch(t, "second")
	require.NoError(t, err)

	assert.Len(t, f.history(t), 2)
}

func TestDispatchForeignChatRejected(t *testing.T) {
	reasoner := &fakeReasoner{text: "Route: Chat"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{out: "ok"}, &stubPlanAgent{}, &stubQueryAgent{}, &stubDBAgent{})

	_, err := f.dispatch(t, "owner turn")
	require.NoError(t, err)

	intruder := &types.User{ID: uuid.New(), Email: "eve@example.com"}
	payload, err := f.svc.Dispatch(context.Background(), DispatchRequest{
		AgentName: "Router",
		Prompt:    "what did they say?",
		User:      intruder,
		ChatID:    f.chatID,
	})
	require.ErrorIs(t, err, chatdomain.ErrNotChatOwner)
	assert.Nil(t, payload, "foreign dispatch must not leak the conversation")
	assert.Len(t, f.history(t), 1, "foreign dispatch must not touch the conversation")
}

func TestDispatchCollaboratorErrorLeavesHistory(t *testing.T) {
	boom := errors.New("chat model offline")
	reasoner := &fakeReasoner{text: "Route: Chat"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{err: boom}, &stubPlanAgent{}, &stubQueryAgent{}, &stubDBAgent{})

	_, err := f.dispatch(t, "hi")
	require.ErrorIs(t, err, boom)
	assert.Empty(t, f.history(t))
}

func TestDispatchUnknownAgent(t *testing.T) {
	reasoner := &fakeReasoner{text: "Route: Chat"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{}, &stubPlanAgent{}, &stubQueryAgent{}, &stubDBAgent{})

	_, err := f.svc.Dispatch(context.Background(), DispatchRequest{
		AgentName: "ghost",
		Prompt:    "hi",
		User:      f.user,
		ChatID:    f.chatID,
	})
	require.ErrorIs(t, err, ErrAgentNotFound)
}

func TestDispatchLLMTypeUnset(t *testing.T) {
	registry := NewRegistry([]config.AgentConfig{
		{Name: "Bare", Capabilities: []string{"Route"}},
	})
	repo := newMemChatRepo()
	chatID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &types.Chat{ID: chatID}))

	svc := New(registry, NewClassifier(&fakeReasoner{}, Logger.Noop()), repo,
		&stubChatAgent{}, &stubPlanAgent{}, &stubQueryAgent{}, &stubDBAgent{}, Logger.Noop())

	_, err := svc.Dispatch(context.Background(), DispatchRequest{
		AgentName: "Bare",
		Prompt:    "hi",
		User:      &types.User{ID: uuid.New()},
		ChatID:    chatID,
	})
	require.ErrorIs(t, err, ErrLLMTypeUnset)
}

func TestDispatchLLMTypeOverride(t *testing.T) {
	reasoner := &fakeReasoner{text: "Route: Chat"}
	f := newDispatchFixture(t, reasoner,
		&stubChatAgent{out: "ok"}, &stubPlanAgent{}, &stubQueryAgent{}, &stubDBAgent{})

	_, err := f.svc.Dispatch(context.Background(), DispatchRequest{
		AgentName: "Router",
		Prompt:    "hi",
		User:      f.user,
		ChatID:    f.chatID,
		LLMType:   "ollama:llama3:8b",
	})
	require.NoError(t, err)
	assert.Equal(t, "ollama:llama3:8b", reasoner.lastLLM)
}
