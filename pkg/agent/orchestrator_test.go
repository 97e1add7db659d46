package agent

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"planhub-be/internal/entity"
	"planhub-be/internal/repository/contract"
	"planhub-be/internal/repository/specification"
	"planhub-be/internal/repository/unitofwork"
	"planhub-be/pkg/agent/tools"
	"planhub-be/pkg/llm"

	"github.com/google/uuid"
)

// --- fakes ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeLLM struct {
	generateFn   func(ctx context.Context, prompt string) (string, error)
	chatStreamFn func(ctx context.Context, history []llm.Message, onChunk func(llm.StreamChunk) error) error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if f.generateFn == nil {
		return "false", nil
	}
	return f.generateFn(ctx, prompt)
}

func (f *fakeLLM) ChatStream(ctx context.Context, history []llm.Message, onChunk func(llm.StreamChunk) error, options ...llm.Option) error {
	return f.chatStreamFn(ctx, history, onChunk)
}

type fakeRetriever struct {
	docs []*contract.ScoredRetrievalDocument
	err  error
}

func (f *fakeRetriever) SearchSimilarDocuments(ctx context.Context, query string, topK int, orgId, userId, projectId uuid.UUID) ([]*contract.ScoredRetrievalDocument, error) {
	return f.docs, f.err
}

type fakeSessionRepo struct {
	mu      sync.Mutex
	session *entity.ChatSession
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error { return nil }

func (f *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = session
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, nil
}

func (f *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	return nil, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.ChatMessage
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessageRepo) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}

func (f *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.ChatMessage, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

func (f *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.messages)), nil
}

func (f *fakeMessageRepo) byRole(role string) []*entity.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ChatMessage
	for _, m := range f.messages {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}

type fakeUnitOfWork struct {
	sessions *fakeSessionRepo
	messages *fakeMessageRepo
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) OrganizationRepository() contract.OrganizationRepository { return nil }
func (f *fakeUnitOfWork) ProjectRepository() contract.ProjectRepository           { return nil }
func (f *fakeUnitOfWork) InitiativeRepository() contract.InitiativeRepository     { return nil }
func (f *fakeUnitOfWork) MilestoneRepository() contract.MilestoneRepository       { return nil }
func (f *fakeUnitOfWork) ObjectiveRepository() contract.ObjectiveRepository       { return nil }
func (f *fakeUnitOfWork) KeyResultRepository() contract.KeyResultRepository       { return nil }
func (f *fakeUnitOfWork) SprintRepository() contract.SprintRepository             { return nil }
func (f *fakeUnitOfWork) WorkItemRepository() contract.WorkItemRepository         { return nil }

func (f *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository { return f.sessions }
func (f *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository { return f.messages }
func (f *fakeUnitOfWork) RetrievalDocumentRepository() contract.RetrievalDocumentRepository {
	return nil
}
func (f *fakeUnitOfWork) SequenceRepository() contract.SequenceRepository { return nil }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// --- harness ---

type harness struct {
	llm      *fakeLLM
	sessions *fakeSessionRepo
	messages *fakeMessageRepo
	req      Request
}

func newHarness(title string) *harness {
	sessionId := uuid.New()
	orgId := uuid.New()
	userId := uuid.New()
	return &harness{
		llm: &fakeLLM{},
		sessions: &fakeSessionRepo{
			session: &entity.ChatSession{
				Id:             sessionId,
				OrganizationId: orgId,
				UserId:         userId,
				Title:          title,
				CreatedAt:      time.Now(),
			},
		},
		messages: &fakeMessageRepo{},
		req: Request{
			SessionID: sessionId,
			OrgID:     orgId,
			UserID:    userId,
			Message:   "What is in the current sprint?",
		},
	}
}

func (h *harness) orchestrator(registry *tools.Registry, timeout time.Duration) *Orchestrator {
	if registry == nil {
		registry = tools.NewRegistry()
	}
	factory := &fakeFactory{uow: &fakeUnitOfWork{sessions: h.sessions, messages: h.messages}}
	return NewOrchestrator(
		h.llm,
		NewClassifier(h.llm, ""),
		&fakeRetriever{},
		registry,
		factory,
		nopLogger{},
		timeout,
		3,
	)
}

func (h *harness) run(t *testing.T, o *Orchestrator) []ChatEvent {
	t.Helper()
	var events []ChatEvent
	o.Run(context.Background(), h.req, func(event ChatEvent) {
		events = append(events, event)
	})
	return events
}

// --- tests ---

func TestRunStreamsModelChunks(t *testing.T) {
	h := newHarness("Existing title")
	h.llm.chatStreamFn = func(ctx context.Context, history []llm.Message, onChunk func(llm.StreamChunk) error) error {
		onChunk(llm.StreamChunk{Content: "The sprint has "})
		onChunk(llm.StreamChunk{Content: "two items."})
		onChunk(llm.StreamChunk{Done: true})
		return nil
	}

	events := h.run(t, h.orchestrator(nil, time.Second))

	if len(events) != 2 {
		t.Fatalf("event count = %d, want 2", len(events))
	}
	for i, e := range events {
		if e.Type != EventTypeMessage {
			t.Errorf("events[%d].Type = %q, want %q", i, e.Type, EventTypeMessage)
		}
	}
	if events[0].ID != "1" || events[1].ID != "2" {
		t.Errorf("event IDs = %q, %q, want monotonic from 1", events[0].ID, events[1].ID)
	}

	ai := h.messages.byRole("ai")
	if len(ai) != 1 {
		t.Fatalf("ai message count = %d, want 1", len(ai))
	}
	if ai[0].Chat != "The sprint has two items." {
		t.Errorf("saved response = %q, want the concatenated chunks", ai[0].Chat)
	}
	human := h.messages.byRole("human")
	if len(human) != 1 || human[0].Chat != h.req.Message {
		t.Errorf("human transcript = %+v, want the request message recorded once", human)
	}
}

func TestRunTimeoutEmitsSingleError(t *testing.T) {
	h := newHarness("Existing title")
	h.llm.chatStreamFn = func(ctx context.Context, history []llm.Message, onChunk func(llm.StreamChunk) error) error {
		<-ctx.Done()
		return ctx.Err()
	}

	events := h.run(t, h.orchestrator(nil, 30*time.Millisecond))

	if len(events) != 1 {
		t.Fatalf("event count = %d, want exactly 1", len(events))
	}
	if events[0].Type != EventTypeError {
		t.Errorf("event type = %q, want %q", events[0].Type, EventTypeError)
	}
	if events[0].Data != "The assistant took too long to respond." {
		t.Errorf("event data = %q", events[0].Data)
	}
	if ai := h.messages.byRole("ai"); len(ai) != 0 {
		t.Errorf("ai message count = %d, want 0 after timeout", len(ai))
	}
}

func TestRunUnknownSession(t *testing.T) {
	h := newHarness("")
	h.sessions.session = nil

	events := h.run(t, h.orchestrator(nil, time.Second))

	if len(events) != 1 {
		t.Fatalf("event count = %d, want 1", len(events))
	}
	if events[0].Type != EventTypeError || events[0].Data != "Conversation not found." {
		t.Errorf("event = %+v, want conversation-not-found error", events[0])
	}
	if len(h.messages.messages) != 0 {
		t.Errorf("message count = %d, want nothing recorded", len(h.messages.messages))
	}
}

func TestRunSetsTitleFromFirstMessage(t *testing.T) {
	h := newHarness("")
	h.llm.chatStreamFn = func(ctx context.Context, history []llm.Message, onChunk func(llm.StreamChunk) error) error {
		onChunk(llm.StreamChunk{Content: "Done.", Done: true})
		return nil
	}

	h.run(t, h.orchestrator(nil, time.Second))

	if h.sessions.session.Title != h.req.Message {
		t.Errorf("session title = %q, want %q", h.sessions.session.Title, h.req.Message)
	}
}

func TestRunTruncatesLongTitle(t *testing.T) {
	h := newHarness("")
	h.req.Message = strings.Repeat("a", 200)
	h.llm.chatStreamFn = func(ctx context.Context, history []llm.Message, onChunk func(llm.StreamChunk) error) error {
		onChunk(llm.StreamChunk{Content: "ok", Done: true})
		return nil
	}

	h.run(t, h.orchestrator(nil, time.Second))

	if got := len(h.sessions.session.Title); got != sessionTitleMaxLen {
		t.Errorf("title length = %d, want %d", got, sessionTitleMaxLen)
	}
}

func TestRunTruncatesTitleOnRuneBoundary(t *testing.T) {
	h := newHarness("")
	h.req.Message = strings.Repeat("é", 200)
	h.llm.chatStreamFn = func(ctx context.Context, history []llm.Message, onChunk func(llm.StreamChunk) error) error {
		onChunk(llm.StreamChunk{Content: "ok", Done: true})
		return nil
	}

	h.run(t, h.orchestrator(nil, time.Second))

	title := h.sessions.session.Title
	if !utf8.ValidString(title) {
		t.Errorf("title is not valid UTF-8: %q", title)
	}
	if got := utf8.RuneCountInString(title); got != sessionTitleMaxLen {
		t.Errorf("title rune count = %d, want %d", got, sessionTitleMaxLen)
	}
}

func TestRunKeepsExistingTitle(t *testing.T) {
	h := newHarness("Existing title")
	h.llm.chatStreamFn = func(ctx context.Context, history []llm.Message, onChunk func(llm.StreamChunk) error) error {
		onChunk(llm.StreamChunk{Content: "ok", Done: true})
		return nil
	}

	h.run(t, h.orchestrator(nil, time.Second))

	if h.sessions.session.Title != "Existing title" {
		t.Errorf("session title = %q, want it untouched", h.sessions.session.Title)
	}
}

func TestRunExecutesRequestedTools(t *testing.T) {
	h := newHarness("Existing title")

	var toolCalled bool
	registry := tools.NewRegistry(tools.Tool{
		Name:        "get-active-sprint",
		Description: "Look up the active sprint",
		Handler: func(ctx context.Context, tc tools.ToolContext, args map[string]any) string {
			toolCalled = true
			return "Sprint S-1 is active."
		},
	})

	round := 0
	h.llm.chatStreamFn = func(ctx context.Context, history []llm.Message, onChunk func(llm.StreamChunk) error) error {
		round++
		if round == 1 {
			onChunk(llm.StreamChunk{ToolCalls: []llm.ToolCall{{Name: "get-active-sprint", Arguments: map[string]any{}}}})
			onChunk(llm.StreamChunk{Done: true})
			return nil
		}
		// Second round must carry the tool result back to the model.
		last := history[len(history)-1]
		if last.Role != "tool" || last.Content != "Sprint S-1 is active." {
			t.Errorf("last history message = %+v, want the tool result", last)
		}
		onChunk(llm.StreamChunk{Content: "S-1 is your active sprint.", Done: true})
		return nil
	}

	events := h.run(t, h.orchestrator(registry, time.Second))

	if !toolCalled {
		t.Fatal("tool handler was never invoked")
	}
	if round != 2 {
		t.Errorf("stream rounds = %d, want 2", round)
	}
	if len(events) != 1 || events[0].Data != "S-1 is your active sprint." {
		t.Errorf("events = %+v, want the final answer chunk only", events)
	}
}

func TestRunRetrievalFailureDegrades(t *testing.T) {
	h := newHarness("Existing title")
	h.llm.generateFn = func(ctx context.Context, prompt string) (string, error) {
		return "true", nil
	}
	h.llm.chatStreamFn = func(ctx context.Context, history []llm.Message, onChunk func(llm.StreamChunk) error) error {
		onChunk(llm.StreamChunk{Content: "Answer without context.", Done: true})
		return nil
	}

	factory := &fakeFactory{uow: &fakeUnitOfWork{sessions: h.sessions, messages: h.messages}}
	o := NewOrchestrator(
		h.llm,
		NewClassifier(h.llm, ""),
		&fakeRetriever{err: context.DeadlineExceeded},
		tools.NewRegistry(),
		factory,
		nopLogger{},
		time.Second,
		3,
	)

	events := h.run(t, o)

	if len(events) != 1 || events[0].Type != EventTypeMessage {
		t.Fatalf("events = %+v, want one message event despite retrieval failure", events)
	}
}
