package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"planhub-be/internal/constant"
	"planhub-be/internal/entity"
	"planhub-be/internal/pkg/logger"
	"planhub-be/internal/repository/contract"
	"planhub-be/internal/repository/specification"
	"planhub-be/internal/repository/unitofwork"
	"planhub-be/pkg/agent/tools"
	"planhub-be/pkg/llm"

	"github.com/google/uuid"
)

// State of one orchestrator invocation. Transitions are linear; Failed is
// reachable from every non-terminal state.
type State string

const (
	StateIdle              State = "idle"
	StateClassifying       State = "classifying"
	StateRetrievingContext State = "retrieving-context"
	StateBuildingPrompt    State = "building-prompt"
	StateStreaming         State = "streaming"
	StateCompleting        State = "completing"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

// maxToolIterations bounds the tool loop so a model that keeps requesting
// tools cannot spin until the timeout.
const maxToolIterations = 8

const sessionTitleMaxLen = 80

// ContextRetriever is the slice of the vector store the orchestrator needs.
type ContextRetriever interface {
	SearchSimilarDocuments(ctx context.Context, query string, topK int, orgId, userId, projectId uuid.UUID) ([]*contract.ScoredRetrievalDocument, error)
}

// Request identifies one assistant invocation: the session it belongs to,
// the tenant scope the tools run under, and the new user message.
type Request struct {
	SessionID uuid.UUID
	OrgID     uuid.UUID
	ProjectID uuid.UUID // uuid.Nil for org-level sessions
	UserID    uuid.UUID
	Message   string
}

type Orchestrator struct {
	llmProvider llm.LLMProvider
	classifier  *Classifier
	retriever   ContextRetriever
	registry    *tools.Registry
	uowFactory  unitofwork.RepositoryFactory
	logger      logger.ILogger
	timeout     time.Duration
	topK        int
}

func NewOrchestrator(
	llmProvider llm.LLMProvider,
	classifier *Classifier,
	retriever ContextRetriever,
	registry *tools.Registry,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
	timeout time.Duration,
	topK int,
) *Orchestrator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if topK <= 0 {
		topK = 3
	}
	return &Orchestrator{
		llmProvider: llmProvider,
		classifier:  classifier,
		retriever:   retriever,
		registry:    registry,
		uowFactory:  uowFactory,
		logger:      log,
		timeout:     timeout,
		topK:        topK,
	}
}

// Run executes one invocation, pushing events to emit as they happen. Chunks
// are forwarded as soon as the model produces them. Run blocks until the
// stream reaches a terminal state and always emits at most one error event.
func (o *Orchestrator) Run(parent context.Context, req Request, emit func(ChatEvent)) {
	// Wall-clock budget for the whole invocation. cancel releases the timer
	// on every exit path, including early failures.
	ctx, cancel := context.WithTimeout(parent, o.timeout)
	defer cancel()

	state := StateIdle
	eventSeq := 0

	sendMessage := func(data string) {
		eventSeq++
		emit(ChatEvent{ID: strconv.Itoa(eventSeq), Type: EventTypeMessage, Data: data})
	}
	fail := func(reason string, err error) {
		state = StateFailed
		details := map[string]interface{}{"session_id": req.SessionID, "reason": reason}
		if err != nil {
			details["error"] = err.Error()
		}
		o.logger.Error("agent", "invocation failed", details)
		eventSeq++
		emit(ChatEvent{ID: strconv.Itoa(eventSeq), Type: EventTypeError, Data: reason})
	}

	session, err := o.loadSession(ctx, req)
	if err != nil {
		fail("The assistant could not load this conversation.", err)
		return
	}
	if session == nil {
		fail("Conversation not found.", nil)
		return
	}

	if err := o.appendMessage(ctx, req.SessionID, constant.ChatMessageRoleHuman, req.Message); err != nil {
		fail("The assistant could not record your message.", err)
		return
	}
	o.maybeSetTitle(ctx, session, req.Message)

	// Classify: does this message need document retrieval?
	state = StateClassifying
	var contextDocs []*contract.ScoredRetrievalDocument
	if o.classifier.ShouldRetrieve(ctx, req.Message) {
		state = StateRetrievingContext
		docs, err := o.retriever.SearchSimilarDocuments(ctx, req.Message, o.topK, req.OrgID, req.UserID, req.ProjectID)
		if err != nil {
			// Degrade to a non-RAG answer rather than failing the turn.
			o.logger.Warn("agent", "context retrieval failed, continuing without it", map[string]interface{}{
				"session_id": req.SessionID,
				"error":      err.Error(),
			})
		} else {
			contextDocs = docs
		}
	}

	state = StateBuildingPrompt
	history, err := o.buildPrompt(ctx, req, contextDocs)
	if err != nil {
		fail("The assistant could not load the conversation history.", err)
		return
	}

	state = StateStreaming
	bound := o.registry.Bound(tools.ToolContext{OrgID: req.OrgID, ProjectID: req.ProjectID, UserID: req.UserID})
	finalText, err := o.streamWithTools(ctx, history, bound, sendMessage)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			fail("The assistant took too long to respond.", ctx.Err())
		} else {
			fail("The assistant could not produce a response.", err)
		}
		return
	}

	state = StateCompleting
	if finalText != "" {
		// History append uses the parent context: a deadline hit after
		// streaming finished must not lose the turn.
		if err := o.appendMessage(parent, req.SessionID, constant.ChatMessageRoleAI, finalText); err != nil {
			fail("The assistant could not save its response.", err)
			return
		}
	}

	state = StateDone
	o.logger.Debug("agent", "invocation complete", map[string]interface{}{
		"session_id": req.SessionID,
		"state":      string(state),
		"events":     eventSeq,
	})
}

func (o *Orchestrator) loadSession(ctx context.Context, req Request) (*entity.ChatSession, error) {
	uow := o.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.SessionID},
		specification.OwnedByOrg{OrgID: req.OrgID},
		specification.UserOwnedBy{UserID: req.UserID},
	)
}

func (o *Orchestrator) appendMessage(ctx context.Context, sessionId uuid.UUID, role, text string) error {
	uow := o.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          role,
		Chat:          text,
		CreatedAt:     time.Now(),
	})
}

// maybeSetTitle names the session after its first user message. Best effort.
func (o *Orchestrator) maybeSetTitle(ctx context.Context, session *entity.ChatSession, message string) {
	if session.Title != "" {
		return
	}
	uow := o.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.ChatMessageRepository().Count(ctx, specification.ByChatSessionID{ChatSessionID: session.Id})
	if err != nil || count > 1 {
		return
	}
	title := message
	// Truncate on rune boundaries so a multi-byte character is never split.
	if runes := []rune(title); len(runes) > sessionTitleMaxLen {
		title = string(runes[:sessionTitleMaxLen])
	}
	now := time.Now()
	session.Title = title
	session.UpdatedAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		o.logger.Warn("agent", "failed to set session title", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}

// buildPrompt reloads the full transcript and lays out the model input:
// system prompt, optional retrieval context, then the conversation in order.
// The new user message is already in the transcript at this point.
func (o *Orchestrator) buildPrompt(ctx context.Context, req Request, contextDocs []*contract.ScoredRetrievalDocument) ([]llm.Message, error) {
	uow := o.uowFactory.NewUnitOfWork(ctx)
	transcript, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: req.SessionID},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(transcript)+2)
	history = append(history, llm.Message{Role: constant.ChatMessageRoleSystem, Content: constant.AssistantSystemPromptV1})

	if len(contextDocs) > 0 {
		var b strings.Builder
		for i, doc := range contextDocs {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(doc.Document.Content)
		}
		history = append(history, llm.Message{
			Role:    constant.ChatMessageRoleSystem,
			Content: fmt.Sprintf(constant.RetrievalContextPromptV1, b.String()),
		})
	}

	for _, msg := range transcript {
		role := "user"
		if msg.Role == constant.ChatMessageRoleAI {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: msg.Chat})
	}
	return history, nil
}

// streamWithTools drives the model until it stops requesting tools. Content
// chunks are forwarded through sendMessage the moment they arrive; the
// accumulated assistant text of the last round is returned for the history.
func (o *Orchestrator) streamWithTools(ctx context.Context, history []llm.Message, bound *tools.BoundSet, sendMessage func(string)) (string, error) {
	opts := []llm.Option{}
	if bound.Len() > 0 {
		opts = append(opts, llm.WithTools(bound.Definitions()))
	}

	var finalText strings.Builder

	for iteration := 0; iteration < maxToolIterations; iteration++ {
		var roundText strings.Builder
		var pendingCalls []llm.ToolCall

		err := o.llmProvider.ChatStream(ctx, history, func(chunk llm.StreamChunk) error {
			if len(chunk.ToolCalls) > 0 {
				pendingCalls = append(pendingCalls, chunk.ToolCalls...)
				return nil
			}
			if chunk.Content != "" {
				roundText.WriteString(chunk.Content)
				sendMessage(chunk.Content)
			}
			return nil
		}, opts...)
		if err != nil {
			return "", err
		}

		finalText.WriteString(roundText.String())

		if len(pendingCalls) == 0 {
			return finalText.String(), nil
		}

		// Record the assistant turn that asked for tools, then answer each
		// call and go around again.
		history = append(history, llm.Message{
			Role:      "assistant",
			Content:   roundText.String(),
			ToolCalls: pendingCalls,
		})
		for _, call := range pendingCalls {
			result := bound.Execute(ctx, call.Name, call.Arguments)
			o.logger.Debug("agent", "tool executed", map[string]interface{}{
				"tool": call.Name,
			})
			history = append(history, llm.Message{
				Role:     constant.ChatMessageRoleTool,
				Content:  result,
				ToolName: call.Name,
			})
		}
	}

	return "", fmt.Errorf("tool loop exceeded %d iterations", maxToolIterations)
}
