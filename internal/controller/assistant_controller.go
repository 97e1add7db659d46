package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"planhub-be/internal/dto"
	"planhub-be/internal/pkg/serverutils"
	"planhub-be/internal/service"
	ws "planhub-be/internal/websocket"
	"planhub-be/pkg/agent"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	Stream(ctx *fiber.Ctx) error
}

type assistantController struct {
	chatService      service.IChatService
	workspaceService service.IWorkspaceService
	orchestrator     *agent.Orchestrator
	hub              *ws.Hub
}

func NewAssistantController(
	chatService service.IChatService,
	workspaceService service.IWorkspaceService,
	orchestrator *agent.Orchestrator,
	hub *ws.Hub,
) IAssistantController {
	return &assistantController{
		chatService:      chatService,
		workspaceService: workspaceService,
		orchestrator:     orchestrator,
		hub:              hub,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("sessions", c.CreateSession)
	h.Get("sessions", c.GetAllSessions)
	h.Get("sessions/:id", c.GetSession)
	h.Delete("sessions/:id", c.DeleteSession)
	h.Get("chat/stream", c.Stream)

	// Websocket mirror: other devices of the same user watch streams live.
	h.Use("ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("ws", websocket.New(func(conn *websocket.Conn) {
		userId, err := uuid.Parse(fmt.Sprint(conn.Locals("user_id")))
		if err != nil {
			conn.Close()
			return
		}
		ws.ServeWs(c.hub, conn, userId)
	}))
}

func (c *assistantController) CreateSession(ctx *fiber.Ctx) error {
	orgId, userId, err := tenantFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateChatSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), orgId, userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *assistantController) GetAllSessions(ctx *fiber.Ctx) error {
	orgId, userId, err := tenantFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.GetAllSessions(ctx.Context(), orgId, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *assistantController) GetSession(ctx *fiber.Ctx) error {
	orgId, userId, err := tenantFromLocals(ctx)
	if err != nil {
		return err
	}

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.chatService.GetSession(ctx.Context(), orgId, userId, sessionId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *assistantController) DeleteSession(ctx *fiber.Ctx) error {
	orgId, userId, err := tenantFromLocals(ctx)
	if err != nil {
		return err
	}

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	if err := c.chatService.DeleteSession(ctx.Context(), orgId, userId, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

// Stream runs one assistant turn and pushes the response as server-sent
// events. The stream always ends after a terminal event: the last message
// chunk, or a single error.
func (c *assistantController) Stream(ctx *fiber.Ctx) error {
	orgId, userId, err := tenantFromLocals(ctx)
	if err != nil {
		return err
	}

	var streamReq dto.StreamChatRequest
	if err := ctx.QueryParser(&streamReq); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid stream parameters")
	}
	if err := serverutils.ValidateRequest(streamReq); err != nil {
		return err
	}

	org, err := c.workspaceService.GetOrganization(ctx.Context(), orgId)
	if err != nil {
		return err
	}
	if org == nil {
		return fiber.NewError(fiber.StatusForbidden, "Unknown organization")
	}

	sessionId := streamReq.SessionId

	// The session decides the project scope; a client cannot widen it by
	// query parameter.
	session, err := c.chatService.GetSession(ctx.Context(), orgId, userId, sessionId)
	if err != nil {
		return err
	}
	if session == nil {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	projectId := uuid.Nil
	if session.ProjectId != nil {
		projectId = *session.ProjectId
	}

	req := agent.Request{
		SessionID: sessionId,
		OrgID:     orgId,
		ProjectID: projectId,
		UserID:    userId,
		Message:   streamReq.Message,
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	// The writer runs after this handler returns, so the orchestrator gets a
	// fresh context rather than the request's.
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		c.orchestrator.Run(context.Background(), req, func(event agent.ChatEvent) {
			data, err := json.Marshal(event)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Type, data)
			// Unbuffered forwarding: each event reaches the client as soon
			// as the model produced it.
			if err := w.Flush(); err != nil {
				return
			}
			c.hub.SendEvent(userId, sessionId, event)
		})
	}))

	return nil
}

func tenantFromLocals(ctx *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	orgId, err := uuid.Parse(fmt.Sprint(ctx.Locals("org_id")))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid organization claim")
	}
	userId, err := uuid.Parse(fmt.Sprint(ctx.Locals("user_id")))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user claim")
	}
	return orgId, userId, nil
}
