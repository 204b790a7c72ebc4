package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
	"github.com/msto63/khwarizmi/pkg/core/logging"
)

const wsReadTimeout = 120 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local tool, any origin
	},
}

// WebSocketHandler streams solver steps over a WebSocket connection
type WebSocketHandler struct {
	service *service.Service
	logger  *logging.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(svc *service.Service, logger *logging.Logger) *WebSocketHandler {
	if logger == nil {
		logger = logging.New("khwarizmi-websocket")
	}
	return &WebSocketHandler{
		service: svc,
		logger:  logger,
	}
}

// WSMessage represents an incoming WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`    // "solve", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSResponse represents an outgoing WebSocket message
type WSResponse struct {
	Type    string      `json:"type"` // "step", "result", "error", "pong"
	Payload interface{} `json:"payload"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// handleConnection serves one connection. Requests are answered in order,
// so steps of different equations never interleave.
func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Error("WebSocket read error", "error", err)
			} else {
				h.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		switch msg.Type {
		case "ping":
			h.send(conn, WSResponse{Type: "pong"})

		case "solve":
			var req SolveRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				h.sendError(conn, "invalid_payload", "Invalid solve payload")
				continue
			}
			if req.Equation == "" {
				h.sendError(conn, "invalid_request", "Missing input")
				continue
			}
			h.solve(ctx, conn, req.Equation)

		default:
			h.sendError(conn, "unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

func (h *WebSocketHandler) solve(ctx context.Context, conn *websocket.Conn, equation string) {
	resp, err := h.service.Solve(ctx, &service.SolveRequest{
		Input:  equation,
		Source: service.SourceWebSocket,
		OnStep: func(step service.StepView) {
			h.send(conn, WSResponse{Type: "step", Payload: step})
		},
	})
	if err != nil {
		h.sendError(conn, string(mdwerror.GetCode(err)), err.Error())
		return
	}

	h.send(conn, WSResponse{Type: "result", Payload: resp})
}

func (h *WebSocketHandler) send(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Error("WebSocket send error", "error", err)
	}
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, code, message string) {
	h.send(conn, WSResponse{
		Type: "error",
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}
