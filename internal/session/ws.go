package session

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// wsMessage is one inbound frame from the rendering runtime.
type wsMessage struct {
	Type    string  `json:"type"`              // "event", "tick", "snapshot" or "reset"
	Trigger string  `json:"trigger,omitempty"` // for "event"
	DT      float64 `json:"dt,omitempty"`      // for "tick"
}

// wsReply is one outbound frame.
type wsReply struct {
	Type     string       `json:"type"` // "result", "mutation", "snapshot", "error"
	Result   *EventResult `json:"result,omitempty"`
	Snapshot *Snapshot    `json:"snapshot,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// WSHandler streams a session over a websocket: the runtime sends trigger
// events and ticks, the engine replies with applied effects, mutations and
// state snapshots. One connection drives one session.
type WSHandler struct {
	manager  *Manager
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWSHandler creates the websocket endpoint handler.
func NewWSHandler(manager *Manager, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		manager: manager,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API is same-origin in production; the creation wizard dev
			// server connects cross-origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeSession upgrades the connection and pumps messages for the session
// identified by id until the client disconnects.
func (h *WSHandler) ServeSession(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := h.manager.Get(id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	// Initial snapshot so the runtime can draw frame zero.
	snap := sess.Snapshot()
	h.write(conn, wsReply{Type: "snapshot", Snapshot: &snap})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.write(conn, wsReply{Type: "error", Error: "malformed message"})
			continue
		}
		h.handle(conn, sess, msg)
	}
}

func (h *WSHandler) handle(conn *websocket.Conn, sess *Session, msg wsMessage) {
	switch msg.Type {
	case "event":
		result := sess.HandleEvent(msg.Trigger)
		h.write(conn, wsReply{Type: "result", Result: &result})
	case "tick":
		dt := msg.DT
		if dt <= 0 {
			dt = 1
		}
		if mut := sess.Tick(dt); mut != nil {
			snap := sess.Snapshot()
			h.write(conn, wsReply{Type: "mutation", Snapshot: &snap})
		}
	case "snapshot":
		snap := sess.Snapshot()
		h.write(conn, wsReply{Type: "snapshot", Snapshot: &snap})
	case "reset":
		sess.Reset()
		snap := sess.Snapshot()
		h.write(conn, wsReply{Type: "snapshot", Snapshot: &snap})
	default:
		h.write(conn, wsReply{Type: "error", Error: "unknown message type"})
	}
}

func (h *WSHandler) write(conn *websocket.Conn, reply wsReply) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(reply); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
	}
}
