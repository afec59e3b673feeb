package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"infra-checklist/internal/app"
	"infra-checklist/internal/domain"
	"infra-checklist/internal/view"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxScoreRings = 8

type WSHandler struct {
	service          *app.ChecklistService
	renderer         *view.Renderer
	logger           *zap.Logger
	defaultChecklist string
	upgrader         websocket.Upgrader
}

func NewWSHandler(service *app.ChecklistService, renderer *view.Renderer, logger *zap.Logger, defaultChecklist string) *WSHandler {
	return &WSHandler{
		service:          service,
		renderer:         renderer,
		logger:           logger,
		defaultChecklist: defaultChecklist,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Layout  *layoutReport   `json:"layout,omitempty"`
}

type answerPayload struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

type togglePayload struct {
	Hidden *bool `json:"hidden"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type sessionPayload struct {
	SessionID   string `json:"sessionId"`
	ChecklistID string `json:"checklistId"`
}

type patchPayload struct {
	Ops []patchOp `json:"ops"`
}

type noticePayload struct {
	Message string `json:"message"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives one widget per
// connection. Events are handled one at a time, each flushed as a single
// patch before the next is read.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	checklistID := r.URL.Query().Get("checklistId")
	if checklistID == "" {
		checklistID = h.defaultChecklist
	}
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	rings := 1
	if raw := r.URL.Query().Get("rings"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxScoreRings {
			http.Error(w, "invalid rings", http.StatusBadRequest)
			return
		}
		rings = n
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	logger := h.logger.With(zap.String("session", sessionID), zap.String("checklist", checklistID))
	display := newWSDisplay(h.renderer, logger)
	widget, err := h.service.Open(r.Context(), checklistID, sessionID, display.bind(rings))
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.Close(sessionID, widget)

	if err := conn.WriteJSON(outboundMessage[sessionPayload]{Type: "session", Payload: sessionPayload{SessionID: sessionID, ChecklistID: checklistID}}); err != nil {
		return
	}
	if err := h.flush(conn, display); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", zap.Error(err))
			}
			break
		}
		display.setLayout(inbound.Layout)

		if err := h.dispatch(widget, display, inbound); err != nil {
			if werr := conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}); werr != nil {
				break
			}
		}
		h.service.Touch(r.Context(), sessionID)
		if err := h.flush(conn, display); err != nil {
			logger.Debug("ws write error", zap.Error(err))
			break
		}
	}
}

func (h *WSHandler) dispatch(widget *app.Widget, display *wsDisplay, inbound inboundMessage) error {
	switch inbound.Type {
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errors.New("invalid answer payload")
		}
		choice, err := domain.ParseChoice(payload.Value)
		if err != nil {
			return err
		}
		return widget.Click(domain.Control{QuestionID: payload.QuestionID, Value: choice})
	case "calculate":
		_, err := widget.CalculateResults()
		if errors.Is(err, domain.ErrIncomplete) {
			// already surfaced as a notice
			return nil
		}
		return err
	case "close":
		widget.CloseDialog()
	case "scroll":
		widget.ScrollToAssessment()
	case "toggle":
		var payload togglePayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				return errors.New("invalid toggle payload")
			}
		}
		if payload.Hidden != nil {
			display.syncHidden("howItWorks", *payload.Hidden)
		}
		widget.ToggleHowItWorks()
	default:
		return errors.New("unsupported message type")
	}
	return nil
}

func (h *WSHandler) flush(conn *websocket.Conn, display *wsDisplay) error {
	ops, notices := display.flush()
	if len(ops) > 0 {
		if err := conn.WriteJSON(outboundMessage[patchPayload]{Type: "patch", Payload: patchPayload{Ops: ops}}); err != nil {
			return err
		}
	}
	for _, msg := range notices {
		if err := conn.WriteJSON(outboundMessage[noticePayload]{Type: "notice", Payload: noticePayload{Message: msg}}); err != nil {
			return err
		}
	}
	return nil
}
