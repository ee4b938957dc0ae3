package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/prepiq/prepiq-backend/internal/middleware"
	"github.com/prepiq/prepiq-backend/internal/quiz"
	"github.com/prepiq/prepiq-backend/internal/service"
	ws "github.com/prepiq/prepiq-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams a live session over WebSocket: client actions in,
// state snapshots and countdown ticks out.
type WSHandler struct {
	practiceService *service.PracticeService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(practiceService *service.PracticeService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		practiceService: practiceService,
		log:             log.With().Str("component", "ws_handler").Logger(),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

// wsConn serializes writes. gorilla/websocket forbids concurrent writers,
// and the tick pusher races the action loop without this.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) write(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ws.WriteTyped(w.conn, v)
}

func (w *wsConn) writeError(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ws.WriteError(w.conn, msg)
}

// SessionStream godoc
// WS /ws/v1/practice/sessions/:session_id/stream
// Upgrades to WebSocket. Pushes one tick event per second while the
// countdown runs and a finished event on the one-way finish transition,
// regardless of what triggered it.
func (h *WSHandler) SessionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	sess, err := h.practiceService.GetSession(sessionID, claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	raw, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer raw.Close()

	conn := &wsConn{conn: raw}

	wsLog := h.log.With().
		Int("user_id", claims.UserID).
		Str("session_id", sessionID.String()).
		Logger()
	wsLog.Info().Msg("Client connected")

	done := make(chan struct{})
	defer close(done)
	go h.pushLoop(conn, sess, done)

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(raw, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		h.handleAction(conn, wsLog, sess, &msg)
	}
}

// pushLoop streams countdown ticks and the finished event until the client
// disconnects. The session's own clock is authoritative; this loop only
// reads snapshots.
func (h *WSHandler) pushLoop(conn *wsConn, sess *quiz.Session, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	finishedSent := false
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			snap := sess.Snapshot()

			if snap.Finished {
				if !finishedSent {
					finishedSent = true
					summary := sess.Summary()
					resp := ws.FinishedResponse{Event: ws.EventFinished, Summary: summary}
					if summary != nil {
						resp.Score = summary.Score
						resp.Accuracy = summary.Accuracy
					}
					conn.write(resp)
				}
				continue
			}

			if snap.Timed {
				conn.write(ws.TickResponse{Event: ws.EventTick, TimeLeft: snap.TimeLeft})
			}
		}
	}
}

func (h *WSHandler) handleAction(conn *wsConn, wsLog zerolog.Logger, sess *quiz.Session, msg *ws.RequestPayload) {
	if msg.Action == ws.ActionPing {
		conn.write(ws.PongResponse{Event: ws.EventPong})
		return
	}

	if sess.Finished() && msg.Action != ws.ActionFinish {
		conn.writeError("session already finished")
		return
	}

	switch msg.Action {
	case ws.ActionAnswer:
		if msg.Answer == "" {
			conn.writeError("ans is required")
			return
		}
		if !sess.SelectAnswer(msg.Answer) {
			conn.writeError("answer is locked")
			return
		}
	case ws.ActionClear:
		sess.ClearAnswer()
	case ws.ActionGoto:
		sess.GoTo(msg.Index)
	case ws.ActionNext:
		sess.Next()
	case ws.ActionPrev:
		sess.Prev()
	case ws.ActionMarkReview:
		sess.MarkForReviewAndNext()
	case ws.ActionBookmark:
		sess.ToggleBookmark()
	case ws.ActionFinish:
		sess.Finish()
	default:
		wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
		conn.writeError("unknown action: " + string(msg.Action))
		return
	}

	conn.write(ws.StateResponse{Event: ws.EventState, Snapshot: sess.Snapshot()})
}
