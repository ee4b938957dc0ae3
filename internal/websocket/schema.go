package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer     Action = "answer"
	ActionClear      Action = "clear"
	ActionGoto       Action = "goto"
	ActionNext       Action = "next"
	ActionPrev       Action = "prev"
	ActionMarkReview Action = "mark_review"
	ActionBookmark   Action = "bookmark"
	ActionFinish     Action = "finish"
	ActionPing       Action = "ping"
)

// RequestPayload is a superset of all client actions. The action field
// decides which of the optional fields are consulted.
type RequestPayload struct {
	Action Action `json:"action"`
	QID    string `json:"q_id,omitempty"`
	Answer string `json:"ans,omitempty"`
	Index  int    `json:"index,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError    Event = "error"
	EventState    Event = "state"
	EventTick     Event = "tick"
	EventFinished Event = "finished"
	EventPong     Event = "pong"
)

// StateResponse carries a full palette snapshot after a mutating action.
type StateResponse struct {
	Event    Event       `json:"event"`
	Snapshot interface{} `json:"snapshot"`
}

// TickResponse is pushed once per second while a timed session runs.
type TickResponse struct {
	Event    Event `json:"event"`
	TimeLeft int   `json:"time_left"`
}

// FinishedResponse announces the one-way transition into the result view.
type FinishedResponse struct {
	Event    Event       `json:"event"`
	Score    float64     `json:"score"`
	Accuracy int         `json:"accuracy"`
	Summary  interface{} `json:"summary"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
