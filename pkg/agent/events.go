package agent

// Event types emitted on a chat stream. A stream carries any number of
// message events followed by exactly one terminal close; a failure produces a
// single error event instead.
const (
	EventTypeMessage = "message"
	EventTypeError   = "error"
)

// ChatEvent is one unit pushed to the client while the assistant responds.
type ChatEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data string `json:"data"`
}
