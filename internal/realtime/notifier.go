package realtime

import "time"

// ChangePayload is the body of a board-change event delivered to subscribers.
type ChangePayload struct {
	BoardID uint64                 `json:"board_id"`
	Action  string                 `json:"action"`
	At      time.Time              `json:"at"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Notifier is the port through which services announce board mutations.
// Delivery is best-effort: the return value reports whether anyone received
// the event, and a false is never an error.
type Notifier interface {
	// EmitBoardChange fans a change event out to the board's subscribers
	EmitBoardChange(boardID uint64, action string, context map[string]interface{}) bool

	// NotifyUser pings a single user's connections (new-invite alerts)
	NotifyUser(userID uint64) bool
}

// NoopNotifier discards all events. Used by the import worker, which has no
// socket clients of its own, and by tests that don't assert on notifications.
type NoopNotifier struct{}

func (NoopNotifier) EmitBoardChange(uint64, string, map[string]interface{}) bool { return false }
func (NoopNotifier) NotifyUser(uint64) bool                                      { return false }
