package entity

import "time"

// Feedback is one vote on a message, addressed positionally by the message's
// index inside its conversation. Indices stay valid because messages are only
// ever removed by whole-conversation deletion.
type Feedback struct {
	EmployeeId       string
	ConversationName string
	MessageIndex     int
	Type             string
	Timestamp        time.Time
}
