package entity

import "time"

// Message is one chat turn inside a named conversation. Messages are
// immutable once written; insertion order is the id order.
type Message struct {
	Id               int64
	EmployeeId       string
	ConversationName string
	Role             string
	Content          string
	Timestamp        time.Time
	// ResponseTime is the measured generation latency in seconds. Assistant
	// messages only; nil when the latency was not captured.
	ResponseTime *float64
}
