package model

import "time"

// Feedback holds at most one vote per (user, conversation, message index);
// re-voting upserts through the unique index.
type Feedback struct {
	Id               int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeId       string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_feedback_message"`
	ConversationName string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_feedback_message"`
	MessageIndex     int       `gorm:"not null;uniqueIndex:uq_feedback_message"`
	FeedbackType     string    `gorm:"type:varchar(20);not null"`
	Timestamp        time.Time `gorm:"autoCreateTime"`
}

func (Feedback) TableName() string {
	return "message_feedback"
}
