package model

import "time"

type Message struct {
	Id               int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeId       string    `gorm:"type:varchar(50);not null;index"`
	ConversationName string    `gorm:"type:varchar(255);not null;index"`
	Role             string    `gorm:"type:varchar(20);not null"`
	Content          string    `gorm:"type:text;not null"`
	Timestamp        time.Time `gorm:"autoCreateTime;index"`
	ResponseTime     *float64
}

func (Message) TableName() string {
	return "chat_messages"
}
