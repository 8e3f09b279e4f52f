package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByConversationName struct {
	Name string
}

func (s ByConversationName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_name = ?", s.Name)
}

type ByMessageRole struct {
	Role string
}

func (s ByMessageRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

type Since struct {
	Time time.Time
}

func (s Since) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("timestamp >= ?", s.Time)
}

type WithResponseTime struct{}

func (s WithResponseTime) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("response_time IS NOT NULL")
}
