package specification

import (
	"time"

	"gorm.io/gorm"
)

type ActiveSessions struct{}

func (s ActiveSessions) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type LoginOlderThan struct {
	Cutoff time.Time
}

func (s LoginOlderThan) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("login_time < ?", s.Cutoff)
}

type LoginOnDate struct {
	Date time.Time
}

func (s LoginOnDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("DATE(login_time) = DATE(?)", s.Date)
}
