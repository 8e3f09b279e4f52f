package model

import "time"

// Session keeps at most one row per user: the employee id is the primary key,
// so concurrent logins by the same user serialize through normal per-row
// update semantics.
type Session struct {
	EmployeeId   string `gorm:"type:varchar(50);primaryKey"`
	LoginTime    time.Time
	LastActivity time.Time
	LogoutTime   *time.Time
	IsActive     bool `gorm:"not null;default:false;index"`
}

func (Session) TableName() string {
	return "user_sessions"
}
