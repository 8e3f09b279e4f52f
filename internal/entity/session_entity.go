package entity

import "time"

// Session is the single mutable row per user tracking the latest login cycle.
// Invariant: IsActive implies LogoutTime == nil.
type Session struct {
	EmployeeId   string
	LoginTime    time.Time
	LastActivity time.Time
	LogoutTime   *time.Time
	IsActive     bool
}

// SessionView is a session joined with the owning user's identity, as shown
// on the "connected now" / "connected today" admin panels.
type SessionView struct {
	EmployeeId string
	Name       string
	Surname    string
	Role       string
	LoginTime  time.Time
	IsActive   bool
}
