package entity

import "time"

// Row types produced by the analytics queries. All of them are plain
// read-side projections; nothing here is persisted.

type RoleCount struct {
	Role  string
	Count int64
}

type DailyConversationCount struct {
	Date    string // YYYY-MM-DD
	Count   int64  // distinct (user, conversation) pairs that day
	Weekday int    // Sunday=0 .. Saturday=6
}

type WeekdayAverage struct {
	Weekday string
	Average float64
}

type ResponseTimeBucket struct {
	Label string
	Count int64
}

type DailyResponseTime struct {
	Date    string
	Average float64
	Count   int64
}

type UserResponseTime struct {
	EmployeeId string
	Average    float64
	Count      int64
	Min        float64
	Max        float64
}

type DailyActivity struct {
	Date        string
	Questions   int64
	Responses   int64
	ActiveUsers int64
}

type UserActivity struct {
	EmployeeId    string
	Questions     int64
	Responses     int64
	Conversations int64
	FirstActivity *time.Time
	LastActivity  *time.Time
}

type UserFeedbackCount struct {
	EmployeeId string
	Positive   int64
	Negative   int64
}

// UserStats is the per-user leaderboard row: activity joined with feedback.
// SatisfactionRate is nil when the user has no feedback at all.
type UserStats struct {
	EmployeeId       string
	Questions        int64
	Responses        int64
	Conversations    int64
	FirstActivity    *time.Time
	LastActivity     *time.Time
	Positive         int64
	Negative         int64
	SatisfactionRate *float64
}

type FeedbackStats struct {
	Positive int64
	Negative int64
}

type DocumentTypeCount struct {
	DocType string
	Count   int64
}
