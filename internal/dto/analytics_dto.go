package dto

type WeekdayAverageResponse struct {
	Weekday string  `json:"weekday"`
	Average float64 `json:"average"`
}

type DailyCountResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type BucketResponse struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type DailyResponseTimeResponse struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type UserResponseTimeResponse struct {
	EmployeeId string  `json:"employee_id"`
	Average    float64 `json:"average"`
	Count      int64   `json:"count"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
}

type DailyActivityResponse struct {
	Date        string `json:"date"`
	Questions   int64  `json:"questions"`
	Responses   int64  `json:"responses"`
	ActiveUsers int64  `json:"active_users"`
}

type UserStatsResponse struct {
	EmployeeId       string   `json:"employee_id"`
	Questions        int64    `json:"questions"`
	Responses        int64    `json:"responses"`
	Conversations    int64    `json:"conversations"`
	Positive         int64    `json:"positive"`
	Negative         int64    `json:"negative"`
	SatisfactionRate *float64 `json:"satisfaction_rate,omitempty"`
}

type DocumentTypeCountResponse struct {
	DocType string `json:"doc_type"`
	Count   int64  `json:"count"`
}
