package dto

import "time"

type DashboardResponse struct {
	TotalUsers         int64            `json:"total_users"`
	UsersByRole        map[string]int64 `json:"users_by_role"`
	ConnectedNow       int64            `json:"connected_now"`
	TotalConversations int64            `json:"total_conversations"`
	PositiveFeedback   int64            `json:"positive_feedback"`
	NegativeFeedback   int64            `json:"negative_feedback"`
	DocumentCount      int64            `json:"document_count"`
}

type SessionResponse struct {
	EmployeeId string    `json:"employee_id"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	Role       string    `json:"role"`
	LoginTime  time.Time `json:"login_time"`
	IsActive   bool      `json:"is_active"`
}

type UserResponse struct {
	EmployeeId string    `json:"employee_id"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

type IngestDocumentRequest struct {
	Filename string `json:"filename" validate:"required"`
	DocType  string `json:"doc_type" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type FeedbackEntryResponse struct {
	EmployeeId       string    `json:"employee_id"`
	ConversationName string    `json:"conversation_name"`
	MessageIndex     int       `json:"message_index"`
	Type             string    `json:"type"`
	Timestamp        time.Time `json:"timestamp"`
}
