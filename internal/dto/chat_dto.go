package dto

import "time"

type SendMessageRequest struct {
	ConversationName string `json:"conversation_name"`
	Content          string `json:"content" validate:"required"`
}

type SendMessageResponse struct {
	ConversationName string  `json:"conversation_name"`
	Answer           string  `json:"answer"`
	ResponseTime     float64 `json:"response_time"`
}

type MessageResponse struct {
	Index        int       `json:"index"`
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	ResponseTime *float64  `json:"response_time,omitempty"`
	Feedback     *string   `json:"feedback,omitempty"`
}

type NewConversationResponse struct {
	Name string `json:"name"`
}

type ConversationResponse struct {
	Name     string            `json:"name"`
	Messages []MessageResponse `json:"messages"`
}

type RenameConversationRequest struct {
	OldName string `json:"old_name" validate:"required"`
	NewName string `json:"new_name" validate:"required"`
}

type DeleteConversationRequest struct {
	Name string `json:"name" validate:"required"`
}

type FeedbackRequest struct {
	ConversationName string `json:"conversation_name" validate:"required"`
	MessageIndex     int    `json:"message_index" validate:"gte=0"`
	Type             string `json:"type" validate:"required,oneof=positive negative"`
}
