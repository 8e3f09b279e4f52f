package contract

import (
	"context"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/specification"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindAllByUser returns every message of the user in insertion order.
	FindAllByUser(ctx context.Context, employeeId string) ([]*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByConversation(ctx context.Context, employeeId, name string) error
	// RenameConversation retags every message of (employeeId, oldName) to newName.
	RenameConversation(ctx context.Context, employeeId, oldName, newName string) error

	// Read-side analytics queries.
	CountDistinctConversations(ctx context.Context) (int64, error)
	ConversationsByDay(ctx context.Context, since *time.Time) ([]entity.DailyConversationCount, error)
	ResponseTimes(ctx context.Context) ([]float64, error)
	AverageResponseTime(ctx context.Context) (float64, error)
	ResponseTimeByDay(ctx context.Context, since time.Time) ([]entity.DailyResponseTime, error)
	ResponseTimeByUser(ctx context.Context) ([]entity.UserResponseTime, error)
	DailyActivity(ctx context.Context, limit int) ([]entity.DailyActivity, error)
	UserActivity(ctx context.Context) ([]entity.UserActivity, error)
}
