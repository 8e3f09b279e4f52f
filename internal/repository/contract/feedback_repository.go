package contract

import (
	"context"

	"ai-docchat-be/internal/entity"
)

type FeedbackRepository interface {
	// Upsert overwrites a prior vote on the same message instead of
	// recording history.
	Upsert(ctx context.Context, feedback *entity.Feedback) error
	FindOne(ctx context.Context, employeeId, conversationName string, messageIndex int) (*entity.Feedback, error)
	FindAllOrdered(ctx context.Context) ([]*entity.Feedback, error)
	DeleteByConversation(ctx context.Context, employeeId, name string) error
	RenameConversation(ctx context.Context, employeeId, oldName, newName string) error
	CountByType(ctx context.Context) (entity.FeedbackStats, error)
	CountByTypePerUser(ctx context.Context) ([]entity.UserFeedbackCount, error)
}
