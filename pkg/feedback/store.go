package feedback

import (
	"context"
	"errors"
	"time"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/unitofwork"
)

var ErrInvalidType = errors.New("feedback type must be positive or negative")

// Store records thumbs votes on individual chat turns. A message is addressed
// by its position inside the conversation, and each (user, conversation,
// index) holds at most one vote; a new vote replaces the old one.
type Store struct {
	uow   unitofwork.UnitOfWork
	nowFn func() time.Time
}

func NewStore(uow unitofwork.UnitOfWork) *Store {
	return &Store{
		uow:   uow,
		nowFn: time.Now,
	}
}

// Set records or overwrites the vote on one message.
func (s *Store) Set(ctx context.Context, employeeId, conversationName string, messageIndex int, feedbackType string) error {
	if feedbackType != constant.FeedbackPositive && feedbackType != constant.FeedbackNegative {
		return ErrInvalidType
	}
	return s.uow.FeedbackRepository().Upsert(ctx, &entity.Feedback{
		EmployeeId:       employeeId,
		ConversationName: conversationName,
		MessageIndex:     messageIndex,
		Type:             feedbackType,
		Timestamp:        s.nowFn(),
	})
}

// Get returns the vote on one message, nil when nobody voted.
func (s *Store) Get(ctx context.Context, employeeId, conversationName string, messageIndex int) (*entity.Feedback, error) {
	return s.uow.FeedbackRepository().FindOne(ctx, employeeId, conversationName, messageIndex)
}

// Aggregate returns the global positive/negative tally.
func (s *Store) Aggregate(ctx context.Context) (entity.FeedbackStats, error) {
	return s.uow.FeedbackRepository().CountByType(ctx)
}

// AggregateByUser returns each user's positive/negative tally.
func (s *Store) AggregateByUser(ctx context.Context) ([]entity.UserFeedbackCount, error) {
	return s.uow.FeedbackRepository().CountByTypePerUser(ctx)
}

// All returns every vote, newest first, for the admin review table.
func (s *Store) All(ctx context.Context) ([]*entity.Feedback, error) {
	return s.uow.FeedbackRepository().FindAllOrdered(ctx)
}
