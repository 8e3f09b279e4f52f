package analytics

import (
	"context"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/unitofwork"
)

// Aggregator computes the dashboard rollups. Aggregates that map cleanly to
// SQL run in the repositories; shaping that benefits from unit tests (bucket
// assignment, weekday averaging, leaderboard merging) happens here in Go.
type Aggregator struct {
	uow   unitofwork.UnitOfWork
	nowFn func() time.Time
}

func NewAggregator(uow unitofwork.UnitOfWork) *Aggregator {
	return &Aggregator{
		uow:   uow,
		nowFn: time.Now,
	}
}

// TotalConversations counts distinct (user, conversation) pairs ever seen.
func (a *Aggregator) TotalConversations(ctx context.Context) (int64, error) {
	return a.uow.MessageRepository().CountDistinctConversations(ctx)
}

// ConversationsByDay returns daily distinct-conversation counts over the last
// `days` days, oldest first. Days with no traffic produce no row.
func (a *Aggregator) ConversationsByDay(ctx context.Context, days int) ([]entity.DailyConversationCount, error) {
	since := a.nowFn().AddDate(0, 0, -days)
	return a.uow.MessageRepository().ConversationsByDay(ctx, &since)
}

// AverageByWeekday averages daily conversation counts per weekday over the
// whole history.
func (a *Aggregator) AverageByWeekday(ctx context.Context) ([]entity.WeekdayAverage, error) {
	daily, err := a.uow.MessageRepository().ConversationsByDay(ctx, nil)
	if err != nil {
		return nil, err
	}
	return WeekdayAverages(daily), nil
}

// ResponseTimeDistribution buckets every recorded generation latency.
func (a *Aggregator) ResponseTimeDistribution(ctx context.Context) ([]entity.ResponseTimeBucket, error) {
	times, err := a.uow.MessageRepository().ResponseTimes(ctx)
	if err != nil {
		return nil, err
	}
	return BucketResponseTimes(times), nil
}

func (a *Aggregator) AverageResponseTime(ctx context.Context) (float64, error) {
	return a.uow.MessageRepository().AverageResponseTime(ctx)
}

func (a *Aggregator) ResponseTimeByDay(ctx context.Context, days int) ([]entity.DailyResponseTime, error) {
	since := a.nowFn().AddDate(0, 0, -days)
	return a.uow.MessageRepository().ResponseTimeByDay(ctx, since)
}

func (a *Aggregator) ResponseTimeByUser(ctx context.Context) ([]entity.UserResponseTime, error) {
	return a.uow.MessageRepository().ResponseTimeByUser(ctx)
}

// DailyActivity returns per-day question/response/active-user counts for the
// most recent `limit` active days.
func (a *Aggregator) DailyActivity(ctx context.Context, limit int) ([]entity.DailyActivity, error) {
	return a.uow.MessageRepository().DailyActivity(ctx, limit)
}

// UserLeaderboard joins per-user activity with per-user feedback, most active
// users first.
func (a *Aggregator) UserLeaderboard(ctx context.Context) ([]entity.UserStats, error) {
	activity, err := a.uow.MessageRepository().UserActivity(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := a.uow.FeedbackRepository().CountByTypePerUser(ctx)
	if err != nil {
		return nil, err
	}
	return MergeUserStats(activity, feedback), nil
}

// RoleDistribution counts registered users per role.
func (a *Aggregator) RoleDistribution(ctx context.Context) ([]entity.RoleCount, error) {
	return a.uow.UserRepository().CountByRole(ctx)
}

// FeedbackSummary returns the global thumbs tally.
func (a *Aggregator) FeedbackSummary(ctx context.Context) (entity.FeedbackStats, error) {
	return a.uow.FeedbackRepository().CountByType(ctx)
}

// DocumentStats describes the ingested corpus: distinct documents and the
// per-type breakdown.
func (a *Aggregator) DocumentStats(ctx context.Context) (int64, []entity.DocumentTypeCount, error) {
	total, err := a.uow.DocumentEmbeddingRepository().CountDistinctDocuments(ctx)
	if err != nil {
		return 0, nil, err
	}
	byType, err := a.uow.DocumentEmbeddingRepository().CountByType(ctx)
	if err != nil {
		return 0, nil, err
	}
	return total, byType, nil
}
