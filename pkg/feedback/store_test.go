package feedback

import (
	"context"
	"testing"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedbackRepo struct {
	rows []*entity.Feedback
}

func (f *fakeFeedbackRepo) Upsert(_ context.Context, fb *entity.Feedback) error {
	for _, r := range f.rows {
		if r.EmployeeId == fb.EmployeeId && r.ConversationName == fb.ConversationName && r.MessageIndex == fb.MessageIndex {
			r.Type = fb.Type
			r.Timestamp = fb.Timestamp
			return nil
		}
	}
	cp := *fb
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeFeedbackRepo) FindOne(_ context.Context, employeeId, conversationName string, messageIndex int) (*entity.Feedback, error) {
	for _, r := range f.rows {
		if r.EmployeeId == employeeId && r.ConversationName == conversationName && r.MessageIndex == messageIndex {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeFeedbackRepo) FindAllOrdered(context.Context) ([]*entity.Feedback, error) {
	return f.rows, nil
}

func (f *fakeFeedbackRepo) DeleteByConversation(context.Context, string, string) error { return nil }
func (f *fakeFeedbackRepo) RenameConversation(context.Context, string, string, string) error {
	return nil
}

func (f *fakeFeedbackRepo) CountByType(context.Context) (entity.FeedbackStats, error) {
	var stats entity.FeedbackStats
	for _, r := range f.rows {
		if r.Type == "positive" {
			stats.Positive++
		} else {
			stats.Negative++
		}
	}
	return stats, nil
}

func (f *fakeFeedbackRepo) CountByTypePerUser(context.Context) ([]entity.UserFeedbackCount, error) {
	return nil, nil
}

type fakeUow struct {
	feedback *fakeFeedbackRepo
}

func (f *fakeUow) Begin(context.Context) error { return nil }
func (f *fakeUow) Commit() error               { return nil }
func (f *fakeUow) Rollback() error             { return nil }

func (f *fakeUow) UserRepository() contract.UserRepository         { return nil }
func (f *fakeUow) SessionRepository() contract.SessionRepository   { return nil }
func (f *fakeUow) MessageRepository() contract.MessageRepository   { return nil }
func (f *fakeUow) FeedbackRepository() contract.FeedbackRepository { return f.feedback }
func (f *fakeUow) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return nil
}

var _ unitofwork.UnitOfWork = (*fakeUow)(nil)

func newTestStore() (*Store, *fakeFeedbackRepo) {
	repo := &fakeFeedbackRepo{}
	s := NewStore(&fakeUow{feedback: repo})
	s.nowFn = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	return s, repo
}

func TestSet_RejectsUnknownType(t *testing.T) {
	s, repo := newTestStore()
	err := s.Set(context.Background(), "E123", "conv", 0, "meh")
	assert.ErrorIs(t, err, ErrInvalidType)
	assert.Empty(t, repo.rows)
}

func TestSet_OverwritesPriorVote(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "E123", "conv", 1, "positive"))
	require.NoError(t, s.Set(ctx, "E123", "conv", 1, "negative"))

	vote, err := s.Get(ctx, "E123", "conv", 1)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, "negative", vote.Type)

	stats, err := s.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Positive)
	assert.Equal(t, int64(1), stats.Negative)
}

func TestSet_SameIndexDifferentConversationsAreIndependent(t *testing.T) {
	s, repo := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "E123", "a", 1, "positive"))
	require.NoError(t, s.Set(ctx, "E123", "b", 1, "negative"))
	require.NoError(t, s.Set(ctx, "E456", "a", 1, "positive"))

	assert.Len(t, repo.rows, 3)
}

func TestGet_NilWhenAbsent(t *testing.T) {
	s, _ := newTestStore()
	vote, err := s.Get(context.Background(), "E123", "conv", 7)
	require.NoError(t, err)
	assert.Nil(t, vote)
}
