package service

import (
	"context"
	"testing"
	"time"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/analytics"
	"ai-docchat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// In-memory repositories backing the service-level flow tests. They model the
// behaviour the services rely on; unused analytics queries return zero values.

type stubUserRepo struct {
	rows map[string]*entity.User
}

func (f *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	f.rows[u.EmployeeId] = &cp
	return nil
}

func (f *stubUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	f.rows[u.EmployeeId] = &cp
	return nil
}

func (f *stubUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, s := range specs {
		if byId, ok := s.(specification.ByEmployeeId); ok {
			if u, found := f.rows[byId.EmployeeId]; found {
				return u, nil
			}
		}
	}
	return nil, nil
}

func (f *stubUserRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}
func (f *stubUserRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(f.rows)), nil
}
func (f *stubUserRepo) CountByRole(context.Context) ([]entity.RoleCount, error) { return nil, nil }

type stubSessionRepo struct {
	rows map[string]*entity.Session
}

func (f *stubSessionRepo) Upsert(_ context.Context, s *entity.Session) error {
	cp := *s
	f.rows[s.EmployeeId] = &cp
	return nil
}

func (f *stubSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Session, error) {
	for _, s := range specs {
		if byId, ok := s.(specification.ByEmployeeId); ok {
			if row, found := f.rows[byId.EmployeeId]; found {
				return row, nil
			}
		}
	}
	return nil, nil
}

func (f *stubSessionRepo) Touch(_ context.Context, employeeId string, at time.Time) (int64, error) {
	row, ok := f.rows[employeeId]
	if !ok || !row.IsActive {
		return 0, nil
	}
	row.LastActivity = at
	return 1, nil
}

func (f *stubSessionRepo) Close(_ context.Context, employeeId string, at time.Time) (int64, error) {
	row, ok := f.rows[employeeId]
	if !ok || !row.IsActive {
		return 0, nil
	}
	row.IsActive = false
	t := at
	row.LogoutTime = &t
	return 1, nil
}

func (f *stubSessionRepo) CloseOlderThan(_ context.Context, cutoff, at time.Time) (int64, error) {
	var n int64
	for _, row := range f.rows {
		if row.IsActive && row.LoginTime.Before(cutoff) {
			row.IsActive = false
			t := at
			row.LogoutTime = &t
			n++
		}
	}
	return n, nil
}

func (f *stubSessionRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(f.rows)), nil
}
func (f *stubSessionRepo) CountActive(context.Context, bool) (int64, error) { return 0, nil }
func (f *stubSessionRepo) FindActive(context.Context, bool) ([]*entity.SessionView, error) {
	return nil, nil
}
func (f *stubSessionRepo) FindLoggedInToday(context.Context, time.Time) ([]*entity.SessionView, error) {
	return nil, nil
}

type stubMessageRepo struct {
	rows   []*entity.Message
	nextId int64
}

func (f *stubMessageRepo) Create(_ context.Context, m *entity.Message) error {
	f.nextId++
	cp := *m
	cp.Id = f.nextId
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *stubMessageRepo) FindAllByUser(_ context.Context, employeeId string) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range f.rows {
		if m.EmployeeId == employeeId {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *stubMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var employeeId, name string
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByEmployeeId:
			employeeId = v.EmployeeId
		case specification.ByConversationName:
			name = v.Name
		}
	}
	var out []*entity.Message
	for _, m := range f.rows {
		if (employeeId == "" || m.EmployeeId == employeeId) && (name == "" || m.ConversationName == name) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *stubMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := f.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

func (f *stubMessageRepo) DeleteByConversation(_ context.Context, employeeId, name string) error {
	var kept []*entity.Message
	for _, m := range f.rows {
		if m.EmployeeId == employeeId && m.ConversationName == name {
			continue
		}
		kept = append(kept, m)
	}
	f.rows = kept
	return nil
}

func (f *stubMessageRepo) RenameConversation(_ context.Context, employeeId, oldName, newName string) error {
	for _, m := range f.rows {
		if m.EmployeeId == employeeId && m.ConversationName == oldName {
			m.ConversationName = newName
		}
	}
	return nil
}

func (f *stubMessageRepo) CountDistinctConversations(context.Context) (int64, error) { return 0, nil }
func (f *stubMessageRepo) ConversationsByDay(context.Context, *time.Time) ([]entity.DailyConversationCount, error) {
	return nil, nil
}

func (f *stubMessageRepo) ResponseTimes(context.Context) ([]float64, error) {
	var out []float64
	for _, m := range f.rows {
		if m.ResponseTime != nil {
			out = append(out, *m.ResponseTime)
		}
	}
	return out, nil
}

func (f *stubMessageRepo) AverageResponseTime(context.Context) (float64, error) { return 0, nil }
func (f *stubMessageRepo) ResponseTimeByDay(context.Context, time.Time) ([]entity.DailyResponseTime, error) {
	return nil, nil
}
func (f *stubMessageRepo) ResponseTimeByUser(context.Context) ([]entity.UserResponseTime, error) {
	return nil, nil
}
func (f *stubMessageRepo) DailyActivity(context.Context, int) ([]entity.DailyActivity, error) {
	return nil, nil
}
func (f *stubMessageRepo) UserActivity(context.Context) ([]entity.UserActivity, error) {
	return nil, nil
}

type stubFeedbackRepo struct {
	rows []*entity.Feedback
}

func (f *stubFeedbackRepo) Upsert(_ context.Context, fb *entity.Feedback) error {
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

func (f *stubFeedbackRepo) FindOne(_ context.Context, employeeId, conversationName string, messageIndex int) (*entity.Feedback, error) {
	for _, r := range f.rows {
		if r.EmployeeId == employeeId && r.ConversationName == conversationName && r.MessageIndex == messageIndex {
			return r, nil
		}
	}
	return nil, nil
}

func (f *stubFeedbackRepo) FindAllOrdered(context.Context) ([]*entity.Feedback, error) {
	return f.rows, nil
}

func (f *stubFeedbackRepo) DeleteByConversation(_ context.Context, employeeId, name string) error {
	var kept []*entity.Feedback
	for _, r := range f.rows {
		if r.EmployeeId == employeeId && r.ConversationName == name {
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return nil
}

func (f *stubFeedbackRepo) RenameConversation(_ context.Context, employeeId, oldName, newName string) error {
	for _, r := range f.rows {
		if r.EmployeeId == employeeId && r.ConversationName == oldName {
			r.ConversationName = newName
		}
	}
	return nil
}

func (f *stubFeedbackRepo) CountByType(context.Context) (entity.FeedbackStats, error) {
	var stats entity.FeedbackStats
	for _, r := range f.rows {
		switch r.Type {
		case "positive":
			stats.Positive++
		case "negative":
			stats.Negative++
		}
	}
	return stats, nil
}

func (f *stubFeedbackRepo) CountByTypePerUser(context.Context) ([]entity.UserFeedbackCount, error) {
	return nil, nil
}

type stubDocumentRepo struct {
	chunks []*entity.DocumentChunk
}

func (f *stubDocumentRepo) CreateBatch(_ context.Context, chunks []*entity.DocumentChunk) error {
	f.chunks = append(f.chunks, chunks...)
	return nil
}
func (f *stubDocumentRepo) DeleteByDocumentIds(context.Context, []uuid.UUID) error { return nil }
func (f *stubDocumentRepo) FindNearest(_ context.Context, _ []float32, limit int) ([]*entity.DocumentChunk, error) {
	if len(f.chunks) > limit {
		return f.chunks[:limit], nil
	}
	return f.chunks, nil
}
func (f *stubDocumentRepo) DistinctDocuments(context.Context) ([]*entity.DocumentChunk, error) {
	return nil, nil
}
func (f *stubDocumentRepo) CountDistinctDocuments(context.Context) (int64, error) { return 0, nil }
func (f *stubDocumentRepo) CountByType(context.Context) ([]entity.DocumentTypeCount, error) {
	return nil, nil
}

type stubUow struct {
	users     *stubUserRepo
	sessions  *stubSessionRepo
	messages  *stubMessageRepo
	feedbacks *stubFeedbackRepo
	documents *stubDocumentRepo
}

func newStubUow() *stubUow {
	return &stubUow{
		users:     &stubUserRepo{rows: map[string]*entity.User{}},
		sessions:  &stubSessionRepo{rows: map[string]*entity.Session{}},
		messages:  &stubMessageRepo{},
		feedbacks: &stubFeedbackRepo{},
		documents: &stubDocumentRepo{},
	}
}

func (f *stubUow) Begin(context.Context) error { return nil }
func (f *stubUow) Commit() error               { return nil }
func (f *stubUow) Rollback() error             { return nil }

func (f *stubUow) UserRepository() contract.UserRepository         { return f.users }
func (f *stubUow) SessionRepository() contract.SessionRepository   { return f.sessions }
func (f *stubUow) MessageRepository() contract.MessageRepository   { return f.messages }
func (f *stubUow) FeedbackRepository() contract.FeedbackRepository { return f.feedbacks }
func (f *stubUow) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return f.documents
}

var _ unitofwork.UnitOfWork = (*stubUow)(nil)

// stubFactory hands every service call the same unit of work so the test can
// inspect state across services.
type stubFactory struct {
	uow *stubUow
}

func (f *stubFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }
func (noopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (noopLogger) GetLogById(string) (*logger.LogEntry, error) { return nil, nil }

var _ logger.ILogger = noopLogger{}

type stubEmbedder struct{}

func (stubEmbedder) Generate(string, string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type stubLLM struct {
	answer string
}

func (s *stubLLM) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return s.answer, nil
}

func (s *stubLLM) Generate(context.Context, string, ...llm.Option) (string, error) {
	return s.answer, nil
}

// scriptedClock returns the queued instants in order, then keeps returning
// the last one.
func scriptedClock(instants ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := instants[i]
		if i < len(instants)-1 {
			i++
		}
		return t
	}
}

func seedUser(t *testing.T, uow *stubUow, employeeId, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, uow.users.Create(context.Background(), &entity.User{
		EmployeeId:   employeeId,
		Name:         "Nora",
		Surname:      "Delort",
		PasswordHash: string(hash),
		Role:         role,
	}))
}

// Full user journey: login, two answered questions, a positive vote, the
// latency histogram, then logout.
func TestChatFlow_LoginAskVoteLogout(t *testing.T) {
	ctx := context.Background()
	uow := newStubUow()
	factory := &stubFactory{uow: uow}

	seedUser(t, uow, "E123", "s3cret-pass", "hr")
	uow.documents.chunks = []*entity.DocumentChunk{{
		Id:      uuid.New(),
		Content: "Employees accrue 25 days of paid leave per year.",
	}}

	auth := NewAuthService(factory, "test-secret", 24, 12, noopLogger{})
	chat := NewChatService(factory, stubEmbedder{}, &stubLLM{answer: "25 days per year."}, memory.NewConversationState(), 12, noopLogger{}).(*chatService)

	login, err := auth.Login(ctx, &dto.LoginRequest{EmployeeId: "E123", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	require.True(t, uow.sessions.rows["E123"].IsActive)

	// First answer takes 4.2s, second 1.0s.
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	chat.nowFn = scriptedClock(
		base, base.Add(4200*time.Millisecond),
		base.Add(time.Minute), base.Add(time.Minute+time.Second),
	)

	first, err := chat.SendMessage(ctx, "E123", &dto.SendMessageRequest{Content: "What is the leave policy?"})
	require.NoError(t, err)
	assert.Equal(t, "What is the leave policy?", first.ConversationName)
	assert.InDelta(t, 4.2, first.ResponseTime, 1e-9)

	second, err := chat.SendMessage(ctx, "E123", &dto.SendMessageRequest{
		ConversationName: first.ConversationName,
		Content:          "Does it carry over?",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ConversationName, second.ConversationName)

	require.NoError(t, chat.SetFeedback(ctx, "E123", &dto.FeedbackRequest{
		ConversationName: first.ConversationName,
		MessageIndex:     1,
		Type:             "positive",
	}))

	convs, err := chat.Conversations(ctx, "E123")
	require.NoError(t, err)
	require.Len(t, convs, 1)
	require.Len(t, convs[0].Messages, 4)
	require.NotNil(t, convs[0].Messages[1].Feedback)
	assert.Equal(t, "positive", *convs[0].Messages[1].Feedback)
	require.NotNil(t, convs[0].Messages[1].ResponseTime)
	assert.InDelta(t, 4.2, *convs[0].Messages[1].ResponseTime, 1e-9)

	buckets, err := analytics.NewAggregator(uow).ResponseTimeDistribution(ctx)
	require.NoError(t, err)
	counts := map[string]int64{}
	for _, b := range buckets {
		counts[b.Label] = b.Count
	}
	assert.Equal(t, int64(1), counts["3-5s"])
	assert.Equal(t, int64(1), counts["< 3s"])

	stats, err := uow.feedbacks.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Positive)
	assert.Equal(t, int64(0), stats.Negative)

	require.NoError(t, auth.Logout(ctx, "E123"))
	row := uow.sessions.rows["E123"]
	assert.False(t, row.IsActive)
	assert.NotNil(t, row.LogoutTime)
}

func TestNewConversation_ReturnsNextFreeDefaultName(t *testing.T) {
	ctx := context.Background()
	uow := newStubUow()
	factory := &stubFactory{uow: uow}
	state := memory.NewConversationState()

	chat := NewChatService(factory, stubEmbedder{}, &stubLLM{answer: "ok"}, state, 12, noopLogger{})

	res, err := chat.NewConversation(ctx, "E123")
	require.NoError(t, err)
	assert.Equal(t, "Conversation 1", res.Name)

	active, ok := state.GetActive("E123")
	require.True(t, ok)
	assert.Equal(t, "Conversation 1", active)

	// Once the name is occupied the next request moves on.
	require.NoError(t, uow.messages.Create(ctx, &entity.Message{
		EmployeeId:       "E123",
		ConversationName: "Conversation 1",
		Role:             "user",
		Content:          "hello",
	}))
	res, err = chat.NewConversation(ctx, "E123")
	require.NoError(t, err)
	assert.Equal(t, "Conversation 2", res.Name)
}

func TestChatOperationsRefreshActivity(t *testing.T) {
	ctx := context.Background()
	uow := newStubUow()
	factory := &stubFactory{uow: uow}

	stale := time.Now().Add(-30 * time.Minute)
	uow.sessions.rows["E123"] = &entity.Session{
		EmployeeId:   "E123",
		LoginTime:    stale,
		LastActivity: stale,
		IsActive:     true,
	}

	chat := NewChatService(factory, stubEmbedder{}, &stubLLM{answer: "ok"}, memory.NewConversationState(), 12, noopLogger{})

	_, err := chat.Conversations(ctx, "E123")
	require.NoError(t, err)
	assert.True(t, uow.sessions.rows["E123"].LastActivity.After(stale))

	uow.sessions.rows["E123"].LastActivity = stale
	require.NoError(t, chat.SetFeedback(ctx, "E123", &dto.FeedbackRequest{
		ConversationName: "any",
		MessageIndex:     0,
		Type:             "negative",
	}))
	assert.True(t, uow.sessions.rows["E123"].LastActivity.After(stale))
}
