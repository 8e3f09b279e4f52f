package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionRepo keeps one row per employee in memory, mirroring the
// single-row-per-user table semantics.
type fakeSessionRepo struct {
	rows     map[string]*entity.Session
	sweepErr error

	sweepCutoff time.Time
	sweepCalls  int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{rows: map[string]*entity.Session{}}
}

func (f *fakeSessionRepo) Upsert(_ context.Context, s *entity.Session) error {
	cp := *s
	f.rows[s.EmployeeId] = &cp
	return nil
}

func (f *fakeSessionRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) Touch(_ context.Context, employeeId string, at time.Time) (int64, error) {
	row, ok := f.rows[employeeId]
	if !ok || !row.IsActive {
		return 0, nil
	}
	row.LastActivity = at
	return 1, nil
}

func (f *fakeSessionRepo) Close(_ context.Context, employeeId string, at time.Time) (int64, error) {
	row, ok := f.rows[employeeId]
	if !ok || !row.IsActive {
		return 0, nil
	}
	row.IsActive = false
	t := at
	row.LogoutTime = &t
	return 1, nil
}

func (f *fakeSessionRepo) CloseOlderThan(_ context.Context, cutoff, at time.Time) (int64, error) {
	f.sweepCalls++
	f.sweepCutoff = cutoff
	if f.sweepErr != nil {
		return 0, f.sweepErr
	}
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

func (f *fakeSessionRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeSessionRepo) CountActive(_ context.Context, _ bool) (int64, error) {
	var n int64
	for _, row := range f.rows {
		if row.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionRepo) FindActive(_ context.Context, _ bool) ([]*entity.SessionView, error) {
	var out []*entity.SessionView
	for _, row := range f.rows {
		if row.IsActive {
			out = append(out, &entity.SessionView{EmployeeId: row.EmployeeId, LoginTime: row.LoginTime, IsActive: true})
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) FindLoggedInToday(_ context.Context, today time.Time) ([]*entity.SessionView, error) {
	var out []*entity.SessionView
	for _, row := range f.rows {
		y1, m1, d1 := row.LoginTime.Date()
		y2, m2, d2 := today.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, &entity.SessionView{EmployeeId: row.EmployeeId, LoginTime: row.LoginTime, IsActive: row.IsActive})
		}
	}
	return out, nil
}

type fakeUow struct {
	sessions contract.SessionRepository
}

func (f *fakeUow) Begin(context.Context) error { return nil }
func (f *fakeUow) Commit() error               { return nil }
func (f *fakeUow) Rollback() error             { return nil }

func (f *fakeUow) UserRepository() contract.UserRepository         { return nil }
func (f *fakeUow) SessionRepository() contract.SessionRepository   { return f.sessions }
func (f *fakeUow) MessageRepository() contract.MessageRepository   { return nil }
func (f *fakeUow) FeedbackRepository() contract.FeedbackRepository { return nil }
func (f *fakeUow) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return nil
}

var _ unitofwork.UnitOfWork = (*fakeUow)(nil)

func newTestRegistry(repo *fakeSessionRepo, now time.Time) *Registry {
	r := NewRegistry(&fakeUow{sessions: repo}, 12)
	r.nowFn = func() time.Time { return now }
	return r
}

func TestLogin_OverwritesPreviousCycle(t *testing.T) {
	repo := newFakeSessionRepo()
	ctx := context.Background()

	first := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	r := newTestRegistry(repo, first)
	require.NoError(t, r.Login(ctx, "E123"))
	require.NoError(t, r.Logout(ctx, "E123"))
	require.NotNil(t, repo.rows["E123"].LogoutTime)

	second := first.Add(2 * time.Hour)
	r.nowFn = func() time.Time { return second }
	require.NoError(t, r.Login(ctx, "E123"))

	row := repo.rows["E123"]
	assert.True(t, row.IsActive)
	assert.Equal(t, second, row.LoginTime)
	assert.Equal(t, second, row.LastActivity)
	assert.Nil(t, row.LogoutTime, "a fresh cycle discards the old logout time")
}

func TestLogout_Idempotent(t *testing.T) {
	repo := newFakeSessionRepo()
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	r := newTestRegistry(repo, now)

	require.NoError(t, r.Login(ctx, "E123"))
	require.NoError(t, r.Logout(ctx, "E123"))
	require.NoError(t, r.Logout(ctx, "E123"))
	require.NoError(t, r.Logout(ctx, "never-logged-in"))
}

func TestTouch_NoopWithoutActiveSession(t *testing.T) {
	repo := newFakeSessionRepo()
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	r := newTestRegistry(repo, now)

	require.NoError(t, r.Touch(ctx, "E123"))

	require.NoError(t, r.Login(ctx, "E123"))
	later := now.Add(30 * time.Minute)
	r.nowFn = func() time.Time { return later }
	require.NoError(t, r.Touch(ctx, "E123"))
	assert.Equal(t, later, repo.rows["E123"].LastActivity)
	assert.Equal(t, now, repo.rows["E123"].LoginTime, "touch must not move the login time")
}

func TestReclaimGhosts_ClosesOnlySessionsPastTTL(t *testing.T) {
	repo := newFakeSessionRepo()
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC)
	r := newTestRegistry(repo, now)

	repo.rows["ghost"] = &entity.Session{
		EmployeeId: "ghost",
		LoginTime:  now.Add(-13 * time.Hour),
		IsActive:   true,
	}
	repo.rows["fresh"] = &entity.Session{
		EmployeeId: "fresh",
		LoginTime:  now.Add(-1 * time.Hour),
		IsActive:   true,
	}

	n, err := r.ReclaimGhosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, now.Add(-12*time.Hour), repo.sweepCutoff)

	assert.False(t, repo.rows["ghost"].IsActive)
	require.NotNil(t, repo.rows["ghost"].LogoutTime)
	assert.Equal(t, now, *repo.rows["ghost"].LogoutTime)
	assert.True(t, repo.rows["fresh"].IsActive)
}

func TestCountActive_SweepsBeforeCounting(t *testing.T) {
	repo := newFakeSessionRepo()
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC)
	r := newTestRegistry(repo, now)

	repo.rows["ghost"] = &entity.Session{EmployeeId: "ghost", LoginTime: now.Add(-20 * time.Hour), IsActive: true}
	repo.rows["fresh"] = &entity.Session{EmployeeId: "fresh", LoginTime: now.Add(-10 * time.Minute), IsActive: true}

	count, err := r.CountActive(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, repo.sweepCalls)
}

func TestListActiveToday_SweepsGhostsFirst(t *testing.T) {
	repo := newFakeSessionRepo()
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC)
	r := newTestRegistry(repo, now)

	// Logged in this morning, 13h ago, never logged out.
	repo.rows["ghost"] = &entity.Session{EmployeeId: "ghost", LoginTime: now.Add(-13 * time.Hour), IsActive: true}
	repo.rows["fresh"] = &entity.Session{EmployeeId: "fresh", LoginTime: now.Add(-10 * time.Minute), IsActive: true}

	views, err := r.ListActiveToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.sweepCalls)

	byId := map[string]bool{}
	for _, v := range views {
		byId[v.EmployeeId] = v.IsActive
	}
	assert.False(t, byId["ghost"], "a reclaimed ghost still shows in today's list but closed")
	assert.True(t, byId["fresh"])
}

func TestCountActive_SweepFailurePropagates(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.sweepErr = errors.New("db down")
	ctx := context.Background()
	r := newTestRegistry(repo, time.Now())

	_, err := r.CountActive(ctx, false)
	assert.Error(t, err)

	_, err = r.ListActive(ctx, false)
	assert.Error(t, err)

	_, err = r.ListActiveToday(ctx)
	assert.Error(t, err)
}
