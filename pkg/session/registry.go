package session

import (
	"context"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
)

// Registry owns the one-row-per-user session table: login cycles, activity
// touches and the reclamation of sessions whose owner never logged out.
type Registry struct {
	uow      unitofwork.UnitOfWork
	ghostTTL time.Duration
	nowFn    func() time.Time
}

func NewRegistry(uow unitofwork.UnitOfWork, ghostTTLHours int) *Registry {
	return &Registry{
		uow:      uow,
		ghostTTL: time.Duration(ghostTTLHours) * time.Hour,
		nowFn:    time.Now,
	}
}

// Login opens a new session cycle for the user, overwriting whatever state
// the row held before. A user who crashed mid-session and logs back in simply
// starts a clean cycle.
func (r *Registry) Login(ctx context.Context, employeeId string) error {
	now := r.nowFn()
	return r.uow.SessionRepository().Upsert(ctx, &entity.Session{
		EmployeeId:   employeeId,
		LoginTime:    now,
		LastActivity: now,
		LogoutTime:   nil,
		IsActive:     true,
	})
}

// Touch records activity on the user's open session. Touching a closed or
// missing session is a no-op, not an error: the caller may race a ghost sweep.
func (r *Registry) Touch(ctx context.Context, employeeId string) error {
	_, err := r.uow.SessionRepository().Touch(ctx, employeeId, r.nowFn())
	return err
}

// Logout closes the user's session. Idempotent: logging out twice, or after a
// sweep already closed the session, succeeds without effect.
func (r *Registry) Logout(ctx context.Context, employeeId string) error {
	_, err := r.uow.SessionRepository().Close(ctx, employeeId, r.nowFn())
	return err
}

// ReclaimGhosts force-closes every active session older than the TTL and
// returns how many were reclaimed. login_time is the reference point, not
// last_activity, so a long-idle but recent login survives.
func (r *Registry) ReclaimGhosts(ctx context.Context) (int64, error) {
	now := r.nowFn()
	cutoff := now.Add(-r.ghostTTL)
	return r.uow.SessionRepository().CloseOlderThan(ctx, cutoff, now)
}

// CountActive sweeps ghosts first so the count never includes stale sessions.
// A sweep failure fails the read; a stale count is worse than an error.
func (r *Registry) CountActive(ctx context.Context, excludeAdmin bool) (int64, error) {
	if _, err := r.ReclaimGhosts(ctx); err != nil {
		return 0, err
	}
	return r.uow.SessionRepository().CountActive(ctx, excludeAdmin)
}

// ListActive returns the "connected now" panel rows, sweeping ghosts first.
func (r *Registry) ListActive(ctx context.Context, excludeAdmin bool) ([]*entity.SessionView, error) {
	if _, err := r.ReclaimGhosts(ctx); err != nil {
		return nil, err
	}
	return r.uow.SessionRepository().FindActive(ctx, excludeAdmin)
}

// ListActiveToday returns everyone whose current cycle started today,
// regardless of whether the session is still open. Ghosts are swept first so
// a row never shows an open session that outlived the TTL.
func (r *Registry) ListActiveToday(ctx context.Context) ([]*entity.SessionView, error) {
	if _, err := r.ReclaimGhosts(ctx); err != nil {
		return nil, err
	}
	return r.uow.SessionRepository().FindLoggedInToday(ctx, r.nowFn())
}

// Get returns the user's session row, nil when the user never logged in.
func (r *Registry) Get(ctx context.Context, employeeId string) (*entity.Session, error) {
	return r.uow.SessionRepository().FindOne(ctx, specification.ByEmployeeId{EmployeeId: employeeId})
}
