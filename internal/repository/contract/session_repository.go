package contract

import (
	"context"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/specification"
)

type SessionRepository interface {
	// Upsert writes the whole row for the user, creating it when absent.
	// This deliberately discards any prior logout_time (latest cycle only).
	Upsert(ctx context.Context, session *entity.Session) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	// Touch bumps last_activity for an active session; affects zero rows when
	// there is none.
	Touch(ctx context.Context, employeeId string, at time.Time) (int64, error)
	// Close marks the active session inactive with the given logout time.
	// Affects zero rows when the session is already closed or absent.
	Close(ctx context.Context, employeeId string, at time.Time) (int64, error)
	// CloseOlderThan force-closes every active session whose login_time is
	// before the cutoff. Returns the number of reclaimed sessions.
	CloseOlderThan(ctx context.Context, cutoff, at time.Time) (int64, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountActive(ctx context.Context, excludeAdmin bool) (int64, error)
	FindActive(ctx context.Context, excludeAdmin bool) ([]*entity.SessionView, error)
	FindLoggedInToday(ctx context.Context, today time.Time) ([]*entity.SessionView, error)
}
