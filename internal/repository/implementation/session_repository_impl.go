package implementation

import (
	"context"
	"errors"
	"time"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/mapper"
	"ai-docchat-be/internal/model"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionRepositoryImpl) Upsert(ctx context.Context, session *entity.Session) error {
	m := r.mapper.ToModel(session)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"login_time", "last_activity", "logout_time", "is_active"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	var m model.Session
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionRepositoryImpl) Touch(ctx context.Context, employeeId string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("employee_id = ? AND is_active = ?", employeeId, true).
		Update("last_activity", at)
	return res.RowsAffected, res.Error
}

func (r *SessionRepositoryImpl) Close(ctx context.Context, employeeId string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("employee_id = ? AND is_active = ?", employeeId, true).
		Updates(map[string]interface{}{"is_active": false, "logout_time": at})
	return res.RowsAffected, res.Error
}

func (r *SessionRepositoryImpl) CloseOlderThan(ctx context.Context, cutoff, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("is_active = ? AND login_time < ?", true, cutoff).
		Updates(map[string]interface{}{"is_active": false, "logout_time": at})
	return res.RowsAffected, res.Error
}

func (r *SessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Session{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SessionRepositoryImpl) CountActive(ctx context.Context, excludeAdmin bool) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Joins("JOIN users ON users.employee_id = user_sessions.employee_id").
		Where("user_sessions.is_active = ?", true)
	if excludeAdmin {
		query = query.Where("users.role <> ?", constant.RoleAdmin)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SessionRepositoryImpl) FindActive(ctx context.Context, excludeAdmin bool) ([]*entity.SessionView, error) {
	var views []*entity.SessionView
	query := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Select("user_sessions.employee_id, users.name, users.surname, users.role, user_sessions.login_time, user_sessions.is_active").
		Joins("JOIN users ON users.employee_id = user_sessions.employee_id").
		Where("user_sessions.is_active = ?", true).
		Order("user_sessions.login_time DESC")
	if excludeAdmin {
		query = query.Where("users.role <> ?", constant.RoleAdmin)
	}
	if err := query.Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *SessionRepositoryImpl) FindLoggedInToday(ctx context.Context, today time.Time) ([]*entity.SessionView, error) {
	var views []*entity.SessionView
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Select("user_sessions.employee_id, users.name, users.surname, users.role, user_sessions.login_time, user_sessions.is_active").
		Joins("JOIN users ON users.employee_id = user_sessions.employee_id").
		Where("DATE(user_sessions.login_time) = DATE(?)", today).
		Order("user_sessions.login_time DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
