package mapper

import (
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	return &entity.Session{
		EmployeeId:   s.EmployeeId,
		LoginTime:    s.LoginTime,
		LastActivity: s.LastActivity,
		LogoutTime:   s.LogoutTime,
		IsActive:     s.IsActive,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}
	return &model.Session{
		EmployeeId:   s.EmployeeId,
		LoginTime:    s.LoginTime,
		LastActivity: s.LastActivity,
		LogoutTime:   s.LogoutTime,
		IsActive:     s.IsActive,
	}
}
