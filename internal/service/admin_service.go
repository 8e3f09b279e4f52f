package service

import (
	"context"
	"errors"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/analytics"
	"ai-docchat-be/pkg/feedback"
	"ai-docchat-be/pkg/ingest"
	"ai-docchat-be/pkg/retrieval"
	"ai-docchat-be/pkg/session"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrUserNotFound = errors.New("user not found")

type IAdminService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	ConnectedNow(ctx context.Context) ([]dto.SessionResponse, error)
	ConnectedToday(ctx context.Context) ([]dto.SessionResponse, error)

	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, employeeId string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)

	ConversationsByDay(ctx context.Context, days int) ([]dto.DailyCountResponse, error)
	WeekdayAverages(ctx context.Context) ([]dto.WeekdayAverageResponse, error)
	ResponseTimeDistribution(ctx context.Context) ([]dto.BucketResponse, error)
	ResponseTimeByDay(ctx context.Context, days int) ([]dto.DailyResponseTimeResponse, error)
	ResponseTimeByUser(ctx context.Context) ([]dto.UserResponseTimeResponse, error)
	DailyActivity(ctx context.Context, limit int) ([]dto.DailyActivityResponse, error)
	UserLeaderboard(ctx context.Context) ([]dto.UserStatsResponse, error)
	FeedbackEntries(ctx context.Context) ([]dto.FeedbackEntryResponse, error)

	IngestDocument(ctx context.Context, req *dto.IngestDocumentRequest) (uuid.UUID, error)
	ListDocuments(ctx context.Context) ([]*entity.DocumentChunk, error)
	DeleteDocument(ctx context.Context, documentId uuid.UUID) error
	DocumentTypes(ctx context.Context) ([]dto.DocumentTypeCountResponse, error)

	SystemLogs(level string, limit, offset int) ([]logger.LogEntry, error)
	SystemLogById(id string) (*logger.LogEntry, error)
}

type adminService struct {
	uowFactory    unitofwork.RepositoryFactory
	publisher     *ingest.Publisher
	ghostTTLHours int
	log           logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	publisher *ingest.Publisher,
	ghostTTLHours int,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:    uowFactory,
		publisher:     publisher,
		ghostTTLHours: ghostTTLHours,
		log:           log,
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	agg := analytics.NewAggregator(uow)
	registry := session.NewRegistry(uow, s.ghostTTLHours)

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	roles, err := agg.RoleDistribution(ctx)
	if err != nil {
		return nil, err
	}
	byRole := make(map[string]int64, len(roles))
	for _, r := range roles {
		byRole[r.Role] = r.Count
	}

	connected, err := registry.CountActive(ctx, true)
	if err != nil {
		return nil, err
	}

	totalConvs, err := agg.TotalConversations(ctx)
	if err != nil {
		return nil, err
	}

	fb, err := agg.FeedbackSummary(ctx)
	if err != nil {
		return nil, err
	}

	docCount, _, err := agg.DocumentStats(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalUsers:         totalUsers,
		UsersByRole:        byRole,
		ConnectedNow:       connected,
		TotalConversations: totalConvs,
		PositiveFeedback:   fb.Positive,
		NegativeFeedback:   fb.Negative,
		DocumentCount:      docCount,
	}, nil
}

func mapSessionViews(views []*entity.SessionView) []dto.SessionResponse {
	out := make([]dto.SessionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.SessionResponse{
			EmployeeId: v.EmployeeId,
			Name:       v.Name,
			Surname:    v.Surname,
			Role:       v.Role,
			LoginTime:  v.LoginTime,
			IsActive:   v.IsActive,
		})
	}
	return out
}

func (s *adminService) ConnectedNow(ctx context.Context) ([]dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	registry := session.NewRegistry(uow, s.ghostTTLHours)
	views, err := registry.ListActive(ctx, true)
	if err != nil {
		return nil, err
	}
	return mapSessionViews(views), nil
}

func (s *adminService) ConnectedToday(ctx context.Context) ([]dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	registry := session.NewRegistry(uow, s.ghostTTLHours)
	views, err := registry.ListActiveToday(ctx)
	if err != nil {
		return nil, err
	}
	return mapSessionViews(views), nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specification.OrderBy{Field: "employee_id", Desc: false})
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserResponse{
			EmployeeId: u.EmployeeId,
			Name:       u.Name,
			Surname:    u.Surname,
			Email:      u.Email,
			Role:       u.Role,
			CreatedAt:  u.CreatedAt,
		})
	}
	return out, nil
}

func (s *adminService) UpdateUser(ctx context.Context, employeeId string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmployeeId{EmployeeId: employeeId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Surname != "" {
		user.Surname = req.Surname
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		if !constant.IsValidRole(req.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("admin", "user updated", map[string]interface{}{"employee_id": employeeId})

	return &dto.UserResponse{
		EmployeeId: user.EmployeeId,
		Name:       user.Name,
		Surname:    user.Surname,
		Email:      user.Email,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt,
	}, nil
}

func (s *adminService) ConversationsByDay(ctx context.Context, days int) ([]dto.DailyCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := analytics.NewAggregator(uow).ConversationsByDay(ctx, days)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailyCountResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DailyCountResponse{Date: r.Date, Count: r.Count})
	}
	return out, nil
}

func (s *adminService) WeekdayAverages(ctx context.Context) ([]dto.WeekdayAverageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := analytics.NewAggregator(uow).AverageByWeekday(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WeekdayAverageResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WeekdayAverageResponse{Weekday: r.Weekday, Average: r.Average})
	}
	return out, nil
}

func (s *adminService) ResponseTimeDistribution(ctx context.Context) ([]dto.BucketResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := analytics.NewAggregator(uow).ResponseTimeDistribution(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BucketResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BucketResponse{Label: r.Label, Count: r.Count})
	}
	return out, nil
}

func (s *adminService) ResponseTimeByDay(ctx context.Context, days int) ([]dto.DailyResponseTimeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := analytics.NewAggregator(uow).ResponseTimeByDay(ctx, days)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailyResponseTimeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DailyResponseTimeResponse{Date: r.Date, Average: r.Average, Count: r.Count})
	}
	return out, nil
}

func (s *adminService) ResponseTimeByUser(ctx context.Context) ([]dto.UserResponseTimeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := analytics.NewAggregator(uow).ResponseTimeByUser(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponseTimeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UserResponseTimeResponse{
			EmployeeId: r.EmployeeId,
			Average:    r.Average,
			Count:      r.Count,
			Min:        r.Min,
			Max:        r.Max,
		})
	}
	return out, nil
}

func (s *adminService) DailyActivity(ctx context.Context, limit int) ([]dto.DailyActivityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := analytics.NewAggregator(uow).DailyActivity(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailyActivityResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DailyActivityResponse{
			Date:        r.Date,
			Questions:   r.Questions,
			Responses:   r.Responses,
			ActiveUsers: r.ActiveUsers,
		})
	}
	return out, nil
}

func (s *adminService) UserLeaderboard(ctx context.Context) ([]dto.UserStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := analytics.NewAggregator(uow).UserLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserStatsResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UserStatsResponse{
			EmployeeId:       r.EmployeeId,
			Questions:        r.Questions,
			Responses:        r.Responses,
			Conversations:    r.Conversations,
			Positive:         r.Positive,
			Negative:         r.Negative,
			SatisfactionRate: r.SatisfactionRate,
		})
	}
	return out, nil
}

func (s *adminService) FeedbackEntries(ctx context.Context) ([]dto.FeedbackEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := feedback.NewStore(uow).All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeedbackEntryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FeedbackEntryResponse{
			EmployeeId:       r.EmployeeId,
			ConversationName: r.ConversationName,
			MessageIndex:     r.MessageIndex,
			Type:             r.Type,
			Timestamp:        r.Timestamp,
		})
	}
	return out, nil
}

func (s *adminService) IngestDocument(ctx context.Context, req *dto.IngestDocumentRequest) (uuid.UUID, error) {
	documentId := uuid.New()
	err := s.publisher.Publish(ingest.DocumentMessage{
		DocumentId: documentId,
		Filename:   req.Filename,
		DocType:    req.DocType,
		Content:    req.Content,
	})
	if err != nil {
		return uuid.Nil, err
	}
	s.log.Info("admin", "document queued for ingestion", map[string]interface{}{
		"document_id": documentId.String(),
		"filename":    req.Filename,
	})
	return documentId, nil
}

func (s *adminService) ListDocuments(ctx context.Context) ([]*entity.DocumentChunk, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentEmbeddingRepository().DistinctDocuments(ctx)
}

func (s *adminService) DeleteDocument(ctx context.Context, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	store := retrieval.NewStore(uow, nil)
	if err := store.Delete(ctx, []uuid.UUID{documentId}); err != nil {
		return err
	}
	s.log.Info("admin", "document deleted", map[string]interface{}{"document_id": documentId.String()})
	return nil
}

func (s *adminService) DocumentTypes(ctx context.Context) ([]dto.DocumentTypeCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.DocumentEmbeddingRepository().CountByType(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentTypeCountResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DocumentTypeCountResponse{DocType: r.DocType, Count: r.Count})
	}
	return out, nil
}

func (s *adminService) SystemLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.log.GetLogs(level, limit, offset)
}

func (s *adminService) SystemLogById(id string) (*logger.LogEntry, error) {
	return s.log.GetLogById(id)
}
