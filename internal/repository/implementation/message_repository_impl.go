package implementation

import (
	"context"
	"time"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/mapper"
	"ai-docchat-be/internal/model"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) FindAllByUser(ctx context.Context, employeeId string) ([]*entity.Message, error) {
	var models []*model.Message
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeId).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.MessagesToEntities(models), nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MessagesToEntities(models), nil
}

func (r *MessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Message{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MessageRepositoryImpl) DeleteByConversation(ctx context.Context, employeeId, name string) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ? AND conversation_name = ?", employeeId, name).
		Delete(&model.Message{}).Error
}

func (r *MessageRepositoryImpl) RenameConversation(ctx context.Context, employeeId, oldName, newName string) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("employee_id = ? AND conversation_name = ?", employeeId, oldName).
		Update("conversation_name", newName).Error
}

// Analytics queries. These run raw aggregate SQL in the style of the
// dashboard queries they back; heavier shaping (bucketing, weekday means)
// happens in pkg/analytics where it is unit-testable.

func (r *MessageRepositoryImpl) CountDistinctConversations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("COUNT(DISTINCT employee_id || '_' || conversation_name)").
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MessageRepositoryImpl) ConversationsByDay(ctx context.Context, since *time.Time) ([]entity.DailyConversationCount, error) {
	var rows []entity.DailyConversationCount
	query := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("TO_CHAR(timestamp, 'YYYY-MM-DD') as date, " +
			"COUNT(DISTINCT employee_id || '_' || conversation_name) as count, " +
			"CAST(EXTRACT(DOW FROM timestamp) AS INTEGER) as weekday").
		Group("TO_CHAR(timestamp, 'YYYY-MM-DD'), EXTRACT(DOW FROM timestamp)").
		Order("date ASC")
	if since != nil {
		query = query.Where("timestamp >= ?", *since)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MessageRepositoryImpl) ResponseTimes(ctx context.Context) ([]float64, error) {
	var times []float64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("role = ? AND response_time IS NOT NULL", constant.MessageRoleAssistant).
		Pluck("response_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *MessageRepositoryImpl) AverageResponseTime(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("AVG(response_time)").
		Where("role = ? AND response_time IS NOT NULL", constant.MessageRoleAssistant).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *MessageRepositoryImpl) ResponseTimeByDay(ctx context.Context, since time.Time) ([]entity.DailyResponseTime, error) {
	var rows []entity.DailyResponseTime
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("TO_CHAR(timestamp, 'YYYY-MM-DD') as date, AVG(response_time) as average, COUNT(*) as count").
		Where("role = ? AND response_time IS NOT NULL AND timestamp >= ?", constant.MessageRoleAssistant, since).
		Group("TO_CHAR(timestamp, 'YYYY-MM-DD')").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MessageRepositoryImpl) ResponseTimeByUser(ctx context.Context) ([]entity.UserResponseTime, error) {
	var rows []entity.UserResponseTime
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("employee_id, AVG(response_time) as average, COUNT(*) as count, MIN(response_time) as min, MAX(response_time) as max").
		Where("role = ? AND response_time IS NOT NULL", constant.MessageRoleAssistant).
		Group("employee_id").
		Order("average DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MessageRepositoryImpl) DailyActivity(ctx context.Context, limit int) ([]entity.DailyActivity, error) {
	var rows []entity.DailyActivity
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("TO_CHAR(timestamp, 'YYYY-MM-DD') as date, " +
			"COUNT(CASE WHEN role = 'user' THEN 1 END) as questions, " +
			"COUNT(CASE WHEN role = 'assistant' THEN 1 END) as responses, " +
			"COUNT(DISTINCT employee_id) as active_users").
		Group("TO_CHAR(timestamp, 'YYYY-MM-DD')").
		Order("date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MessageRepositoryImpl) UserActivity(ctx context.Context) ([]entity.UserActivity, error) {
	var rows []entity.UserActivity
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("employee_id, " +
			"COUNT(CASE WHEN role = 'user' THEN 1 END) as questions, " +
			"COUNT(CASE WHEN role = 'assistant' THEN 1 END) as responses, " +
			"COUNT(DISTINCT conversation_name) as conversations, " +
			"MIN(timestamp) as first_activity, " +
			"MAX(timestamp) as last_activity").
		Group("employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
