package implementation

import (
	"context"
	"errors"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/mapper"
	"ai-docchat-be/internal/model"
	"ai-docchat-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewFeedbackRepository(db *gorm.DB) contract.FeedbackRepository {
	return &FeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *FeedbackRepositoryImpl) Upsert(ctx context.Context, feedback *entity.Feedback) error {
	m := r.mapper.FeedbackToModel(feedback)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "conversation_name"}, {Name: "message_index"}},
			DoUpdates: clause.AssignmentColumns([]string{"feedback_type", "timestamp"}),
		}).
		Create(m).Error
}

func (r *FeedbackRepositoryImpl) FindOne(ctx context.Context, employeeId, conversationName string, messageIndex int) (*entity.Feedback, error) {
	var m model.Feedback
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND conversation_name = ? AND message_index = ?",
			employeeId, conversationName, messageIndex).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.FeedbackToEntity(&m), nil
}

func (r *FeedbackRepositoryImpl) FindAllOrdered(ctx context.Context) ([]*entity.Feedback, error) {
	var models []*model.Feedback
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.Feedback, len(models))
	for i, m := range models {
		entities[i] = r.mapper.FeedbackToEntity(m)
	}
	return entities, nil
}

func (r *FeedbackRepositoryImpl) DeleteByConversation(ctx context.Context, employeeId, name string) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ? AND conversation_name = ?", employeeId, name).
		Delete(&model.Feedback{}).Error
}

func (r *FeedbackRepositoryImpl) RenameConversation(ctx context.Context, employeeId, oldName, newName string) error {
	return r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Where("employee_id = ? AND conversation_name = ?", employeeId, oldName).
		Update("conversation_name", newName).Error
}

func (r *FeedbackRepositoryImpl) CountByType(ctx context.Context) (entity.FeedbackStats, error) {
	var rows []struct {
		FeedbackType string
		Count        int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Select("feedback_type, COUNT(*) as count").
		Group("feedback_type").
		Scan(&rows).Error
	if err != nil {
		return entity.FeedbackStats{}, err
	}

	var stats entity.FeedbackStats
	for _, row := range rows {
		switch row.FeedbackType {
		case constant.FeedbackPositive:
			stats.Positive = row.Count
		case constant.FeedbackNegative:
			stats.Negative = row.Count
		}
	}
	return stats, nil
}

func (r *FeedbackRepositoryImpl) CountByTypePerUser(ctx context.Context) ([]entity.UserFeedbackCount, error) {
	var rows []entity.UserFeedbackCount
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Select("employee_id, " +
			"COUNT(CASE WHEN feedback_type = 'positive' THEN 1 END) as positive, " +
			"COUNT(CASE WHEN feedback_type = 'negative' THEN 1 END) as negative").
		Group("employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
