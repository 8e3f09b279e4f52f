package mapper

import (
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:               msg.Id,
		EmployeeId:       msg.EmployeeId,
		ConversationName: msg.ConversationName,
		Role:             msg.Role,
		Content:          msg.Content,
		Timestamp:        msg.Timestamp,
		ResponseTime:     msg.ResponseTime,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:               msg.Id,
		EmployeeId:       msg.EmployeeId,
		ConversationName: msg.ConversationName,
		Role:             msg.Role,
		Content:          msg.Content,
		Timestamp:        msg.Timestamp,
		ResponseTime:     msg.ResponseTime,
	}
}

func (m *ChatMapper) MessagesToEntities(models []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(models))
	for i, msg := range models {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}

func (m *ChatMapper) FeedbackToEntity(f *model.Feedback) *entity.Feedback {
	if f == nil {
		return nil
	}
	return &entity.Feedback{
		EmployeeId:       f.EmployeeId,
		ConversationName: f.ConversationName,
		MessageIndex:     f.MessageIndex,
		Type:             f.FeedbackType,
		Timestamp:        f.Timestamp,
	}
}

func (m *ChatMapper) FeedbackToModel(f *entity.Feedback) *model.Feedback {
	if f == nil {
		return nil
	}
	return &model.Feedback{
		EmployeeId:       f.EmployeeId,
		ConversationName: f.ConversationName,
		MessageIndex:     f.MessageIndex,
		FeedbackType:     f.Type,
		Timestamp:        f.Timestamp,
	}
}
