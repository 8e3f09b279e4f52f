package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/memory"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/conversation"
	"ai-docchat-be/pkg/embedding"
	"ai-docchat-be/pkg/feedback"
	"ai-docchat-be/pkg/llm"
	"ai-docchat-be/pkg/retrieval"
	"ai-docchat-be/pkg/session"
)

var ErrEmptyQuestion = errors.New("question must not be empty")

type IChatService interface {
	Conversations(ctx context.Context, employeeId string) ([]dto.ConversationResponse, error)
	NewConversation(ctx context.Context, employeeId string) (*dto.NewConversationResponse, error)
	SendMessage(ctx context.Context, employeeId string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	RenameConversation(ctx context.Context, employeeId string, req *dto.RenameConversationRequest) error
	DeleteConversation(ctx context.Context, employeeId string, req *dto.DeleteConversationRequest) error
	SetFeedback(ctx context.Context, employeeId string, req *dto.FeedbackRequest) error
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	embedder      embedding.Provider
	llmProvider   llm.LLMProvider
	state         *memory.ConversationState
	ghostTTLHours int
	log           logger.ILogger
	nowFn         func() time.Time
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.Provider,
	llmProvider llm.LLMProvider,
	state *memory.ConversationState,
	ghostTTLHours int,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		embedder:      embedder,
		llmProvider:   llmProvider,
		state:         state,
		ghostTTLHours: ghostTTLHours,
		log:           log,
		nowFn:         time.Now,
	}
}

// touchSession refreshes the caller's last_activity. Best effort: a chat
// operation must not fail because the activity write did.
func (s *chatService) touchSession(ctx context.Context, uow unitofwork.UnitOfWork, employeeId string) {
	registry := session.NewRegistry(uow, s.ghostTTLHours)
	if err := registry.Touch(ctx, employeeId); err != nil {
		s.log.Warn("chat", "failed to touch session", map[string]interface{}{"employee_id": employeeId, "error": err.Error()})
	}
}

func (s *chatService) Conversations(ctx context.Context, employeeId string) ([]dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	s.touchSession(ctx, uow, employeeId)
	mgr := conversation.NewManager(uow)

	grouped, order, err := mgr.List(ctx, employeeId)
	if err != nil {
		return nil, err
	}

	votes, err := feedback.NewStore(uow).All(ctx)
	if err != nil {
		return nil, err
	}
	voteByKey := make(map[string]string)
	for _, v := range votes {
		if v.EmployeeId != employeeId {
			continue
		}
		voteByKey[voteKey(v.ConversationName, v.MessageIndex)] = v.Type
	}

	out := make([]dto.ConversationResponse, 0, len(order))
	for _, name := range order {
		msgs := grouped[name]
		resp := dto.ConversationResponse{Name: name, Messages: make([]dto.MessageResponse, 0, len(msgs))}
		for i, m := range msgs {
			mr := dto.MessageResponse{
				Index:        i,
				Role:         m.Role,
				Content:      m.Content,
				Timestamp:    m.Timestamp,
				ResponseTime: m.ResponseTime,
			}
			if t, ok := voteByKey[voteKey(name, i)]; ok {
				vote := t
				mr.Feedback = &vote
			}
			resp.Messages = append(resp.Messages, mr)
		}
		out = append(out, resp)
	}
	return out, nil
}

func voteKey(name string, index int) string {
	return fmt.Sprintf("%s\x00%d", name, index)
}

// NewConversation reserves the next free "Conversation N" name for the user
// and marks it active. No row is written; the conversation materializes with
// its first message.
func (s *chatService) NewConversation(ctx context.Context, employeeId string) (*dto.NewConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	s.touchSession(ctx, uow, employeeId)

	name, err := conversation.NewManager(uow).NextDefaultName(ctx, employeeId)
	if err != nil {
		return nil, err
	}
	s.state.SetActive(employeeId, name)

	s.log.Info("chat", "conversation opened", map[string]interface{}{
		"employee_id": employeeId,
		"name":        name,
	})
	return &dto.NewConversationResponse{Name: name}, nil
}

func (s *chatService) SendMessage(ctx context.Context, employeeId string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	question := strings.TrimSpace(req.Content)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	mgr := conversation.NewManager(uow)

	name := req.ConversationName
	isNew := false
	if name == "" {
		derived, err := mgr.AutoName(ctx, employeeId, question)
		if err != nil {
			return nil, err
		}
		name = derived
		isNew = true
	}

	history, err := mgr.Messages(ctx, employeeId, name)
	if err != nil {
		return nil, err
	}

	store := retrieval.NewStore(uow, s.embedder)
	chunks, err := store.Search(ctx, question, retrieval.DefaultTopK)
	if err != nil {
		return nil, err
	}

	messages := buildChat(chunks, history, question)

	// The measured latency covers generation only; retrieval is not billed to
	// the model.
	start := s.nowFn()
	answer, err := s.llmProvider.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}
	elapsed := s.nowFn().Sub(start).Seconds()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	userMsg := &entity.Message{
		EmployeeId:       employeeId,
		ConversationName: name,
		Role:             constant.MessageRoleUser,
		Content:          question,
	}
	if err := mgr.Append(ctx, userMsg); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	assistantMsg := &entity.Message{
		EmployeeId:       employeeId,
		ConversationName: name,
		Role:             constant.MessageRoleAssistant,
		Content:          answer,
		ResponseTime:     &elapsed,
	}
	if err := mgr.Append(ctx, assistantMsg); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.touchSession(ctx, uow, employeeId)
	s.state.SetActive(employeeId, name)

	s.log.Info("chat", "message answered", map[string]interface{}{
		"employee_id":   employeeId,
		"conversation":  name,
		"new":           isNew,
		"response_time": elapsed,
	})

	return &dto.SendMessageResponse{
		ConversationName: name,
		Answer:           answer,
		ResponseTime:     elapsed,
	}, nil
}

// buildChat assembles the generation request: grounding chunks as the system
// turn, then a window of recent history, then the question.
func buildChat(chunks []*entity.DocumentChunk, history []*entity.Message, question string) []llm.Message {
	var sys strings.Builder
	sys.WriteString("You are an assistant answering employee questions strictly from internal company documents.\n")
	if len(chunks) > 0 {
		sys.WriteString("<reference_material>\n")
		for _, c := range chunks {
			sys.WriteString(c.Content)
			sys.WriteString("\n---\n")
		}
		sys.WriteString("</reference_material>\n")
	}
	sys.WriteString("Answer from the reference material only. When it does not contain the answer, say so honestly.")

	messages := []llm.Message{{Role: "system", Content: sys.String()}}

	from := 0
	if len(history) > constant.HistoryWindow {
		from = len(history) - constant.HistoryWindow
	}
	for _, m := range history[from:] {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	messages = append(messages, llm.Message{Role: "user", Content: question})
	return messages
}

func (s *chatService) RenameConversation(ctx context.Context, employeeId string, req *dto.RenameConversationRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	s.touchSession(ctx, uow, employeeId)
	mgr := conversation.NewManager(uow)
	if err := mgr.Rename(ctx, employeeId, req.OldName, req.NewName); err != nil {
		return err
	}
	if active, ok := s.state.GetActive(employeeId); ok && active == req.OldName {
		s.state.SetActive(employeeId, req.NewName)
	}
	s.log.Info("chat", "conversation renamed", map[string]interface{}{
		"employee_id": employeeId,
		"from":        req.OldName,
		"to":          req.NewName,
	})
	return nil
}

func (s *chatService) DeleteConversation(ctx context.Context, employeeId string, req *dto.DeleteConversationRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	s.touchSession(ctx, uow, employeeId)
	mgr := conversation.NewManager(uow)
	if err := mgr.Delete(ctx, employeeId, req.Name); err != nil {
		return err
	}
	if active, ok := s.state.GetActive(employeeId); ok && active == req.Name {
		s.state.Forget(employeeId)
	}
	s.log.Info("chat", "conversation deleted", map[string]interface{}{
		"employee_id": employeeId,
		"name":        req.Name,
	})
	return nil
}

func (s *chatService) SetFeedback(ctx context.Context, employeeId string, req *dto.FeedbackRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	s.touchSession(ctx, uow, employeeId)
	return feedback.NewStore(uow).Set(ctx, employeeId, req.ConversationName, req.MessageIndex, req.Type)
}
