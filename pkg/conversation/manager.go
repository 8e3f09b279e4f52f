package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"
)

var (
	ErrNameConflict = errors.New("conversation name already in use")
	ErrNotFound     = errors.New("conversation not found")
	ErrEmptyName    = errors.New("conversation name must not be empty")
)

const (
	// Names longer than this are truncated when derived from a message.
	maxAutoNameLen = 50
	truncatedLen   = 47
	// A first message shorter than this gives the fallback name instead.
	minSourceLen = 3
)

// Manager owns the named conversation threads of a user. A conversation is
// nothing but the set of messages tagged with its name; it exists exactly as
// long as it has messages.
type Manager struct {
	uow unitofwork.UnitOfWork
}

func NewManager(uow unitofwork.UnitOfWork) *Manager {
	return &Manager{uow: uow}
}

// List groups the user's messages by conversation name, preserving insertion
// order both across conversations (by first message) and within each one.
func (m *Manager) List(ctx context.Context, employeeId string) (map[string][]*entity.Message, []string, error) {
	messages, err := m.uow.MessageRepository().FindAllByUser(ctx, employeeId)
	if err != nil {
		return nil, nil, err
	}

	grouped := make(map[string][]*entity.Message)
	var order []string
	for _, msg := range messages {
		if _, seen := grouped[msg.ConversationName]; !seen {
			order = append(order, msg.ConversationName)
		}
		grouped[msg.ConversationName] = append(grouped[msg.ConversationName], msg)
	}
	return grouped, order, nil
}

// Messages returns one conversation's messages in insertion order.
func (m *Manager) Messages(ctx context.Context, employeeId, name string) ([]*entity.Message, error) {
	return m.uow.MessageRepository().FindAll(ctx,
		specification.ByEmployeeId{EmployeeId: employeeId},
		specification.ByConversationName{Name: name},
		specification.OrderBy{Field: "id", Desc: false},
	)
}

// Exists reports whether the user has at least one message under the name.
func (m *Manager) Exists(ctx context.Context, employeeId, name string) (bool, error) {
	count, err := m.uow.MessageRepository().Count(ctx,
		specification.ByEmployeeId{EmployeeId: employeeId},
		specification.ByConversationName{Name: name},
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Append records one message in the conversation, creating the conversation
// implicitly when it is the first message under that name.
func (m *Manager) Append(ctx context.Context, message *entity.Message) error {
	return m.uow.MessageRepository().Create(ctx, message)
}

// Rename retags every message and every feedback row of the conversation in a
// single transaction. Feedback moves with the messages so positional votes
// stay attached to the turns they judged.
func (m *Manager) Rename(ctx context.Context, employeeId, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	if newName == oldName {
		return nil
	}

	exists, err := m.Exists(ctx, employeeId, oldName)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	taken, err := m.Exists(ctx, employeeId, newName)
	if err != nil {
		return err
	}
	if taken {
		return ErrNameConflict
	}

	if err := m.uow.Begin(ctx); err != nil {
		return err
	}
	if err := m.uow.MessageRepository().RenameConversation(ctx, employeeId, oldName, newName); err != nil {
		_ = m.uow.Rollback()
		return err
	}
	if err := m.uow.FeedbackRepository().RenameConversation(ctx, employeeId, oldName, newName); err != nil {
		_ = m.uow.Rollback()
		return err
	}
	return m.uow.Commit()
}

// Delete removes the conversation's messages and its feedback together.
// Deleting a conversation that does not exist is not an error.
func (m *Manager) Delete(ctx context.Context, employeeId, name string) error {
	if err := m.uow.Begin(ctx); err != nil {
		return err
	}
	if err := m.uow.FeedbackRepository().DeleteByConversation(ctx, employeeId, name); err != nil {
		_ = m.uow.Rollback()
		return err
	}
	if err := m.uow.MessageRepository().DeleteByConversation(ctx, employeeId, name); err != nil {
		_ = m.uow.Rollback()
		return err
	}
	return m.uow.Commit()
}

// NextDefaultName returns the first unused "Conversation N" for the user.
func (m *Manager) NextDefaultName(ctx context.Context, employeeId string) (string, error) {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s%d", constant.DefaultConversationPrefix, n)
		taken, err := m.Exists(ctx, employeeId, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

// AutoName derives a display name from the first user message and resolves
// collisions against the user's existing conversations with a " (n)" suffix,
// counting from 1.
func (m *Manager) AutoName(ctx context.Context, employeeId, firstMessage string) (string, error) {
	base := DeriveName(firstMessage)

	candidate := base
	for n := 1; ; n++ {
		taken, err := m.Exists(ctx, employeeId, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (%d)", base, n)
	}
}

// DeriveName is the pure naming rule: trim, fall back when too short, and
// truncate long messages to 47 characters plus an ellipsis.
func DeriveName(firstMessage string) string {
	trimmed := strings.TrimSpace(firstMessage)
	runes := []rune(trimmed)
	if len(runes) < minSourceLen {
		return constant.FallbackConversationName
	}
	if len(runes) > maxAutoNameLen {
		return string(runes[:truncatedLen]) + "..."
	}
	return trimmed
}
