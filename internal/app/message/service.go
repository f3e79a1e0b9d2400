package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/internal/providers/minio"
	"backend/internal/providers/redis"
	"backend/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	conversationCacheTTL = 2 * time.Minute

	// EventMessageCreated is published on every successful persist, from the
	// HTTP path and the realtime path alike. The websocket hub consumes it and
	// notifies both participants' live sessions, so the two entry points share
	// one delivery pipeline.
	EventMessageCreated = "message_created"
)

type SendMessageInput struct {
	Sender   string
	Receiver string
	Body     string
	FileID   string
}

type Service interface {
	SendMessage(ctx context.Context, in SendMessageInput) (*Message, error)
	GetConversation(ctx context.Context, callerID string, otherID string) ([]*Message, error)
	EditMessage(ctx context.Context, id string, newBody string) (*Message, error)
	DeleteMessage(ctx context.Context, id string) error
	AddReaction(ctx context.Context, id string, userID string, emoji string) (*Message, error)
	MarkRead(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	redisP   *redis.RedisProvider
	minioP   *minio.MinioProvider
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
}

func NewService(
	repo Repository,
	redisP *redis.RedisProvider,
	minioP *minio.MinioProvider,
	eventBus *utils.EventBus,
	logger *zap.Logger,
) Service {
	return &service{
		repo:     repo,
		redisP:   redisP,
		minioP:   minioP,
		eventBus: eventBus,
		logger:   logger.Sugar(),
	}
}

func (s *service) SendMessage(ctx context.Context, in SendMessageInput) (*Message, error) {
	if strings.TrimSpace(in.Body) == "" && in.FileID == "" {
		return nil, ErrEmptyMessage
	}
	if in.Sender == "" || in.Receiver == "" {
		return nil, fmt.Errorf("%w: sender and receiver are required", ErrEmptyMessage)
	}

	msg := &Message{
		ID:        uuid.New().String(),
		Sender:    in.Sender,
		Receiver:  in.Receiver,
		Body:      in.Body,
		FileID:    in.FileID,
		Reactions: []Reaction{},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	s.invalidateConversation(ctx, in.Sender, in.Receiver)
	s.annotate(msg)

	s.eventBus.Publish(EventMessageCreated, msg)

	return msg, nil
}

func (s *service) GetConversation(ctx context.Context, callerID string, otherID string) ([]*Message, error) {
	cacheKey := conversationCacheKey(callerID, otherID)

	if s.redisP != nil {
		if cached, err := s.redisP.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var messages []*Message
			if json.Unmarshal([]byte(cached), &messages) == nil {
				return messages, nil
			}
		}
	}

	messages, err := s.repo.ListBetween(callerID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	for _, msg := range messages {
		s.annotate(msg)
	}

	if s.redisP != nil && len(messages) > 0 {
		if data, err := json.Marshal(messages); err == nil {
			s.redisP.SetEX(ctx, cacheKey, data, conversationCacheTTL)
		}
	}

	return messages, nil
}

func (s *service) EditMessage(ctx context.Context, id string, newBody string) (*Message, error) {
	msg, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	if err := s.repo.UpdateBody(id, newBody); err != nil {
		return nil, fmt.Errorf("failed to edit message: %w", err)
	}

	msg.Body = newBody
	msg.Edited = true

	s.invalidateConversation(ctx, msg.Sender, msg.Receiver)
	s.annotate(msg)

	return msg, nil
}

func (s *service) DeleteMessage(ctx context.Context, id string) error {
	msg, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get message: %w", err)
	}

	if err := s.repo.SoftDelete(id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	s.invalidateConversation(ctx, msg.Sender, msg.Receiver)

	return nil
}

func (s *service) AddReaction(ctx context.Context, id string, userID string, emoji string) (*Message, error) {
	msg, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	reaction := &Reaction{
		MessageID: msg.ID,
		UserID:    userID,
		Emoji:     emoji,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddReaction(reaction); err != nil {
		return nil, fmt.Errorf("failed to add reaction: %w", err)
	}

	msg.Reactions = append(msg.Reactions, *reaction)

	s.invalidateConversation(ctx, msg.Sender, msg.Receiver)
	s.annotate(msg)

	return msg, nil
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	msg, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get message: %w", err)
	}

	if err := s.repo.MarkRead(id); err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}

	s.invalidateConversation(ctx, msg.Sender, msg.Receiver)

	return nil
}

func (s *service) annotate(msg *Message) {
	if msg.FileID != "" && s.minioP != nil {
		msg.FileURL = s.minioP.FileURL(msg.FileID)
	}
	if msg.Reactions == nil {
		msg.Reactions = []Reaction{}
	}
}

func (s *service) invalidateConversation(ctx context.Context, userA string, userB string) {
	if s.redisP == nil {
		return
	}
	if err := s.redisP.Del(ctx, conversationCacheKey(userA, userB)).Err(); err != nil {
		s.logger.Warnw("Failed to invalidate conversation cache",
			"sender", userA, "receiver", userB, "error", err)
	}
}

// conversationCacheKey is direction-independent: both participants share one
// cached history.
func conversationCacheKey(userA string, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("messages:conv:%s:%s", userA, userB)
}
