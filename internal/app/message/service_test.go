package message_test

import (
	"context"
	"testing"

	"backend/internal/app/message"
	"backend/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (message.Service, *utils.EventBus) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&message.Message{}, &message.Reaction{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	bus := utils.NewEventBus()
	repo := message.NewRepository(db)
	svc := message.NewService(repo, nil, nil, bus, zap.NewNop())

	return svc, bus
}

func TestSendMessageAndListBetween(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u1 := uuid.New().String()
	u2 := uuid.New().String()

	msg, err := svc.SendMessage(ctx, message.SendMessageInput{
		Sender:   u1,
		Receiver: u2,
		Body:     "hi",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if msg.ID == "" {
		t.Fatalf("expected message id, got empty")
	}
	if msg.Edited {
		t.Fatalf("new message must not be marked edited")
	}

	for _, pair := range [][2]string{{u1, u2}, {u2, u1}} {
		messages, err := svc.GetConversation(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("GetConversation(%s, %s) failed: %v", pair[0], pair[1], err)
		}
		if len(messages) != 1 {
			t.Fatalf("expected 1 message, got %d", len(messages))
		}
		got := messages[0]
		if got.Body != "hi" || got.Sender != u1 || got.Receiver != u2 || got.Edited {
			t.Fatalf("unexpected message: %+v", got)
		}
	}
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SendMessage(context.Background(), message.SendMessageInput{
		Sender:   uuid.New().String(),
		Receiver: uuid.New().String(),
		Body:     "   ",
	})
	if err == nil {
		t.Fatalf("expected validation error for empty message")
	}
	if err != message.ErrEmptyMessage {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestSendMessagePublishesEvent(t *testing.T) {
	svc, bus := newTestService(t)

	msg, err := svc.SendMessage(context.Background(), message.SendMessageInput{
		Sender:   uuid.New().String(),
		Receiver: uuid.New().String(),
		Body:     "ping",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	select {
	case ev := <-bus.SubscribeCh():
		if ev.Event != message.EventMessageCreated {
			t.Fatalf("expected %s event, got %s", message.EventMessageCreated, ev.Event)
		}
		published, ok := ev.Data.(*message.Message)
		if !ok {
			t.Fatalf("expected *Message payload, got %T", ev.Data)
		}
		if published.ID != msg.ID {
			t.Fatalf("published message id %s does not match %s", published.ID, msg.ID)
		}
	default:
		t.Fatalf("expected message_created event on the bus")
	}
}

func TestEditMessageIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	msg, err := svc.SendMessage(ctx, message.SendMessageInput{
		Sender:   uuid.New().String(),
		Receiver: uuid.New().String(),
		Body:     "original",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		edited, err := svc.EditMessage(ctx, msg.ID, "updated")
		if err != nil {
			t.Fatalf("EditMessage attempt %d failed: %v", i+1, err)
		}
		if edited.Body != "updated" || !edited.Edited {
			t.Fatalf("attempt %d: unexpected state: body=%q edited=%v", i+1, edited.Body, edited.Edited)
		}
	}
}

func TestEditMessageNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.EditMessage(context.Background(), uuid.New().String(), "whatever")
	if err != message.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMessageHidesRecord(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u1 := uuid.New().String()
	u2 := uuid.New().String()

	msg, err := svc.SendMessage(ctx, message.SendMessageInput{Sender: u1, Receiver: u2, Body: "bye"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if err := svc.DeleteMessage(ctx, msg.ID); err != nil {
		t.Fatalf("DeleteMessage failed: %v", err)
	}

	if _, err := svc.EditMessage(ctx, msg.ID, "nope"); err != message.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.DeleteMessage(ctx, msg.ID); err != message.ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	messages, err := svc.GetConversation(ctx, u1, u2)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected deleted message to be excluded, got %d messages", len(messages))
	}
}

func TestAddReactionAppends(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reactor := uuid.New().String()
	msg, err := svc.SendMessage(ctx, message.SendMessageInput{
		Sender:   uuid.New().String(),
		Receiver: uuid.New().String(),
		Body:     "react to me",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if _, err := svc.AddReaction(ctx, msg.ID, reactor, "👍"); err != nil {
		t.Fatalf("first AddReaction failed: %v", err)
	}
	// Same user reacting again is allowed; reactions are append-only.
	got, err := svc.AddReaction(ctx, msg.ID, reactor, "🎉")
	if err != nil {
		t.Fatalf("second AddReaction failed: %v", err)
	}

	if len(got.Reactions) != 2 {
		t.Fatalf("expected 2 reactions, got %d", len(got.Reactions))
	}
	if got.Reactions[0].Emoji != "👍" || got.Reactions[1].Emoji != "🎉" {
		t.Fatalf("reactions out of order: %+v", got.Reactions)
	}
}

func TestMarkRead(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u1 := uuid.New().String()
	u2 := uuid.New().String()

	msg, err := svc.SendMessage(ctx, message.SendMessageInput{Sender: u1, Receiver: u2, Body: "read me"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if err := svc.MarkRead(ctx, msg.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	messages, err := svc.GetConversation(ctx, u1, u2)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if len(messages) != 1 || !messages[0].IsRead {
		t.Fatalf("expected message to be marked read: %+v", messages)
	}
}

func TestListBetweenOrdersByTimestamp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u1 := uuid.New().String()
	u2 := uuid.New().String()

	for _, body := range []string{"first", "second", "third"} {
		if _, err := svc.SendMessage(ctx, message.SendMessageInput{Sender: u1, Receiver: u2, Body: body}); err != nil {
			t.Fatalf("SendMessage(%q) failed: %v", body, err)
		}
	}
	// Replies from the other side belong to the same conversation.
	if _, err := svc.SendMessage(ctx, message.SendMessageInput{Sender: u2, Receiver: u1, Body: "reply"}); err != nil {
		t.Fatalf("SendMessage(reply) failed: %v", err)
	}

	messages, err := svc.GetConversation(ctx, u1, u2)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].CreatedAt.Before(messages[i-1].CreatedAt) {
			t.Fatalf("messages not ordered by timestamp ascending")
		}
	}
}
