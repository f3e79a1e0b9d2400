package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"backend/internal/app/message"
)

// dispatch routes one inbound frame. Events are accepted in any connection
// state; routing addressed by user id only takes effect once the session has
// announced an identity via "join".
func (h *Hub) dispatch(c *Client, raw []byte) {
	var ev inboundEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		h.logger.Warnw("Dropped malformed frame", "connection_id", c.ID, "error", err)
		return
	}

	switch ev.Event {
	case EventJoin:
		h.handleJoin(c, ev.Data)
	case EventJoinRoom:
		h.handleJoinRoom(c, ev.Data)
	case EventTyping:
		h.handleTypingIndicator(c, ev.Data, EventTyping)
	case EventStopTyping:
		h.handleTypingIndicator(c, ev.Data, EventStopTyping)
	case EventNewMessage:
		h.handleNewMessage(c, ev.Data)
	case EventSendMessage:
		h.handleSendMessage(c, ev.Data)
	case EventCallUser:
		h.handleCallUser(c, ev.Data)
	case EventAnswerCall:
		h.handleAnswerCall(c, ev.Data)
	default:
		h.logger.Debugw("Unknown event", "event", ev.Event, "connection_id", c.ID)
	}
}

func (h *Hub) handleJoin(c *Client, data json.RawMessage) {
	var userID string
	if err := json.Unmarshal(data, &userID); err != nil || userID == "" {
		h.logger.Warnw("join: invalid payload", "connection_id", c.ID)
		return
	}

	h.registry.Bind(c, userID)
	h.logger.Infow("Session identified", "connection_id", c.ID, "user_id", userID)
}

func (h *Hub) handleJoinRoom(c *Client, data json.RawMessage) {
	var roomID string
	if err := json.Unmarshal(data, &roomID); err != nil || roomID == "" {
		h.logger.Warnw("join room: invalid payload", "connection_id", c.ID)
		return
	}

	h.registry.JoinRoom(c, roomID)
}

// handleTypingIndicator relays typing state to every other session in the
// room; the sender never sees its own indicator.
func (h *Hub) handleTypingIndicator(c *Client, data json.RawMessage, event string) {
	var roomID string
	if err := json.Unmarshal(data, &roomID); err != nil || roomID == "" {
		return
	}

	h.BroadcastToRoomExcept(roomID, c, Event{Event: event, Data: roomID})
}

// handleNewMessage relays an already-persisted message notification to every
// chat participant except the sender. The frame is forwarded as received.
func (h *Hub) handleNewMessage(c *Client, data json.RawMessage) {
	var payload chatRelayPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.logger.Warnw("newMessage: invalid payload", "connection_id", c.ID, "error", err)
		return
	}
	if len(payload.Chat.Users) == 0 {
		h.logger.Warnw("newMessage: no users found in the chat", "connection_id", c.ID)
		return
	}

	out := Event{Event: EventMessageReceived, Data: data}
	for _, u := range payload.Chat.Users {
		if u.ID == "" || u.ID == payload.Sender.ID {
			continue
		}
		h.BroadcastToRoom(u.ID, out)
	}
}

// handleSendMessage persists the message and acknowledges failure back to the
// origin session. Successful sends are delivered to both participants' rooms
// through the message_created bus event, the same pipeline the HTTP path uses.
func (h *Hub) handleSendMessage(c *Client, data json.RawMessage) {
	var payload sendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.logger.Warnw("sendMessage: invalid payload", "connection_id", c.ID, "error", err)
		h.sendToClient(c, Event{Event: EventMessageFailed, Data: messageFailedData{
			Error: "invalid message payload",
		}})
		return
	}

	_, err := h.messageSvc.SendMessage(context.Background(), message.SendMessageInput{
		Sender:   payload.Sender,
		Receiver: payload.Receiver,
		Body:     payload.Body,
		FileID:   payload.FileID,
	})
	if err != nil {
		h.logger.Errorw("sendMessage: persist failed",
			"connection_id", c.ID,
			"sender", payload.Sender,
			"receiver", payload.Receiver,
			"error", err,
		)

		reason := "failed to save message"
		if errors.Is(err, message.ErrEmptyMessage) {
			reason = err.Error()
		}
		h.sendToClient(c, Event{Event: EventMessageFailed, Data: messageFailedData{
			Ref:   payload.Ref,
			Error: reason,
		}})
	}
}

// handleCallUser relays a call offer to the target user's live sessions. No
// call state is retained between offer and answer; if the target is offline
// the caller is told so and nothing is queued.
func (h *Hub) handleCallUser(c *Client, data json.RawMessage) {
	var payload callUserPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.UserToCall == "" {
		h.logger.Warnw("callUser: invalid payload", "connection_id", c.ID)
		return
	}

	targets := h.registry.ClientsInRoom(payload.UserToCall)
	if len(targets) == 0 {
		h.sendToClient(c, Event{Event: EventCallUnavailable, Data: callUnavailableData{
			To: payload.UserToCall,
		}})
		return
	}

	out, err := json.Marshal(Event{Event: EventCallUser, Data: callOfferData{
		Signal: payload.SignalData,
		From:   payload.From,
		Name:   payload.Name,
	}})
	if err != nil {
		h.logger.Errorw("callUser: failed to marshal offer", "error", err)
		return
	}
	for _, target := range targets {
		h.trySend(target, out)
	}
}

func (h *Hub) handleAnswerCall(c *Client, data json.RawMessage) {
	var payload answerCallPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.To == "" {
		h.logger.Warnw("answerCall: invalid payload", "connection_id", c.ID)
		return
	}

	h.BroadcastToRoom(payload.To, Event{Event: EventCallAccepted, Data: payload.Signal})
}
