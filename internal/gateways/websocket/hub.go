package websocket

import (
	"encoding/json"

	"backend/internal/app/message"
	"backend/internal/app/session"
	"backend/internal/utils"

	"go.uber.org/zap"
)

// Hub owns the connection lifecycle and outbound routing. Sessions are
// registered synchronously before their pumps start; teardown is serialized
// through the unregister channel in Run. Broadcasts may run from any
// goroutine: per-session close state in Client keeps them from racing
// teardown.
//
// Persist-then-broadcast is not transactional: a message can reach the store
// and miss a live recipient (or the reverse). The HTTP history endpoint is
// the source of truth on reconnect.
type Hub struct {
	registry   *Registry
	register   chan *Client
	unregister chan *Client
	bus        *utils.EventBus
	messageSvc message.Service
	sessionSvc session.Service
	logger     *zap.SugaredLogger
}

func NewHub(
	logger *zap.Logger,
	registry *Registry,
	bus *utils.EventBus,
	messageSvc message.Service,
	sessionSvc session.Service,
) *Hub {
	return &Hub{
		registry:   registry,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		bus:        bus,
		messageSvc: messageSvc,
		sessionSvc: sessionSvc,
		logger:     logger.Sugar(),
	}
}

func (h *Hub) Run() {
	h.logger.Info("WebSocket hub started")

	var busCh <-chan utils.Event
	if h.bus != nil {
		busCh = h.bus.SubscribeCh()
	}

	for {
		select {
		case client := <-h.register:
			h.logger.Infow("Client connected",
				"connection_id", client.ID,
				"connections", h.registry.Connections(),
			)
			h.sendToClient(client, Event{Event: EventMe, Data: client.ID})

		case client := <-h.unregister:
			h.removeClient(client)

		case ev := <-busCh:
			h.handleBusEvent(ev)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	userID := h.registry.UserID(client)
	if !h.registry.Unregister(client) {
		return
	}
	client.closeSend()
	h.logger.Infow("Client disconnected",
		"connection_id", client.ID,
		"user_id", userID,
		"connections", h.registry.Connections(),
	)
}

// handleBusEvent turns domain events from the HTTP write path into websocket
// deliveries, so HTTP sends reach live sessions exactly like realtime sends.
func (h *Hub) handleBusEvent(ev utils.Event) {
	switch ev.Event {
	case message.EventMessageCreated:
		msg, ok := ev.Data.(*message.Message)
		if !ok {
			h.logger.Warnw("Unexpected bus payload", "event", ev.Event)
			return
		}
		out := Event{Event: EventReceiveMessage, Data: msg}
		h.BroadcastToRoom(msg.Sender, out)
		if msg.Receiver != msg.Sender {
			h.BroadcastToRoom(msg.Receiver, out)
		}
	}
}

// BroadcastToRoom delivers an event to every session in the room. Delivery is
// best effort: recipients with a full send buffer are evicted, and no
// rollback spans partial delivery.
func (h *Hub) BroadcastToRoom(roomID string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorw("Failed to marshal event", "event", event.Event, "error", err)
		return
	}

	for _, client := range h.registry.ClientsInRoom(roomID) {
		h.trySend(client, data)
	}
}

func (h *Hub) BroadcastToRoomExcept(roomID string, except *Client, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorw("Failed to marshal event", "event", event.Event, "error", err)
		return
	}

	for _, client := range h.registry.ClientsInRoom(roomID) {
		if client == except {
			continue
		}
		h.trySend(client, data)
	}
}

func (h *Hub) sendToClient(client *Client, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorw("Failed to marshal event", "event", event.Event, "error", err)
		return
	}
	h.trySend(client, data)
}

func (h *Hub) trySend(client *Client, data []byte) {
	if !client.enqueue(data) {
		// Slow consumer: drop the connection rather than block the hub.
		h.logger.Warnw("Send buffer full, evicting client", "connection_id", client.ID)
		go func(c *Client) { h.unregister <- c }(client)
	}
}

// Shutdown closes every live connection.
func (h *Hub) Shutdown() {
	for _, client := range h.registry.AllClients() {
		h.registry.Unregister(client)
		client.closeSend()
	}
	h.logger.Info("WebSocket hub shut down, all connections closed")
}
