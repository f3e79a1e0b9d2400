package websocket

import "encoding/json"

// Wire event names. Case and spacing are part of the protocol and match what
// deployed clients already emit.
const (
	EventMe              = "me"
	EventJoin            = "join"
	EventJoinRoom        = "join room"
	EventTyping          = "typing"
	EventStopTyping      = "stop typing"
	EventNewMessage      = "newMessage"
	EventMessageReceived = "messageReceived"
	EventSendMessage     = "sendMessage"
	EventReceiveMessage  = "receiveMessage"
	EventMessageFailed   = "messageFailed"
	EventCallUser        = "callUser"
	EventCallAccepted    = "callAccepted"
	EventCallUnavailable = "callUnavailable"
	EventAnswerCall      = "answerCall"
)

// Event is the outbound frame envelope.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type inboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type sendMessagePayload struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Body     string `json:"message"`
	FileID   string `json:"files"`
	Ref      string `json:"ref"`
}

// chatRelayPayload carries only the fields routing needs; the frame is
// forwarded to recipients verbatim.
type chatRelayPayload struct {
	Chat struct {
		Users []struct {
			ID string `json:"_id"`
		} `json:"users"`
	} `json:"chat"`
	Sender struct {
		ID string `json:"_id"`
	} `json:"sender"`
}

type callUserPayload struct {
	UserToCall string          `json:"userToCall"`
	SignalData json.RawMessage `json:"signalData"`
	From       string          `json:"from"`
	Name       string          `json:"name"`
}

type answerCallPayload struct {
	To     string          `json:"to"`
	Signal json.RawMessage `json:"signal"`
}

type callOfferData struct {
	Signal json.RawMessage `json:"signal"`
	From   string          `json:"from"`
	Name   string          `json:"name"`
}

type callUnavailableData struct {
	To string `json:"to"`
}

type messageFailedData struct {
	Ref   string `json:"ref,omitempty"`
	Error string `json:"error"`
}
