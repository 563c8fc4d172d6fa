package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/wildpoker/internal/game"
	"github.com/mitchellh/mapstructure"
)

// MessageType names a websocket message.
type MessageType string

// Client → server commands.
const (
	MessageTypeState        MessageType = "state"
	MessageTypeStart        MessageType = "start"
	MessageTypeToggle       MessageType = "toggle"
	MessageTypeConfirm      MessageType = "confirm"
	MessageTypeNextSubround MessageType = "next_subround"
	MessageTypeNextRound    MessageType = "next_round"
	MessageTypeReset        MessageType = "reset"
	MessageTypeRefreshShop  MessageType = "refresh_shop"
	MessageTypeBuy          MessageType = "buy"
	MessageTypeSell         MessageType = "sell"
)

// Server → client messages. State replies reuse MessageTypeState.
const (
	MessageTypeEvent MessageType = "event"
	MessageTypeError MessageType = "error"
)

// Message is the envelope for both directions.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// Command is an incoming message. Its data is decoded loosely so clients
// may send numbers or strings for the same field.
type Command struct {
	Type      MessageType    `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
}

// CommandArgs are the arguments any command may carry.
type CommandArgs struct {
	CardID string `json:"cardId"`
	ItemID string `json:"itemId"`
}

// Args decodes the command data.
func (c Command) Args() (CommandArgs, error) {
	var args CommandArgs
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &args,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return args, err
	}
	if err := dec.Decode(c.Data); err != nil {
		return args, fmt.Errorf("decode %s arguments: %w", c.Type, err)
	}
	return args, nil
}

// EventData wraps an engine event with its type and a readable line.
type EventData struct {
	EventType game.EventType `json:"eventType"`
	Text      string         `json:"text"`
	Event     game.GameEvent `json:"event"`
}

// ErrorData is the body of an error reply, and of HTTP error responses.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var plainFormatter = game.NewEventFormatter(game.FormattingOptions{ShowCards: true})

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// NewEventMessage wraps an engine event for the wire.
func NewEventMessage(event game.GameEvent) (*Message, error) {
	msg, err := NewMessage(MessageTypeEvent, EventData{
		EventType: event.EventType(),
		Text:      plainFormatter.Format(event),
		Event:     event,
	})
	if err != nil {
		return nil, err
	}
	msg.Timestamp = event.Timestamp()
	return msg, nil
}
