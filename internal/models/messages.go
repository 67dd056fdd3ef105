package models

import (
	"encoding/json"
	"fmt"
)

// Client-to-server and server-to-client message types carried over the
// websocket connection.
const (
	MessageTypeSpinRequest = "SPIN_REQUEST"
	MessageTypeSpinResult  = "SPIN_RESULT"
	MessageTypeError       = "ERROR"
	MessageTypePing        = "PING"
	MessageTypePong        = "PONG"
)

// ClientMessage is the inbound message union. Unknown types are ignored by
// the gateway without closing the connection.
type ClientMessage struct {
	Type string `json:"type"`
	Bet  int64  `json:"bet,omitempty"`
}

// ParseClientMessage decodes one inbound frame. A frame that is not valid
// JSON is reported as ErrMalformedMessage.
func ParseClientMessage(raw []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return &msg, nil
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Message string      `json:"message,omitempty"`
}

// SpinResultPayload is the settled-round result pushed back to the client:
// the visible symbol window (3 rows by 5 reels), the total win and the
// post-round wallet balance, both in integer cents.
type SpinResultPayload struct {
	Matrix   [][]string `json:"matrix"`
	TotalWin int64      `json:"total_win"`
	Balance  int64      `json:"balance"`
}

func NewSpinResultMessage(payload *SpinResultPayload) *Message {
	return &Message{
		Type:    MessageTypeSpinResult,
		Payload: payload,
	}
}

func NewErrorMessage(reason string) *Message {
	return &Message{
		Type:    MessageTypeError,
		Message: reason,
	}
}
