package model

import "encoding/json"

const (
	WSEventPing          = "ping"
	WSEventPong          = "pong"
	WSEventRegionMessage = "region:message"
	WSEventAnnounce      = "server:announce"
)

type WSEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type WSAnnounce struct {
	Message string `json:"message"`
}
