package sensor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// DecodeFrame parses a websocket message. Text messages carry JSON, binary
// messages carry msgpack.
func DecodeFrame(messageType int, data []byte) (Frame, error) {
	if len(data) == 0 {
		return Frame{}, errors.New("sensor: empty frame")
	}

	var f Frame
	switch messageType {
	case websocket.TextMessage:
		if err := json.Unmarshal(data, &f); err != nil {
			return Frame{}, fmt.Errorf("sensor: decode json frame: %w", err)
		}
	case websocket.BinaryMessage:
		if err := msgpack.Unmarshal(data, &f); err != nil {
			return Frame{}, fmt.Errorf("sensor: decode msgpack frame: %w", err)
		}
	default:
		return Frame{}, fmt.Errorf("sensor: unsupported message type %d", messageType)
	}
	return f, nil
}

// EncodeFrame renders a frame as a binary websocket payload.
func EncodeFrame(f Frame) ([]byte, error) {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("sensor: encode frame: %w", err)
	}
	return data, nil
}
