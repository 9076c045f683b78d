package transport

import (
	"encoding/json"
	"errors"
)

// Relay control frames travel as websocket text messages; game frames are
// always binary.
const (
	ControlCode    = "code"    // lobby created, Code is set
	ControlPaired  = "paired"  // both players connected
	ControlLeft    = "left"    // the other player disconnected
	ControlExpired = "expired" // nobody joined in time
	ControlError   = "error"   // Error is set
)

// ErrNoLobby is returned when joining a code the relay does not know.
var ErrNoLobby = errors.New("transport: no such lobby")

// Control is a relay control frame.
type Control struct {
	Relay string `json:"relay"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// Marshal encodes the control frame.
func (c Control) Marshal() []byte {
	data, _ := json.Marshal(c) //nolint:errchkjson // plain string fields
	return data
}

// ParseControl decodes a control frame.
func ParseControl(data []byte) (Control, error) {
	var c Control
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	if c.Relay == "" {
		return c, errors.New("transport: control frame without relay field")
	}
	return c, nil
}
