package protocol

import (
	"encoding/json"
	"fmt"
)

// Op names an editing operation a client sends to a session.
type Op string

const (
	OpMask   Op = "mask"   // install a mask pattern, "" for pass-through
	OpInsert Op = "insert" // insert Text at Pos
	OpDelete Op = "delete" // delete [Start, End)
	OpFocus  Op = "focus"  // move one field in Direction
	OpGrab   Op = "grab"   // the input gained focus
	OpBlur   Op = "blur"   // the input lost focus
	OpCursor Op = "cursor" // the cursor moved to Pos
	OpText   Op = "text"   // replace the value with Text
	OpState  Op = "state"  // report the current state
)

// Focus directions
const (
	DirectionForward  = "forward"
	DirectionBackward = "backward"
)

// MaxTextLength bounds the text carried by insert and text requests, in runes.
const MaxTextLength = 4096

// Request is one client message.
type Request struct {
	Op        Op     `json:"op"`
	Pattern   string `json:"pattern,omitempty"`
	Pos       int    `json:"pos,omitempty"`
	Text      string `json:"text,omitempty"`
	Start     int    `json:"start,omitempty"`
	End       int    `json:"end,omitempty"`
	Direction string `json:"direction,omitempty"`
	Extend    bool   `json:"extend,omitempty"`
}

// Response is sent after every request. Field is -1 when focus is outside
// every field; Fields is omitted without a mask.
type Response struct {
	Text    string   `json:"text"`
	Cursor  int      `json:"cursor"`
	Field   int      `json:"field"`
	Fields  []string `json:"fields,omitempty"`
	Empty   bool     `json:"empty"`
	Mask    string   `json:"mask"`
	Left    bool     `json:"left,omitempty"` // a focus request moved out of the masked region
	Rejects []string `json:"rejects,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// ParseRequest decodes and validates a client message.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("malformed request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validate checks that the request names a known operation with usable
// arguments.
func (r *Request) Validate() error {
	switch r.Op {
	case OpMask, OpGrab, OpBlur, OpState:
		return nil
	case OpInsert, OpText:
		if n := len([]rune(r.Text)); n > MaxTextLength {
			return fmt.Errorf("%s: text is %d runes, limit is %d", r.Op, n, MaxTextLength)
		}
		if r.Pos < 0 {
			return fmt.Errorf("%s: negative position %d", r.Op, r.Pos)
		}
		return nil
	case OpDelete:
		if r.Start < 0 || r.End < 0 {
			return fmt.Errorf("delete: negative range [%d, %d)", r.Start, r.End)
		}
		return nil
	case OpCursor:
		if r.Pos < 0 {
			return fmt.Errorf("cursor: negative position %d", r.Pos)
		}
		return nil
	case OpFocus:
		if r.Direction != DirectionForward && r.Direction != DirectionBackward {
			return fmt.Errorf("focus: direction must be %q or %q, got %q", DirectionForward, DirectionBackward, r.Direction)
		}
		return nil
	case "":
		return fmt.Errorf("request has no op")
	default:
		return fmt.Errorf("unknown op %q", r.Op)
	}
}
