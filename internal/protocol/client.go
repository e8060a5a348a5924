package protocol

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/maskentry/internal/logging"
)

// DefaultTimeout bounds a single request/response round trip.
const DefaultTimeout = 10 * time.Second

// Client drives a remote editing session over a WebSocket. It is not safe
// for concurrent use.
type Client struct {
	conn    *websocket.Conn
	url     string
	Timeout time.Duration
}

// Dial opens a session at url (ws:// or wss://).
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	logging.Debug("Session opened", zap.String("url", url))
	return &Client{conn: conn, url: url, Timeout: DefaultTimeout}, nil
}

// Do sends req and waits for the response. A response carrying an error
// message is returned together with that error.
func (c *Client) Do(req Request) (*Response, error) {
	deadline := time.Now().Add(c.Timeout)
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return nil, err
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", req.Op, err)
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	var resp Response
	if err := c.conn.ReadJSON(&resp); err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", req.Op, err)
	}
	if resp.Error != "" {
		return &resp, fmt.Errorf("%s: %s", req.Op, resp.Error)
	}
	return &resp, nil
}

// SetMask installs pattern on the session.
func (c *Client) SetMask(pattern string) (*Response, error) {
	return c.Do(Request{Op: OpMask, Pattern: pattern})
}

// Insert types text at pos.
func (c *Client) Insert(pos int, text string) (*Response, error) {
	return c.Do(Request{Op: OpInsert, Pos: pos, Text: text})
}

// Delete removes [start, end).
func (c *Client) Delete(start, end int) (*Response, error) {
	return c.Do(Request{Op: OpDelete, Start: start, End: end})
}

// State fetches the session state.
func (c *Client) State() (*Response, error) {
	return c.Do(Request{Op: OpState})
}

// Close ends the session with a normal closure.
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}
