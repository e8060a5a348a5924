package server

import (
	"context"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/muurk/maskentry/internal/logging"
	"github.com/muurk/maskentry/internal/mask"
	"github.com/muurk/maskentry/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// remoteWidget is the buffer of one session. It is only touched by the
// session's read loop.
type remoteWidget struct {
	text    []rune
	cursor  int
	anchor  int
	rejects []string
}

func (w *remoteWidget) Text() string { return string(w.text) }

func (w *remoteWidget) SetText(text string) {
	w.text = []rune(text)
	w.SetCursor(w.cursor)
}

func (w *remoteWidget) Cursor() int { return w.cursor }

func (w *remoteWidget) SetCursor(pos int) {
	w.cursor = clamp(pos, 0, len(w.text))
	w.anchor = w.cursor
}

func (w *remoteWidget) Select(start, end int) {
	w.anchor = clamp(start, 0, len(w.text))
	w.cursor = clamp(end, 0, len(w.text))
}

func (w *remoteWidget) Reject(err error) {
	w.rejects = append(w.rejects, err.Error())
}

// insertAt and removeRange edit the buffer directly in pass-through mode.
func (w *remoteWidget) insertAt(pos int, text string) {
	pos = clamp(pos, 0, len(w.text))
	ins := []rune(text)
	out := make([]rune, 0, len(w.text)+len(ins))
	out = append(out, w.text[:pos]...)
	out = append(out, ins...)
	out = append(out, w.text[pos:]...)
	w.text = out
	w.SetCursor(pos + len(ins))
}

func (w *remoteWidget) removeRange(start, end int) {
	if start > end {
		start, end = end, start
	}
	start = clamp(start, 0, len(w.text))
	end = clamp(end, start, len(w.text))
	w.text = append(w.text[:start:start], w.text[end:]...)
	w.SetCursor(start)
}

func (w *remoteWidget) drainRejects() []string {
	r := w.rejects
	w.rejects = nil
	return r
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// session is one WebSocket connection editing one masked buffer.
type session struct {
	remoteAddr string
	conn       *websocket.Conn
	w          *remoteWidget
	ed         *mask.Editor
}

func newSession(conn *websocket.Conn, remoteAddr string) *session {
	w := &remoteWidget{}
	logger := logging.GetLogger().With(zap.String("remote_addr", remoteAddr))
	return &session{
		remoteAddr: remoteAddr,
		conn:       conn,
		w:          w,
		ed:         mask.New(w, mask.WithLogger(logger)),
	}
}

// run reads requests until the peer goes away or ctx ends, answering each
// with the session state.
func (s *session) run(ctx context.Context) error {
	logging.LogConnection(s.remoteAddr, "session_opened")
	defer logging.LogConnection(s.remoteAddr, "session_closed")

	s.conn.SetReadLimit(maxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return err
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.ping(ctx, done)

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if errors.Is(err, websocket.ErrCloseSent) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}

		var resp protocol.Response
		req, err := protocol.ParseRequest(data)
		if err != nil {
			logging.LogSessionMessage(s.remoteAddr, "received", "invalid", data)
			resp = s.state()
			resp.Error = err.Error()
		} else {
			logging.LogSessionMessage(s.remoteAddr, "received", string(req.Op), data)
			resp = s.apply(req)
		}

		if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		if err := s.conn.WriteJSON(resp); err != nil {
			return err
		}
		logging.LogSessionMessage(s.remoteAddr, "sent", "state", []byte(resp.Text))
	}
}

// ping keeps the connection alive until done is closed.
func (s *session) ping(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logging.Debug("Ping failed", zap.String("remote_addr", s.remoteAddr), zap.Error(err))
				return
			}
		}
	}
}

// apply performs req on the session buffer.
func (s *session) apply(req *protocol.Request) protocol.Response {
	var (
		err  error
		left bool
	)

	switch req.Op {
	case protocol.OpMask:
		err = s.ed.SetMask(req.Pattern)

	case protocol.OpInsert:
		text := norm.NFC.String(req.Text)
		if !s.ed.HandleInsert(req.Pos, text) {
			s.w.insertAt(req.Pos, text)
		}

	case protocol.OpDelete:
		// The cursor tells backspace from delete: keep it when it sits on
		// either end of the range, otherwise treat the request as a
		// backspace.
		if c := s.w.Cursor(); c != req.Start && c != req.End {
			s.w.SetCursor(req.End)
		}
		if !s.ed.HandleDelete(req.Start, req.End) {
			s.w.removeRange(req.Start, req.End)
		}

	case protocol.OpFocus:
		dir := mask.Forward
		if req.Direction == protocol.DirectionBackward {
			dir = mask.Backward
		}
		left = !s.ed.Focus(dir)

	case protocol.OpGrab:
		s.ed.GrabFocus()

	case protocol.OpBlur:
		s.ed.FocusOut()

	case protocol.OpCursor:
		s.ed.MoveCursor(req.Extend)
		if req.Extend {
			s.w.Select(s.w.anchor, req.Pos)
		} else {
			s.w.SetCursor(req.Pos)
		}
		s.ed.CursorMoved()

	case protocol.OpText:
		s.ed.SetText(norm.NFC.String(req.Text))

	case protocol.OpState:
	}

	resp := s.state()
	resp.Left = left
	resp.Rejects = s.w.drainRejects()
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// state snapshots the session buffer.
func (s *session) state() protocol.Response {
	field, ok := s.ed.Field()
	if !ok {
		field = -1
	}
	fields, _ := s.ed.Fields()
	return protocol.Response{
		Text:   s.w.Text(),
		Cursor: s.w.Cursor(),
		Field:  field,
		Fields: fields,
		Empty:  s.ed.IsEmpty(),
		Mask:   s.ed.Mask(),
	}
}

// close sends a close frame and closes the connection.
func (s *session) close(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = s.conn.Close()
}
