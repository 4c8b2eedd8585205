package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is one long-lived WebSocket connection. A session belongs to
// exactly the project groups it has explicitly joined; membership is never
// inferred from REST activity.
type Session struct {
	id     uuid.UUID
	hub    *Hub
	conn   *websocket.Conn
	logger *zap.Logger

	send chan []byte

	// joined is the set of groups this session belongs to. Guarded by the
	// hub's registry lock, never touched outside it.
	joined map[uuid.UUID]struct{}
}

// ID returns the session's connection identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Serve owns a freshly accepted WebSocket connection until it closes. It
// runs the writer goroutine, then reads join/leave control messages until
// the peer disconnects or ctx is cancelled. On any exit path the session is
// removed from every group it had joined.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn) {
	id := uuid.New()
	s := &Session{
		id:     id,
		hub:    h,
		conn:   conn,
		logger: h.logger.With(zap.String("session_id", id.String())),
		send:   make(chan []byte, h.sendBuffer),
		joined: make(map[uuid.UUID]struct{}),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writeLoop(ctx)
	}()

	s.readLoop(ctx)

	// The read side is done: tear down group membership first so no new
	// events target this session, then stop the writer and the socket.
	h.removeSession(s)
	cancel()
	wg.Wait()
	conn.Close(websocket.StatusNormalClosure, "")
}

// readLoop consumes control messages until the connection dies.
func (s *Session) readLoop(ctx context.Context) {
	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) && websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				s.logger.Debug("WebSocket read ended", zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("Failed to parse client message", zap.Error(err))
			continue
		}

		switch msg.Type {
		case TypeJoinProject:
			if msg.ProjectID == uuid.Nil {
				s.logger.Warn("Join without project id")
				continue
			}
			s.hub.Join(s, msg.ProjectID)
		case TypeLeaveProject:
			s.hub.Leave(s, msg.ProjectID)
		default:
			s.logger.Warn("Unexpected client message type", zap.String("type", msg.Type))
		}
	}
}

// writeLoop is the single writer for the connection, preserving FIFO order
// of enqueued events for this peer.
func (s *Session) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-s.send:
			writeCtx, cancel := context.WithTimeout(ctx, s.hub.writeTimeout)
			err := s.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				// The peer is gone or stalled past the write deadline.
				// Undeliverable events are dropped, not retried.
				s.logger.Debug("WebSocket write failed, dropping connection", zap.Error(err))
				s.conn.Close(websocket.StatusAbnormalClosure, "write failed")
				return
			}
		}
	}
}
