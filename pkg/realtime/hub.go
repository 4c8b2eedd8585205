package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub is the connection/group registry. It owns all shared mutable realtime
// state: which session belongs to which project groups. Join, Leave and
// Broadcast may be called concurrently from any goroutine.
type Hub struct {
	logger       *zap.Logger
	sendBuffer   int
	writeTimeout time.Duration

	mu     sync.RWMutex
	groups map[uuid.UUID]map[*Session]struct{}
}

// NewHub creates a hub. sendBuffer is the per-session outbound queue length;
// writeTimeout bounds a single frame write to one peer.
func NewHub(sendBuffer int, writeTimeout time.Duration, logger *zap.Logger) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &Hub{
		logger:       logger.Named("realtime"),
		sendBuffer:   sendBuffer,
		writeTimeout: writeTimeout,
		groups:       make(map[uuid.UUID]map[*Session]struct{}),
	}
}

// Join adds the session to the group named by projectID. There is no
// capacity limit and no authorization check; any connection may watch any
// project.
func (h *Hub) Join(s *Session, projectID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.groups[projectID]
	if !ok {
		group = make(map[*Session]struct{})
		h.groups[projectID] = group
	}
	group[s] = struct{}{}
	s.joined[projectID] = struct{}{}

	h.logger.Debug("Session joined project group",
		zap.String("session_id", s.id.String()),
		zap.String("project_id", projectID.String()),
		zap.Int("group_size", len(group)),
	)
}

// Leave removes the session from the group; no-op if it is not a member.
func (h *Hub) Leave(s *Session, projectID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(s, projectID)
}

func (h *Hub) leaveLocked(s *Session, projectID uuid.UUID) {
	group, ok := h.groups[projectID]
	if !ok {
		return
	}
	delete(group, s)
	delete(s.joined, projectID)
	if len(group) == 0 {
		delete(h.groups, projectID)
	}
}

// removeSession takes the session out of every group it had joined. Called
// exactly once when a connection closes, for any reason.
func (h *Hub) removeSession(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for projectID := range s.joined {
		h.leaveLocked(s, projectID)
	}
}

// GroupSize returns the current number of subscribers for a project.
func (h *Hub) GroupSize(projectID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[projectID])
}

// Broadcast delivers the event to every connection currently in the event's
// project group, including the mutating client's own connection if it is
// subscribed. An empty group is a silent no-op.
//
// Delivery to each member is a non-blocking enqueue onto that session's
// outbound queue; a full queue means the member is too slow and the event is
// dropped for that member only.
func (h *Hub) Broadcast(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	h.mu.RLock()
	group := h.groups[event.ProjectID]
	members := make([]*Session, 0, len(group))
	for s := range group {
		members = append(members, s)
	}
	h.mu.RUnlock()

	for _, s := range members {
		select {
		case s.send <- data:
		default:
			h.logger.Warn("Dropping event for slow subscriber",
				zap.String("session_id", s.id.String()),
				zap.String("project_id", event.ProjectID.String()),
				zap.String("event_type", event.Type),
			)
		}
	}

	return nil
}

// Ensure Hub implements Broadcaster at compile time.
var _ Broadcaster = (*Hub)(nil)
