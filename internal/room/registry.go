package room

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
	"github.com/rocketscienceinc/scrabble-backend/internal/game"
)

// Registry keeps track of all live rooms.
type Registry struct {
	logger  *slog.Logger
	checker game.WordChecker
	stats   StatsRecorder
	conf    Config

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRegistry(logger *slog.Logger, checker game.WordChecker, stats StatsRecorder, conf Config) *Registry {
	return &Registry{
		logger:  logger.With("component", "room-registry"),
		checker: checker,
		stats:   stats,
		conf:    conf,
		rooms:   make(map[string]*Room),
	}
}

// Create registers a new room. An empty id gets a generated one.
func (that *Registry) Create(id, visibility string) (*Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}

	if _, ok := that.rooms[id]; ok {
		return nil, apperror.ErrRoomExists
	}

	newRoom := New(that.logger, id, visibility, that.checker, that.stats, that.conf, func(roomID string) {
		that.DeleteAfter(roomID, time.Minute)
	})
	that.rooms[id] = newRoom

	that.logger.Info("room created", "roomID", id, "visibility", visibility)

	return newRoom, nil
}

// Find returns the room with the given id, if any.
func (that *Registry) Find(id string) (*Room, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	found, ok := that.rooms[id]

	return found, ok
}

// PublicJoinable lists public rooms still waiting for players.
func (that *Registry) PublicJoinable() []*Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	joinable := make([]*Room, 0)
	for _, candidate := range that.rooms {
		if candidate.Visibility() == VisibilityPublic && candidate.IsJoinable() {
			joinable = append(joinable, candidate)
		}
	}

	return joinable
}

// Delete removes the room from the registry. Connections already held
// by the room are not touched.
func (that *Registry) Delete(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[id]; !ok {
		return
	}

	delete(that.rooms, id)
	that.logger.Info("room removed", "roomID", id)
}

// DeleteAfter removes the room once the delay passes, so late observers
// can still learn why the room closed.
func (that *Registry) DeleteAfter(id string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		that.Delete(id)
	})
}
