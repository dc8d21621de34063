package room

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
	"github.com/rocketscienceinc/scrabble-backend/internal/entity"
	"github.com/rocketscienceinc/scrabble-backend/internal/game"
)

const (
	StateWaiting = "waiting"
	StatePlaying = "playing"
	StatePaused  = "paused"
	StateEnded   = "ended"
)

const (
	// Capacity is the maximum number of participants per room.
	Capacity = 4
	// MinPlayers is the minimum needed to start a game.
	MinPlayers = 2
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

var errOnlyHost = errors.New("only the host can start the game")

// Conn is one participant's transport connection. The websocket server
// hands these to the room; the room is the only component writing to
// them.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Envelope is the wire format in both directions.
type Envelope struct {
	Action  string          `json:"action"`
	Message json.RawMessage `json:"message,omitempty"`
}

// StatsRecorder persists the outcome of a finished game. Failures are
// logged by the implementation and never affect the game.
type StatsRecorder interface {
	RecordGameResult(ctx context.Context, result *game.Result, moves []entity.Move)
}

// Config carries the tunables of the pause countdown.
type Config struct {
	PauseBudget   time.Duration
	PauseInterval time.Duration
}

type playerPayload struct {
	Name  string `json:"name"`
	Host  bool   `json:"host"`
	Token string `json:"token,omitempty"`
}

type startPayload struct {
	ObjectiveType string `json:"objectiveType"`
	Points        int    `json:"points,omitempty"`
	Minutes       int    `json:"minutes,omitempty"`
}

type placePayload struct {
	Tiles []game.TilePlacement `json:"tiles"`
}

type tradePayload struct {
	Letters []string `json:"letters"`
}

type pausedPayload struct {
	Time int `json:"time"`
}

type closedPayload struct {
	Reason string `json:"reason"`
}

type shortErrorPayload struct {
	Message string `json:"message"`
}

// Room is one hosted game session from lobby through termination. Every
// inbound action runs to completion under the room mutex, so per-room
// turn handling is linearizable; distinct rooms are independent.
type Room struct {
	mu     sync.Mutex
	logger *slog.Logger

	id         string
	visibility string
	host       string
	state      string

	conns  map[Conn]string   // connection -> display name
	order  []string          // names in join order; becomes the turn order
	tokens map[string]string // reconnection token -> display name

	engine  *game.Engine
	checker game.WordChecker
	stats   StatsRecorder
	conf    Config

	// expected is the participant count entering playing state; a
	// mismatch while playing triggers the pause countdown.
	expected    int
	pauseCancel chan struct{}

	onClosed func(id string)

	handlers map[string]func(name string, message json.RawMessage) error
}

// New builds an empty room in waiting state.
func New(logger *slog.Logger, id, visibility string, checker game.WordChecker, stats StatsRecorder, conf Config, onClosed func(id string)) *Room {
	that := &Room{
		logger:     logger.With("component", "room", "roomID", id),
		id:         id,
		visibility: visibility,
		state:      StateWaiting,
		conns:      make(map[Conn]string),
		tokens:     make(map[string]string),
		checker:    checker,
		stats:      stats,
		conf:       conf,
		onClosed:   onClosed,
	}

	that.handlers = map[string]func(string, json.RawMessage) error{
		"game:start":        that.handleStart,
		"game:move:place":   that.handlePlace,
		"game:move:ghost":   that.handleGhost,
		"game:move:trade":   that.handleTrade,
		"game:move:skip":    that.handleSkip,
		"game:move:forfeit": that.handleForfeit,
	}

	return that
}

func (that *Room) ID() string {
	return that.id
}

func (that *Room) Visibility() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.visibility
}

func (that *Room) Host() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.host
}

func (that *Room) State() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

func (that *Room) IsPaused() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state == StatePaused
}

func (that *Room) PlayerCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.conns)
}

// IsJoinable reports whether the room accepts fresh joins.
func (that *Room) IsJoinable() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.visibility == VisibilityPublic && that.state == StateWaiting && len(that.conns) < Capacity
}

// Join attaches a connection to the room and returns the display name
// it plays under. While waiting, a fresh join needs a free slot and a
// non-colliding name (an empty name gets a generated one) and receives
// a private reconnection token. While playing or paused, only a valid
// token is accepted: the caller is reattached to their prior identity
// without any joined broadcast.
func (that *Room) Join(conn Conn, name, token string) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Join")

	switch that.state {
	case StateEnded:
		return "", apperror.ErrGameFinished
	case StatePlaying, StatePaused:
		return that.rejoinLocked(conn, token)
	}

	if len(that.conns) >= Capacity {
		return "", apperror.ErrRoomFull
	}

	if name == "" {
		name = generateGuestName()
		for that.hasNameLocked(name) {
			name = generateGuestName()
		}
	}

	if that.hasNameLocked(name) {
		return "", apperror.ErrNameTaken
	}

	if that.host == "" {
		that.host = name
	}

	that.conns[conn] = name
	that.order = append(that.order, name)

	freshToken := uuid.NewString()
	that.tokens[freshToken] = name

	that.sendLocked(conn, "player:self", playerPayload{
		Name:  name,
		Host:  that.host == name,
		Token: freshToken,
	})

	that.broadcastExceptLocked(conn, "player:joined", playerPayload{Name: name, Host: that.host == name})

	// replay the current roster to the newcomer
	for _, other := range that.order {
		if other == name {
			continue
		}
		that.sendLocked(conn, "player:joined", playerPayload{Name: other, Host: that.host == other})
	}

	log.Info("player joined room", "name", name)

	return name, nil
}

// rejoinLocked reattaches a dropped participant by reconnection token.
// Racks are keyed by name, so the same rack and score are restored.
func (that *Room) rejoinLocked(conn Conn, token string) (string, error) {
	name, ok := that.tokens[token]
	if !ok {
		return "", apperror.ErrInvalidToken
	}

	// drop a stale connection still mapped to this name
	for existing, existingName := range that.conns {
		if existingName == name {
			delete(that.conns, existing)
			_ = existing.Close()
		}
	}

	that.conns[conn] = name

	that.sendLocked(conn, "player:self", playerPayload{Name: name, Host: that.host == name, Token: token})
	for _, other := range that.order {
		if other == name {
			continue
		}
		that.sendLocked(conn, "player:joined", playerPayload{Name: other, Host: that.host == other})
	}

	if that.engine != nil {
		that.SendTo(name, "game:next", game.BenchPayload{
			BenchOwner: name,
			Bench:      that.engine.Racks()[name].Tiles(),
		})
		that.sendLocked(conn, "game:state", that.engine.State())
	}

	if that.state == StatePaused && len(that.conns) == that.expected {
		that.resumeLocked()
	}

	that.logger.Info("player reconnected", "name", name)

	return name, nil
}

// Leave detaches a connection. While waiting, a leaving host tears the
// lobby down; while playing, the participant-count mismatch triggers
// the pause countdown. The rack survives for reconnection.
func (that *Room) Leave(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	name, ok := that.conns[conn]
	if !ok {
		return
	}

	delete(that.conns, conn)

	log := that.logger.With("method", "Leave")
	log.Info("player left room", "name", name)

	switch that.state {
	case StateWaiting:
		that.removeFromOrderLocked(name)
		that.dropTokensLocked(name)
		that.broadcastLocked("player:left", playerPayload{Name: name, Host: that.host == name})

		if that.host == name {
			that.closeLocked("host left the lobby")
		}
	case StatePlaying:
		that.broadcastLocked("player:left", playerPayload{Name: name, Host: that.host == name})
		that.pauseLocked()
	}
}

func (that *Room) removeFromOrderLocked(name string) {
	for i, other := range that.order {
		if other == name {
			that.order = append(that.order[:i], that.order[i+1:]...)
			return
		}
	}
}

// dropTokensLocked invalidates every reconnection token issued to name.
// A token for a player who left the lobby must not resolve once the game
// starts without them.
func (that *Room) dropTokensLocked(name string) {
	for token, owner := range that.tokens {
		if owner == name {
			delete(that.tokens, token)
		}
	}
}

func (that *Room) hasNameLocked(name string) bool {
	for _, other := range that.order {
		if other == name {
			return true
		}
	}

	return false
}

// HandleAction authorizes and dispatches one inbound envelope. Failures
// go back to the offending connection only; other participants are
// never affected by a rejected action.
func (that *Room) HandleAction(conn Conn, envelope Envelope) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "HandleAction", "action", envelope.Action)

	name, ok := that.conns[conn]
	if !ok {
		log.Warn("action from unknown connection")
		return
	}

	handler, ok := that.handlers[envelope.Action]
	if !ok {
		log.Warn("unknown action", "name", name)
		that.sendErrorLocked(conn, errors.New("unknown action"))
		return
	}

	if err := handler(name, envelope.Message); err != nil {
		log.Info("action rejected", "name", name, "error", err)
		that.sendErrorLocked(conn, err)
	}
}

func (that *Room) handleStart(name string, message json.RawMessage) error {
	if that.state != StateWaiting {
		return apperror.ErrGameRunning
	}

	if name != that.host {
		return errOnlyHost
	}

	if len(that.order) < MinPlayers {
		return apperror.ErrNotEnoughPlayers
	}

	var payload startPayload
	if len(message) > 0 {
		if err := json.Unmarshal(message, &payload); err != nil {
			return err
		}
	}

	objective := game.NewObjective(game.ObjectiveType(payload.ObjectiveType), payload.Points, payload.Minutes)

	that.engine = game.NewEngine(that.logger, that.order, objective, that.checker, that, "")
	that.state = StatePlaying
	that.expected = len(that.conns)

	that.logger.Info("game started", "objective", objective.Type(), "players", len(that.order))

	that.broadcastLocked("game:started", startPayload{
		ObjectiveType: string(objective.Type()),
		Points:        payload.Points,
		Minutes:       payload.Minutes,
	})

	that.engine.Start()
	that.afterEngineActionLocked()

	return nil
}

func (that *Room) handlePlace(name string, message json.RawMessage) error {
	return that.handlePlacement(name, message, true)
}

func (that *Room) handleGhost(name string, message json.RawMessage) error {
	return that.handlePlacement(name, message, false)
}

func (that *Room) handlePlacement(name string, message json.RawMessage, commit bool) error {
	if err := that.ensurePlayingLocked(); err != nil {
		return err
	}

	var payload placePayload
	if err := json.Unmarshal(message, &payload); err != nil {
		return err
	}

	result, err := that.engine.Place(name, payload.Tiles, commit)
	if err != nil {
		return err
	}

	action := "game:move:ghost"
	if commit {
		action = "game:move:place"
	}
	that.SendTo(name, action, result)

	that.afterEngineActionLocked()

	return nil
}

func (that *Room) handleTrade(name string, message json.RawMessage) error {
	if err := that.ensurePlayingLocked(); err != nil {
		return err
	}

	var payload tradePayload
	if err := json.Unmarshal(message, &payload); err != nil {
		return err
	}

	letters := make([]rune, 0, len(payload.Letters))
	for _, letter := range payload.Letters {
		for _, r := range letter {
			letters = append(letters, unicode.ToUpper(r))
			break
		}
	}

	if err := that.engine.Trade(name, letters); err != nil {
		return err
	}

	that.afterEngineActionLocked()

	return nil
}

func (that *Room) handleSkip(name string, _ json.RawMessage) error {
	if err := that.ensurePlayingLocked(); err != nil {
		return err
	}

	if err := that.engine.Skip(name); err != nil {
		return err
	}

	that.afterEngineActionLocked()

	return nil
}

func (that *Room) handleForfeit(name string, _ json.RawMessage) error {
	if err := that.ensurePlayingLocked(); err != nil {
		return err
	}

	if err := that.engine.Forfeit(name); err != nil {
		return err
	}

	that.afterEngineActionLocked()

	return nil
}

func (that *Room) ensurePlayingLocked() error {
	switch that.state {
	case StateWaiting:
		return apperror.ErrGameIsNotStarted
	case StateEnded:
		return apperror.ErrGameFinished
	case StatePaused:
		return apperror.ErrGamePaused
	}

	return nil
}

// afterEngineActionLocked transitions the room once the engine reports
// the game over.
func (that *Room) afterEngineActionLocked() {
	if that.engine == nil || !that.engine.Ended() || that.state == StateEnded {
		return
	}

	that.state = StateEnded

	if that.stats != nil {
		result := that.engine.Result()
		moves := that.engine.Moves()
		go that.stats.RecordGameResult(context.Background(), result, moves)
	}

	if that.onClosed != nil {
		go that.onClosed(that.id)
	}
}

// pauseLocked starts the disconnect grace countdown. The countdown
// goroutine re-reads the live participant count under the room mutex on
// every tick; a reconnection that restores the count cancels it
// atomically, so a rejoin racing the final tick never both resumes and
// force-closes.
func (that *Room) pauseLocked() {
	if that.state != StatePlaying {
		return
	}

	that.state = StatePaused
	cancel := make(chan struct{})
	that.pauseCancel = cancel

	deadline := time.Now().Add(that.conf.PauseBudget)

	that.logger.Info("game paused", "budget", that.conf.PauseBudget)
	that.broadcastLocked("game:paused", pausedPayload{Time: int(that.conf.PauseBudget.Seconds())})

	go that.pauseCountdown(cancel, deadline)
}

func (that *Room) pauseCountdown(cancel <-chan struct{}, deadline time.Time) {
	ticker := time.NewTicker(that.conf.PauseInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			that.mu.Lock()

			if that.state != StatePaused {
				that.mu.Unlock()
				return
			}

			remaining := time.Until(deadline)
			if remaining <= 0 {
				that.closeLocked("nobody reconnected in time")
				that.mu.Unlock()
				return
			}

			that.broadcastLocked("game:paused", pausedPayload{Time: int(remaining.Seconds())})
			that.mu.Unlock()
		}
	}
}

func (that *Room) resumeLocked() {
	if that.state != StatePaused {
		return
	}

	that.state = StatePlaying
	if that.pauseCancel != nil {
		close(that.pauseCancel)
		that.pauseCancel = nil
	}

	that.logger.Info("game resumed")

	if that.engine != nil {
		that.Broadcast("game:state", that.engine.State())
	}
}

// closeLocked is the forced-termination path: the reason is broadcast,
// every participant is disconnected and the room becomes terminal.
func (that *Room) closeLocked(reason string) {
	if that.state == StateEnded {
		return
	}

	that.logger.Info("room closed", "reason", reason)

	that.broadcastLocked("game:closed", closedPayload{Reason: reason})

	for conn := range that.conns {
		_ = conn.Close()
		delete(that.conns, conn)
	}

	that.state = StateEnded
	if that.pauseCancel != nil {
		close(that.pauseCancel)
		that.pauseCancel = nil
	}

	if that.onClosed != nil {
		go that.onClosed(that.id)
	}
}

// SendTo implements game.Notifier. Engine calls happen inside action
// processing, with the room mutex already held.
func (that *Room) SendTo(name, action string, payload any) {
	for conn, connName := range that.conns {
		if connName == name {
			that.sendLocked(conn, action, payload)
			return
		}
	}
}

// Broadcast implements game.Notifier.
func (that *Room) Broadcast(action string, payload any) {
	that.broadcastLocked(action, payload)
}

func (that *Room) broadcastLocked(action string, payload any) {
	for conn := range that.conns {
		that.sendLocked(conn, action, payload)
	}
}

func (that *Room) broadcastExceptLocked(exclude Conn, action string, payload any) {
	for conn := range that.conns {
		if conn == exclude {
			continue
		}
		that.sendLocked(conn, action, payload)
	}
}

func (that *Room) sendLocked(conn Conn, action string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		that.logger.Error("failed to marshal payload", "action", action, "error", err)
		return
	}

	if err = conn.WriteJSON(Envelope{Action: action, Message: raw}); err != nil {
		that.logger.Warn("failed to send message", "action", action, "error", err)
	}
}

func (that *Room) sendErrorLocked(conn Conn, err error) {
	var placement *apperror.PlacementError
	if errors.As(err, &placement) {
		that.sendLocked(conn, "error", placement)
		return
	}

	that.sendLocked(conn, "error", shortErrorPayload{Message: err.Error()})
}
