package game

import (
	"log/slog"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
	"github.com/rocketscienceinc/scrabble-backend/internal/entity"
)

// maxTradeTiles caps how many tiles one trade may swap.
const maxTradeTiles = 7

// WordChecker answers case-insensitive membership tests over the legal
// word list.
type WordChecker interface {
	IsValid(word string) bool
}

// Notifier delivers engine events to the session participants. The
// session implements it; every call happens inside the session's action
// processing, so implementations must not re-enter the engine.
type Notifier interface {
	SendTo(name, action string, payload any)
	Broadcast(action string, payload any)
}

// Engine runs one game: it owns the board, the bag, the racks, the move
// log and the objective, and drives turn advancement.
type Engine struct {
	logger *slog.Logger

	board     *entity.Board
	bag       *entity.Bag
	racks     map[string]*entity.Rack
	players   []string
	current   int
	objective Objective
	checker   WordChecker
	notifier  Notifier

	moves       []entity.Move
	ended       bool
	result      *Result
	surrenderer string
}

// StatePayload is the public board/bag/turn broadcast. The bag field
// carries only the remaining count; racks stay private.
type StatePayload struct {
	Bag           int           `json:"bag"`
	Board         *entity.Board `json:"board"`
	CurrentPlayer string        `json:"currentPlayer"`
	MoveHistory   []entity.Move `json:"moveHistory"`
	Players       []string      `json:"players"`
}

// BenchPayload is the private "your new rack" notification.
type BenchPayload struct {
	BenchOwner string        `json:"benchOwner"`
	Bench      []entity.Tile `json:"bench"`
}

// NewEngine builds an engine for the given players in their fixed turn
// order, dealing each a full starting rack. An empty fill string uses
// the default tile distribution.
func NewEngine(logger *slog.Logger, players []string, objective Objective, checker WordChecker, notifier Notifier, fill string) *Engine {
	engine := &Engine{
		logger:    logger.With("component", "engine"),
		board:     entity.NewBoard(),
		bag:       entity.NewBag(fill),
		racks:     make(map[string]*entity.Rack, len(players)),
		players:   append([]string(nil), players...),
		objective: objective,
		checker:   checker,
		notifier:  notifier,
	}

	for _, player := range players {
		engine.racks[player] = entity.NewRack(player, engine.bag.DrawMany(entity.RackCapacity))
	}

	return engine
}

// Start sends each player their starting rack privately and broadcasts
// the aggregate state.
func (that *Engine) Start() {
	for _, player := range that.players {
		that.sendBench(player)
	}

	that.broadcastState()
}

// CurrentPlayerName returns the player whose turn it is.
func (that *Engine) CurrentPlayerName() string {
	return that.players[that.current]
}

// Skip passes the turn without playing.
func (that *Engine) Skip(player string) error {
	if err := that.ensureTurn(player); err != nil {
		return err
	}

	that.moves = append(that.moves, entity.NewSkipMove(player))
	that.advanceTurn()

	return nil
}

// Trade swaps up to min(bag count, 7) of the requested letters the
// player actually holds for fresh tiles. Requested letters not on the
// rack are ignored; a wildcard must be surrendered as its own character.
func (that *Engine) Trade(player string, letters []rune) error {
	if err := that.ensureTurn(player); err != nil {
		return err
	}

	rack := that.racks[player]

	limit := min(that.bag.Count(), maxTradeTiles)
	surrendered := make([]entity.Tile, 0, len(letters))
	for _, letter := range letters {
		if len(surrendered) >= limit {
			break
		}

		tile, ok := rack.RemoveLetter(letter)
		if !ok {
			continue
		}

		surrendered = append(surrendered, tile)
	}

	received := that.bag.Swap(surrendered)
	for _, tile := range received {
		rack.AddTile(tile)
	}

	that.moves = append(that.moves, entity.NewTradeMove(player, surrendered, received))
	that.advanceTurn()

	return nil
}

// Forfeit logs the surrendering player and ends the game immediately,
// excluding them from winner selection.
func (that *Engine) Forfeit(player string) error {
	if that.ended {
		return apperror.ErrGameFinished
	}

	if _, ok := that.racks[player]; !ok {
		return apperror.ErrNotInRoom
	}

	that.moves = append(that.moves, entity.NewForfeitMove(player))
	that.surrenderer = player
	that.finish()

	return nil
}

// advanceTurn asks the objective whether the game ends; if not it
// rotates to the next player, refills their rack while the bag has
// tiles, and emits the private bench and public state notifications.
func (that *Engine) advanceTurn() {
	if that.objective.CheckForGameEnd(that) {
		that.finish()
		return
	}

	that.current = (that.current + 1) % len(that.players)

	next := that.CurrentPlayerName()
	rack := that.racks[next]
	for !rack.IsFull() {
		tile, ok := that.bag.DrawOne()
		if !ok {
			break
		}
		rack.AddTile(tile)
	}

	that.sendBench(next)
	that.broadcastState()
}

func (that *Engine) finish() {
	that.result = that.objective.CalculateWinner(that.racks, that.surrenderer)
	that.ended = true

	that.logger.Info("game ended", "winner", that.result.Winner, "surrendered", that.result.Surrendered)

	that.notifier.Broadcast("game:end", that.result)
}

func (that *Engine) ensureTurn(player string) error {
	if that.ended {
		return apperror.ErrGameFinished
	}

	if that.CurrentPlayerName() != player {
		return apperror.ErrNotYourTurn
	}

	return nil
}

func (that *Engine) sendBench(player string) {
	that.notifier.SendTo(player, "game:next", BenchPayload{
		BenchOwner: player,
		Bench:      that.racks[player].Tiles(),
	})
}

func (that *Engine) broadcastState() {
	that.notifier.Broadcast("game:state", that.State())
}

// State snapshots the public game state.
func (that *Engine) State() StatePayload {
	return StatePayload{
		Bag:           that.bag.Count(),
		Board:         that.board,
		CurrentPlayer: that.CurrentPlayerName(),
		MoveHistory:   that.moves,
		Players:       that.players,
	}
}

func (that *Engine) Ended() bool {
	return that.ended
}

func (that *Engine) Result() *Result {
	return that.result
}

func (that *Engine) Bag() *entity.Bag {
	return that.bag
}

func (that *Engine) Board() *entity.Board {
	return that.board
}

func (that *Engine) Racks() map[string]*entity.Rack {
	return that.racks
}

func (that *Engine) Moves() []entity.Move {
	return that.moves
}
