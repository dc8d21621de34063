package entity

import "time"

// MoveKind tags the variant of a committed move.
type MoveKind string

const (
	MovePlace   MoveKind = "Place"
	MoveSkip    MoveKind = "Skip"
	MoveTrade   MoveKind = "Trade"
	MoveForfeit MoveKind = "Forfeit"
)

// PlacedWord records one scored word of a place move: the main word or a
// perpendicular word formed through one of the new tiles.
type PlacedWord struct {
	Word   string   `json:"word"`
	Start  Position `json:"start"`
	End    Position `json:"end"`
	Points int      `json:"points"`
}

// Move is one entry of the append-only move log. The log is the
// authoritative record for UI replay and for scoring at game end.
type Move struct {
	Kind      MoveKind  `json:"kind"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`

	// Place
	Words []PlacedWord `json:"words,omitempty"`

	// Trade
	Traded   []Tile `json:"traded,omitempty"`
	Received []Tile `json:"received,omitempty"`

	// Forfeit
	Forfeiter string `json:"forfeiter,omitempty"`
}

func NewPlaceMove(actor string, words []PlacedWord) Move {
	return Move{Kind: MovePlace, Actor: actor, Timestamp: time.Now(), Words: words}
}

func NewSkipMove(actor string) Move {
	return Move{Kind: MoveSkip, Actor: actor, Timestamp: time.Now()}
}

func NewTradeMove(actor string, traded, received []Tile) Move {
	return Move{Kind: MoveTrade, Actor: actor, Timestamp: time.Now(), Traded: traded, Received: received}
}

func NewForfeitMove(actor string) Move {
	return Move{Kind: MoveForfeit, Actor: actor, Timestamp: time.Now(), Forfeiter: actor}
}

// TotalPoints sums the points of every word scored by a place move.
func (that Move) TotalPoints() int {
	total := 0
	for _, word := range that.Words {
		total += word.Points
	}

	return total
}
