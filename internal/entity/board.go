package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
)

// BoardSize is the side length of the square board.
const BoardSize = 15

const (
	MultiplierWord   = "WORD"
	MultiplierLetter = "LETTER"
)

// defaultBoardMap encodes the multiplier layout, one digit per cell:
// 1 plain, 2 double word, 3 triple word, 4 double letter, 5 triple letter.
var defaultBoardMap = [BoardSize]string{
	"311411131114113",
	"121115111511121",
	"112111414111211",
	"411211141112114",
	"111121111121111",
	"151115111511151",
	"114111414111411",
	"311411121114113",
	"114111414111411",
	"151115111511151",
	"111121111121111",
	"411211141112114",
	"112111414111211",
	"121115111511121",
	"311411131114113",
}

// Position addresses a board cell; x runs along a row, y down a column.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Position) Equals(other Position) bool {
	return that.X == other.X && that.Y == other.Y
}

// PlacedTile pairs a tile with the position it is placed on.
type PlacedTile struct {
	Position
	Tile Tile
}

// Multiplier is a single-use score bonus on a board cell. Used flips
// exactly once, at commit time of the move that scored through it.
type Multiplier struct {
	Factor int    `json:"factor"`
	Kind   string `json:"kind"`
	Used   bool   `json:"used"`
}

type cell struct {
	tile       *Tile
	multiplier *Multiplier
}

// Board is the fixed grid words are built on. Placement is permanent for
// the life of a session: a cell holds at most one tile, ever.
type Board struct {
	cells    [BoardSize][BoardSize]cell
	occupied int
	touched  []*Multiplier
}

// NewBoard builds an empty board with the default multiplier layout.
func NewBoard() *Board {
	board := &Board{}

	for y := 0; y < BoardSize; y++ {
		for x, digit := range defaultBoardMap[y] {
			board.cells[x][y].multiplier = multiplierForDigit(digit)
		}
	}

	return board
}

func multiplierForDigit(digit rune) *Multiplier {
	switch digit {
	case '2':
		return &Multiplier{Factor: 2, Kind: MultiplierWord}
	case '3':
		return &Multiplier{Factor: 3, Kind: MultiplierWord}
	case '4':
		return &Multiplier{Factor: 2, Kind: MultiplierLetter}
	case '5':
		return &Multiplier{Factor: 3, Kind: MultiplierLetter}
	default:
		return nil
	}
}

// Center returns the board's center position.
func (that *Board) Center() Position {
	return Position{X: BoardSize / 2, Y: BoardSize / 2}
}

func (that *Board) InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

// IsEmpty reports whether no cell has ever been occupied.
func (that *Board) IsEmpty() bool {
	return that.occupied == 0
}

// IsTaken reports whether the cell holds a tile. Out-of-bounds positions
// read as free so that contiguity walks stop at the edge.
func (that *Board) IsTaken(x, y int) bool {
	if !that.InBounds(x, y) {
		return false
	}

	return that.cells[x][y].tile != nil
}

// TileAt returns the tile on a cell, or nil for empty or out-of-bounds.
func (that *Board) TileAt(x, y int) *Tile {
	if !that.InBounds(x, y) {
		return nil
	}

	return that.cells[x][y].tile
}

// PlaceTile commits a tile to a cell. It rejects out-of-bounds and
// already-occupied positions without mutating anything.
func (that *Board) PlaceTile(placed PlacedTile) error {
	if !that.InBounds(placed.X, placed.Y) {
		return fmt.Errorf("%w: position (%d,%d)", errOutOfBoard, placed.X, placed.Y)
	}

	if that.cells[placed.X][placed.Y].tile != nil {
		return fmt.Errorf("%w: position (%d,%d)", errPlaceTaken, placed.X, placed.Y)
	}

	tile := placed.Tile
	that.cells[placed.X][placed.Y].tile = &tile
	that.occupied++

	return nil
}

// PlaceWord commits a run of tiles, stopping at the first rejection.
func (that *Board) PlaceWord(tiles []PlacedTile) error {
	for _, placed := range tiles {
		if err := that.PlaceTile(placed); err != nil {
			return err
		}
	}

	return nil
}

var (
	errOutOfBoard = apperror.NewPlacementError(apperror.OutOfBoard, "position is outside the board", nil)
	errPlaceTaken = apperror.NewPlacementError(apperror.BoardPlaceTaken, "cell already holds a tile", nil)
)

// WordBetween assembles the letters of the inclusive linear run between
// start and end, reading overlay tiles where the board is still empty.
// Start and end must share a row or a column.
func (that *Board) WordBetween(start, end Position, overlay map[Position]Tile) string {
	word := make([]rune, 0, BoardSize)
	for _, pos := range runPositions(start, end) {
		if tile := that.TileAt(pos.X, pos.Y); tile != nil {
			word = append(word, tile.Letter)
			continue
		}
		if tile, ok := overlay[pos]; ok {
			word = append(word, tile.Letter)
		}
	}

	return string(word)
}

// CalculatePoints scores the inclusive run between start and end without
// mutating any state. Overlay tiles stand in for tiles not yet placed, so
// a move can be previewed. Letter multipliers scale the single tile on
// the cell; word multipliers accumulate into a word-level factor. Touched
// multiplier cells are recorded but not marked used; the caller commits
// them via UseActiveMultipliers or discards them via
// ResetActiveMultipliers.
func (that *Board) CalculatePoints(start, end Position, overlay map[Position]Tile) int {
	points := 0
	wordMultiplier := 1

	for _, pos := range runPositions(start, end) {
		var tile *Tile
		if placed := that.TileAt(pos.X, pos.Y); placed != nil {
			tile = placed
		} else if fresh, ok := overlay[pos]; ok {
			tile = &fresh
		}

		if tile == nil {
			continue
		}

		multiplier := that.cells[pos.X][pos.Y].multiplier
		if multiplier == nil || multiplier.Used {
			points += tile.Points
			continue
		}

		that.touched = append(that.touched, multiplier)

		switch multiplier.Kind {
		case MultiplierLetter:
			points += tile.Points * multiplier.Factor
		case MultiplierWord:
			wordMultiplier *= multiplier.Factor
			points += tile.Points
		}
	}

	return points * wordMultiplier
}

// UseActiveMultipliers marks every multiplier recorded since the last
// reset as used. Must be invoked exactly once per committed move, after
// scoring, and never for a preview.
func (that *Board) UseActiveMultipliers() {
	for _, multiplier := range that.touched {
		multiplier.Used = true
	}

	that.touched = nil
}

// ResetActiveMultipliers discards recorded multiplier touches without
// consuming them. Called after a preview.
func (that *Board) ResetActiveMultipliers() {
	that.touched = nil
}

// PlacedCount reports how many tiles have been committed to the board.
func (that *Board) PlacedCount() int {
	return that.occupied
}

func runPositions(start, end Position) []Position {
	positions := make([]Position, 0, BoardSize)

	if start.Y == end.Y {
		for x := start.X; x <= end.X; x++ {
			positions = append(positions, Position{X: x, Y: start.Y})
		}
		return positions
	}

	for y := start.Y; y <= end.Y; y++ {
		positions = append(positions, Position{X: start.X, Y: y})
	}

	return positions
}

type cellJSON struct {
	Tile       *Tile       `json:"tile,omitempty"`
	Multiplier *Multiplier `json:"multiplier,omitempty"`
}

// MarshalJSON renders the board as rows of cells, y-major, so clients can
// index it as board[y][x].
func (that *Board) MarshalJSON() ([]byte, error) {
	rows := make([][]cellJSON, BoardSize)
	for y := 0; y < BoardSize; y++ {
		rows[y] = make([]cellJSON, BoardSize)
		for x := 0; x < BoardSize; x++ {
			rows[y][x] = cellJSON{
				Tile:       that.cells[x][y].tile,
				Multiplier: that.cells[x][y].multiplier,
			}
		}
	}

	return json.Marshal(rows)
}
