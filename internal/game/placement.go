package game

import (
	"encoding/json"
	"sort"
	"unicode"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
	"github.com/rocketscienceinc/scrabble-backend/internal/entity"
)

// TilePlacement is one proposed tile of a place or ghost move.
type TilePlacement struct {
	X    int
	Y    int
	Char rune
}

type tilePlacementJSON struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Char string `json:"char"`
}

func (that *TilePlacement) UnmarshalJSON(data []byte) error {
	var raw tilePlacementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	that.X = raw.X
	that.Y = raw.Y
	for _, r := range raw.Char {
		that.Char = unicode.ToUpper(r)
		break
	}

	return nil
}

func (that TilePlacement) MarshalJSON() ([]byte, error) {
	return json.Marshal(tilePlacementJSON{X: that.X, Y: that.Y, Char: string(that.Char)})
}

// PlacementResult reports the main word and every perpendicular word a
// placement forms, each with its score.
type PlacementResult struct {
	MainWord      entity.PlacedWord   `json:"mainWord"`
	AdjacentWords []entity.PlacedWord `json:"adjacentWords"`
}

// TotalPoints sums the main and adjacent word scores.
func (that *PlacementResult) TotalPoints() int {
	total := that.MainWord.Points
	for _, word := range that.AdjacentWords {
		total += word.Points
	}

	return total
}

// proposedTile is a placement projected onto the inferred axis: main is
// the coordinate that varies along the word.
type proposedTile struct {
	main int
	char rune
}

type crossRun struct {
	word  string
	start entity.Position
	end   entity.Position
}

// Place validates a proposed placement and, in commit mode, applies it:
// rack tiles are consumed (wildcards convert), tiles go on the board,
// all formed words are scored, the move is logged and the turn advances.
// In preview mode it stops after scoring and mutates nothing. Every
// rejection is an *apperror.PlacementError and leaves all state intact.
func (that *Engine) Place(player string, placements []TilePlacement, commit bool) (*PlacementResult, error) {
	if err := that.ensureTurn(player); err != nil {
		return nil, err
	}

	if len(placements) == 0 {
		return nil, apperror.NewPlacementError(apperror.IllegalPlacement, "no tiles proposed", nil)
	}

	horizontal, err := inferDirection(placements)
	if err != nil {
		return nil, err
	}

	// project onto the main axis, sort, collapse duplicate coordinates
	cross := crossCoord(placements[0], horizontal)
	proposed := make([]proposedTile, 0, len(placements))
	seen := make(map[int]bool, len(placements))
	for _, placement := range placements {
		main := mainCoord(placement, horizontal)
		if seen[main] {
			continue
		}
		seen[main] = true
		proposed = append(proposed, proposedTile{main: main, char: unicode.ToUpper(placement.Char)})
	}
	sort.Slice(proposed, func(i, j int) bool { return proposed[i].main < proposed[j].main })

	for _, tile := range proposed {
		pos := axisPos(horizontal, tile.main, cross)
		if !that.board.InBounds(pos.X, pos.Y) {
			return nil, apperror.NewPlacementError(apperror.OutOfBoard, "tile is outside the board", posData(pos))
		}
		if that.board.IsTaken(pos.X, pos.Y) {
			return nil, apperror.NewPlacementError(apperror.BoardPlaceTaken, "cell already holds a tile", posData(pos))
		}
	}

	// anchor backward: a new word may extend an existing one
	anchor := proposed[0].main
	for {
		pos := axisPos(horizontal, anchor-1, cross)
		if !that.board.IsTaken(pos.X, pos.Y) {
			break
		}
		anchor--
	}

	wasEmpty := that.board.IsEmpty()

	word := make([]rune, 0, entity.BoardSize)
	crossRuns := make([]crossRun, 0, len(proposed))
	nextToExisting := false

	index := 0
	main := anchor
walk:
	for main < entity.BoardSize {
		pos := axisPos(horizontal, main, cross)

		switch {
		case index < len(proposed) && proposed[index].main == main:
			word = append(word, proposed[index].char)
			if run, ok := that.crossRunAt(pos, proposed[index].char, horizontal); ok {
				crossRuns = append(crossRuns, run)
			}
			index++
		case that.board.IsTaken(pos.X, pos.Y):
			word = append(word, that.board.TileAt(pos.X, pos.Y).Letter)
			nextToExisting = true
		default:
			if index < len(proposed) {
				return nil, apperror.NewPlacementError(apperror.GapInWord, "proposed word has a gap", posData(pos))
			}
			break walk
		}

		main++
	}
	endMain := main - 1

	mainWord := string(word)
	if len(word) > 1 && !that.checker.IsValid(mainWord) {
		return nil, apperror.NewPlacementError(apperror.InvalidWord, "word is not in the dictionary", map[string]any{"word": mainWord})
	}
	for _, run := range crossRuns {
		if !that.checker.IsValid(run.word) {
			return nil, apperror.NewPlacementError(apperror.InvalidWord, "word is not in the dictionary", map[string]any{"word": run.word})
		}
	}

	start := axisPos(horizontal, anchor, cross)
	end := axisPos(horizontal, endMain, cross)

	if wasEmpty {
		center := that.board.Center()
		if !coversPosition(start, end, center) {
			return nil, apperror.NewPlacementError(apperror.NotCentered, "first word must cover the center cell", posData(center))
		}
	} else if !nextToExisting && len(crossRuns) == 0 {
		return nil, apperror.NewPlacementError(apperror.NotConnected, "word does not connect to any placed tile", nil)
	}

	chars := make([]rune, len(proposed))
	for i, tile := range proposed {
		chars[i] = tile.char
	}

	rack := that.racks[player]
	planned, ok := rack.PlanLetters(chars)
	if !ok {
		return nil, apperror.NewPlacementError(apperror.TileNotOnHand, "rack does not cover the proposed letters", map[string]any{"letters": string(chars)})
	}

	overlay := make(map[entity.Position]entity.Tile, len(proposed))
	for i, tile := range proposed {
		overlay[axisPos(horizontal, tile.main, cross)] = planned[i]
	}

	result := &PlacementResult{
		MainWord:      entity.PlacedWord{Word: mainWord, Start: start, End: end},
		AdjacentWords: make([]entity.PlacedWord, 0, len(crossRuns)),
	}

	// a lone tile that only forms perpendicular words is scored through
	// those words, not as a one-letter main word
	if len(word) > 1 || len(crossRuns) == 0 {
		result.MainWord.Points = that.board.CalculatePoints(start, end, overlay)
	}
	for _, run := range crossRuns {
		result.AdjacentWords = append(result.AdjacentWords, entity.PlacedWord{
			Word:   run.word,
			Start:  run.start,
			End:    run.end,
			Points: that.board.CalculatePoints(run.start, run.end, overlay),
		})
	}

	if !commit {
		that.board.ResetActiveMultipliers()
		return result, nil
	}

	for _, tile := range proposed {
		used, _ := rack.UseLetter(tile.char)
		pos := axisPos(horizontal, tile.main, cross)
		if err := that.board.PlaceTile(entity.PlacedTile{Position: pos, Tile: used}); err != nil {
			return nil, err
		}
	}

	rack.AddPoints(result.TotalPoints())

	words := make([]entity.PlacedWord, 0, 1+len(result.AdjacentWords))
	words = append(words, result.MainWord)
	words = append(words, result.AdjacentWords...)
	that.moves = append(that.moves, entity.NewPlaceMove(player, words))

	that.board.UseActiveMultipliers()
	that.advanceTurn()

	return result, nil
}

// crossRunAt walks the perpendicular axis through pos over contiguous
// occupied cells and assembles the word formed there, with char standing
// in at pos. Runs of length one form no word.
func (that *Engine) crossRunAt(pos entity.Position, char rune, horizontal bool) (crossRun, bool) {
	dx, dy := 0, 1
	if !horizontal {
		dx, dy = 1, 0
	}

	startX, startY := pos.X, pos.Y
	for that.board.IsTaken(startX-dx, startY-dy) {
		startX -= dx
		startY -= dy
	}

	endX, endY := pos.X, pos.Y
	for that.board.IsTaken(endX+dx, endY+dy) {
		endX += dx
		endY += dy
	}

	if startX == endX && startY == endY {
		return crossRun{}, false
	}

	word := make([]rune, 0, entity.BoardSize)
	for x, y := startX, startY; x <= endX && y <= endY; x, y = x+dx, y+dy {
		if x == pos.X && y == pos.Y {
			word = append(word, char)
			continue
		}
		word = append(word, that.board.TileAt(x, y).Letter)
	}

	return crossRun{
		word:  string(word),
		start: entity.Position{X: startX, Y: startY},
		end:   entity.Position{X: endX, Y: endY},
	}, true
}

// inferDirection requires all proposed positions to share exactly one
// axis. A single tile is ambiguous and defaults to horizontal.
func inferDirection(placements []TilePlacement) (bool, error) {
	sameX, sameY := true, true
	for _, placement := range placements[1:] {
		if placement.X != placements[0].X {
			sameX = false
		}
		if placement.Y != placements[0].Y {
			sameY = false
		}
	}

	if !sameX && !sameY {
		return false, apperror.NewPlacementError(apperror.IllegalPlacement, "tiles must share a row or a column", nil)
	}

	return sameY, nil
}

func mainCoord(placement TilePlacement, horizontal bool) int {
	if horizontal {
		return placement.X
	}
	return placement.Y
}

func crossCoord(placement TilePlacement, horizontal bool) int {
	if horizontal {
		return placement.Y
	}
	return placement.X
}

func axisPos(horizontal bool, main, cross int) entity.Position {
	if horizontal {
		return entity.Position{X: main, Y: cross}
	}
	return entity.Position{X: cross, Y: main}
}

func coversPosition(start, end, target entity.Position) bool {
	return start.X <= target.X && target.X <= end.X &&
		start.Y <= target.Y && target.Y <= end.Y
}

func posData(pos entity.Position) map[string]any {
	return map[string]any{"x": pos.X, "y": pos.Y}
}
