package entity

import "encoding/json"

// WildcardChar is the letter used for the blank (joker) tile. A wildcard
// scores zero and may be relabeled to a concrete letter once it is
// committed to a word.
const WildcardChar = '0'

// DefaultBagFill lists every tile of the default (German) distribution,
// one character per tile, jokers last.
const DefaultBagFill = "EEEEEEEEEEEEEEENNNNNNNNNSSSSSSSIIIIIIRRRRRRTTTTTTUUUUUUAAAAADDDDHHHHGGGLLLOOOMMMMBBWZCCFFKKPÄJÜVÖXQY00"

var tilePoints = map[rune]int{
	'A': 1, 'E': 1, 'N': 1, 'S': 1, 'I': 1, 'R': 1, 'T': 1, 'U': 1, 'D': 1,
	'H': 2, 'G': 2, 'L': 2, 'O': 2,
	'M': 3, 'B': 3, 'W': 3, 'Z': 3,
	'C': 4, 'F': 4, 'K': 4, 'P': 4,
	'Ä': 6, 'J': 6, 'Ü': 6, 'V': 6,
	'Ö': 8, 'X': 8,
	'Q': 10, 'Y': 10,
	WildcardChar: 0,
}

// Tile is a single game piece. It is immutable once drawn; the only
// transition is a one-way wildcard conversion via Convert.
type Tile struct {
	Letter   rune
	Points   int
	Wildcard bool
}

// NewTile builds a tile for the given character with its default point
// value. Unknown characters get zero points.
func NewTile(char rune) Tile {
	return Tile{
		Letter:   char,
		Points:   tilePoints[char],
		Wildcard: char == WildcardChar,
	}
}

// LetterPoints returns the default point value of a letter.
func LetterPoints(char rune) int {
	return tilePoints[char]
}

// Convert relabels a wildcard to a concrete letter. The converted tile
// scores zero regardless of the letter it now represents. Converting a
// non-wildcard tile returns the tile unchanged.
func (that Tile) Convert(char rune) Tile {
	if !that.Wildcard {
		return that
	}

	return Tile{
		Letter:   char,
		Points:   0,
		Wildcard: false,
	}
}

type tileJSON struct {
	Letter     string `json:"letter"`
	Points     int    `json:"points"`
	IsWildcard bool   `json:"isWildcard"`
}

func (that Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(tileJSON{
		Letter:     string(that.Letter),
		Points:     that.Points,
		IsWildcard: that.Wildcard,
	})
}

func (that *Tile) UnmarshalJSON(data []byte) error {
	var raw tileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, r := range raw.Letter {
		that.Letter = r
		break
	}
	that.Points = raw.Points
	that.Wildcard = raw.IsWildcard

	return nil
}
