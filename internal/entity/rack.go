package entity

// RackCapacity is the default number of tile slots on a player's rack.
const RackCapacity = 7

// Rack is a player's private hand of tiles. It is keyed by player name,
// not connection, so a reconnecting player reattaches to the same rack.
// The accumulated score only grows during play; objectives may apply a
// one-time penalty at game end.
type Rack struct {
	owner    string
	capacity int
	tiles    []Tile
	points   int
}

// NewRack builds a rack for the given owner, keeping at most the default
// capacity of the provided tiles.
func NewRack(owner string, tiles []Tile) *Rack {
	rack := &Rack{
		owner:    owner,
		capacity: RackCapacity,
		tiles:    make([]Tile, 0, RackCapacity),
	}

	for _, tile := range tiles {
		rack.AddTile(tile)
	}

	return rack
}

// AddTile appends a tile unless the rack is already full.
func (that *Rack) AddTile(tile Tile) {
	if that.IsFull() {
		return
	}

	that.tiles = append(that.tiles, tile)
}

// HasLetter reports whether a literal (non-converted) match for char is
// on the rack.
func (that *Rack) HasLetter(char rune) bool {
	for _, tile := range that.tiles {
		if tile.Letter == char {
			return true
		}
	}

	return false
}

// HasLetters reports whether the rack can cover every requested letter.
// Each requested letter without a literal match may be satisfied by one
// distinct wildcard. The check is pure; no tiles are consumed.
func (that *Rack) HasLetters(chars []rune) bool {
	_, ok := that.PlanLetters(chars)
	return ok
}

// PlanLetters resolves the requested letters against the rack without
// consuming anything. It returns the tiles that UseLetter would yield,
// in request order, with wildcards already converted. The second return
// is false if the rack cannot cover the request.
func (that *Rack) PlanLetters(chars []rune) ([]Tile, bool) {
	counts := make(map[rune]int, len(that.tiles))
	for _, tile := range that.tiles {
		counts[tile.Letter]++
	}

	planned := make([]Tile, 0, len(chars))
	for _, char := range chars {
		if counts[char] > 0 {
			counts[char]--
			planned = append(planned, NewTile(char))
			continue
		}

		if counts[WildcardChar] > 0 {
			counts[WildcardChar]--
			planned = append(planned, NewTile(WildcardChar).Convert(char))
			continue
		}

		return nil, false
	}

	return planned, true
}

// UseLetter removes and returns a tile matching char. A literal match is
// preferred; otherwise one wildcard is converted to char (scoring zero)
// and returned. The second return is false if neither is available.
func (that *Rack) UseLetter(char rune) (Tile, bool) {
	if index := that.indexOf(char); index >= 0 {
		return that.removeAt(index), true
	}

	if index := that.indexOf(WildcardChar); index >= 0 {
		return that.removeAt(index).Convert(char), true
	}

	return Tile{}, false
}

// RemoveLetter removes and returns a literal match only, never a
// wildcard stand-in. Used by trades, where a wildcard must be
// surrendered explicitly.
func (that *Rack) RemoveLetter(char rune) (Tile, bool) {
	index := that.indexOf(char)
	if index < 0 {
		return Tile{}, false
	}

	return that.removeAt(index), true
}

func (that *Rack) indexOf(char rune) int {
	for i, tile := range that.tiles {
		if tile.Letter == char {
			return i
		}
	}

	return -1
}

func (that *Rack) removeAt(index int) Tile {
	tile := that.tiles[index]
	that.tiles = append(that.tiles[:index], that.tiles[index+1:]...)

	return tile
}

func (that *Rack) IsFull() bool {
	return len(that.tiles) >= that.capacity
}

func (that *Rack) IsEmpty() bool {
	return len(that.tiles) == 0
}

func (that *Rack) Size() int {
	return len(that.tiles)
}

// Tiles returns a copy of the tiles on hand.
func (that *Rack) Tiles() []Tile {
	return append([]Tile(nil), that.tiles...)
}

func (that *Rack) Owner() string {
	return that.owner
}

func (that *Rack) Points() int {
	return that.points
}

func (that *Rack) AddPoints(points int) {
	that.points += points
}

// PenaltyPoints sums the face values of the tiles left on the rack.
func (that *Rack) PenaltyPoints() int {
	total := 0
	for _, tile := range that.tiles {
		total += tile.Points
	}

	return total
}
