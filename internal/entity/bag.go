package entity

import "math/rand"

// Bag is the shared pool of undrawn tiles. Tiles are drawn off the end
// of the slice; Swap folds surrendered tiles back in and reshuffles.
type Bag struct {
	tiles []Tile
}

// NewBag fills a bag from a fill string (one character per tile) and
// shuffles it. An empty fill uses the default distribution.
func NewBag(fill string) *Bag {
	if fill == "" {
		fill = DefaultBagFill
	}

	bag := &Bag{tiles: make([]Tile, 0, len(fill))}
	for _, char := range fill {
		bag.tiles = append(bag.tiles, NewTile(char))
	}

	bag.shuffle()

	return bag
}

// NewBagFromTiles builds a bag holding exactly the given tiles, in order,
// without shuffling. The last tile is drawn first.
func NewBagFromTiles(tiles []Tile) *Bag {
	return &Bag{tiles: append([]Tile(nil), tiles...)}
}

// shuffle applies a uniform Fisher-Yates permutation.
func (that *Bag) shuffle() {
	rand.Shuffle(len(that.tiles), func(i, j int) {
		that.tiles[i], that.tiles[j] = that.tiles[j], that.tiles[i]
	})
}

// DrawOne pops a single tile. The second return is false once the bag
// is exhausted.
func (that *Bag) DrawOne() (Tile, bool) {
	if len(that.tiles) == 0 {
		return Tile{}, false
	}

	tile := that.tiles[len(that.tiles)-1]
	that.tiles = that.tiles[:len(that.tiles)-1]

	return tile, true
}

// DrawMany draws up to amount tiles, stopping early when the bag runs
// out. Running out is not an error.
func (that *Bag) DrawMany(amount int) []Tile {
	drawn := make([]Tile, 0, amount)
	for i := 0; i < amount; i++ {
		tile, ok := that.DrawOne()
		if !ok {
			break
		}
		drawn = append(drawn, tile)
	}

	return drawn
}

// Swap exchanges the given tiles for fresh ones. It draws
// min(len(toSwap), remaining) replacements first, then folds the
// surrendered tiles back in and reshuffles.
func (that *Bag) Swap(toSwap []Tile) []Tile {
	drawn := that.DrawMany(len(toSwap))

	that.tiles = append(that.tiles, toSwap...)
	that.shuffle()

	return drawn
}

// Count reports the number of undrawn tiles.
func (that *Bag) Count() int {
	return len(that.tiles)
}
