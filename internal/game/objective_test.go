package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/scrabble-backend/internal/entity"
)

func TestNewObjective(t *testing.T) {
	t.Run("builds the requested variant", func(t *testing.T) {
		assert.Equal(t, ObjectiveBase, NewObjective(ObjectiveBase, 0, 0).Type())
		assert.Equal(t, ObjectivePoints, NewObjective(ObjectivePoints, 50, 0).Type())
		assert.Equal(t, ObjectiveTime, NewObjective(ObjectiveTime, 0, 10).Type())
		assert.Equal(t, ObjectivePlayerTime, NewObjective(ObjectivePlayerTime, 0, 10).Type())
	})

	t.Run("an unknown type falls back to base", func(t *testing.T) {
		assert.Equal(t, ObjectiveBase, NewObjective("bogus", 0, 0).Type())
	})

	t.Run("timer variants without minutes get the default allotment", func(t *testing.T) {
		// Given: a game that has barely begun
		engine := newTestEngine(newFakeChecker(), &fakeNotifier{}, tilesFor('X'), map[string][]entity.Tile{
			"alice": tilesFor('A'),
			"bob":   tilesFor('B'),
		}, "alice", "bob")

		// Then: a zero-minute timer does not end the game on the spot
		timed, ok := NewObjective(ObjectiveTime, 0, 0).(*TimeObjective)
		require.True(t, ok)
		assert.False(t, timed.CheckForGameEnd(engine))
		assert.True(t, timed.deadline.After(time.Now()))

		perPlayer, ok := NewObjective(ObjectivePlayerTime, 0, 0).(*PlayerTimeObjective)
		require.True(t, ok)
		assert.Equal(t, DefaultTimerMinutes*time.Minute, perPlayer.allotted)
	})
}

func TestBaseObjective(t *testing.T) {
	t.Run("continues while the bag has tiles", func(t *testing.T) {
		engine := newTestEngine(newFakeChecker(), &fakeNotifier{}, tilesFor('X'), map[string][]entity.Tile{
			"alice": {},
			"bob":   tilesFor('B'),
		}, "alice", "bob")

		assert.False(t, (&BaseObjective{}).CheckForGameEnd(engine))
	})

	t.Run("ends once the bag is empty and a rack is played out", func(t *testing.T) {
		engine := newTestEngine(newFakeChecker(), &fakeNotifier{}, nil, map[string][]entity.Tile{
			"alice": {},
			"bob":   tilesFor('B'),
		}, "alice", "bob")

		assert.True(t, (&BaseObjective{}).CheckForGameEnd(engine))
	})

	t.Run("deducts leftover tiles and skips the surrenderer", func(t *testing.T) {
		// Given: alice leads but surrendered
		racks := map[string]*entity.Rack{
			"alice": entity.NewRack("alice", nil),
			"bob":   entity.NewRack("bob", tilesFor('Q')),
		}
		racks["alice"].AddPoints(30)
		racks["bob"].AddPoints(20)

		// When: calculating the result
		result := (&BaseObjective{}).CalculateWinner(racks, "alice")

		// Then: bob wins despite the lower raw score
		require.True(t, result.Surrendered)
		assert.Equal(t, "bob", result.Winner)
		assert.Equal(t, 10, result.WinnerPoints)
		assert.Equal(t, 30, result.Players["alice"])
		assert.Equal(t, 10, result.Players["bob"])
	})
}

func TestPointObjective(t *testing.T) {
	// Given: a 30-point target game
	engine := newTestEngine(newFakeChecker(), &fakeNotifier{}, tilesFor('X', 'Y'), map[string][]entity.Tile{
		"alice": tilesFor('A'),
		"bob":   tilesFor('B'),
	}, "alice", "bob")
	objective := &PointObjective{target: 30}

	// Then: nobody has reached the target yet
	assert.False(t, objective.CheckForGameEnd(engine))

	// When: a rack crosses the target
	engine.Racks()["alice"].AddPoints(30)

	// Then: the game ends
	assert.True(t, objective.CheckForGameEnd(engine))
}

func TestTimeObjective(t *testing.T) {
	engine := newTestEngine(newFakeChecker(), &fakeNotifier{}, tilesFor('X'), map[string][]entity.Tile{
		"alice": tilesFor('A'),
		"bob":   tilesFor('B'),
	}, "alice", "bob")

	t.Run("continues before the deadline", func(t *testing.T) {
		objective := &TimeObjective{deadline: time.Now().Add(time.Hour)}
		assert.False(t, objective.CheckForGameEnd(engine))
	})

	t.Run("ends after the deadline", func(t *testing.T) {
		objective := &TimeObjective{deadline: time.Now().Add(-time.Second)}
		assert.True(t, objective.CheckForGameEnd(engine))
	})
}

func TestPlayerTimeObjective(t *testing.T) {
	// Given: a one-minute personal budget tracked by a fake clock
	engine := newTestEngine(newFakeChecker(), &fakeNotifier{}, tilesFor('X'), map[string][]entity.Tile{
		"alice": tilesFor('A'),
		"bob":   tilesFor('B'),
	}, "alice", "bob")

	current := time.Now()
	objective := &PlayerTimeObjective{
		allotted: time.Minute,
		elapsed:  make(map[string]time.Duration),
		lastSwap: current,
		now:      func() time.Time { return current },
	}

	// When: alice spends 80 seconds on her turn
	current = current.Add(80 * time.Second)
	objective.CheckForGameEnd(engine)

	// Then: her overage of 20s costs two points (one per started 15s)
	racks := engine.Racks()
	racks["alice"].AddPoints(10)
	racks["bob"].AddPoints(5)

	result := objective.CalculateWinner(racks, "")

	penaltyA := result.Players["alice"]
	assert.Equal(t, 10-2-entity.LetterPoints('A'), penaltyA)

	// Then: bob ran no overage
	assert.Equal(t, 5-entity.LetterPoints('B'), result.Players["bob"])
}
