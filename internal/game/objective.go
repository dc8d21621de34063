package game

import (
	"time"

	"github.com/rocketscienceinc/scrabble-backend/internal/entity"
)

// ObjectiveType names one of the pluggable win-condition policies.
type ObjectiveType string

const (
	ObjectiveBase       ObjectiveType = "base"
	ObjectivePoints     ObjectiveType = "points"
	ObjectiveTime       ObjectiveType = "time"
	ObjectivePlayerTime ObjectiveType = "player-time"
)

// DefaultPointTarget is the points objective threshold when none is given.
const DefaultPointTarget = 100

// DefaultTimerMinutes is the timer objectives' allotment when none is
// given; a zero allotment would end the game on the first turn.
const DefaultTimerMinutes = 15

// penaltyInterval is the per-player timer overage unit: one point is
// deducted per full interval past the allotted time.
const penaltyInterval = 15 * time.Second

// Result is the final score sheet of a finished game.
type Result struct {
	Players      map[string]int `json:"players"`
	Winner       string         `json:"winner"`
	WinnerPoints int            `json:"winnerPoints"`
	Surrendered  bool           `json:"surrendered"`
	Surrenderer  string         `json:"surrenderer,omitempty"`
}

// Objective is the end-of-game and scoring policy of a session. Once
// CheckForGameEnd reports true the engine transitions to terminal and
// accepts no further moves.
type Objective interface {
	CheckForGameEnd(engine *Engine) bool
	CalculateWinner(racks map[string]*entity.Rack, surrenderer string) *Result
	Type() ObjectiveType
}

// NewObjective builds the objective variant for the given type. Points is
// the points-objective threshold; minutes configures the timer variants.
func NewObjective(objectiveType ObjectiveType, points, minutes int) Objective {
	switch objectiveType {
	case ObjectivePoints:
		if points <= 0 {
			points = DefaultPointTarget
		}
		return &PointObjective{target: points}
	case ObjectiveTime:
		if minutes <= 0 {
			minutes = DefaultTimerMinutes
		}
		return &TimeObjective{deadline: time.Now().Add(time.Duration(minutes) * time.Minute)}
	case ObjectivePlayerTime:
		if minutes <= 0 {
			minutes = DefaultTimerMinutes
		}
		return &PlayerTimeObjective{
			allotted: time.Duration(minutes) * time.Minute,
			elapsed:  make(map[string]time.Duration),
			lastSwap: time.Now(),
			now:      time.Now,
		}
	default:
		return &BaseObjective{}
	}
}

// BaseObjective ends the game when the bag is empty and at least one
// rack has been played out.
type BaseObjective struct{}

func (that *BaseObjective) CheckForGameEnd(engine *Engine) bool {
	if engine.Bag().Count() > 0 {
		return false
	}

	for _, rack := range engine.Racks() {
		if rack.IsEmpty() {
			return true
		}
	}

	return false
}

// CalculateWinner scores every rack as accumulated points minus the face
// value of tiles left on hand. A surrendering player stays on the score
// sheet but is excluded from winner selection.
func (that *BaseObjective) CalculateWinner(racks map[string]*entity.Rack, surrenderer string) *Result {
	result := &Result{
		Players:     make(map[string]int, len(racks)),
		Surrendered: surrenderer != "",
		Surrenderer: surrenderer,
	}

	first := true
	for name, rack := range racks {
		points := rack.Points() - rack.PenaltyPoints()
		result.Players[name] = points

		if name == surrenderer {
			continue
		}

		if first || points > result.WinnerPoints {
			result.Winner = name
			result.WinnerPoints = points
			first = false
		}
	}

	return result
}

func (that *BaseObjective) Type() ObjectiveType {
	return ObjectiveBase
}

// PointObjective ends the game as soon as any rack's accumulated score
// reaches the target; otherwise it behaves like the base objective.
type PointObjective struct {
	BaseObjective

	target int
}

func (that *PointObjective) CheckForGameEnd(engine *Engine) bool {
	for _, rack := range engine.Racks() {
		if rack.Points() >= that.target {
			return true
		}
	}

	return that.BaseObjective.CheckForGameEnd(engine)
}

func (that *PointObjective) Type() ObjectiveType {
	return ObjectivePoints
}

// TimeObjective ends the game once a shared deadline elapses; otherwise
// it behaves like the base objective.
type TimeObjective struct {
	BaseObjective

	deadline time.Time
}

func (that *TimeObjective) CheckForGameEnd(engine *Engine) bool {
	if time.Now().After(that.deadline) {
		return true
	}

	return that.BaseObjective.CheckForGameEnd(engine)
}

func (that *TimeObjective) Type() ObjectiveType {
	return ObjectiveTime
}

// PlayerTimeObjective accrues wall time per player between turn handoffs
// and deducts one point per full 15 seconds a player ran over the
// allotted time. Game end itself is delegated to the base objective.
type PlayerTimeObjective struct {
	BaseObjective

	allotted time.Duration
	elapsed  map[string]time.Duration
	lastSwap time.Time
	now      func() time.Time
}

func (that *PlayerTimeObjective) CheckForGameEnd(engine *Engine) bool {
	current := that.now()
	that.elapsed[engine.CurrentPlayerName()] += current.Sub(that.lastSwap)
	that.lastSwap = current

	return that.BaseObjective.CheckForGameEnd(engine)
}

func (that *PlayerTimeObjective) CalculateWinner(racks map[string]*entity.Rack, surrenderer string) *Result {
	result := that.BaseObjective.CalculateWinner(racks, surrenderer)

	first := true
	for name := range result.Players {
		overage := that.elapsed[name] - that.allotted
		if overage > 0 {
			result.Players[name] -= int(overage/penaltyInterval) + 1
		}

		if name == surrenderer {
			continue
		}

		if first || result.Players[name] > result.WinnerPoints {
			result.Winner = name
			result.WinnerPoints = result.Players[name]
			first = false
		}
	}

	return result
}

func (that *PlayerTimeObjective) Type() ObjectiveType {
	return ObjectivePlayerTime
}
