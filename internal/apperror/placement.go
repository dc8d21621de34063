package apperror

import "fmt"

// PlacementKind names one of the closed set of reasons a word placement
// can be rejected.
type PlacementKind string

const (
	IllegalPlacement PlacementKind = "IllegalPlacement"
	InvalidWord      PlacementKind = "InvalidWord"
	NotConnected     PlacementKind = "NotConnected"
	GapInWord        PlacementKind = "GapInWord"
	OutOfBoard       PlacementKind = "OutOfBoard"
	BoardPlaceTaken  PlacementKind = "BoardPlaceTaken"
	TileNotOnHand    PlacementKind = "TileNotOnHand"
	NotCentered      PlacementKind = "NotCentered"
)

// PlacementError is returned as data when a proposed move is rejected.
// A rejected move leaves all game state untouched, so the caller may
// correct the input and retry.
type PlacementError struct {
	Kind    PlacementKind  `json:"kind"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func (that *PlacementError) Error() string {
	return fmt.Sprintf("%s: %s", that.Kind, that.Message)
}

func NewPlacementError(kind PlacementKind, message string, data map[string]any) *PlacementError {
	return &PlacementError{
		Kind:    kind,
		Message: message,
		Data:    data,
	}
}
