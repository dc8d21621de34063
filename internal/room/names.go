package room

import "math/rand"

var guestAdjectives = []string{
	"funny", "old", "happy", "bloody", "brave", "clever", "crazy",
	"cute", "hungry", "lucky", "powerful", "sleepy", "tired",
}

var guestAnimals = []string{
	"frog", "crow", "falcon", "hawk", "owl", "parrot", "penguin",
	"turkey", "shark", "crab", "bee", "bear", "goat", "seal",
	"lizard", "chameleon",
}

// generateGuestName builds a display name for players who join without
// one, e.g. "lucky falcon".
func generateGuestName() string {
	return guestAdjectives[rand.Intn(len(guestAdjectives))] + " " + guestAnimals[rand.Intn(len(guestAnimals))]
}
