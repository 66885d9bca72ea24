package profileloader

import "github.com/google/uuid"

// Transition is what the loader does when the observed identity is
// reported. uuid.Nil stands for "no authenticated user".
type Transition struct {
	CancelPrevious bool
	Reset          bool
	StartNew       bool
}

// Plan decides the transition from prev to next. mounted is false for the
// very first observation.
func Plan(prev, next uuid.UUID, mounted bool) Transition {
	if !mounted {
		return Transition{StartNew: next != uuid.Nil}
	}
	if prev == next {
		return Transition{}
	}
	return Transition{
		CancelPrevious: true,
		Reset:          true,
		StartNew:       next != uuid.Nil,
	}
}
