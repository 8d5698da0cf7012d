// Package app ties the solar, daylight and clock calculations to the
// timestamp the user controls.
package app

import (
	"time"

	"github.com/Faultbox/sunroom/internal/clock"
)

const minutesPerDay = 24 * 60

// State holds the timestamp the room is lit for. Writes replace it wholesale.
type State struct {
	now time.Time
}

// NewState starts at t, normally the wall clock at launch.
func NewState(t time.Time) *State {
	return &State{now: t}
}

// Now returns the current timestamp.
func (s *State) Now() time.Time {
	return s.now
}

// Set replaces the timestamp.
func (s *State) Set(t time.Time) {
	s.now = t
}

// SetTotalMinutes moves to a time of day on the same date.
func (s *State) SetTotalMinutes(total int) {
	s.now = clock.Apply(s.now, total)
}

// Step moves by delta slider steps from the displayed time, wrapping around
// midnight without changing the date.
func (s *State) Step(delta int) {
	if delta == 0 {
		return
	}
	total := clock.Quantize(s.now).TotalMinutes + delta*clock.SliderStep
	total = ((total % minutesPerDay) + minutesPerDay) % minutesPerDay
	s.SetTotalMinutes(clock.Snap(total))
}
