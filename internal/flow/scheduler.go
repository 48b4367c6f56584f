package flow

import (
	"fmt"
	"math"
)

// Scheduler holds the unfurling progress shared by every curve. Progress
// starts at zero, grows by a fixed speed per Advance and plateaus at the step
// budget until Reset.
type Scheduler struct {
	progress float64
	speed    float64
	maxSteps int
}

func NewScheduler(maxSteps int, speed float64) (*Scheduler, error) {
	if maxSteps <= 0 || speed <= 0 {
		return nil, fmt.Errorf("%w: steps=%d speed=%g", ErrInvalidSchedule, maxSteps, speed)
	}
	return &Scheduler{speed: speed, maxSteps: maxSteps}, nil
}

func (s *Scheduler) Progress() float64 { return s.progress }
func (s *Scheduler) MaxSteps() int     { return s.maxSteps }
func (s *Scheduler) Speed() float64    { return s.speed }

// Advance moves progress forward by one frame and returns the new value.
func (s *Scheduler) Advance() float64 {
	s.progress += s.speed
	if s.progress > float64(s.maxSteps) {
		s.progress = float64(s.maxSteps)
	}
	return s.progress
}

func (s *Scheduler) Reset() { s.progress = 0 }

// Complete reports whether the plateau has been reached.
func (s *Scheduler) Complete() bool { return s.progress >= float64(s.maxSteps) }

// Segments is the number of walk iterations a tracer runs at the current
// progress: a fractional segment already counts as one.
func (s *Scheduler) Segments() int {
	n := int(math.Ceil(s.progress))
	if n > s.maxSteps {
		n = s.maxSteps
	}
	return n
}

// Fraction is progress relative to the step budget, in [0, 1].
func (s *Scheduler) Fraction() float64 {
	return s.progress / float64(s.maxSteps)
}
