// Package wizard coordinates the two-step select/review flow.
package wizard

import (
	"errors"
	"slices"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
)

// Step is a wizard step.
type Step int

const (
	Selecting Step = iota
	Reviewing
)

func (s Step) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case Reviewing:
		return "reviewing"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptySelection is returned when confirming without records.
	ErrEmptySelection = errors.New("wizard: nothing selected")
	// ErrWrongStep is returned for transitions that are invalid in the current step.
	ErrWrongStep = errors.New("wizard: transition not allowed in current step")
	// ErrNoSelection is returned when resuming review before any confirmation.
	ErrNoSelection = errors.New("wizard: no confirmed selection to review")
)

// State is the full wizard state.
type State struct {
	Step               Step
	SelectedRecords    []catalog.Record
	ControllerSnapshot *catalog.Snapshot
	ReviewSnapshot     *catalog.DisplayState
}

// Coordinator is the wizard state machine. It has no terminal state.
type Coordinator struct {
	state State
}

// New creates a coordinator in the Selecting step.
func New() *Coordinator {
	return &Coordinator{state: State{Step: Selecting}}
}

// Step returns the current step.
func (c *Coordinator) Step() Step {
	return c.state.Step
}

// Confirm moves from Selecting to Reviewing. The records and snapshot replace
// any previous confirmation together.
func (c *Coordinator) Confirm(records []catalog.Record, snap catalog.Snapshot) error {
	if c.state.Step != Selecting {
		return ErrWrongStep
	}
	if len(records) == 0 {
		return ErrEmptySelection
	}

	snap = snap.Clone()
	c.state.SelectedRecords = slices.Clone(records)
	c.state.ControllerSnapshot = &snap
	c.state.Step = Reviewing
	return nil
}

// Back returns to Selecting. Nothing is discarded.
func (c *Coordinator) Back() error {
	if c.state.Step != Reviewing {
		return ErrWrongStep
	}
	c.state.Step = Selecting
	return nil
}

// Resume returns to Reviewing with the previously confirmed records, without
// a new confirmation.
func (c *Coordinator) Resume() error {
	if c.state.Step != Selecting {
		return ErrWrongStep
	}
	if c.state.SelectedRecords == nil {
		return ErrNoSelection
	}
	c.state.Step = Reviewing
	return nil
}

// CanResume reports whether a previous confirmation can be reviewed again.
func (c *Coordinator) CanResume() bool {
	return c.state.Step == Selecting && c.state.SelectedRecords != nil
}

// RecordReviewState stores the review display state.
func (c *Coordinator) RecordReviewState(d catalog.DisplayState) {
	c.state.ReviewSnapshot = &d
}

// ControllerSnapshot returns the stored selection snapshot.
func (c *Coordinator) ControllerSnapshot() (catalog.Snapshot, bool) {
	if c.state.ControllerSnapshot == nil {
		return catalog.Snapshot{}, false
	}
	return c.state.ControllerSnapshot.Clone(), true
}

// ReviewDisplay returns the stored review display state, or def when the
// review step has not been visited.
func (c *Coordinator) ReviewDisplay(def catalog.DisplayState) catalog.DisplayState {
	if c.state.ReviewSnapshot == nil {
		return def
	}
	return *c.state.ReviewSnapshot
}

// SelectedRecords returns the confirmed records.
func (c *Coordinator) SelectedRecords() []catalog.Record {
	return slices.Clone(c.state.SelectedRecords)
}

// State returns a copy of the full state.
func (c *Coordinator) State() State {
	s := c.state
	s.SelectedRecords = slices.Clone(s.SelectedRecords)
	if s.ControllerSnapshot != nil {
		snap := s.ControllerSnapshot.Clone()
		s.ControllerSnapshot = &snap
	}
	if s.ReviewSnapshot != nil {
		d := *s.ReviewSnapshot
		s.ReviewSnapshot = &d
	}
	return s
}
