// Package stage contains the pure business logic for the shipment
// lifecycle. Guards are pure functions that evaluate preconditions
// without side effects; callers apply the results.
package stage

import "time"

// Stage represents a shipment's position in the pipeline.
type Stage string

const (
	Lead       Stage = "lead"
	Pricing    Stage = "pricing"
	Operations Stage = "operations"
	Completed  Stage = "completed"
)

// forward is the linear forward-adjacency of the pipeline. Stages
// never skip; completed has no successor.
var forward = map[Stage]Stage{
	Lead:       Pricing,
	Pricing:    Operations,
	Operations: Completed,
}

// backward is derived from forward; lead has no predecessor.
var backward = map[Stage]Stage{
	Pricing:    Lead,
	Operations: Pricing,
	Completed:  Operations,
}

// Valid reports whether s is a recognized stage.
func Valid(s Stage) bool {
	switch s {
	case Lead, Pricing, Operations, Completed:
		return true
	}
	return false
}

// Next returns the forward-adjacent stage, or "" if none.
func Next(s Stage) Stage {
	return forward[s]
}

// Previous returns the backward-adjacent stage, or "" if none.
func Previous(s Stage) Stage {
	return backward[s]
}

// CanMoveTo reports whether target is reachable from current in one
// forward step. The graph is linear, so this is the only legal
// forward movement.
func CanMoveTo(current, target Stage) bool {
	return forward[current] == target
}

// InitialStage returns the stage for a newly created shipment.
func InitialStage() Stage {
	return Lead
}

// TransitionResult is a value object capturing a stage change and its
// side effects. The caller persists it; nothing here mutates state.
type TransitionResult struct {
	NewStage Stage
	// CompletedAt is set when the transition enters completed.
	CompletedAt *time.Time
	// ClearCompletedAt is set when reverting out of completed; the
	// completion timestamp must be cleared in the same logical write.
	ClearCompletedAt bool
}

// ApplyAdvance computes the result of advancing out of current. The
// caller passes the current time so the rule stays testable.
func ApplyAdvance(current Stage, now time.Time) TransitionResult {
	next := Next(current)
	result := TransitionResult{NewStage: next}
	if next == Completed {
		result.CompletedAt = &now
	}
	return result
}

// ApplyRevert computes the result of reverting out of current.
func ApplyRevert(current Stage) TransitionResult {
	result := TransitionResult{NewStage: Previous(current)}
	if current == Completed {
		result.ClearCompletedAt = true
	}
	return result
}
