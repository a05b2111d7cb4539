package stage

import (
	"testing"
	"time"
)

func TestCanMoveTo(t *testing.T) {
	tests := []struct {
		name    string
		current Stage
		target  Stage
		want    bool
	}{
		{name: "lead to pricing", current: Lead, target: Pricing, want: true},
		{name: "pricing to operations", current: Pricing, target: Operations, want: true},
		{name: "operations to completed", current: Operations, target: Completed, want: true},
		{name: "lead cannot skip to operations", current: Lead, target: Operations, want: false},
		{name: "lead cannot skip to completed", current: Lead, target: Completed, want: false},
		{name: "pricing cannot skip to completed", current: Pricing, target: Completed, want: false},
		{name: "no backward move", current: Operations, target: Pricing, want: false},
		{name: "no self move", current: Pricing, target: Pricing, want: false},
		{name: "completed has no successor", current: Completed, target: Lead, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMoveTo(tt.current, tt.target); got != tt.want {
				t.Errorf("CanMoveTo(%s, %s) = %v, want %v", tt.current, tt.target, got, tt.want)
			}
		})
	}
}

func TestPrevious(t *testing.T) {
	if got := Previous(Lead); got != "" {
		t.Errorf("Previous(lead) = %q, want empty", got)
	}
	if got := Previous(Completed); got != Operations {
		t.Errorf("Previous(completed) = %q, want operations", got)
	}
	if got := Previous(Pricing); got != Lead {
		t.Errorf("Previous(pricing) = %q, want lead", got)
	}
}

func TestApplyAdvance(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	result := ApplyAdvance(Operations, now)
	if result.NewStage != Completed {
		t.Errorf("NewStage = %q, want completed", result.NewStage)
	}
	if result.CompletedAt == nil || !result.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", result.CompletedAt, now)
	}

	result = ApplyAdvance(Lead, now)
	if result.NewStage != Pricing {
		t.Errorf("NewStage = %q, want pricing", result.NewStage)
	}
	if result.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil for non-terminal advance", result.CompletedAt)
	}
}

func TestApplyRevert(t *testing.T) {
	result := ApplyRevert(Completed)
	if result.NewStage != Operations {
		t.Errorf("NewStage = %q, want operations", result.NewStage)
	}
	if !result.ClearCompletedAt {
		t.Error("ClearCompletedAt = false, want true when leaving completed")
	}

	result = ApplyRevert(Operations)
	if result.NewStage != Pricing {
		t.Errorf("NewStage = %q, want pricing", result.NewStage)
	}
	if result.ClearCompletedAt {
		t.Error("ClearCompletedAt = true, want false for non-terminal revert")
	}
}
