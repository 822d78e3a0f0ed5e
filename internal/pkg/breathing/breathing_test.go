package breathing

import (
	"context"
	"testing"
	"time"
)

func TestCompletesAfterTwentyTicks(t *testing.T) {
	e := New()

	for i := 0; i < TotalCycles*4-1; i++ {
		if !e.Tick() {
			t.Fatalf("exercise finished early at tick %d", i+1)
		}
	}

	// The 20th tick is the counted exit.
	if e.Tick() {
		t.Fatal("tick 20 reported the exercise still running")
	}

	s := e.State()
	if !s.Done || s.Phase != PhaseComplete {
		t.Fatalf("state after 20 ticks = %+v, want done/complete", s)
	}
	if s.Cycle != TotalCycles {
		t.Fatalf("completed cycles = %d, want %d", s.Cycle, TotalCycles)
	}
}

func TestNoUpdatesAfterCompletion(t *testing.T) {
	e := New()
	for i := 0; i < TotalCycles*4; i++ {
		e.Tick()
	}
	before := e.State()

	for i := 0; i < 10; i++ {
		if e.Tick() {
			t.Fatal("tick after completion reported running")
		}
	}

	if after := e.State(); after != before {
		t.Fatalf("state changed after completion: %+v -> %+v", before, after)
	}
}

func TestPhaseSequence(t *testing.T) {
	e := New()
	want := []Phase{PhaseInhale, PhaseHoldIn, PhaseExhale, PhaseHoldOut, PhaseInhale}

	for i, phase := range want {
		if got := e.State().Phase; got != phase {
			t.Fatalf("step %d phase = %v, want %v", i, got, phase)
		}
		e.Tick()
	}

	if e.State().Cycle != 1 {
		t.Fatalf("cycle after first full loop = %d, want 1", e.State().Cycle)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	e := New()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- e.Run(ctx, nil)
	}()

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}

	if e.State().Done {
		t.Fatal("cancelled run must not mark the exercise complete")
	}
}

func TestPhaseLabels(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseInhale, "Breathe In (4)"},
		{PhaseHoldIn, "Hold (4)"},
		{PhaseExhale, "Breathe Out (4)"},
		{PhaseHoldOut, "Hold (4)"},
		{PhaseComplete, "Complete"},
	}
	for _, tt := range tests {
		if got := tt.phase.Label(); got != tt.want {
			t.Fatalf("Phase(%v).Label() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
