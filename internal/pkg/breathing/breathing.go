package breathing

import (
	"context"
	"sync"
	"time"
)

// Phase is one stage of the box-breathing cycle.
type Phase int

const (
	PhaseInhale Phase = iota
	PhaseHoldIn
	PhaseExhale
	PhaseHoldOut
	PhaseComplete
)

// Each phase lasts PhaseSeconds; a cycle is the four phases and the exercise
// ends after TotalCycles completed cycles (TotalCycles*4 ticks).
const (
	PhaseSeconds = 4
	TotalCycles  = 5
)

func (p Phase) String() string {
	switch p {
	case PhaseInhale:
		return "inhale"
	case PhaseHoldIn:
		return "hold1"
	case PhaseExhale:
		return "exhale"
	case PhaseHoldOut:
		return "hold2"
	default:
		return "complete"
	}
}

// Label is the on-screen instruction for the phase.
func (p Phase) Label() string {
	switch p {
	case PhaseInhale:
		return "Breathe In (4)"
	case PhaseHoldIn:
		return "Hold (4)"
	case PhaseExhale:
		return "Breathe Out (4)"
	case PhaseHoldOut:
		return "Hold (4)"
	default:
		return "Complete"
	}
}

// State is a snapshot of the exercise for rendering.
type State struct {
	Phase Phase
	Cycle int
	Done  bool
}

// Exercise is the guided-breathing state machine. Tick moves it forward one
// phase; once complete, further ticks change nothing.
type Exercise struct {
	mu    sync.Mutex
	phase Phase
	cycle int
	done  bool
}

func New() *Exercise {
	return &Exercise{phase: PhaseInhale}
}

// State returns the current snapshot.
func (e *Exercise) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{Phase: e.phase, Cycle: e.cycle, Done: e.done}
}

// Tick advances one phase and reports whether the exercise is still running.
// The transition out of the final hold of the last cycle moves to complete
// instead of starting a sixth cycle.
func (e *Exercise) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.done {
		return false
	}

	switch e.phase {
	case PhaseInhale:
		e.phase = PhaseHoldIn
	case PhaseHoldIn:
		e.phase = PhaseExhale
	case PhaseExhale:
		e.phase = PhaseHoldOut
	case PhaseHoldOut:
		e.cycle++
		if e.cycle >= TotalCycles {
			e.phase = PhaseComplete
			e.done = true
			return false
		}
		e.phase = PhaseInhale
	}

	return true
}

// Run drives the exercise with a real ticker until it completes or the
// context is cancelled. Either exit stops all scheduling; there is no way
// for a tick to arrive after Run returns.
func (e *Exercise) Run(ctx context.Context, onTick func(State)) error {
	ticker := time.NewTicker(PhaseSeconds * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			running := e.Tick()
			if onTick != nil {
				onTick(e.State())
			}
			if !running {
				return nil
			}
		}
	}
}
