package swipe

import (
	"math"
	"time"
)

// Motion constants.
const (
	ExitDistance     = 1000.0
	ExitDuration     = 300 * time.Millisecond
	EnterDuration    = 450 * time.Millisecond
	SnapBackDuration = 200 * time.Millisecond
	EnterScale       = 0.95
)

// Phase is the lifecycle state of a card present in the deck.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseSnapBack
	PhaseCommitted
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseSnapBack:
		return "snapback"
	case PhaseCommitted:
		return "committed"
	default:
		return "idle"
	}
}

// Frame is one rendered pose of a card.
type Frame struct {
	X       float64
	Opacity float64
	Scale   float64
}

// Rest is the pose of a card sitting in the stack.
var Rest = Frame{X: 0, Opacity: 1, Scale: 1}

// Motion describes an animation. When HasInitial is false the animation
// starts from wherever the card currently is.
type Motion struct {
	Initial    Frame
	HasInitial bool
	Target     Frame
	Duration   time.Duration
}

// SelectMotion maps a lifecycle phase and commit direction to animation
// parameters. It holds no state.
func SelectMotion(p Phase, d Direction) Motion {
	switch p {
	case PhaseCommitted:
		return Motion{
			Target:   Frame{X: d.Sign() * ExitDistance, Opacity: 0, Scale: 1},
			Duration: ExitDuration,
		}
	case PhaseSnapBack:
		return Motion{Target: Rest, Duration: SnapBackDuration}
	case PhaseDragging:
		// follows the pointer directly
		return Motion{Target: Rest}
	default:
		return Motion{
			Initial:    Frame{X: 0, Opacity: 0, Scale: EnterScale},
			HasInitial: true,
			Target:     Rest,
			Duration:   EnterDuration,
		}
	}
}

// At returns the pose after elapsed time, starting from `from` unless the
// motion defines its own initial frame.
func (m Motion) At(from Frame, elapsed time.Duration) Frame {
	if m.HasInitial {
		from = m.Initial
	}
	if m.Duration <= 0 || elapsed >= m.Duration {
		return m.Target
	}
	if elapsed <= 0 {
		return from
	}
	t := easeOut(float64(elapsed) / float64(m.Duration))
	return Frame{
		X:       lerp(from.X, m.Target.X, t),
		Opacity: lerp(from.Opacity, m.Target.Opacity, t),
		Scale:   lerp(from.Scale, m.Target.Scale, t),
	}
}

// Done reports whether the motion has finished after elapsed time.
func (m Motion) Done(elapsed time.Duration) bool {
	return elapsed >= m.Duration
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// cubic ease-out
func easeOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}
