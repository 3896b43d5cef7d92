package swipe

import "math"

// Input ranges for the derived drag signals.
const (
	rotationRange = 200.0
	maxRotation   = 30.0

	likeFrom = 50.0
	likeTo   = 150.0
	nopeFrom = -150.0
	nopeTo   = -50.0
)

// Sanitize coerces non-finite offsets to 0.
func Sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// interpolate maps x from [x0,x1] onto [y0,y1], clamping at both ends.
func interpolate(x, x0, x1, y0, y1 float64) float64 {
	x = Sanitize(x)
	if x <= x0 {
		return y0
	}
	if x >= x1 {
		return y1
	}
	return y0 + (x-x0)/(x1-x0)*(y1-y0)
}

// Rotation returns the card tilt in degrees for a horizontal offset.
func Rotation(offsetX float64) float64 {
	return interpolate(offsetX, -rotationRange, rotationRange, -maxRotation, maxRotation)
}

// LikeOpacity is the visibility of the positive overlay label.
func LikeOpacity(offsetX float64) float64 {
	return interpolate(offsetX, likeFrom, likeTo, 0, 1)
}

// NopeOpacity is the visibility of the negative overlay label.
func NopeOpacity(offsetX float64) float64 {
	return interpolate(offsetX, nopeFrom, nopeTo, 1, 0)
}

// Signals are the values a renderer derives from a drag offset.
type Signals struct {
	OffsetX     float64
	Rotation    float64
	LikeOpacity float64
	NopeOpacity float64
}

// SignalsAt computes every derived signal for offsetX.
func SignalsAt(offsetX float64) Signals {
	x := Sanitize(offsetX)
	return Signals{
		OffsetX:     x,
		Rotation:    Rotation(x),
		LikeOpacity: LikeOpacity(x),
		NopeOpacity: NopeOpacity(x),
	}
}

// DragSession tracks one card while it is being gestured.
type DragSession struct {
	CardID  string
	OffsetX float64
}

// Move advances the session by a pointer delta. The offset is never clamped.
func (s *DragSession) Move(deltaX float64) {
	s.OffsetX += Sanitize(deltaX)
}

// Update replaces the running offset.
func (s *DragSession) Update(offsetX float64) {
	s.OffsetX = Sanitize(offsetX)
}

// End applies the final delta and returns the policy decision for the
// resulting offset.
func (s *DragSession) End(deltaX float64) Direction {
	s.Move(deltaX)
	return Decide(s.OffsetX)
}

// Signals derives rotation and overlay visibility from the current offset.
func (s DragSession) Signals() Signals {
	return SignalsAt(s.OffsetX)
}
