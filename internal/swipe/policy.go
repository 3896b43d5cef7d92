package swipe

// CommitThreshold is the horizontal offset a release must exceed, in either
// direction, to commit the card.
const CommitThreshold = 100.0

// Decide maps a release offset to a commit direction. DirectionNone means
// the card snaps back to rest.
func Decide(finalOffsetX float64) Direction {
	x := Sanitize(finalOffsetX)
	switch {
	case x > CommitThreshold:
		return DirectionRight
	case x < -CommitThreshold:
		return DirectionLeft
	default:
		return DirectionNone
	}
}
