// Package swipe implements the swipeable card-stack engine: drag tracking,
// the commit/snap-back decision, exit-aware motion selection and the ordered
// mutation of the deck over time.
//
// The engine is single-threaded. A Controller must only be touched from one
// goroutine; Loop and the TUI host both satisfy that by funnelling every
// input, timer and query through a single event loop.
package swipe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateCard is returned when a deck carries the same id twice.
	ErrDuplicateCard = errors.New("swipe: duplicate card id")
	// ErrInvalidCard is returned for a card without an id.
	ErrInvalidCard = errors.New("swipe: invalid card")
)

// Payload is presentation data carried alongside a card. The engine never
// reads it.
type Payload struct {
	Name        string
	Description string
	ImageURL    string
}

// CardRecord is an immutable card supplied by the hosting application.
type CardRecord struct {
	ID      string
	Payload Payload
}

// Direction is the resolved outcome of a drag release.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// Sign is -1 for left, +1 for right and 0 for none.
func (d Direction) Sign() float64 {
	switch d {
	case DirectionLeft:
		return -1
	case DirectionRight:
		return 1
	default:
		return 0
	}
}

// ParseDirection maps "left"/"right" (and the like/nope aliases) to a
// Direction, ignoring case. Anything else is DirectionNone.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "nope":
		return DirectionLeft
	case "right", "like":
		return DirectionRight
	default:
		return DirectionNone
	}
}

func validateDeck(cards []CardRecord) error {
	seen := make(map[string]struct{}, len(cards))
	for i, c := range cards {
		if c.ID == "" {
			return fmt.Errorf("%w: card %d has no id", ErrInvalidCard, i)
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

func cloneCards(cards []CardRecord) []CardRecord {
	out := make([]CardRecord, len(cards))
	copy(out, cards)
	return out
}
