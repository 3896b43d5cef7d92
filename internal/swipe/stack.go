package swipe

import (
	"log/slog"
	"time"
)

// Stack constants.
const (
	WindowSize   = 2
	RemovalDelay = 10 * time.Millisecond
)

// Removal is a scheduled removal of a committed card. The direction is
// scoped to the task so two cards can be mid-exit with different
// directions.
type Removal struct {
	CardID     string
	Direction  Direction
	OffsetX    float64
	Generation uint64
	Delay      time.Duration
}

// Controller owns the deck. It is not safe for concurrent use.
type Controller struct {
	original   []CardRecord
	deck       []CardRecord
	generation uint64

	phases   map[string]Phase
	sessions map[string]*DragSession
	released map[string]float64
	pending  map[string]Removal

	log *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger for engine events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController returns an empty controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		phases:   make(map[string]Phase),
		sessions: make(map[string]*DragSession),
		released: make(map[string]float64),
		pending:  make(map[string]Removal),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize replaces the deck and remembers it as the deck Reset restores.
func (c *Controller) Initialize(cards []CardRecord) error {
	if err := validateDeck(cards); err != nil {
		return err
	}
	c.original = cloneCards(cards)
	c.restore()
	c.log.Info("deck.initialized", "cards", len(cards), "generation", c.generation)
	return nil
}

// Reset restores the original deck in its original order and cancels every
// pending removal. It returns the removals that were cancelled.
func (c *Controller) Reset() []Removal {
	cancelled := make([]Removal, 0, len(c.pending))
	for _, r := range c.pending {
		cancelled = append(cancelled, r)
	}
	c.restore()
	c.log.Info("deck.reset", "cards", len(c.deck), "cancelled", len(cancelled), "generation", c.generation)
	return cancelled
}

func (c *Controller) restore() {
	c.generation++
	c.deck = cloneCards(c.original)
	clear(c.phases)
	clear(c.sessions)
	clear(c.released)
	clear(c.pending)
	for _, card := range c.deck {
		c.phases[card.ID] = PhaseIdle
	}
}

// Generation identifies the current deck; it changes on Initialize and Reset.
func (c *Controller) Generation() uint64 { return c.generation }

// Len is the number of cards still in the deck.
func (c *Controller) Len() int { return len(c.deck) }

// Empty reports whether every card has been dismissed.
func (c *Controller) Empty() bool { return len(c.deck) == 0 }

// Deck returns a copy of the full deck in stacking order.
func (c *Controller) Deck() []CardRecord { return cloneCards(c.deck) }

// VisibleWindow returns the topmost min(WindowSize, Len) cards, back to front.
func (c *Controller) VisibleWindow() []CardRecord {
	start := max(0, len(c.deck)-WindowSize)
	return cloneCards(c.deck[start:])
}

// Phase returns the lifecycle phase of a card and whether it is in the deck.
func (c *Controller) Phase(id string) (Phase, bool) {
	p, ok := c.phases[id]
	return p, ok
}

// Pending reports whether a card is waiting for its removal to fire.
func (c *Controller) Pending(id string) bool {
	_, ok := c.pending[id]
	return ok
}

func (c *Controller) visible(id string) bool {
	for _, card := range c.deck[max(0, len(c.deck)-WindowSize):] {
		if card.ID == id {
			return true
		}
	}
	return false
}

// Swipe commits a card in the visible window and returns the removal the
// host must schedule after Removal.Delay. Unknown, hidden or already
// committed cards are ignored.
func (c *Controller) Swipe(id string, dir Direction) (Removal, bool) {
	if dir == DirectionNone {
		c.log.Debug("swipe.ignored", "card", id, "reason", "no direction")
		return Removal{}, false
	}
	if !c.visible(id) {
		c.log.Debug("swipe.ignored", "card", id, "reason", "not visible")
		return Removal{}, false
	}
	if _, ok := c.pending[id]; ok {
		c.log.Debug("swipe.ignored", "card", id, "reason", "already pending")
		return Removal{}, false
	}
	var offset float64
	if s, ok := c.sessions[id]; ok {
		offset = s.OffsetX
	}
	delete(c.sessions, id)
	delete(c.released, id)
	c.phases[id] = PhaseCommitted
	r := Removal{CardID: id, Direction: dir, OffsetX: offset, Generation: c.generation, Delay: RemovalDelay}
	c.pending[id] = r
	c.log.Info("swipe.committed", "card", id, "direction", dir.String())
	return r, true
}

// Remove completes a scheduled removal. It returns the removed card so the
// presentation can finish its exit animation. Stale removals from an older
// generation, or for cards already gone, are no-ops.
func (c *Controller) Remove(r Removal) (CardRecord, bool) {
	if r.Generation != c.generation {
		c.log.Debug("swipe.ignored", "card", r.CardID, "reason", "stale generation")
		return CardRecord{}, false
	}
	if _, ok := c.pending[r.CardID]; !ok {
		return CardRecord{}, false
	}
	delete(c.pending, r.CardID)
	delete(c.phases, r.CardID)
	delete(c.released, r.CardID)
	for i, card := range c.deck {
		if card.ID != r.CardID {
			continue
		}
		c.deck = append(c.deck[:i:i], c.deck[i+1:]...)
		c.log.Info("swipe.removed", "card", r.CardID, "remaining", len(c.deck))
		return card, true
	}
	return CardRecord{}, false
}

// BeginDrag opens a drag session on a visible, idle card.
func (c *Controller) BeginDrag(id string) bool {
	if !c.visible(id) {
		return false
	}
	switch c.phases[id] {
	case PhaseCommitted:
		return false
	case PhaseDragging:
		return true
	}
	c.sessions[id] = &DragSession{CardID: id}
	delete(c.released, id)
	c.phases[id] = PhaseDragging
	return true
}

// MoveDrag advances a card's drag session by deltaX.
func (c *Controller) MoveDrag(id string, deltaX float64) bool {
	s, ok := c.sessions[id]
	if !ok {
		return false
	}
	s.Move(deltaX)
	return true
}

// EndDrag closes the session, applying a final delta, and either snaps the
// card back or commits it. A commit returns the removal to schedule.
func (c *Controller) EndDrag(id string, deltaX float64) (Removal, bool) {
	s, ok := c.sessions[id]
	if !ok {
		return Removal{}, false
	}
	dir := s.End(deltaX)
	if dir == DirectionNone {
		delete(c.sessions, id)
		c.released[id] = s.OffsetX
		c.phases[id] = PhaseSnapBack
		c.log.Debug("swipe.snapback", "card", id, "offset", s.OffsetX)
		return Removal{}, false
	}
	return c.Swipe(id, dir)
}

// CancelDrag abandons a session; the card snaps back.
func (c *Controller) CancelDrag(id string) {
	s, ok := c.sessions[id]
	if !ok {
		return
	}
	delete(c.sessions, id)
	c.released[id] = s.OffsetX
	c.phases[id] = PhaseSnapBack
}

// Settle returns a snapped-back card to idle once its animation finished.
func (c *Controller) Settle(id string) {
	if c.phases[id] == PhaseSnapBack {
		c.phases[id] = PhaseIdle
		delete(c.released, id)
	}
}

// Session returns the active drag session for a card.
func (c *Controller) Session(id string) (DragSession, bool) {
	s, ok := c.sessions[id]
	if !ok {
		return DragSession{}, false
	}
	return *s, true
}
