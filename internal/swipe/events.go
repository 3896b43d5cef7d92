package swipe

// PointerKind is the kind of a pointer event.
type PointerKind int

const (
	PointerStart PointerKind = iota
	PointerMove
	PointerEnd
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerStart:
		return "start"
	case PointerMove:
		return "move"
	case PointerEnd:
		return "end"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is one input from the hosting application. DeltaX is the
// horizontal movement since the previous event of the same gesture.
type PointerEvent struct {
	Kind   PointerKind
	CardID string
	DeltaX float64
}

// Handle applies a pointer event. When the event commits a card the
// returned removal must be scheduled by the caller.
func (c *Controller) Handle(ev PointerEvent) (Removal, bool) {
	switch ev.Kind {
	case PointerStart:
		if c.BeginDrag(ev.CardID) && ev.DeltaX != 0 {
			c.MoveDrag(ev.CardID, ev.DeltaX)
		}
	case PointerMove:
		c.MoveDrag(ev.CardID, ev.DeltaX)
	case PointerEnd:
		return c.EndDrag(ev.CardID, ev.DeltaX)
	case PointerCancel:
		c.CancelDrag(ev.CardID)
	}
	return Removal{}, false
}

// CardView is what the presentation layer renders for one visible card.
type CardView struct {
	Card      CardRecord
	Phase     Phase
	Signals   Signals
	Motion    Motion
	Direction Direction
	ZIndex    int
}

// Snapshot is the engine output for one frame.
type Snapshot struct {
	Generation uint64
	Cards      []CardView
	Remaining  int
	Empty      bool
}

// Top returns the frontmost visible card.
func (s Snapshot) Top() (CardView, bool) {
	if len(s.Cards) == 0 {
		return CardView{}, false
	}
	return s.Cards[len(s.Cards)-1], true
}

// Snapshot reports the visible window with every derived signal.
func (c *Controller) Snapshot() Snapshot {
	window := c.VisibleWindow()
	views := make([]CardView, 0, len(window))
	for i, card := range window {
		phase := c.phases[card.ID]
		v := CardView{Card: card, Phase: phase, ZIndex: i}
		switch {
		case c.sessions[card.ID] != nil:
			v.Signals = c.sessions[card.ID].Signals()
		case phase == PhaseCommitted:
			r := c.pending[card.ID]
			v.Direction = r.Direction
			v.Signals = SignalsAt(r.OffsetX)
		default:
			v.Signals = SignalsAt(c.released[card.ID])
		}
		v.Motion = SelectMotion(phase, v.Direction)
		views = append(views, v)
	}
	return Snapshot{
		Generation: c.generation,
		Cards:      views,
		Remaining:  len(c.deck),
		Empty:      len(c.deck) == 0,
	}
}
