package tui

import (
	"time"

	"github.com/jask/swipedeck/internal/swipe"
)

// track is the animation a card is currently running.
type track struct {
	phase  swipe.Phase
	from   swipe.Frame
	motion swipe.Motion
	start  time.Time
}

func (t track) at(now time.Time) swipe.Frame {
	return t.motion.At(t.from, now.Sub(t.start))
}

func (t track) done(now time.Time) bool {
	return t.motion.Done(now.Sub(t.start))
}

// exit is a card already removed from the deck whose exit animation is
// still playing.
type exit struct {
	view  swipe.CardView
	track track
}

// animator keeps one track per visible card and the exits in flight.
type animator struct {
	tracks  map[string]track
	exiting []exit
}

func newAnimator() *animator {
	return &animator{tracks: make(map[string]track)}
}

func (a *animator) clear() {
	clear(a.tracks)
	a.exiting = nil
}

// sync starts a new track for every card whose phase changed.
func (a *animator) sync(snap swipe.Snapshot, now time.Time) {
	seen := make(map[string]struct{}, len(snap.Cards))
	for _, v := range snap.Cards {
		id := v.Card.ID
		seen[id] = struct{}{}
		prev, ok := a.tracks[id]
		if ok && prev.phase == v.Phase {
			continue
		}
		t := track{phase: v.Phase, motion: v.Motion, start: now, from: swipe.Rest}
		switch {
		case !ok:
			// first sight: the enter motion carries its own initial frame
		case v.Phase == swipe.PhaseSnapBack, v.Phase == swipe.PhaseCommitted:
			t.from = swipe.Frame{X: v.Signals.OffsetX, Opacity: 1, Scale: 1}
		case v.Phase == swipe.PhaseIdle:
			// settled after a snap-back or a cancelled drag; keep the pose
			t.from = prev.at(now)
			t.motion = swipe.Motion{Target: swipe.Rest}
		}
		a.tracks[id] = t
	}
	for id := range a.tracks {
		if _, ok := seen[id]; !ok {
			delete(a.tracks, id)
		}
	}
}

// retire moves a removed card's track into the exit list.
func (a *animator) retire(card swipe.CardRecord, dir swipe.Direction) {
	t, ok := a.tracks[card.ID]
	delete(a.tracks, card.ID)
	if !ok {
		return
	}
	a.exiting = append(a.exiting, exit{
		view:  swipe.CardView{Card: card, Phase: swipe.PhaseCommitted, Direction: dir},
		track: t,
	})
}

// pose returns where a visible card is drawn.
func (a *animator) pose(v swipe.CardView, now time.Time) swipe.Frame {
	if v.Phase == swipe.PhaseDragging {
		return swipe.Frame{X: v.Signals.OffsetX, Opacity: 1, Scale: 1}
	}
	t, ok := a.tracks[v.Card.ID]
	if !ok {
		return swipe.Rest
	}
	return t.at(now)
}

// step drops finished exits and returns the snap-backs that completed.
func (a *animator) step(now time.Time) (settled []string) {
	kept := a.exiting[:0]
	for _, e := range a.exiting {
		if !e.track.done(now) {
			kept = append(kept, e)
		}
	}
	a.exiting = kept
	for id, t := range a.tracks {
		if t.phase == swipe.PhaseSnapBack && t.done(now) {
			settled = append(settled, id)
		}
	}
	return settled
}

// busy reports whether anything still moves.
func (a *animator) busy(now time.Time) bool {
	if len(a.exiting) > 0 {
		return true
	}
	for _, t := range a.tracks {
		if t.phase != swipe.PhaseDragging && !t.done(now) {
			return true
		}
	}
	return false
}
