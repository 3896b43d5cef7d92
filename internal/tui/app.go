package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/swipedeck/internal/config"
	"github.com/jask/swipedeck/internal/database/repository"
	"github.com/jask/swipedeck/internal/prefs"
	"github.com/jask/swipedeck/internal/service"
	"github.com/jask/swipedeck/internal/swipe"
)

// Services are the backends the TUI talks to.
type Services struct {
	Decks *service.DeckService
	Prefs *prefs.Store
}

// App is the bubbletea model for the swipe stack. The controller is only
// touched from Update, which bubbletea runs on one goroutine.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services
	log      *slog.Logger

	deck   repository.Deck
	ctrl   *swipe.Controller
	anim   *animator
	keys   keyMap
	help   help.Model
	width  int
	height int

	// keyboard or mouse drag in progress on this card
	dragging string
	mouseX   int
	mouse    bool

	ticking bool
	status  string
	err     error

	now  func() time.Time
	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

// New builds the model for deck. Cards are loaded by Init.
func New(ctx context.Context, cfg config.Config, services Services, deck repository.Deck, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(colorMauve)
	h.Styles.FullKey = h.Styles.FullKey.Foreground(colorMauve)
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		services: services,
		log:      log,
		deck:     deck,
		ctrl:     swipe.NewController(swipe.WithLogger(log)),
		anim:     newAnimator(),
		keys:     newKeyMap(),
		help:     h,
		now:      time.Now,
		tick:     tea.Tick,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadDeck(a.deck)
}

func (a *App) loadDeck(d repository.Deck) tea.Cmd {
	return func() tea.Msg {
		if a.services.Decks == nil {
			return errMsg{fmt.Errorf("deck service not configured")}
		}
		cards, err := a.services.Decks.Load(a.ctx, d.ID)
		if err != nil {
			return errMsg{err}
		}
		return deckLoadedMsg{deck: d, cards: cards}
	}
}

func (a *App) nextDeck() tea.Cmd {
	return func() tea.Msg {
		if a.services.Decks == nil {
			return errMsg{fmt.Errorf("deck service not configured")}
		}
		decks, err := a.services.Decks.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		if len(decks) < 2 {
			return statusMsg("no other decks")
		}
		next := decks[0]
		for i, d := range decks {
			if d.ID == a.deck.ID {
				next = decks[(i+1)%len(decks)]
				break
			}
		}
		cards, err := a.services.Decks.Load(a.ctx, next.ID)
		if err != nil {
			return errMsg{err}
		}
		return deckLoadedMsg{deck: next, cards: cards}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
	case tea.KeyMsg:
		return a, a.handleKey(m)
	case tea.MouseMsg:
		return a, a.handleMouse(m)
	case deckLoadedMsg:
		if err := a.ctrl.Initialize(m.cards); err != nil {
			a.err = err
			return a, nil
		}
		a.deck = m.deck
		a.err = nil
		a.dragging, a.mouse = "", false
		a.anim.clear()
		a.status = fmt.Sprintf("%d cards", len(m.cards))
		a.saveLastDeck()
		return a, a.animate()
	case removalMsg:
		card, ok := a.ctrl.Remove(m.removal)
		if !ok {
			return a, nil
		}
		a.anim.retire(card, m.removal.Direction)
		return a, a.animate()
	case frameMsg:
		a.ticking = false
		for _, id := range a.anim.step(a.now()) {
			a.ctrl.Settle(id)
		}
		return a, a.animate()
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.err = m.error
		a.log.Error("tui.error", "err", m.error)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	a.keys = a.keys.withEmpty(a.ctrl.Empty())
	switch {
	case key.Matches(m, a.keys.Quit):
		return tea.Quit
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(m, a.keys.Deck):
		return a.nextDeck()
	case key.Matches(m, a.keys.Reset):
		return a.reset()
	case key.Matches(m, a.keys.Left):
		return a.nudge(-a.cfg.Input.DragStep)
	case key.Matches(m, a.keys.Right):
		return a.nudge(a.cfg.Input.DragStep)
	case key.Matches(m, a.keys.Release):
		return a.release(0)
	case key.Matches(m, a.keys.Cancel):
		if a.dragging != "" {
			a.ctrl.Handle(swipe.PointerEvent{Kind: swipe.PointerCancel, CardID: a.dragging})
			a.dragging, a.mouse = "", false
		}
		return a.animate()
	case key.Matches(m, a.keys.Like):
		return a.commit(swipe.DirectionRight)
	case key.Matches(m, a.keys.Nope):
		return a.commit(swipe.DirectionLeft)
	}
	return nil
}

func (a *App) handleMouse(m tea.MouseMsg) tea.Cmd {
	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft {
			return nil
		}
		id, ok := a.target()
		if !ok || !a.ctrl.BeginDrag(id) {
			return nil
		}
		a.dragging, a.mouse, a.mouseX = id, true, m.X
	case tea.MouseActionMotion:
		if !a.mouse {
			return nil
		}
		a.ctrl.Handle(swipe.PointerEvent{Kind: swipe.PointerMove, CardID: a.dragging, DeltaX: a.mouseDelta(m.X)})
	case tea.MouseActionRelease:
		if !a.mouse {
			return nil
		}
		return a.release(a.mouseDelta(m.X))
	}
	return nil
}

func (a *App) mouseDelta(x int) float64 {
	d := float64(x-a.mouseX) * a.cfg.Input.UnitsPerCell
	a.mouseX = x
	return d
}

// target is the frontmost card that can still be dragged.
func (a *App) target() (string, bool) {
	cards := a.ctrl.Snapshot().Cards
	for i := len(cards) - 1; i >= 0; i-- {
		if cards[i].Phase != swipe.PhaseCommitted {
			return cards[i].Card.ID, true
		}
	}
	return "", false
}

func (a *App) nudge(dx float64) tea.Cmd {
	if a.dragging == "" {
		id, ok := a.target()
		if !ok {
			return nil
		}
		a.ctrl.Handle(swipe.PointerEvent{Kind: swipe.PointerStart, CardID: id, DeltaX: dx})
		if p, _ := a.ctrl.Phase(id); p != swipe.PhaseDragging {
			return nil
		}
		a.dragging = id
		a.anim.sync(a.ctrl.Snapshot(), a.now())
		return nil
	}
	a.ctrl.Handle(swipe.PointerEvent{Kind: swipe.PointerMove, CardID: a.dragging, DeltaX: dx})
	return nil
}

func (a *App) release(dx float64) tea.Cmd {
	if a.dragging == "" {
		return nil
	}
	id := a.dragging
	a.dragging, a.mouse = "", false
	r, ok := a.ctrl.Handle(swipe.PointerEvent{Kind: swipe.PointerEnd, CardID: id, DeltaX: dx})
	if !ok {
		return a.animate()
	}
	return tea.Batch(a.schedule(r), a.animate())
}

func (a *App) commit(dir swipe.Direction) tea.Cmd {
	id, ok := a.target()
	if !ok {
		return nil
	}
	if a.dragging == id {
		a.ctrl.Handle(swipe.PointerEvent{Kind: swipe.PointerCancel, CardID: id})
		a.dragging, a.mouse = "", false
	}
	r, ok := a.ctrl.Swipe(id, dir)
	if !ok {
		return nil
	}
	return tea.Batch(a.schedule(r), a.animate())
}

func (a *App) reset() tea.Cmd {
	cancelled := a.ctrl.Reset()
	a.dragging, a.mouse = "", false
	a.anim.clear()
	a.status = "stack reset"
	if len(cancelled) > 0 {
		a.log.Debug("tui.reset", "cancelled", len(cancelled))
	}
	return a.animate()
}

// schedule fires the removal after its delay. A reset in the meantime makes
// the removal stale and the controller ignores it.
func (a *App) schedule(r swipe.Removal) tea.Cmd {
	return a.tick(r.Delay, func(time.Time) tea.Msg { return removalMsg{removal: r} })
}

// animate syncs tracks with the controller and keeps the frame tick running
// while anything moves.
func (a *App) animate() tea.Cmd {
	now := a.now()
	a.anim.sync(a.ctrl.Snapshot(), now)
	if a.ticking || !a.anim.busy(now) {
		return nil
	}
	a.ticking = true
	return a.tick(time.Second/time.Duration(a.cfg.UI.FrameRate), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (a *App) saveLastDeck() {
	if a.services.Prefs == nil {
		return
	}
	if err := a.services.Prefs.Save(prefs.Prefs{LastDeck: a.deck.Name}); err != nil {
		a.log.Warn("prefs.save", "err", err)
	}
}

func (a *App) layout() cardLayout {
	return cardLayout{width: a.cfg.UI.CardWidth, height: a.cfg.UI.CardHeight, unitsPerCell: a.cfg.Input.UnitsPerCell}
}

func (a *App) View() string {
	width := a.width
	if width == 0 {
		width = 80
	}
	var b strings.Builder
	title := a.deck.Title
	if title == "" {
		title = a.deck.Name
	}
	snap := a.ctrl.Snapshot()
	b.WriteString(titleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d left", snap.Remaining)))
	b.WriteString("\n\n")

	if snap.Empty && len(a.anim.exiting) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderEmpty(a.deck.EmptyText)))
	} else {
		b.WriteString(a.renderStack(snap, width))
	}
	b.WriteString("\n\n")

	switch {
	case a.err != nil:
		b.WriteString(errorStyle.Render("error: " + a.err.Error()))
	case a.status != "":
		b.WriteString(statusStyle.Render(a.status))
	}
	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys.withEmpty(snap.Empty)))
	return b.String()
}

// renderStack draws the visible window back to front with any finished
// exits on top. Cards further back sit one row lower so their edge peeks
// out under the card in front.
func (a *App) renderStack(snap swipe.Snapshot, width int) string {
	l := a.layout()
	now := a.now()
	c := newCanvas(width, l.height+swipe.WindowSize)
	home := (width - l.width) / 2

	place := func(v swipe.CardView, f swipe.Frame, row int, front bool) {
		block := renderCard(v, f, l, front)
		// scaled cards stay centered on their slot
		col := home + (l.width-lipgloss.Width(block))/2 + l.cells(f.X)
		row += (l.height - lipgloss.Height(block)) / 2
		c.draw(block, col, row, shear(swipe.Rotation(f.X)))
	}
	for i, v := range snap.Cards {
		place(v, a.anim.pose(v, now), len(snap.Cards)-1-i, i == len(snap.Cards)-1)
	}
	for _, e := range a.anim.exiting {
		place(e.view, e.track.at(now), 0, true)
	}
	return c.String()
}

// messages
type deckLoadedMsg struct {
	deck  repository.Deck
	cards []swipe.CardRecord
}

type removalMsg struct {
	removal swipe.Removal
}

type frameMsg time.Time

type statusMsg string

type errMsg struct{ error }
