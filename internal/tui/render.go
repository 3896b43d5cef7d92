package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/swipedeck/internal/swipe"
)

// terminal cells are roughly twice as tall as they are wide
const cellAspect = 2.0

type cardLayout struct {
	width, height int
	unitsPerCell  float64
}

// cells converts an engine x offset to terminal columns.
func (l cardLayout) cells(x float64) int {
	return int(math.Round(x / l.unitsPerCell))
}

// shear approximates a rotation by sliding each row sideways. Positive
// degrees lean the top of the card to the right.
func shear(deg float64) func(line, height int) int {
	if deg == 0 {
		return nil
	}
	k := math.Tan(deg*math.Pi/180) * cellAspect
	return func(line, height int) int {
		mid := float64(height-1) / 2
		return int(math.Round((mid - float64(line)) * k))
	}
}

// renderCard draws one card at the given pose. Overlay labels fade with the
// card itself.
func renderCard(v swipe.CardView, f swipe.Frame, l cardLayout, front bool) string {
	w := max(12, int(math.Round(float64(l.width)*f.Scale)))
	h := max(5, int(math.Round(float64(l.height)*f.Scale)))
	inner := w - 4

	sig := v.Signals
	if v.Phase == swipe.PhaseCommitted {
		// committed cards keep the label of the side they left through
		switch v.Direction {
		case swipe.DirectionRight:
			sig.LikeOpacity, sig.NopeOpacity = 1, 0
		case swipe.DirectionLeft:
			sig.LikeOpacity, sig.NopeOpacity = 0, 1
		}
	}

	like := lipgloss.NewStyle().Bold(true).
		Foreground(fade(colorLike, sig.LikeOpacity*f.Opacity)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(fade(colorLike, sig.LikeOpacity*f.Opacity)).
		Render("LIKE")
	nope := lipgloss.NewStyle().Bold(true).
		Foreground(fade(colorNope, sig.NopeOpacity*f.Opacity)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(fade(colorNope, sig.NopeOpacity*f.Opacity)).
		Render("NOPE")
	labels := lipgloss.JoinHorizontal(lipgloss.Top,
		like,
		strings.Repeat(" ", max(0, inner-lipgloss.Width(like)-lipgloss.Width(nope))),
		nope,
	)
	if sig.LikeOpacity == 0 && sig.NopeOpacity == 0 {
		labels = strings.Repeat("\n", lipgloss.Height(like)-1)
	}

	text := fade(colorText, f.Opacity)
	name := lipgloss.NewStyle().Bold(true).Foreground(text).
		Width(inner).Align(lipgloss.Center).
		Render(ansi.Truncate(v.Card.Payload.Name, inner, "…"))
	desc := lipgloss.NewStyle().Foreground(fade(colorSubtext0, f.Opacity)).
		Width(inner).Align(lipgloss.Center).
		Render(ansi.Truncate(v.Card.Payload.Description, inner, "…"))

	var footer []string
	if url := v.Card.Payload.ImageURL; url != "" {
		footer = append(footer, lipgloss.NewStyle().Faint(true).Foreground(fade(colorMuted, f.Opacity)).
			Render(ansi.Truncate(url, inner, "…")))
	}
	if v.Phase == swipe.PhaseDragging {
		footer = append(footer, lipgloss.NewStyle().Foreground(fade(colorTeal, f.Opacity)).
			Render(fmt.Sprintf("%+.0f  %+.0f°", sig.OffsetX, sig.Rotation)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, labels, "", name, desc)
	bodyHeight := h - 2
	gap := bodyHeight - lipgloss.Height(body) - len(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	if len(footer) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, body, strings.Join(footer, "\n"))
	}

	border := colorSurface1
	if front || v.Phase != swipe.PhaseIdle {
		border = colorBorder
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fade(border, f.Opacity)).
		Background(colorSurface0).
		Padding(0, 1).
		Width(w - 2).
		Height(bodyHeight).
		MaxHeight(h).
		Render(body)
}

// renderEmpty is shown once every card has been dismissed.
func renderEmpty(text string) string {
	if text == "" {
		text = "No more cards!"
	}
	return emptyStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		text,
		"",
		"press "+resetKeyStyle.Render("r")+" to reset stack",
	))
}
