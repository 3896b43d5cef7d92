package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/swipedeck/internal/swipe"
)

func TestSplice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		base  string
		over  string
		x     int
		width int
		want  string
	}{
		{"inside", "..........", "ab", 3, 10, "...ab....."},
		{"clipped left", ".....", "abc", -1, 5, "bc..."},
		{"clipped right", ".....", "abc", 4, 5, "....a"},
		{"off screen", ".....", "abc", 5, 5, "....."},
		{"fully left", ".....", "abc", -3, 5, "....."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ansi.Strip(splice(tc.base, tc.over, tc.x, tc.width)))
		})
	}
}

func TestCanvasLaterDrawsCover(t *testing.T) {
	t.Parallel()

	c := newCanvas(6, 2)
	c.draw("aaaa\naaaa", 0, 0, nil)
	c.draw("bb", 1, 1, nil)
	lines := strings.Split(ansi.Strip(c.String()), "\n")
	require.Equal(t, []string{"aaaa  ", "abba  "}, lines)
}

func TestShear(t *testing.T) {
	t.Parallel()

	require.Nil(t, shear(0))
	s := shear(30)
	require.Equal(t, 2, s(0, 5))
	require.Equal(t, 0, s(2, 5))
	require.Equal(t, -2, s(4, 5))
	require.Equal(t, 2, shear(-30)(4, 5))
}

func TestFade(t *testing.T) {
	t.Parallel()

	require.Equal(t, colorLike, fade(colorLike, 1))
	require.Equal(t, colorLike, fade(colorLike, 3))
	require.Equal(t, colorBase, fade(colorLike, 0))
	require.NotEqual(t, colorLike, fade(colorLike, 0.5))
}

func TestRenderCardSize(t *testing.T) {
	t.Parallel()

	l := cardLayout{width: 36, height: 14, unitsPerCell: 8}
	v := swipe.CardView{Card: swipe.CardRecord{ID: "a", Payload: swipe.Payload{
		Name:        "Tokyo",
		Description: "Japan",
		ImageURL:    "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf",
	}}}
	out := renderCard(v, swipe.Rest, l, true)
	require.Equal(t, 36, lipgloss.Width(out))
	require.Equal(t, 14, lipgloss.Height(out))
	require.Contains(t, ansi.Strip(out), "Tokyo")

	small := renderCard(v, swipe.Frame{Opacity: 1, Scale: swipe.EnterScale}, l, true)
	require.Less(t, lipgloss.Width(small), 36)

	v.Phase = swipe.PhaseDragging
	v.Signals = swipe.SignalsAt(120)
	require.Contains(t, ansi.Strip(renderCard(v, swipe.Rest, l, true)), "LIKE")
}

func TestCellsRoundsOffset(t *testing.T) {
	t.Parallel()

	l := cardLayout{unitsPerCell: 8}
	require.Equal(t, 0, l.cells(3))
	require.Equal(t, 13, l.cells(100))
	require.Equal(t, -125, l.cells(-swipe.ExitDistance))
}
