package swipe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		offset float64
		want   Direction
	}{
		{"rest", 0, DirectionNone},
		{"small right", 40, DirectionNone},
		{"exactly right threshold", 100, DirectionNone},
		{"exactly left threshold", -100, DirectionNone},
		{"just past right", 100.01, DirectionRight},
		{"just past left", -100.01, DirectionLeft},
		{"far right", 900, DirectionRight},
		{"far left", -900, DirectionLeft},
		{"nan", math.NaN(), DirectionNone},
		{"positive inf", math.Inf(1), DirectionNone},
		{"negative inf", math.Inf(-1), DirectionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Decide(tc.offset))
		})
	}
}

func TestDecideSnapsBackInsideThreshold(t *testing.T) {
	t.Parallel()
	for x := -CommitThreshold; x <= CommitThreshold; x += 0.5 {
		require.Equal(t, DirectionNone, Decide(x), "offset %v", x)
	}
}

func TestDecideIsIdempotent(t *testing.T) {
	t.Parallel()
	for _, x := range []float64{-250, -101, 0, 99, 101, 250} {
		require.Equal(t, Decide(x), Decide(x))
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()
	require.Equal(t, DirectionLeft, ParseDirection("left"))
	require.Equal(t, DirectionLeft, ParseDirection("nope"))
	require.Equal(t, DirectionRight, ParseDirection("right"))
	require.Equal(t, DirectionRight, ParseDirection("like"))
	require.Equal(t, DirectionRight, ParseDirection(" LIKE "))
	require.Equal(t, DirectionNone, ParseDirection("up"))
	require.Equal(t, "right", DirectionRight.String())
	require.Equal(t, -1.0, DirectionLeft.Sign())
	require.Equal(t, 0.0, DirectionNone.Sign())
}
