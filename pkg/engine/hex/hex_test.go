package hex

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recoverArgumentError runs fn and returns the *ArgumentError it panicked with.
func recoverArgumentError(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		var ok bool
		err, ok = r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
	}()
	fn()
	return nil
}

func TestLargeHexagon_CountAndDistance(t *testing.T) {
	for n := 1; n <= 8; n++ {
		seen := make(map[Hex]bool)
		for h := range LargeHexagon(n) {
			require.False(t, seen[h], "duplicate %v for side %d", h, n)
			seen[h] = true
			assert.Less(t, h.Distance(), n, "%v outside side %d", h, n)
		}
		assert.Equal(t, 3*n*n-3*n+1, len(seen), "side %d", n)
		assert.Equal(t, len(seen), CellCount(n), "CellCount(%d)", n)
	}
}

func TestLargeHexagon_RowMajorAndRestartable(t *testing.T) {
	seq := LargeHexagon(5)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, first, second, "sequence must be restartable")
	require.Len(t, first, 61)

	assert.Equal(t, New(0, -4), first[0])
	assert.Equal(t, New(4, -4), first[4])
	assert.Equal(t, New(-4, 4), first[len(first)-5])
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if prev.R == cur.R {
			assert.Less(t, prev.Q, cur.Q, "q must increase within a row")
		} else {
			assert.Less(t, prev.R, cur.R, "r must increase between rows")
		}
	}
}

func TestLargeHexagon_EarlyBreak(t *testing.T) {
	n := 0
	for range LargeHexagon(5) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestLargeHexagon_InvalidSide(t *testing.T) {
	for _, side := range []int{0, -1, -5} {
		err := recoverArgumentError(t, func() { LargeHexagon(side) })
		assert.True(t, errors.Is(err, ErrInvalidArgument), "side %d: %v", side, err)
	}
	assert.Equal(t, 0, CellCount(0))
}

func TestDistance(t *testing.T) {
	tests := []struct {
		h    Hex
		want int
	}{
		{New(0, 0), 0},
		{New(1, 0), 1},
		{New(-1, 1), 1},
		{New(2, -4), 4},
		{New(-3, -1), 4},
		{New(4, 4), 8},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.h.Distance(), "%v", tc.h)
	}
}

func TestArithmetic(t *testing.T) {
	a, b := New(2, -1), New(-3, 4)
	assert.Equal(t, New(-1, 3), a.Add(b))
	assert.Equal(t, New(5, -5), a.Sub(b))
	assert.Equal(t, New(6, -3), a.Scale(3))
	assert.Equal(t, New(0, 0), a.Scale(0))
	assert.Equal(t, 0, a.Q+a.R+a.S())
	assert.Equal(t, "(2, -1)", a.String())
}

func TestNeighbors(t *testing.T) {
	h := New(1, 2)
	n := h.Neighbors()
	for i, d := range AllDirections() {
		assert.Equal(t, h.Add(d.Vector()), n[i])
		assert.Equal(t, 1, n[i].Sub(h).Distance())
	}
}

func TestDirectionVectors(t *testing.T) {
	want := []Hex{New(-1, 0), New(0, -1), New(1, -1), New(1, 0), New(0, 1), New(-1, 1)}
	for i, d := range AllDirections() {
		assert.Equal(t, want[i], d.Vector(), "direction %d", i)
		assert.Equal(t, New(0, 0), d.Vector().Add(d.Opposite().Vector()), "%v opposite", d)
	}
}

func TestDirectionInvalid(t *testing.T) {
	for _, d := range []Direction{-1, 6, 42} {
		assert.False(t, d.IsValid())
		assert.Equal(t, "Unknown", d.String())
		err := recoverArgumentError(t, func() { d.Vector() })
		var argErr *ArgumentError
		require.True(t, errors.As(err, &argErr))
		assert.Equal(t, int(d), argErr.Value)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}
}

func TestRotate_Composition(t *testing.T) {
	for h := range LargeHexagon(4) {
		for k1 := -7; k1 <= 7; k1++ {
			for k2 := -7; k2 <= 7; k2++ {
				sum := ((k1+k2)%6 + 6) % 6
				assert.Equal(t, h.Rotate(sum), h.Rotate(k1).Rotate(k2), "%v k1=%d k2=%d", h, k1, k2)
			}
		}
	}
}

func TestRotate_StepsThroughDirections(t *testing.T) {
	// One 60° turn moves each unit vector onto the next direction.
	for i, d := range AllDirections() {
		next := AllDirections()[(i+1)%DirectionCount]
		assert.Equal(t, next.Vector(), d.Vector().Rotate(1))
	}
	h := New(3, -1)
	assert.Equal(t, h, h.Rotate(6))
	assert.Equal(t, h.Rotate(5), h.Rotate(-1))
	assert.Equal(t, h.Distance(), h.Rotate(2).Distance())
}

func TestMirror(t *testing.T) {
	for h := range LargeHexagon(5) {
		assert.Equal(t, h, h.Mirror(false))
		assert.Equal(t, h, h.Mirror(true).Mirror(true))
		assert.Equal(t, h.Distance(), h.Mirror(true).Distance())
	}
	assert.Equal(t, New(2, -3), New(2, 1).Mirror(true))
}

func TestEdges(t *testing.T) {
	tests := []struct {
		name string
		h    Hex
		want []int
	}{
		{"centre", New(0, 0), nil},
		{"inner", New(1, -2), nil},
		{"top edge", New(1, -4), []int{1}},
		{"corner north", New(0, -4), []int{0, 1}},
		{"corner north east", New(4, -4), []int{1, 2}},
		{"corner south east", New(4, 0), []int{2, 3}},
		{"corner south", New(0, 4), []int{3, 4}},
		{"corner south west", New(-4, 4), []int{4, 5}},
		{"corner north west", New(-4, 0), []int{0, 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slices.Collect(tc.h.Edges(4)))
		})
	}
}

func TestEdges_MatchBorderRing(t *testing.T) {
	for h := range LargeHexagon(5) {
		onBorder := len(slices.Collect(h.Edges(4))) > 0
		assert.Equal(t, h.Distance() == 4, onBorder, "%v", h)
	}
}

func TestDoubledRow(t *testing.T) {
	assert.Equal(t, -2, North.Vector().DoubledRow())
	assert.Equal(t, 2, South.Vector().DoubledRow())
	assert.Equal(t, -1, NorthWest.Vector().DoubledRow())
	assert.Equal(t, 1, SouthEast.Vector().DoubledRow())
}
