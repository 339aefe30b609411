package linefinder

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timwi/KtaneZoo/pkg/engine/hex"
	"github.com/Timwi/KtaneZoo/pkg/game/edgework"
	"github.com/Timwi/KtaneZoo/pkg/game/ruleset"
)

// identityRules maps port type i to direction i.
type identityRules struct {
	mostCommonFirst bool
}

func (r identityRules) DirectionFor(p edgework.PortType) hex.Direction { return hex.Direction(p) }
func (r identityRules) MostCommonFirst() bool                          { return r.mostCommonFirst }

// lineAt returns the candidate starting at h.
func lineAt(lines []Line, h hex.Hex) (Line, bool) {
	for _, l := range lines {
		if l.Start == h {
			return l, true
		}
	}
	return Line{}, false
}

// oneMissing is edgework where DVI is on no plate and every other type is on one.
func oneMissing() *edgework.ResourceCount {
	return edgework.New(edgework.NewPlate(edgework.Parallel, edgework.PS2, edgework.RJ45, edgework.Serial, edgework.StereoRCA)).Classify()
}

func TestLineCells(t *testing.T) {
	l := Line{Start: hex.New(4, -4), Direction: hex.SouthWest, Step: 2}
	assert.Equal(t, [LineLength]hex.Hex{
		hex.New(4, -4), hex.New(2, -2), hex.New(0, 0), hex.New(-2, 2), hex.New(-4, 4),
	}, l.Cells())

	l = Line{Start: hex.New(2, 2), Direction: hex.North, Step: 1}
	assert.Equal(t, hex.New(2, -2), l.Cells()[4])
}

func TestBucketOrder(t *testing.T) {
	assert.Equal(t, []int{3, 2, 1, 0}, bucketOrder(4, true))
	assert.Equal(t, []int{0, 1, 2, 3}, bucketOrder(4, false))
	assert.Equal(t, []int{0}, bucketOrder(1, true))
}

func TestFind_UniqueTypeInMostCommonBucket(t *testing.T) {
	lines, err := Find(ruleset.SideLength, oneMissing(), identityRules{mostCommonFirst: true})
	require.NoError(t, err)

	// From (2,2) only North (Parallel) stays on the board among bucket 1.
	l, ok := lineAt(lines, hex.New(2, 2))
	require.True(t, ok)
	assert.Equal(t, Line{Start: hex.New(2, 2), Direction: hex.North, Step: 1, Port: edgework.Parallel, HasPort: true}, l)

	// From (4,-2) bucket 1 yields only SouthWest (StereoRCA).
	l, ok = lineAt(lines, hex.New(4, -2))
	require.True(t, ok)
	assert.Equal(t, edgework.StereoRCA, l.Port)
	assert.Equal(t, hex.SouthWest, l.Direction)
}

func TestFind_AmbiguousBucketFallsToNextBucket(t *testing.T) {
	lines, err := Find(ruleset.SideLength, oneMissing(), identityRules{mostCommonFirst: true})
	require.NoError(t, err)

	// The centre fits all five bucket-1 directions, so bucket 0 (DVI) decides.
	l, ok := lineAt(lines, hex.New(0, 0))
	require.True(t, ok)
	assert.True(t, l.HasPort)
	assert.Equal(t, edgework.DVI, l.Port)
	assert.Equal(t, hex.NorthWest, l.Direction)

	// Two bucket-1 types fit at (4,-4); DVI in bucket 0 is unique.
	l, ok = lineAt(lines, hex.New(4, -4))
	require.True(t, ok)
	assert.Equal(t, edgework.DVI, l.Port)

	// (3,-4): bucket 1 ambiguous, DVI does not fit, no fallback either.
	_, ok = lineAt(lines, hex.New(3, -4))
	assert.False(t, ok)
}

func TestFind_LeastCommonFirst(t *testing.T) {
	lines, err := Find(ruleset.SideLength, oneMissing(), identityRules{mostCommonFirst: false})
	require.NoError(t, err)

	// Bucket 0 is scanned first now, and DVI fits at (2,2).
	l, ok := lineAt(lines, hex.New(2, 2))
	require.True(t, ok)
	assert.Equal(t, edgework.DVI, l.Port)
	assert.Equal(t, hex.NorthWest, l.Direction)
}

func TestFind_FallbackRule(t *testing.T) {
	// DVI alone in bucket 1, everything else in bucket 0.
	counts := edgework.New(edgework.NewPlate(edgework.DVI)).Classify()
	lines, err := Find(ruleset.SideLength, counts, identityRules{mostCommonFirst: true})
	require.NoError(t, err)

	// At (-4,0) DVI's direction leaves the board and three bucket-0 types
	// fit, so the first every-other-cell direction wins.
	l, ok := lineAt(lines, hex.New(-4, 0))
	require.True(t, ok)
	assert.Equal(t, Line{Start: hex.New(-4, 0), Direction: hex.SouthEast, Step: 2}, l)
	assert.False(t, l.HasPort)
}

func TestFind_FallbackPicksFirstDirection(t *testing.T) {
	// No plates: all six types share bucket 0, so every corner is ambiguous.
	counts := edgework.New().Classify()
	lines, err := Find(ruleset.SideLength, counts, identityRules{})
	require.NoError(t, err)

	l, ok := lineAt(lines, hex.New(4, -4))
	require.True(t, ok)
	assert.Equal(t, Line{Start: hex.New(4, -4), Direction: hex.SouthWest, Step: 2}, l)

	// The centre is ambiguous and too far from any edge for the fallback.
	_, ok = lineAt(lines, hex.New(0, 0))
	assert.False(t, ok)
}

func TestFind_AllLinesOnBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for seed := int64(0); seed < 200; seed++ {
		rules := ruleset.Generate(seed)
		counts := randomEdgework(rng).Classify()

		lines, err := Find(ruleset.SideLength, counts, rules)
		require.NoError(t, err, "seed %d", seed)
		require.NotEmpty(t, lines)

		seen := make(map[hex.Hex]bool)
		for _, l := range lines {
			assert.False(t, seen[l.Start], "two candidates start at %v", l.Start)
			seen[l.Start] = true
			for _, c := range l.Cells() {
				assert.True(t, c.Within(ruleset.SideLength), "seed %d: %v leaves the board at %v", seed, l, c)
			}
			if l.HasPort {
				assert.Equal(t, 1, l.Step)
				assert.Equal(t, rules.DirectionFor(l.Port), l.Direction)
			} else {
				assert.Equal(t, 2, l.Step)
			}
		}
	}
}

// platesFor builds three plates on which port type i appears counts[i] times.
func platesFor(counts [edgework.PortTypeCount]int) edgework.Edgework {
	plates := make([]edgework.Plate, 3)
	for j := range plates {
		plates[j] = edgework.NewPlate()
		for p, n := range counts {
			if n > j {
				plates[j].Put(edgework.PortType(p))
			}
		}
	}
	return edgework.New(plates...)
}

func TestFind_EveryBucketPatternHasCandidates(t *testing.T) {
	var corners []hex.Hex
	for _, d := range hex.AllDirections() {
		corners = append(corners, d.Vector().Scale(ruleset.SideLength-1))
	}

	rules := []Rules{identityRules{mostCommonFirst: true}, identityRules{mostCommonFirst: false}}
	for seed := int64(0); seed < 4; seed++ {
		rules = append(rules, ruleset.Generate(seed))
	}

	// Every way of spreading six types over zero to three plates.
	patterns := 1
	for range edgework.PortTypeCount {
		patterns *= 4
	}
	for code := range patterns {
		var counts [edgework.PortTypeCount]int
		for i, c := 0, code; i < edgework.PortTypeCount; i, c = i+1, c/4 {
			counts[i] = c % 4
		}
		rc := platesFor(counts).Classify()

		for _, r := range rules {
			lines, err := Find(ruleset.SideLength, rc, r)
			require.NoError(t, err, "counts %v", counts)
			require.NotEmpty(t, lines, "counts %v", counts)
			for _, c := range corners {
				_, ok := lineAt(lines, c)
				require.True(t, ok, "counts %v: corner %v has no line", counts, c)
			}
		}
	}
}

func TestFind_EmptyBoardIsConfigurationDefect(t *testing.T) {
	// A single-cell board has no room for a line.
	_, err := Find(1, edgework.New().Classify(), identityRules{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigurationDefect))
}

func TestGenerate_PickIsFromCandidates(t *testing.T) {
	rules := ruleset.Generate(42)
	counts := oneMissing()
	lines, err := Find(ruleset.SideLength, counts, rules)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	picked := make(map[hex.Hex]bool)
	for range 200 {
		l, err := Generate(ruleset.SideLength, counts, rules, rng)
		require.NoError(t, err)
		assert.Contains(t, lines, l)
		picked[l.Start] = true
	}
	if len(lines) > 1 {
		assert.Greater(t, len(picked), 1, "picker never varied")
	}
}

func TestLineString(t *testing.T) {
	l := Line{Start: hex.New(0, 0), Direction: hex.North, Step: 1, Port: edgework.PS2, HasPort: true}
	assert.Equal(t, "(0, 0) North×1 [PS2]", l.String())
	l = Line{Start: hex.New(4, -4), Direction: hex.SouthWest, Step: 2}
	assert.Equal(t, "(4, -4) SouthWest×2 [fallback]", l.String())
}

func randomEdgework(rng *rand.Rand) edgework.Edgework {
	plates := make([]edgework.Plate, rng.Intn(6))
	for i := range plates {
		plate := edgework.NewPlate()
		for _, p := range edgework.AllPortTypes() {
			if rng.Intn(3) == 0 {
				plate.Put(p)
			}
		}
		plates[i] = plate
	}
	return edgework.New(plates...)
}
