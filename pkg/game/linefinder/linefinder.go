// Package linefinder locates the puzzle's solution line: five board cells in
// a straight line whose direction is uniquely explained by how rare its port
// type is on the bomb, or, failing that, an every-other-cell line.
package linefinder

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Timwi/KtaneZoo/pkg/engine/hex"
	"github.com/Timwi/KtaneZoo/pkg/game/edgework"
)

// LineLength is the number of cells on a line.
const LineLength = 5

// maxAmbiguous is how many qualifying types are enough to call a bucket ambiguous.
const maxAmbiguous = 2

// ErrConfigurationDefect means no cell on a fully enumerated board produced a
// line. It indicates a classification or geometry mismatch, not a runtime fluke.
var ErrConfigurationDefect = errors.New("linefinder: no qualifying line")

// Rules is what the finder needs from a ruleset.
type Rules interface {
	DirectionFor(p edgework.PortType) hex.Direction
	MostCommonFirst() bool
}

// Line is a candidate solution line.
type Line struct {
	Start     hex.Hex
	Direction hex.Direction
	Step      int // 1 for the frequency rule, 2 for the fallback rule

	// Port is the type that produced the line; only meaningful if HasPort.
	Port    edgework.PortType
	HasPort bool
}

// Cells returns the five cells of the line in order.
func (l Line) Cells() [LineLength]hex.Hex {
	var cells [LineLength]hex.Hex
	step := l.Direction.Vector().Scale(l.Step)
	for i := range cells {
		cells[i] = l.Start.Add(step.Scale(i))
	}
	return cells
}

// String describes the line for logs.
func (l Line) String() string {
	tag := "fallback"
	if l.HasPort {
		tag = l.Port.String()
	}
	return fmt.Sprintf("%v %v×%d [%s]", l.Start, l.Direction, l.Step, tag)
}

// Find scans every cell of a board with the given side length and returns
// each cell's candidate line in board order. Cells that satisfy neither rule
// contribute nothing. An empty result is ErrConfigurationDefect.
func Find(sideLength int, counts *edgework.ResourceCount, rules Rules) ([]Line, error) {
	order := bucketOrder(counts.Len(), rules.MostCommonFirst())

	var lines []Line
	for start := range hex.LargeHexagon(sideLength) {
		if line, ok := frequencyLine(start, sideLength, counts, rules, order); ok {
			lines = append(lines, line)
			continue
		}
		if line, ok := fallbackLine(start, sideLength); ok {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w on a side-%d board with %d buckets", ErrConfigurationDefect, sideLength, counts.Len())
	}
	return lines, nil
}

// Pick chooses one line uniformly at random.
func Pick(lines []Line, rng *rand.Rand) Line {
	return lines[rng.Intn(len(lines))]
}

// Generate finds all candidate lines and picks one.
func Generate(sideLength int, counts *edgework.ResourceCount, rules Rules, rng *rand.Rand) (Line, error) {
	lines, err := Find(sideLength, counts, rules)
	if err != nil {
		return Line{}, err
	}
	return Pick(lines, rng), nil
}

// bucketOrder lists bucket indexes from most common down, or least common up.
func bucketOrder(n int, mostCommonFirst bool) []int {
	order := make([]int, n)
	for i := range order {
		if mostCommonFirst {
			order[i] = n - 1 - i
		} else {
			order[i] = i
		}
	}
	return order
}

// frequencyLine applies the bucket rule at start: the first bucket (in
// order) in which exactly one member type's direction gives an in-board line
// wins. Buckets with zero or several such types are skipped.
func frequencyLine(start hex.Hex, sideLength int, counts *edgework.ResourceCount, rules Rules, order []int) (Line, bool) {
	for _, bucket := range order {
		var found []edgework.PortType
		for _, port := range counts.Members(bucket) {
			if fits(start, rules.DirectionFor(port), 1, sideLength) {
				found = append(found, port)
				if len(found) == maxAmbiguous {
					break
				}
			}
		}
		if len(found) == 1 {
			return Line{
				Start:     start,
				Direction: rules.DirectionFor(found[0]),
				Step:      1,
				Port:      found[0],
				HasPort:   true,
			}, true
		}
	}
	return Line{}, false
}

// fallbackLine returns the first direction (0..5) whose every-other-cell line
// from start stays on the board.
func fallbackLine(start hex.Hex, sideLength int) (Line, bool) {
	for _, dir := range hex.AllDirections() {
		if fits(start, dir, 2, sideLength) {
			return Line{Start: start, Direction: dir, Step: 2}, true
		}
	}
	return Line{}, false
}

// fits reports whether all cells of the line stay on the board.
func fits(start hex.Hex, dir hex.Direction, step, sideLength int) bool {
	v := dir.Vector().Scale(step)
	for i := range LineLength {
		if !start.Add(v.Scale(i)).Within(sideLength) {
			return false
		}
	}
	return true
}
