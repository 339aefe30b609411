// Package hex provides axial hex-grid coordinates and the few geometry
// operations the puzzle needs: stepping, rotation, mirroring, border tests and
// enumeration of a large hexagon.
package hex

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidArgument is wrapped by every geometry argument error.
var ErrInvalidArgument = errors.New("hex: invalid argument")

// ArgumentError reports a malformed direction index or hexagon size.
type ArgumentError struct {
	Name   string
	Value  int
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("hex: invalid %s %d: %s", e.Name, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// Hex is a position on the hex grid in axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type Hex struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// New returns the hex at (q, r).
func New(q, r int) Hex {
	return Hex{Q: q, R: r}
}

// S returns the implicit third cube coordinate.
func (h Hex) S() int {
	return -h.Q - h.R
}

// Add returns h + o.
func (h Hex) Add(o Hex) Hex {
	return Hex{Q: h.Q + o.Q, R: h.R + o.R}
}

// Sub returns h - o.
func (h Hex) Sub(o Hex) Hex {
	return Hex{Q: h.Q - o.Q, R: h.R - o.R}
}

// Scale returns h multiplied by k.
func (h Hex) Scale(k int) Hex {
	return Hex{Q: h.Q * k, R: h.R * k}
}

// Neighbors returns the six adjacent coordinates in direction order.
func (h Hex) Neighbors() [DirectionCount]Hex {
	var result [DirectionCount]Hex
	for i, dir := range directionVectors {
		result[i] = h.Add(dir)
	}
	return result
}

// Distance returns the hex distance from the origin.
func (h Hex) Distance() int {
	return max(abs(h.Q), abs(h.R), abs(h.S()))
}

// Within reports whether h lies inside a hexagon of the given side length.
func (h Hex) Within(sideLength int) bool {
	return h.Distance() < sideLength
}

// Rotate rotates h around the origin by 60°·k. Any k is accepted and
// normalised into 0..5.
func (h Hex) Rotate(k int) Hex {
	switch ((k % 6) + 6) % 6 {
	case 1:
		return Hex{Q: -h.R, R: h.Q + h.R}
	case 2:
		return Hex{Q: -h.Q - h.R, R: h.Q}
	case 3:
		return Hex{Q: -h.Q, R: -h.R}
	case 4:
		return Hex{Q: h.R, R: -h.Q - h.R}
	case 5:
		return Hex{Q: h.Q + h.R, R: -h.Q}
	default:
		return h
	}
}

// Mirror reflects h across the q axis when doMirror is set.
func (h Hex) Mirror(doMirror bool) Hex {
	if !doMirror {
		return h
	}
	return Hex{Q: h.Q, R: -h.R - h.Q}
}

// Edges yields every border index (0–5) that h touches on a hexagon whose
// outermost ring is at distance size. Edge i is the border lying in
// Direction i. A corner touches two edges.
func (h Hex) Edges(size int) iter.Seq[int] {
	return func(yield func(int) bool) {
		// No else: several conditions can hold at once.
		checks := [DirectionCount]bool{
			h.Q+h.R == -size,
			h.R == -size,
			h.Q == size,
			h.Q+h.R == size,
			h.R == size,
			h.Q == -size,
		}
		for edge, on := range checks {
			if on && !yield(edge) {
				return
			}
		}
	}
}

// DoubledRow returns q + 2r, the text row of h in a flat-top layout where
// each column is offset by half a cell.
func (h Hex) DoubledRow() int {
	return h.Q + 2*h.R
}

// String returns "(q, r)".
func (h Hex) String() string {
	return fmt.Sprintf("(%d, %d)", h.Q, h.R)
}

// LargeHexagon yields every coordinate with distance < sideLength, r outer
// and q inner. The sequence can be ranged over any number of times.
// A side length below 1 panics with an *ArgumentError.
func LargeHexagon(sideLength int) iter.Seq[Hex] {
	if sideLength < 1 {
		panic(&ArgumentError{Name: "side length", Value: sideLength, Reason: "must be at least 1"})
	}
	return func(yield func(Hex) bool) {
		for r := -sideLength + 1; r < sideLength; r++ {
			for q := -sideLength + 1; q < sideLength; q++ {
				h := Hex{Q: q, R: r}
				if h.Within(sideLength) && !yield(h) {
					return
				}
			}
		}
	}
}

// CellCount returns the number of cells in a hexagon of the given side length.
func CellCount(sideLength int) int {
	if sideLength < 1 {
		return 0
	}
	return 3*sideLength*sideLength - 3*sideLength + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
