// Package ruleset derives everything a seed controls: the animal on each board
// cell, the animals on the single-axis doors, which port type each hex
// direction stands for, and the bucket search order.
package ruleset

import (
	"maps"
	"math/rand"
	"slices"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/Timwi/KtaneZoo/pkg/engine/hex"
	"github.com/Timwi/KtaneZoo/pkg/game/edgework"
)

// SideLength is the side length of the board hexagon.
const SideLength = 5

// AuxSize is the number of single-axis door labels per axis.
const AuxSize = 2*SideLength - 1

// Ruleset is the immutable outcome of one seed.
type Ruleset struct {
	seed int64

	cells   map[hex.Hex]string
	byLabel map[string]hex.Hex
	labels  []string // sorted cell labels

	qLabels [AuxSize]string
	rLabels [AuxSize]string

	ports      [hex.DirectionCount]edgework.PortType
	directions [edgework.PortTypeCount]hex.Direction

	mostCommonFirst bool
}

// Generate derives a ruleset from seed. The same seed always produces the
// same ruleset. Draws happen in a fixed order: cell pool, q pool, r pool,
// port permutation, then the order flag.
func Generate(seed int64) *Ruleset {
	rng := rand.New(rand.NewSource(seed))

	cellPool := slices.Clone(cellAnimals)
	shuffle(rng, cellPool)
	qPool := slices.Clone(qAnimals)
	shuffle(rng, qPool)
	rPool := slices.Clone(rAnimals)
	shuffle(rng, rPool)
	ports := edgework.AllPortTypes()
	shuffle(rng, ports)

	rs := &Ruleset{
		seed:            seed,
		cells:           make(map[hex.Hex]string, hex.CellCount(SideLength)),
		byLabel:         make(map[string]hex.Hex, hex.CellCount(SideLength)),
		mostCommonFirst: rng.Intn(2) == 0,
	}

	i := 0
	for h := range hex.LargeHexagon(SideLength) {
		rs.cells[h] = cellPool[i]
		rs.byLabel[cellPool[i]] = h
		i++
	}
	rs.labels = slices.Sorted(maps.Keys(rs.byLabel))

	copy(rs.qLabels[:], qPool)
	copy(rs.rLabels[:], rPool)

	for dir, port := range ports {
		rs.ports[dir] = port
		rs.directions[port] = hex.Direction(dir)
	}
	return rs
}

// shuffle is a Fisher–Yates shuffle driven by rng.
func shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Seed returns the seed this ruleset was generated from
func (rs *Ruleset) Seed() int64 {
	return rs.seed
}

// SideLength returns the board side length
func (rs *Ruleset) SideLength() int {
	return SideLength
}

// CellLabel returns the animal on cell h
func (rs *Ruleset) CellLabel(h hex.Hex) (string, bool) {
	label, ok := rs.cells[h]
	return label, ok
}

// CellAt returns the cell carrying the given animal
func (rs *Ruleset) CellAt(label string) (hex.Hex, bool) {
	h, ok := rs.byLabel[label]
	return h, ok
}

// Labels returns all cell labels in alphabetical order
func (rs *Ruleset) Labels() []string {
	return slices.Clone(rs.labels)
}

// QLabel returns the door label for column q
func (rs *Ruleset) QLabel(q int) (string, bool) {
	return auxLabel(rs.qLabels, q)
}

// RLabel returns the door label for row r
func (rs *Ruleset) RLabel(r int) (string, bool) {
	return auxLabel(rs.rLabels, r)
}

func auxLabel(labels [AuxSize]string, coord int) (string, bool) {
	i := coord + SideLength - 1
	if i < 0 || i >= AuxSize {
		return "", false
	}
	return labels[i], true
}

// QLabels returns the column door labels indexed by q+SideLength-1
func (rs *Ruleset) QLabels() []string {
	return slices.Clone(rs.qLabels[:])
}

// RLabels returns the row door labels indexed by r+SideLength-1
func (rs *Ruleset) RLabels() []string {
	return slices.Clone(rs.rLabels[:])
}

// DirectionFor returns the hex direction assigned to a port type
func (rs *Ruleset) DirectionFor(p edgework.PortType) hex.Direction {
	return rs.directions[p]
}

// PortFor returns the port type assigned to a hex direction
func (rs *Ruleset) PortFor(d hex.Direction) edgework.PortType {
	return rs.ports[d]
}

// MostCommonFirst reports whether the line search scans the most common
// bucket first rather than the least common.
func (rs *Ruleset) MostCommonFirst() bool {
	return rs.mostCommonFirst
}

// Validate checks that the three label sets are pairwise disjoint and that
// every board cell carries exactly one label.
func (rs *Ruleset) Validate() bool {
	seen := mapset.New[string]()
	add := func(label string) bool {
		key := strings.ToLower(label)
		if label == "" || seen.Has(key) {
			return false
		}
		seen.Put(key)
		return true
	}
	for h := range hex.LargeHexagon(SideLength) {
		label, ok := rs.cells[h]
		if !ok || !add(label) {
			return false
		}
	}
	for _, label := range rs.qLabels {
		if !add(label) {
			return false
		}
	}
	for _, label := range rs.rLabels {
		if !add(label) {
			return false
		}
	}
	return len(rs.cells) == hex.CellCount(SideLength)
}
