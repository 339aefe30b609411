// Package edgework models the port plates on the outside of the bomb and
// classifies port types by how many plates carry them.
package edgework

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/zyedidia/generic/mapset"
)

// PortType represents one of the six port kinds a plate can carry
type PortType int

const (
	DVI PortType = iota
	Parallel
	PS2
	RJ45
	Serial
	StereoRCA
)

// PortTypeCount is the number of port types.
const PortTypeCount = 6

// ErrUnknownPort is returned when a port name cannot be parsed.
var ErrUnknownPort = errors.New("unknown port type")

// AllPortTypes returns every port type in declaration order
func AllPortTypes() []PortType {
	return []PortType{DVI, Parallel, PS2, RJ45, Serial, StereoRCA}
}

// String returns the name used by the bomb-info widget query
func (p PortType) String() string {
	switch p {
	case DVI:
		return "DVI"
	case Parallel:
		return "Parallel"
	case PS2:
		return "PS2"
	case RJ45:
		return "RJ45"
	case Serial:
		return "Serial"
	case StereoRCA:
		return "StereoRCA"
	default:
		return fmt.Sprintf("PortType(%d)", int(p))
	}
}

// IsValid returns true for the six known port types
func (p PortType) IsValid() bool {
	return p >= DVI && p <= StereoRCA
}

// ParsePortType parses a port name, ignoring case, spaces, dashes and slashes
// ("stereo rca", "PS/2", "rj-45").
func ParsePortType(s string) (PortType, error) {
	key := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '/' || r == '_' {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	for _, p := range AllPortTypes() {
		if strings.ToLower(p.String()) == key {
			return p, nil
		}
	}
	if key == "rca" {
		return StereoRCA, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPort, s)
}

// Plate is the set of port types present on one port plate.
type Plate = mapset.Set[PortType]

// NewPlate creates a plate carrying the given ports.
func NewPlate(ports ...PortType) Plate {
	plate := mapset.New[PortType]()
	for _, p := range ports {
		plate.Put(p)
	}
	return plate
}

// Edgework is the ordered list of port plates on a bomb.
type Edgework struct {
	Plates []Plate
}

// New returns edgework with the given plates.
func New(plates ...Plate) Edgework {
	return Edgework{Plates: plates}
}

// PlateCount returns the number of port plates, including empty ones
func (e Edgework) PlateCount() int {
	return len(e.Plates)
}

// PortCount returns how many plates carry the given port type
func (e Edgework) PortCount(p PortType) int {
	n := 0
	for _, plate := range e.Plates {
		if plate.Has(p) {
			n++
		}
	}
	return n
}

// IsPortPresent returns true if any plate carries the given port type
func (e Edgework) IsPortPresent(p PortType) bool {
	return e.PortCount(p) > 0
}

// Classify buckets the full set of port types by plate count.
func (e Edgework) Classify() *ResourceCount {
	return Classify(e.Plates, AllPortTypes())
}

// String returns the compact form accepted by ParseCompact.
func (e Edgework) String() string {
	plates := make([]string, len(e.Plates))
	for i, plate := range e.Plates {
		var names []string
		for _, p := range AllPortTypes() {
			if plate.Has(p) {
				names = append(names, p.String())
			}
		}
		plates[i] = strings.Join(names, ",")
		if len(names) == 0 {
			plates[i] = emptyPlate
		}
	}
	return strings.Join(plates, ";")
}
