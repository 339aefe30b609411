package hex

// Direction is one of the six hex directions, indexed 0–5.
// Names assume the flat-top layout used by the renderer (y grows downwards).
type Direction int

// Direction constants
const (
	NorthWest Direction = iota
	North
	NorthEast
	SouthEast
	South
	SouthWest
)

// DirectionCount is the number of hex directions.
const DirectionCount = 6

var directionVectors = [DirectionCount]Hex{
	{Q: -1, R: 0},
	{Q: 0, R: -1},
	{Q: 1, R: -1},
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
}

// AllDirections returns all valid directions in index order
func AllDirections() []Direction {
	return []Direction{NorthWest, North, NorthEast, SouthEast, South, SouthWest}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case NorthWest:
		return "NorthWest"
	case North:
		return "North"
	case NorthEast:
		return "NorthEast"
	case SouthEast:
		return "SouthEast"
	case South:
		return "South"
	case SouthWest:
		return "SouthWest"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is within 0–5
func (d Direction) IsValid() bool {
	return d >= NorthWest && d <= SouthWest
}

// Opposite returns the opposite direction.
// It panics on an invalid direction.
func (d Direction) Opposite() Direction {
	mustBeValid(d)
	return (d + 3) % DirectionCount
}

// Vector returns the unit step for this direction.
// An out-of-range direction is a programming error and panics with an *ArgumentError.
func (d Direction) Vector() Hex {
	mustBeValid(d)
	return directionVectors[d]
}

func mustBeValid(d Direction) {
	if !d.IsValid() {
		panic(&ArgumentError{Name: "direction", Value: int(d), Reason: "must be between 0 and 5"})
	}
}
