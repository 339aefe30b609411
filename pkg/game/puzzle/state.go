package puzzle

// State is the door state of one puzzle session
type State int

const (
	Closed  State = iota // Door shut, waiting for interaction
	Open                 // Selection shown, accepting presses until the deadline
	Closing              // Failed opening; door is shutting
	Solved               // Terminal
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case Closing:
		return "Closing"
	case Solved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// IsTerminal returns true once the session can no longer change
func (s State) IsTerminal() bool {
	return s == Solved
}

// Outcome is what a transition reports to the host
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeStrike
	OutcomePass
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeStrike:
		return "strike"
	case OutcomePass:
		return "pass"
	default:
		return "none"
	}
}

// StrikeReason tells a mismatch from a timeout
type StrikeReason int

const (
	ReasonNone StrikeReason = iota
	ReasonMismatch
	ReasonTimeout
)

// String returns the string representation of a strike reason
func (r StrikeReason) String() string {
	switch r {
	case ReasonMismatch:
		return "mismatch"
	case ReasonTimeout:
		return "timeout"
	default:
		return ""
	}
}

// Event is the result of a transition. Outcome is OutcomeNone for transitions
// that report nothing.
type Event struct {
	SessionID int
	Outcome   Outcome
	Reason    StrikeReason
	Pressed   string // label pressed, for mismatches and the final pass press
	Expected  string // label that was expected, for mismatches and timeouts
}
