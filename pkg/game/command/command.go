// Package command turns typed player commands into puzzle interactions.
package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/Timwi/KtaneZoo/pkg/game/puzzle"
)

var (
	// ErrUnknownCommand is returned for input that names no command.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrDoorClosed is returned by press while the door is not open.
	ErrDoorClosed = errors.New("command: the door is not open")

	// ErrDoorNotClosed is returned by open unless the door is closed.
	ErrDoorNotClosed = errors.New("command: the door is not closed")

	// ErrMissingArgument is returned by press with no labels.
	ErrMissingArgument = errors.New("command: missing labels")
)

// Kind identifies a command
type Kind int

const (
	KindLabels Kind = iota
	KindOpen
	KindPress
	KindStatus
)

// String returns the command word
func (k Kind) String() string {
	switch k {
	case KindLabels:
		return "labels"
	case KindOpen:
		return "open"
	case KindPress:
		return "press"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Target is the part of a puzzle session the interpreter drives.
type Target interface {
	State() puzzle.State
	Selection() [puzzle.SelectionSize]string
	Interact(now time.Time) bool
	Press(slot int, now time.Time) (puzzle.Event, error)
}

// Result is what a command did.
type Result struct {
	Kind      Kind
	Labels    []string // canonical labels for KindLabels; pressed labels for KindPress
	State     puzzle.State
	Selection [puzzle.SelectionSize]string
	Event     puzzle.Event // first outcome of a press sequence, if any
}

// Interpreter parses and executes commands against one session.
type Interpreter struct {
	target  Target
	matcher *Matcher
	now     func() time.Time
	log     logrus.FieldLogger
}

// New returns an interpreter for target whose labels are the canonical
// cell labels. now defaults to time.Now.
func New(target Target, labels []string, now func() time.Time, log logrus.FieldLogger) *Interpreter {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Interpreter{target: target, matcher: NewMatcher(labels), now: now, log: log}
}

// Labels returns the canonical label list
func (in *Interpreter) Labels() []string {
	return in.matcher.Labels()
}

// Execute parses one command line and runs it.
func (in *Interpreter) Execute(line string) (Result, error) {
	word, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch strings.ToLower(word) {
	case "labels", "animals":
		return Result{Kind: KindLabels, Labels: in.Labels(), State: in.target.State()}, nil
	case "open", "door":
		return in.open()
	case "press", "p":
		return in.Submit(SplitList(rest))
	case "status":
		return Result{Kind: KindStatus, State: in.target.State(), Selection: in.target.Selection()}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, word)
	}
}

func (in *Interpreter) open() (Result, error) {
	if !in.target.Interact(in.now()) {
		return Result{Kind: KindOpen, State: in.target.State()}, ErrDoorNotClosed
	}
	return Result{Kind: KindOpen, State: in.target.State(), Selection: in.target.Selection()}, nil
}

// Resolve maps free-text labels to display slots. Every label must name an
// animal currently on display; on any failure no slot is returned.
func (in *Interpreter) Resolve(inputs []string) ([]int, []string, error) {
	if len(inputs) == 0 {
		return nil, nil, ErrMissingArgument
	}

	sel := in.target.Selection()
	slotOf := make(map[string]int, len(sel))
	displayed := mapset.New[string]()
	for slot, label := range sel {
		if label != "" {
			slotOf[label] = slot
			displayed.Put(label)
		}
	}

	slots := make([]int, 0, len(inputs))
	labels := make([]string, 0, len(inputs))
	for _, input := range inputs {
		label, err := in.matcher.Resolve(input)
		if err != nil {
			return nil, nil, err
		}
		if !displayed.Has(label) {
			shown := make([]string, 0, displayed.Size())
			for _, l := range sel {
				if l != "" {
					shown = append(shown, l)
				}
			}
			return nil, nil, &InvalidLabelError{Input: input, Reason: ReasonNotDisplayed, Valid: shown}
		}
		slots = append(slots, slotOf[label])
		labels = append(labels, label)
	}
	return slots, labels, nil
}

// Submit presses the given labels in order. All labels are resolved before
// the first press; pressing stops at the first strike or pass.
func (in *Interpreter) Submit(inputs []string) (Result, error) {
	res := Result{Kind: KindPress}
	if in.target.State() != puzzle.Open {
		res.State = in.target.State()
		return res, ErrDoorClosed
	}

	slots, labels, err := in.Resolve(inputs)
	if err != nil {
		in.log.WithError(err).Debug("rejected press command")
		res.State = in.target.State()
		return res, err
	}
	res.Selection = in.target.Selection()

	for i, slot := range slots {
		ev, err := in.target.Press(slot, in.now())
		if errors.Is(err, puzzle.ErrOutOfSequencePress) {
			break
		}
		if err != nil {
			res.State = in.target.State()
			return res, err
		}
		res.Labels = append(res.Labels, labels[i])
		if ev.Outcome != puzzle.OutcomeNone {
			res.Event = ev
			break
		}
	}
	res.State = in.target.State()
	return res, nil
}
