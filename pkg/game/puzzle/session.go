// Package puzzle runs one Zoo puzzle: the door opens to show six animals,
// three of them from the solution line, and the player must press the shown
// solution animals in line order before the deadline.
package puzzle

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/Timwi/KtaneZoo/pkg/game/edgework"
	"github.com/Timwi/KtaneZoo/pkg/game/linefinder"
	"github.com/Timwi/KtaneZoo/pkg/game/ruleset"
)

// Selection sizes
const (
	SelectionSize  = 6
	ShownSolution  = 3
	ShownDecoys    = SelectionSize - ShownSolution
	SolutionLength = linefinder.LineLength
)

// DefaultRevealDuration is how long the door stays open.
const DefaultRevealDuration = 6 * time.Second

var (
	// ErrOutOfSequencePress is returned for a press while the door is not
	// open. Callers should ignore it; it models a harmless late press.
	ErrOutOfSequencePress = errors.New("puzzle: press while door is not open")

	// ErrInvalidSlot is returned for a slot outside 0..SelectionSize-1.
	ErrInvalidSlot = errors.New("puzzle: invalid display slot")
)

// Options configures a session.
type Options struct {
	// ID is the module number assigned by whoever hosts the session.
	ID int

	// RevealDuration is how long the door stays open. Zero means unset and
	// selects DefaultRevealDuration; a negative value falls back to it with a
	// warning.
	RevealDuration time.Duration

	// Rand drives line choice and selection draws; time-seeded when nil.
	Rand *rand.Rand

	Logger logrus.FieldLogger

	// OnOutcome is called after every strike or pass, outside the session lock.
	OnOutcome func(Event)
}

// Session is the state of one puzzle instance. All methods are safe for
// concurrent use; independent sessions share nothing.
type Session struct {
	mu sync.Mutex

	id    int
	rules *ruleset.Ruleset
	line  linefinder.Line

	solution [SolutionLength]string
	decoys   []string

	state     State
	selection [SelectionSize]string
	shown     mapset.Set[string]
	cursor    int
	deadline  time.Time
	aborted   bool

	reveal    time.Duration
	rng       *rand.Rand
	log       logrus.FieldLogger
	onOutcome func(Event)
}

// NewSession classifies the edgework, finds the solution line for the
// ruleset and returns a closed session. A board without any qualifying line
// aborts creation with linefinder.ErrConfigurationDefect.
func NewSession(rules *ruleset.Ruleset, ew edgework.Edgework, opts Options) (*Session, error) {
	s := newSession(opts)

	line, err := linefinder.Generate(ruleset.SideLength, ew.Classify(), rules, s.rng)
	if err != nil {
		s.log.WithError(err).Error("no solution line")
		return nil, fmt.Errorf("zoo #%d: %w", s.id, err)
	}

	var solution [SolutionLength]string
	for i, cell := range line.Cells() {
		label, ok := rules.CellLabel(cell)
		if !ok {
			return nil, fmt.Errorf("zoo #%d: %w: line cell %v has no label", s.id, linefinder.ErrConfigurationDefect, cell)
		}
		solution[i] = label
	}

	s.rules = rules
	s.line = line
	s.setSolution(solution, rules.Labels())

	s.log.WithFields(logrus.Fields{
		"seed":     rules.Seed(),
		"edgework": ew.String(),
		"line":     line.String(),
		"solution": solution,
	}).Info("generated solution line")
	return s, nil
}

func newSession(opts Options) *Session {
	s := &Session{
		id:        opts.ID,
		reveal:    opts.RevealDuration,
		rng:       opts.Rand,
		onOutcome: opts.OnOutcome,
		shown:     mapset.New[string](),
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s.log = logger.WithFields(logrus.Fields{"module": "Zoo", "id": s.id})
	switch {
	case s.reveal < 0:
		s.log.WithField("reveal", s.reveal).Warn("negative reveal duration, using default")
		s.reveal = DefaultRevealDuration
	case s.reveal == 0:
		s.reveal = DefaultRevealDuration
	}
	return s
}

// setSolution stores the solution labels and every other label as a decoy.
func (s *Session) setSolution(solution [SolutionLength]string, all []string) {
	s.solution = solution
	inLine := mapset.New[string]()
	for _, label := range solution {
		inLine.Put(label)
	}
	s.decoys = s.decoys[:0]
	for _, label := range all {
		if !inLine.Has(label) {
			s.decoys = append(s.decoys, label)
		}
	}
}

// ID returns the module number
func (s *Session) ID() int {
	return s.id
}

// Rules returns the ruleset the session was built from
func (s *Session) Rules() *ruleset.Ruleset {
	return s.rules
}

// Line returns the solution line geometry
func (s *Session) Line() linefinder.Line {
	return s.line
}

// Solution returns the five solution labels in line order
func (s *Session) Solution() []string {
	return append([]string(nil), s.solution[:]...)
}

// FrontLabels returns the single-axis door labels for the solution's first cell
func (s *Session) FrontLabels() (q, r string) {
	if s.rules == nil {
		return "", ""
	}
	q, _ = s.rules.QLabel(s.line.Start.Q)
	r, _ = s.rules.RLabel(s.line.Start.R)
	return q, r
}

// RevealDuration returns how long each opening lasts
func (s *Session) RevealDuration() time.Duration {
	return s.reveal
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Selection returns the labels shown in slots 0..5. It is only meaningful
// while the door is open or closing.
func (s *Session) Selection() [SelectionSize]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Deadline returns when the current opening times out
func (s *Session) Deadline() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deadline
}

// Remaining returns the time left before the deadline, or zero
func (s *Session) Remaining(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Open || !now.Before(s.deadline) {
		return 0
	}
	return s.deadline.Sub(now)
}

// Expected returns the label the next press must match while the door is open
func (s *Session) Expected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Open || s.cursor >= SolutionLength {
		return "", false
	}
	return s.solution[s.cursor], true
}

// Interact opens a closed door: it draws a new selection, points the cursor
// at the first shown solution label and starts the deadline. It returns
// false from any other state.
func (s *Session) Interact(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Closed {
		return false
	}
	s.open(s.drawSelection(), now)
	return true
}

// drawSelection picks three solution labels and three decoys, shuffled.
func (s *Session) drawSelection() [SelectionSize]string {
	var sel [SelectionSize]string
	for i, idx := range s.rng.Perm(SolutionLength)[:ShownSolution] {
		sel[i] = s.solution[idx]
	}
	for i, idx := range s.rng.Perm(len(s.decoys))[:ShownDecoys] {
		sel[ShownSolution+i] = s.decoys[idx]
	}
	s.rng.Shuffle(len(sel), func(i, j int) {
		sel[i], sel[j] = sel[j], sel[i]
	})
	return sel
}

// open shows sel and starts the deadline. Callers hold the lock.
func (s *Session) open(sel [SelectionSize]string, now time.Time) {
	s.selection = sel
	s.shown = mapset.New[string]()
	for _, label := range sel {
		s.shown.Put(label)
	}
	s.cursor = s.nextShown(0)
	s.deadline = now.Add(s.reveal)
	s.aborted = false
	s.state = Open

	s.log.WithFields(logrus.Fields{
		"selection": sel,
		"expected":  s.expectedOrder(),
		"deadline":  s.reveal,
	}).Info("door opened")
}

// nextShown returns the first solution index >= from whose label is shown.
func (s *Session) nextShown(from int) int {
	for i := from; i < SolutionLength; i++ {
		if s.shown.Has(s.solution[i]) {
			return i
		}
	}
	return SolutionLength
}

// expectedOrder lists the shown solution labels in press order.
func (s *Session) expectedOrder() []string {
	var order []string
	for i := s.nextShown(0); i < SolutionLength; i = s.nextShown(i + 1) {
		order = append(order, s.solution[i])
	}
	return order
}

// ExpectedOrder returns the shown solution labels in the order they must be pressed
func (s *Session) ExpectedOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Open {
		return nil
	}
	return s.expectedOrder()
}

// Press submits the label in the given display slot. Presses outside the
// Open state return ErrOutOfSequencePress and change nothing. A press after
// the deadline reports the timeout instead.
func (s *Session) Press(slot int, now time.Time) (Event, error) {
	ev, err := s.press(slot, now)
	s.emit(ev)
	return ev, err
}

func (s *Session) press(slot int, now time.Time) (Event, error) {
	if slot < 0 || slot >= SelectionSize {
		return Event{}, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Open || s.aborted {
		return Event{SessionID: s.id}, ErrOutOfSequencePress
	}
	if ev, expired := s.expire(now); expired {
		return ev, nil
	}

	label := s.selection[slot]
	expected := s.solution[s.cursor]
	entry := s.log.WithFields(logrus.Fields{"slot": slot, "pressed": label})

	if label != expected {
		s.strike()
		entry.WithField("expected", expected).Warn("wrong animal, strike")
		return Event{SessionID: s.id, Outcome: OutcomeStrike, Reason: ReasonMismatch, Pressed: label, Expected: expected}, nil
	}

	s.cursor = s.nextShown(s.cursor + 1)
	if s.cursor >= SolutionLength {
		s.state = Solved
		entry.Info("module solved")
		return Event{SessionID: s.id, Outcome: OutcomePass, Pressed: label}, nil
	}
	entry.Debug("correct press")
	return Event{SessionID: s.id}, nil
}

// Tick checks the deadline. It reports one timeout strike the first time it
// is called at or after the deadline of an open door.
func (s *Session) Tick(now time.Time) Event {
	s.mu.Lock()
	ev, _ := s.expire(now)
	s.mu.Unlock()
	s.emit(ev)
	return ev
}

// expire strikes when the deadline has passed. Callers hold the lock.
func (s *Session) expire(now time.Time) (Event, bool) {
	if s.state != Open || now.Before(s.deadline) {
		return Event{SessionID: s.id}, false
	}
	expected := ""
	if s.cursor < SolutionLength {
		expected = s.solution[s.cursor]
	}
	s.strike()
	s.log.WithField("expected", expected).Warn("not enough animals pressed before the deadline, strike")
	return Event{SessionID: s.id, Outcome: OutcomeStrike, Reason: ReasonTimeout, Expected: expected}, true
}

// strike closes the door and drops any pending presses. Callers hold the lock.
func (s *Session) strike() {
	s.state = Closing
	s.aborted = true
}

// FinishClosing completes the closing animation. It returns false unless the
// door was closing.
func (s *Session) FinishClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Closing {
		return false
	}
	s.state = Closed
	return true
}

func (s *Session) emit(ev Event) {
	if ev.Outcome != OutcomeNone && s.onOutcome != nil {
		s.onOutcome(ev)
	}
}
