package command

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timwi/KtaneZoo/pkg/game/edgework"
	"github.com/Timwi/KtaneZoo/pkg/game/puzzle"
	"github.com/Timwi/KtaneZoo/pkg/game/ruleset"
)

var canonical = []string{"Aardvark", "Cat", "Cheetah", "Dog", "Elephant", "Red Panda", "Panda", "Zebra"}

// fakeTarget is a door with a fixed selection that expects labels in order.
type fakeTarget struct {
	state     puzzle.State
	selection [puzzle.SelectionSize]string
	expected  []string
	pressed   []string
}

func newFake() *fakeTarget {
	return &fakeTarget{
		state:     puzzle.Open,
		selection: [puzzle.SelectionSize]string{"Cat", "Dog", "Red Panda", "Zebra", "Aardvark", "Cheetah"},
		expected:  []string{"Dog", "Red Panda", "Zebra"},
	}
}

func (f *fakeTarget) State() puzzle.State                     { return f.state }
func (f *fakeTarget) Selection() [puzzle.SelectionSize]string { return f.selection }
func (f *fakeTarget) Interact(time.Time) bool {
	if f.state != puzzle.Closed {
		return false
	}
	f.state = puzzle.Open
	return true
}

func (f *fakeTarget) Press(slot int, _ time.Time) (puzzle.Event, error) {
	if f.state != puzzle.Open {
		return puzzle.Event{}, puzzle.ErrOutOfSequencePress
	}
	label := f.selection[slot]
	f.pressed = append(f.pressed, label)
	if label != f.expected[0] {
		f.state = puzzle.Closing
		return puzzle.Event{Outcome: puzzle.OutcomeStrike, Reason: puzzle.ReasonMismatch, Pressed: label, Expected: f.expected[0]}, nil
	}
	f.expected = f.expected[1:]
	if len(f.expected) == 0 {
		f.state = puzzle.Solved
		return puzzle.Event{Outcome: puzzle.OutcomePass, Pressed: label}, nil
	}
	return puzzle.Event{}, nil
}

func newInterpreter(target Target) *Interpreter {
	logger, _ := test.NewNullLogger()
	return New(target, canonical, nil, logger)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Red Panda", "redpanda"},
		{"  red   PANDA ", "redpanda"},
		{"REDPANDA", "redpanda"},
		{"komodo\tdragon", "komododragon"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestMatcherResolve(t *testing.T) {
	m := NewMatcher(canonical)
	tests := []struct {
		name   string
		input  string
		want   string
		reason string
	}{
		{"exact", "Cat", "Cat", ""},
		{"case insensitive", "zEbRa", "Zebra", ""},
		{"spaces ignored", "red  panda", "Red Panda", ""},
		{"joined words", "redpanda", "Red Panda", ""},
		{"unique prefix", "ele", "Elephant", ""},
		{"exact beats prefix", "panda", "Panda", ""},
		{"ambiguous prefix", "c", "", ReasonAmbiguous},
		{"unknown", "unicorn", "", ReasonUnknown},
		{"blank", "   ", "", ReasonUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Resolve(tt.input)
			if tt.reason == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLabel))
			var ile *InvalidLabelError
			require.True(t, errors.As(err, &ile))
			assert.Equal(t, tt.reason, ile.Reason)
			assert.Equal(t, canonical, ile.Valid)
		})
	}
}

func TestMatcherAmbiguousListsMatches(t *testing.T) {
	_, err := NewMatcher(canonical).Resolve("ch")
	require.NoError(t, err, "only Cheetah starts with ch")

	_, err = NewMatcher(canonical).Resolve("c")
	var ile *InvalidLabelError
	require.True(t, errors.As(err, &ile))
	assert.Equal(t, []string{"Cat", "Cheetah"}, ile.Matches)
	assert.Contains(t, ile.Error(), "ambiguous")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"dog", "red panda", "zebra"}, SplitList(" dog, red panda ,, zebra,"))
	assert.Empty(t, SplitList(" , "))
}

func TestExecute_PressSolves(t *testing.T) {
	f := newFake()
	in := newInterpreter(f)

	res, err := in.Execute("press dog, red panda, zeb")
	require.NoError(t, err)
	assert.Equal(t, KindPress, res.Kind)
	assert.Equal(t, []string{"Dog", "Red Panda", "Zebra"}, res.Labels)
	assert.Equal(t, puzzle.OutcomePass, res.Event.Outcome)
	assert.Equal(t, puzzle.Solved, res.State)
}

func TestExecute_PressStopsAtFirstStrike(t *testing.T) {
	f := newFake()
	in := newInterpreter(f)

	res, err := in.Execute("press Dog, Cat, Zebra")
	require.NoError(t, err)
	assert.Equal(t, puzzle.OutcomeStrike, res.Event.Outcome)
	assert.Equal(t, []string{"Dog", "Cat"}, f.pressed)
	assert.Equal(t, []string{"Dog", "Cat"}, res.Labels)
	assert.Equal(t, puzzle.Closing, res.State)
}

func TestExecute_InvalidLabelPressesNothing(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"unknown after valid", "press dog, unicorn", ReasonUnknown},
		{"ambiguous", "press c", ReasonAmbiguous},
		{"known but not displayed", "press dog, elephant", ReasonNotDisplayed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFake()
			in := newInterpreter(f)

			_, err := in.Execute(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLabel))
			var ile *InvalidLabelError
			require.True(t, errors.As(err, &ile))
			assert.Equal(t, tt.reason, ile.Reason)
			assert.Empty(t, f.pressed, "no press may happen before all labels resolve")
			assert.Equal(t, puzzle.Open, f.state)
		})
	}
}

func TestExecute_NotDisplayedListsSelection(t *testing.T) {
	f := newFake()
	_, err := newInterpreter(f).Execute("press elephant")
	var ile *InvalidLabelError
	require.True(t, errors.As(err, &ile))
	assert.ElementsMatch(t, f.selection[:], ile.Valid)
}

func TestExecute_PressWhileClosed(t *testing.T) {
	f := newFake()
	f.state = puzzle.Closed
	_, err := newInterpreter(f).Execute("press dog")
	assert.True(t, errors.Is(err, ErrDoorClosed))
	assert.Empty(t, f.pressed)
}

func TestExecute_PressWithoutLabels(t *testing.T) {
	_, err := newInterpreter(newFake()).Execute("press")
	assert.True(t, errors.Is(err, ErrMissingArgument))
}

func TestExecute_Open(t *testing.T) {
	f := newFake()
	f.state = puzzle.Closed
	in := newInterpreter(f)

	res, err := in.Execute("open")
	require.NoError(t, err)
	assert.Equal(t, puzzle.Open, res.State)
	assert.Equal(t, f.selection, res.Selection)

	_, err = in.Execute("OPEN")
	assert.True(t, errors.Is(err, ErrDoorNotClosed))
}

func TestExecute_LabelsAndStatus(t *testing.T) {
	in := newInterpreter(newFake())

	res, err := in.Execute("labels")
	require.NoError(t, err)
	assert.Equal(t, canonical, res.Labels)

	res, err = in.Execute("  status ")
	require.NoError(t, err)
	assert.Equal(t, KindStatus, res.Kind)
	assert.Equal(t, puzzle.Open, res.State)
}

func TestExecute_Unknown(t *testing.T) {
	_, err := newInterpreter(newFake()).Execute("dance")
	assert.True(t, errors.Is(err, ErrUnknownCommand))
}

func TestInterpreterDrivesRealSession(t *testing.T) {
	logger, _ := test.NewNullLogger()
	rules := ruleset.Generate(42)
	ew := edgework.New(edgework.NewPlate(edgework.DVI, edgework.Serial))
	s, err := puzzle.NewSession(rules, ew, puzzle.Options{ID: 1, Rand: rand.New(rand.NewSource(3)), Logger: logger})
	require.NoError(t, err)

	in := New(s, rules.Labels(), nil, logger)
	_, err = in.Execute("open")
	require.NoError(t, err)

	res, err := in.Submit(s.ExpectedOrder())
	require.NoError(t, err)
	assert.Equal(t, puzzle.OutcomePass, res.Event.Outcome)
	assert.Equal(t, puzzle.Solved, s.State())
}
