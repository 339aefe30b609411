package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Timwi/KtaneZoo/pkg/game/edgework"
	"github.com/Timwi/KtaneZoo/pkg/game/puzzle"
	"github.com/Timwi/KtaneZoo/pkg/game/ruleset"
)

// Module is one Zoo module on the bomb
type Module struct {
	Number  int
	UUID    uuid.UUID
	Seed    int64
	Session *puzzle.Session

	Strikes int
	Solved  bool
	Started time.Time
}

// Host owns the modules of one bomb. Module numbers are per host.
type Host struct {
	mu sync.Mutex

	Edgework edgework.Edgework

	modules []*Module
	nextID  int

	Messages []string

	log logrus.FieldLogger

	// OnOutcome, if set, sees every strike and pass after the host has counted it.
	OnOutcome func(*Module, puzzle.Event)
}

// NewHost creates a host for a bomb with the given edgework
func NewHost(ew edgework.Edgework, log logrus.FieldLogger) *Host {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Host{
		Edgework: ew,
		Messages: make([]string, 0),
		nextID:   1,
		log:      log,
	}
}

// AddModule generates a ruleset from seed and adds a new module using it.
// opts.ID, opts.Logger and opts.OnOutcome are set by the host.
func (h *Host) AddModule(seed int64, opts puzzle.Options) (*Module, error) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.mu.Unlock()

	m := &Module{Number: id, UUID: uuid.New(), Seed: seed, Started: time.Now()}

	opts.ID = id
	opts.Logger = h.log.WithField("uuid", m.UUID.String())
	opts.OnOutcome = func(ev puzzle.Event) {
		h.record(m, ev)
	}

	s, err := puzzle.NewSession(ruleset.Generate(seed), h.Edgework, opts)
	if err != nil {
		return nil, fmt.Errorf("adding module: %w", err)
	}
	m.Session = s

	h.mu.Lock()
	h.modules = append(h.modules, m)
	h.mu.Unlock()
	return m, nil
}

func (h *Host) record(m *Module, ev puzzle.Event) {
	h.mu.Lock()
	switch ev.Outcome {
	case puzzle.OutcomeStrike:
		m.Strikes++
	case puzzle.OutcomePass:
		m.Solved = true
	}
	cb := h.OnOutcome
	h.mu.Unlock()

	if cb != nil {
		cb(m, ev)
	}
}

// Module returns the module with the given number
func (h *Host) Module(number int) (*Module, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range h.modules {
		if m.Number == number {
			return m, true
		}
	}
	return nil, false
}

// Modules returns all modules in the order they were added
func (h *Host) Modules() []*Module {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.modules)
}

// Strikes returns the total strike count across modules
func (h *Host) Strikes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	total := 0
	for _, m := range h.modules {
		total += m.Strikes
	}
	return total
}

// Solved checks if every module is solved
func (h *Host) Solved() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range h.modules {
		if !m.Solved {
			return false
		}
	}
	return len(h.modules) > 0
}

// Tick checks every module's deadline and returns the outcomes it caused
func (h *Host) Tick(now time.Time) []puzzle.Event {
	var events []puzzle.Event
	for _, m := range h.Modules() {
		if ev := m.Session.Tick(now); ev.Outcome != puzzle.OutcomeNone {
			events = append(events, ev)
		}
	}
	return events
}

// AddMessage adds a message to the host's message log
func (h *Host) AddMessage(msg string) {
	const maxMessages = 5
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Messages = append(h.Messages, msg)

	// Keep only the last maxMessages
	if len(h.Messages) > maxMessages {
		h.Messages = h.Messages[len(h.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (h *Host) ClearMessages() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Messages = make([]string, 0)
}

// RecentMessages returns a copy of the message log
func (h *Host) RecentMessages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.Messages)
}
