package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Timwi/KtaneZoo/pkg/engine/input"
	"github.com/Timwi/KtaneZoo/pkg/engine/terminal"
	"github.com/Timwi/KtaneZoo/pkg/game/command"
	"github.com/Timwi/KtaneZoo/pkg/game/puzzle"
	"github.com/Timwi/KtaneZoo/pkg/game/state"
	"github.com/Timwi/KtaneZoo/pkg/game/store"
)

// Play loop timing
const (
	tickInterval  = 100 * time.Millisecond
	closingWindow = 1500 * time.Millisecond
)

var playText bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one Zoo module",
	RunE: func(cmd *cobra.Command, args []string) error {
		ew, err := loadEdgework()
		if err != nil {
			return err
		}
		if !verbose {
			log.SetLevel(logrus.ErrorLevel)
		}

		host := state.NewHost(ew, log)
		host.OnOutcome = func(m *state.Module, ev puzzle.Event) {
			host.AddMessage(tui.Outcome(ev))
		}
		m, err := host.AddModule(seed, puzzle.Options{RevealDuration: cfg.RevealDuration()})
		if err != nil {
			return err
		}

		if playText || !terminal.IsInteractive() {
			err = playCommands(cmd.Context(), cmd.OutOrStdout(), host, m)
		} else {
			err = playKeys(cmd.Context(), cmd.OutOrStdout(), host, m)
		}
		if err != nil {
			return err
		}

		recordRound(cmd.Context(), host, m)
		return nil
	},
}

func init() {
	playCmd.Flags().BoolVar(&playText, "text", false, "Type commands instead of pressing keys")
	rootCmd.AddCommand(playCmd)
}

// frame renders the module status, selection and message pane.
func frame(host *state.Host, m *state.Module, now time.Time) string {
	s := m.Session
	var b strings.Builder

	fmt.Fprintf(&b, gotext.Get("MODULE_HEADER")+"\n\n", m.Number)
	fmt.Fprintf(&b, gotext.Get("EDGEWORK")+"\n", host.Edgework)
	q, r := s.FrontLabels()
	b.WriteString(tui.FrontLabels(q, r) + "\n\n")
	b.WriteString(tui.Door(s.State(), s.Remaining(now)) + "\n")
	if st := s.State(); st == puzzle.Open || st == puzzle.Closing {
		b.WriteString(tui.Selection(s.Selection()) + "\n")
	}
	b.WriteString("\n" + tui.MessagesPane(host.RecentMessages(), 0))
	return b.String()
}

// playKeys runs the raw-mode key loop.
func playKeys(ctx context.Context, out io.Writer, host *state.Host, m *state.Module) error {
	restore, err := input.MakeRaw()
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer restore()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	keys := input.ReadKeys(ctx, os.Stdin)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	s := m.Session
	var closingSince time.Time
	host.AddMessage(tui.FormatText("GT{PLAY_HELP}"))

	draw := func(now time.Time) {
		tui.Clear()
		// Raw mode does not translate newlines.
		fmt.Fprint(out, strings.ReplaceAll(frame(host, m, now), "\n", "\r\n"))
	}
	draw(time.Now())

	for {
		select {
		case <-ctx.Done():
			return nil
		case key, ok := <-keys:
			if !ok {
				return nil
			}
			now := time.Now()
			intent := input.MapToIntent(input.NewDebouncedInput(key))
			switch intent.Action {
			case input.ActionQuit:
				fmt.Fprint(out, gotext.Get("GOODBYE")+"\r\n")
				return nil
			case input.ActionOpen:
				if !s.Interact(now) {
					host.AddMessage(gotext.Get("DOOR_NOT_CLOSED"))
				}
			case input.ActionPress:
				label := s.Selection()[intent.Slot]
				ev, err := s.Press(intent.Slot, now)
				if errors.Is(err, puzzle.ErrOutOfSequencePress) {
					host.AddMessage(gotext.Get("DOOR_NOT_OPEN"))
				} else if err == nil && ev.Outcome == puzzle.OutcomeNone {
					host.AddMessage(tui.FormatText(gotext.Get("PRESSED"), "ANIMAL{"+label+"}"))
				}
			case input.ActionHelp:
				host.AddMessage(keyHelp())
			case input.ActionRules:
				host.AddMessage(fmt.Sprintf(gotext.Get("EDGEWORK"), host.Edgework))
			}
			draw(now)
		case now := <-ticker.C:
			host.Tick(now)
			if s.State() == puzzle.Closing {
				if closingSince.IsZero() {
					closingSince = now
				} else if now.Sub(closingSince) >= closingWindow {
					s.FinishClosing()
					closingSince = time.Time{}
				}
			}
			draw(now)
		}

		if s.State().IsTerminal() {
			draw(time.Now())
			fmt.Fprint(out, "\r\n")
			return nil
		}
	}
}

// keyHelp lists the key bindings, one action per entry.
func keyHelp() string {
	byAction := input.GetBindingsByAction()
	parts := make([]string, 0, len(byAction))
	for _, act := range []input.Action{input.ActionPress, input.ActionOpen, input.ActionHelp, input.ActionRules, input.ActionQuit} {
		if codes, ok := byAction[act]; ok {
			parts = append(parts, input.ActionName(act)+": "+strings.Join(codes, " "))
		}
	}
	return strings.Join(parts, " | ")
}

// playCommands runs the line-based command loop.
func playCommands(ctx context.Context, out io.Writer, host *state.Host, m *state.Module) error {
	s := m.Session
	in := command.New(s, s.Rules().Labels(), nil, log)

	fmt.Fprint(out, frame(host, m, time.Now()))
	fmt.Fprintln(out, gotext.Get("PLAY_TEXT_HELP"))

	for !s.State().IsTerminal() {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
		line, err := input.GetInput()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") || strings.EqualFold(line, "q") {
			fmt.Fprintln(out, gotext.Get("GOODBYE"))
			return nil
		}

		// A strike closes the door at once here; there is no animation to wait for.
		now := time.Now()
		if ev := s.Tick(now); ev.Outcome != puzzle.OutcomeNone {
			fmt.Fprintln(out, tui.Outcome(ev))
		}
		s.FinishClosing()

		res, err := in.Execute(line)
		var invalid *command.InvalidLabelError
		switch {
		case errors.As(err, &invalid):
			fmt.Fprintf(out, gotext.Get("INVALID_LABEL")+"\n", invalid)
			if len(invalid.Valid) <= puzzle.SelectionSize {
				fmt.Fprintln(out, "  "+strings.Join(invalid.Valid, ", "))
			}
			continue
		case errors.Is(err, command.ErrUnknownCommand):
			fmt.Fprintln(out, gotext.Get("UNKNOWN_COMMAND"))
			continue
		case errors.Is(err, command.ErrDoorClosed):
			fmt.Fprintln(out, gotext.Get("DOOR_NOT_OPEN"))
			continue
		case errors.Is(err, command.ErrDoorNotClosed):
			fmt.Fprintln(out, gotext.Get("DOOR_NOT_CLOSED"))
			continue
		case err != nil:
			fmt.Fprintln(out, err)
			continue
		}

		switch res.Kind {
		case command.KindLabels:
			fmt.Fprint(out, tui.Labels(res.Labels, 0))
		case command.KindOpen, command.KindStatus:
			fmt.Fprintln(out, tui.Door(res.State, s.Remaining(time.Now())))
			if res.State == puzzle.Open {
				fmt.Fprintln(out, tui.Selection(res.Selection))
			}
		case command.KindPress:
			for _, label := range res.Labels {
				fmt.Fprintln(out, tui.FormatText(gotext.Get("PRESSED"), "ANIMAL{"+label+"}"))
			}
			if msg := tui.Outcome(res.Event); msg != "" {
				fmt.Fprintln(out, msg)
			}
		}
		s.FinishClosing()
	}
	return nil
}

// recordRound stores the finished module in the history database.
func recordRound(ctx context.Context, host *state.Host, m *state.Module) {
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.WithError(err).Warn("round history unavailable")
		return
	}
	defer db.Close()

	_, err = db.Record(ctx, store.Round{
		Module:   m.UUID,
		Number:   m.Number,
		Seed:     m.Seed,
		Edgework: host.Edgework.String(),
		Line:     m.Session.Line().String(),
		Solution: m.Session.Solution(),
		Strikes:  host.Strikes(),
		Solved:   m.Session.State() == puzzle.Solved,
		PlayedAt: time.Now(),
	})
	if err != nil {
		log.WithError(err).Warn("could not record round")
	}
}
