package renderer

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"github.com/Timwi/KtaneZoo/pkg/engine/hex"
	"github.com/Timwi/KtaneZoo/pkg/engine/terminal"
	"github.com/Timwi/KtaneZoo/pkg/game/puzzle"
	"github.com/Timwi/KtaneZoo/pkg/game/ruleset"
	"github.com/Timwi/KtaneZoo/pkg/game/store"
)

// Board layout limits
const (
	MinCellWidth = 4
	maxMessages  = 5
)

// dynamicGet is used for runtime translation key lookups from markup.
var dynamicGet = gotext.Get

// TUI is the terminal renderer
type TUI struct {
	out io.Writer

	colorCell        color.Style
	colorCellText    color.Style
	colorAnimal      color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDenied      color.Style
	colorSolved      color.Style
	colorSubtle      color.Style
	colorHighlight   color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a renderer writing to out, or stdout when out is nil
func New(out io.Writer) *TUI {
	if out == nil {
		out = os.Stdout
	}
	return &TUI{out: out}
}

// Init initializes the color styles and turns colour output on or off
func (t *TUI) Init(enableColor bool) {
	color.Enable = enableColor

	t.colorCell = color.Style{color.FgGray}
	t.colorCellText = color.Style{color.FgBlue}
	t.colorAnimal = color.Style{color.FgGreen, color.OpBold}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorSolved = color.Style{color.FgGreen}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorHighlight = color.Style{color.FgYellow, color.OpBold}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:]+)}`)
}

// FormatText formats a message with special markup
func (t *TUI) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		val := "blat"

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ANIMAL":
			val = t.colorAnimal.Sprint(operand)
		case "PORT":
			val = t.colorCellText.Sprint(operand)
		case "ACTION":
			val = t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		default:
			ret = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// ShowMessage displays a message to the user
func (t *TUI) ShowMessage(msg string) {
	fmt.Fprintln(t.out, msg)
}

// PrintString prints a formatted string
func (t *TUI) PrintString(msg string, a ...any) {
	fmt.Fprint(t.out, t.FormatText(msg, a...))
}

// Clear clears the terminal screen
func (t *TUI) Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// BoardOptions controls how the board is drawn
type BoardOptions struct {
	Highlight []hex.Hex
	Rotate    int
	Mirror    bool
	Width     int // 0 uses the terminal width
}

// Board draws the animal board as flat-top hexes: each q is a column and
// each cell sits on text line q+2r, so neighbours in a column are two lines
// apart. Highlighted cells are drawn in the highlight style and border cells
// in the subtle style.
func (t *TUI) Board(rules *ruleset.Ruleset, opts BoardOptions) string {
	side := rules.SideLength()
	cols := 2*side - 1
	offset := 2 * (side - 1)
	lines := 2*offset + 1

	highlight := make(map[hex.Hex]bool, len(opts.Highlight))
	for _, h := range opts.Highlight {
		highlight[h] = true
	}

	cellWidth := 0
	for _, label := range rules.Labels() {
		cellWidth = max(cellWidth, len(label)+1)
	}
	width := opts.Width
	if width <= 0 {
		width = terminal.GetWidth()
	}
	if cols*cellWidth > width {
		cellWidth = max(width/cols, MinCellWidth)
	}

	grid := make([][]string, lines)
	last := make([]int, lines)
	for i := range grid {
		grid[i] = make([]string, cols)
		last[i] = -1
	}

	for h := range hex.LargeHexagon(side) {
		label, _ := rules.CellLabel(h)
		pos := h.Rotate(opts.Rotate).Mirror(opts.Mirror)
		line, col := pos.DoubledRow()+offset, pos.Q+side-1

		text := fmt.Sprintf("%-*s", cellWidth, abbreviate(label, cellWidth-1))
		switch {
		case highlight[h]:
			text = t.colorHighlight.Sprint(text)
		case isBorder(h, side):
			text = t.colorSubtle.Sprint(text)
		default:
			text = t.colorCell.Sprint(text)
		}
		grid[line][col] = text
		last[line] = max(last[line], col)
	}

	var b strings.Builder
	blank := strings.Repeat(" ", cellWidth)
	for i, row := range grid {
		for col := 0; col <= last[i]; col++ {
			if row[col] == "" {
				b.WriteString(blank)
			} else {
				b.WriteString(row[col])
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// isBorder reports whether h lies on the outer ring of the board.
func isBorder(h hex.Hex, side int) bool {
	for range h.Edges(side - 1) {
		return true
	}
	return false
}

// abbreviate shortens s to at most n bytes.
func abbreviate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

// Rules renders the port-to-direction table, the bucket order and the door labels
func (t *TUI) Rules(rules *ruleset.Ruleset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n\n", gotext.Get("RULES_TITLE"), rules.Seed())

	for _, dir := range hex.AllDirections() {
		fmt.Fprintf(&b, "  %-10s %s\n", dir, t.colorCellText.Sprint(rules.PortFor(dir)))
	}
	b.WriteString("\n")

	if rules.MostCommonFirst() {
		b.WriteString(gotext.Get("RULES_ORDER_MOST") + "\n")
	} else {
		b.WriteString(gotext.Get("RULES_ORDER_LEAST") + "\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", gotext.Get("RULES_Q_LABELS"))
	for i, label := range rules.QLabels() {
		fmt.Fprintf(&b, "  q=%+d  %s\n", i-(ruleset.AuxSize/2), t.colorAnimal.Sprint(label))
	}
	fmt.Fprintf(&b, "%s\n", gotext.Get("RULES_R_LABELS"))
	for i, label := range rules.RLabels() {
		fmt.Fprintf(&b, "  r=%+d  %s\n", i-(ruleset.AuxSize/2), t.colorAnimal.Sprint(label))
	}
	return b.String()
}

// Selection renders the six display slots with their key numbers
func (t *TUI) Selection(sel [puzzle.SelectionSize]string) string {
	parts := make([]string, 0, len(sel))
	for i, label := range sel {
		parts = append(parts, fmt.Sprintf("%s %s", t.colorActionShort.Sprintf("[%d]", i+1), t.colorAnimal.Sprint(label)))
	}
	return strings.Join(parts, "  ")
}

// Door renders the door state line
func (t *TUI) Door(s puzzle.State, remaining time.Duration) string {
	switch s {
	case puzzle.Open:
		return fmt.Sprintf(gotext.Get("DOOR_OPEN"), remaining.Seconds())
	case puzzle.Closing:
		return t.colorDenied.Sprint(gotext.Get("DOOR_CLOSING"))
	case puzzle.Solved:
		return t.colorSolved.Sprint(gotext.Get("MODULE_SOLVED"))
	default:
		return gotext.Get("DOOR_CLOSED")
	}
}

// FrontLabels renders the two labels shown on the closed door
func (t *TUI) FrontLabels(q, r string) string {
	return fmt.Sprintf(gotext.Get("FRONT_LABELS"), t.colorAnimal.Sprint(q), t.colorAnimal.Sprint(r))
}

// Outcome renders a strike or pass, or "" for no outcome
func (t *TUI) Outcome(ev puzzle.Event) string {
	switch {
	case ev.Outcome == puzzle.OutcomePass:
		return t.colorSolved.Sprint(gotext.Get("MODULE_SOLVED"))
	case ev.Outcome == puzzle.OutcomeStrike && ev.Reason == puzzle.ReasonTimeout:
		return t.colorDenied.Sprint(fmt.Sprintf(gotext.Get("STRIKE_TIMEOUT"), ev.Expected))
	case ev.Outcome == puzzle.OutcomeStrike:
		return t.colorDenied.Sprint(fmt.Sprintf(gotext.Get("STRIKE_MISMATCH"), ev.Pressed, ev.Expected))
	default:
		return ""
	}
}

// Labels renders the canonical label list in as many columns as fit
func (t *TUI) Labels(labels []string, width int) string {
	if width <= 0 {
		width = terminal.GetWidth()
	}
	colWidth := 1
	for _, label := range labels {
		colWidth = max(colWidth, len(label)+2)
	}
	perRow := max(width/colWidth, 1)

	var b strings.Builder
	for i := 0; i < len(labels); i += perRow {
		row := labels[i:min(i+perRow, len(labels))]
		var line strings.Builder
		for _, label := range row {
			fmt.Fprintf(&line, "%-*s", colWidth, label)
		}
		b.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}
	return b.String()
}

// History renders stored rounds, newest first
func (t *TUI) History(rounds []store.Round, stats store.Stats) string {
	if len(rounds) == 0 {
		return gotext.Get("HISTORY_EMPTY") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", fmt.Sprintf(gotext.Get("HISTORY_SUMMARY"), stats.Rounds, stats.Solved, stats.Strikes))
	for _, r := range rounds {
		result := t.colorDenied.Sprint(gotext.Get("HISTORY_UNSOLVED"))
		if r.Solved {
			result = t.colorSolved.Sprint(gotext.Get("HISTORY_SOLVED"))
		}
		fmt.Fprintf(&b, "  %s  #%d  seed %-6d %s  %d  %s\n",
			r.PlayedAt.Local().Format(time.DateTime), r.Number, r.Seed, result, r.Strikes,
			t.colorSubtle.Sprint(strings.Join(r.Solution, ", ")))
	}
	return b.String()
}

// MessagesPane renders the messages log pane
func (t *TUI) MessagesPane(msgs []string, width int) string {
	if width <= 0 {
		width = terminal.GetWidth()
	}

	label := " " + gotext.Get("MESSAGES") + " "
	labelLen := len(label)
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}

	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", max(width-sideLen-labelLen, 1))

	var b strings.Builder
	b.WriteString(t.colorSubtle.Sprint(leftDashes+label+rightDashes) + "\n")

	if len(msgs) == 0 {
		b.WriteString(t.colorSubtle.Sprint("  "+gotext.Get("NO_MESSAGES")) + "\n")
	} else {
		if len(msgs) > maxMessages {
			msgs = msgs[len(msgs)-maxMessages:]
		}
		for _, msg := range msgs {
			fmt.Fprintf(&b, "  %s\n", msg)
		}
	}

	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", width)) + "\n")
	return b.String()
}
