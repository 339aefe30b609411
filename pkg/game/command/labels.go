package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidLabel is matched by every *InvalidLabelError.
var ErrInvalidLabel = errors.New("command: invalid label")

// InvalidLabelError reports a label that did not resolve to exactly one
// usable animal. Valid lists what would have been accepted.
type InvalidLabelError struct {
	Input   string
	Reason  string
	Matches []string // ambiguous prefix matches, if any
	Valid   []string
}

func (e *InvalidLabelError) Error() string {
	if len(e.Matches) > 0 {
		return fmt.Sprintf("%q is %s (could be %s)", e.Input, e.Reason, strings.Join(e.Matches, ", "))
	}
	return fmt.Sprintf("%q is %s", e.Input, e.Reason)
}

func (e *InvalidLabelError) Unwrap() error {
	return ErrInvalidLabel
}

// Reasons carried by InvalidLabelError
const (
	ReasonUnknown      = "not an animal"
	ReasonAmbiguous    = "ambiguous"
	ReasonNotDisplayed = "not on display"
)

// Normalize lowercases s and drops all whitespace, so "Red Panda",
// "red panda" and "REDPANDA" compare equal.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Matcher resolves free-text input against a fixed label list.
type Matcher struct {
	labels []string
	exact  map[string]string
	norm   []string
}

// NewMatcher indexes labels. The order of labels is kept for error messages
// and prefix scans.
func NewMatcher(labels []string) *Matcher {
	m := &Matcher{
		labels: append([]string(nil), labels...),
		exact:  make(map[string]string, len(labels)),
		norm:   make([]string, len(labels)),
	}
	for i, label := range m.labels {
		n := Normalize(label)
		m.exact[n] = label
		m.norm[i] = n
	}
	return m
}

// Labels returns the indexed labels
func (m *Matcher) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Resolve returns the label input names. An exact normalised match wins;
// otherwise the input must be a prefix of exactly one label.
func (m *Matcher) Resolve(input string) (string, error) {
	n := Normalize(input)
	if n == "" {
		return "", &InvalidLabelError{Input: input, Reason: ReasonUnknown, Valid: m.Labels()}
	}
	if label, ok := m.exact[n]; ok {
		return label, nil
	}

	var matches []string
	for i, candidate := range m.norm {
		if strings.HasPrefix(candidate, n) {
			matches = append(matches, m.labels[i])
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", &InvalidLabelError{Input: input, Reason: ReasonUnknown, Valid: m.Labels()}
	default:
		return "", &InvalidLabelError{Input: input, Reason: ReasonAmbiguous, Matches: matches, Valid: m.Labels()}
	}
}

// SplitList splits a comma-separated argument list, dropping empty items.
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
