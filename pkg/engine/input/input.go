package input

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

var stdinReader *bufio.Reader

// errNoPending ends an escape sequence when no more bytes have arrived.
var errNoPending = errors.New("input: no pending bytes")

// GetInput reads a line of input from stdin
func GetInput() (string, error) {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// MakeRaw puts stdin into raw mode and returns the function that restores it.
func MakeRaw() (func(), error) {
	// Reset the buffered reader to avoid conflicts with raw mode
	stdinReader = nil

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { term.Restore(fd, oldState) }, nil
}

// decodeKey turns the bytes of one key press into a code. next reads the
// following byte of an escape sequence.
func decodeKey(first byte, next func() (byte, error)) string {
	switch {
	case first == 3:
		return "ctrl_c"
	case first == '\n' || first == '\r':
		return "enter"
	case first == 0x1b:
		return decodeEscape(next)
	case first >= 32 && first < 127:
		return strings.ToLower(string(first))
	default:
		return ""
	}
}

// decodeEscape reads the rest of an escape sequence after ESC.
func decodeEscape(next func() (byte, error)) string {
	b2, err := next()
	if err != nil {
		return "escape"
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "escape"
	}

	b3, err := next()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	// Unknown escape sequence - discard it
	return ""
}

// ReadKeys decodes key presses from r until it fails or ctx is done. The
// channel is closed when reading stops. A terminal writes an escape sequence
// in one go, so only bytes already buffered continue one; a lone ESC is
// reported as "escape" straight away.
func ReadKeys(ctx context.Context, r io.Reader) <-chan RawInput {
	keys := make(chan RawInput)
	br := bufio.NewReader(r)

	go func() {
		defer close(keys)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			code := decodeKey(b, func() (byte, error) {
				if br.Buffered() == 0 {
					return 0, errNoPending
				}
				return br.ReadByte()
			})
			if code == "" {
				continue
			}
			select {
			case keys <- RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return keys
}
