// Package lineedit implements the console's interactive line input: tab
// completion against a fixed command set, up/down history, and
// single-byte raw reads. It is
// grounded in emul/main.go's use of golang.org/x/term for raw-mode stdin,
// and mirrors the tab-completion/history contract of the reference
// console's own line editor.
package lineedit

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// Editor is the line-input collaborator the console depends on. Its
// surface is intentionally narrow: everything about how a line is
// assembled (completion, history, editing keys) is this package's
// concern, not the console's.
type Editor interface {
	// ReadLine prints prompt and returns one completed line of input.
	ReadLine(prompt string) (string, error)

	// ReadByte reads a single raw byte of input, without line assembly.
	ReadByte() (byte, error)

	Close() error
}

// Console is a terminal-backed Editor. It puts the terminal into raw
// mode for the lifetime of the Console so it can see every keystroke,
// including backspace, tab, and arrow keys, without the OS's own line
// discipline intercepting them first.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	fd       int
	saved    *term.State
	commands []string
	history  []string
	line     []byte
}

// NewConsole puts f's descriptor (typically os.Stdin) into raw mode and
// returns a Console that reads from f and echoes to out. commands seeds
// tab completion.
func NewConsole(f *os.File, out io.Writer, commands []string) (*Console, error) {
	fd := int(f.Fd())
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Console{
		in:       bufio.NewReader(f),
		out:      out,
		fd:       fd,
		saved:    saved,
		commands: commands,
	}, nil
}

// Close restores the terminal to its original (cooked) mode.
func (c *Console) Close() error {
	return term.Restore(c.fd, c.saved)
}

func (c *Console) ReadByte() (byte, error) {
	return c.in.ReadByte()
}

const (
	backspace = 0x7F
	tab       = 0x09
	enter     = '\r'
	newline   = '\n'
	esc       = 0x1B
)

// ReadLine assembles one line of input a byte at a time, supporting
// backspace, tab completion, and up/down history recall via ANSI escape
// sequences (ESC [ A / ESC [ B).
func (c *Console) ReadLine(prompt string) (string, error) {
	c.line = c.line[:0]
	historyIndex := len(c.history)

	io.WriteString(c.out, prompt)

	for {
		b, err := c.in.ReadByte()
		if err != nil {
			return "", err
		}

		switch {
		case b == esc:
			if !c.consumeArrowKey() {
				continue
			}
			dir, _ := c.in.ReadByte()
			switch dir {
			case 'A': // up
				if historyIndex > 0 {
					historyIndex--
				}
				c.recallHistory(prompt, historyIndex)
			case 'B': // down
				if historyIndex < len(c.history)-1 {
					historyIndex++
				}
				c.recallHistory(prompt, historyIndex)
			}

		case b == enter || b == newline:
			io.WriteString(c.out, "\r\n")
			line := string(c.line)
			c.addHistory(line)
			return line, nil

		case b == tab:
			c.line = append(c.line, c.completion()...)

		case b == backspace || b == 0x08:
			if len(c.line) > 0 {
				c.line = c.line[:len(c.line)-1]
				io.WriteString(c.out, "\b \b")
			}

		case isPrintable(b):
			c.line = append(c.line, b)
			c.out.Write([]byte{b})
		}
	}
}

// consumeArrowKey reads the '[' that follows ESC in a CSI sequence,
// reporting whether one was actually present.
func (c *Console) consumeArrowKey() bool {
	b, err := c.in.ReadByte()
	return err == nil && b == '['
}

func (c *Console) recallHistory(prompt string, index int) {
	if index < 0 || index >= len(c.history) {
		return
	}
	c.clearLine(prompt)
	c.line = append(c.line[:0], c.history[index]...)
	io.WriteString(c.out, string(c.line))
}

func (c *Console) clearLine(prompt string) {
	for range c.line {
		io.WriteString(c.out, "\b \b")
	}
	io.WriteString(c.out, prompt)
}

func (c *Console) addHistory(line string) {
	if line == "" {
		return
	}
	if n := len(c.history); n > 0 && c.history[n-1] == line {
		return
	}
	c.history = append(c.history, line)
}

// completion returns the additional bytes needed to extend the current
// line to the longest common prefix shared by every command that starts
// with it; if nothing or only one command matches, it completes nothing
// beyond an exact single match.
func (c *Console) completion() []byte {
	prefix := string(c.line)
	var matches []string
	for _, cmd := range c.commands {
		if len(cmd) >= len(prefix) && cmd[:len(prefix)] == prefix {
			matches = append(matches, cmd[len(prefix):])
		}
	}
	if len(matches) == 0 {
		return nil
	}

	common := matches[0]
	for _, m := range matches[1:] {
		common = commonPrefix(common, m)
	}
	io.WriteString(c.out, common)
	return []byte(common)
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// isPrintable accepts the same narrow character class the reference
// console's input validator does: letters, digits, and a handful of
// path/argument punctuation, plus space.
func isPrintable(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b == '_' || b == ':' || b == '\\' || b == '.' || b == '/' || b == ' ':
		return true
	default:
		return false
	}
}
