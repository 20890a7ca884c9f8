// Package console implements the interactive debug/raw console: a
// single-threaded loop that reads one line at a time and either
// dispatches it against the DEBUG command table or forwards it verbatim
// to the target's UART, mirroring the reference console's run loop and
// uart_switch handling.
package console

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/PulseRain/M10-high-speed-config-software/internal/codemem"
	"github.com/PulseRain/M10-high-speed-config-software/internal/hexfile"
	"github.com/PulseRain/M10-high-speed-config-software/internal/lineedit"
	"github.com/PulseRain/M10-high-speed-config-software/internal/ocdproto"
	"github.com/PulseRain/M10-high-speed-config-software/internal/transport"
)

// uartSwitchSettle is how long uart_switch waits after writing a carriage
// return to the target before draining whatever banner it prints back.
const uartSwitchSettle = 500 * time.Millisecond

// Console ties the debug-frame link, code/data memory helpers, hex
// loader, disassembler and line editor together into the interactive
// session. It owns the current Mode and the raw transport used for
// UART passthrough, since RAW mode bypasses frame parsing entirely.
type Console struct {
	Link      *ocdproto.Link
	Code      *codemem.IO
	Loader    *hexfile.Loader
	HexParser hexfile.Parser
	Editor    lineedit.Editor
	Raw       transport.Transport
	Out       io.Writer

	mode Mode
}

// NewConsole wires a Console and selects the target's UART toward the
// OCD link, the reference console's initial state.
func NewConsole(link *ocdproto.Link, code *codemem.IO, loader *hexfile.Loader, hexParser hexfile.Parser, editor lineedit.Editor, raw transport.Transport, out io.Writer) *Console {
	c := &Console{
		Link:      link,
		Code:      code,
		Loader:    loader,
		HexParser: hexParser,
		Editor:    editor,
		Raw:       raw,
		Out:       out,
		mode:      ModeDebug,
	}
	_ = c.Link.UARTSelect(c.mode != ModeRaw)
	return c
}

// Mode reports the console's current mode.
func (c *Console) Mode() Mode { return c.mode }

// Run is the console's main loop: read a line, act on it, repeat, until
// the user types "exit".
func (c *Console) Run(ctx context.Context) error {
	for {
		line, err := c.Editor.ReadLine(prompt(c.mode))
		if err != nil {
			return err
		}

		if c.mode == ModeRaw {
			c.handleRawLine(ctx, line)
			if line == "exit" {
				fmt.Fprintln(c.Out, "\nGoodbye!!!")
				return nil
			}
			continue
		}

		if line == "exit" {
			fmt.Fprintln(c.Out, "\nGoodbye!!!")
			return nil
		}
		c.dispatch(ctx, line)
	}
}

func prompt(m Mode) string {
	if m == ModeRaw {
		return ""
	}
	return "\n>> "
}

// handleRawLine forwards line to the target's UART, unless it is the
// one command RAW mode still recognizes ("uart_switch"), then drains and
// prints whatever the target has sent back.
func (c *Console) handleRawLine(ctx context.Context, line string) {
	if line == "uart_switch" {
		c.doUARTSwitch(ctx)
		return
	}
	if len(line) > 0 {
		fmt.Fprint(c.Out, line)
		_ = c.Raw.Write([]byte(line))
	}
	c.drainUART()
}

// drainUART prints whatever bytes are currently waiting on the raw
// transport, the same opportunistic poll the reference console performs
// after every line in RAW mode.
func (c *Console) drainUART() {
	n, err := c.Raw.BytesAvailable()
	if err != nil || n == 0 {
		return
	}
	data, err := c.Raw.ReadExact(n, 100*time.Millisecond)
	if err != nil {
		return
	}
	for _, b := range data {
		if b < 128 {
			fmt.Fprintf(c.Out, "%c", b)
		}
	}
}

// dispatch looks up and runs a DEBUG-mode command.
func (c *Console) dispatch(ctx context.Context, line string) {
	args := splitArgs(line)
	if len(args) == 0 {
		fmt.Fprintln(c.Out, "empty line!")
		return
	}
	cmd, ok := Commands[args[0]]
	if !ok {
		fmt.Fprintln(c.Out, "unknown command ", args[0])
		return
	}
	if err := cmd.Run(ctx, c, args[1:]); err != nil {
		fmt.Fprintf(c.Out, "error: %v\n", err)
	}
}

func splitArgs(line string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(line); i++ {
		if i < len(line) && line[i] != ' ' && line[i] != '\t' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, line[start:i])
			start = -1
		}
	}
	return out
}

// doUARTSwitch flips between DEBUG and RAW mode, clearing the transport
// buffers on both sides of the switch and printing the mode banner, the
// same sequence the reference console's _do_uart_switch performs.
func (c *Console) doUARTSwitch(ctx context.Context) {
	if c.mode == ModeDebug {
		c.mode = ModeRaw
	} else {
		c.mode = ModeDebug
	}

	c.Raw.FlushOutput()
	c.Raw.FlushInput()
	_ = c.Link.UARTSelect(c.mode != ModeRaw)

	fmt.Fprintln(c.Out, "\n================================================================================")
	c.Raw.FlushOutput()
	c.Raw.FlushInput()
	fmt.Fprintln(c.Out, c.mode.String())
	fmt.Fprintln(c.Out, "================================================================================")

	_ = c.Raw.Write([]byte{'\r'})
	time.Sleep(uartSwitchSettle)
	c.drainUART()
}
