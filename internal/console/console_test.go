package console

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/PulseRain/M10-high-speed-config-software/internal/codemem"
	"github.com/PulseRain/M10-high-speed-config-software/internal/crc"
	"github.com/PulseRain/M10-high-speed-config-software/internal/hexfile"
	"github.com/PulseRain/M10-high-speed-config-software/internal/ocdproto"
	"github.com/PulseRain/M10-high-speed-config-software/internal/transport"
	"github.com/stretchr/testify/require"
)

// fakeEditor replays a fixed list of lines, one per ReadLine call, for
// exercising Console.Run without a real terminal.
type fakeEditor struct {
	lines []string
	i     int
}

func (f *fakeEditor) ReadLine(prompt string) (string, error) {
	if f.i >= len(f.lines) {
		return "exit", nil
	}
	l := f.lines[f.i]
	f.i++
	return l, nil
}
func (f *fakeEditor) ReadByte() (byte, error) { return 0, nil }
func (f *fakeEditor) Close() error            { return nil }

// fakeTarget answers any well-formed frame with a CRC-valid echo, always
// reporting the CPU as stalled (debug_counter_lo bit 0 set) so status-
// dependent commands like read_code proceed.
func fakeTarget(t *testing.T, dev *transport.Loopback, stop <-chan struct{}) {
	t.Helper()
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			req, err := dev.ReadExact(ocdproto.FrameLen, 50*time.Millisecond)
			if err != nil || !crc.Verify(req) {
				continue
			}
			reply := make([]byte, ocdproto.FrameLen)
			copy(reply, req)
			reply[5] |= 1
			hi, lo := crc.CCITT(reply[:ocdproto.FrameLen-2])
			reply[ocdproto.FrameLen-2], reply[ocdproto.FrameLen-1] = hi, lo
			_ = dev.Write(reply)
		}
	}()
}

func newTestConsole(t *testing.T, lines []string) (*Console, *bytes.Buffer, func()) {
	hostEnd, devEnd := transport.NewLoopbackPair()
	stop := make(chan struct{})
	fakeTarget(t, devEnd, stop)

	link := ocdproto.NewLink(hostEnd, nil)
	link.Timeout = 500 * time.Millisecond
	code := &codemem.IO{Link: link}
	loader := &hexfile.Loader{Link: link, Code: code}

	out := &bytes.Buffer{}
	c := NewConsole(link, code, loader, hexfile.IntelHexParser{}, &fakeEditor{lines: lines}, hostEnd, out)
	return c, out, func() { close(stop) }
}

func TestRunDispatchesKnownCommand(t *testing.T) {
	c, out, cleanup := newTestConsole(t, []string{"status"})
	defer cleanup()

	err := c.Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, out.String(), "debug_stall_flag")
}

func TestRunReportsUnknownCommand(t *testing.T) {
	c, out, cleanup := newTestConsole(t, []string{"frobnicate"})
	defer cleanup()

	require.NoError(t, c.Run(context.Background()))
	require.Contains(t, out.String(), "unknown command")
}

func TestUARTSwitchTogglesMode(t *testing.T) {
	c, _, cleanup := newTestConsole(t, []string{"uart_switch"})
	defer cleanup()

	require.Equal(t, ModeDebug, c.Mode())
	c.doUARTSwitch(context.Background())
	require.Equal(t, ModeRaw, c.Mode())
	c.doUARTSwitch(context.Background())
	require.Equal(t, ModeDebug, c.Mode())
}

func TestRawModeForwardsLineToUART(t *testing.T) {
	hostEnd, devEnd := transport.NewLoopbackPair()
	link := ocdproto.NewLink(hostEnd, nil)
	code := &codemem.IO{Link: link}
	c := NewConsole(link, code, &hexfile.Loader{Link: link, Code: code}, hexfile.IntelHexParser{}, &fakeEditor{}, hostEnd, &bytes.Buffer{})
	c.mode = ModeRaw

	// Drain the UARTSelect frame NewConsole sent on construction.
	_, _ = devEnd.ReadExact(ocdproto.FrameLen, 200*time.Millisecond)

	c.handleRawLine(context.Background(), "hello")

	got, err := devEnd.ReadExact(len("hello"), 200*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))
}

func TestSplitArgs(t *testing.T) {
	require.Equal(t, []string{"write_code", "0x10", "1", "2"}, splitArgs("write_code  0x10 1 2"))
	require.Nil(t, splitArgs("   "))
}
