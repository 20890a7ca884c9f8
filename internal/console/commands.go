package console

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/PulseRain/M10-high-speed-config-software/internal/disasm"
)

// parseDataAddr resolves an addr argument that may be either a numeric
// literal (hex with a "0x" prefix, or decimal) or an SFR name from
// disasm.AddrMap, matching the console's "<addr|SFR>" argument form.
func parseDataAddr(s string) (byte, error) {
	if addr, ok := disasm.AddrMap[s]; ok {
		return addr, nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("not a valid address or SFR name: %s", s)
	}
	return byte(v), nil
}

// Command is one entry of the DEBUG-mode dispatch table: a name, its
// argument usage and a one-line description (surfaced by "help"), and
// the handler itself.
type Command struct {
	Usage       string
	Description string
	Run         func(ctx context.Context, c *Console, args []string) error
}

// Commands is the DEBUG console's command table, grounded in the
// reference console's _OCD_CONSOLE_CMD dispatch table.
var Commands = map[string]Command{
	"help":                {"[command]", "list command info", cmdHelp},
	"reset":               {"", "reset cpu", cmdReset},
	"pause":               {"", "pause cpu", cmdPause},
	"resume":              {"", "resume running", cmdResume},
	"status":              {"", "read cpu status", cmdStatus},
	"load_hex":            {"file_name", "load hex file into code memory", cmdLoadHex},
	"load_hex_and_switch": {"file_name", "load hex file into code memory, and switch uart to raw mode", cmdLoadHexAndSwitch},
	"write_code":          {"addr code_list", "write code memory", cmdWriteCode},
	"read_code":           {"addr length", "read code memory", cmdReadCode},
	"counter_config":      {"configuration", "config debug counter and timer counter", cmdCounterConfig},
	"break_on":            {"break_point_addr1 break_point_addr2", "turn on break point", cmdBreakOn},
	"break_off":           {"", "turn off break point", cmdBreakOff},
	"next":                {"", "continue to run", cmdNext},
	"read_data":           {"addr length", "read data memory", cmdReadData},
	"write_direct_data":   {"addr data_list", "write directly mapped data memory", cmdWriteDirectData},
	"write_indirect_data": {"addr data_list", "write indirectly mapped data memory", cmdWriteIndirectData},
	"disassemble":         {"addr length", "dis-assemble code memory", cmdDisassemble},
	"uart_switch":         {"", "toggle uart between OCD and CPU core", cmdUARTSwitch},
	"exit":                {"", "exit console", cmdNoop},
}

func cmdNoop(ctx context.Context, c *Console, args []string) error { return nil }

func cmdHelp(ctx context.Context, c *Console, args []string) error {
	if len(args) > 0 {
		cmd, ok := Commands[args[0]]
		if !ok {
			fmt.Fprintln(c.Out, "Unknown command")
			return nil
		}
		fmt.Fprintf(c.Out, "Usage:\n       %s %s\n", args[0], cmd.Usage)
		fmt.Fprintf(c.Out, "Description:\n       %s\n", cmd.Description)
		return nil
	}
	fmt.Fprintln(c.Out, "available commands:")
	for name := range Commands {
		fmt.Fprintln(c.Out, " ", name)
	}
	return nil
}

func cmdReset(ctx context.Context, c *Console, args []string) error {
	c.Raw.FlushOutput()
	c.Raw.FlushInput()
	if err := c.Link.Reset(ctx); err != nil {
		return err
	}
	c.Raw.FlushOutput()
	c.Raw.FlushInput()
	return nil
}

func cmdPause(ctx context.Context, c *Console, args []string) error {
	return c.Link.Pause(ctx, true)
}

func cmdResume(ctx context.Context, c *Console, args []string) error {
	return c.Link.Pause(ctx, false)
}

func cmdStatus(ctx context.Context, c *Console, args []string) error {
	st, err := c.Link.ReadStatus(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "===> PC: 0x%x\n", st.ProgramCounter)
	fmt.Fprintf(c.Out, "===> debug_stall_flag: %v\n", st.Stalled)
	fmt.Fprintf(c.Out, "===> debug_counter: %d\n", st.DebugCounter)
	fmt.Fprintf(c.Out, "===> timer_counter: %d\n", st.TimerCounter)

	if !st.Stalled {
		return nil
	}

	printDirect := func(label string, addr byte) error {
		v, err := c.Link.DataReadByte(ctx, addr, false)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "===> %s: 0x%02x\n", label, v)
		return nil
	}
	if err := printDirect("A", disasm.AddrMap["ACC"]); err != nil {
		return err
	}
	if err := printDirect("B", disasm.AddrMap["B"]); err != nil {
		return err
	}
	if err := printDirect("R0 (bank0)", 0); err != nil {
		return err
	}
	if err := printDirect("R1 (bank0)", 1); err != nil {
		return err
	}
	psw, err := c.Link.DataReadByte(ctx, disasm.AddrMap["PSW"], false)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "===> PSW: 0x%02x\n", psw)
	fmt.Fprintf(c.Out, "       P: %d\n", psw&1)
	fmt.Fprintf(c.Out, "      OV: %d\n", (psw>>2)&1)
	fmt.Fprintf(c.Out, "Reg Bank: %d\n", (psw>>3)&3)
	fmt.Fprintf(c.Out, "      AC: %d\n", (psw>>6)&1)
	fmt.Fprintf(c.Out, "      CY: %d\n", (psw>>7)&1)
	return nil
}

func cmdLoadHex(ctx context.Context, c *Console, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: load_hex %s", Commands["load_hex"].Usage)
	}
	records, err := c.HexParser.Parse(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	fmt.Fprintf(c.Out, "Loading... %s\n", args[0])
	n, err := c.Loader.Load(ctx, records, func(pct int) {
		fmt.Fprintf(c.Out, "\r%d%% completed", pct)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "\nDone: %d Byte(s)\n", n)
	fmt.Fprintln(c.Out, "CPU is running")
	return nil
}

func cmdLoadHexAndSwitch(ctx context.Context, c *Console, args []string) error {
	if err := cmdLoadHex(ctx, c, args); err != nil {
		return err
	}
	c.doUARTSwitch(ctx)
	return nil
}

func cmdWriteCode(ctx context.Context, c *Console, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: write_code %s", Commands["write_code"].Usage)
	}
	addr, err := parseUint16(args[0])
	if err != nil {
		return err
	}
	data, err := parseByteList(args[1:])
	if err != nil {
		return err
	}
	return c.Code.Write(ctx, addr, data)
}

// requireStalled reads CPU status and reports whether the caller should
// proceed. On error it returns false and the error, which callers return.
// If the CPU is still running it prints msg and returns false with a nil
// error; callers then return nil immediately, mirroring the reference console's "Can't ... because CPU is still
// running" guards on code/data access and disassembly.
func requireStalled(ctx context.Context, c *Console, msg string) (bool, error) {
	st, err := c.Link.ReadStatus(ctx)
	if err != nil {
		return false, err
	}
	if !st.Stalled {
		fmt.Fprintln(c.Out, msg)
		return false, nil
	}
	return true, nil
}

func cmdReadCode(ctx context.Context, c *Console, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: read_code %s", Commands["read_code"].Usage)
	}
	ok, err := requireStalled(ctx, c, "==> Can't read code because CPU is still running")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	addr, err := parseUint16(args[0])
	if err != nil {
		return err
	}
	length, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return err
	}
	data, err := c.Code.Read(ctx, addr, int(length))
	if err != nil {
		return err
	}

	if len(args) > 2 {
		f, err := os.Create(args[2])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[2], err)
		}
		defer f.Close()
		for _, b := range data {
			fmt.Fprintf(f, "%d\n", b)
		}
	}

	fmt.Fprintf(c.Out, "==> addr: 0x%x\n", addr)
	fmt.Fprint(c.Out, "==> data: [")
	for i, b := range data {
		if i > 0 {
			fmt.Fprint(c.Out, " ")
		}
		fmt.Fprintf(c.Out, "0x%x", b)
	}
	fmt.Fprintln(c.Out, "]")
	return nil
}

func cmdCounterConfig(ctx context.Context, c *Console, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: counter_config %s", Commands["counter_config"].Usage)
	}
	config, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		return err
	}
	debugReset := (config>>1)&1 != 0
	debugEnable := (config>>2)&1 != 0
	timerReset := (config>>3)&1 != 0
	timerEnable := (config>>4)&1 != 0
	return c.Link.CounterConfig(ctx, debugReset, debugEnable, timerReset, timerEnable)
}

func cmdBreakOn(ctx context.Context, c *Console, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: break_on %s", Commands["break_on"].Usage)
	}
	a, err := parseUint16(args[0])
	if err != nil {
		return err
	}
	b, err := parseUint16(args[1])
	if err != nil {
		return err
	}
	return c.Link.BreakOn(ctx, a, b)
}

func cmdBreakOff(ctx context.Context, c *Console, args []string) error {
	return c.Link.BreakOff(ctx)
}

func cmdNext(ctx context.Context, c *Console, args []string) error {
	return c.Link.RunPulse(ctx)
}

func cmdReadData(ctx context.Context, c *Console, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: read_data %s", Commands["read_data"].Usage)
	}
	ok, err := requireStalled(ctx, c, "==> Can't read data because CPU is still running")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	addr, err := parseDataAddr(args[0])
	if err != nil {
		return err
	}
	length, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return err
	}
	indirect := len(args) > 2 && args[2] != "0"

	var out *os.File
	if len(args) > 3 {
		out, err = os.Create(args[3])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[3], err)
		}
		defer out.Close()
	}

	fmt.Fprint(c.Out, "==> data: [")
	for i := 0; i < int(length); i++ {
		v, err := c.Link.DataReadByte(ctx, addr+byte(i), indirect)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprint(c.Out, " ")
		}
		fmt.Fprintf(c.Out, "0x%02x", v)
		if out != nil {
			fmt.Fprintf(out, "%d\n", v)
		}
	}
	fmt.Fprintln(c.Out, "]")
	return nil
}

func cmdWriteDirectData(ctx context.Context, c *Console, args []string) error {
	return writeData(ctx, c, args, false)
}

func cmdWriteIndirectData(ctx context.Context, c *Console, args []string) error {
	// The reference console's write_indirect_data path addresses every
	// byte in the argument list with indirect=1, never incrementing
	// through a mix of direct and indirect lanes; preserved as-is.
	return writeData(ctx, c, args, true)
}

func writeData(ctx context.Context, c *Console, args []string, indirect bool) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: addr data_list")
	}
	ok, err := requireStalled(ctx, c, "==> Can't write data because CPU is still running")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	addr, err := parseDataAddr(args[0])
	if err != nil {
		return err
	}
	data, err := parseByteList(args[1:])
	if err != nil {
		return err
	}
	for i, v := range data {
		if err := c.Link.DataWriteByte(ctx, addr+byte(i), v, indirect); err != nil {
			return err
		}
	}
	return nil
}

func cmdDisassemble(ctx context.Context, c *Console, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: disassemble %s", Commands["disassemble"].Usage)
	}
	ok, err := requireStalled(ctx, c, "==> Can't read code because CPU is still running")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	addr, err := parseUint16(args[0])
	if err != nil {
		return err
	}
	length, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return err
	}
	data, err := c.Code.Read(ctx, addr, int(length))
	if err != nil {
		return err
	}
	for _, line := range disasm.Disassemble(addr, data) {
		fmt.Fprintln(c.Out, disasm.Format(line))
	}
	return nil
}

func cmdUARTSwitch(ctx context.Context, c *Console, args []string) error {
	c.doUARTSwitch(ctx)
	return nil
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func parseByteList(args []string) ([]byte, error) {
	out := make([]byte, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 0, 8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}
