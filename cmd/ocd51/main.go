// ocd51 is the interactive on-chip debugger console for the 8051 OCD
// target: it opens a serial link, speaks the CRC-framed debug protocol
// over it, and drops the user into a console that can inspect and
// control the CPU, load Intel HEX images, and pass the UART straight
// through to the running program.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/PulseRain/M10-high-speed-config-software/internal/codemem"
	"github.com/PulseRain/M10-high-speed-config-software/internal/console"
	"github.com/PulseRain/M10-high-speed-config-software/internal/hexfile"
	"github.com/PulseRain/M10-high-speed-config-software/internal/lineedit"
	"github.com/PulseRain/M10-high-speed-config-software/internal/ocdproto"
	"github.com/PulseRain/M10-high-speed-config-software/internal/transport"
)

func main() {
	os.Exit(submain())
}

func submain() int {
	log.SetFlags(log.Lmsgprefix | log.Lmicroseconds)
	log.SetPrefix("ocd51: ")

	port := pflag.StringP("port", "p", "COM4", "serial port the OCD target is attached to")
	baud := pflag.IntP("baud", "b", 115200, "serial baud rate")
	debug := pflag.BoolP("debug", "d", false, "log every frame retry to stderr")
	pflag.Parse()

	logger := log.Default()
	if !*debug {
		logger = log.New(io.Discard, "", 0)
	}

	serial, err := transport.OpenSerial(*port, *baud)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening %s: %v\n", *port, err)
		return 1
	}
	defer serial.Close()

	link := ocdproto.NewLink(serial, logger)
	code := &codemem.IO{Link: link}
	loader := &hexfile.Loader{Link: link, Code: code}
	hexParser := hexfile.IntelHexParser{}

	editor, err := lineedit.NewConsole(os.Stdin, os.Stdout, commandNames())
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up terminal: %v\n", err)
		return 1
	}
	defer editor.Close()

	fmt.Fprintln(os.Stdout, "Hint: use \"uart_switch\" to toggle between UART Raw Mode and Debug Console Mode")
	c := console.NewConsole(link, code, loader, hexParser, editor, serial, os.Stdout)

	if err := c.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		return 1
	}
	return 0
}

func commandNames() []string {
	names := make([]string, 0, len(console.Commands))
	for name := range console.Commands {
		names = append(names, name)
	}
	return names
}
