package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/n-ulricksen/nescore/nes"
)

const monitorHelp = "s/space: step  f: frame  c: 100 steps  r: reset  q: quit"

// runMonitor single-steps the console from the keyboard. A terminal is put
// in raw mode so each key acts at once; other input is read as a stream of
// command characters.
func runMonitor(console *nes.Console, in *os.File, out io.Writer) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return monitor(console, bufio.NewReader(in), out, "\n")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return errors.Wrap(err, "setting terminal raw mode")
	}
	defer term.Restore(fd, oldState)

	return monitor(console, bufio.NewReader(in), out, "\r\n")
}

func monitor(console *nes.Console, in io.ByteReader, out io.Writer, eol string) error {
	fmt.Fprint(out, monitorHelp, eol)
	fmt.Fprint(out, nes.FormatTraceLine(console.State()), eol)

	for {
		key, err := in.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading monitor input")
		}

		switch key {
		case 's', ' ':
			_, err = console.Step()
		case 'f':
			err = console.StepFrame()
		case 'c':
			_, err = console.StepN(100)
		case 'r':
			console.Reset()
		case 'q', 0x03: // Ctrl-C arrives as a byte in raw mode.
			return nil
		default:
			continue
		}

		if err != nil {
			// Report and stay in the monitor; the CPU has not moved.
			fmt.Fprint(out, "halted: ", err, eol)
			continue
		}
		fmt.Fprint(out, nes.FormatTraceLine(console.State()), eol)
	}
}
