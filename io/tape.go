package io

import (
	"bufio"
	"fmt"
	"io"
)

// Tape provides line oriented I/O over a byte stream.
// Each Receive reads one line from Input; each Send writes one
// "> OUT: <value>" line to Output.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Prompt bool // If set, writes an input prompt to Output before each read.

	scanner *bufio.Scanner
	scanned io.Reader
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive reads the next line from the input stream, without the line
// terminator. End of input is reported as io.EOF.
func (tc *Tape) Receive() (text string, err error) {
	if tc.Input == nil {
		err = ErrChannelClosed
		return
	}

	if tc.Prompt && tc.Output != nil {
		_, err = fmt.Fprint(tc.Output, "> INP: ")
		if err != nil {
			return
		}
	}

	if tc.scanner == nil || tc.scanned != tc.Input {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanned = tc.Input
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	text = tc.scanner.Text()
	return
}

// Send writes a register value as an unsigned decimal line.
func (tc *Tape) Send(value uint16) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = fmt.Fprintf(tc.Output, "> OUT: %d\n", value)
	return
}
