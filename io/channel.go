// Package io provides the I/O channels the ZENITH processor uses for its
// INP and OUT instructions, and the on-disk format of assembled images.
package io

// Channel defines the interface for all I/O channels in the ZENITH system.
// Channels are line oriented: INP receives one line of text, OUT sends one
// register value.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive blocks until a line of input is available.
	Receive() (text string, err error)
	// Send writes a single register value to the channel.
	Send(value uint16) error
}
