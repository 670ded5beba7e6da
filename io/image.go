package io

import (
	"encoding/binary"
	"io"
)

// IMAGE_LIMIT is the largest image that fits in processor memory.
const IMAGE_LIMIT = 1 << 16

// Image is an assembled memory image: big-endian words from address 0.
type Image []byte

// Unmarshal reads a raw image, rejecting images larger than memory.
func (img *Image) Unmarshal(r io.Reader) (err error) {
	data, err := io.ReadAll(io.LimitReader(r, IMAGE_LIMIT+1))
	if err != nil {
		return
	}

	if len(data) > IMAGE_LIMIT {
		err = ErrImageSize
		return
	}

	*img = Image(data)
	return
}

// Marshal writes the raw image.
func (img Image) Marshal(w io.Writer) (err error) {
	if len(img) > IMAGE_LIMIT {
		err = ErrImageSize
		return
	}

	_, err = w.Write(img)
	return
}

// Words returns the number of complete instruction words in the image.
func (img Image) Words() int {
	return len(img) / 2
}

// Word returns the big-endian word at an even byte offset.
func (img Image) Word(index int) uint16 {
	return binary.BigEndian.Uint16(img[index*2:])
}
