package cpu

import (
	"encoding/binary"
	"fmt"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and
// generated instruction word.
type Opcode struct {
	LineNo int
	Ip     int
	Words  []string
	Code   Code
}

// String renders the opcode as a listing line.
func (op Opcode) String() string {
	return fmt.Sprintf("%04x: %04x  %v", op.Ip, uint16(op.Code), op.Code)
}

type Program struct {
	Opcodes []Opcode
}

// Debug returns the opcode assembled at ip, or nil.
func (prog *Program) Debug(ip uint16) (op *Opcode) {
	for n := range prog.Opcodes {
		if int(ip) == prog.Opcodes[n].Ip {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Binary returns the big-endian memory image of the program.
func (prog *Program) Binary() (bin []byte) {
	for ip, code := range prog.Codes() {
		end := int(ip) + WORD_SIZE
		if end > len(bin) {
			bin = append(bin, make([]byte, end-len(bin))...)
		}
		binary.BigEndian.PutUint16(bin[ip:], uint16(code))
	}

	return
}

// Codes iterates the instruction words by address.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(ip uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(uint16(op.Ip), op.Code) {
				return
			}
		}
	}
}

// Disassemble builds a program listing from a memory image. A trailing odd
// byte is ignored.
func Disassemble(image []byte) (prog *Program) {
	prog = &Program{}

	for n := 0; n+1 < len(image); n += WORD_SIZE {
		code := Code(binary.BigEndian.Uint16(image[n:]))
		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: n/WORD_SIZE + 1,
			Ip:     n,
			Words:  strings.Fields(strings.ReplaceAll(code.String(), ",", " ")),
			Code:   code,
		})
	}

	return
}
