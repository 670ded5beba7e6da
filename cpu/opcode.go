package cpu

import (
	"fmt"
)

// Op is the 4-bit operation code of an instruction word.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_HLT = Op(0x0) // HLT
	OP_LDI = Op(0x1) // LDI
	OP_ADD = Op(0x2) // ADD
	OP_CMP = Op(0x3) // CMP
	OP_SUB = Op(0x5) // SUB
	OP_JMP = Op(0x6) // JMP
	OP_JZ  = Op(0x7) // JZ
	OP_JNZ = Op(0x8) // JNZ
	OP_INP = Op(0x9) // INP
	OP_GRT = Op(0xA) // GRT
	OP_GRE = Op(0xB) // GRE
	OP_LES = Op(0xC) // LES
	OP_LEE = Op(0xD) // LEE
	OP_OUT = Op(0xE) // OUT
)

// Shape describes which fields of a word an operation uses.
type Shape int

const (
	SHAPE_NONE    = Shape(0) // No operands.
	SHAPE_REG     = Shape(1) // Register field only.
	SHAPE_IMM     = Shape(2) // Data field as an immediate.
	SHAPE_REG_IMM = Shape(3) // Register field, data field as an immediate.
	SHAPE_REG_REG = Shape(4) // Register field, data field low 2 bits as a register.
)

var opShape = map[Op]Shape{
	OP_HLT: SHAPE_NONE,
	OP_LDI: SHAPE_REG_IMM,
	OP_ADD: SHAPE_REG_REG,
	OP_CMP: SHAPE_REG_REG,
	OP_SUB: SHAPE_REG_REG,
	OP_JMP: SHAPE_IMM,
	OP_JZ:  SHAPE_IMM,
	OP_JNZ: SHAPE_IMM,
	OP_INP: SHAPE_REG,
	OP_GRT: SHAPE_REG_REG,
	OP_GRE: SHAPE_REG_REG,
	OP_LES: SHAPE_REG_REG,
	OP_LEE: SHAPE_REG_REG,
	OP_OUT: SHAPE_REG,
}

// Valid returns true if the operation has a defined handler.
func (op Op) Valid() bool {
	_, ok := opShape[op]
	return ok
}

// Shape returns the operand shape of the operation.
func (op Op) Shape() Shape {
	return opShape[op]
}

// Field masks and shifts of an instruction word.
const (
	OP_SHIFT  = 12
	OP_MASK   = 0xF
	REG_SHIFT = 10
	REG_MASK  = 0x3
	DATA_MASK = 0x3FF
)

// Code is a single 16-bit instruction word: [ op:4 | reg:2 | data:10 ].
type Code uint16

// Encode packs an operation, register and data field into a word.
// Out of range fields are masked.
func Encode(op Op, reg uint8, data uint16) Code {
	return Code((uint16(op)&OP_MASK)<<OP_SHIFT |
		(uint16(reg)&REG_MASK)<<REG_SHIFT |
		(data & DATA_MASK))
}

// Decode is the inverse of Encode.
func Decode(code Code) (op Op, reg uint8, data uint16) {
	return code.Op(), code.Reg(), code.Data()
}

// Op returns the operation field.
func (code Code) Op() Op {
	return Op((uint16(code) >> OP_SHIFT) & OP_MASK)
}

// Reg returns the register field.
func (code Code) Reg() uint8 {
	return uint8((uint16(code) >> REG_SHIFT) & REG_MASK)
}

// Data returns the 10-bit data field.
func (code Code) Data() uint16 {
	return uint16(code) & DATA_MASK
}

// Src returns the source register packed in the low bits of the data field.
func (code Code) Src() uint8 {
	return uint8(code.Data() & REG_MASK)
}

// String disassembles the word into assembler text.
func (code Code) String() string {
	op := code.Op()
	if !op.Valid() {
		return fmt.Sprintf(".word 0x%04x", uint16(code))
	}

	switch op.Shape() {
	case SHAPE_REG:
		return fmt.Sprintf("%v R%d", op, code.Reg())
	case SHAPE_IMM:
		return fmt.Sprintf("%v %d", op, code.Data())
	case SHAPE_REG_IMM:
		return fmt.Sprintf("%v R%d, %d", op, code.Reg(), code.Data())
	case SHAPE_REG_REG:
		return fmt.Sprintf("%v R%d, R%d", op, code.Reg(), code.Src())
	}

	return op.String()
}
