package cpu

import (
	"github.com/ezrec/zenith/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalt           = translate.Error("halted")
	ErrChannel        = translate.Error("channel")
	ErrChannelInvalid = translate.Error("channel invalid")

	// Assembler errors
	ErrOperand         = translate.Error("operand")
	ErrOperandExtra    = translate.Error("excessive operands")
	ErrProgramTooLarge = translate.Error("program exceeds memory")
)

// ErrOpcode is the fault raised by a word with no defined handler.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("unknown opcode %X in 0x%04x", int(eo.Op()), uint16(eo))
}

// Op returns the offending 4-bit operation.
func (eo ErrOpcode) Op() Op {
	return Code(eo).Op()
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddress is the fault raised by a fetch past the last full word.
type ErrAddress uint16

func (ea ErrAddress) Error() string {
	return f("address 0x%04x out of range", uint16(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

type ErrUnknownInstruction string

func (eu ErrUnknownInstruction) Error() string {
	return f("unknown instruction %v", string(eu))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
