// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// PROGRAM_LIMIT is the largest number of instructions that fits in memory.
const PROGRAM_LIMIT = MEMORY_SIZE / WORD_SIZE

// Predefined system defines, visible to $(...) expressions.
var sysDefine = map[string]string{
	"LINENO":        "0",
	"PROGRAM_LIMIT": fmt.Sprintf("%d", PROGRAM_LIMIT),
}

// opMap maps upper case mnemonics to operations.
var opMap = func() map[string]Op {
	ops := make(map[string]Op, len(opShape))
	for op := range opShape {
		ops[op.String()] = op
	}
	return ops
}()

var exprRe = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a single pass assembler for the ZENITH instruction set.
//
// Each non-blank source line holds one instruction, `MNEMONIC [op[, op]]`,
// with `;` starting a comment. Jump targets are numeric addresses.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string
	Define    map[string]string // Names visible to $(...) expressions.
}

// Predefine defines a name for $(...) expressions, or redefines an existing one.
func (asm *Assembler) Predefine(name string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Define {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer defines.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine splits a comment-free line into words, after expanding
// $(...) expressions.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Define["LINENO"] = fmt.Sprintf("%d", lineno)

	line = exprRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = errors.Join(ErrOperand, _err)
			}
			return str
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))

	return
}

// operand parses a register or immediate operand.
func (asm *Assembler) operand(word string) (value uint16, is_reg bool, err error) {
	if word[0] == 'R' || word[0] == 'r' {
		reg, perr := strconv.ParseUint(word[1:], 10, 64)
		if perr != nil {
			err = ErrParseRegister(word)
			return
		}
		value = uint16(reg & REG_MASK)
		is_reg = true
		return
	}

	v64, perr := immediate(word)
	if perr != nil {
		err = ErrParseNumber(word)
		return
	}

	// Negative values wrap, as two's complement.
	value = uint16(v64)

	return
}

// immediate parses a decimal, 0x hex or 0b binary integer, with an
// optional leading minus sign. A leading zero is still decimal.
func immediate(word string) (value int64, err error) {
	digits, negative := strings.CutPrefix(word, "-")

	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base, digits = 16, digits[2:]
		case 'b', 'B':
			base, digits = 2, digits[2:]
		}
	}

	if len(digits) == 0 || digits[0] == '-' || digits[0] == '+' {
		err = strconv.ErrSyntax
		return
	}

	value, err = strconv.ParseInt(digits, base, 64)
	if negative {
		value = -value
	}

	return
}

// parseWords encodes the words of a single instruction.
func (asm *Assembler) parseWords(words []string) (code Code, err error) {
	mnemonic := strings.ToUpper(words[0])
	op, ok := opMap[mnemonic]
	if !ok {
		err = ErrUnknownInstruction(mnemonic)
		return
	}

	args := words[1:]
	if len(args) > 2 {
		err = errors.Join(ErrOperand, ErrOperandExtra)
		return
	}

	var reg uint8
	var data uint16
	for n, arg := range args {
		var value uint16
		var is_reg bool
		value, is_reg, err = asm.operand(arg)
		if err != nil {
			err = errors.Join(ErrOperand, err)
			return
		}
		switch {
		case n == 0 && is_reg:
			reg = uint8(value & REG_MASK)
		case n == 0:
			data = value & DATA_MASK
		case is_reg || op.Shape() == SHAPE_REG_REG:
			// Second register lives in the low bits of the data field.
			data = value & REG_MASK
		default:
			data = value & DATA_MASK
		}
	}

	code = Encode(op, reg, data)

	return
}

// currentIp gets the current Ip
func (asm *Assembler) currentIp() int {
	return len(asm.Opcode) * WORD_SIZE
}

// Parse parses an input stream into a Program. On error no Program is
// returned.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	prog, err = asm.ParseLines(func(yield func(string) bool) {
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	})
	if err != nil {
		return
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
	}

	return
}

// ParseLines parses a sequence of source lines into a Program. Each element
// is one source line. On error no Program is returned.
func (asm *Assembler) ParseLines(lines iter.Seq[string]) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Define = maps.Clone(sysDefine)
	maps.Copy(asm.Define, _cpu_defines)
	maps.Copy(asm.Define, asm.predefine)

	for text := range lines {
		lineno += 1

		if asm.Verbose {
			log.Debugf("%v: %v", lineno, text)
		}

		text_comment := strings.SplitN(text, ";", 2)
		line = strings.TrimSpace(text_comment[0])
		if len(line) == 0 {
			continue
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		if len(words) == 0 {
			continue
		}

		if len(asm.Opcode) >= PROGRAM_LIMIT {
			err = ErrProgramTooLarge
			return
		}

		var code Code
		code, err = asm.parseWords(words)
		if err != nil {
			return
		}

		asm.Opcode = append(asm.Opcode, Opcode{
			LineNo: lineno,
			Ip:     asm.currentIp(),
			Words:  words,
			Code:   code,
		})
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// Load assembles source lines and installs the image into the CPU memory.
// Nothing is written unless the whole source assembles. Line numbers in
// errors are slice positions, counting from one.
func (asm *Assembler) Load(cpu *Cpu, lines []string) (err error) {
	prog, err := asm.ParseLines(slices.Values(lines))
	if err != nil {
		return
	}

	err = cpu.Load(prog.Binary())

	return
}
