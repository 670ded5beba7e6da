// Package cpu implements the processor and assembler for the ZENITH system.
//
// The CPU has 64KiB of byte addressable memory, four 16-bit registers
// (r0-r3), an instruction pointer (IP) and a single condition flag.
// Instructions are fixed 16-bit big-endian words laid out as
// [ op:4 | reg:2 | data:10 ], and the same layout is shared by the
// assembler, the processor and the disassembler.
//
// The assembler translates one mnemonic per line into that encoding,
// starting at address 0. Operands are registers (R0-R3) or numeric
// immediates, and $(...) expressions are evaluated at assembly time.
package cpu
