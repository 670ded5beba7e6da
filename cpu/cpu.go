package cpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"maps"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/zenith/io"
)

// Channel is an I/O channel interface.
type Channel io.Channel

// Machine geometry.
const (
	MEMORY_SIZE    = 1 << 16                 // Bytes of memory.
	WORD_SIZE      = 2                       // Bytes per instruction word.
	REGISTER_COUNT = 4                       // General purpose registers.
	IP_LIMIT       = MEMORY_SIZE - WORD_SIZE // Lowest address that faults on fetch.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"WORD_SIZE":      fmt.Sprintf("%d", WORD_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"IP_LIMIT":       fmt.Sprintf("%d", IP_LIMIT),
}

// Cpu is the simulation context for the ZENITH processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   [MEMORY_SIZE]byte      // Byte addressable memory.
	Register [REGISTER_COUNT]uint16 // Register bank.
	Ip       uint16                 // Current instruction pointer.
	Zero     bool                   // Condition flag.
	Halted   error                  // Halt reason, nil while running.

	Ticks int // Instructions executed since reset.

	channel Channel
}

// NewCpu creates a running CPU with zeroed state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"ip",
		"zero",
		"r0", "r1", "r2", "r3",
		"halt",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%04X", cpu.Ip)
		case "zero":
			strval = strconv.FormatBool(cpu.Zero)
		case "r0", "r1", "r2", "r3":
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%04X (%d)", val, val)
		case "halt":
			strval = "-"
			if cpu.Halted != nil {
				strval = cpu.Halted.Error()
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Clears memory and registers.
// - Zeros the instruction pointer, flag and tick counter.
// - Rewinds the attached channel.
// - Returns the CPU to the running state.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Debugf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.Ip = 0
	cpu.Zero = false
	cpu.Halted = nil
	cpu.Ticks = 0

	if cpu.channel != nil {
		cpu.channel.Rewind()
	}
}

// Load installs a memory image at address 0. Memory past the image is
// zeroed.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > MEMORY_SIZE {
		err = io.ErrImageSize
		return
	}

	clear(cpu.Memory[:])
	copy(cpu.Memory[:], image)

	if cpu.Verbose {
		log.Debugf("cpu: loaded %d bytes", len(image))
	}

	return
}

// SetChannel attaches the channel used by INP and OUT.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// GetChannel returns the attached channel.
func (cpu *Cpu) GetChannel() (channel Channel, err error) {
	if cpu.channel == nil {
		err = ErrChannelInvalid
		return
	}

	channel = cpu.channel
	return
}

// IsRunning returns true until the CPU halts.
func (cpu *Cpu) IsRunning() bool {
	return cpu.Halted == nil
}

// Next is the instruction pointer update selected by an instruction.
type Next struct {
	Jump   bool   // If set, Ip is replaced by Target.
	Target uint16 // Jump target.
}

func advance() Next {
	return Next{}
}

func jump(target uint16) Next {
	return Next{Jump: true, Target: target}
}

// Apply returns the instruction pointer following ip.
func (next Next) Apply(ip uint16) uint16 {
	if next.Jump {
		return next.Target
	}

	return ip + WORD_SIZE
}

// Fetch reads the big-endian instruction word at the instruction pointer.
func (cpu *Cpu) Fetch() (code Code, err error) {
	if cpu.Ip >= IP_LIMIT {
		err = ErrAddress(cpu.Ip)
		return
	}

	code = Code(binary.BigEndian.Uint16(cpu.Memory[cpu.Ip:]))
	return
}

// Step executes a single fetch-decode-execute cycle.
//
// A HLT instruction halts with Halted set to ErrHalt and returns nil.
// A fault halts with Halted set to the fault, which is also returned, and
// leaves Ip on the faulting word. Once halted, Step does nothing.
func (cpu *Cpu) Step() (err error) {
	if cpu.Halted != nil {
		return
	}

	code, err := cpu.Fetch()
	if err != nil {
		cpu.halt(err)
		return
	}

	next, err := cpu.Execute(code)
	if err != nil && !errors.Is(err, ErrHalt) {
		cpu.halt(err)
		return
	}

	cpu.Ip = next.Apply(cpu.Ip)
	cpu.Ticks++

	if err != nil {
		cpu.halt(err)
		err = nil
	}

	return
}

// halt moves the CPU to the terminal state.
func (cpu *Cpu) halt(reason error) {
	cpu.Halted = reason

	if cpu.Verbose {
		log.WithFields(log.Fields{
			"ip":    fmt.Sprintf("%04x", cpu.Ip),
			"ticks": cpu.Ticks,
		}).Debugf("cpu: %v", reason)
	}
}

// Execute executes a single decoded instruction against the register file,
// flag and channel. It does not modify Ip; the returned Next selects the
// following instruction.
func (cpu *Cpu) Execute(code Code) (next Next, err error) {
	if cpu.Verbose {
		log.WithFields(log.Fields{
			"ip":   fmt.Sprintf("%04x", cpu.Ip),
			"code": fmt.Sprintf("%04x", uint16(code)),
		}).Debug(code.String())
	}

	op, reg, data := Decode(code)
	rd := &cpu.Register[reg]
	rs := cpu.Register[code.Src()]

	next = advance()

	switch op {
	case OP_HLT:
		err = ErrHalt
	case OP_LDI:
		*rd = data
	case OP_ADD:
		*rd += rs
		cpu.Zero = *rd == 0
	case OP_SUB:
		*rd -= rs
		cpu.Zero = *rd == 0
	case OP_CMP:
		cpu.Zero = *rd == rs
	case OP_GRT:
		cpu.Zero = *rd > rs
	case OP_GRE:
		cpu.Zero = *rd >= rs
	case OP_LES:
		cpu.Zero = *rd < rs
	case OP_LEE:
		cpu.Zero = *rd <= rs
	case OP_JMP:
		next = jump(data)
	case OP_JZ:
		if cpu.Zero {
			next = jump(data)
		}
	case OP_JNZ:
		if !cpu.Zero {
			next = jump(data)
		}
	case OP_INP:
		var text string
		text, err = cpu.receive()
		if err != nil {
			return
		}
		value, perr := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
		if perr != nil {
			// Unparsable input leaves the register unchanged.
			if cpu.Verbose {
				log.Debugf("cpu: INP R%d ignored %q: %v", reg, text, perr)
			}
			break
		}
		*rd = uint16(value)
	case OP_OUT:
		err = cpu.send(*rd)
	default:
		err = ErrOpcode(code)
	}

	return
}

// receive reads a line from the attached channel.
func (cpu *Cpu) receive() (text string, err error) {
	channel, err := cpu.GetChannel()
	if err != nil {
		return
	}

	text, err = channel.Receive()
	if err != nil {
		err = errors.Join(ErrChannel, err)
	}

	return
}

// send writes a value to the attached channel.
func (cpu *Cpu) send(value uint16) (err error) {
	channel, err := cpu.GetChannel()
	if err != nil {
		return
	}

	err = channel.Send(value)
	if err != nil {
		err = errors.Join(ErrChannel, err)
	}

	return
}
