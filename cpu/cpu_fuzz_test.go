package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/zenith/io"
)

func FuzzEncode(f *testing.F) {
	f.Add(uint8(0), uint8(0), uint16(0))
	f.Add(uint8(0xff), uint8(0xff), uint16(0xffff))
	f.Add(uint8(2), uint8(1), uint16(3))

	f.Fuzz(func(t *testing.T, op uint8, reg uint8, data uint16) {
		assert := assert.New(t)

		code := Encode(Op(op), reg, data)
		d_op, d_reg, d_data := Decode(code)
		assert.Equal(Op(op&OP_MASK), d_op)
		assert.Equal(reg&REG_MASK, d_reg)
		assert.Equal(data&DATA_MASK, d_data)
		assert.Equal(code, Encode(d_op, d_reg, d_data))
	})
}

func FuzzCpu(f *testing.F) {
	for op := range 16 {
		f.Add(uint16(op<<12), true, "7")
		f.Add(uint16(op<<12|0xfff), false, "junk")
	}

	f.Fuzz(func(t *testing.T, word uint16, zero bool, input string) {
		assert := assert.New(t)

		code := Code(word)

		cpu := NewCpu()
		cpu.Ip = 0x1ab
		cpu.Zero = zero
		cpu.Register = [REGISTER_COUNT]uint16{0x5060, 0x5161, 0x5262, 0x5363}
		cpu.Memory[0x1ab] = byte(word >> 8)
		cpu.Memory[0x1ac] = byte(word)

		queue := &io.Queue{Input: []string{input}}
		cpu.SetChannel(queue)

		pre := cpu.Register

		err := cpu.Step()

		op := code.Op()
		if !op.Valid() {
			assert.Error(err)
			assert.ErrorIs(cpu.Halted, ErrOpcode(0))
			assert.Equal(uint16(0x1ab), cpu.Ip)
			assert.Equal(pre, cpu.Register)
			return
		}

		assert.NoError(err, code.String())

		switch op {
		case OP_HLT:
			assert.False(cpu.IsRunning())
			assert.Equal(uint16(0x1ad), cpu.Ip)
		case OP_JMP:
			assert.Equal(code.Data(), cpu.Ip)
		case OP_JZ:
			if zero {
				assert.Equal(code.Data(), cpu.Ip)
			} else {
				assert.Equal(uint16(0x1ad), cpu.Ip)
			}
		case OP_JNZ:
			if !zero {
				assert.Equal(code.Data(), cpu.Ip)
			} else {
				assert.Equal(uint16(0x1ad), cpu.Ip)
			}
		default:
			assert.True(cpu.IsRunning())
			assert.Equal(uint16(0x1ad), cpu.Ip)
		}

		// Only the destination register may change.
		for n := range REGISTER_COUNT {
			if uint8(n) == code.Reg() {
				continue
			}
			assert.Equal(pre[n], cpu.Register[n], code.String())
		}

		switch op {
		case OP_OUT:
			assert.Equal([]uint16{pre[code.Reg()]}, queue.Output)
		case OP_INP:
			assert.Equal(0, queue.Remaining())
		default:
			assert.Nil(queue.Output)
		}
	})
}
