package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecode(t *testing.T) {
	assert := assert.New(t)

	for op := range Op(16) {
		for reg := range uint8(4) {
			for _, data := range []uint16{0, 1, 2, 3, 0x155, 0x2aa, 0x3ff} {
				code := Encode(op, reg, data)
				d_op, d_reg, d_data := Decode(code)
				assert.Equal(op, d_op)
				assert.Equal(reg, d_reg)
				assert.Equal(data, d_data)
			}
		}
	}
}

func TestEncodeMasks(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Code(0x1c07), Encode(OP_LDI, 3, 7))
	assert.Equal(Code(0xffff), Encode(Op(0x1f), 0xff, 0xffff))
	assert.Equal(Code(0x2001), Encode(OP_ADD, 4, 0x401))
}

func TestCodeFields(t *testing.T) {
	assert := assert.New(t)

	code := Code(0x2a03)
	assert.Equal(OP_ADD, code.Op())
	assert.Equal(uint8(2), code.Reg())
	assert.Equal(uint16(0x203), code.Data())
	assert.Equal(uint8(3), code.Src())
}

func TestOpValid(t *testing.T) {
	assert := assert.New(t)

	assert.False(Op(0x4).Valid())
	assert.False(Op(0xf).Valid())
	for _, op := range []Op{OP_HLT, OP_LDI, OP_ADD, OP_CMP, OP_SUB, OP_JMP, OP_JZ,
		OP_JNZ, OP_INP, OP_GRT, OP_GRE, OP_LES, OP_LEE, OP_OUT} {
		assert.True(op.Valid(), op.String())
	}

	assert.Equal("JNZ", OP_JNZ.String())
	assert.Equal("Op(4)", Op(4).String())
	assert.Equal(SHAPE_REG_REG, OP_GRE.Shape())
	assert.Equal(SHAPE_NONE, OP_HLT.Shape())
}

func TestCodeString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{Encode(OP_HLT, 0, 0), "HLT"},
		{Encode(OP_LDI, 2, 7), "LDI R2, 7"},
		{Encode(OP_ADD, 0, 1), "ADD R0, R1"},
		{Encode(OP_SUB, 3, 0x3fe), "SUB R3, R2"},
		{Encode(OP_JMP, 0, 12), "JMP 12"},
		{Encode(OP_JZ, 0, 0), "JZ 0"},
		{Encode(OP_INP, 1, 0), "INP R1"},
		{Encode(OP_OUT, 3, 0), "OUT R3"},
		{Code(0x4abc), ".word 0x4abc"},
		{Code(0xf000), ".word 0xf000"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String())
	}
}
