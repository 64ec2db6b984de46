package m68k

import (
	"fmt"
)

// nbScratch is the number of indexed scratch registers. The scratch bank
// additionally holds In0, In1 and IOBuffer at fixed slots past the indexed
// part.
const nbScratch = 8

type regKind uint8

const (
	regData regKind = iota
	regAddr
	regPC
	regCCR
	regScratch
	regIn0
	regIn1
	regIOBuffer
	regImmediate
)

// Reg refers to exactly one storage location of the register file: a data or
// address register, the program counter, the condition-code register, one of
// the scratch registers used during address computation, or an immediate
// literal standing in for a register read.
type Reg struct {
	kind regKind
	n    uint8
	imm  int32
}

// Data refers to data register Dn.
func Data(n uint8) Reg { return Reg{kind: regData, n: n} }

// Addr refers to address register An.
func Addr(n uint8) Reg { return Reg{kind: regAddr, n: n} }

// Tmp refers to scratch register n of the indexed scratch bank.
func Tmp(n uint8) Reg { return Reg{kind: regScratch, n: n} }

// Immediate refers to a read-only literal. Reading it yields the value
// reinterpreted as unsigned 32-bit; writing through it is a fatal internal
// error.
func Immediate(x int32) Reg { return Reg{kind: regImmediate, imm: x} }

// References to the singleton registers.
var (
	PC       = Reg{kind: regPC}
	CCR      = Reg{kind: regCCR}
	In0      = Reg{kind: regIn0}
	In1      = Reg{kind: regIn1}
	IOBuffer = Reg{kind: regIOBuffer}
)

func (r Reg) String() string {
	switch r.kind {
	case regData:
		return fmt.Sprintf("d%d", r.n)
	case regAddr:
		return fmt.Sprintf("a%d", r.n)
	case regPC:
		return "pc"
	case regCCR:
		return "ccr"
	case regScratch:
		return fmt.Sprintf("tmp%d", r.n)
	case regIn0:
		return "in0"
	case regIn1:
		return "in1"
	case regIOBuffer:
		return "iobuf"
	case regImmediate:
		return fmt.Sprintf("#%d", r.imm)
	default:
		return "unknown"
	}
}

// check reports an index outside the referenced bank. Lowerings call it for
// every register an emitted micro-op will touch, so the register file itself
// never sees an invalid index.
func (r Reg) check() error {
	switch r.kind {
	case regData, regAddr:
		if r.n >= 8 {
			return RegIndexError(r.n)
		}
	case regScratch:
		if r.n >= nbScratch {
			return RegIndexError(r.n)
		}
	}
	return nil
}

// Registers is the register file of one 68000 core: the programmer-visible
// registers plus the scratch bank used only during effective-address
// computation.
type Registers struct {
	D   [8]uint32
	A   [8]uint32
	PC  uint32
	CCR uint8

	scratch [nbScratch + 3]uint32
}

// Read returns the 32-bit value of the referenced location. The
// condition-code register is zero-extended; an immediate reference yields its
// literal reinterpreted as unsigned.
func (regs *Registers) Read(r Reg) uint32 {
	switch r.kind {
	case regData:
		return regs.D[r.n]
	case regAddr:
		return regs.A[r.n]
	case regPC:
		return regs.PC
	case regCCR:
		return uint32(regs.CCR)
	case regScratch:
		return regs.scratch[r.n]
	case regIn0:
		return regs.scratch[nbScratch]
	case regIn1:
		return regs.scratch[nbScratch+1]
	case regIOBuffer:
		return regs.scratch[nbScratch+2]
	default: // regImmediate
		return uint32(r.imm)
	}
}

// Write stores value at the referenced location. The condition-code register
// keeps only the low byte. Writing through an immediate reference is a
// consistency violation no well-formed micro-program can produce, so it
// panics instead of returning an error.
func (regs *Registers) Write(r Reg, value uint32) {
	switch r.kind {
	case regData:
		regs.D[r.n] = value
	case regAddr:
		regs.A[r.n] = value
	case regPC:
		regs.PC = value
	case regCCR:
		regs.CCR = uint8(value)
	case regScratch:
		regs.scratch[r.n] = value
	case regIn0:
		regs.scratch[nbScratch] = value
	case regIn1:
		regs.scratch[nbScratch+1] = value
	case regIOBuffer:
		regs.scratch[nbScratch+2] = value
	default: // regImmediate
		panic("write through immediate operand reference")
	}
}

func (regs *Registers) String() string {
	result := fmt.Sprintf("PC %08x CCR %02x\n", regs.PC, regs.CCR)
	for i := range regs.D {
		result += fmt.Sprintf("D%d %08x ", i, regs.D[i])
	}
	result += "\n"
	for i := range regs.A {
		result += fmt.Sprintf("A%d %08x ", i, regs.A[i])
	}
	result += "\n"

	return result
}
