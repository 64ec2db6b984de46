// Package m68k implements the Motorola 68000 core of the Genesis emulator.
//
// The current core is the effective-address engine: an addressing-mode
// descriptor (EffAddr) is lowered into a queue of micro-operations which a
// small executor applies to the register file one at a time. Memory is never
// touched directly; a RequestMem micro-operation suspends the executor and
// hands the computed address to the attached bus (or to an external caller
// driving the two-phase Run/Resume protocol), and the fetched value is staged
// through the IOBuffer scratch register on resumption.
//
// Instruction dispatch, condition codes and interrupts are not part of this
// layer; the decoder in this package only covers the addressing-mode field
// and its extension words.
package m68k
