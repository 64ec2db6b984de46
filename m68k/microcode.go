package m68k

import (
	"fmt"
)

// MicroKind enumerates the primitive operations the executor understands.
type MicroKind uint8

const (
	// MicroZero clears the destination register.
	MicroZero MicroKind = iota
	// MicroSet loads a literal constant into the destination register.
	MicroSet
	// MicroMov copies the source operand into the destination register.
	MicroMov
	// MicroAdd accumulates the source operand into the destination register
	// with unsigned 32-bit wraparound. The source is read, never written.
	MicroAdd
	// MicroScale shifts the destination register left by the operand size's
	// element shift (0, 1 or 2 bits).
	MicroScale
	// MicroRequestMem reads the address operand and suspends the executor,
	// handing the address to the memory subsystem. The fetched value must be
	// deposited into IOBuffer before execution resumes.
	MicroRequestMem
)

func (k MicroKind) String() string {
	switch k {
	case MicroZero:
		return "zero"
	case MicroSet:
		return "set"
	case MicroMov:
		return "mov"
	case MicroAdd:
		return "add"
	case MicroScale:
		return "scale"
	case MicroRequestMem:
		return "fetch"
	default:
		return "unknown"
	}
}

// MicroOp is one primitive register action of an effective-address
// computation. Ops are built with the package constructors and applied
// atomically, in queue order.
type MicroOp struct {
	Kind MicroKind
	Dst  Reg // primary operand; the address source for MicroRequestMem
	Src  Reg
	Val  uint32
	Size Size
}

// Zero emits r := 0.
func Zero(r Reg) MicroOp { return MicroOp{Kind: MicroZero, Dst: r} }

// Set emits r := x for a literal constant x.
func Set(r Reg, x uint32) MicroOp { return MicroOp{Kind: MicroSet, Dst: r, Val: x} }

// Mov emits dst := read(src).
func Mov(dst, src Reg) MicroOp { return MicroOp{Kind: MicroMov, Dst: dst, Src: src} }

// Add emits r := read(r) + read(x) with wraparound.
func Add(r, x Reg) MicroOp { return MicroOp{Kind: MicroAdd, Dst: r, Src: x} }

// Scale emits r := read(r) << s.shift().
func Scale(r Reg, s Size) MicroOp { return MicroOp{Kind: MicroScale, Dst: r, Size: s} }

// RequestMem emits a fetch at the address read from addr.
func RequestMem(addr Reg) MicroOp { return MicroOp{Kind: MicroRequestMem, Dst: addr} }

func (op MicroOp) String() string {
	switch op.Kind {
	case MicroZero:
		return fmt.Sprintf("zero %v", op.Dst)
	case MicroSet:
		return fmt.Sprintf("set %v, $%x", op.Dst, op.Val)
	case MicroMov:
		return fmt.Sprintf("mov %v, %v", op.Dst, op.Src)
	case MicroAdd:
		return fmt.Sprintf("add %v, %v", op.Dst, op.Src)
	case MicroScale:
		return fmt.Sprintf("scale %v, %v", op.Dst, op.Size)
	case MicroRequestMem:
		return fmt.Sprintf("fetch (%v)", op.Dst)
	default:
		return "unknown"
	}
}

// microProgram is the pending micro-op queue of one core: a slice with a
// read cursor. Order is load-bearing; later ops read the side effects of
// earlier ones.
type microProgram struct {
	ops  []MicroOp
	head int
}

func (p *microProgram) push(op MicroOp) {
	p.ops = append(p.ops, op)
}

func (p *microProgram) pop() (MicroOp, bool) {
	if p.head == len(p.ops) {
		return MicroOp{}, false
	}
	op := p.ops[p.head]
	p.head++
	if p.head == len(p.ops) {
		// fully drained, reuse the backing array
		p.ops = p.ops[:0]
		p.head = 0
	}
	return op, true
}

func (p *microProgram) pending() int {
	return len(p.ops) - p.head
}

func (p *microProgram) reset() {
	p.ops = p.ops[:0]
	p.head = 0
}
