package m68k

import (
	"fmt"
)

type (
	// EffAddr is an addressing-mode descriptor, the translator's sole input.
	// The set of variants is closed; each one carries exactly the operand
	// fields its mode needs and is immutable once built. Descriptors are
	// produced by DecodeEA or constructed directly, e.g. by tests.
	EffAddr interface {
		fmt.Stringer
		// lower emits the micro-op sequence that computes the operand's
		// value into In0. It validates the descriptor before emitting
		// anything, so a bad descriptor never produces a partial program.
		lower() ([]MicroOp, error)
	}

	// DataReg is data register direct: the operand is Dn itself.
	DataReg struct {
		R uint8
	}

	// AddrReg is address register direct: the operand is An itself.
	AddrReg struct {
		R uint8
	}

	// AddrInd is address register indirect, (An).
	AddrInd struct {
		R uint8
	}

	// PostInc is (An)+: fetch at An, then step An by the operand width.
	PostInc struct {
		R    uint8
		Size Size
	}

	// PreDec is -(An): step An down by the operand width, then fetch.
	PreDec struct {
		R    uint8
		Size Size
	}

	// AddrDisp is (d16,An): fetch at An plus a sign-extended displacement.
	AddrDisp struct {
		R    uint8
		Disp int16
	}

	// AddrIdx is (d,An,Xn): fetch at An plus displacement plus the index
	// operand scaled by the operand width.
	AddrIdx struct {
		R     uint8
		Index Reg
		Disp  int32
		Size  Size
	}

	// AddrIndPostIdx is ([d,An],Xn,od): fetch the intermediate pointer at
	// An+d, then add the scaled index and outer displacement and fetch
	// again. The index is combined after the first fetch.
	AddrIndPostIdx struct {
		R     uint8
		Disp  int32
		Index Reg
		Size  Size
		Outer int32
	}

	// AddrIndPreIdx is ([d,An,Xn],od): the scaled index joins the address
	// before the intermediate fetch, only the outer displacement after.
	AddrIndPreIdx struct {
		R     uint8
		Disp  int32
		Index Reg
		Size  Size
		Outer int32
	}

	// PCDisp is (d16,PC).
	PCDisp struct {
		Disp int32
	}

	// PCIdx is (d,PC,Xn).
	PCIdx struct {
		Disp  int32
		Index Reg
		Size  Size
	}

	// PCIndPostIdx is ([d,PC],Xn,od).
	PCIndPostIdx struct {
		Disp  int32
		Index Reg
		Size  Size
		Outer int32
	}

	// PCIndPreIdx is ([d,PC,Xn],od).
	PCIndPreIdx struct {
		Disp  int32
		Index Reg
		Size  Size
		Outer int32
	}

	// AbsShort is (xxx).W: a 16-bit address, sign-extended to 32 bits.
	AbsShort struct {
		Address int16
	}

	// AbsLong is (xxx).L: a full 32-bit address.
	AbsLong struct {
		Address uint32
	}

	// Imm is #<data>. The literal stands in for its own location: the
	// micro-program requests a fetch at the value so that the memory
	// subsystem stays the single source of operand bytes.
	Imm struct {
		Value uint32
	}
)

// Lower translates an addressing-mode descriptor into the ordered micro-op
// sequence that computes it. Lower never inspects a register file; side
// effects happen only when a CPU executes the returned sequence.
func Lower(ea EffAddr) ([]MicroOp, error) {
	return ea.lower()
}

// -------------------------------------------------------------------
// register direct

func (ea DataReg) lower() ([]MicroOp, error) {
	d := Data(ea.R)
	if err := d.check(); err != nil {
		return nil, err
	}
	return []MicroOp{Mov(In0, d)}, nil
}

func (ea AddrReg) lower() ([]MicroOp, error) {
	a := Addr(ea.R)
	if err := a.check(); err != nil {
		return nil, err
	}
	return []MicroOp{Mov(In0, a)}, nil
}

// -------------------------------------------------------------------
// address register indirect

func (ea AddrInd) lower() ([]MicroOp, error) {
	a := Addr(ea.R)
	if err := a.check(); err != nil {
		return nil, err
	}
	return []MicroOp{
		RequestMem(a),
		Mov(In0, IOBuffer),
	}, nil
}

func (ea PostInc) lower() ([]MicroOp, error) {
	a := Addr(ea.R)
	if err := a.check(); err != nil {
		return nil, err
	}
	return []MicroOp{
		RequestMem(a),
		Mov(In0, IOBuffer),
		Add(a, Immediate(int32(ea.Size))),
	}, nil
}

func (ea PreDec) lower() ([]MicroOp, error) {
	a := Addr(ea.R)
	if err := a.check(); err != nil {
		return nil, err
	}
	return []MicroOp{
		Add(a, Immediate(-int32(ea.Size))),
		RequestMem(a),
		Mov(In0, IOBuffer),
	}, nil
}

// -------------------------------------------------------------------
// base + displacement

func (ea AddrDisp) lower() ([]MicroOp, error) {
	a := Addr(ea.R)
	if err := a.check(); err != nil {
		return nil, err
	}
	return []MicroOp{
		Mov(In0, a),
		Add(In0, Immediate(int32(ea.Disp))),
		RequestMem(In0),
		Mov(In0, IOBuffer),
	}, nil
}

func (ea PCDisp) lower() ([]MicroOp, error) {
	return []MicroOp{
		Mov(In0, PC),
		Add(In0, Immediate(ea.Disp)),
		RequestMem(In0),
		Mov(In0, IOBuffer),
	}, nil
}

// -------------------------------------------------------------------
// base + displacement + scaled index

func (ea AddrIdx) lower() ([]MicroOp, error) {
	a := Addr(ea.R)
	if err := a.check(); err != nil {
		return nil, err
	}
	if err := ea.Index.check(); err != nil {
		return nil, err
	}
	return []MicroOp{
		Mov(In0, a),
		Add(In0, Immediate(ea.Disp)),
		Mov(In1, ea.Index),
		Scale(In1, ea.Size),
		Add(In0, In1),
		RequestMem(In0),
		Mov(In0, IOBuffer),
	}, nil
}

func (ea PCIdx) lower() ([]MicroOp, error) {
	if err := ea.Index.check(); err != nil {
		return nil, err
	}
	return []MicroOp{
		Mov(In0, PC),
		Add(In0, Immediate(ea.Disp)),
		Mov(In1, ea.Index),
		Scale(In1, ea.Size),
		Add(In0, In1),
		RequestMem(In0),
		Mov(In0, IOBuffer),
	}, nil
}

// -------------------------------------------------------------------
// memory indirect
//
// Both variants fetch exactly twice. The first fetch obtains the
// intermediate pointer at base+displacement; where the scaled index joins
// the address relative to that fetch is the only difference between the
// pre-indexed and post-indexed forms.

func (ea AddrIndPostIdx) lower() ([]MicroOp, error) {
	a := Addr(ea.R)
	if err := a.check(); err != nil {
		return nil, err
	}
	if err := ea.Index.check(); err != nil {
		return nil, err
	}
	return []MicroOp{
		Mov(In0, a),
		Add(In0, Immediate(ea.Disp)),
		RequestMem(In0),
		Mov(In0, IOBuffer),
		Mov(In1, ea.Index),
		Scale(In1, ea.Size),
		Add(In0, In1),
		Add(In0, Immediate(ea.Outer)),
		RequestMem(In0),
		Mov(In0, IOBuffer),
	}, nil
}

func (ea AddrIndPreIdx) lower() ([]MicroOp, error) {
	a := Addr(ea.R)
	if err := a.check(); err != nil {
		return nil, err
	}
	if err := ea.Index.check(); err != nil {
		return nil, err
	}
	return []MicroOp{
		Mov(In0, a),
		Add(In0, Immediate(ea.Disp)),
		Mov(In1, ea.Index),
		Scale(In1, ea.Size),
		Add(In0, In1),
		RequestMem(In0),
		Mov(In0, IOBuffer),
		Add(In0, Immediate(ea.Outer)),
		RequestMem(In0),
		Mov(In0, IOBuffer),
	}, nil
}

func (ea PCIndPostIdx) lower() ([]MicroOp, error) {
	if err := ea.Index.check(); err != nil {
		return nil, err
	}
	return []MicroOp{
		Mov(In0, PC),
		Add(In0, Immediate(ea.Disp)),
		RequestMem(In0),
		Mov(In0, IOBuffer),
		Mov(In1, ea.Index),
		Scale(In1, ea.Size),
		Add(In0, In1),
		Add(In0, Immediate(ea.Outer)),
		RequestMem(In0),
		Mov(In0, IOBuffer),
	}, nil
}

func (ea PCIndPreIdx) lower() ([]MicroOp, error) {
	if err := ea.Index.check(); err != nil {
		return nil, err
	}
	return []MicroOp{
		Mov(In0, PC),
		Add(In0, Immediate(ea.Disp)),
		Mov(In1, ea.Index),
		Scale(In1, ea.Size),
		Add(In0, In1),
		RequestMem(In0),
		Mov(In0, IOBuffer),
		Add(In0, Immediate(ea.Outer)),
		RequestMem(In0),
		Mov(In0, IOBuffer),
	}, nil
}

// -------------------------------------------------------------------
// absolute word and long, immediate

func (ea AbsShort) lower() ([]MicroOp, error) {
	return []MicroOp{
		RequestMem(Immediate(int32(ea.Address))),
		Mov(In0, IOBuffer),
	}, nil
}

func (ea AbsLong) lower() ([]MicroOp, error) {
	return []MicroOp{
		RequestMem(Immediate(int32(ea.Address))),
		Mov(In0, IOBuffer),
	}, nil
}

func (ea Imm) lower() ([]MicroOp, error) {
	return []MicroOp{
		RequestMem(Immediate(int32(ea.Value))),
		Mov(In0, IOBuffer),
	}, nil
}

// -------------------------------------------------------------------
// Motorola syntax

func (ea DataReg) String() string { return fmt.Sprintf("d%d", ea.R) }
func (ea AddrReg) String() string { return fmt.Sprintf("a%d", ea.R) }
func (ea AddrInd) String() string { return fmt.Sprintf("(a%d)", ea.R) }
func (ea PostInc) String() string { return fmt.Sprintf("(a%d)+", ea.R) }
func (ea PreDec) String() string  { return fmt.Sprintf("-(a%d)", ea.R) }

func (ea AddrDisp) String() string { return fmt.Sprintf("(%d,a%d)", ea.Disp, ea.R) }

func (ea AddrIdx) String() string {
	return fmt.Sprintf("(%d,a%d,%v*%d)", ea.Disp, ea.R, ea.Index, uint32(ea.Size))
}

func (ea AddrIndPostIdx) String() string {
	return fmt.Sprintf("([%d,a%d],%v*%d,%d)", ea.Disp, ea.R, ea.Index, uint32(ea.Size), ea.Outer)
}

func (ea AddrIndPreIdx) String() string {
	return fmt.Sprintf("([%d,a%d,%v*%d],%d)", ea.Disp, ea.R, ea.Index, uint32(ea.Size), ea.Outer)
}

func (ea PCDisp) String() string { return fmt.Sprintf("(%d,pc)", ea.Disp) }

func (ea PCIdx) String() string {
	return fmt.Sprintf("(%d,pc,%v*%d)", ea.Disp, ea.Index, uint32(ea.Size))
}

func (ea PCIndPostIdx) String() string {
	return fmt.Sprintf("([%d,pc],%v*%d,%d)", ea.Disp, ea.Index, uint32(ea.Size), ea.Outer)
}

func (ea PCIndPreIdx) String() string {
	return fmt.Sprintf("([%d,pc,%v*%d],%d)", ea.Disp, ea.Index, uint32(ea.Size), ea.Outer)
}

func (ea AbsShort) String() string { return fmt.Sprintf("($%x).w", uint16(ea.Address)) }
func (ea AbsLong) String() string  { return fmt.Sprintf("($%x).l", ea.Address) }
func (ea Imm) String() string      { return fmt.Sprintf("#$%x", ea.Value) }
