package m68k

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutorStateMachine(t *testing.T) {
	assert := assert.New(t)
	cpu := New(nil)
	cpu.Regs().Write(Addr(0), 0x2000)

	assert.Equal(Idle, cpu.State())

	assert.NoError(cpu.LoadEffAddr(AddrInd{R: 0}))
	assert.Equal(Idle, cpu.State(), "nothing executes before Run")
	assert.Equal(2, cpu.Pending())

	assert.NoError(cpu.Run())
	assert.Equal(Suspended, cpu.State())

	addr, ok := cpu.PendingAddress()
	assert.True(ok)
	assert.Equal(uint32(0x2000), addr)

	assert.NoError(cpu.Resume(0x1234))
	assert.Equal(Idle, cpu.State())
	assert.Equal(uint32(0x1234), cpu.Regs().Read(In0))

	_, ok = cpu.PendingAddress()
	assert.False(ok)
}

func TestRunWhileSuspended(t *testing.T) {
	assert := assert.New(t)
	cpu := New(nil)

	assert.NoError(cpu.LoadEffAddr(AddrInd{R: 0}))
	assert.NoError(cpu.Run())
	assert.ErrorIs(cpu.Run(), ErrSuspended)

	assert.NoError(cpu.Resume(0))
}

func TestResumeWithoutRequest(t *testing.T) {
	assert := assert.New(t)
	cpu := New(nil)

	assert.ErrorIs(cpu.Resume(0), ErrNotSuspended)
	assert.ErrorIs(cpu.Fail(BusError(0)), ErrNotSuspended)
}

func TestFailAbortsProgram(t *testing.T) {
	assert := assert.New(t)
	cpu := New(nil)
	cpu.Regs().Write(Addr(5), 0x3000)

	assert.NoError(cpu.LoadEffAddr(PreDec{R: 5, Size: Long}))
	assert.NoError(cpu.Run())

	err := cpu.Fail(BusError(0x2FFC))

	var fe *FetchError
	assert.ErrorAs(err, &fe)
	assert.Equal(uint32(0x2FFC), fe.Address)
	assert.ErrorIs(err, BusError(0x2FFC))

	assert.Equal(Idle, cpu.State())
	assert.Equal(0, cpu.Pending(), "in-flight program must be discarded")

	// The decrement completed before the fetch was issued, so the register
	// file stays consistent with the ops that ran.
	assert.Equal(uint32(0x2FFC), cpu.Regs().A[5])
}

func TestMicroOpSemantics(t *testing.T) {
	assert := assert.New(t)
	cpu := New(nil)

	cpu.prog.push(Set(Data(0), 0xFFFFFFFF))
	cpu.prog.push(Add(Data(0), Immediate(2)))
	cpu.prog.push(Set(Data(1), 0x55))
	cpu.prog.push(Zero(Data(1)))
	cpu.prog.push(Mov(Data(2), Immediate(-4)))
	cpu.prog.push(Set(Data(3), 3))
	cpu.prog.push(Scale(Data(3), Long))
	assert.NoError(cpu.Run())

	assert.Equal(uint32(1), cpu.Regs().D[0], "add wraps around")
	assert.Equal(uint32(0), cpu.Regs().D[1])
	assert.Equal(uint32(0xFFFFFFFC), cpu.Regs().D[2], "immediate reads as unsigned")
	assert.Equal(uint32(12), cpu.Regs().D[3])
	assert.Equal(Idle, cpu.State())
}

func TestMicroOpStrings(t *testing.T) {
	tests := []struct {
		op   MicroOp
		want string
	}{
		{Zero(In1), "zero in1"},
		{Set(In0, 0x2000), "set in0, $2000"},
		{Mov(In0, IOBuffer), "mov in0, iobuf"},
		{Add(Addr(2), Immediate(2)), "add a2, #2"},
		{Scale(In1, Word), "scale in1, word"},
		{RequestMem(In0), "fetch (in0)"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestResolveAgainstBus(t *testing.T) {
	assert := assert.New(t)
	cpu, ram := newEnvironment(t)

	assert.NoError(ram.Write(Long, 0x3000, 0xDEADBEEF))
	cpu.Regs().Write(Addr(2), 0x3000)

	value, err := cpu.Resolve(AddrInd{R: 2}, Long)
	assert.NoError(err)
	assert.Equal(uint32(0xDEADBEEF), value)

	value, err = cpu.Resolve(PostInc{R: 2, Size: Word}, Word)
	assert.NoError(err)
	assert.Equal(uint32(0xDEAD), value)
	assert.Equal(uint32(0x3002), cpu.Regs().A[2])

	// memory indirect: pointer at 0x4000 leads to the value at 0x3000
	assert.NoError(ram.Write(Long, 0x4000, 0x3000))
	cpu.Regs().Write(Addr(3), 0x4000)
	value, err = cpu.Resolve(AddrIndPreIdx{R: 3, Disp: 0, Index: Immediate(0), Size: Long, Outer: 0}, Long)
	assert.NoError(err)
	assert.Equal(uint32(0xDEADBEEF), value)
}

func TestResolveWithoutBus(t *testing.T) {
	cpu := New(nil)
	_, err := cpu.Resolve(DataReg{R: 0}, Word)
	if !errors.Is(err, ErrNoBus) {
		t.Fatalf("expected ErrNoBus, got %v", err)
	}
}

func TestResolveSurfacesBusFault(t *testing.T) {
	assert := assert.New(t)
	cpu, _ := newEnvironment(t)
	cpu.Regs().Write(Addr(0), 0xF0000) // beyond the mapped 64K

	_, err := cpu.Resolve(AddrInd{R: 0}, Word)

	var fe *FetchError
	assert.ErrorAs(err, &fe)
	assert.Equal(uint32(0xF0000), fe.Address)
	expectBusError(t, err)
	assert.Equal(Idle, cpu.State())
	assert.Equal(0, cpu.Pending())
}

func TestResetLoadsVectors(t *testing.T) {
	assert := assert.New(t)
	cpu, _ := newEnvironment(t)

	assert.Equal(uint32(0x1000), cpu.Regs().A[7])
	assert.Equal(uint32(0x2000), cpu.Regs().PC)
}

func TestResetDiscardsPendingWork(t *testing.T) {
	assert := assert.New(t)
	cpu, _ := newEnvironment(t)
	cpu.Regs().Write(Addr(0), 0x2000)

	assert.NoError(cpu.LoadEffAddr(AddrInd{R: 0}))
	assert.NoError(cpu.Run())
	assert.Equal(Suspended, cpu.State())

	assert.NoError(cpu.Reset())
	assert.Equal(Idle, cpu.State())
	assert.Equal(0, cpu.Pending())
	_, ok := cpu.PendingAddress()
	assert.False(ok)
}

func TestTraceCallback(t *testing.T) {
	assert := assert.New(t)
	cpu := New(nil)
	cpu.Regs().Write(Addr(2), 0x2000)

	var kinds []MicroKind
	var last TraceInfo
	cpu.SetTracer(func(info TraceInfo) {
		kinds = append(kinds, info.Op.Kind)
		last = info
	})

	resolveScripted(t, cpu, PostInc{R: 2, Size: Word}, 0xBEEF)

	assert.Equal([]MicroKind{MicroRequestMem, MicroMov, MicroAdd}, kinds)
	assert.Equal(uint32(0x2002), last.Registers.A[2], "trace sees the registers after the op")
}
