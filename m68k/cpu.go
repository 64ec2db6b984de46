package m68k

type (
	// AddressBus for accessing address areas
	AddressBus interface {
		Read(s Size, address uint32) (uint32, error)
		Write(s Size, address uint32, value uint32) error
		Reset()
	}

	// RunState is the executor's position in its lifecycle.
	RunState uint8

	TraceInfo struct {
		Op        MicroOp
		Registers Registers
	}

	TraceCallback func(TraceInfo)

	// CPU owns one register file and one micro-op queue and drains the
	// queue strictly in order. The only suspension point is a memory
	// request: the computed address is exposed through PendingAddress and
	// execution stays paused until Resume or Fail.
	CPU struct {
		regs  Registers
		prog  microProgram
		state RunState
		addr  uint32
		bus   AddressBus
		trace TraceCallback

		watchpoints map[uint32]Watchpoint
	}
)

const (
	// Idle means the queue is drained and no request is outstanding.
	Idle RunState = iota
	// Running is only observable from inside a trace or watchpoint
	// callback; between calls the CPU is either Idle or Suspended.
	Running
	// Suspended means a memory request is outstanding.
	Suspended
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// New builds a CPU around the given bus. The bus may be nil when the caller
// services fetches itself through the PendingAddress/Resume protocol;
// Resolve and Reset need an attached bus.
func New(bus AddressBus) *CPU {
	return &CPU{bus: bus}
}

// Regs exposes the live register file.
func (cpu *CPU) Regs() *Registers {
	return &cpu.regs
}

// State reports the executor's current lifecycle position.
func (cpu *CPU) State() RunState {
	return cpu.state
}

// Pending reports how many micro-ops are queued but not yet executed.
func (cpu *CPU) Pending() int {
	return cpu.prog.pending()
}

func (cpu *CPU) SetTracer(cb TraceCallback) {
	cpu.trace = cb
}

func (cpu *CPU) String() string {
	return cpu.regs.String()
}

// LoadEffAddr lowers the descriptor and appends its micro-ops to the
// pending queue. On error the queue is untouched; nothing executes until
// Run is called.
func (cpu *CPU) LoadEffAddr(ea EffAddr) error {
	ops, err := Lower(ea)
	if err != nil {
		return err
	}
	for _, op := range ops {
		cpu.prog.push(op)
	}
	return nil
}

// Run drains the queue in order until it empties or a memory request
// suspends execution. A suspended CPU cannot Run again; the outstanding
// request must first be answered with Resume or aborted with Fail.
func (cpu *CPU) Run() error {
	if cpu.state == Suspended {
		return ErrSuspended
	}
	return cpu.drain()
}

// Resume deposits the fetched value into IOBuffer and continues draining
// the queue. It is the memory subsystem's half of the fetch hand-off.
func (cpu *CPU) Resume(value uint32) error {
	if cpu.state != Suspended {
		return ErrNotSuspended
	}
	cpu.regs.Write(IOBuffer, value)
	return cpu.drain()
}

// Fail aborts the in-flight micro-program after the memory subsystem
// reports an error instead of a value. The queue is discarded between
// completed ops, never mid-op, so the register file stays consistent with
// the ops that already ran. The cause comes back wrapped in a FetchError.
func (cpu *CPU) Fail(cause error) error {
	if cpu.state != Suspended {
		return ErrNotSuspended
	}
	addr := cpu.addr
	cpu.prog.reset()
	cpu.addr = 0
	cpu.state = Idle
	return &FetchError{Address: addr, Err: cause}
}

// PendingAddress reports the fetch address handed to the memory subsystem.
// The second result is false unless the CPU is suspended.
func (cpu *CPU) PendingAddress() (uint32, bool) {
	return cpu.addr, cpu.state == Suspended
}

func (cpu *CPU) drain() error {
	cpu.state = Running
	for {
		op, ok := cpu.prog.pop()
		if !ok {
			cpu.state = Idle
			return nil
		}
		addr, suspend := cpu.exec(op)
		cpu.sendTrace(op)
		if suspend {
			cpu.addr = addr
			cpu.state = Suspended
			return cpu.checkWatchpoint(addr)
		}
	}
}

// exec applies one micro-op to the register file. For a memory request it
// returns the computed address and true instead of touching memory itself.
func (cpu *CPU) exec(op MicroOp) (uint32, bool) {
	switch op.Kind {
	case MicroZero:
		cpu.regs.Write(op.Dst, 0)
	case MicroSet:
		cpu.regs.Write(op.Dst, op.Val)
	case MicroMov:
		cpu.regs.Write(op.Dst, cpu.regs.Read(op.Src))
	case MicroAdd:
		cpu.regs.Write(op.Dst, cpu.regs.Read(op.Dst)+cpu.regs.Read(op.Src))
	case MicroScale:
		cpu.regs.Write(op.Dst, cpu.regs.Read(op.Dst)<<op.Size.shift())
	case MicroRequestMem:
		return cpu.regs.Read(op.Dst), true
	}
	return 0, false
}

// Resolve computes one operand synchronously against the attached bus: it
// lowers the descriptor, runs the micro-program, and services every fetch
// with a bus read of the given width. It returns the staged In0 value.
func (cpu *CPU) Resolve(ea EffAddr, size Size) (uint32, error) {
	if cpu.bus == nil {
		return 0, ErrNoBus
	}
	if err := cpu.LoadEffAddr(ea); err != nil {
		return 0, err
	}
	if err := cpu.Run(); err != nil {
		return 0, err
	}
	for cpu.state == Suspended {
		value, err := cpu.read(size, cpu.addr)
		if err != nil {
			return 0, cpu.Fail(err)
		}
		if err := cpu.Resume(value); err != nil {
			return 0, err
		}
	}
	return cpu.regs.Read(In0), nil
}

func (cpu *CPU) read(size Size, address uint32) (uint32, error) {
	address &= 0xffffff // 24bit address bus of 68000
	return cpu.bus.Read(size, address)
}

// Reset clears the register file and discards any pending micro-ops. With a
// bus attached it also loads the initial stack pointer and program counter
// from vectors 0 and 4, as the 68000 does after a reset.
func (cpu *CPU) Reset() error {
	cpu.regs = Registers{}
	cpu.prog.reset()
	cpu.addr = 0
	cpu.state = Idle

	if cpu.bus == nil {
		return nil
	}
	ssp, err := cpu.bus.Read(Long, 0)
	if err != nil {
		return err
	}
	cpu.regs.A[7] = ssp
	pc, err := cpu.bus.Read(Long, 4)
	if err != nil {
		return err
	}
	cpu.regs.PC = pc
	return nil
}

func (cpu *CPU) sendTrace(op MicroOp) {
	if cpu.trace == nil {
		return
	}
	cpu.trace(TraceInfo{Op: op, Registers: cpu.regs})
}
