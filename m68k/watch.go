package m68k

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type (
	// Watchpoint observes memory requests. When the executor suspends on a
	// fetch at Address, the optional Condition is evaluated over the
	// current registers; on a match the Callback fires and, with Halt set,
	// Run or Resume returns a WatchHit while the executor stays suspended.
	Watchpoint struct {
		Address uint32

		// Condition is a Starlark expression over d0..d7, a0..a7, pc,
		// ccr and addr (the pending fetch address). Empty means
		// unconditional.
		Condition string

		Halt     bool
		Callback func(WatchEvent) error
	}

	WatchEvent struct {
		Address   uint32
		Registers Registers
	}
)

func (cpu *CPU) AddWatchpoint(wp Watchpoint) {
	if cpu.watchpoints == nil {
		cpu.watchpoints = make(map[uint32]Watchpoint)
	}
	cpu.watchpoints[wp.Address] = wp
}

func (cpu *CPU) checkWatchpoint(address uint32) error {
	if cpu.watchpoints == nil {
		return nil
	}
	wp, ok := cpu.watchpoints[address]
	if !ok {
		return nil
	}

	if wp.Condition != "" {
		match, err := cpu.evalCondition(wp.Condition, address)
		if err != nil {
			return err
		}
		if !match {
			return nil
		}
	}

	if wp.Callback != nil {
		if err := wp.Callback(WatchEvent{Address: address, Registers: cpu.regs}); err != nil {
			return err
		}
	}

	if wp.Halt {
		return WatchHit{Address: address}
	}
	return nil
}

func (cpu *CPU) evalCondition(expr string, address uint32) (bool, error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for i, d := range cpu.regs.D {
		pred[fmt.Sprintf("d%d", i)] = starlark.MakeInt(int(d))
	}
	for i, a := range cpu.regs.A {
		pred[fmt.Sprintf("a%d", i)] = starlark.MakeInt(int(a))
	}
	pred["pc"] = starlark.MakeInt(int(cpu.regs.PC))
	pred["ccr"] = starlark.MakeInt(int(cpu.regs.CCR))
	pred["addr"] = starlark.MakeInt(int(address))

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "cond", prog, pred)
	if err != nil {
		return false, &CondError{Expr: expr, Err: err}
	}
	rc, ok := dict["rc"]
	if !ok {
		return false, &CondError{Expr: expr, Err: errNoResult}
	}
	return bool(rc.Truth()), nil
}
