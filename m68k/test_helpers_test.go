package m68k

import (
	"errors"
	"testing"

	asm "github.com/jenska/m68kasm"
)

func expectBusError(t testing.TB, err error) {
	t.Helper()
	var be BusError
	if err == nil || !errors.As(err, &be) {
		t.Fatalf("expected BusError, got %v", err)
	}
}

func expectAddressError(t testing.TB, err error) {
	t.Helper()
	var ae AddressError
	if err == nil || !errors.As(err, &ae) {
		t.Fatalf("expected AddressError, got %v", err)
	}
}

func expectRegIndexError(t testing.TB, err error) {
	t.Helper()
	var ri RegIndexError
	if err == nil || !errors.As(err, &ri) {
		t.Fatalf("expected RegIndexError, got %v", err)
	}
}

// newEnvironment builds a CPU over 64K of RAM with reset vectors pointing
// the stack at 0x1000 and the program counter at 0x2000.
func newEnvironment(t testing.TB) (*CPU, *RAM) {
	t.Helper()

	ram := NewRAM(0, 64*1024)
	bus := NewBus(ram)
	if err := ram.Write(Long, 0, 0x1000); err != nil {
		t.Fatalf("failed to seed stack vector: %v", err)
	}
	if err := ram.Write(Long, 4, 0x2000); err != nil {
		t.Fatalf("failed to seed reset vector: %v", err)
	}
	cpu := New(bus)
	if err := cpu.Reset(); err != nil {
		t.Fatalf("failed to reset CPU: %v", err)
	}
	return cpu, ram
}

func assemble(t testing.TB, instruction string) []byte {
	t.Helper()

	code, err := asm.AssembleString(instruction)
	if err != nil {
		t.Fatalf("assembler failed: %v", err)
	}
	return code
}

// resolveScripted drives one descriptor to completion, answering each memory
// request with the next scripted value. It returns the staged result and
// every address the executor handed out.
func resolveScripted(t testing.TB, cpu *CPU, ea EffAddr, values ...uint32) (uint32, []uint32) {
	t.Helper()

	if err := cpu.LoadEffAddr(ea); err != nil {
		t.Fatalf("lowering %v failed: %v", ea, err)
	}
	if err := cpu.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var addrs []uint32
	for cpu.State() == Suspended {
		addr, _ := cpu.PendingAddress()
		addrs = append(addrs, addr)
		if len(addrs) > len(values) {
			t.Fatalf("unexpected fetch at %08x: no scripted value left", addr)
		}
		if err := cpu.Resume(values[len(addrs)-1]); err != nil {
			t.Fatalf("resume failed: %v", err)
		}
	}
	return cpu.Regs().Read(In0), addrs
}
