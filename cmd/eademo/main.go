package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	asm "github.com/jenska/m68kasm"

	"github.com/Vermeille/genesis/m68k"
)

const (
	romBase  = 0x8000
	dataBase = 0x1000
)

func main() {
	var src string
	var sizeName string
	var watch string
	var cond string
	var verbose bool

	flag.StringVar(&src, "i", "MOVE.W (A2)+,D0", "instruction whose source operand to resolve")
	flag.StringVar(&sizeName, "s", "word", "operand size: byte, word or long")
	flag.StringVar(&watch, "watch", "", "halt when a fetch touches this address")
	flag.StringVar(&cond, "cond", "", "watch condition over d0..d7, a0..a7, pc, ccr, addr")
	flag.BoolVar(&verbose, "v", false, "trace each micro-op")

	flag.Parse()

	size, err := parseSize(sizeName)
	if err != nil {
		log.Fatalf("%v", err)
	}

	code, err := asm.AssembleString(src + "\n")
	if err != nil {
		log.Fatalf("failed to assemble %q: %v", src, err)
	}

	words := make([]uint16, 0, len(code)/2)
	for i := 0; i+1 < len(code); i += 2 {
		words = append(words, uint16(code[i])<<8|uint16(code[i+1]))
	}
	if len(words) == 0 {
		log.Fatalf("assembler produced no code for %q", src)
	}

	ea, err := m68k.DecodeEA(words[0], size, m68k.WordStream(words[1:]...))
	if err != nil {
		log.Fatalf("failed to decode source operand of %04x: %v", words[0], err)
	}
	fmt.Printf("%s\n  opcode %04x, source operand %v (%s)\n", src, words[0], ea, size)

	ops, err := m68k.Lower(ea)
	if err != nil {
		log.Fatalf("failed to lower %v: %v", ea, err)
	}
	fmt.Println("  micro-program:")
	for _, op := range ops {
		fmt.Printf("    %v\n", op)
	}

	cpu := newMachine(code)
	if verbose {
		cpu.SetTracer(func(info m68k.TraceInfo) {
			fmt.Printf("  trace: %v\n", info.Op)
		})
	}
	if watch != "" {
		addr, err := strconv.ParseUint(watch, 0, 32)
		if err != nil {
			log.Fatalf("bad watch address %q: %v", watch, err)
		}
		cpu.AddWatchpoint(m68k.Watchpoint{
			Address:   uint32(addr),
			Condition: cond,
			Callback: func(ev m68k.WatchEvent) error {
				fmt.Printf("  watch: fetch at %08x\n", ev.Address)
				return nil
			},
		})
	}

	value, err := cpu.Resolve(ea, size)
	if err != nil {
		log.Fatalf("failed to resolve %v: %v", ea, err)
	}

	fmt.Printf("  staged value: %08x\n", value)
	fmt.Printf("%v", cpu)
}

// newMachine wires the demo system: the assembled code in ROM, 64K of RAM
// underneath, and registers seeded so every addressing mode lands on
// readable memory.
func newMachine(code []byte) *m68k.CPU {
	// pad the ROM image so PC-relative modes can reach past the code
	image := make([]byte, 0x1000)
	copy(image, code)
	rom := m68k.NewROM(romBase, image)
	ram := m68k.NewRAM(0, 0x8000)
	bus := m68k.NewBus(ram, rom)

	cpu := m68k.New(bus)
	regs := cpu.Regs()
	for n := uint8(0); n < 8; n++ {
		regs.Write(m68k.Data(n), uint32(n))
		regs.Write(m68k.Addr(n), dataBase+0x100*uint32(n))
	}
	regs.Write(m68k.PC, romBase)

	// recognizable data pattern under the address registers
	for i := uint32(0); i < 0x800; i += 4 {
		if err := ram.Write(m68k.Long, dataBase+i, 0x11110000+i); err != nil {
			log.Fatalf("failed to seed demo memory: %v", err)
		}
	}
	return cpu
}

func parseSize(name string) (m68k.Size, error) {
	switch strings.ToLower(name) {
	case "byte", "b":
		return m68k.Byte, nil
	case "word", "w":
		return m68k.Word, nil
	case "long", "l":
		return m68k.Long, nil
	}
	return 0, fmt.Errorf("unknown size %q", name)
}
