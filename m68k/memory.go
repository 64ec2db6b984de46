package m68k

// RAM is a flat big-endian memory block mapped at offset.
type RAM struct {
	offset uint32
	mem    []byte
}

func NewRAM(offset, size uint32) *RAM {
	return &RAM{offset: offset, mem: make([]byte, size)}
}

func (ram *RAM) Contains(address uint32) bool {
	return address >= ram.offset && address < ram.offset+uint32(len(ram.mem))
}

// rangeCheck verifies the whole access, not just its first byte.
func (ram *RAM) rangeCheck(address uint32, s Size) bool {
	end := address + uint32(s) - 1
	return address >= ram.offset && end < ram.offset+uint32(len(ram.mem))
}

func (ram *RAM) Read(s Size, address uint32) (uint32, error) {
	if !ram.rangeCheck(address, s) {
		return 0, BusError(address)
	}
	idx := address - ram.offset
	switch s {
	case Byte:
		return uint32(ram.mem[idx]), nil
	case Word:
		return uint32(ram.mem[idx])<<8 | uint32(ram.mem[idx+1]), nil
	case Long:
		return uint32(ram.mem[idx])<<24 | uint32(ram.mem[idx+1])<<16 |
			uint32(ram.mem[idx+2])<<8 | uint32(ram.mem[idx+3]), nil
	}
	return 0, SizeError(s)
}

func (ram *RAM) Write(s Size, address uint32, value uint32) error {
	if !ram.rangeCheck(address, s) {
		return BusError(address)
	}
	idx := address - ram.offset
	switch s {
	case Byte:
		ram.mem[idx] = uint8(value)
	case Word:
		ram.mem[idx] = uint8(value >> 8)
		ram.mem[idx+1] = uint8(value)
	case Long:
		ram.mem[idx] = uint8(value >> 24)
		ram.mem[idx+1] = uint8(value >> 16)
		ram.mem[idx+2] = uint8(value >> 8)
		ram.mem[idx+3] = uint8(value)
	default:
		return SizeError(s)
	}
	return nil
}

func (ram *RAM) Reset() {
	for i := range ram.mem {
		ram.mem[i] = 0
	}
}

// ROM is a read-only block, typically cartridge contents. Writes fail with
// a bus error and a reset leaves the contents in place.
type ROM struct {
	ram RAM
}

func NewROM(offset uint32, contents []byte) *ROM {
	mem := make([]byte, len(contents))
	copy(mem, contents)
	return &ROM{ram: RAM{offset: offset, mem: mem}}
}

func (rom *ROM) Contains(address uint32) bool {
	return rom.ram.Contains(address)
}

func (rom *ROM) Read(s Size, address uint32) (uint32, error) {
	return rom.ram.Read(s, address)
}

func (rom *ROM) Write(s Size, address uint32, value uint32) error {
	return BusError(address)
}

func (rom *ROM) Reset() {}
