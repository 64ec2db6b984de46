package m68k

// Device is a memory-mapped peripheral on the address bus. Implementations
// validate the address ranges they cover and must tolerate repeated Reset
// calls.
type Device interface {
	Contains(address uint32) bool
	Read(Size, uint32) (uint32, error)
	Write(Size, uint32, uint32) error
	Reset()
}

// Bus multiplexes access between attached devices and performs the common
// checks: word and long accesses must be even-aligned, and an address no
// device claims is a bus error.
type Bus struct {
	devices    []Device
	lastDevice Device
}

// NewBus constructs a bus optionally seeded with devices.
func NewBus(devices ...Device) *Bus {
	return &Bus{devices: devices}
}

// AddDevice attaches an additional device to the bus.
func (b *Bus) AddDevice(device Device) {
	b.devices = append(b.devices, device)
}

// Reset propagates a reset to all attached devices.
func (b *Bus) Reset() {
	for _, dev := range b.devices {
		dev.Reset()
	}
}

func (b *Bus) Read(s Size, address uint32) (uint32, error) {
	if err := b.validateAlignment(address, s); err != nil {
		return 0, err
	}

	dev := b.findDevice(address)
	if dev == nil {
		return 0, BusError(address)
	}
	return dev.Read(s, address)
}

func (b *Bus) Write(s Size, address uint32, value uint32) error {
	if err := b.validateAlignment(address, s); err != nil {
		return err
	}

	dev := b.findDevice(address)
	if dev == nil {
		return BusError(address)
	}
	return dev.Write(s, address, value)
}

// findDevice caches the last hit; consecutive accesses usually stay within
// one device.
func (b *Bus) findDevice(address uint32) Device {
	if b.lastDevice != nil && b.lastDevice.Contains(address) {
		return b.lastDevice
	}

	for _, dev := range b.devices {
		if dev.Contains(address) {
			b.lastDevice = dev
			return dev
		}
	}

	return nil
}

func (b *Bus) validateAlignment(address uint32, s Size) error {
	if (s == Word || s == Long) && address&1 != 0 {
		return AddressError(address)
	}
	return nil
}
