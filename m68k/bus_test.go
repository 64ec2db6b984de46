package m68k

import "testing"

func TestBusAlignment(t *testing.T) {
	ram := NewRAM(0x0000, 0x0010)
	bus := NewBus(ram)

	tests := []struct {
		name    string
		size    Size
		address uint32
	}{
		{"word on odd", Word, 0x0003},
		{"long on odd", Long, 0x0005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bus.Read(tt.size, tt.address)
			expectAddressError(t, err)

			err = bus.Write(tt.size, tt.address, 0xFF)
			expectAddressError(t, err)
		})
	}

	t.Run("byte on odd", func(t *testing.T) {
		if err := bus.Write(Byte, 0x0001, 0xAA); err != nil {
			t.Fatalf("byte write on odd failed: %v", err)
		}
	})
}

func TestBusUnmappedAddress(t *testing.T) {
	bus := NewBus()

	_, err := bus.Read(Byte, 0x1000)
	expectBusError(t, err)

	err = bus.Write(Long, 0x1000, 0xFFFFFFFF)
	expectBusError(t, err)
}

func TestBusDeviceRouting(t *testing.T) {
	low := NewRAM(0x0000, 0x1000)
	high := NewRAM(0x8000, 0x1000)
	bus := NewBus(low)
	bus.AddDevice(high)

	if err := bus.Write(Word, 0x0100, 0x1111); err != nil {
		t.Fatalf("write to low device failed: %v", err)
	}
	if err := bus.Write(Word, 0x8100, 0x2222); err != nil {
		t.Fatalf("write to high device failed: %v", err)
	}

	// alternate between devices so the routing cache has to switch
	for i := 0; i < 3; i++ {
		if val, err := bus.Read(Word, 0x0100); err != nil || val != 0x1111 {
			t.Fatalf("low read = (%x, %v), want (0x1111, <nil>)", val, err)
		}
		if val, err := bus.Read(Word, 0x8100); err != nil || val != 0x2222 {
			t.Fatalf("high read = (%x, %v), want (0x2222, <nil>)", val, err)
		}
	}

	_, err := bus.Read(Word, 0x4000)
	expectBusError(t, err)
}

func TestBusReset(t *testing.T) {
	ram := NewRAM(0, 0x10)
	bus := NewBus(ram)

	if err := bus.Write(Long, 0, 0xAABBCCDD); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	bus.Reset()
	if val, err := bus.Read(Long, 0); err != nil || val != 0 {
		t.Fatalf("read after reset = (%x, %v), want (0, <nil>)", val, err)
	}
}
