package m68k

import (
	"errors"

	"github.com/Vermeille/genesis/internal/translate"
)

var f = translate.From

var (
	// Executor protocol errors
	ErrSuspended    = errors.New(f("memory request pending"))
	ErrNotSuspended = errors.New(f("no memory request pending"))
	ErrNoBus        = errors.New(f("no address bus attached"))

	// Decode errors
	ErrReservedMode      = errors.New(f("reserved addressing mode"))
	ErrReservedExtension = errors.New(f("reserved extension word pattern"))
	ErrBaseSuppressed    = errors.New(f("base register suppression not supported"))
	ErrMissingExtension  = errors.New(f("instruction stream exhausted"))
)

// BusError reports an access to an address no device claims.
type BusError uint32

func (be BusError) Error() string {
	return f("bus error at %08x", uint32(be))
}

// AddressError reports a misaligned word or long access.
type AddressError uint32

func (ae AddressError) Error() string {
	return f("address error at %08x", uint32(ae))
}

// SizeError reports an access width that is not Byte, Word or Long.
type SizeError Size

func (se SizeError) Error() string {
	return f("unknown operand size %d", uint32(se))
}

// RegIndexError reports a data, address or scratch register index outside
// its bank. It is raised when a descriptor is lowered, before any
// micro-operation is emitted.
type RegIndexError uint8

func (ri RegIndexError) Error() string {
	return f("register index %d out of range", uint8(ri))
}

// DecodeError reports an addressing-mode bit pattern that does not map to
// any descriptor variant.
type DecodeError struct {
	Word uint16
	Err  error
}

func (de *DecodeError) Error() string {
	return f("cannot decode %04x: %v", de.Word, de.Err)
}

func (de *DecodeError) Unwrap() error {
	return de.Err
}

// FetchError reports that the memory subsystem failed a suspended fetch.
// The in-flight micro-program has been discarded by the time it is returned.
type FetchError struct {
	Address uint32
	Err     error
}

func (fe *FetchError) Error() string {
	return f("fetch at %08x failed: %v", fe.Address, fe.Err)
}

func (fe *FetchError) Unwrap() error {
	return fe.Err
}

// WatchHit is returned by Run or Resume when a halting watchpoint matches a
// pending memory request. The executor stays suspended; the caller may
// inspect state and then Resume or Fail as usual.
type WatchHit struct {
	Address uint32
}

func (wh WatchHit) Error() string {
	return f("watchpoint hit at %08x", wh.Address)
}

var errNoResult = errors.New(f("no result"))

// CondError reports a watch condition that failed to parse or evaluate.
type CondError struct {
	Expr string
	Err  error
}

func (ce *CondError) Error() string {
	return f("watch condition '%v': %v", ce.Expr, ce.Err)
}

func (ce *CondError) Unwrap() error {
	return ce.Err
}
