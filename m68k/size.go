package m68k

// Size is the operand width of an access. The value is the width in bytes,
// so it doubles as the step for post-increment and pre-decrement adjustment.
type Size uint32

const (
	Byte Size = 1
	Word Size = 2
	Long Size = 4
)

// shift returns the scale applied to an index register before it is combined
// into an address: an index counts elements, so it is shifted by the element
// width.
func (s Size) shift() uint32 {
	switch s {
	case Byte:
		return 0
	case Word:
		return 1
	default:
		return 2
	}
}

func (s Size) String() string {
	switch s {
	case Byte:
		return "byte"
	case Word:
		return "word"
	case Long:
		return "long"
	default:
		return "unknown"
	}
}
