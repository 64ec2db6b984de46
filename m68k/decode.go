package m68k

type (
	// AddrMode identifies one of the twelve addressing-mode encodings of
	// the 6-bit effective-address field (3-bit mode, 3-bit register).
	AddrMode uint8

	// ExtFetch supplies the next extension word of the instruction
	// stream, the way an instruction fetch pops words at the program
	// counter.
	ExtFetch func() (uint16, error)
)

const (
	ModeDataReg AddrMode = iota // Dn
	ModeAddrReg                 // An
	ModeAddrInd                 // (An)
	ModePostInc                 // (An)+
	ModePreDec                  // -(An)
	ModeAddrDisp                // (d16,An)
	ModeAddrIdx                 // (d8,An,Xn)
	ModeAbsShort                // (xxx).W
	ModeAbsLong                 // (xxx).L
	ModePCDisp                  // (d16,PC)
	ModePCIdx                   // (d8,PC,Xn)
	ModeImm                     // #<data>
)

func (m AddrMode) String() string {
	switch m {
	case ModeDataReg:
		return "dn"
	case ModeAddrReg:
		return "an"
	case ModeAddrInd:
		return "(an)"
	case ModePostInc:
		return "(an)+"
	case ModePreDec:
		return "-(an)"
	case ModeAddrDisp:
		return "(d16,an)"
	case ModeAddrIdx:
		return "(d8,an,xn)"
	case ModeAbsShort:
		return "(xxx).w"
	case ModeAbsLong:
		return "(xxx).l"
	case ModePCDisp:
		return "(d16,pc)"
	case ModePCIdx:
		return "(d8,pc,xn)"
	case ModeImm:
		return "#imm"
	default:
		return "unknown"
	}
}

// DecodeAddrMode maps the low 6 bits of an opcode to an addressing mode.
// Mode 7 register values 5 to 7 are reserved encodings and decode to an
// error, never to a mode.
func DecodeAddrMode(opcode uint16) (AddrMode, error) {
	mode := (opcode >> 3) & 0x07
	reg := opcode & 0x07
	switch mode {
	case 0:
		return ModeDataReg, nil
	case 1:
		return ModeAddrReg, nil
	case 2:
		return ModeAddrInd, nil
	case 3:
		return ModePostInc, nil
	case 4:
		return ModePreDec, nil
	case 5:
		return ModeAddrDisp, nil
	case 6:
		return ModeAddrIdx, nil
	default:
		switch reg {
		case 0:
			return ModeAbsShort, nil
		case 1:
			return ModeAbsLong, nil
		case 2:
			return ModePCDisp, nil
		case 3:
			return ModePCIdx, nil
		case 4:
			return ModeImm, nil
		}
	}
	return 0, &DecodeError{Word: opcode, Err: ErrReservedMode}
}

// WordStream turns a fixed word list into an ExtFetch. Pulling past the end
// yields ErrMissingExtension.
func WordStream(words ...uint16) ExtFetch {
	i := 0
	return func() (uint16, error) {
		if i == len(words) {
			return 0, ErrMissingExtension
		}
		w := words[i]
		i++
		return w, nil
	}
}

// DecodeEA builds the full addressing-mode descriptor for the low 6 bits of
// opcode, pulling extension words from fetch as the encoding demands. The
// operand size seeds the descriptor's scaling and step width. A nil fetch
// behaves as an empty stream.
func DecodeEA(opcode uint16, size Size, fetch ExtFetch) (EffAddr, error) {
	if fetch == nil {
		fetch = WordStream()
	}

	mode, err := DecodeAddrMode(opcode)
	if err != nil {
		return nil, err
	}
	reg := uint8(opcode & 0x07)

	switch mode {
	case ModeDataReg:
		return DataReg{R: reg}, nil
	case ModeAddrReg:
		return AddrReg{R: reg}, nil
	case ModeAddrInd:
		return AddrInd{R: reg}, nil
	case ModePostInc:
		return PostInc{R: reg, Size: size}, nil
	case ModePreDec:
		return PreDec{R: reg, Size: size}, nil
	case ModeAddrDisp:
		d, err := fetch()
		if err != nil {
			return nil, err
		}
		return AddrDisp{R: reg, Disp: int16(d)}, nil
	case ModeAddrIdx:
		return decodeIndexed(reg, false, size, fetch)
	case ModeAbsShort:
		w, err := fetch()
		if err != nil {
			return nil, err
		}
		return AbsShort{Address: int16(w)}, nil
	case ModeAbsLong:
		hi, err := fetch()
		if err != nil {
			return nil, err
		}
		lo, err := fetch()
		if err != nil {
			return nil, err
		}
		return AbsLong{Address: uint32(hi)<<16 | uint32(lo)}, nil
	case ModePCDisp:
		d, err := fetch()
		if err != nil {
			return nil, err
		}
		return PCDisp{Disp: int32(int16(d))}, nil
	case ModePCIdx:
		return decodeIndexed(reg, true, size, fetch)
	default: // ModeImm
		w, err := fetch()
		if err != nil {
			return nil, err
		}
		switch size {
		case Byte:
			return Imm{Value: uint32(w) & 0xff}, nil
		case Word:
			return Imm{Value: uint32(w)}, nil
		default:
			lo, err := fetch()
			if err != nil {
				return nil, err
			}
			return Imm{Value: uint32(w)<<16 | uint32(lo)}, nil
		}
	}
}

// Indexed modes carry one extension word plus optional displacements:
//
// Brief format:
// F   | E D C      | B   | A 9   | 8 | 7 6 5 4 3 2 1 0
// D/A | REGISTER   | W/L | SCALE | 0 | DISPLACEMENT
//
// Full format:
// F   | E D C      | B   | A 9   | 8 | 7  | 6  | 5 4     | 3 | 2 1 0
// D/A | REGISTER   | W/L | SCALE | 1 | BS | IS | BD SIZE | 0 | I/IS
// followed by a null/word/long base displacement and, for the memory
// indirect forms, a null/word/long outer displacement.
//
// BD SIZE: 00=reserved, 01=null, 10=word, 11=long
//
// IS I/IS
// 0  000   no memory indirect
// 0  001   indirect pre-indexed, null outer
// 0  010   indirect pre-indexed, word outer
// 0  011   indirect pre-indexed, long outer
// 0  100   reserved
// 0  101   indirect post-indexed, null outer
// 0  110   indirect post-indexed, word outer
// 0  111   indirect post-indexed, long outer
// 1  000   no memory indirect, index suppressed
// 1  001   memory indirect, null outer
// 1  010   memory indirect, word outer
// 1  011   memory indirect, long outer
// 1  1xx   reserved
//
// A suppressed index decodes to a zero immediate index operand, which
// computes the same address. Base suppression (BS=1) has no descriptor
// form and is rejected.
func decodeIndexed(reg uint8, pcRel bool, size Size, fetch ExtFetch) (EffAddr, error) {
	ext, err := fetch()
	if err != nil {
		return nil, err
	}

	index := extIndexReg(ext)

	if ext&0x100 == 0 {
		// brief format
		d := int32(int8(ext))
		if pcRel {
			return PCIdx{Disp: d, Index: index, Size: size}, nil
		}
		return AddrIdx{R: reg, Index: index, Disp: d, Size: size}, nil
	}

	// full format
	if ext&0x0008 != 0 {
		return nil, &DecodeError{Word: ext, Err: ErrReservedExtension}
	}
	if ext&0x0080 != 0 {
		return nil, &DecodeError{Word: ext, Err: ErrBaseSuppressed}
	}

	bd, err := displacement((ext>>4)&0x03, ext, fetch)
	if err != nil {
		return nil, err
	}

	suppressed := ext&0x0040 != 0
	if suppressed {
		index = Immediate(0)
	}

	iis := ext & 0x07
	switch {
	case iis == 0:
		if pcRel {
			return PCIdx{Disp: bd, Index: index, Size: size}, nil
		}
		return AddrIdx{R: reg, Index: index, Disp: bd, Size: size}, nil
	case iis == 4, suppressed && iis > 4:
		return nil, &DecodeError{Word: ext, Err: ErrReservedExtension}
	}

	od, err := displacement(iis&0x03, ext, fetch)
	if err != nil {
		return nil, err
	}

	post := iis&0x04 != 0
	if pcRel {
		if post {
			return PCIndPostIdx{Disp: bd, Index: index, Size: size, Outer: od}, nil
		}
		return PCIndPreIdx{Disp: bd, Index: index, Size: size, Outer: od}, nil
	}
	if post {
		return AddrIndPostIdx{R: reg, Disp: bd, Index: index, Size: size, Outer: od}, nil
	}
	return AddrIndPreIdx{R: reg, Disp: bd, Index: index, Size: size, Outer: od}, nil
}

// extIndexReg extracts the index operand from an extension word: D/A bit
// and register number. The W/L and SCALE fields are accepted and ignored;
// scaling follows the operand size.
func extIndexReg(ext uint16) Reg {
	n := uint8((ext >> 12) & 0x07)
	if ext&0x8000 != 0 {
		return Addr(n)
	}
	return Data(n)
}

// displacement pulls a null, word or long displacement off the stream.
// Pattern 00 is reserved.
func displacement(pattern uint16, ext uint16, fetch ExtFetch) (int32, error) {
	switch pattern {
	case 1:
		return 0, nil
	case 2:
		w, err := fetch()
		if err != nil {
			return 0, err
		}
		return int32(int16(w)), nil
	case 3:
		hi, err := fetch()
		if err != nil {
			return 0, err
		}
		lo, err := fetch()
		if err != nil {
			return 0, err
		}
		return int32(uint32(hi)<<16 | uint32(lo)), nil
	default:
		return 0, &DecodeError{Word: ext, Err: ErrReservedExtension}
	}
}
