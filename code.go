package x64

import (
	"fmt"
	"strings"
)

// Code is the structured form of one encoded instruction. Each field is emitted only when present,
// in the order: legacy prefixes (groups 1 through 4), REX, opcode, ModR/M, SIB, displacement, and
// immediate.
//
// Code is a value type; the With* methods return an updated copy and never modify the receiver.
type Code struct {
	Prefixes        [4]Prefix // Legacy prefixes, indexed by prefix group - 1. Unused groups are zero.
	REX             REX       // Any REX prefix. Zero if absent.
	Opcode          [3]byte   // The opcode bytes.
	OpcodeLen       int       // The number of bytes of opcode.
	ModRM           ModRM     // Any ModR/M byte.
	UseModRM        bool      // Encode the ModR/M byte, even if zero.
	SIB             SIB       // Any Scale/Index/Base byte.
	UseSIB          bool      // Encode the SIB byte, even if zero.
	Displacement    [4]byte   // Any memory address or branch displacement (little-endian).
	DisplacementLen int       // The number of bytes of displacement (0, 1, or 4).
	Immediate       [8]byte   // Any immediate integer literals (little-endian, concatenated).
	ImmediateLen    int       // The number of immediate bytes to use.
}

// Set the legacy prefix for the prefix's group, replacing any prefix already present in that group.
func (c Code) WithPrefix(p Prefix) Code {
	g := p.Group()
	if g == 0 {
		panic(fmt.Sprintf("x64: %v is not a legacy prefix", p))
	}
	c.Prefixes[g-1] = p
	return c
}

// OR bits into the REX prefix. An absent REX prefix is first initialized to 0x40; bits are never cleared.
func (c Code) WithREX(r REX) Code {
	if r&0xf0 != 0 && r&0xf0 != 0x40 {
		panic(fmt.Sprintf("x64: %#02x is not a REX prefix", byte(r)))
	}
	c.REX |= rexBase | r
	return c
}

func (c Code) WithRexW() Code { return c.WithREX(rexW) }
func (c Code) WithRexR() Code { return c.WithREX(rexR) }
func (c Code) WithRexX() Code { return c.WithREX(rexX) }
func (c Code) WithRexB() Code { return c.WithREX(rexB) }

// Set the opcode bytes. Opcodes are 1 to 3 bytes long.
func (c Code) WithOpcode(op ...byte) Code {
	if len(op) == 0 || len(op) > len(c.Opcode) {
		panic(fmt.Sprintf("x64: invalid opcode length %d", len(op)))
	}
	c.Opcode = [3]byte{}
	c.OpcodeLen = copy(c.Opcode[:], op)
	return c
}

// Set the ModR/M byte from its fields. mod must be below 4; reg and rm must be below 8.
func (c Code) WithModRM(mod, reg, rm uint8) Code {
	c.ModRM.SetMod(mod)
	c.ModRM.SetReg(reg)
	c.ModRM.SetRM(rm)
	c.UseModRM = true
	return c
}

// Set the SIB byte from its fields. scale must be below 4; index and base must be below 8.
func (c Code) WithSIB(scale, index, base uint8) Code {
	c.SIB.SetScale(scale)
	c.SIB.SetIndex(index)
	c.SIB.SetBase(base)
	c.UseSIB = true
	return c
}

func (c Code) WithDisp8(d int8) Code {
	c.Displacement = [4]byte{byte(d)}
	c.DisplacementLen = 1
	return c
}

func (c Code) WithDisp32(d int32) Code {
	c.Displacement = [4]byte{byte(d), byte(d >> 8), byte(d >> 16), byte(d >> 24)}
	c.DisplacementLen = 4
	return c
}

// Append an 8-bit immediate.
func (c Code) WithImm8(v int8) Code { return c.appendImm(uint64(v), 1) }

// Append a 16-bit immediate.
func (c Code) WithImm16(v int16) Code { return c.appendImm(uint64(v), 2) }

// Append a 32-bit immediate.
func (c Code) WithImm32(v int32) Code { return c.appendImm(uint64(v), 4) }

// Append a 64-bit immediate.
func (c Code) WithImm64(v int64) Code { return c.appendImm(uint64(v), 8) }

func (c Code) appendImm(v uint64, n int) Code {
	if c.ImmediateLen+n > len(c.Immediate) {
		panic(fmt.Sprintf("x64: immediate overflow (%d + %d bytes)", c.ImmediateLen, n))
	}
	for i := 0; i < n; i++ {
		c.Immediate[c.ImmediateLen+i] = byte(v >> (8 * i))
	}
	c.ImmediateLen += n
	return c
}

// Len returns c's length as a number of bytes.
func (c Code) Len() int {
	var n int
	for _, p := range c.Prefixes {
		if p != 0 {
			n++
		}
	}
	if c.REX != 0 {
		n++
	}
	n += c.OpcodeLen
	if c.UseModRM {
		n++
	}
	if c.UseSIB {
		n++
	}
	n += c.DisplacementLen
	n += c.ImmediateLen
	return n
}

// String returns a textual description of the machine code.
func (c Code) String() string {
	first := true
	var s strings.Builder
	join := func() {
		if !first {
			s.WriteString(", ")
		}
		first = false
	}

	s.WriteByte('{')
	for _, p := range c.Prefixes {
		if p != 0 {
			join()
			fmt.Fprintf(&s, "Prefix: %v", p)
		}
	}
	if c.REX != 0 {
		join()
		s.WriteString("REX: ")
		s.WriteString(c.REX.String())
	}
	if c.OpcodeLen > 0 {
		join()
		fmt.Fprintf(&s, "Opcode: [% x]", c.Opcode[:c.OpcodeLen])
	}
	if c.UseModRM {
		join()
		s.WriteString("ModR/M: ")
		s.WriteString(c.ModRM.String())
	}
	if c.UseSIB {
		join()
		s.WriteString("SIB: ")
		s.WriteString(c.SIB.String())
	}
	if c.DisplacementLen > 0 {
		join()
		fmt.Fprintf(&s, "Displacement: [% x]", c.Displacement[:c.DisplacementLen])
	}
	if c.ImmediateLen > 0 {
		join()
		fmt.Fprintf(&s, "Immediate: [% x]", c.Immediate[:c.ImmediateLen])
	}
	s.WriteByte('}')
	return s.String()
}

// Prefix represents a legacy x86 prefix.
type Prefix byte

const (
	PrefixLock        Prefix = 0xf0
	PrefixRepeatNot   Prefix = 0xf2
	PrefixRepeat      Prefix = 0xf3
	PrefixCS          Prefix = 0x2e
	PrefixSS          Prefix = 0x36
	PrefixDS          Prefix = 0x3e
	PrefixES          Prefix = 0x26
	PrefixFS          Prefix = 0x64
	PrefixGS          Prefix = 0x65
	PrefixOperandSize Prefix = 0x66
	PrefixAddressSize Prefix = 0x67
)

// Get the prefix group (1 through 4), or 0 if p is not a legacy prefix.
func (p Prefix) Group() int {
	switch p {
	case PrefixLock, PrefixRepeatNot, PrefixRepeat:
		return 1
	case PrefixCS, PrefixSS, PrefixDS, PrefixES, PrefixFS, PrefixGS:
		return 2
	case PrefixOperandSize:
		return 3
	case PrefixAddressSize:
		return 4
	default:
		return 0
	}
}

func (p Prefix) String() string {
	switch p {
	case PrefixLock:
		return "lock"
	case PrefixRepeatNot:
		return "repnz/repne"
	case PrefixRepeat:
		return "rep/repe/repz"
	case PrefixCS:
		return "cs"
	case PrefixSS:
		return "ss"
	case PrefixDS:
		return "ds"
	case PrefixES:
		return "es"
	case PrefixFS:
		return "fs"
	case PrefixGS:
		return "gs"
	case PrefixOperandSize:
		return "data16"
	case PrefixAddressSize:
		return "addr32"
	default:
		return fmt.Sprintf("Prefix(%#02x)", byte(p))
	}
}

// Get the segment-override prefix for a segment register.
func segmentPrefix(seg Reg) (Prefix, bool) {
	if seg.Family() != REG_SEGMENT {
		return 0, false
	}
	switch seg {
	case ES:
		return PrefixES, true
	case CS:
		return PrefixCS, true
	case SS:
		return PrefixSS, true
	case DS:
		return PrefixDS, true
	case FS:
		return PrefixFS, true
	case GS:
		return PrefixGS, true
	}
	return 0, false
}

// REX is the REX prefix byte.
//
// 	| 7  6  5  4   3  2  1  0 |
// 	+-------------------------|
// 	| 0  1  0  0   W  R  X  B |
type REX byte

const (
	rexBase REX = 0b0100_0000
	rexW    REX = 0b0000_1000
	rexR    REX = 0b0000_0100
	rexX    REX = 0b0000_0010
	rexB    REX = 0b0000_0001
)

func (r REX) b2i(b bool) REX {
	if b {
		return 1
	}
	return 0
}

func (r REX) On() bool     { return ((r >> 6) & 1) == 1 }
func (r REX) W() bool      { return ((r >> 3) & 1) == 1 }
func (r REX) R() bool      { return ((r >> 2) & 1) == 1 }
func (r REX) X() bool      { return ((r >> 1) & 1) == 1 }
func (r REX) B() bool      { return ((r >> 0) & 1) == 1 }
func (r *REX) SetOn()      { *r |= rexBase }
func (r *REX) SetW(b bool) { *r = (*r & 0b11110111) | (r.b2i(b) << 3) }
func (r *REX) SetR(b bool) { *r = (*r & 0b11111011) | (r.b2i(b) << 2) }
func (r *REX) SetX(b bool) { *r = (*r & 0b11111101) | (r.b2i(b) << 1) }
func (r *REX) SetB(b bool) { *r = (*r & 0b11111110) | (r.b2i(b) << 0) }

func (r REX) String() string {
	out := make([]byte, 8)
	for i, c := range "0100WRXB" {
		if i < 4 {
			out[i] = byte('0' + (r>>(7-i))&1)
			continue
		}
		if (r>>(7-i))&1 == 1 {
			out[i] = byte(c)
		} else {
			out[i] = byte(c) | 0x20
		}
	}
	return string(out)
}

// ModRM is the ModR/M byte.
//
// 	| 7  6 | 5  4  3 | 2  1  0 |
// 	+------+---------+---------|
// 	|  mod |   reg   |   r/m   |
type ModRM byte

const (
	ModRMmodDereferenceRegister    uint8 = 0b00
	ModRMmodSmallDisplacedRegister uint8 = 0b01
	ModRMmodLargeDisplacedRegister uint8 = 0b10
	ModRMmodRegister               uint8 = 0b11

	ModRMrmSIB                uint8 = 0b100
	ModRMrmDisplacementOnly32 uint8 = 0b101
)

func (m ModRM) Mod() byte { return byte(m&0b11000000) >> 6 }
func (m ModRM) Reg() byte { return byte(m&0b00111000) >> 3 }
func (m ModRM) RM() byte  { return byte(m&0b00000111) >> 0 }

func (m *ModRM) SetMod(mod byte) {
	if mod > 0b11 {
		panic(fmt.Sprintf("x64: ModR/M mod %#b out of range", mod))
	}
	*m = (*m & 0b00111111) | ModRM(mod<<6)
}

func (m *ModRM) SetReg(reg byte) {
	if reg > 0b111 {
		panic(fmt.Sprintf("x64: ModR/M reg %#b out of range", reg))
	}
	*m = (*m & 0b11000111) | ModRM(reg<<3)
}

func (m *ModRM) SetRM(rm byte) {
	if rm > 0b111 {
		panic(fmt.Sprintf("x64: ModR/M r/m %#b out of range", rm))
	}
	*m = (*m & 0b11111000) | ModRM(rm)
}

func (m ModRM) String() string {
	return fmt.Sprintf("%02b %03b %03b", m.Mod(), m.Reg(), m.RM())
}

// SIB is the Scale/Index/Base byte.
//
// 	| 7  6 | 5  4  3 | 2  1  0 |
// 	+------+---------+---------|
// 	| scale|  index  |   base  |
type SIB byte

const (
	SIBindexNone        uint8 = 0b100
	SIBbaseStackPointer uint8 = 0b100
	SIBbaseNone         uint8 = 0b101
)

func (s SIB) Scale() byte { return byte(s&0b11000000) >> 6 }
func (s SIB) Index() byte { return byte(s&0b00111000) >> 3 }
func (s SIB) Base() byte  { return byte(s&0b00000111) >> 0 }

func (s *SIB) SetScale(scale byte) {
	if scale > 0b11 {
		panic(fmt.Sprintf("x64: SIB scale %#b out of range", scale))
	}
	*s = (*s & 0b00111111) | SIB(scale<<6)
}

func (s *SIB) SetIndex(index byte) {
	if index > 0b111 {
		panic(fmt.Sprintf("x64: SIB index %#b out of range", index))
	}
	*s = (*s & 0b11000111) | SIB(index<<3)
}

func (s *SIB) SetBase(base byte) {
	if base > 0b111 {
		panic(fmt.Sprintf("x64: SIB base %#b out of range", base))
	}
	*s = (*s & 0b11111000) | SIB(base)
}

func (s SIB) String() string {
	return fmt.Sprintf("%02b %03b %03b", s.Scale(), s.Index(), s.Base())
}
