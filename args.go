package x64

import "math"

// Arg represents an instruction argument.
type Arg interface {
	isArg()
	width() uint8
}

// Mem is a memory-reference argument. Base may be RIP (or EIP) for RIP-relative addressing.
//
// Width is the size of the referenced memory in bytes. It may be left as 0 when another register
// argument of the instruction determines the operand size, or for instructions which default to
// 64-bit operands (PUSH, POP, CALL, JMP). Scale defaults to 1.
//
// Seg is an optional segment-override register (ES, CS, SS, DS, FS, or GS).
//
// Mem implements Arg.
type Mem struct {
	Disp  DispArg
	Seg   Reg
	Base  Reg
	Index Reg
	Scale uint8
	Width uint8
}

func (m Mem) isArg()       {}
func (m Mem) width() uint8 { return m.Width }

// ImmArg represents an immediate argument.
//
// Any Imm8, Imm16, Imm32, or Imm64 value implements ImmArg.
type ImmArg interface {
	Arg
	isImm()
	Int64() int64
}

func isImm(arg Arg) bool {
	_, ok := arg.(ImmArg)
	return ok
}

// Imm8 is an 8-bit immediate argument.
//
// Imm8 implements ImmArg.
type Imm8 int8

// Imm16 is a 16-bit immediate argument.
//
// Imm16 implements ImmArg.
type Imm16 int16

// Imm32 is a 32-bit immediate argument.
//
// Imm32 implements ImmArg.
type Imm32 int32

// Imm64 is a 64-bit immediate argument.
//
// Imm64 implements ImmArg.
type Imm64 int64

func (i Imm8) isArg()  {}
func (i Imm16) isArg() {}
func (i Imm32) isArg() {}
func (i Imm64) isArg() {}

func (i Imm8) isImm()  {}
func (i Imm16) isImm() {}
func (i Imm32) isImm() {}
func (i Imm64) isImm() {}

func (i Imm8) width() uint8  { return 1 }
func (i Imm16) width() uint8 { return 2 }
func (i Imm32) width() uint8 { return 4 }
func (i Imm64) width() uint8 { return 8 }

func (i Imm8) Int64() int64  { return int64(i) }
func (i Imm16) Int64() int64 { return int64(i) }
func (i Imm32) Int64() int64 { return int64(i) }
func (i Imm64) Int64() int64 { return int64(i) }

// DispArg represents a label reference (with or without additional displacement) or a relative displacement.
//
// Any Rel8, Rel16, Rel32, Label, Label8, Label32, or LabelDisp value implements DispArg.
type DispArg interface {
	Arg
	isDisp()
	Int32() int32
}

func isDisp(arg Arg) bool {
	_, ok := arg.(DispArg)
	return ok
}

// RelArg represents a relative displacement.
type RelArg interface {
	DispArg
	isRel()
}

// Rel8 is an 8-bit displacement argument.
//
// Rel8 implements DispArg.
type Rel8 int8

// Rel16 is a 16-bit displacement argument. No 64-bit encoding accepts one: branch offsets and
// memory displacements are 8 or 32 bits, and RET/ENTER take immediates (Imm16), not displacements.
//
// Rel16 implements DispArg.
type Rel16 int16

// Rel32 is a 32-bit displacement argument.
//
// Rel32 implements DispArg.
type Rel32 int32

func (r Rel8) isArg()  {}
func (r Rel16) isArg() {}
func (r Rel32) isArg() {}

func (r Rel8) isDisp()  {}
func (r Rel16) isDisp() {}
func (r Rel32) isDisp() {}

func (r Rel8) isRel()  {}
func (r Rel16) isRel() {}
func (r Rel32) isRel() {}

func (r Rel8) width() uint8  { return 1 }
func (r Rel16) width() uint8 { return 2 }
func (r Rel32) width() uint8 { return 4 }

func (r Rel8) Int32() int32  { return int32(r) }
func (r Rel16) Int32() int32 { return int32(r) }
func (r Rel32) Int32() int32 { return int32(r) }

// Disp returns the smallest displacement argument which can hold d: Rel8 if d fits in a signed
// byte, otherwise Rel32.
func Disp(d int32) RelArg {
	if d >= math.MinInt8 && d <= math.MaxInt8 {
		return Rel8(d)
	}
	return Rel32(d)
}

// LabelArg represents a label reference, with or without additional displacement.
//
// Any Label, Label8, Label32, or LabelDisp value implements LabelArg and DispArg.
type LabelArg interface {
	DispArg
	isLabel()
	label() uint16
}

var _ LabelArg = Label{}
var _ LabelArg = LabelDisp{}
var _ LabelArg = Label8(0)
var _ LabelArg = Label32(0)

func isLabel(arg Arg) bool {
	_, ok := arg.(LabelArg)
	return ok
}

// Label is a reference to a label. A bare Label is referenced as a 32-bit displacement.
type Label struct {
	id uint16 // auto-incrementing identifier
}

// LabelDisp is a reference to a label with additional displacement.
//
// LabelDisp implements LabelArg and DispArg.
type LabelDisp struct {
	disp int32
	id   uint16
	size uint8
}

// Get the unique identifier for the label.
func (l Label) Id() uint16 { return l.id }

// Reference the label as an 8-bit relative displacement from the current instruction pointer.
func (l Label) Rel8() Label8 { return Label8(l.id) }

// Reference the label as a 32-bit relative displacement from the current instruction pointer.
func (l Label) Rel32() Label32 { return Label32(l.id) }

// Reference the label plus d as an 8-bit relative displacement from the current instruction pointer.
func (l Label) Disp8(d int8) LabelDisp { return LabelDisp{disp: int32(d), id: l.id, size: 1} }

// Reference the label plus d as a 32-bit relative displacement from the current instruction pointer.
func (l Label) Disp32(d int32) LabelDisp { return LabelDisp{disp: d, id: l.id, size: 4} }

// Label8 is an 8-bit displacement to a label.
//
// Label8 implements LabelArg and DispArg.
type Label8 uint16

// Label32 is a 32-bit displacement to a label.
//
// Label32 implements LabelArg and DispArg.
type Label32 uint16

func (l Label8) isArg()    {}
func (l Label32) isArg()   {}
func (l Label) isArg()     {}
func (l LabelDisp) isArg() {}

func (l Label8) isLabel()    {}
func (l Label32) isLabel()   {}
func (l Label) isLabel()     {}
func (l LabelDisp) isLabel() {}

func (l Label8) isDisp()    {}
func (l Label32) isDisp()   {}
func (l Label) isDisp()     {}
func (l LabelDisp) isDisp() {}

func (l Label8) width() uint8    { return 1 }
func (l Label32) width() uint8   { return 4 }
func (l Label) width() uint8     { return 4 }
func (l LabelDisp) width() uint8 { return l.size }

func (l Label8) label() uint16    { return uint16(l) }
func (l Label32) label() uint16   { return uint16(l) }
func (l Label) label() uint16     { return l.id }
func (l LabelDisp) label() uint16 { return l.id }

// Get the additional displacement for the label reference, which is always 0. Use LabelDisp for additional displacement.
func (l Label8) Int32() int32 { return 0 }

// Get the additional displacement for the label reference, which is always 0. Use LabelDisp for additional displacement.
func (l Label32) Int32() int32 { return 0 }

// Get the additional displacement for the label reference, which is always 0. Use LabelDisp for additional displacement.
func (l Label) Int32() int32 { return 0 }

// Get the additional displacement for the label reference.
func (l LabelDisp) Int32() int32 { return l.disp }

// Widen a displacement argument to 32 bits, keeping any label reference.
func widenDisp32(d DispArg) DispArg {
	switch v := d.(type) {
	case LabelDisp:
		v.size = 4
		return v
	case LabelArg:
		return Label32(v.label())
	default:
		return Rel32(d.Int32())
	}
}
