package x64

import (
	"fmt"
	"math/bits"
)

const (
	modNoDisp uint8 = 0
	modDisp8  uint8 = 1
	modDisp32 uint8 = 2
	modDirect uint8 = 3
)

// fixup records a label reference which must be patched once the label's offset is known.
type fixup struct {
	offset int    // offset of the patched field from the start of the instruction
	disp   int32  // additional displacement relative to the label offset
	label  uint16 // target label
	width  uint8  // displacement width
	imm    bool   // the reference is in the immediate field rather than the displacement field
	ok     bool
}

func labelFixup(d DispArg, imm bool) fixup {
	l, ok := d.(LabelArg)
	if !ok {
		return fixup{}
	}
	return fixup{disp: l.Int32(), label: l.label(), width: l.width(), imm: imm, ok: true}
}

// Encode a memory argument into the ModR/M, SIB, and displacement fields of c. reg is the value of
// the ModR/M.reg field (a register code or an opcode extension); bit 3 of reg sets REX.R.
//
// mem must have been normalized by sanitizeMem.
func encodeMem(c Code, reg uint8, mem Mem) (Code, fixup, error) {
	if reg > 15 {
		return c, fixup{}, fmt.Errorf("ModR/M reg field out of range: %d", reg)
	}
	if reg&8 != 0 {
		c = c.WithRexR()
	}
	reg &= 7

	var fix fixup
	disp := int32(0)
	if mem.Disp != nil {
		if fix = labelFixup(mem.Disp, false); !fix.ok {
			disp = mem.Disp.Int32()
		}
	}

	base, index := mem.Base, mem.Index
	scale := uint8(bits.TrailingZeros8(mem.Scale))

	switch {
	// RIP+disp32
	case base != 0 && base.Family() == REG_RIP:
		c = c.WithModRM(modNoDisp, reg, ModRMrmDisplacementOnly32)
		return c.WithDisp32(disp), fix, nil

	// absolute disp32
	case base == 0 && index == 0:
		c = c.WithModRM(modNoDisp, reg, ModRMrmSIB)
		c = c.WithSIB(0, SIBindexNone, SIBbaseNone)
		return c.WithDisp32(disp), fix, nil

	// index*scale+disp32
	case base == 0:
		if index.IsExtended() {
			c = c.WithRexX()
		}
		c = c.WithModRM(modNoDisp, reg, ModRMrmSIB)
		c = c.WithSIB(scale, index.Num()&7, SIBbaseNone)
		return c.WithDisp32(disp), fix, nil
	}

	if base.IsExtended() {
		c = c.WithRexB()
	}

	mode := modNoDisp
	switch {
	case mem.Disp == nil && base.Num()&7 == RBP.Num():
		// RBP/R13 can only be encoded as base if a displacement is present.
		mem.Disp = Rel8(0)
		mode = modDisp8
	case mem.Disp == nil:
		mode = modNoDisp
	case mem.Disp.width() == 1:
		mode = modDisp8
	default:
		mode = modDisp32
	}

	// if there's an index, or the base is RSP/R12, we need to escape into the SIB byte
	switch {
	case index != 0:
		if index.IsExtended() {
			c = c.WithRexX()
		}
		c = c.WithModRM(mode, reg, ModRMrmSIB)
		c = c.WithSIB(scale, index.Num()&7, base.Num()&7)
	case base.Num()&7 == RSP.Num():
		c = c.WithModRM(mode, reg, ModRMrmSIB)
		c = c.WithSIB(0, SIBindexNone, SIBbaseStackPointer)
	default:
		c = c.WithModRM(mode, reg, base.Num()&7)
	}

	switch mode {
	case modDisp8:
		c = c.WithDisp8(int8(disp))
	case modDisp32:
		c = c.WithDisp32(disp)
	}
	return c, fix, nil
}

// Encode a register argument directly into the ModR/M.r/m field of c.
func encodeDirect(c Code, reg uint8, rm Reg) Code {
	if reg&8 != 0 {
		c = c.WithRexR()
	}
	if rm.IsExtended() {
		c = c.WithRexB()
	}
	return c.WithModRM(modDirect, reg&7, rm.Num()&7)
}

// Check the register arguments of the matched encoding against the REX prefix: SPL, BPL, SIL and DIL
// require a REX prefix, while AH, CH, DH and BH can only be addressed without one.
func (m *InstMatcher) checkRex(c Code) (Code, error) {
	forceRex, highByte := false, Reg(0)
	for _, arg := range m.args {
		r, ok := arg.(Reg)
		if !ok {
			continue
		}
		if r.Family() == REG_HIGHBYTE {
			highByte = r
		} else if r.ForcesRex() {
			forceRex = true
		}
	}
	if forceRex {
		c = c.WithREX(0)
	}
	if highByte != 0 && c.REX != 0 {
		return c, fmt.Errorf("%s with %v: %w", m.inst.Name(), highByte, ErrHighByteWithRex)
	}
	return c, nil
}
