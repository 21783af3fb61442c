package x64

import (
	"fmt"

	. "github.com/wdamron/x64/v2/internal/flags"
)

// Encode the matched instruction into its structured form. userPrefix is an optional group-1
// prefix (LOCK, REP, or REPNE) requested by the caller, or 0.
//
// Label references are encoded as zero placeholders; the returned fixup locates the field which
// must be patched once the label is defined.
func (m *InstMatcher) encode(userPrefix Prefix) (Code, fixup, error) {
	var c Code
	var fix fixup
	inst := m.inst
	enc := m.enc
	flags := enc.flags
	opSize := m.opSize

	switch userPrefix {
	case 0:
	case PrefixLock:
		if !hasFlag(flags, LOCK) {
			return c, fix, fmt.Errorf("LOCK prefix unsupported for %s: %w", inst.Name(), ErrPrefix)
		}
		if m.memOffset < 0 {
			return c, fix, fmt.Errorf("LOCK prefix requires a memory destination for %s: %w", inst.Name(), ErrPrefix)
		}
	case PrefixRepeat:
		if flags&(REP|REPE) == 0 {
			return c, fix, fmt.Errorf("REP/REPE/REPZ prefix unsupported for %s: %w", inst.Name(), ErrPrefix)
		}
	case PrefixRepeatNot:
		if !hasFlag(flags, REPE) {
			return c, fix, fmt.Errorf("REPNE/REPNZ prefix unsupported for %s: %w", inst.Name(), ErrPrefix)
		}
	default:
		return c, fix, fmt.Errorf("%v is not a LOCK or REP prefix: %w", userPrefix, ErrPrefix)
	}

	// mandatory prefixes share group 1 with LOCK and REP
	var mandatory Prefix
	switch {
	case hasFlag(flags, PREF_F2):
		mandatory = PrefixRepeatNot
	case hasFlag(flags, PREF_F3):
		mandatory = PrefixRepeat
	}
	if mandatory != 0 && userPrefix != 0 && userPrefix != mandatory {
		return c, fix, fmt.Errorf("%v prefix conflicts with the mandatory %v prefix of %s: %w", userPrefix, mandatory, inst.Name(), ErrPrefix)
	}
	if mandatory != 0 {
		c = c.WithPrefix(mandatory)
	} else if userPrefix != 0 {
		c = c.WithPrefix(userPrefix)
	}

	if m.memOffset >= 0 && m.mem.Seg != 0 {
		seg, _ := segmentPrefix(m.mem.Seg)
		c = c.WithPrefix(seg)
	}

	// determine if size prefixes are necessary
	var prefSize, rexW bool
	if flags&(AUTO_SIZE|AUTO_NO32|AUTO_REXW) != 0 {
		if opSize < 0 {
			return c, fix, fmt.Errorf("Bad formatting data for %s (op size = %v); no wildcard sizes", inst.Name(), opSize)
		}

		switch {
		case hasFlag(flags, AUTO_NO32):
			switch opSize {
			case 2:
				prefSize = true
			case 8:
				// ok
			default:
				return c, fix, fmt.Errorf("Unsupported operation size for 64-bit mode instruction %s: %v: %w", inst.Name(), opSize, ErrOperandSize)
			}
		case hasFlag(flags, AUTO_REXW):
			switch opSize {
			case 8:
				rexW = true
			case 4:
			default:
				return c, fix, fmt.Errorf("16-bit arguments are not supported for %s: %w", inst.Name(), ErrOperandSize)
			}
		default:
			switch opSize {
			case 2:
				prefSize = true
			case 8:
				rexW = true
			case 4:
			default:
				return c, fix, fmt.Errorf("Bad operation size for instruction %s: %v: %w", inst.Name(), opSize, ErrOperandSize)
			}
		}
	}

	prefSize = prefSize || hasFlag(flags, WORD_SIZE)
	rexW = rexW || hasFlag(flags, WITH_REXW)

	if prefSize {
		c = c.WithPrefix(PrefixOperandSize)
	}
	if m.addrSize == 4 {
		c = c.WithPrefix(PrefixAddressSize)
	}
	if rexW {
		c = c.WithRexW()
	}

	var op [3]byte
	oplen := copy(op[:], enc.op)
	rm := m.m

	// condition codes are added to the last opcode byte
	if hasFlag(flags, COND_OP) {
		if !m.hasCond {
			return c, fix, fmt.Errorf("Bad formatting data for %s: missing condition code", inst.Name())
		}
		op[oplen-1] += byte(m.cond)
	}

	// if rm is embedded in the last opcode byte, push it here
	if hasFlag(flags, SHORT_ARG) {
		reg, ok := rm.(Reg)
		if !ok {
			return c, fix, fmt.Errorf("Bad formatting data for %s", inst.Name())
		}
		rm = nil
		if reg.IsExtended() {
			c = c.WithRexB()
		}
		op[oplen-1] += reg.Num() & 7
	}
	c = c.WithOpcode(op[:oplen]...)

	if rm != nil {
		var regField uint8
		if enc.reg != nr {
			regField = uint8(enc.reg)
		} else if r, ok := m.r.(Reg); ok {
			regField = r.Num()
		}

		switch a := rm.(type) {
		case Reg:
			c = encodeDirect(c, regField, a)
		case memArgPlaceholder:
			var err error
			if c, fix, err = encodeMem(c, regField, m.mem); err != nil {
				return c, fix, err
			}
		default:
			return c, fix, fmt.Errorf("Bad formatting data for %s", inst.Name())
		}
	}

	// immediates
	for _, arg := range m.imms {
		switch a := arg.(type) {
		case ImmArg:
			switch a.width() {
			case 1:
				c = c.WithImm8(int8(a.Int64()))
			case 2:
				c = c.WithImm16(int16(a.Int64()))
			case 4:
				c = c.WithImm32(int32(a.Int64()))
			case 8:
				c = c.WithImm64(a.Int64())
			}
		case LabelArg:
			if fix.ok {
				return c, fix, fmt.Errorf("Multiple label references are not supported for %s", inst.Name())
			}
			fix = labelFixup(a, true)
			fix.offset = c.ImmediateLen
			switch a.width() {
			case 1:
				c = c.WithImm8(0)
			case 4:
				c = c.WithImm32(0)
			default:
				return c, fix, fmt.Errorf("Invalid label displacement (8-bit and 32-bit displacements are supported): %v", a.width())
			}
		case RelArg:
			switch a.width() {
			case 1:
				c = c.WithImm8(int8(a.Int32()))
			case 4:
				c = c.WithImm32(a.Int32())
			}
		default:
			return c, fix, fmt.Errorf("Bad formatting data for %s", inst.Name())
		}
	}

	c, err := m.checkRex(c)
	if err != nil {
		return c, fix, err
	}

	// locate the patched field now that the prefixes are final
	if fix.ok {
		immStart := c.Len() - c.ImmediateLen
		if fix.imm {
			fix.offset += immStart
		} else {
			fix.offset = immStart - c.DisplacementLen
		}
	}
	return c, fix, nil
}
