package x64

import "fmt"

// Check for impossible to encode memory arguments, normalize the base/index/scale/displacement, and
// return the effective address size (4 or 8).
func (matcher *InstMatcher) sanitizeMemArg() (addrSize int8, err error) {
	if matcher.memOffset < 0 {
		return 8, nil
	}
	return sanitizeMem(&matcher.mem)
}

// Validates that the base/index combination can actually be encoded and returns the effective address size.
//
// Memory arguments without a base or index register use 64-bit absolute addressing through a SIB byte.
func sanitizeMem(mem *Mem) (int8, error) {
	if mem.Scale == 0 {
		mem.Scale = 1
	}
	b, i, scale := mem.Base, mem.Index, mem.Scale

	switch scale {
	case 1, 2, 4, 8:
	default:
		return -1, fmt.Errorf("Unsupported scale %d (must be 1, 2, 4, or 8): %w", scale, ErrInvalidMem)
	}

	if mem.Seg != 0 {
		if _, ok := segmentPrefix(mem.Seg); !ok {
			return -1, fmt.Errorf("Segment override %v is not a segment register: %w", mem.Seg, ErrInvalidMem)
		}
	}

	if mem.Disp != nil {
		switch mem.Disp.width() {
		case 1, 4:
		default:
			return -1, fmt.Errorf("Only 8/32-bit displacements are allowed in 64-bit mode: %w", ErrInvalidMem)
		}
	}

	// RIP-relative addressing
	if b.Family() == REG_RIP || (i != 0 && i.Family() == REG_RIP) {
		if b != 0 && i != 0 {
			return -1, fmt.Errorf("Base and index registers not supported for RIP: %w", ErrInvalidMem)
		}
		if scale != 1 {
			return -1, fmt.Errorf("Scale is not supported for RIP-relative encoding: %w", ErrInvalidMem)
		}
		if b == 0 {
			b = i
		}
		if b.width() != 4 && b.width() != 8 {
			return -1, fmt.Errorf("Unsupported instruction pointer %v: %w", b, ErrInvalidMem)
		}
		mem.Base, mem.Index = b, 0
		mem.Disp = ripDisp(mem.Disp)
		return int8(b.width()), nil
	}

	// absolute addressing
	if b == 0 && i == 0 {
		mem.Disp = ripDisp(mem.Disp)
		return 8, nil
	}

	size := uint8(0)
	for _, r := range [...]Reg{b, i} {
		if r == 0 {
			continue
		}
		if r.Family() != REG_LEGACY || (r.width() != 4 && r.width() != 8) {
			return -1, fmt.Errorf("Unsupported register %v for memory addressing: %w", r, ErrInvalidMem)
		}
		if size != 0 && size != r.width() {
			return -1, fmt.Errorf("Registers of differing sizes for base/index: %v/%v: %w", b, i, ErrInvalidMem)
		}
		size = r.width()
	}

	// RSP as index field can not be represented. Check if we can swap it with base
	if i != 0 && !i.CanIndex() {
		if (b != 0 && b.Num() == RSP.Num()) || scale != 1 {
			return -1, fmt.Errorf("%v cannot be used as index: %w", i, ErrInvalidMem)
		}
		mem.Base, mem.Index = i, b
	}

	// no base: the index is scaled and a 32-bit displacement is always encoded
	if mem.Base == 0 {
		mem.Disp = ripDisp(mem.Disp)
	}

	// RBP/R13 as base without displacement requires a mandatory 8-bit displacement, and RSP/R12 as
	// base requires a SIB byte; both are handled while encoding the ModR/M byte.
	return int8(size), nil
}

func ripDisp(d DispArg) DispArg {
	if d == nil {
		return Rel32(0)
	}
	if d.width() != 4 {
		return widenDisp32(d)
	}
	return d
}
