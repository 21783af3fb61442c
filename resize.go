package x64

import (
	x64flags "github.com/wdamron/x64/v2/internal/flags"
)

// Resolve the operand size for a candidate encoding and check all wildcard-sized arguments against it.
// Unsized memory arguments take the size of their pattern slot (or the operand size for wildcard slots).
func (m *InstMatcher) resizeArgs(e enc) (opSize int8, ok bool) {
	p := e.argp
	opSize = -1
	wildcards := false
	memSlotSize := uint8(0)

	// scan arg-pattern:
	for pi, ai := 0, 0; pi+1 < len(p) && ai < len(m.args); pi, ai = pi+2, ai+1 {
		t, sz, arg := p[pi], p[pi+1], m.args[ai]
		if t == 'i' || t == 'o' || t == 'n' {
			continue
		}

		width := arg.width()
		if _, isMem := arg.(memArgPlaceholder); isMem {
			width = m.mem.Width
			memSlotSize = slotSize(sz)
		}

		if sz != '*' {
			if opSize < 0 && width != 0 && (t == 'r' || t == 'v' || t == 'm' || (t >= 'A' && t <= 'P')) {
				opSize = int8(width)
			}
			continue
		}

		wildcards = true
		if width == 0 {
			continue
		}
		if opSize >= 0 && opSize != int8(width) {
			// conflicting argument sizes
			return -1, false
		}
		opSize = int8(width)
	}

	if wildcards {
		if opSize < 0 {
			if !hasFlag(e.flags, x64flags.AUTO_NO32) {
				return -1, false
			}
			opSize = 8
		}
		if memSlotSize == 0 {
			memSlotSize = uint8(opSize)
		}
	}

	switch {
	case hasFlag(e.flags, x64flags.AUTO_NO32):
		if opSize != 2 && opSize != 8 {
			return -1, false
		}
	case hasFlag(e.flags, x64flags.AUTO_REXW):
		if opSize != 4 && opSize != 8 {
			return -1, false
		}
	}

	// wildcard immediates are a word for 16-bit operands, otherwise a doubleword
	immSize := uint8(4)
	if opSize == 2 {
		immSize = 2
	}
	for pi, ai := 0, 0; pi+1 < len(p) && ai < len(m.args); pi, ai = pi+2, ai+1 {
		if p[pi] == 'i' && p[pi+1] == '*' && m.args[ai].width() != immSize {
			return -1, false
		}
	}

	if m.memOffset >= 0 && m.mem.Width == 0 && memSlotSize != 0 {
		m.mem.Width = memSlotSize
	}
	return opSize, true
}

func slotSize(sz byte) uint8 {
	switch sz {
	case 'b':
		return 1
	case 'w':
		return 2
	case 'd':
		return 4
	case 'q':
		return 8
	case 'p':
		return 10
	}
	return 0
}
