package x64

import (
	"slices"

	x64flags "github.com/wdamron/x64/v2/internal/flags"
)

// Operand type/size patterns
//
// i : immediate
// o : relative displacement (Rel8/Rel32 or a label reference)
// n : condition code
//
// m : memory
// r : legacy reg (including the high-byte registers)
// v : r and m
// f : fp reg
// s : segment reg
// c : control reg
// d : debug reg
//
// A ... P: match rax - r15
// Q ... V: match es, cs, ss, ds, fs, gs
// X: matches st0
//
// b, w, d, q, p match a byte, word, doubleword, quadword and 80-bit float
// * matches all possible sizes for this operand (w/d/q for r/v/m and fixed registers; for i, a word
//   if the operand size is 16 bits, otherwise a doubleword)
// ! matches a lack of size, only useful in combination with m and n
//
// Sizes must match exactly; immediates and displacements are never widened. A memory argument
// with a zero Width matches when a register argument sits in a slot with the same size letter as
// the memory slot (e.g. v* with r*, or vb with rb), or when the encoding defaults to 64-bit
// operands (AUTO_NO32). Fixed registers (A ... X) never imply a memory size: CL in SHL [rax], CL
// is a shift count.
func (m *InstMatcher) matchInst(start int) (sizeErr bool, ok bool) {
	encs := m.inst.encs()
	argc := len(m.args)
SEARCH:
	for ei := start; ei < len(encs); ei++ {
		e := encs[ei]
		if e.feats&m.feats != e.feats {
			continue
		}
		p := e.argp
		if e.argc() != argc {
			continue
		}

		unsizedMem := false
		memSz := byte(0)
		var regSz [4]byte
		nregs := 0

		// scan arg-pattern:
		for pi, ai := 0, 0; pi+1 < len(p) && ai < argc; pi, ai = pi+2, ai+1 {
			t, sz, arg := p[pi], p[pi+1], m.args[ai]

			argsz := arg.width()
			if _, ok := arg.(memArgPlaceholder); ok {
				argsz = m.mem.Width
			}

			// check type
			switch t {
			case 'i': // immediate
				if !isImm(arg) {
					continue SEARCH
				}
			case 'o': // displacement
				if !isDisp(arg) {
					continue SEARCH
				}
			case 'n': // condition code
				if c, ok := arg.(Cond); !ok || c > CondG {
					continue SEARCH
				}
			case 'X': // st0
				if r, ok := arg.(Reg); !ok || r != ST0 {
					continue SEARCH
				}
			case 'r', 'v': // legacy reg or memory
				switch argv := arg.(type) {
				case Reg:
					if argv.Family() != REG_LEGACY && argv.Family() != REG_HIGHBYTE {
						continue SEARCH
					}
					regSz[nregs], nregs = sz, nregs+1
				case memArgPlaceholder:
					if t != 'v' {
						continue SEARCH
					}
				default:
					continue SEARCH
				}
			case 'm': // memory
				if _, ok := arg.(memArgPlaceholder); !ok {
					continue SEARCH
				}
			case 'f': // fp reg
				if r, ok := arg.(Reg); !ok || r.Family() != REG_FP {
					continue SEARCH
				}
				regSz[nregs], nregs = sz, nregs+1
			case 's': // segment reg
				if r, ok := arg.(Reg); !ok || r.Family() != REG_SEGMENT {
					continue SEARCH
				}
				regSz[nregs], nregs = sz, nregs+1
			case 'c': // control reg
				if r, ok := arg.(Reg); !ok || r.Family() != REG_CONTROL {
					continue SEARCH
				}
				regSz[nregs], nregs = sz, nregs+1
			case 'd': // debug reg
				if r, ok := arg.(Reg); !ok || r.Family() != REG_DEBUG {
					continue SEARCH
				}
				regSz[nregs], nregs = sz, nregs+1
			default:
				switch {
				case t >= 'A' && t <= 'P': // rax - r15 (fixed reg)
					if r, ok := arg.(Reg); !ok || r.Family() != REG_LEGACY || byte(r.Num()) != t-'A' {
						continue SEARCH
					}
				case t >= 'Q' && t <= 'V': // es, cs, ss, ds, fs, gs (fixed reg)
					if r, ok := arg.(Reg); !ok || r.Family() != REG_SEGMENT || byte(r.Num()) != t-'Q' {
						continue SEARCH
					}
				default:
					continue SEARCH
				}
			}

			_, isMem := arg.(memArgPlaceholder)
			if isMem && argsz == 0 && sz != '!' {
				// the size will be resolved from the other arguments
				unsizedMem, memSz = true, sz
				continue
			}

			// check size
			switch sz {
			case 'b':
				if argsz != 1 {
					continue SEARCH
				}
			case 'w':
				if argsz != 2 {
					continue SEARCH
				}
			case 'd':
				if argsz != 4 {
					continue SEARCH
				}
			case 'q':
				if argsz != 8 {
					continue SEARCH
				}
			case 'p':
				if argsz != 10 {
					continue SEARCH
				}
			case '*':
				switch t {
				case 'i':
					// checked against the operand size in resizeArgs
				default:
					if argsz != 2 && argsz != 4 && argsz != 8 {
						continue SEARCH
					}
				}
			case '!':
				if t != 'm' && t != 'n' {
					continue SEARCH
				}
			default:
				continue SEARCH
			}
		}

		if unsizedMem && !hasFlag(e.flags, x64flags.AUTO_NO32) && !slices.Contains(regSz[:nregs], memSz) {
			// e.g. ADD [rax], 1 or MOVZX EAX, [rax]: the memory width must be given explicitly
			sizeErr = true
			continue
		}

		opSize, ok := m.resizeArgs(e)
		if !ok || shortFormIsNop(e, opSize, m.args) {
			continue
		}

		// all arguments match for the current encoding
		m.encId, m.enc, m.opSize = ei, e, opSize
		return false, true
	}

	return sizeErr, false
}

// 90 decodes as NOP in 64-bit mode, so XCHG EAX, EAX must use 87 /r to clear the upper half of RAX.
func shortFormIsNop(e enc, opSize int8, args []Arg) bool {
	if !hasFlag(e.flags, x64flags.SHORT_ARG) || opSize != 4 || len(e.op) != 1 || e.op[0] != 0x90 {
		return false
	}
	for _, arg := range args {
		if r, ok := arg.(Reg); !ok || r.Num() != 0 {
			return false
		}
	}
	return true
}
