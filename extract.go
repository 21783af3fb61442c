package x64

import (
	"fmt"

	. "github.com/wdamron/x64/v2/internal/flags"
)

// Operand order:
//
// if there's a memory/reg operand, this operand goes into modrm.r/m
// if there's a segment/control/debug register, it goes into reg.
//
// default argument encoding order is as follows:
// no encoding flag: m, rm
// ENC_MR:              mr
// these can also be chosen based on the location of a memory argument
//
// Fixed registers (A ... V, X) and condition codes are implied by the opcode and are not extracted.
func (m *InstMatcher) extractArgs() error {
	argp := m.enc.argp
	plen := len(argp)
	args := m.args
	argc := len(args)
	flags := m.enc.flags
	memArg := -1
	regArg := -1
	var regs [4]Arg
	regc := 0
	immc := 0

	m.r, m.m, m.cond, m.hasCond = nil, nil, 0, false

	// scan arg-pattern:
	for pi, ai := 0, 0; pi+1 < plen && ai < argc; pi, ai = pi+2, ai+1 {
		t, arg := argp[pi], args[ai]

		switch t {
		case 'm', 'v':
			if _, ok := arg.(memArgPlaceholder); ok {
				if memArg >= 0 {
					return fmt.Errorf("Multiple memory arguments in format string for %s", m.inst.Name())
				}
				memArg = regc
			}
			regs[regc] = arg
			regc++
		case 'f', 'r':
			regs[regc] = arg
			regc++
		case 'c', 'd', 's':
			if regArg >= 0 {
				return fmt.Errorf("Multiple segment, debug or control registers in format string for %s", m.inst.Name())
			}
			regArg = regc
			regs[regc] = arg
			regc++
		case 'i', 'o':
			m._imms[immc] = arg
			immc++
		case 'n':
			m.cond, m.hasCond = arg.(Cond), true
		}
	}

	m.imms = m._imms[:immc]

	if regArg >= 0 {
		if regArg == 0 {
			m.r, m.m = regs[0], regs[1]
		} else {
			m.m, m.r = regs[0], regs[1]
		}
		return nil
	}

	switch regc {
	case 0:
	case 1:
		m.m = regs[0]
	case 2:
		if hasFlag(flags, ENC_MR) || memArg == 0 {
			m.m, m.r = regs[0], regs[1]
		} else {
			m.r, m.m = regs[0], regs[1]
		}
	default:
		return fmt.Errorf("Bad formatting data for %s: %d register arguments", m.inst.Name(), regc)
	}

	return nil
}
