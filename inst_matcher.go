package x64

import (
	"fmt"

	"github.com/wdamron/x64/v2/feats"
	x64flags "github.com/wdamron/x64/v2/internal/flags"
)

// Placeholder for memory arguments, to avoid allocations when converting Mem to an interface
type memArgPlaceholder struct{}

func (m memArgPlaceholder) isArg()       {}
func (m memArgPlaceholder) width() uint8 { return 0 }

// InstMatcher finds valid encodings for an instruction with arguments.
type InstMatcher struct {
	// enabled CPU features:
	feats feats.Feature

	// scratch space for current instruction, arguments, and matched encoding:

	addrSize int
	opSize   int8

	memOffset int   // -1 if no memory argument is present
	mem       Mem   // memory argument if memOffset >= 0
	args      []Arg // sized reference to _args
	_args     [4]Arg

	inst  Inst
	encId int // offset of the matched encoding
	enc   enc // matched encoding

	// extracted arguments:

	r       Arg
	m       Arg
	cond    Cond
	hasCond bool

	imms  []Arg
	_imms [4]Arg
}

// Create an instruction matcher with all CPU features enabled by default.
func NewInstMatcher() *InstMatcher {
	return &InstMatcher{
		feats:     feats.AllFeatures,
		memOffset: -1,
		addrSize:  -1,
		opSize:    -1,
		encId:     -1,
	}
}

func (m *InstMatcher) reset() {
	*m = InstMatcher{feats: m.feats, addrSize: -1, opSize: -1, memOffset: -1, encId: -1}
}

// Get the current, allowable CPU feature-set for instruction-matching.
//
// See package x64/feats for all available CPU features.
func (m *InstMatcher) Features() feats.Feature { return m.feats }

// Restrict the allowable CPU feature-set for instruction-matching.
//
// See package x64/feats for all available CPU features.
func (m *InstMatcher) SetFeatures(enabledFeatures feats.Feature) { m.feats = enabledFeatures }

// Control the allowable CPU feature-set for instruction-matching.
func (m *InstMatcher) DisableFeature(feature feats.Feature) { m.feats &^= feature }

// Control the allowable CPU feature-set for instruction-matching.
func (m *InstMatcher) EnableFeature(feature feats.Feature) { m.feats |= feature }

// Get the index of the matched encoding within the instruction's forms, or -1 if nothing was matched.
func (m *InstMatcher) EncodingId() int { return m.encId }

// Get CPU features required by the matched encoding.
func (m *InstMatcher) InstFeatures() feats.Feature { return m.enc.feats }

// Get the instruction's address size.
func (m *InstMatcher) AddrSize() int { return m.addrSize }

// Get the instruction's operand size, or -1 if the instruction has no sized operands.
func (m *InstMatcher) OperandSize() int { return int(m.opSize) }

// Get the instruction's opcode
func (m *InstMatcher) Opcode() []byte { return m.enc.op }

// Check if a register argument will be encoded in the last byte of the instruction's opcode.
func (m *InstMatcher) HasOpcodeRegArg() bool { return hasFlag(m.enc.flags, x64flags.SHORT_ARG) }

// Get the form of the matched encoding.
func (m *InstMatcher) Form() Form {
	if m.encId < 0 {
		return Form{}
	}
	return m.enc.form(m.inst, m.encId)
}

// Find the first encoding for inst which accepts args, trying forms in table order.
func (m *InstMatcher) Match(inst Inst, args ...Arg) error {
	if err := m.prepare(inst, args...); err != nil {
		return err
	}
	return m.match(0)
}

// Find all matching encodings for an instruction. If no matches are found, ErrNoMatch will be returned.
func (m *InstMatcher) AllMatches(inst Inst, args ...Arg) ([]InstMatcher, error) {
	var matches []InstMatcher
	for start := 0; start < len(inst.encs()); {
		if err := m.prepare(inst, args...); err != nil {
			return nil, err
		}
		if err := m.match(start); err != nil {
			break
		}
		matches = append(matches, *m)
		start = m.encId + 1
	}
	m.reset()
	if len(matches) == 0 {
		return nil, ErrNoMatch
	}
	// the copies must not share argument storage with m
	for i := range matches {
		mm := &matches[i]
		mm.args = mm._args[:len(mm.args)]
		mm.imms = mm._imms[:len(mm.imms)]
	}
	return matches, nil
}

func (m *InstMatcher) prepare(inst Inst, args ...Arg) error {
	m.reset()
	if !inst.Valid() {
		return fmt.Errorf("Invalid instruction %v: %w", inst, ErrNoMatch)
	}
	if len(args) > len(m._args) {
		return fmt.Errorf("Too many arguments for %s (%d): %w", inst.Name(), len(args), ErrNoMatch)
	}
	m.inst = inst
	for i, arg := range args {
		if arg == nil {
			m.reset()
			return fmt.Errorf("Nil argument %d for %s: %w", i, inst.Name(), ErrNoMatch)
		}
		if mem, ok := arg.(Mem); ok {
			if m.memOffset >= 0 {
				m.reset()
				return fmt.Errorf("Multiple memory arguments are not supported: %w", ErrInvalidMem)
			}
			m._args[i] = memArgPlaceholder{}
			m.memOffset = i
			m.mem = mem
			continue
		}
		m._args[i] = arg
	}
	m.args = m._args[:len(args)]
	return nil
}

func (m *InstMatcher) match(start int) error {
	addrSize, err := m.sanitizeMemArg()
	if err != nil {
		m.reset()
		return err
	}

	// find a matching encoding
	sizeErr, ok := m.matchInst(start)
	if !ok {
		inst := m.inst
		m.reset()
		if sizeErr {
			return fmt.Errorf("%s: memory argument without width: %w", inst.Name(), ErrOperandSize)
		}
		return ErrNoMatch
	}

	if err = m.extractArgs(); err != nil {
		m.reset()
		return err
	}

	m.addrSize = int(addrSize)
	return nil
}

// Find an encoding for inst with a register destination and register source.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (m *InstMatcher) RR(inst Inst, dst, src Reg) error {
	return m.regRegImm(inst, dst, src, nil)
}

// Find an encoding for inst with a register destination, register source, and immediate.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (m *InstMatcher) RRI(inst Inst, dst, src Reg, imm ImmArg) error {
	return m.regRegImm(inst, dst, src, imm)
}

// Find an encoding for inst with a register destination and memory source.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (m *InstMatcher) RM(inst Inst, dst Reg, src Mem) error {
	return m.regMemImm(inst, dst, src, nil, false)
}

// Find an encoding for inst with a memory destination and register source.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (m *InstMatcher) MR(inst Inst, dst Mem, src Reg) error {
	return m.regMemImm(inst, src, dst, nil, true)
}

// Find an encoding for inst with a register destination, memory source, and immediate.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (m *InstMatcher) RMI(inst Inst, dst Reg, src Mem, imm ImmArg) error {
	return m.regMemImm(inst, dst, src, imm, false)
}

// Find an encoding for inst with a memory destination, register source, and immediate.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (m *InstMatcher) MRI(inst Inst, dst Mem, src Reg, imm ImmArg) error {
	return m.regMemImm(inst, src, dst, imm, true)
}

// Find an encoding for inst with a register destination and immediate.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (m *InstMatcher) RI(inst Inst, dst Reg, imm ImmArg) error {
	if imm == nil {
		return m.Match(inst, dst)
	}
	return m.Match(inst, dst, imm)
}

// Find an encoding for inst with a memory destination and immediate.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (m *InstMatcher) MI(inst Inst, dst Mem, imm ImmArg) error {
	if imm == nil {
		return m.Match(inst, dst)
	}
	return m.Match(inst, dst, imm)
}

func (m *InstMatcher) regRegImm(inst Inst, dst, src Reg, imm ImmArg) error {
	if imm == nil {
		return m.Match(inst, dst, src)
	}
	return m.Match(inst, dst, src, imm)
}

func (m *InstMatcher) regMemImm(inst Inst, r Reg, mem Mem, imm ImmArg, swap bool) error {
	var args [3]Arg
	if swap {
		args[0], args[1] = mem, r
	} else {
		args[0], args[1] = r, mem
	}
	if imm == nil {
		return m.Match(inst, args[:2]...)
	}
	args[2] = imm
	return m.Match(inst, args[:]...)
}

// Encode the matched instruction. Label references are encoded as zero placeholders.
func (m *InstMatcher) Encode() (Code, error) {
	if m.encId < 0 {
		return Code{}, ErrNoMatch
	}
	c, _, err := m.encode(0)
	return c, err
}
