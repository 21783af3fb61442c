package x64

import (
	"fmt"
	"strings"

	"github.com/wdamron/x64/v2/feats"
	x64flags "github.com/wdamron/x64/v2/internal/flags"
)

func hasFlag(flags, flag uint32) bool { return flags&flag != 0 }

// Inst represents an instruction-mnemonic. Each mnemonic owns an ordered table of encodings; the
// first encoding which accepts a set of arguments is selected by Match.
type Inst uint16

// Get the unique numeric identifier for the instruction mnemonic. This is an arbitrary value.
func (inst Inst) Id() uint16 { return uint16(inst) }

// Check if the instruction mnemonic is defined by the package.
func (inst Inst) Valid() bool { return inst > 0 && inst < instCount }

// Get the name of the instruction mnemonic.
func (inst Inst) Name() string {
	if !inst.Valid() {
		return fmt.Sprintf("Inst(%d)", uint16(inst))
	}
	return instNames[inst]
}

func (inst Inst) String() string { return inst.Name() }

func (inst Inst) encs() []enc {
	if !inst.Valid() {
		return nil
	}
	return encTable[inst]
}

// Get descriptions of every encoding of the instruction, in matching order.
func (inst Inst) Forms() []Form {
	encs := inst.encs()
	forms := make([]Form, len(encs))
	for i, e := range encs {
		forms[i] = e.form(inst, i)
	}
	return forms
}

// Get every instruction mnemonic defined by the package, ordered by Id.
func AllInsts() []Inst {
	insts := make([]Inst, 0, instCount-1)
	for inst := Inst(1); inst < instCount; inst++ {
		insts = append(insts, inst)
	}
	return insts
}

// op holds 1 to 3 opcode bytes.
type op []byte

// enc represents an instruction-encoding spec.
//
// 	argp:  arg-pattern; 2 bytes (type, size) per argument
// 	op:    opcode bytes
// 	reg:   ModR/M.reg discriminant, or -1 if the reg field holds a register argument
// 	flags: encoding flags (see package x64/internal/flags)
// 	feats: required CPU features
type enc struct {
	argp  string
	op    op
	reg   int8
	flags uint32
	feats feats.Feature
}

func (e enc) argc() int { return len(e.argp) / 2 }

// Form describes one encoding of an instruction mnemonic.
type Form struct {
	Inst     Inst
	Index    int           // position within the mnemonic's encoding table
	Pattern  string        // arg-pattern (see match.go)
	Opcode   []byte        // opcode bytes
	Reg      int8          // ModR/M.reg discriminant, or -1
	Flags    uint32        // encoding flags
	Features feats.Feature // required CPU features
}

func (e enc) form(inst Inst, i int) Form {
	return Form{
		Inst:     inst,
		Index:    i,
		Pattern:  e.argp,
		Opcode:   append([]byte(nil), e.op...),
		Reg:      e.reg,
		Flags:    e.flags,
		Features: e.feats,
	}
}

// Get the names of the encoding flags set for the form.
func (f Form) FlagNames() []string { return x64flags.FlagNames(f.Flags) }

// Get a readable list of the operands accepted by the form, e.g. "r/m16/32/64, imm8".
func (f Form) Operands() string {
	var ops []string
	for i := 0; i+1 < len(f.Pattern); i += 2 {
		ops = append(ops, describeOperand(f.Pattern[i], f.Pattern[i+1]))
	}
	return strings.Join(ops, ", ")
}

// Get the opcode in manual notation, e.g. "0F AF /r" or "83 /2 ib".
func (f Form) OpcodeString() string {
	var s strings.Builder
	for i, b := range f.Opcode {
		if i > 0 {
			s.WriteByte(' ')
		}
		fmt.Fprintf(&s, "%02X", b)
		if i == len(f.Opcode)-1 {
			switch {
			case hasFlag(f.Flags, x64flags.SHORT_ARG):
				s.WriteString("+r")
			case hasFlag(f.Flags, x64flags.COND_OP):
				s.WriteString("+cc")
			}
		}
	}
	switch {
	case f.Reg >= 0:
		fmt.Fprintf(&s, " /%d", f.Reg)
	case strings.ContainsAny(f.Pattern, "mv") || hasModRMRegs(f.Pattern):
		s.WriteString(" /r")
	}
	return s.String()
}

func hasModRMRegs(p string) bool {
	n := 0
	for i := 0; i+1 < len(p); i += 2 {
		switch p[i] {
		case 'r', 'f', 's', 'c', 'd':
			n++
		}
	}
	return n >= 2
}

func (f Form) String() string {
	return fmt.Sprintf("%s %s [%s]", f.Inst.Name(), f.Operands(), f.OpcodeString())
}

func describeOperand(t, sz byte) string {
	size := ""
	switch sz {
	case 'b':
		size = "8"
	case 'w':
		size = "16"
	case 'd':
		size = "32"
	case 'q':
		size = "64"
	case 'p':
		size = "80"
	case '*':
		size = "16/32/64"
	}
	switch {
	case t == 'i':
		if sz == '*' {
			return "imm16/32"
		}
		return "imm" + size
	case t == 'o':
		return "rel" + size
	case t == 'm':
		return "m" + size
	case t == 'r':
		return "r" + size
	case t == 'v':
		return "r/m" + size
	case t == 'f':
		return "st(i)"
	case t == 'X':
		return "st0"
	case t == 's':
		return "sreg"
	case t == 'c':
		return "cr"
	case t == 'd':
		return "dr"
	case t == 'n':
		return "cc"
	case t >= 'A' && t <= 'P':
		n := t - 'A'
		switch sz {
		case 'b':
			return regNames8[n]
		case 'w':
			return regNames16[n]
		case 'd':
			return regNames32[n]
		case 'q':
			return regNames64[n]
		}
		return regNames16[n] + "/" + regNames32[n] + "/" + regNames64[n]
	case t >= 'Q' && t <= 'V':
		return regNamesSeg[t-'Q']
	}
	return string([]byte{t, sz})
}
