package x64

import "slices"

// Cond is a condition-code argument for JCC, SETCC, and CMOVCC. The value is the 4-bit condition
// nibble which is folded into the low bits of the instruction's opcode.
//
// Cond implements Arg.
type Cond uint8

func (c Cond) isArg()       {}
func (c Cond) width() uint8 { return 0 }

// Condition codes
const (
	CondO  Cond = 0x0 // overflow
	CondNO Cond = 0x1 // not overflow
	CondB  Cond = 0x2 // below (unsigned <)
	CondAE Cond = 0x3 // above or equal (unsigned >=)
	CondE  Cond = 0x4 // equal
	CondNE Cond = 0x5 // not equal
	CondBE Cond = 0x6 // below or equal (unsigned <=)
	CondA  Cond = 0x7 // above (unsigned >)
	CondS  Cond = 0x8 // sign
	CondNS Cond = 0x9 // not sign
	CondP  Cond = 0xA // parity even
	CondNP Cond = 0xB // parity odd
	CondL  Cond = 0xC // less (signed <)
	CondGE Cond = 0xD // greater or equal (signed >=)
	CondLE Cond = 0xE // less or equal (signed <=)
	CondG  Cond = 0xF // greater (signed >)

	// Aliases
	CondC   = CondB
	CondNAE = CondB
	CondNB  = CondAE
	CondNC  = CondAE
	CondZ   = CondE
	CondNZ  = CondNE
	CondNA  = CondBE
	CondNBE = CondA
	CondPE  = CondP
	CondPO  = CondNP
	CondNGE = CondL
	CondNL  = CondGE
	CondNG  = CondLE
	CondNLE = CondG

	CCUnsignedLT  = CondB
	CCUnsignedGTE = CondAE
	CCEq          = CondE
	CCNeq         = CondNE
	CCUnsignedLTE = CondBE
	CCUnsignedGT  = CondA
	CCSignedLT    = CondL
	CCSignedGTE   = CondGE
	CCSignedLTE   = CondLE
	CCSignedGT    = CondG
)

var condNames = [16]string{"o", "no", "b", "ae", "e", "ne", "be", "a", "s", "ns", "p", "np", "l", "ge", "le", "g"}

// Get the canonical suffix for the condition, e.g. "ae" for CondAE/CondNB/CondNC.
func (c Cond) String() string {
	if c > 0xf {
		return "<invalid>"
	}
	return condNames[c]
}

// Invert the condition. Conditions come in pairs which differ only in the lowest bit.
func (c Cond) Invert() Cond { return c ^ 1 }

// Invert a condition code.
func Invcc(cc Cond) Cond { return cc.Invert() }

// Get every distinct condition code, ordered by value.
func AllConds() []Cond {
	conds := make([]Cond, 16)
	for i := range conds {
		conds[i] = Cond(i)
	}
	return conds
}

var condByName = map[string]Cond{
	"o": CondO, "no": CondNO,
	"b": CondB, "c": CondC, "nae": CondNAE,
	"ae": CondAE, "nb": CondNB, "nc": CondNC,
	"e": CondE, "z": CondZ,
	"ne": CondNE, "nz": CondNZ,
	"be": CondBE, "na": CondNA,
	"a": CondA, "nbe": CondNBE,
	"s": CondS, "ns": CondNS,
	"p": CondP, "pe": CondPE,
	"np": CondNP, "po": CondPO,
	"l": CondL, "nge": CondNGE,
	"ge": CondGE, "nl": CondNL,
	"le": CondLE, "ng": CondNG,
	"g": CondG, "nle": CondNLE,
}

// Lookup a condition code by its (lowercase) suffix, including aliases such as "z" or "nae".
func CondByName(name string) (Cond, bool) {
	c, ok := condByName[name]
	return c, ok
}

// Get every suffix which names the condition, canonical name first.
func (c Cond) Aliases() []string {
	names := []string{c.String()}
	for name, cc := range condByName {
		if cc == c && name != names[0] {
			names = append(names, name)
		}
	}
	slices.Sort(names[1:])
	return names
}
