package x64lookup

import (
	"github.com/wdamron/x64/v2"
)

const maxMnemonicLength = 16

var instMap = buildInstMap()

func buildInstMap() map[string]x64.Inst {
	insts := x64.AllInsts()
	m := make(map[string]x64.Inst, len(insts))
	for _, inst := range insts {
		m[inst.Name()] = inst
	}
	return m
}

// Lookup the instruction for a mnemonic. The mnemonic will be converted to uppercase if necessary.
func Inst(mnemonic string) (x64.Inst, bool) {
	if len(mnemonic) > 0 && len(mnemonic) < maxMnemonicLength {
		inst, ok := instMap[upperCase(mnemonic)]
		return inst, ok
	}
	return x64.Inst(0), false
}

// Lookup the forms accepted by the instruction for a mnemonic.
func Forms(mnemonic string) ([]x64.Form, bool) {
	inst, ok := Inst(mnemonic)
	if !ok {
		return nil, false
	}
	return inst.Forms(), true
}

func upperCase(s string) string {
	var b [maxMnemonicLength]byte
	var ch byte
	_ = b[len(s)] // lift bounds-checks out of the loop below (golang.org/issue/14808)
	i, changed := 0, false
loop: // functions containing for-loops cannot currently be inlined (golang.org/issue/14768)
	ch = s[i]
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	b[i] = ch
	changed = changed || b[i] != s[i]
	i++
	if i < len(s) {
		goto loop
	}
	if !changed {
		return s
	}
	return string(b[:len(s)])
}
