package x64

import (
	"fmt"

	"github.com/wdamron/x64/v2/feats"
)

// Assemble finds the first form of inst which accepts args and returns its structured encoding.
// Label references require an Assembler and are rejected.
//
// Assemble is safe for concurrent use.
func Assemble(inst Inst, args ...Arg) (Code, error) {
	m := InstMatcher{feats: feats.AllFeatures, addrSize: -1, opSize: -1, memOffset: -1, encId: -1}
	return assemble(&m, 0, inst, args...)
}

// Encode finds the first form of inst which accepts args and writes the encoded instruction to s.
// Errors returned by s are returned unchanged, possibly after a partial write.
//
// Encode is safe for concurrent use if s is.
func Encode(s Sink, inst Inst, args ...Arg) error {
	c, err := Assemble(inst, args...)
	if err != nil {
		return err
	}
	return c.EncodeTo(s)
}

func assemble(m *InstMatcher, prefix Prefix, inst Inst, args ...Arg) (Code, error) {
	if err := m.Match(inst, args...); err != nil {
		return Code{}, err
	}
	c, fix, err := m.encode(prefix)
	if err != nil {
		return Code{}, err
	}
	if fix.ok {
		return Code{}, fmt.Errorf("%s: label references require an Assembler", inst.Name())
	}
	return c, nil
}
