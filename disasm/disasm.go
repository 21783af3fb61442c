// Package disasm decodes x86-64 machine code, e.g. the output of an x64.Assembler, with the
// golang.org/x/arch/x86/x86asm decoder.
//
// Some instructions supported by the instruction-encoder in the x64 package are not supported
// by the instruction-decoder in the x86asm package.
package disasm

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"
)

// Line is a single decoded instruction.
type Line struct {
	PC    uint64 // address of the first byte
	Bytes []byte // encoded bytes, aliasing the decoded code
	Inst  x86asm.Inst
}

// Get the instruction in Intel syntax. Relative branch targets are printed as absolute
// addresses unless PC is 0.
func (l Line) String() string { return x86asm.IntelSyntax(l.Inst, l.PC, nil) }

// Decode instructions from code until while returns false or every byte has been decoded.
// pc is the address of code[0].
func Code(code []byte, pc uint64, while func(Line) bool) error {
	for n := 0; n < len(code); {
		inst, err := x86asm.Decode(code[n:], 64)
		if err != nil {
			return fmt.Errorf("disasm: offset %d: %w", n, err)
		}
		if !while(Line{PC: pc + uint64(n), Bytes: code[n : n+inst.Len], Inst: inst}) {
			return nil
		}
		n += inst.Len
	}
	return nil
}

// Decode every instruction in code, starting at address 0.
func Lines(code []byte) ([]Line, error) {
	var lines []Line
	err := Code(code, 0, func(l Line) bool {
		lines = append(lines, l)
		return true
	})
	return lines, err
}

// Decode every instruction in code and format each in Intel syntax.
func Intel(code []byte) ([]string, error) {
	lines, err := Lines(code)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out, nil
}
