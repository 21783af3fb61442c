// package x64 provides an x86-64 instruction encoder in Go
//
// Single instructions can be encoded without any state:
//
// 	c, err := x64.Assemble(x64.ADD, x64.RAX, x64.Mem{Base: x64.RBX, Disp: x64.Rel8(8)})
// 	// c.Bytes() == []byte{0x48, 0x03, 0x43, 0x08}
//
// 	err = x64.Encode(sink, x64.ADC, x64.AL, x64.Imm8(1)) // writes 14 01 to sink
//
// An Assembler encodes sequences of instructions into a buffer and resolves label references.
//
// usage example:
//
// 	package example
//
// 	import (
// 		"github.com/wdamron/x64/v2/jit"
//
// 		// Importing everything from the package into the current scope
// 		// makes for less noise:
// 		. "github.com/wdamron/x64/v2"
// 	)
//
// 	func CompileSumFunc() (func(a, b int) int, *jit.Exec, error) {
// 		asm := NewAssembler(nil)
//
// 		// Note: Go's internal ABI passes integer arguments in RAX, RBX, RCX, ...
// 		// and returns results in RAX, RBX, ...
//
// 		done := asm.NewLabel()
// 		asm.Inst(TEST, RBX, RBX)                 // if b == 0
// 		asm.Inst(JCC, CondZ, done.Rel8())        //     goto done
// 		asm.Inst(ADD, RAX, RBX)                  // RAX += RBX
// 		asm.SetLabel(done)
// 		asm.Inst(RET)                            // return RAX
// 		if err := asm.Finalize(); err != nil {
// 			return nil, nil, err
// 		}
//
// 		exec, err := jit.Map(asm.Code())
// 		if err != nil {
// 			return nil, nil, err
// 		}
//
// 		var sum func(a, b int) int
//
// 		// Assign the address of the executable code to the code-pointer
// 		// within the function value:
// 		if err := jit.SetFunc(&sum, exec); err != nil {
// 			_ = exec.Release()
// 			return nil, nil, err
// 		}
//
// 		return sum, exec, nil
// 	}
package x64
