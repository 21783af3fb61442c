package disasm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/arch/x86/x86asm"

	x64 "github.com/wdamron/x64/v2"
)

func TestDisasm(t *testing.T) {
	// The frame (args + return) starts at [RSP+8]
	asm := x64.NewAssembler(nil)
	asm.Inst(x64.MOV, x64.RAX, x64.Mem{Base: x64.RSP, Disp: x64.Rel8(8)})
	asm.Inst(x64.MOV, x64.RBX, x64.Mem{Base: x64.RSP, Disp: x64.Rel8(16)})
	asm.Inst(x64.ADD, x64.RAX, x64.RBX)
	asm.Inst(x64.MOV, x64.Mem{Base: x64.RSP, Disp: x64.Rel8(24)}, x64.RAX)
	asm.Inst(x64.RET)
	require.NoError(t, asm.Err())

	intel, err := Intel(asm.Code())
	require.NoError(t, err)
	require.Equal(t, []string{
		"mov rax, qword ptr [rsp+0x8]",
		"mov rbx, qword ptr [rsp+0x10]",
		"add rax, rbx",
		"mov qword ptr [rsp+0x18], rax",
		"ret",
	}, intel)

	lines, err := Lines(asm.Code())
	require.NoError(t, err)
	require.Len(t, lines, 5)
	require.Equal(t, []byte{0x48, 0x01, 0xd8}, lines[2].Bytes)
	require.EqualValues(t, 10, lines[2].PC)
}

func TestDisasmLabels(t *testing.T) {
	asm := x64.NewAssembler(nil)
	loop := asm.NewLabel()
	asm.Inst(x64.DEC, x64.RCX)
	asm.Inst(x64.JCC, x64.CondNZ, loop.Rel8())
	asm.Inst(x64.RET)
	require.NoError(t, asm.Finalize())

	var got []string
	err := Code(asm.Code(), 0x1000, func(l Line) bool {
		got = append(got, l.String())
		return l.Inst.Op != x86asm.JNE
	})
	require.NoError(t, err)
	require.Equal(t, []string{"dec rcx", "jnz 0x1000"}, got)
}

func TestDisasmInvalid(t *testing.T) {
	_, err := Intel([]byte{0x90, 0x0f})
	require.Error(t, err)
}
