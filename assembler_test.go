package x64

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/arch/x86/x86asm"

	. "github.com/wdamron/x64/v2/feats"
)

// Hard-coded instruction sequences are manually verified through the following tools:
//   * ODA: https://onlinedisassembler.com/odaweb/
//   * Shell-Storm: http://shell-storm.org/online/Online-Assembler-and-Disassembler/

func TestInstName(t *testing.T) {
	if ADC.Name() != "ADC" {
		t.Fatalf("ADC.Name() = %s", ADC.Name())
	}
	if MOV.Name() != "MOV" {
		t.Fatalf("MOV.Name() = %s", MOV.Name())
	}
	if PREFETCHNTA.Name() != "PREFETCHNTA" {
		t.Fatalf("PREFETCHNTA.Name() = %s", PREFETCHNTA.Name())
	}
	if Inst(0).Valid() || Inst(0).Name() != "Inst(0)" {
		t.Fatalf("Inst(0).Name() = %s", Inst(0).Name())
	}
}

func TestEncode(t *testing.T) {
	asm := NewAssembler(make([]byte, 256))
	_expect := func(s string) {
		t.Helper()
		decoded, err := x86asm.Decode(asm.Code(), 64)
		if err != nil {
			t.Fatal(err)
		}
		if decoded.Len != len(asm.Code()) {
			t.Fatalf("decoded %d of %d bytes for %s: %#x", decoded.Len, len(asm.Code()), s, asm.Code())
		}
		intel := x86asm.IntelSyntax(decoded, 0, nil)
		if intel != s {
			t.Logf("encoded inst = %#x\n", asm.Code())
			t.Fatalf("decoded inst = %s != %s", intel, s)
		}
	}
	check := func(expect string, inst Inst, args ...Arg) {
		t.Helper()
		asm.Reset(nil)
		if err := asm.Inst(inst, args...); err != nil {
			t.Fatal(err)
		}
		_expect(expect)
	}
	checkregreg := func(expect string, inst Inst, dst, src Reg) {
		t.Helper()
		asm.Reset(nil)
		if err := asm.RR(inst, dst, src); err != nil {
			t.Fatal(err)
		}
		_expect(expect)
	}
	checkregmem := func(expect string, inst Inst, dst Reg, src Mem) {
		t.Helper()
		asm.Reset(nil)
		if err := asm.RM(inst, dst, src); err != nil {
			t.Fatal(err)
		}
		_expect(expect)
	}
	checkmemreg := func(expect string, inst Inst, dst Mem, src Reg) {
		t.Helper()
		asm.Reset(nil)
		if err := asm.MR(inst, dst, src); err != nil {
			t.Fatal(err)
		}
		_expect(expect)
	}
	checkregimm := func(expect string, inst Inst, dst Reg, imm ImmArg) {
		t.Helper()
		asm.Reset(nil)
		if err := asm.RI(inst, dst, imm); err != nil {
			t.Fatal(err)
		}
		_expect(expect)
	}
	checkmemimm := func(expect string, inst Inst, dst Mem, imm ImmArg) {
		t.Helper()
		asm.Reset(nil)
		if err := asm.MI(inst, dst, imm); err != nil {
			t.Fatal(err)
		}
		_expect(expect)
	}

	check("mov al, 0x1", MOV, AL, Imm8(1))
	checkregimm("mov al, 0x1", MOV, AL, Imm8(1))
	check("mov ah, 0x1", MOV, AH, Imm8(1))
	checkregimm("mov ah, 0x1", MOV, AH, Imm8(1))
	check("mov ax, 0x1", MOV, AX, Imm16(1))
	checkregimm("mov ax, 0x1", MOV, AX, Imm16(1))
	check("mov eax, 0x1", MOV, EAX, Imm32(1))
	check("mov rax, 0x7fffffffffffffff", MOV, RAX, Imm64(0x7fffffffffffffff))
	checkregimm("mov rax, 0x7fffffffffffffff", MOV, RAX, Imm64(0x7fffffffffffffff))
	check("mov rax, r13", MOV, RAX, R13)
	checkregreg("mov rax, r13", MOV, RAX, R13)
	check("add rax, rbx", ADD, RAX, RBX)
	checkregreg("add rax, rbx", ADD, RAX, RBX)
	check("add rax, 0x1", ADD, RAX, Imm8(1))
	checkregimm("add rax, 0x1", ADD, RAX, Imm8(1))
	check("add qword ptr [rax], 0x1", ADD, Mem{Base: RAX, Width: 8}, Imm8(1))
	checkmemimm("add qword ptr [rax], 0x1", ADD, Mem{Base: RAX, Width: 8}, Imm8(1))
	check("xor rax, rbx", XOR, RAX, RBX)
	checkregreg("xor rax, rbx", XOR, RAX, RBX)
	check("mov rax, qword ptr [rbx]", MOV, RAX, Mem{Base: RBX})
	checkregmem("mov rax, qword ptr [rbx]", MOV, RAX, Mem{Base: RBX})
	check("mov qword ptr [rax], rbx", MOV, Mem{Base: RAX}, RBX)
	checkmemreg("mov qword ptr [rax], rbx", MOV, Mem{Base: RAX}, RBX)
	check("mov qword ptr [r13], rbx", MOV, Mem{Base: R13}, RBX)
	checkmemreg("mov qword ptr [r13], rbx", MOV, Mem{Base: R13}, RBX)
	check("mov rax, qword ptr [rbx+r15*1]", MOV, RAX, Mem{Base: RBX, Index: R15})
	checkregmem("mov rax, qword ptr [rbx+r15*1]", MOV, RAX, Mem{Base: RBX, Index: R15})
	check("mov rax, qword ptr [rbx+r15*2]", MOV, RAX, Mem{Base: RBX, Index: R15, Scale: 2})
	checkregmem("mov rax, qword ptr [rbx+r15*2]", MOV, RAX, Mem{Base: RBX, Index: R15, Scale: 2})
	check("mov rax, qword ptr [rbx+r15*2+0x8]", MOV, RAX, Mem{Base: RBX, Index: R15, Scale: 2, Disp: Rel8(8)})
	checkregmem("mov rax, qword ptr [rbx+r15*2+0x8]", MOV, RAX, Mem{Base: RBX, Index: R15, Scale: 2, Disp: Rel8(8)})
	check("mov rax, qword ptr [rbx+r15*2+0x8]", MOV, RAX, Mem{Base: RBX, Index: R15, Scale: 2, Disp: Rel32(8)})
	checkregmem("mov rax, qword ptr [rbx+r15*2+0x8]", MOV, RAX, Mem{Base: RBX, Index: R15, Scale: 2, Disp: Rel32(8)})
	check("lea rax, ptr [rbx+r15*2+0x8]", LEA, RAX, Mem{Base: RBX, Index: R15, Scale: 2, Disp: Rel8(8)})
	checkregmem("lea rax, ptr [rbx+r15*2+0x8]", LEA, RAX, Mem{Base: RBX, Index: R15, Scale: 2, Disp: Rel8(8)})
	check("lea rax, ptr [rbx+r15*2+0x8]", LEA, RAX, Mem{Base: RBX, Index: R15, Scale: 2, Disp: Rel32(8)})
	checkregmem("lea rax, ptr [rbx+r15*2+0x8]", LEA, RAX, Mem{Base: RBX, Index: R15, Scale: 2, Disp: Rel32(8)})
	check("jz .+0x4", JCC, CondZ, Rel8(4))
	check("jz .-0x4", JCC, CondZ, Rel8(-4))
	check("jz .+0x8000", JCC, CondZ, Rel32(32768))
	check("jz .-0x8000", JCC, CondZ, Rel32(-32768))
	check("jmp qword ptr [rax]", JMP, Mem{Base: RAX})
	check("lea rax, ptr [rip+0x10]", LEA, RAX, Mem{Base: RIP, Disp: Rel8(16)})
	checkregmem("lea rax, ptr [rip+0x10]", LEA, RAX, Mem{Base: RIP, Disp: Rel8(16)})
	check("push rbx", PUSH, RBX)
	check("push r12", PUSH, R12)
	check("pop r15", POP, R15)
	check("shl rax, 0x4", SHL, RAX, Imm8(4))
	check("ret", RET)
	check("syscall", SYSCALL)

	// With CPU features disabled:

	asm.Reset(nil)
	if err := asm.Inst(CMOVCC, CondL, RAX, RBX); err != nil {
		t.Fatal(err)
	}
	asm.DisableFeature(CMOV)
	if err := asm.Inst(CMOVCC, CondL, RAX, RBX); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Expected no matching instruction for CMOVCC with CMOV disabled")
	}
	if asm.Features()&CMOV != 0 {
		t.Fatalf("CMOV still enabled")
	}
	asm.EnableFeature(CMOV)
	asm.Reset(nil)
	if err := asm.Inst(CMOVCC, CondL, RAX, RBX); err != nil {
		t.Fatal(err)
	}
}

func TestStickyError(t *testing.T) {
	asm := NewAssembler(nil)
	if err := asm.Inst(MOV, RAX, EBX); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("MOV RAX, EBX: %v", err)
	}
	if err := asm.Inst(RET); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("error is not sticky: %v", err)
	}
	if len(asm.Code()) != 0 {
		t.Fatalf("code written after error: %#x", asm.Code())
	}
	asm.Reset(nil)
	if err := asm.Inst(RET); err != nil {
		t.Fatal(err)
	}
	if c := asm.LastInst(); c.Len() != 1 || c.Opcode[0] != 0xc3 {
		t.Fatalf("LastInst() = %v", c)
	}
}

func TestPrefixes(t *testing.T) {
	asm := NewAssembler(nil)
	expect := func(hex string, err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		if got := fmt.Sprintf("%x", asm.Code()); got != hex {
			t.Fatalf("encoded = %s != %s", got, hex)
		}
		asm.Reset(nil)
	}
	expectErr := func(err error) {
		t.Helper()
		if !errors.Is(err, ErrPrefix) {
			t.Fatalf("expected ErrPrefix, got %v", err)
		}
		asm.Reset(nil)
	}

	expect("f0480118", asm.Lock(ADD, Mem{Base: RAX}, RBX))
	expect("f00fb10a", asm.Lock(CMPXCHG, Mem{Base: RDX}, ECX))
	expectErr(asm.Lock(ADD, RAX, RBX))
	expectErr(asm.Lock(MOV, Mem{Base: RAX}, RBX))
	expectErr(asm.Lock(CMP, Mem{Base: RAX}, RBX))
	expect("f3a4", asm.Rep(MOVSB))
	expect("f348ab", asm.Rep(STOSQ))
	expect("f3a6", asm.Repe(CMPSB))
	expect("f2ae", asm.Repne(SCASB))
	expect("f2ae", asm.Repnz(SCASB))
	expectErr(asm.Repne(MOVSB))
	expectErr(asm.Rep(ADD, RAX, RBX))
	expectErr(asm.Rep(CRC32, EAX, CL))
}

func TestAlignPC(t *testing.T) {
	asm := NewAssembler(make([]byte, 256))
	asm.Inst(MOV, RAX, RBX)
	asm.AlignPC(16)
	if len(asm.Code()) != 16 {
		t.Fatalf("len(code) = %d", len(asm.Code()))
	}
	// decode mov
	decoded, err := x86asm.Decode(asm.Code(), 64)
	if err != nil {
		t.Fatal(err)
	}
	intel := x86asm.IntelSyntax(decoded, 0, nil)
	if intel != "mov rax, rbx" {
		t.Logf("encoded inst = %#x\n", asm.Code())
		t.Fatalf("decoded inst = %s != mov rax, rbx", intel)
	}
	// decode nops
	for pc := decoded.Len; pc < len(asm.Code()); pc += decoded.Len {
		decoded, err = x86asm.Decode(asm.Code()[pc:], 64)
		if err != nil {
			t.Fatal(err)
		}
		intel = x86asm.IntelSyntax(decoded, 0, nil)
		if !strings.HasPrefix(intel, "nop") {
			t.Logf("encoded inst = %#x\n", asm.Code())
			t.Fatalf("decoded inst = %s != nop ...", intel)
		}
	}

	// already aligned
	asm.AlignPC(16)
	asm.AlignPC(8)
	if len(asm.Code()) != 16 {
		t.Fatalf("len(code) = %d after aligning an aligned PC", len(asm.Code()))
	}
	if asm.Err() != nil {
		t.Fatal(asm.Err())
	}
	asm.AlignPC(3)
	if asm.Err() == nil {
		t.Fatal("expected an error for a non-power-of-2 alignment")
	}
}

func TestNops(t *testing.T) {
	for n := 0; n <= 32; n++ {
		code := Nops(n)
		if len(code) != n {
			t.Fatalf("len(Nops(%d)) = %d", n, len(code))
		}
		for pc := 0; pc < len(code); {
			decoded, err := x86asm.Decode(code[pc:], 64)
			if err != nil {
				t.Fatalf("Nops(%d): %v", n, err)
			}
			if decoded.Op != x86asm.NOP {
				t.Fatalf("Nops(%d): decoded %v at %d", n, decoded, pc)
			}
			pc += decoded.Len
		}
	}
	if got := fmt.Sprintf("%x", Nops(11)); got != "660f1f8400000000006690" {
		t.Fatalf("Nops(11) = %s", got)
	}
}

func TestRelocs(t *testing.T) {
	asm := NewAssembler(make([]byte, 256))

	// 8-bit displacements
	label := asm.NewLabel()
	asm.Inst(MOV, RAX, RBX)
	asm.Inst(ADD, RAX, Imm8(5))
	label2 := asm.NewLabel()
	asm.Inst(ADD, RBX, Imm8(1))
	asm.Inst(JMP, label.Rel8())
	label3 := asm.NewLabel()
	asm.Inst(ADD, RBX, Imm8(1))
	asm.Inst(JMP, label2.Rel8())
	asm.Inst(JMP, label3.Rel8())
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%#x", asm.Code())
	if fmt.Sprintf("%#x", asm.Code()) != "0x4889d84883c0054883c301ebf34883c301ebf4ebf8" {
		t.Fatalf("encoded = %#x != %s", asm.Code(), "0x4889d84883c0054883c301ebf34883c301ebf4ebf8")
	}
	// 32-bit displacement
	asm.Reset(nil)
	label = asm.NewLabel()
	asm.Inst(MOV, RAX, RBX)
	asm.Inst(ADD, RAX, Imm8(5))
	_ = asm.NewLabel()
	asm.Inst(ADD, RBX, Imm8(1))
	asm.Inst(JMP, label.Rel32())
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%#x", asm.Code())
	if fmt.Sprintf("%#x", asm.Code()) != "0x4889d84883c0054883c301e9f0ffffff" {
		t.Fatalf("encoded = %#x != %s", asm.Code(), "0x4889d84883c0054883c301e9f0ffffff")
	}
	// auto 32-bit displacement
	asm.Reset(nil)
	label = asm.NewLabel()
	asm.Inst(MOV, RAX, RBX)
	asm.Inst(ADD, RAX, Imm8(5))
	_ = asm.NewLabel()
	asm.Inst(ADD, RBX, Imm8(1))
	asm.Inst(JMP, label)
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%#x", asm.Code())
	if fmt.Sprintf("%#x", asm.Code()) != "0x4889d84883c0054883c301e9f0ffffff" {
		t.Fatalf("encoded = %#x != %s", asm.Code(), "0x4889d84883c0054883c301e9f0ffffff")
	}

	// label reference with additional 8-bit displacement
	asm.Reset(nil)
	label = asm.NewLabel()
	asm.Inst(MOV, RAX, RBX)
	asm.Inst(ADD, RAX, Imm8(5))
	delta := asm.PC()
	asm.Inst(ADD, RBX, Imm8(1))
	asm.Inst(JMP, label.Disp8(int8(delta))) // jump to middle of block
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%#x", asm.Code())
	if fmt.Sprintf("%#x", asm.Code()) != "0x4889d84883c0054883c301ebfa" {
		t.Fatalf("encoded = %#x != %s", asm.Code(), "0x4889d84883c0054883c301ebfa")
	}
	// label reference with additional 32-bit displacement
	asm.Reset(nil)
	label = asm.NewLabel()
	asm.Inst(MOV, RAX, RBX)
	asm.Inst(ADD, RAX, Imm8(5))
	delta = asm.PC()
	asm.Inst(ADD, RBX, Imm8(1))
	asm.Inst(JMP, label.Disp32(int32(delta))) // jump to middle of block
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%#x", asm.Code())
	if fmt.Sprintf("%#x", asm.Code()) != "0x4889d84883c0054883c301e9f7ffffff" {
		t.Fatalf("encoded = %#x != %s", asm.Code(), "0x4889d84883c0054883c301e9f7ffffff")
	}
	// label reference with RIP-relative addressing
	asm.Reset(nil)
	label = asm.NewLabel()
	asm.Inst(MOV, RAX, RBX)
	delta = asm.PC()
	asm.Inst(MOV, RBX, RAX)
	if err := asm.Inst(LEA, RAX, Mem{Base: RIP, Disp: label.Disp32(int32(delta))}); err != nil { // jump to middle of block
		t.Fatal(err)
	}
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%#x", asm.Code())
	if fmt.Sprintf("%#x", asm.Code()) != "0x4889d84889c3488d05f6ffffff" {
		t.Fatalf("encoded = %#x != %s", asm.Code(), "0x4889d84889c3488d05f6ffffff")
	}
	// RIP-relative label reference followed by an immediate: the displacement is relative to the
	// end of the instruction, after the immediate
	asm.Reset(nil)
	label = asm.NewLabel()
	asm.Inst(RET)
	if err := asm.Inst(CMP, Mem{Base: RIP, Disp: label, Width: 4}, Imm8(7)); err != nil {
		t.Fatal(err)
	}
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%#x", asm.Code())
	if fmt.Sprintf("%#x", asm.Code()) != "0xc3833df8ffffff07" {
		t.Fatalf("encoded = %#x != %s", asm.Code(), "0xc3833df8ffffff07")
	}
	// forward reference
	asm.Reset(nil)
	label = asm.NewLabel()
	asm.Inst(JCC, CondNE, label.Rel8())
	asm.Inst(NOP)
	asm.SetLabel(label)
	asm.Inst(RET)
	if err := asm.Finalize(); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprintf("%#x", asm.Code()) != "0x750190c3" {
		t.Fatalf("encoded = %#x != %s", asm.Code(), "0x750190c3")
	}
	// out of range
	asm.Reset(nil)
	label = asm.NewLabel()
	asm.Inst(JMP, label.Rel8())
	asm.Nop(200)
	asm.SetLabel(label)
	if err := asm.Finalize(); err == nil {
		t.Fatal("expected an out of range error for an 8-bit label displacement")
	}
}

func TestInstFrom(t *testing.T) {
	m := NewInstMatcher()
	if err := m.RR(ADD, RAX, RBX); err != nil {
		t.Fatal(err)
	}
	asm := NewAssembler(nil)
	if err := asm.InstFrom(m); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprintf("%x", asm.Code()) != "4801d8" {
		t.Fatalf("encoded = %x", asm.Code())
	}

	if err := m.Match(POPCNT, RAX, RCX); err != nil {
		t.Fatal(err)
	}
	asm.DisableFeature(ABM)
	if err := asm.InstFrom(m); err == nil {
		t.Fatal("expected an error for a matched instruction with disabled features")
	}
}
