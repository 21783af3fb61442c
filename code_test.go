package x64

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCodeBuilder(t *testing.T) {
	var c Code
	c = c.WithPrefix(PrefixOperandSize)
	c = c.WithPrefix(PrefixLock)
	c = c.WithRexW().WithRexB()
	c = c.WithOpcode(0x83)
	c = c.WithModRM(ModRMmodSmallDisplacedRegister, 0, ModRMrmSIB)
	c = c.WithSIB(3, 1, 5)
	c = c.WithDisp8(-8)
	c = c.WithImm8(1)

	want := []byte{0xf0, 0x66, 0x49, 0x83, 0x44, 0xcd, 0xf8, 0x01}
	if diff := cmp.Diff(want, c.Bytes()); diff != "" {
		t.Fatalf("Bytes() mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, len(want), c.Len())
	require.Equal(t, want, slices.Collect(c.All()))
	require.Equal(t, append([]byte{0xcc}, want...), c.AppendTo([]byte{0xcc}))

	var g GrowBuffer
	require.NoError(t, c.EncodeTo(&g))
	require.Equal(t, want, g.Bytes())

	// With* returns a copy
	d := c.WithPrefix(PrefixRepeat).WithImm16(0x0203)
	require.Equal(t, want, c.Bytes())
	require.Equal(t, []byte{0xf3, 0x66, 0x49, 0x83, 0x44, 0xcd, 0xf8, 0x01, 0x03, 0x02}, d.Bytes())
}

func TestCodeFields(t *testing.T) {
	c, err := Assemble(MOV, RAX, Mem{Base: RBX, Index: R15, Scale: 2, Disp: Rel8(8)})
	require.NoError(t, err)

	want := Code{
		REX:             0x4a,
		Opcode:          [3]byte{0x8b},
		OpcodeLen:       1,
		ModRM:           0x44,
		UseModRM:        true,
		SIB:             0x7b,
		UseSIB:          true,
		Displacement:    [4]byte{0x08},
		DisplacementLen: 1,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("Code mismatch (-want +got):\n%s", diff)
	}
	require.True(t, c.REX.W())
	require.False(t, c.REX.R())
	require.True(t, c.REX.X())
	require.False(t, c.REX.B())
	require.Equal(t, byte(1), c.ModRM.Mod())
	require.Equal(t, byte(0), c.ModRM.Reg())
	require.Equal(t, byte(4), c.ModRM.RM())
	require.Equal(t, byte(1), c.SIB.Scale())
	require.Equal(t, byte(7), c.SIB.Index())
	require.Equal(t, byte(3), c.SIB.Base())
}

func TestCodeString(t *testing.T) {
	c, err := Assemble(ADD, Mem{Seg: GS, Base: R12, Disp: Rel32(0x100), Width: 4}, Imm32(7))
	require.NoError(t, err)
	require.Equal(t,
		"{Prefix: gs, REX: 0100wrxB, Opcode: [81], ModR/M: 10 000 100, SIB: 00 100 100, Displacement: [00 01 00 00], Immediate: [07 00 00 00]}",
		c.String())
	require.Equal(t, "{}", Code{}.String())
}

func TestCodeBytesFields(t *testing.T) {
	var r REX
	r.SetOn()
	r.SetW(true)
	r.SetX(true)
	require.Equal(t, REX(0x4a), r)
	require.Equal(t, "0100WrXb", r.String())
	r.SetW(false)
	r.SetR(true)
	r.SetB(true)
	require.Equal(t, "0100wRXB", r.String())
	require.True(t, r.On())

	var m ModRM
	m.SetMod(ModRMmodRegister)
	m.SetReg(2)
	m.SetRM(7)
	require.Equal(t, ModRM(0xd7), m)
	require.Equal(t, "11 010 111", m.String())
	require.Panics(t, func() { m.SetReg(8) })
	require.Panics(t, func() { m.SetMod(4) })

	var s SIB
	s.SetScale(2)
	s.SetIndex(SIBindexNone)
	s.SetBase(SIBbaseNone)
	require.Equal(t, SIB(0xa5), s)
	require.Equal(t, "10 100 101", s.String())
	require.Panics(t, func() { s.SetBase(9) })

	require.Panics(t, func() { Code{}.WithPrefix(Prefix(0x90)) })
	require.Panics(t, func() { Code{}.WithREX(0x80) })
	require.Panics(t, func() { Code{}.WithOpcode() })
	require.Panics(t, func() { Code{}.WithImm64(1).WithImm8(1) })
}

func TestPrefixGroups(t *testing.T) {
	for p, g := range map[Prefix]int{
		PrefixLock:        1,
		PrefixRepeat:      1,
		PrefixRepeatNot:   1,
		PrefixES:          2,
		PrefixFS:          2,
		PrefixOperandSize: 3,
		PrefixAddressSize: 4,
		Prefix(0x90):      0,
	} {
		require.Equal(t, g, p.Group(), "%v", p)
	}
	require.Equal(t, "lock", PrefixLock.String())
	require.Equal(t, "Prefix(0x90)", Prefix(0x90).String())
}

type shortWriter struct{ n int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, errors.New("closed")
	}
	if len(p) > w.n {
		p = p[:w.n]
	}
	w.n -= len(p)
	return len(p), nil
}

func TestSinks(t *testing.T) {
	c, err := Assemble(MOV, RAX, Imm64(0x1122334455667788))
	require.NoError(t, err)
	want := c.Bytes()

	fb := NewFixedBuffer(make([]byte, 16))
	require.NoError(t, c.EncodeTo(fb))
	require.Equal(t, want, fb.Bytes())
	require.Equal(t, 10, fb.Len())
	require.Equal(t, 6, fb.Available())
	require.ErrorIs(t, c.EncodeTo(fb), ErrBufferFull)
	fb.Reset()
	require.Zero(t, fb.Len())

	// the writer accepts one byte of the immediate
	ws := NewWriterSink(&shortWriter{n: 3})
	require.ErrorIs(t, c.EncodeTo(ws), io.ErrShortWrite)
	require.EqualValues(t, 3, ws.Written())

	ws = NewWriterSink(&shortWriter{n: 0})
	require.EqualError(t, c.EncodeTo(ws), "closed")

	var out bytes.Buffer
	ws = NewWriterSink(&out)
	require.NoError(t, c.EncodeTo(ws))
	require.Equal(t, want, out.Bytes())
	require.EqualValues(t, len(want), ws.Written())
}
