package x64

import (
	"encoding/binary"
)

var _ Sink = (*buffer)(nil)

// Recommended multi-byte NOP sequences, indexed by length - 1.
var nops = [9][]byte{
	{0x90},
	{0x66, 0x90},
	{0x0f, 0x1f, 0x00},
	{0x0f, 0x1f, 0x40, 0x00},
	{0x0f, 0x1f, 0x44, 0x00, 0x00},
	{0x66, 0x0f, 0x1f, 0x44, 0x00, 0x00},
	{0x0f, 0x1f, 0x80, 0x00, 0x00, 0x00, 0x00},
	{0x0f, 0x1f, 0x84, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0x66, 0x0f, 0x1f, 0x84, 0x00, 0x00, 0x00, 0x00, 0x00},
}

// Nops returns the shortest sequence of recommended NOP instructions which fills n bytes.
func Nops(n int) []byte {
	var b buffer
	b.Nop(n)
	return b.Get()
}

// growable code buffer; writes past the end of b reallocate
type buffer struct {
	b  []byte
	i  int
	sz int
}

func (b *buffer) extend(length int) {
	if len(b.b)-b.i >= length {
		return
	}
	n := len(b.b) * 2
	if n < b.i+length {
		n = b.i + length + 64
	}
	bb := make([]byte, n)
	copy(bb, b.b[:b.i])
	b.b = bb
}

func (b *buffer) Len() int    { return b.i }
func (b *buffer) Cap() int    { return len(b.b) }
func (b *buffer) Get() []byte { return b.b[:b.i] }
func (b *buffer) Reset()      { b.ResizeReset(b.sz) }
func (b *buffer) ResizeReset(capacity int) {
	if len(b.b) != capacity {
		b.b = make([]byte, capacity)
	}
	b.i = 0
}

func (b *buffer) Bytes(v []byte) {
	b.extend(len(v))
	copy(b.b[b.i:], v)
	b.i += len(v)
}

func (b *buffer) WriteU8(v uint8) error {
	b.extend(1)
	b.b[b.i] = v
	b.i++
	return nil
}

func (b *buffer) WriteU16(v uint16) error {
	b.extend(2)
	binary.LittleEndian.PutUint16(b.b[b.i:], v)
	b.i += 2
	return nil
}

func (b *buffer) WriteU32(v uint32) error {
	b.extend(4)
	binary.LittleEndian.PutUint32(b.b[b.i:], v)
	b.i += 4
	return nil
}

func (b *buffer) WriteU64(v uint64) error {
	b.extend(8)
	binary.LittleEndian.PutUint64(b.b[b.i:], v)
	b.i += 8
	return nil
}

func (b *buffer) Nop(length int) {
	maxNop := len(nops)
	for length > 0 {
		if length > maxNop {
			b.Bytes(nops[maxNop-1])
			length -= maxNop
		} else {
			b.Bytes(nops[length-1])
			break
		}
	}
}
