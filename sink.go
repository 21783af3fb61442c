package x64

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Sink receives encoded bytes. Multi-byte values are written little-endian. A Sink which can not
// accept a write returns an error, and the encoder stops at the first failure without rolling back
// bytes which were already written.
type Sink interface {
	WriteU8(v uint8) error
	WriteU16(v uint16) error
	WriteU32(v uint32) error
	WriteU64(v uint64) error
}

var (
	_ Sink = (*FixedBuffer)(nil)
	_ Sink = (*GrowBuffer)(nil)
	_ Sink = (*WriterSink)(nil)
	_ Sink = (*buffer)(nil)
)

// FixedBuffer is a Sink backed by a caller-provided slice. Writes which do not fit in the remaining
// space fail with ErrBufferFull and write nothing.
type FixedBuffer struct {
	b []byte
	i int
}

// Create a fixed-capacity sink which writes into buf.
func NewFixedBuffer(buf []byte) *FixedBuffer { return &FixedBuffer{b: buf} }

// Get the bytes written so far.
func (f *FixedBuffer) Bytes() []byte { return f.b[:f.i] }

// Get the number of bytes written so far.
func (f *FixedBuffer) Len() int { return f.i }

// Get the number of bytes which may still be written.
func (f *FixedBuffer) Available() int { return len(f.b) - f.i }

// Reset the write position to the start of the buffer.
func (f *FixedBuffer) Reset() { f.i = 0 }

func (f *FixedBuffer) reserve(n int) ([]byte, error) {
	if len(f.b)-f.i < n {
		return nil, fmt.Errorf("%d-byte write at offset %d: %w", n, f.i, ErrBufferFull)
	}
	p := f.b[f.i : f.i+n]
	f.i += n
	return p, nil
}

func (f *FixedBuffer) WriteU8(v uint8) error {
	p, err := f.reserve(1)
	if err != nil {
		return err
	}
	p[0] = v
	return nil
}

func (f *FixedBuffer) WriteU16(v uint16) error {
	p, err := f.reserve(2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(p, v)
	return nil
}

func (f *FixedBuffer) WriteU32(v uint32) error {
	p, err := f.reserve(4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(p, v)
	return nil
}

func (f *FixedBuffer) WriteU64(v uint64) error {
	p, err := f.reserve(8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(p, v)
	return nil
}

// GrowBuffer is a Sink backed by a growable slice. Writes never fail.
//
// The zero value is ready to use.
type GrowBuffer struct {
	b []byte
}

// Get the bytes written so far.
func (g *GrowBuffer) Bytes() []byte { return g.b }

// Get the number of bytes written so far.
func (g *GrowBuffer) Len() int { return len(g.b) }

// Discard all written bytes, keeping the allocated capacity.
func (g *GrowBuffer) Reset() { g.b = g.b[:0] }

func (g *GrowBuffer) WriteU8(v uint8) error {
	g.b = append(g.b, v)
	return nil
}

func (g *GrowBuffer) WriteU16(v uint16) error {
	g.b = binary.LittleEndian.AppendUint16(g.b, v)
	return nil
}

func (g *GrowBuffer) WriteU32(v uint32) error {
	g.b = binary.LittleEndian.AppendUint32(g.b, v)
	return nil
}

func (g *GrowBuffer) WriteU64(v uint64) error {
	g.b = binary.LittleEndian.AppendUint64(g.b, v)
	return nil
}

// WriterSink adapts an io.Writer to a Sink. Errors from the writer are returned unchanged.
type WriterSink struct {
	w       io.Writer
	scratch [8]byte
	n       int64
}

// Create a sink which forwards every write to w.
func NewWriterSink(w io.Writer) *WriterSink { return &WriterSink{w: w} }

// Get the number of bytes successfully written.
func (s *WriterSink) Written() int64 { return s.n }

func (s *WriterSink) write(p []byte) error {
	n, err := s.w.Write(p)
	s.n += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return err
}

func (s *WriterSink) WriteU8(v uint8) error {
	s.scratch[0] = v
	return s.write(s.scratch[:1])
}

func (s *WriterSink) WriteU16(v uint16) error {
	binary.LittleEndian.PutUint16(s.scratch[:], v)
	return s.write(s.scratch[:2])
}

func (s *WriterSink) WriteU32(v uint32) error {
	binary.LittleEndian.PutUint32(s.scratch[:], v)
	return s.write(s.scratch[:4])
}

func (s *WriterSink) WriteU64(v uint64) error {
	binary.LittleEndian.PutUint64(s.scratch[:], v)
	return s.write(s.scratch[:8])
}
