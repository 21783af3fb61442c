package x64

import (
	"encoding/binary"
	"iter"
)

// EncodeTo writes the machine code to s: legacy prefixes (groups 1 through 4), REX, opcode, ModR/M,
// SIB, displacement, then immediate. Absent fields are omitted. The first error from s is returned
// immediately; bytes already written are not rolled back.
func (c Code) EncodeTo(s Sink) error {
	for _, p := range c.Prefixes {
		if p == 0 {
			continue
		}
		if err := s.WriteU8(byte(p)); err != nil {
			return err
		}
	}
	if c.REX != 0 {
		if err := s.WriteU8(byte(c.REX)); err != nil {
			return err
		}
	}
	for _, b := range c.Opcode[:c.OpcodeLen] {
		if err := s.WriteU8(b); err != nil {
			return err
		}
	}
	if c.UseModRM {
		if err := s.WriteU8(byte(c.ModRM)); err != nil {
			return err
		}
	}
	if c.UseSIB {
		if err := s.WriteU8(byte(c.SIB)); err != nil {
			return err
		}
	}
	if err := writeLE(s, c.Displacement[:c.DisplacementLen]); err != nil {
		return err
	}
	return writeLE(s, c.Immediate[:c.ImmediateLen])
}

func writeLE(s Sink, p []byte) error {
	switch len(p) {
	case 0:
		return nil
	case 1:
		return s.WriteU8(p[0])
	case 2:
		return s.WriteU16(binary.LittleEndian.Uint16(p))
	case 4:
		return s.WriteU32(binary.LittleEndian.Uint32(p))
	case 8:
		return s.WriteU64(binary.LittleEndian.Uint64(p))
	}
	for _, b := range p {
		if err := s.WriteU8(b); err != nil {
			return err
		}
	}
	return nil
}

// All returns an iterator over the encoded bytes. The sequence may be ranged over any number of times.
func (c Code) All() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		var buf [24]byte
		for _, b := range c.put(buf[:0]) {
			if !yield(b) {
				return
			}
		}
	}
}

// AppendTo appends the encoded bytes to b and returns the extended slice.
func (c Code) AppendTo(b []byte) []byte { return c.put(b) }

// Bytes returns the encoded bytes in a new slice.
func (c Code) Bytes() []byte { return c.put(make([]byte, 0, c.Len())) }

func (c Code) put(b []byte) []byte {
	for _, p := range c.Prefixes {
		if p != 0 {
			b = append(b, byte(p))
		}
	}
	if c.REX != 0 {
		b = append(b, byte(c.REX))
	}
	b = append(b, c.Opcode[:c.OpcodeLen]...)
	if c.UseModRM {
		b = append(b, byte(c.ModRM))
	}
	if c.UseSIB {
		b = append(b, byte(c.SIB))
	}
	b = append(b, c.Displacement[:c.DisplacementLen]...)
	return append(b, c.Immediate[:c.ImmediateLen]...)
}
