package x64

import (
	"encoding/binary"
	"fmt"
	"math"

	. "github.com/wdamron/x64/v2/feats"
)

// An assembler encodes instructions into a byte slice. Label references are supported, though Finalize
// must be called to finalize all existing (unprocessed) relative displacements.
//
// When re-using an assembler after encoding a set of instructions, the Reset method must be called beforehand.
//
// An Assembler is not safe for concurrent use.
type Assembler struct {
	b        buffer
	labels   []uint32 // label PCs, indexed by label id
	relocs   []reloc
	feats    Feature
	err      error
	lastCode Code

	match InstMatcher // current instruction (value is non-zero only while encoding)

	_labels [32]uint32
	_relocs [32]reloc
}

// Create a new Assembler for instruction encoding. Output will be encoded to buf. If the encoded output
// exceeds the length of buf, a new slice will be allocated.
//
// All CPU features will be enabled by default, for instruction-matching.
func NewAssembler(buf []byte) *Assembler {
	a := Assembler{b: buffer{b: buf, i: 0, sz: len(buf)}, feats: AllFeatures}
	a.match.feats = AllFeatures
	a.labels = a._labels[:0]
	a.relocs = a._relocs[:0]
	return &a
}

type reloc struct {
	loc   uint32 // displacement offset (pc)
	end   uint32 // end of the referencing instruction (pc)
	disp  int32  // additional displacement relative to the label offset (pc)
	label uint16 // target label id
	width uint8  // displacement width
}

// Get the current, allowable CPU feature-set for instruction-matching.
//
// See package x64/feats for all available CPU features.
func (a *Assembler) Features() Feature { return a.feats }

// Restrict the allowable CPU feature-set for instruction-matching. This will not affect
// instructions which have already been encoded.
//
// See package x64/feats for all available CPU features.
func (a *Assembler) SetFeatures(enabledFeatures Feature) {
	a.feats, a.match.feats = enabledFeatures, enabledFeatures
}

// Control the allowable CPU feature-set for instruction-matching. This will not affect
// instructions which have already been encoded.
func (a *Assembler) DisableFeature(feature Feature) {
	a.feats &^= feature
	a.match.feats = a.feats
}

// Control the allowable CPU feature-set for instruction-matching. This will not affect
// instructions which have already been encoded.
func (a *Assembler) EnableFeature(feature Feature) {
	a.feats |= feature
	a.match.feats = a.feats
}

// Reset an assembler before encoding a new set of instructions. All existing labels will be cleared,
// the error will be cleared if one exists, and the PC will be reset to 0. The current set of enabled
// CPU features will be retained.
//
// If buf is not nil, the assembler's buffer will be replaced with buf; otherwise, the assembler's
// buffer will be reset and possibly resized.
func (a *Assembler) Reset(buf []byte) {
	if buf != nil {
		a.b = buffer{b: buf, i: 0, sz: len(buf)}
	} else {
		a.b.Reset()
	}
	a.err = nil
	a.lastCode = Code{}
	a.labels = a._labels[:0]
	a.relocs = a._relocs[:0]
}

// Get the first error which occured while encoding or finalizing instructions, since the assembler
// was last reset (or initialized, if the assembler has not been reset).
func (a *Assembler) Err() error { return a.err }

// Get the current encoded instructions. This method may be called multiple times and does not affect the
// underlying code buffer.
func (a *Assembler) Code() []byte { return a.b.Get() }

// Get the structured form of the most recently encoded instruction.
func (a *Assembler) LastInst() Code { return a.lastCode }

// Get the current program counter (i.e. number of bytes written to the encoding buffer).
func (a *Assembler) PC() uint32 { return uint32(a.b.i) }

// Set the current program counter (i.e. number of bytes written to the encoding buffer).
func (a *Assembler) SetPC(pc uint32) {
	if int(pc) >= a.b.Cap() {
		a.b.extend(int(pc) + 1 - a.b.Len())
	}
	a.b.i = int(pc)
}

// Align the program counter to a power-of-2 offset. Intermediate space will be filled with NOPs.
// Nothing is written if the program counter is already aligned.
func (a *Assembler) AlignPC(pow2 uint32) {
	if pow2 == 0 || pow2&(pow2-1) != 0 {
		if a.err == nil {
			a.err = fmt.Errorf("Alignment %d is not a power of 2", pow2)
		}
		return
	}
	a.b.Nop(int((pow2 - a.PC()&(pow2-1)) & (pow2 - 1)))
}

// Encode inst with args to the encoding buffer. If no matching instruction-encoding is found,
// ErrNoMatch will be returned.
func (a *Assembler) Inst(inst Inst, args ...Arg) error {
	return a.withPrefix(0, inst, args...)
}

// Encode a previously matched instruction to the encoding buffer.
func (a *Assembler) InstFrom(matcher *InstMatcher) error {
	if a.err != nil {
		return a.err
	}
	if matcher.encId < 0 {
		a.err = ErrNoMatch
		return a.err
	}
	if need := matcher.enc.feats; a.feats&need != need {
		a.err = fmt.Errorf("Assembler does not support CPU features (%v) for previously matched %s instruction", need, matcher.inst.Name())
		return a.err
	}
	a.match = *matcher
	a.err = a.emitInst(0)
	a.match.reset()
	a.match.feats = a.feats
	return a.err
}

// Encode length bytes of NOP instructions to the encoding buffer.
func (a *Assembler) Nop(length int) { a.b.Nop(length) }

func (a *Assembler) withPrefix(prefix Prefix, inst Inst, args ...Arg) error {
	if a.err != nil {
		return a.err
	}
	if a.err = a.match.Match(inst, args...); a.err != nil {
		return a.err
	}
	a.err = a.emitInst(prefix)
	return a.err
}

func (a *Assembler) emitInst(prefix Prefix) error {
	c, fix, err := a.match.encode(prefix)
	if err != nil {
		return err
	}
	start := a.PC()
	if err = c.EncodeTo(&a.b); err != nil {
		return err
	}
	a.lastCode = c
	if fix.ok {
		a.relocs = append(a.relocs, reloc{
			loc:   start + uint32(fix.offset),
			end:   a.PC(),
			disp:  fix.disp,
			label: fix.label,
			width: fix.width,
		})
	}
	return nil
}

// Encode inst with args to the encoding buffer, prefixed with LOCK. The instruction must support
// LOCK and have a memory destination, otherwise ErrPrefix will be returned.
func (a *Assembler) Lock(inst Inst, args ...Arg) error {
	return a.withPrefix(PrefixLock, inst, args...)
}

// Encode inst with args to the encoding buffer, prefixed with REP. If no matching instruction-encoding is found,
// ErrNoMatch will be returned.
func (a *Assembler) Rep(inst Inst, args ...Arg) error {
	return a.withPrefix(PrefixRepeat, inst, args...)
}

// Encode inst with args to the encoding buffer, prefixed with REPE.
func (a *Assembler) Repe(inst Inst, args ...Arg) error { return a.Rep(inst, args...) }

// Encode inst with args to the encoding buffer, prefixed with REPZ.
func (a *Assembler) Repz(inst Inst, args ...Arg) error { return a.Rep(inst, args...) }

// Encode inst with args to the encoding buffer, prefixed with REPNE. If no matching instruction-encoding is found,
// ErrNoMatch will be returned.
func (a *Assembler) Repne(inst Inst, args ...Arg) error {
	return a.withPrefix(PrefixRepeatNot, inst, args...)
}

// Encode inst with args to the encoding buffer, prefixed with REPNZ.
func (a *Assembler) Repnz(inst Inst, args ...Arg) error { return a.Repne(inst, args...) }

func (a *Assembler) emitMatched(err error) error {
	if err != nil {
		a.err = err
		return err
	}
	a.err = a.emitInst(0)
	return a.err
}

// Encode inst with a register destination and register source to the encoding buffer.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (a *Assembler) RR(inst Inst, dst, src Reg) error {
	if a.err != nil {
		return a.err
	}
	return a.emitMatched(a.match.RR(inst, dst, src))
}

// Encode inst with a register destination, register source, and immediate to the encoding buffer.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (a *Assembler) RRI(inst Inst, dst, src Reg, imm ImmArg) error {
	if a.err != nil {
		return a.err
	}
	return a.emitMatched(a.match.RRI(inst, dst, src, imm))
}

// Encode inst with a register destination and memory source to the encoding buffer.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (a *Assembler) RM(inst Inst, dst Reg, src Mem) error {
	if a.err != nil {
		return a.err
	}
	return a.emitMatched(a.match.RM(inst, dst, src))
}

// Encode inst with a memory destination and register source to the encoding buffer.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (a *Assembler) MR(inst Inst, dst Mem, src Reg) error {
	if a.err != nil {
		return a.err
	}
	return a.emitMatched(a.match.MR(inst, dst, src))
}

// Encode inst with a register destination, memory source, and immediate to the encoding buffer.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (a *Assembler) RMI(inst Inst, dst Reg, src Mem, imm ImmArg) error {
	if a.err != nil {
		return a.err
	}
	return a.emitMatched(a.match.RMI(inst, dst, src, imm))
}

// Encode inst with a memory destination, register source, and immediate to the encoding buffer.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (a *Assembler) MRI(inst Inst, dst Mem, src Reg, imm ImmArg) error {
	if a.err != nil {
		return a.err
	}
	return a.emitMatched(a.match.MRI(inst, dst, src, imm))
}

// Encode inst with a register destination and immediate to the encoding buffer.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (a *Assembler) RI(inst Inst, dst Reg, imm ImmArg) error {
	if a.err != nil {
		return a.err
	}
	return a.emitMatched(a.match.RI(inst, dst, imm))
}

// Encode inst with a memory destination and immediate to the encoding buffer.
// If no matching instruction-encoding is found, ErrNoMatch will be returned.
func (a *Assembler) MI(inst Inst, dst Mem, imm ImmArg) error {
	if a.err != nil {
		return a.err
	}
	return a.emitMatched(a.match.MI(inst, dst, imm))
}

// Write raw data to the encoding buffer.
func (a *Assembler) Raw(data []byte) { a.b.Bytes(data) }

// Write a raw byte to the encoding buffer.
func (a *Assembler) RawByte(b byte) { _ = a.b.WriteU8(b) }

// Write a raw 16-bit integer to the encoding buffer.
func (a *Assembler) Raw16(i int16) { _ = a.b.WriteU16(uint16(i)) }

// Write a raw 32-bit integer to the encoding buffer.
func (a *Assembler) Raw32(i int32) { _ = a.b.WriteU32(uint32(i)) }

// Write a raw 64-bit integer to the encoding buffer.
func (a *Assembler) Raw64(i int64) { _ = a.b.WriteU64(uint64(i)) }

// Create a new label at the current PC. To update the PC assigned to the label, call the SetLabel
// method with the label when the PC reaches the desired offset -- this must be done before calling
// the Finalize method.
func (a *Assembler) NewLabel() Label {
	l := Label{id: uint16(len(a.labels))}
	a.labels = append(a.labels, a.PC())
	return l
}

// Update the PC assigned to the label using the current PC.
func (a *Assembler) SetLabel(label LabelArg) { a.labels[label.label()] = a.PC() }

// Get the PC currently assigned to the label.
func (a *Assembler) GetLabelPC(label LabelArg) uint32 { return a.labels[label.label()] }

// Update the PC assigned to the label using the given PC. Finalize must be called to update
// existing label references after labels have been reassigned to new offsets, though Finalize
// only needs to be called after a set of updates (i.e. not after each update).
func (a *Assembler) SetLabelPC(label LabelArg, pc uint32) { a.labels[label.label()] = pc }

// Process all label references. Each label reference will have its displacement patched with the offset
// of the label relative to the end of the referencing instruction (optionally with additional displacement
// for LabelDisp arguments).
func (a *Assembler) Finalize() error {
	if a.err != nil {
		return a.err
	}
	code := a.b.b
	for _, r := range a.relocs {
		if int(r.label) >= len(a.labels) {
			a.err = fmt.Errorf("Reference to unknown label %d", r.label)
			return a.err
		}
		disp := int64(a.labels[r.label]) - int64(r.end) + int64(r.disp)
		switch r.width {
		case 1:
			if disp > math.MaxInt8 || disp < math.MinInt8 {
				a.err = fmt.Errorf("Relative label offset %d exceeds range for 8-bit displacement", disp)
				return a.err
			}
			code[r.loc] = byte(disp)
		case 4:
			if disp > math.MaxInt32 || disp < math.MinInt32 {
				a.err = fmt.Errorf("Relative label offset %d exceeds range for 32-bit displacement", disp)
				return a.err
			}
			binary.LittleEndian.PutUint32(code[r.loc:], uint32(disp))
		}
	}
	return nil
}
