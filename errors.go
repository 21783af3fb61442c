package x64

import "errors"

var (
	// ErrNoMatch is returned when no encoding of an instruction accepts the given arguments.
	ErrNoMatch = errors.New("No matching instruction-encoding was found")
	// ErrBufferFull is returned by a fixed-capacity Sink which can not hold another write.
	ErrBufferFull = errors.New("Buffer is full")
	// ErrHighByteWithRex is returned when AH, CH, DH, or BH is combined with an argument which requires a REX prefix.
	ErrHighByteWithRex = errors.New("High-byte register can not be encoded with a REX prefix")
	// ErrInvalidMem is returned for memory arguments which can not be encoded.
	ErrInvalidMem = errors.New("Invalid memory argument")
	// ErrOperandSize is returned when argument sizes conflict or can not be determined.
	ErrOperandSize = errors.New("Invalid operand size")
	// ErrPrefix is returned when a LOCK or REP prefix is requested for an instruction which does not support it.
	ErrPrefix = errors.New("Unsupported instruction prefix")
)
