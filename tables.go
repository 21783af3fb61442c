package x64

import (
	. "github.com/wdamron/x64/v2/feats"
	. "github.com/wdamron/x64/v2/internal/flags"
)

// Instruction mnemonics
const (
	_ Inst = iota

	// Integer arithmetic and logic
	ADC
	ADD
	AND
	CMP
	OR
	SBB
	SUB
	XOR
	TEST
	INC
	DEC
	NEG
	NOT
	MUL
	IMUL
	DIV
	IDIV

	// Shifts and rotates
	RCL
	RCR
	ROL
	ROR
	SAL
	SAR
	SHL
	SHR
	SHLD
	SHRD

	// Data movement
	MOV
	MOVABS
	MOVZX
	MOVSX
	MOVSXD
	LEA
	PUSH
	POP
	XCHG
	CMPXCHG
	XADD
	BSWAP
	CMOVCC
	SETCC

	// Bit manipulation
	BT
	BTS
	BTR
	BTC
	BSF
	BSR
	POPCNT
	LZCNT
	TZCNT
	CRC32

	// Control flow
	CALL
	JMP
	JCC
	RET
	INT
	INT3
	LEAVE
	ENTER
	SYSCALL

	// Miscellaneous
	NOP
	PAUSE
	HLT
	UD2
	CLC
	STC
	CMC
	CLD
	STD
	CLI
	STI
	CBW
	CWDE
	CDQE
	CWD
	CDQ
	CQO
	PUSHF
	POPF
	CPUID
	RDTSC
	LFENCE
	MFENCE
	SFENCE
	PREFETCHT0
	PREFETCHT1
	PREFETCHT2
	PREFETCHNTA

	// String operations
	MOVSB
	MOVSW
	MOVSD
	MOVSQ
	STOSB
	STOSW
	STOSD
	STOSQ
	LODSB
	LODSW
	LODSD
	LODSQ
	SCASB
	SCASW
	SCASD
	SCASQ
	CMPSB
	CMPSW
	CMPSD
	CMPSQ

	// x87 floating point
	FLD
	FST
	FSTP
	FXCH
	FADD
	FMUL
	FSUB
	FDIV
	FADDP
	FMULP
	FSUBP
	FDIVP
	FLDZ
	FLD1
	FCHS
	FABS
	FWAIT

	instCount
)

// nr marks an encoding whose ModR/M.reg field holds a register argument (or which has no ModR/M byte).
const nr int8 = -1

var instNames = [instCount]string{
	ADC:         "ADC",
	ADD:         "ADD",
	AND:         "AND",
	CMP:         "CMP",
	OR:          "OR",
	SBB:         "SBB",
	SUB:         "SUB",
	XOR:         "XOR",
	TEST:        "TEST",
	INC:         "INC",
	DEC:         "DEC",
	NEG:         "NEG",
	NOT:         "NOT",
	MUL:         "MUL",
	IMUL:        "IMUL",
	DIV:         "DIV",
	IDIV:        "IDIV",
	RCL:         "RCL",
	RCR:         "RCR",
	ROL:         "ROL",
	ROR:         "ROR",
	SAL:         "SAL",
	SAR:         "SAR",
	SHL:         "SHL",
	SHR:         "SHR",
	SHLD:        "SHLD",
	SHRD:        "SHRD",
	MOV:         "MOV",
	MOVABS:      "MOVABS",
	MOVZX:       "MOVZX",
	MOVSX:       "MOVSX",
	MOVSXD:      "MOVSXD",
	LEA:         "LEA",
	PUSH:        "PUSH",
	POP:         "POP",
	XCHG:        "XCHG",
	CMPXCHG:     "CMPXCHG",
	XADD:        "XADD",
	BSWAP:       "BSWAP",
	CMOVCC:      "CMOVCC",
	SETCC:       "SETCC",
	BT:          "BT",
	BTS:         "BTS",
	BTR:         "BTR",
	BTC:         "BTC",
	BSF:         "BSF",
	BSR:         "BSR",
	POPCNT:      "POPCNT",
	LZCNT:       "LZCNT",
	TZCNT:       "TZCNT",
	CRC32:       "CRC32",
	CALL:        "CALL",
	JMP:         "JMP",
	JCC:         "JCC",
	RET:         "RET",
	INT:         "INT",
	INT3:        "INT3",
	LEAVE:       "LEAVE",
	ENTER:       "ENTER",
	SYSCALL:     "SYSCALL",
	NOP:         "NOP",
	PAUSE:       "PAUSE",
	HLT:         "HLT",
	UD2:         "UD2",
	CLC:         "CLC",
	STC:         "STC",
	CMC:         "CMC",
	CLD:         "CLD",
	STD:         "STD",
	CLI:         "CLI",
	STI:         "STI",
	CBW:         "CBW",
	CWDE:        "CWDE",
	CDQE:        "CDQE",
	CWD:         "CWD",
	CDQ:         "CDQ",
	CQO:         "CQO",
	PUSHF:       "PUSHF",
	POPF:        "POPF",
	CPUID:       "CPUID",
	RDTSC:       "RDTSC",
	LFENCE:      "LFENCE",
	MFENCE:      "MFENCE",
	SFENCE:      "SFENCE",
	PREFETCHT0:  "PREFETCHT0",
	PREFETCHT1:  "PREFETCHT1",
	PREFETCHT2:  "PREFETCHT2",
	PREFETCHNTA: "PREFETCHNTA",
	MOVSB:       "MOVSB",
	MOVSW:       "MOVSW",
	MOVSD:       "MOVSD",
	MOVSQ:       "MOVSQ",
	STOSB:       "STOSB",
	STOSW:       "STOSW",
	STOSD:       "STOSD",
	STOSQ:       "STOSQ",
	LODSB:       "LODSB",
	LODSW:       "LODSW",
	LODSD:       "LODSD",
	LODSQ:       "LODSQ",
	SCASB:       "SCASB",
	SCASW:       "SCASW",
	SCASD:       "SCASD",
	SCASQ:       "SCASQ",
	CMPSB:       "CMPSB",
	CMPSW:       "CMPSW",
	CMPSD:       "CMPSD",
	CMPSQ:       "CMPSQ",
	FLD:         "FLD",
	FST:         "FST",
	FSTP:        "FSTP",
	FXCH:        "FXCH",
	FADD:        "FADD",
	FMUL:        "FMUL",
	FSUB:        "FSUB",
	FDIV:        "FDIV",
	FADDP:       "FADDP",
	FMULP:       "FMULP",
	FSUBP:       "FSUBP",
	FDIVP:       "FDIVP",
	FLDZ:        "FLDZ",
	FLD1:        "FLD1",
	FCHS:        "FCHS",
	FABS:        "FABS",
	FWAIT:       "FWAIT",
}

// Encodings for each mnemonic, in matching order. Shorter forms (accumulator, sign-extended imm8)
// are listed before the general forms so the first match is also the most compact.
//
// Operand type/size patterns are documented in match.go.
var encTable = [instCount][]enc{
	ADC: {
		{"Abib", op{0x14}, nr, DEFAULT, X64_IMPLICIT},
		{"A*i*", op{0x15}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0x80}, 2, LOCK, X64_IMPLICIT},
		{"v*ib", op{0x83}, 2, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"v*i*", op{0x81}, 2, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"vbrb", op{0x10}, nr, ENC_MR | LOCK, X64_IMPLICIT},
		{"v*r*", op{0x11}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"rbvb", op{0x12}, nr, DEFAULT, X64_IMPLICIT},
		{"r*v*", op{0x13}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	ADD: {
		{"Abib", op{0x04}, nr, DEFAULT, X64_IMPLICIT},
		{"A*i*", op{0x05}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0x80}, 0, LOCK, X64_IMPLICIT},
		{"v*ib", op{0x83}, 0, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"v*i*", op{0x81}, 0, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"vbrb", op{0x00}, nr, ENC_MR | LOCK, X64_IMPLICIT},
		{"v*r*", op{0x01}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"rbvb", op{0x02}, nr, DEFAULT, X64_IMPLICIT},
		{"r*v*", op{0x03}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	AND: {
		{"Abib", op{0x24}, nr, DEFAULT, X64_IMPLICIT},
		{"A*i*", op{0x25}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0x80}, 4, LOCK, X64_IMPLICIT},
		{"v*ib", op{0x83}, 4, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"v*i*", op{0x81}, 4, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"vbrb", op{0x20}, nr, ENC_MR | LOCK, X64_IMPLICIT},
		{"v*r*", op{0x21}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"rbvb", op{0x22}, nr, DEFAULT, X64_IMPLICIT},
		{"r*v*", op{0x23}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	CMP: {
		{"Abib", op{0x3C}, nr, DEFAULT, X64_IMPLICIT},
		{"A*i*", op{0x3D}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0x80}, 7, DEFAULT, X64_IMPLICIT},
		{"v*ib", op{0x83}, 7, AUTO_SIZE, X64_IMPLICIT},
		{"v*i*", op{0x81}, 7, AUTO_SIZE, X64_IMPLICIT},
		{"vbrb", op{0x38}, nr, ENC_MR, X64_IMPLICIT},
		{"v*r*", op{0x39}, nr, AUTO_SIZE | ENC_MR, X64_IMPLICIT},
		{"rbvb", op{0x3A}, nr, DEFAULT, X64_IMPLICIT},
		{"r*v*", op{0x3B}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	OR: {
		{"Abib", op{0x0C}, nr, DEFAULT, X64_IMPLICIT},
		{"A*i*", op{0x0D}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0x80}, 1, LOCK, X64_IMPLICIT},
		{"v*ib", op{0x83}, 1, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"v*i*", op{0x81}, 1, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"vbrb", op{0x08}, nr, ENC_MR | LOCK, X64_IMPLICIT},
		{"v*r*", op{0x09}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"rbvb", op{0x0A}, nr, DEFAULT, X64_IMPLICIT},
		{"r*v*", op{0x0B}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	SBB: {
		{"Abib", op{0x1C}, nr, DEFAULT, X64_IMPLICIT},
		{"A*i*", op{0x1D}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0x80}, 3, LOCK, X64_IMPLICIT},
		{"v*ib", op{0x83}, 3, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"v*i*", op{0x81}, 3, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"vbrb", op{0x18}, nr, ENC_MR | LOCK, X64_IMPLICIT},
		{"v*r*", op{0x19}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"rbvb", op{0x1A}, nr, DEFAULT, X64_IMPLICIT},
		{"r*v*", op{0x1B}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	SUB: {
		{"Abib", op{0x2C}, nr, DEFAULT, X64_IMPLICIT},
		{"A*i*", op{0x2D}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0x80}, 5, LOCK, X64_IMPLICIT},
		{"v*ib", op{0x83}, 5, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"v*i*", op{0x81}, 5, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"vbrb", op{0x28}, nr, ENC_MR | LOCK, X64_IMPLICIT},
		{"v*r*", op{0x29}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"rbvb", op{0x2A}, nr, DEFAULT, X64_IMPLICIT},
		{"r*v*", op{0x2B}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	XOR: {
		{"Abib", op{0x34}, nr, DEFAULT, X64_IMPLICIT},
		{"A*i*", op{0x35}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0x80}, 6, LOCK, X64_IMPLICIT},
		{"v*ib", op{0x83}, 6, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"v*i*", op{0x81}, 6, AUTO_SIZE | LOCK, X64_IMPLICIT},
		{"vbrb", op{0x30}, nr, ENC_MR | LOCK, X64_IMPLICIT},
		{"v*r*", op{0x31}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"rbvb", op{0x32}, nr, DEFAULT, X64_IMPLICIT},
		{"r*v*", op{0x33}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	TEST: {
		{"Abib", op{0xA8}, nr, DEFAULT, X64_IMPLICIT},
		{"A*i*", op{0xA9}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0xF6}, 0, DEFAULT, X64_IMPLICIT},
		{"v*i*", op{0xF7}, 0, AUTO_SIZE, X64_IMPLICIT},
		{"vbrb", op{0x84}, nr, ENC_MR, X64_IMPLICIT},
		{"v*r*", op{0x85}, nr, AUTO_SIZE | ENC_MR, X64_IMPLICIT},
	},
	INC: {
		{"vb", op{0xFE}, 0, LOCK, X64_IMPLICIT},
		{"v*", op{0xFF}, 0, AUTO_SIZE | LOCK, X64_IMPLICIT},
	},
	DEC: {
		{"vb", op{0xFE}, 1, LOCK, X64_IMPLICIT},
		{"v*", op{0xFF}, 1, AUTO_SIZE | LOCK, X64_IMPLICIT},
	},
	NOT: {
		{"vb", op{0xF6}, 2, LOCK, X64_IMPLICIT},
		{"v*", op{0xF7}, 2, AUTO_SIZE | LOCK, X64_IMPLICIT},
	},
	NEG: {
		{"vb", op{0xF6}, 3, LOCK, X64_IMPLICIT},
		{"v*", op{0xF7}, 3, AUTO_SIZE | LOCK, X64_IMPLICIT},
	},
	MUL: {
		{"vb", op{0xF6}, 4, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xF7}, 4, AUTO_SIZE, X64_IMPLICIT},
	},
	IMUL: {
		{"vb", op{0xF6}, 5, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xF7}, 5, AUTO_SIZE, X64_IMPLICIT},
		{"r*v*", op{0x0F, 0xAF}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"r*v*ib", op{0x6B}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"r*v*i*", op{0x69}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	DIV: {
		{"vb", op{0xF6}, 6, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xF7}, 6, AUTO_SIZE, X64_IMPLICIT},
	},
	IDIV: {
		{"vb", op{0xF6}, 7, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xF7}, 7, AUTO_SIZE, X64_IMPLICIT},
	},
	RCL: {
		{"vb", op{0xD0}, 2, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xD1}, 2, AUTO_SIZE, X64_IMPLICIT},
		{"vbBb", op{0xD2}, 2, DEFAULT, X64_IMPLICIT},
		{"v*Bb", op{0xD3}, 2, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0xC0}, 2, DEFAULT, X64_IMPLICIT},
		{"v*ib", op{0xC1}, 2, AUTO_SIZE, X64_IMPLICIT},
	},
	RCR: {
		{"vb", op{0xD0}, 3, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xD1}, 3, AUTO_SIZE, X64_IMPLICIT},
		{"vbBb", op{0xD2}, 3, DEFAULT, X64_IMPLICIT},
		{"v*Bb", op{0xD3}, 3, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0xC0}, 3, DEFAULT, X64_IMPLICIT},
		{"v*ib", op{0xC1}, 3, AUTO_SIZE, X64_IMPLICIT},
	},
	ROL: {
		{"vb", op{0xD0}, 0, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xD1}, 0, AUTO_SIZE, X64_IMPLICIT},
		{"vbBb", op{0xD2}, 0, DEFAULT, X64_IMPLICIT},
		{"v*Bb", op{0xD3}, 0, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0xC0}, 0, DEFAULT, X64_IMPLICIT},
		{"v*ib", op{0xC1}, 0, AUTO_SIZE, X64_IMPLICIT},
	},
	ROR: {
		{"vb", op{0xD0}, 1, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xD1}, 1, AUTO_SIZE, X64_IMPLICIT},
		{"vbBb", op{0xD2}, 1, DEFAULT, X64_IMPLICIT},
		{"v*Bb", op{0xD3}, 1, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0xC0}, 1, DEFAULT, X64_IMPLICIT},
		{"v*ib", op{0xC1}, 1, AUTO_SIZE, X64_IMPLICIT},
	},
	SAL: {
		{"vb", op{0xD0}, 4, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xD1}, 4, AUTO_SIZE, X64_IMPLICIT},
		{"vbBb", op{0xD2}, 4, DEFAULT, X64_IMPLICIT},
		{"v*Bb", op{0xD3}, 4, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0xC0}, 4, DEFAULT, X64_IMPLICIT},
		{"v*ib", op{0xC1}, 4, AUTO_SIZE, X64_IMPLICIT},
	},
	SAR: {
		{"vb", op{0xD0}, 7, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xD1}, 7, AUTO_SIZE, X64_IMPLICIT},
		{"vbBb", op{0xD2}, 7, DEFAULT, X64_IMPLICIT},
		{"v*Bb", op{0xD3}, 7, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0xC0}, 7, DEFAULT, X64_IMPLICIT},
		{"v*ib", op{0xC1}, 7, AUTO_SIZE, X64_IMPLICIT},
	},
	SHL: {
		{"vb", op{0xD0}, 4, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xD1}, 4, AUTO_SIZE, X64_IMPLICIT},
		{"vbBb", op{0xD2}, 4, DEFAULT, X64_IMPLICIT},
		{"v*Bb", op{0xD3}, 4, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0xC0}, 4, DEFAULT, X64_IMPLICIT},
		{"v*ib", op{0xC1}, 4, AUTO_SIZE, X64_IMPLICIT},
	},
	SHR: {
		{"vb", op{0xD0}, 5, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xD1}, 5, AUTO_SIZE, X64_IMPLICIT},
		{"vbBb", op{0xD2}, 5, DEFAULT, X64_IMPLICIT},
		{"v*Bb", op{0xD3}, 5, AUTO_SIZE, X64_IMPLICIT},
		{"vbib", op{0xC0}, 5, DEFAULT, X64_IMPLICIT},
		{"v*ib", op{0xC1}, 5, AUTO_SIZE, X64_IMPLICIT},
	},
	SHLD: {
		{"v*r*ib", op{0x0F, 0xA4}, nr, AUTO_SIZE | ENC_MR, X64_IMPLICIT},
		{"v*r*Bb", op{0x0F, 0xA5}, nr, AUTO_SIZE | ENC_MR, X64_IMPLICIT},
	},
	SHRD: {
		{"v*r*ib", op{0x0F, 0xAC}, nr, AUTO_SIZE | ENC_MR, X64_IMPLICIT},
		{"v*r*Bb", op{0x0F, 0xAD}, nr, AUTO_SIZE | ENC_MR, X64_IMPLICIT},
	},
	MOV: {
		{"vbrb", op{0x88}, nr, ENC_MR, X64_IMPLICIT},
		{"v*r*", op{0x89}, nr, AUTO_SIZE | ENC_MR, X64_IMPLICIT},
		{"rbvb", op{0x8A}, nr, DEFAULT, X64_IMPLICIT},
		{"r*v*", op{0x8B}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"rbib", op{0xB0}, nr, SHORT_ARG, X64_IMPLICIT},
		{"rwiw", op{0xB8}, nr, SHORT_ARG | WORD_SIZE, X64_IMPLICIT},
		{"rdid", op{0xB8}, nr, SHORT_ARG, X64_IMPLICIT},
		{"rqiq", op{0xB8}, nr, SHORT_ARG | WITH_REXW, X64_IMPLICIT},
		{"vbib", op{0xC6}, 0, DEFAULT, X64_IMPLICIT},
		{"v*i*", op{0xC7}, 0, AUTO_SIZE, X64_IMPLICIT},
		{"vwsw", op{0x8C}, nr, ENC_MR, X64_IMPLICIT},
		{"swvw", op{0x8E}, nr, DEFAULT, X64_IMPLICIT},
		{"rqcq", op{0x0F, 0x20}, nr, DEFAULT, X64_IMPLICIT},
		{"cqrq", op{0x0F, 0x22}, nr, DEFAULT, X64_IMPLICIT},
		{"rqdq", op{0x0F, 0x21}, nr, DEFAULT, X64_IMPLICIT},
		{"dqrq", op{0x0F, 0x23}, nr, DEFAULT, X64_IMPLICIT},
	},
	MOVABS: {
		{"rqiq", op{0xB8}, nr, SHORT_ARG | WITH_REXW, X64_IMPLICIT},
		{"Abiq", op{0xA0}, nr, DEFAULT, X64_IMPLICIT},
		{"A*iq", op{0xA1}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"iqAb", op{0xA2}, nr, DEFAULT, X64_IMPLICIT},
		{"iqA*", op{0xA3}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	MOVZX: {
		{"r*vb", op{0x0F, 0xB6}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"r*vw", op{0x0F, 0xB7}, nr, AUTO_REXW, X64_IMPLICIT},
	},
	MOVSX: {
		{"r*vb", op{0x0F, 0xBE}, nr, AUTO_SIZE, X64_IMPLICIT},
		{"r*vw", op{0x0F, 0xBF}, nr, AUTO_REXW, X64_IMPLICIT},
	},
	MOVSXD: {
		{"rqvd", op{0x63}, nr, WITH_REXW, X64_IMPLICIT},
	},
	LEA: {
		{"r*m!", op{0x8D}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	PUSH: {
		{"r*", op{0x50}, nr, AUTO_NO32 | SHORT_ARG, X64_IMPLICIT},
		{"v*", op{0xFF}, 6, AUTO_NO32, X64_IMPLICIT},
		{"ib", op{0x6A}, nr, DEFAULT, X64_IMPLICIT},
		{"iw", op{0x68}, nr, WORD_SIZE, X64_IMPLICIT},
		{"id", op{0x68}, nr, DEFAULT, X64_IMPLICIT},
		{"Uw", op{0x0F, 0xA0}, nr, DEFAULT, X64_IMPLICIT},
		{"Vw", op{0x0F, 0xA8}, nr, DEFAULT, X64_IMPLICIT},
	},
	POP: {
		{"r*", op{0x58}, nr, AUTO_NO32 | SHORT_ARG, X64_IMPLICIT},
		{"v*", op{0x8F}, 0, AUTO_NO32, X64_IMPLICIT},
		{"Uw", op{0x0F, 0xA1}, nr, DEFAULT, X64_IMPLICIT},
		{"Vw", op{0x0F, 0xA9}, nr, DEFAULT, X64_IMPLICIT},
	},
	XCHG: {
		{"A*r*", op{0x90}, nr, AUTO_SIZE | SHORT_ARG, X64_IMPLICIT},
		{"r*A*", op{0x90}, nr, AUTO_SIZE | SHORT_ARG, X64_IMPLICIT},
		{"vbrb", op{0x86}, nr, ENC_MR | LOCK, X64_IMPLICIT},
		{"rbvb", op{0x86}, nr, DEFAULT, X64_IMPLICIT},
		{"v*r*", op{0x87}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"r*v*", op{0x87}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	CMPXCHG: {
		{"vbrb", op{0x0F, 0xB0}, nr, ENC_MR | LOCK, X64_IMPLICIT},
		{"v*r*", op{0x0F, 0xB1}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
	},
	XADD: {
		{"vbrb", op{0x0F, 0xC0}, nr, ENC_MR | LOCK, X64_IMPLICIT},
		{"v*r*", op{0x0F, 0xC1}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
	},
	BSWAP: {
		{"r*", op{0x0F, 0xC8}, nr, AUTO_REXW | SHORT_ARG, X64_IMPLICIT},
	},
	CMOVCC: {
		{"n!r*v*", op{0x0F, 0x40}, nr, AUTO_SIZE | COND_OP, CMOV},
	},
	SETCC: {
		{"n!vb", op{0x0F, 0x90}, 0, COND_OP, X64_IMPLICIT},
	},
	BT: {
		{"v*r*", op{0x0F, 0xA3}, nr, AUTO_SIZE | ENC_MR, X64_IMPLICIT},
		{"v*ib", op{0x0F, 0xBA}, 4, AUTO_SIZE, X64_IMPLICIT},
	},
	BTS: {
		{"v*r*", op{0x0F, 0xAB}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"v*ib", op{0x0F, 0xBA}, 5, AUTO_SIZE | LOCK, X64_IMPLICIT},
	},
	BTR: {
		{"v*r*", op{0x0F, 0xB3}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"v*ib", op{0x0F, 0xBA}, 6, AUTO_SIZE | LOCK, X64_IMPLICIT},
	},
	BTC: {
		{"v*r*", op{0x0F, 0xBB}, nr, AUTO_SIZE | ENC_MR | LOCK, X64_IMPLICIT},
		{"v*ib", op{0x0F, 0xBA}, 7, AUTO_SIZE | LOCK, X64_IMPLICIT},
	},
	BSF: {
		{"r*v*", op{0x0F, 0xBC}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	BSR: {
		{"r*v*", op{0x0F, 0xBD}, nr, AUTO_SIZE, X64_IMPLICIT},
	},
	POPCNT: {
		{"r*v*", op{0x0F, 0xB8}, nr, AUTO_SIZE | PREF_F3, ABM},
	},
	LZCNT: {
		{"r*v*", op{0x0F, 0xBD}, nr, AUTO_SIZE | PREF_F3, ABM},
	},
	TZCNT: {
		{"r*v*", op{0x0F, 0xBC}, nr, AUTO_SIZE | PREF_F3, BMI1},
	},
	CRC32: {
		{"rdvb", op{0x0F, 0x38, 0xF0}, nr, PREF_F2, SSE42},
		{"rqvb", op{0x0F, 0x38, 0xF0}, nr, PREF_F2 | WITH_REXW, SSE42},
		{"rdvw", op{0x0F, 0x38, 0xF1}, nr, PREF_F2 | WORD_SIZE, SSE42},
		{"rdvd", op{0x0F, 0x38, 0xF1}, nr, PREF_F2, SSE42},
		{"rqvq", op{0x0F, 0x38, 0xF1}, nr, PREF_F2 | WITH_REXW, SSE42},
	},
	CALL: {
		{"od", op{0xE8}, nr, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xFF}, 2, AUTO_NO32, X64_IMPLICIT},
	},
	JMP: {
		{"ob", op{0xEB}, nr, DEFAULT, X64_IMPLICIT},
		{"od", op{0xE9}, nr, DEFAULT, X64_IMPLICIT},
		{"v*", op{0xFF}, 4, AUTO_NO32, X64_IMPLICIT},
	},
	JCC: {
		{"n!ob", op{0x70}, nr, COND_OP, X64_IMPLICIT},
		{"n!od", op{0x0F, 0x80}, nr, COND_OP, X64_IMPLICIT},
	},
	RET: {
		{"", op{0xC3}, nr, DEFAULT, X64_IMPLICIT},
		{"iw", op{0xC2}, nr, DEFAULT, X64_IMPLICIT},
	},
	INT: {
		{"ib", op{0xCD}, nr, DEFAULT, X64_IMPLICIT},
	},
	INT3:    {{"", op{0xCC}, nr, DEFAULT, X64_IMPLICIT}},
	LEAVE:   {{"", op{0xC9}, nr, DEFAULT, X64_IMPLICIT}},
	ENTER:   {{"iwib", op{0xC8}, nr, DEFAULT, X64_IMPLICIT}},
	SYSCALL: {{"", op{0x0F, 0x05}, nr, DEFAULT, X64_IMPLICIT}},

	NOP: {
		{"", op{0x90}, nr, DEFAULT, X64_IMPLICIT},
		{"v*", op{0x0F, 0x1F}, 0, AUTO_SIZE, X64_IMPLICIT},
	},
	PAUSE:       {{"", op{0x90}, nr, PREF_F3, X64_IMPLICIT}},
	HLT:         {{"", op{0xF4}, nr, DEFAULT, X64_IMPLICIT}},
	UD2:         {{"", op{0x0F, 0x0B}, nr, DEFAULT, X64_IMPLICIT}},
	CLC:         {{"", op{0xF8}, nr, DEFAULT, X64_IMPLICIT}},
	STC:         {{"", op{0xF9}, nr, DEFAULT, X64_IMPLICIT}},
	CMC:         {{"", op{0xF5}, nr, DEFAULT, X64_IMPLICIT}},
	CLD:         {{"", op{0xFC}, nr, DEFAULT, X64_IMPLICIT}},
	STD:         {{"", op{0xFD}, nr, DEFAULT, X64_IMPLICIT}},
	CLI:         {{"", op{0xFA}, nr, DEFAULT, X64_IMPLICIT}},
	STI:         {{"", op{0xFB}, nr, DEFAULT, X64_IMPLICIT}},
	CBW:         {{"", op{0x98}, nr, WORD_SIZE, X64_IMPLICIT}},
	CWDE:        {{"", op{0x98}, nr, DEFAULT, X64_IMPLICIT}},
	CDQE:        {{"", op{0x98}, nr, WITH_REXW, X64_IMPLICIT}},
	CWD:         {{"", op{0x99}, nr, WORD_SIZE, X64_IMPLICIT}},
	CDQ:         {{"", op{0x99}, nr, DEFAULT, X64_IMPLICIT}},
	CQO:         {{"", op{0x99}, nr, WITH_REXW, X64_IMPLICIT}},
	PUSHF:       {{"", op{0x9C}, nr, DEFAULT, X64_IMPLICIT}},
	POPF:        {{"", op{0x9D}, nr, DEFAULT, X64_IMPLICIT}},
	CPUID:       {{"", op{0x0F, 0xA2}, nr, DEFAULT, X64_IMPLICIT}},
	RDTSC:       {{"", op{0x0F, 0x31}, nr, DEFAULT, X64_IMPLICIT}},
	LFENCE:      {{"", op{0x0F, 0xAE, 0xE8}, nr, DEFAULT, SSE2}},
	MFENCE:      {{"", op{0x0F, 0xAE, 0xF0}, nr, DEFAULT, SSE2}},
	SFENCE:      {{"", op{0x0F, 0xAE, 0xF8}, nr, DEFAULT, SSE}},
	PREFETCHT0:  {{"m!", op{0x0F, 0x18}, 1, DEFAULT, SSE}},
	PREFETCHT1:  {{"m!", op{0x0F, 0x18}, 2, DEFAULT, SSE}},
	PREFETCHT2:  {{"m!", op{0x0F, 0x18}, 3, DEFAULT, SSE}},
	PREFETCHNTA: {{"m!", op{0x0F, 0x18}, 0, DEFAULT, SSE}},

	MOVSB: {{"", op{0xA4}, nr, REP, X64_IMPLICIT}},
	MOVSW: {{"", op{0xA5}, nr, WORD_SIZE | REP, X64_IMPLICIT}},
	MOVSD: {{"", op{0xA5}, nr, REP, X64_IMPLICIT}},
	MOVSQ: {{"", op{0xA5}, nr, WITH_REXW | REP, X64_IMPLICIT}},
	STOSB: {{"", op{0xAA}, nr, REP, X64_IMPLICIT}},
	STOSW: {{"", op{0xAB}, nr, WORD_SIZE | REP, X64_IMPLICIT}},
	STOSD: {{"", op{0xAB}, nr, REP, X64_IMPLICIT}},
	STOSQ: {{"", op{0xAB}, nr, WITH_REXW | REP, X64_IMPLICIT}},
	LODSB: {{"", op{0xAC}, nr, REP, X64_IMPLICIT}},
	LODSW: {{"", op{0xAD}, nr, WORD_SIZE | REP, X64_IMPLICIT}},
	LODSD: {{"", op{0xAD}, nr, REP, X64_IMPLICIT}},
	LODSQ: {{"", op{0xAD}, nr, WITH_REXW | REP, X64_IMPLICIT}},
	SCASB: {{"", op{0xAE}, nr, REPE, X64_IMPLICIT}},
	SCASW: {{"", op{0xAF}, nr, WORD_SIZE | REPE, X64_IMPLICIT}},
	SCASD: {{"", op{0xAF}, nr, REPE, X64_IMPLICIT}},
	SCASQ: {{"", op{0xAF}, nr, WITH_REXW | REPE, X64_IMPLICIT}},
	CMPSB: {{"", op{0xA6}, nr, REPE, X64_IMPLICIT}},
	CMPSW: {{"", op{0xA7}, nr, WORD_SIZE | REPE, X64_IMPLICIT}},
	CMPSD: {{"", op{0xA7}, nr, REPE, X64_IMPLICIT}},
	CMPSQ: {{"", op{0xA7}, nr, WITH_REXW | REPE, X64_IMPLICIT}},

	FLD: {
		{"fp", op{0xD9, 0xC0}, nr, SHORT_ARG, FPU},
		{"md", op{0xD9}, 0, DEFAULT, FPU},
		{"mq", op{0xDD}, 0, DEFAULT, FPU},
		{"mp", op{0xDB}, 5, DEFAULT, FPU},
	},
	FST: {
		{"fp", op{0xDD, 0xD0}, nr, SHORT_ARG, FPU},
		{"md", op{0xD9}, 2, DEFAULT, FPU},
		{"mq", op{0xDD}, 2, DEFAULT, FPU},
	},
	FSTP: {
		{"fp", op{0xDD, 0xD8}, nr, SHORT_ARG, FPU},
		{"md", op{0xD9}, 3, DEFAULT, FPU},
		{"mq", op{0xDD}, 3, DEFAULT, FPU},
		{"mp", op{0xDB}, 7, DEFAULT, FPU},
	},
	FXCH: {
		{"", op{0xD9, 0xC9}, nr, DEFAULT, FPU},
		{"fp", op{0xD9, 0xC8}, nr, SHORT_ARG, FPU},
	},
	FADD: {
		{"md", op{0xD8}, 0, DEFAULT, FPU},
		{"mq", op{0xDC}, 0, DEFAULT, FPU},
		{"Xpfp", op{0xD8, 0xC0}, nr, SHORT_ARG, FPU},
		{"fpXp", op{0xDC, 0xC0}, nr, SHORT_ARG, FPU},
	},
	FMUL: {
		{"md", op{0xD8}, 1, DEFAULT, FPU},
		{"mq", op{0xDC}, 1, DEFAULT, FPU},
		{"Xpfp", op{0xD8, 0xC8}, nr, SHORT_ARG, FPU},
		{"fpXp", op{0xDC, 0xC8}, nr, SHORT_ARG, FPU},
	},
	FSUB: {
		{"md", op{0xD8}, 4, DEFAULT, FPU},
		{"mq", op{0xDC}, 4, DEFAULT, FPU},
		{"Xpfp", op{0xD8, 0xE0}, nr, SHORT_ARG, FPU},
		{"fpXp", op{0xDC, 0xE8}, nr, SHORT_ARG, FPU},
	},
	FDIV: {
		{"md", op{0xD8}, 6, DEFAULT, FPU},
		{"mq", op{0xDC}, 6, DEFAULT, FPU},
		{"Xpfp", op{0xD8, 0xF0}, nr, SHORT_ARG, FPU},
		{"fpXp", op{0xDC, 0xF8}, nr, SHORT_ARG, FPU},
	},
	FADDP: {
		{"", op{0xDE, 0xC1}, nr, DEFAULT, FPU},
		{"fpXp", op{0xDE, 0xC0}, nr, SHORT_ARG, FPU},
	},
	FMULP: {
		{"", op{0xDE, 0xC9}, nr, DEFAULT, FPU},
		{"fpXp", op{0xDE, 0xC8}, nr, SHORT_ARG, FPU},
	},
	FSUBP: {
		{"", op{0xDE, 0xE9}, nr, DEFAULT, FPU},
		{"fpXp", op{0xDE, 0xE8}, nr, SHORT_ARG, FPU},
	},
	FDIVP: {
		{"", op{0xDE, 0xF9}, nr, DEFAULT, FPU},
		{"fpXp", op{0xDE, 0xF8}, nr, SHORT_ARG, FPU},
	},
	FLDZ:  {{"", op{0xD9, 0xEE}, nr, DEFAULT, FPU}},
	FLD1:  {{"", op{0xD9, 0xE8}, nr, DEFAULT, FPU}},
	FCHS:  {{"", op{0xD9, 0xE0}, nr, DEFAULT, FPU}},
	FABS:  {{"", op{0xD9, 0xE1}, nr, DEFAULT, FPU}},
	FWAIT: {{"", op{0x9B}, nr, DEFAULT, FPU}},
}
