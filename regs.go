package x64

// Register families
const (
	REG_LEGACY   = iota
	REG_RIP      // IP, EIP, RIP
	REG_HIGHBYTE // AH, CH, DH, BH
	REG_FP
	REG_SEGMENT
	REG_CONTROL
	REG_DEBUG
)

// RegArg represents any register.
type RegArg interface {
	Arg
	isReg()
}

func isReg(arg Arg) bool {
	_, ok := arg.(RegArg)
	return ok
}

// Reg is a register argument with a specific width and family. All registers have a number
// which distinguishes them within their family, with the exception of the IP/EIP/RIP registers.
//
// 	[0..3] bits hold the 4-bit hardware code
// 	[8..15] bits identify the family
// 	[16..20] bits specify the width in bytes
//
// Reg implements RegArg.
type Reg uint32

var _ RegArg = Reg(0)

func (r Reg) isArg() {}
func (r Reg) isReg() {}

// Get the family for the register.
//
// If the register is valid, the return value will be REG_LEGACY, REG_RIP, REG_HIGHBYTE, REG_FP,
// REG_SEGMENT, REG_CONTROL, or REG_DEBUG.
func (r Reg) Family() uint8 { return uint8(r >> 8) }

// Get the number which distinguishes the register within its family. The IP/EIP/RIP registers
// have no meaningful number, so they will return 0.
func (r Reg) Num() uint8 { return uint8(r) & 0xf }

// Get the 4-bit hardware code for the register. The high-byte registers AH, CH, DH and BH share
// codes 4-7 with SPL, BPL, SIL and DIL; the two sets are told apart by the presence of a REX prefix.
func (r Reg) Code() uint8 { return r.Num() }

// Get the width of the register in bytes.
func (r Reg) Width() uint8 { return r.width() }
func (r Reg) width() uint8 { return uint8(r>>16) & 0x1f }

// Check if the register is numbered 8 or higher. The IP/EIP/RIP registers have no meaningful number,
// so they will return false.
func (r Reg) IsExtended() bool { return r.Num() > 7 }

// Check if encoding the register requires one of the REX.R, REX.X or REX.B extension bits.
func (r Reg) RequiresRexExtension() bool { return r.IsExtended() }

// Check if the register can only be addressed when a REX prefix is present, even though its code
// is below 8. This is true for SPL, BPL, SIL and DIL only.
func (r Reg) ForcesRex() bool {
	return r.Family() == REG_LEGACY && r.width() == 1 && r.Num() >= 4 && r.Num() <= 7
}

// Check if the register is a general-purpose register which may be encoded as the index of a
// memory operand. RSP/ESP share the "no index" code and can never be an index.
func (r Reg) CanIndex() bool {
	return r.Family() == REG_LEGACY && (r.width() == 4 || r.width() == 8) && r.Num() != 4
}

func (r Reg) isSet() bool { return r != 0 }

// Get the name of the register, e.g. "rax" or "r12b".
func (r Reg) String() string {
	if r == 0 {
		return "<none>"
	}
	n := r.Num()
	switch r.Family() {
	case REG_LEGACY:
		switch r.width() {
		case 1:
			return regNames8[n]
		case 2:
			return regNames16[n]
		case 4:
			return regNames32[n]
		case 8:
			return regNames64[n]
		}
	case REG_HIGHBYTE:
		if n >= 4 {
			return regNamesHigh[n-4]
		}
	case REG_RIP:
		switch r.width() {
		case 2:
			return "ip"
		case 4:
			return "eip"
		case 8:
			return "rip"
		}
	case REG_FP:
		if n < 8 {
			return "st" + string('0'+rune(n))
		}
	case REG_SEGMENT:
		if n < 6 {
			return regNamesSeg[n]
		}
	case REG_CONTROL:
		return "cr" + decimal(n)
	case REG_DEBUG:
		return "dr" + decimal(n)
	}
	return "<invalid>"
}

func decimal(n uint8) string {
	if n < 10 {
		return string('0' + rune(n))
	}
	return "1" + string('0'+rune(n-10))
}

var regNames8 = [16]string{"al", "cl", "dl", "bl", "spl", "bpl", "sil", "dil", "r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b"}
var regNames16 = [16]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di", "r8w", "r9w", "r10w", "r11w", "r12w", "r13w", "r14w", "r15w"}
var regNames32 = [16]string{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi", "r8d", "r9d", "r10d", "r11d", "r12d", "r13d", "r14d", "r15d"}
var regNames64 = [16]string{"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi", "r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15"}
var regNamesHigh = [4]string{"ah", "ch", "dh", "bh"}
var regNamesSeg = [6]string{"es", "cs", "ss", "ds", "fs", "gs"}

// Registers
const (
	// 8-bit (high byte of the first four legacy registers; unavailable when a REX prefix is present)
	AH Reg = Reg(1<<16 | REG_HIGHBYTE<<8 | 4)
	CH Reg = Reg(1<<16 | REG_HIGHBYTE<<8 | 5)
	DH Reg = Reg(1<<16 | REG_HIGHBYTE<<8 | 6)
	BH Reg = Reg(1<<16 | REG_HIGHBYTE<<8 | 7)

	// 8-bit
	AL   Reg = Reg(1<<16 | REG_LEGACY<<8 | 0)
	CL   Reg = Reg(1<<16 | REG_LEGACY<<8 | 1)
	DL   Reg = Reg(1<<16 | REG_LEGACY<<8 | 2)
	BL   Reg = Reg(1<<16 | REG_LEGACY<<8 | 3)
	SPL  Reg = Reg(1<<16 | REG_LEGACY<<8 | 4)
	BPL  Reg = Reg(1<<16 | REG_LEGACY<<8 | 5)
	SIL  Reg = Reg(1<<16 | REG_LEGACY<<8 | 6)
	DIL  Reg = Reg(1<<16 | REG_LEGACY<<8 | 7)
	R8B  Reg = Reg(1<<16 | REG_LEGACY<<8 | 8)
	R9B  Reg = Reg(1<<16 | REG_LEGACY<<8 | 9)
	R10B Reg = Reg(1<<16 | REG_LEGACY<<8 | 10)
	R11B Reg = Reg(1<<16 | REG_LEGACY<<8 | 11)
	R12B Reg = Reg(1<<16 | REG_LEGACY<<8 | 12)
	R13B Reg = Reg(1<<16 | REG_LEGACY<<8 | 13)
	R14B Reg = Reg(1<<16 | REG_LEGACY<<8 | 14)
	R15B Reg = Reg(1<<16 | REG_LEGACY<<8 | 15)

	// 16-bit
	AX   Reg = Reg(2<<16 | REG_LEGACY<<8 | 0)
	CX   Reg = Reg(2<<16 | REG_LEGACY<<8 | 1)
	DX   Reg = Reg(2<<16 | REG_LEGACY<<8 | 2)
	BX   Reg = Reg(2<<16 | REG_LEGACY<<8 | 3)
	SP   Reg = Reg(2<<16 | REG_LEGACY<<8 | 4)
	BP   Reg = Reg(2<<16 | REG_LEGACY<<8 | 5)
	SI   Reg = Reg(2<<16 | REG_LEGACY<<8 | 6)
	DI   Reg = Reg(2<<16 | REG_LEGACY<<8 | 7)
	R8W  Reg = Reg(2<<16 | REG_LEGACY<<8 | 8)
	R9W  Reg = Reg(2<<16 | REG_LEGACY<<8 | 9)
	R10W Reg = Reg(2<<16 | REG_LEGACY<<8 | 10)
	R11W Reg = Reg(2<<16 | REG_LEGACY<<8 | 11)
	R12W Reg = Reg(2<<16 | REG_LEGACY<<8 | 12)
	R13W Reg = Reg(2<<16 | REG_LEGACY<<8 | 13)
	R14W Reg = Reg(2<<16 | REG_LEGACY<<8 | 14)
	R15W Reg = Reg(2<<16 | REG_LEGACY<<8 | 15)

	// 32-bit
	EAX  Reg = Reg(4<<16 | REG_LEGACY<<8 | 0)
	ECX  Reg = Reg(4<<16 | REG_LEGACY<<8 | 1)
	EDX  Reg = Reg(4<<16 | REG_LEGACY<<8 | 2)
	EBX  Reg = Reg(4<<16 | REG_LEGACY<<8 | 3)
	ESP  Reg = Reg(4<<16 | REG_LEGACY<<8 | 4)
	EBP  Reg = Reg(4<<16 | REG_LEGACY<<8 | 5)
	ESI  Reg = Reg(4<<16 | REG_LEGACY<<8 | 6)
	EDI  Reg = Reg(4<<16 | REG_LEGACY<<8 | 7)
	R8D  Reg = Reg(4<<16 | REG_LEGACY<<8 | 8)
	R9D  Reg = Reg(4<<16 | REG_LEGACY<<8 | 9)
	R10D Reg = Reg(4<<16 | REG_LEGACY<<8 | 10)
	R11D Reg = Reg(4<<16 | REG_LEGACY<<8 | 11)
	R12D Reg = Reg(4<<16 | REG_LEGACY<<8 | 12)
	R13D Reg = Reg(4<<16 | REG_LEGACY<<8 | 13)
	R14D Reg = Reg(4<<16 | REG_LEGACY<<8 | 14)
	R15D Reg = Reg(4<<16 | REG_LEGACY<<8 | 15)

	// 64-bit
	RAX Reg = Reg(8<<16 | REG_LEGACY<<8 | 0)
	RCX Reg = Reg(8<<16 | REG_LEGACY<<8 | 1)
	RDX Reg = Reg(8<<16 | REG_LEGACY<<8 | 2)
	RBX Reg = Reg(8<<16 | REG_LEGACY<<8 | 3)
	RSP Reg = Reg(8<<16 | REG_LEGACY<<8 | 4)
	RBP Reg = Reg(8<<16 | REG_LEGACY<<8 | 5)
	RSI Reg = Reg(8<<16 | REG_LEGACY<<8 | 6)
	RDI Reg = Reg(8<<16 | REG_LEGACY<<8 | 7)
	R8  Reg = Reg(8<<16 | REG_LEGACY<<8 | 8)
	R9  Reg = Reg(8<<16 | REG_LEGACY<<8 | 9)
	R10 Reg = Reg(8<<16 | REG_LEGACY<<8 | 10)
	R11 Reg = Reg(8<<16 | REG_LEGACY<<8 | 11)
	R12 Reg = Reg(8<<16 | REG_LEGACY<<8 | 12)
	R13 Reg = Reg(8<<16 | REG_LEGACY<<8 | 13)
	R14 Reg = Reg(8<<16 | REG_LEGACY<<8 | 14)
	R15 Reg = Reg(8<<16 | REG_LEGACY<<8 | 15)

	// Instruction pointer. Only valid as the base of a memory operand.
	EIP Reg = Reg(4<<16 | REG_RIP<<8 | 0) // 32-bit
	RIP Reg = Reg(8<<16 | REG_RIP<<8 | 0) // 64-bit

	// 387 floating point stack registers.
	ST0 Reg = Reg(10<<16 | REG_FP<<8 | 0)
	ST1 Reg = Reg(10<<16 | REG_FP<<8 | 1)
	ST2 Reg = Reg(10<<16 | REG_FP<<8 | 2)
	ST3 Reg = Reg(10<<16 | REG_FP<<8 | 3)
	ST4 Reg = Reg(10<<16 | REG_FP<<8 | 4)
	ST5 Reg = Reg(10<<16 | REG_FP<<8 | 5)
	ST6 Reg = Reg(10<<16 | REG_FP<<8 | 6)
	ST7 Reg = Reg(10<<16 | REG_FP<<8 | 7)

	// Segment registers.
	ES Reg = Reg(2<<16 | REG_SEGMENT<<8 | 0)
	CS Reg = Reg(2<<16 | REG_SEGMENT<<8 | 1)
	SS Reg = Reg(2<<16 | REG_SEGMENT<<8 | 2)
	DS Reg = Reg(2<<16 | REG_SEGMENT<<8 | 3)
	FS Reg = Reg(2<<16 | REG_SEGMENT<<8 | 4)
	GS Reg = Reg(2<<16 | REG_SEGMENT<<8 | 5)

	// Control registers.
	CR0  Reg = Reg(8<<16 | REG_CONTROL<<8 | 0)
	CR1  Reg = Reg(8<<16 | REG_CONTROL<<8 | 1)
	CR2  Reg = Reg(8<<16 | REG_CONTROL<<8 | 2)
	CR3  Reg = Reg(8<<16 | REG_CONTROL<<8 | 3)
	CR4  Reg = Reg(8<<16 | REG_CONTROL<<8 | 4)
	CR5  Reg = Reg(8<<16 | REG_CONTROL<<8 | 5)
	CR6  Reg = Reg(8<<16 | REG_CONTROL<<8 | 6)
	CR7  Reg = Reg(8<<16 | REG_CONTROL<<8 | 7)
	CR8  Reg = Reg(8<<16 | REG_CONTROL<<8 | 8)
	CR9  Reg = Reg(8<<16 | REG_CONTROL<<8 | 9)
	CR10 Reg = Reg(8<<16 | REG_CONTROL<<8 | 10)
	CR11 Reg = Reg(8<<16 | REG_CONTROL<<8 | 11)
	CR12 Reg = Reg(8<<16 | REG_CONTROL<<8 | 12)
	CR13 Reg = Reg(8<<16 | REG_CONTROL<<8 | 13)
	CR14 Reg = Reg(8<<16 | REG_CONTROL<<8 | 14)
	CR15 Reg = Reg(8<<16 | REG_CONTROL<<8 | 15)

	// Debug registers.
	DR0  Reg = Reg(8<<16 | REG_DEBUG<<8 | 0)
	DR1  Reg = Reg(8<<16 | REG_DEBUG<<8 | 1)
	DR2  Reg = Reg(8<<16 | REG_DEBUG<<8 | 2)
	DR3  Reg = Reg(8<<16 | REG_DEBUG<<8 | 3)
	DR4  Reg = Reg(8<<16 | REG_DEBUG<<8 | 4)
	DR5  Reg = Reg(8<<16 | REG_DEBUG<<8 | 5)
	DR6  Reg = Reg(8<<16 | REG_DEBUG<<8 | 6)
	DR7  Reg = Reg(8<<16 | REG_DEBUG<<8 | 7)
	DR8  Reg = Reg(8<<16 | REG_DEBUG<<8 | 8)
	DR9  Reg = Reg(8<<16 | REG_DEBUG<<8 | 9)
	DR10 Reg = Reg(8<<16 | REG_DEBUG<<8 | 10)
	DR11 Reg = Reg(8<<16 | REG_DEBUG<<8 | 11)
	DR12 Reg = Reg(8<<16 | REG_DEBUG<<8 | 12)
	DR13 Reg = Reg(8<<16 | REG_DEBUG<<8 | 13)
	DR14 Reg = Reg(8<<16 | REG_DEBUG<<8 | 14)
	DR15 Reg = Reg(8<<16 | REG_DEBUG<<8 | 15)
)

// Get every register defined by the package, grouped by family and ordered by code.
func AllRegs() []Reg {
	regs := make([]Reg, 0, 160)
	for _, w := range [...]Reg{1, 2, 4, 8} {
		for n := Reg(0); n < 16; n++ {
			regs = append(regs, w<<16|REG_LEGACY<<8|n)
		}
	}
	regs = append(regs, AH, CH, DH, BH, EIP, RIP)
	for n := Reg(0); n < 8; n++ {
		regs = append(regs, ST0+n)
	}
	for n := Reg(0); n < 6; n++ {
		regs = append(regs, ES+n)
	}
	for n := Reg(0); n < 16; n++ {
		regs = append(regs, CR0+n)
	}
	for n := Reg(0); n < 16; n++ {
		regs = append(regs, DR0+n)
	}
	return regs
}
