package x64flags

// Flags
const (
	DEFAULT uint32 = 0 // this instruction has default encoding

	// note: the first 3 in this block are mutually exclusive
	AUTO_SIZE uint32 = 1 << iota // 16 bit -> OPSIZE , 32-bit -> None     , 64-bit -> REX.W
	AUTO_NO32                    // 16 bit -> OPSIZE , 32-bit -> illegal  , 64-bit -> None
	AUTO_REXW                    // 16 bit -> illegal, 32-bit -> None     , 64-bit -> REX.W
	WORD_SIZE                    // implies opsize prefix
	WITH_REXW                    // implies REX.W

	PREF_F2 // mandatory prefix (REPNE)
	PREF_F3 // mandatory prefix (REP)

	LOCK // user lock prefix is valid with this instruction
	REP  // user rep prefix is valid with this instruction
	REPE // user repe/repne prefixes are valid with this instruction

	SHORT_ARG // a register argument is encoded in the last byte of the opcode
	COND_OP   // a condition code is folded into the low 4 bits of the last opcode byte
	ENC_MR    // select alternate arg encoding
)

func FlagName(f uint32) string { return flagNames[f] }

// Get the names of every flag set in f, in bit order.
func FlagNames(f uint32) []string {
	var names []string
	for bit := AUTO_SIZE; bit <= ENC_MR; bit <<= 1 {
		if f&bit != 0 {
			names = append(names, flagNames[bit])
		}
	}
	return names
}

var flagNames = map[uint32]string{
	DEFAULT:   "DEFAULT",
	AUTO_SIZE: "AUTO_SIZE",
	AUTO_NO32: "AUTO_NO32",
	AUTO_REXW: "AUTO_REXW",
	WORD_SIZE: "WORD_SIZE",
	WITH_REXW: "WITH_REXW",
	PREF_F2:   "PREF_F2",
	PREF_F3:   "PREF_F3",
	LOCK:      "LOCK",
	REP:       "REP",
	REPE:      "REPE",
	SHORT_ARG: "SHORT_ARG",
	COND_OP:   "COND_OP",
	ENC_MR:    "ENC_MR",
}
