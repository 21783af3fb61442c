package x64

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wdamron/x64/v2/feats"
	x64flags "github.com/wdamron/x64/v2/internal/flags"
)

func TestRegNames(t *testing.T) {
	for r, name := range map[Reg]string{
		AL:   "al",
		SIL:  "sil",
		R8B:  "r8b",
		AH:   "ah",
		BH:   "bh",
		R15W: "r15w",
		ESP:  "esp",
		R12D: "r12d",
		RAX:  "rax",
		R13:  "r13",
		RIP:  "rip",
		EIP:  "eip",
		ST0:  "st0",
		ST3:  "st3",
		FS:   "fs",
		CR8:  "cr8",
		CR15: "cr15",
		DR7:  "dr7",
		0:    "<none>",
	} {
		require.Equal(t, name, r.String())
	}
}

func TestRegProperties(t *testing.T) {
	require.EqualValues(t, 8, RAX.Width())
	require.EqualValues(t, 4, R9D.Width())
	require.EqualValues(t, 1, AH.Width())
	require.EqualValues(t, 10, ST7.Width())
	require.EqualValues(t, REG_HIGHBYTE, AH.Family())
	require.EqualValues(t, REG_RIP, RIP.Family())

	require.True(t, R8.IsExtended())
	require.True(t, R8.RequiresRexExtension())
	require.False(t, RDI.IsExtended())
	require.False(t, RIP.IsExtended())
	require.Equal(t, AH.Code(), SPL.Code())

	require.True(t, SPL.ForcesRex())
	require.True(t, DIL.ForcesRex())
	require.False(t, AH.ForcesRex())
	require.False(t, AL.ForcesRex())
	require.False(t, SP.ForcesRex())

	require.False(t, RSP.CanIndex())
	require.False(t, ESP.CanIndex())
	require.True(t, R12.CanIndex())
	require.False(t, AX.CanIndex())
	require.False(t, RIP.CanIndex())

	regs := AllRegs()
	seen := make(map[Reg]bool, len(regs))
	for _, r := range regs {
		require.False(t, seen[r], "duplicate register %v", r)
		seen[r] = true
		require.NotEqual(t, "<invalid>", r.String())
		require.LessOrEqual(t, r.Code(), uint8(15), "%v", r)
		require.Equal(t, r.Code() >= 8, r.RequiresRexExtension(), "%v", r)
	}
	require.True(t, seen[R15B] && seen[DR15] && seen[GS] && seen[ST7])
}

func TestConds(t *testing.T) {
	conds := AllConds()
	require.Len(t, conds, 16)
	for _, c := range conds {
		require.Equal(t, c, c.Invert().Invert())
		require.NotEqual(t, c, c.Invert())
		got, ok := CondByName(c.String())
		require.True(t, ok)
		require.Equal(t, c, got)
	}

	require.Equal(t, CondNE, CondE.Invert())
	require.Equal(t, CondGE, Invcc(CondL))
	require.Equal(t, "ae", CondNC.String())
	require.Equal(t, []string{"ae", "nb", "nc"}, CondAE.Aliases())
	require.Equal(t, []string{"b", "c", "nae"}, CondB.Aliases())
	require.Equal(t, "<invalid>", Cond(16).String())

	_, ok := CondByName("Z")
	require.False(t, ok)

	// conditions above 0xf never match
	_, err := Assemble(JCC, Cond(16), Rel8(0))
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestForms(t *testing.T) {
	names := make(map[string]Inst)
	var usedFlags uint32
	for _, inst := range AllInsts() {
		require.True(t, inst.Valid())
		require.NotEmpty(t, inst.Name())
		require.NotContains(t, names, inst.Name())
		names[inst.Name()] = inst

		forms := inst.Forms()
		require.NotEmpty(t, forms, "%s has no encodings", inst)
		for i, f := range forms {
			require.Equal(t, i, f.Index)
			require.Equal(t, inst, f.Inst)
			require.Zero(t, len(f.Pattern)%2, "%v", f)
			require.True(t, len(f.Opcode) >= 1 && len(f.Opcode) <= 3, "%v", f)
			require.LessOrEqual(t, len(f.Pattern)/2, 4, "%v", f)
			require.True(t, f.Reg >= -1 && f.Reg <= 7, "%v", f)
			usedFlags |= f.Flags
			for j := 0; j < len(f.Pattern); j += 2 {
				require.True(t, strings.IndexByte("ionmrvfscdABCDEFGHIJKLMNOPQRSTUVX", f.Pattern[j]) >= 0, "%v", f)
				require.True(t, strings.IndexByte("bwdqp*!", f.Pattern[j+1]) >= 0, "%v", f)
			}
		}
	}
	require.Len(t, AllInsts(), len(names))
	for bit := x64flags.AUTO_SIZE; bit <= x64flags.ENC_MR; bit <<= 1 {
		require.NotZero(t, usedFlags&bit, "no encoding uses %s", x64flags.FlagName(bit))
	}

	f := ADD.Forms()[3]
	require.Equal(t, "v*ib", f.Pattern)
	require.Equal(t, "r/m16/32/64, imm8", f.Operands())
	require.Equal(t, "83 /0", f.OpcodeString())
	require.Equal(t, "ADD r/m16/32/64, imm8 [83 /0]", f.String())
	require.Contains(t, f.FlagNames(), "LOCK")

	f = PUSH.Forms()[0]
	require.Equal(t, "50+r", f.OpcodeString())
	f = CRC32.Forms()[0]
	require.Equal(t, "0F 38 F0 /r", f.OpcodeString())
	require.Equal(t, feats.SSE42, f.Features)
	f = IMUL.Forms()[2]
	require.Equal(t, "0F AF /r", f.OpcodeString())
	f = JCC.Forms()[1]
	require.Equal(t, "0F 80+cc", f.OpcodeString())

	require.Empty(t, Inst(0).Forms())
	require.Equal(t, "Inst(9999)", Inst(9999).String())
}
