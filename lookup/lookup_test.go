package x64lookup

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wdamron/x64/v2"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"mov", "MOV", "Mov"} {
		inst, ok := Inst(name)
		require.True(t, ok, "failed to find %s", name)
		require.Equal(t, x64.MOV, inst)
	}

	inst, ok := Inst("crc32")
	require.True(t, ok)
	require.Equal(t, x64.CRC32, inst)

	_, ok = Inst("")
	require.False(t, ok)
	_, ok = Inst("notaninstruction")
	require.False(t, ok)
	_, ok = Inst("movx")
	require.False(t, ok)
}

func TestLookupAll(t *testing.T) {
	for _, inst := range x64.AllInsts() {
		found, ok := Inst(inst.Name())
		require.True(t, ok, "failed to find %s", inst.Name())
		require.Equal(t, inst, found)
	}
}

func TestForms(t *testing.T) {
	forms, ok := Forms("adc")
	require.True(t, ok)
	require.NotEmpty(t, forms)
	for i, f := range forms {
		require.Equal(t, x64.ADC, f.Inst)
		require.Equal(t, i, f.Index)
	}

	_, ok = Forms("bogus")
	require.False(t, ok)
}
