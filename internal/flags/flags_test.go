package x64flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagNames(t *testing.T) {
	for bit := AUTO_SIZE; bit <= ENC_MR; bit <<= 1 {
		require.NotEmpty(t, FlagName(bit), "flag %#x has no name", bit)
	}
	require.Len(t, flagNames, 14)
	require.Equal(t, []string{"AUTO_SIZE", "LOCK", "ENC_MR"}, FlagNames(ENC_MR|AUTO_SIZE|LOCK))
	require.Empty(t, FlagNames(DEFAULT))
}
