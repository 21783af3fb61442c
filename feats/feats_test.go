package feats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatureNames(t *testing.T) {
	require.Equal(t, "X64_IMPLICIT", X64_IMPLICIT.String())
	require.Equal(t, "SSE42", SSE42.String())
	require.Equal(t, "FPU|CMOV|ABM", (ABM | FPU | CMOV).String())
	require.Equal(t, "BMI1", FeatName(BMI1))

	f, ok := ByName("sse42")
	require.True(t, ok)
	require.Equal(t, SSE42, f)
	_, ok = ByName("AVX512")
	require.False(t, ok)

	for bit := FPU; bit <= BMI1; bit <<= 1 {
		require.Equal(t, bit, AllFeatures&bit)
	}
}
