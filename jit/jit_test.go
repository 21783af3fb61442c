//go:build linux && amd64

package jit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wdamron/x64/v2"
)

func assembleSum(t *testing.T) []byte {
	t.Helper()
	// func(a, b int) int: a in RAX, b in RBX, result in RAX
	asm := x64.NewAssembler(nil)
	asm.Inst(x64.ADD, x64.RAX, x64.RBX)
	asm.Inst(x64.RET)
	require.NoError(t, asm.Err())
	return asm.Code()
}

func TestSetFunc(t *testing.T) {
	exec, err := Map(assembleSum(t))
	require.NoError(t, err)
	defer exec.Release()

	sum := (func(a, b int) int)(nil)
	require.NoError(t, SetFunc(&sum, exec))

	for i := -5; i <= 5; i++ {
		for j := -5; j <= 5; j++ {
			require.Equal(t, i+j, sum(i, j), "sum(%v, %v)", i, j)
		}
	}
}

func TestSetFuncInvalid(t *testing.T) {
	exec, err := Map([]byte{0xc3})
	require.NoError(t, err)
	require.Equal(t, 1, exec.Len())

	var notFunc int
	require.Error(t, SetFunc(&notFunc, exec))
	require.Error(t, SetFunc(nil, exec))
	fn := func() {}
	require.Error(t, SetFunc(fn, exec))

	require.NoError(t, exec.Release())
	require.ErrorIs(t, exec.Release(), ErrReleased)
	require.ErrorIs(t, SetFunc(&fn, exec), ErrReleased)
}

func TestMapEmpty(t *testing.T) {
	_, err := Map(nil)
	require.Error(t, err)
}
