//go:build unix

package main

import (
	"github.com/wdamron/x64/v2/jit"
)

func runSum(code []byte, a, b int) (int, error) {
	exec, err := jit.Map(code)
	if err != nil {
		return 0, err
	}
	defer exec.Release()

	sum := (func(a, b int) int)(nil)
	if err := jit.SetFunc(&sum, exec); err != nil {
		return 0, err
	}
	return sum(a, b), nil
}
