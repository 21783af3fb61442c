package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRegs(t *testing.T) {
	out, err := run(t, "regs")
	require.NoError(t, err)
	for _, name := range []string{"rax", "r15b", "spl", "ah", "st7", "gs", "cr8", "dr7", "rip"} {
		assert.Contains(t, out, name)
	}

	out, err = run(t, "regs", "--family", "segment")
	require.NoError(t, err)
	assert.Contains(t, out, "fs")
	assert.NotContains(t, out, "rax")

	_, err = run(t, "regs", "--family", "vector")
	require.Error(t, err)
}

func TestConds(t *testing.T) {
	out, err := run(t, "conds")
	require.NoError(t, err)
	assert.Contains(t, out, "nae")
	assert.Contains(t, out, "0xf")
}

func TestForms(t *testing.T) {
	out, err := run(t, "forms", "adc", "crc32")
	require.NoError(t, err)
	assert.Contains(t, out, "ADC")
	assert.Contains(t, out, "imm8")
	assert.Contains(t, out, "0F 38 F0 /r")
	assert.Contains(t, out, "CRC32")
	assert.Contains(t, out, "SSE42")

	_, err = run(t, "forms", "bogus")
	require.Error(t, err)

	_, err = run(t, "forms")
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	out, err := run(t, "nop", "3")
	require.NoError(t, err)
	assert.Equal(t, "0f 1f 00\n", out)

	out, err = run(t, "nop", "11")
	require.NoError(t, err)
	assert.Equal(t, "66 0f 1f 84 00 00 00 00 00 66 90\n", out)

	_, err = run(t, "nop", "x")
	require.Error(t, err)
}

func TestSum(t *testing.T) {
	out, err := run(t, "sum", "--dry-run", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "48 01 d8 c3\n", out)

	if runtime.GOARCH == "amd64" && runtime.GOOS == "linux" {
		out, err = run(t, "sum", "40", "2")
		require.NoError(t, err)
		assert.Equal(t, "42", strings.TrimSpace(out))
	}

	_, err = run(t, "sum", "1")
	require.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "conds")
	require.Error(t, err)

	t.Setenv(logLevelEnv, "debug")
	_, err = run(t, "conds")
	require.NoError(t, err)
}

func TestDisasm(t *testing.T) {
	out, err := run(t, "disasm", "48 01 d8", "c3")
	require.NoError(t, err)
	assert.Contains(t, out, "add rax, rbx")
	assert.Contains(t, out, "48 01 d8")
	assert.Contains(t, out, "ret")

	out, err = run(t, "disasm", "--pc", "0x1000", "ebfe")
	require.NoError(t, err)
	assert.Contains(t, out, "jmp 0x1000")

	out, err = run(t, "nop", "--disasm", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "nop")
	assert.Contains(t, out, "0x9")

	_, err = run(t, "disasm", "zz")
	require.Error(t, err)
	_, err = run(t, "disasm", "0f")
	require.Error(t, err)
}
