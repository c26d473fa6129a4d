package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bpfasm/bpf"
)

func runCmd(t *testing.T, args ...string) (stdout []byte, err error) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err = cmd.Execute()
	stdout = out.Bytes()
	return
}

func writeTemp(t *testing.T, name, text string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBpfasm(t *testing.T) {
	assert := assert.New(t)

	path := writeTemp(t, "prog.asm", "add r1, #5\nmov r2, r1\nexit\n")

	out, err := runCmd(t, path)
	assert.NoError(err)
	assert.Equal(24, len(out))
	assert.Equal([]byte{0x07, 0x01, 0, 0, 5, 0, 0, 0}, out[0:8])
	assert.Equal([]byte{0xbf, 0x12, 0, 0, 0, 0, 0, 0}, out[8:16])
	assert.Equal([]byte{0x95, 0, 0, 0, 0, 0, 0, 0}, out[16:24])
}

func TestBpfasm_OutputFile(t *testing.T) {
	assert := assert.New(t)

	path := writeTemp(t, "prog.asm", "call #$(SYS + 1)\n")
	bin := filepath.Join(t.TempDir(), "prog.bin")

	out, err := runCmd(t, "-D", "SYS=6", "-o", bin, path)
	assert.NoError(err)
	assert.Empty(out)

	data, err := os.ReadFile(bin)
	assert.NoError(err)
	assert.Equal([]byte{0x85, 0, 0, 0, 7, 0, 0, 0}, data)
}

func TestBpfasm_Errors(t *testing.T) {
	assert := assert.New(t)

	// A missing argument still shows usage.
	out, err := runCmd(t)
	assert.Error(err)
	assert.Contains(string(out), "Usage:")

	path := writeTemp(t, "bad.asm", "exit\nfrobnicate r1\n")
	out, err = runCmd(t, path)
	assert.Empty(out)
	var asmErr *bpf.ErrAssembly
	if assert.True(errors.As(err, &asmErr)) {
		assert.Equal(2, asmErr.LineNo)
		assert.ErrorIs(err, bpf.ErrMnemonicUnknown)
	}

	_, err = runCmd(t, "-D", "NOVALUE", path)
	assert.Error(err)

	_, err = runCmd(t, filepath.Join(t.TempDir(), "missing.asm"))
	assert.ErrorIs(err, os.ErrNotExist)
}
