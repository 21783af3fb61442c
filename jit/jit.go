//go:build unix

// Package jit maps encoded x86-64 instructions into executable memory and exposes them as Go
// function values. Everything here is unsafe: the mapped code must follow the Go internal calling
// convention of the function type it is assigned to.
package jit

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ErrReleased is returned when an Exec is used after Release.
var ErrReleased = errors.New("Executable memory has been released")

// Exec is a read-only, executable mapping of machine code.
type Exec struct {
	mem  []byte // page-aligned mapping
	code []byte // mapped code, the first word is referenced by function values
}

// Map copies code into a new anonymous mapping and marks it read/execute.
func Map(code []byte) (*Exec, error) {
	if len(code) == 0 {
		return nil, fmt.Errorf("jit: empty code")
	}
	pageSize := os.Getpagesize()
	size := (len(code) + pageSize - 1) &^ (pageSize - 1)

	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("jit: mmap failed: %w", err)
	}
	copy(mem, code)
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		_ = unix.Munmap(mem)
		return nil, fmt.Errorf("jit: mprotect failed: %w", err)
	}
	return &Exec{mem: mem, code: mem[:len(code)]}, nil
}

// Len returns the number of mapped code bytes.
func (e *Exec) Len() int { return len(e.code) }

// Bytes returns the mapped code. The returned slice must not be written to.
func (e *Exec) Bytes() []byte { return e.code }

// Release unmaps the code. Function values assigned with SetFunc must not be called afterwards.
func (e *Exec) Release() error {
	if e.mem == nil {
		return ErrReleased
	}
	err := unix.Munmap(e.mem)
	e.mem, e.code = nil, nil
	if err != nil {
		return fmt.Errorf("jit: munmap failed: %w", err)
	}
	return nil
}

// SetFunc points the function value at fnPtr to the mapped code.
//
// fnPtr must be a pointer to a function value. e must stay reachable (and unreleased) for as long
// as the function value may be called.
func SetFunc(fnPtr any, e *Exec) error {
	// A func value points to a funcval, whose first word is the code pointer. The code slice
	// header in e stands in for the funcval.
	type interfaceHeader struct {
		typ  uintptr
		addr **[]byte
	}
	if e == nil || e.mem == nil {
		return ErrReleased
	}
	v := reflect.ValueOf(fnPtr)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() || !v.Elem().CanSet() || v.Elem().Kind() != reflect.Func {
		return fmt.Errorf("jit: destination for SetFunc must be a pointer to a function value, not %T", fnPtr)
	}
	header := *(*interfaceHeader)(unsafe.Pointer(&fnPtr))
	*header.addr = &e.code
	return nil
}
