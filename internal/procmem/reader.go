package procmem

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/sys/unix"
)

// Reader reads another process's memory with process_vm_readv. It holds no
// file descriptors; each read addresses the target process directly, so a
// Reader stays valid for as long as the process lives.
type Reader struct {
	pid int
}

// Open validates that pid exists and returns a reader for it.
func Open(pid int) (*Reader, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("invalid pid %d", pid)
	}
	if err := unix.Kill(pid, 0); err != nil {
		return nil, fmt.Errorf("process %d: %w", pid, err)
	}
	return &Reader{pid: pid}, nil
}

// Pid returns the target process ID.
func (r *Reader) Pid() int { return r.pid }

// Alive reports whether the target process still exists.
func (r *Reader) Alive() bool {
	return unix.Kill(r.pid, 0) == nil
}

// ReadBytes fills buf from the target process at addr.
func (r *Reader) ReadBytes(addr uint64, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	local := []unix.Iovec{{Base: &buf[0], Len: uint64(len(buf))}}
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(buf)}}
	n, err := unix.ProcessVMReadv(r.pid, local, remote, 0)
	if err != nil {
		return fmt.Errorf("read %#x from pid %d: %w", addr, r.pid, err)
	}
	if n != len(buf) {
		return fmt.Errorf("read %#x from pid %d: short read %d of %d bytes", addr, r.pid, n, len(buf))
	}
	return nil
}

// ReadPointer reads a 64-bit little-endian pointer at addr.
func (r *Reader) ReadPointer(addr uint64) (uint64, error) {
	return r.ReadUint64(addr)
}

// ReadUint64 reads a 64-bit little-endian integer at addr.
func (r *Reader) ReadUint64(addr uint64) (uint64, error) {
	var buf [8]byte
	if err := r.ReadBytes(addr, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadUint32 reads a 32-bit little-endian integer at addr.
func (r *Reader) ReadUint32(addr uint64) (uint32, error) {
	var buf [4]byte
	if err := r.ReadBytes(addr, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadFloat64 reads a 64-bit IEEE 754 value at addr.
func (r *Reader) ReadFloat64(addr uint64) (float64, error) {
	bits, err := r.ReadUint64(addr)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// ReadBool reads a single byte at addr, where any non-zero value is true.
func (r *Reader) ReadBool(addr uint64) (bool, error) {
	var buf [1]byte
	if err := r.ReadBytes(addr, buf[:]); err != nil {
		return false, err
	}
	return buf[0] != 0, nil
}
