// Package procmem locates processes and reads their memory on Linux.
//
// It finds processes by comm name, resolves module base addresses from
// /proc/<pid>/maps, and reads remote memory with process_vm_readv. The
// caller needs ptrace rights over the target (same user, or
// CAP_SYS_PTRACE).
package procmem
