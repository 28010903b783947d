//go:build windows

package signals

import (
	"syscall"
)

// x/sys/windows does not export the C runtime signal numbers, syscall does.
var fatalSignals = []hooked{
	{syscall.SIGABRT, "abort", "Software requested abort."},
	{syscall.SIGSEGV, "segfault", "Segmentation fault."},
	{syscall.SIGILL, "illegal instruction", "Illegal instruction."},
	{syscall.SIGFPE, "floating-point exception", "Floating-point exception."},
}
