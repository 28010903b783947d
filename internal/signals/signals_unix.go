//go:build unix

package signals

import (
	"golang.org/x/sys/unix"
)

var fatalSignals = []hooked{
	{unix.SIGABRT, "abort", "Software requested abort."},
	{unix.SIGSEGV, "segfault", "Segmentation fault."},
	{unix.SIGILL, "illegal instruction", "Illegal instruction."},
	{unix.SIGFPE, "floating-point exception", "Floating-point exception."},
}
