//go:build !unix && !windows

package signals

// No fault signals on this platform; only panics reach the halt sequence.
var fatalSignals []hooked
