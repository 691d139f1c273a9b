//go:build linux

package spawner

import "golang.org/x/sys/unix"

// linuxArgMaxCeiling mirrors the kernel's own ceiling on ARG_MAX
// (_STK_LIM / 4, capped at 8MiB on modern Linux); we use it as the
// upper bound when deriving an estimate from RLIMIT_STACK.
const linuxArgMaxCeiling = 8 * 1024 * 1024

// platformMaxArgvBytes estimates ARG_MAX the way the Linux kernel
// derives it: a quarter of the stack rlimit, capped at
// linuxArgMaxCeiling, floored at DefaultMaxArgvBytes. There is no
// portable sysconf(_SC_ARG_MAX) in golang.org/x/sys/unix on Linux, so
// RLIMIT_STACK via Getrlimit is the closest available signal.
func platformMaxArgvBytes() int {
	var rlim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_STACK, &rlim); err != nil {
		return DefaultMaxArgvBytes
	}
	quarter := rlim.Cur / 4
	if quarter == 0 || quarter > linuxArgMaxCeiling {
		quarter = linuxArgMaxCeiling
	}
	if int(quarter) < DefaultMaxArgvBytes {
		return DefaultMaxArgvBytes
	}
	return int(quarter)
}
