//go:build arm64

package kernels

import "golang.org/x/sys/cpu"

// ASIMD (NEON) is architecturally guaranteed on ARM64; the check is kept for
// symmetry with the amd64 path.
var hasNEON = cpu.ARM64.HasASIMD

// HasWideSIMD reports whether this CPU has vector units wide enough for the
// 8-lane chunk kernels to pay off.
func HasWideSIMD() bool {
	return hasNEON
}
