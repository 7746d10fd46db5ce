//go:build amd64

package kernels

import "golang.org/x/sys/cpu"

// Wide-vector support flags. The batch kernels are plain Go either way; the
// flags report whether the hardware can actually retire the 8-lane chunks as
// vector operations, which is what makes the vector strategy worth selecting
// by default.
var (
	hasAVX2   = cpu.X86.HasAVX2
	hasAVX512 = cpu.X86.HasAVX512F
)

// HasWideSIMD reports whether this CPU has 256-bit (or wider) FMA-capable
// vector units.
func HasWideSIMD() bool {
	return hasAVX2 || hasAVX512
}
