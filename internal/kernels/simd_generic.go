//go:build !amd64 && !arm64

package kernels

// HasWideSIMD reports false on platforms without a known wide vector unit;
// the engine then defaults to the scalar strategy.
func HasWideSIMD() bool {
	return false
}
