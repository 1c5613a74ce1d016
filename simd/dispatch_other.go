//go:build !amd64 && !arm64

package simd

func init() {
	// Other architectures use scalar blocking parameters for now.
	setDetected(DispatchScalar)
}

func levelSupported(level DispatchLevel) bool {
	return level == DispatchScalar
}
