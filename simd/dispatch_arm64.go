//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func init() {
	// ARMv8-A always has ASIMD; the check keeps detection honest on emulators.
	level := DispatchScalar
	if cpu.ARM64.HasASIMD {
		level = DispatchNEON
	}
	// SVE vector length is implementation defined. The kernels only use it
	// to pick cache blocks, which match NEON cores of the same generation.
	if cpu.ARM64.HasSVE {
		level = DispatchSVE
	}
	setDetected(level)
}

func levelSupported(level DispatchLevel) bool {
	switch level {
	case DispatchScalar:
		return true
	case DispatchNEON:
		return detectedLevel == DispatchNEON || detectedLevel == DispatchSVE
	case DispatchSVE:
		return detectedLevel == DispatchSVE
	default:
		return false
	}
}
