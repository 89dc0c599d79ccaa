package vector

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/pdok/zcurve/zcurve"
)

// Backend selects how the 8-lane operations are carried out.
type Backend uint8

const (
	// BackendDetect picks a backend from the environment variable
	// ZCURVE_VECTOR_BACKEND and the detected CPU features.
	BackendDetect Backend = iota

	// BackendScalar runs 8 sequential scalar calls per group. It works everywhere.
	BackendScalar

	// BackendLanes runs on fixed-size lane arrays the compiler can turn
	// into 128-bit instructions.
	BackendLanes
)

const backendEnvVar = "ZCURVE_VECTOR_BACKEND"

var backendNames = map[Backend]string{
	BackendDetect: "detect",
	BackendScalar: "scalar",
	BackendLanes:  "lanes",
}

func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Backend(%d)", uint8(b))
}

// ParseBackend accepts the names printed by String, and an empty string for detect.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "detect", "auto":
		return BackendDetect, nil
	case "scalar", "none":
		return BackendScalar, nil
	case "lanes", "simd":
		return BackendLanes, nil
	}
	return BackendDetect, fmt.Errorf("unknown vector backend %q: %w", s, zcurve.ErrUnsupportedVariant)
}

// backendFromCPUFeatures reports BackendLanes when the CPU has 128-bit
// integer vectors the compiler targets, BackendScalar otherwise.
func backendFromCPUFeatures() Backend {
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasSSE2 {
			return BackendLanes
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			return BackendLanes
		}
	}
	return BackendScalar
}

// DetectBackend detects the backend to use based on both the CPU and the
// ZCURVE_VECTOR_BACKEND environment variable, which overrides the detection.
func DetectBackend() Backend {
	if value, ok := os.LookupEnv(backendEnvVar); ok {
		if b, err := ParseBackend(value); err == nil && b != BackendDetect {
			return b
		}
	}
	return backendFromCPUFeatures()
}

// Resolve turns BackendDetect into a concrete backend and leaves the others as is.
func (b Backend) Resolve() Backend {
	if b == BackendDetect {
		return DetectBackend()
	}
	return b
}

func (b Backend) kernel() kernel {
	if b.Resolve() == BackendLanes {
		return lanesKernel{}
	}
	return scalarKernel{}
}
