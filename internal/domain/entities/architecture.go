package entities

import (
	"fmt"
	"runtime"
	"strings"
)

// Architecture represents host bitness plus the asset-filename keywords
// used to pick matching release assets.
type Architecture struct {
	Name     string
	Keywords []string
}

// The two architectures the inventory scanner distinguishes
var (
	ArchX64 = Architecture{
		Name:     "x64",
		Keywords: []string{"x64", "amd64", "64-bit"},
	}
	ArchX86 = Architecture{
		Name:     "x86",
		Keywords: []string{"x86", "32-bit", "win32", "i386"},
	}
)

// DetectArchitecture reads host bitness. Cheap and idempotent; callers
// detect once per run and treat the result as read-only.
func DetectArchitecture() Architecture {
	switch runtime.GOARCH {
	case "386", "arm":
		return ArchX86
	default:
		return ArchX64
	}
}

// ParseArchitecture parses a user-supplied architecture override
func ParseArchitecture(s string) (Architecture, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x64", "amd64", "64":
		return ArchX64, nil
	case "x86", "386", "32":
		return ArchX86, nil
	default:
		return Architecture{}, fmt.Errorf("unknown architecture: %s (expected x64 or x86)", s)
	}
}

// MatchesAsset reports whether a release asset filename contains any of
// the architecture's keywords.
func (a Architecture) MatchesAsset(filename string) bool {
	lower := strings.ToLower(filename)
	for _, kw := range a.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
