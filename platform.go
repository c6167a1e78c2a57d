package storage

import (
	"runtime"
	"strings"
)

// Platform identifies the OS family and CPU architecture the process runs on,
// in the vocabulary the native bundle is laid out with.
type Platform struct {
	OS   string // "windows", "darwin" or "linux"
	Arch string // "x86", "x86_64" or "aarch64"
	Ext  string // native shared library extension, without the dot
}

// ResourceDir returns the bundle directory for this platform, e.g. "linux-x86_64".
func (p Platform) ResourceDir() string {
	return p.OS + "-" + p.Arch
}

// resolvePlatform classifies raw OS and architecture strings into a Platform.
// Matching is case-insensitive substring matching; anything unrecognized is
// treated as linux/x86_64, never an error.
func resolvePlatform(osName, arch string) Platform {
	osName = strings.ToLower(osName)
	arch = strings.ToLower(arch)

	switch {
	case strings.Contains(osName, "windows"):
		p := Platform{OS: "windows", Ext: "dll", Arch: "x86"}
		if strings.Contains(arch, "64") {
			p.Arch = "x86_64"
		}
		return p
	case strings.Contains(osName, "mac"), strings.Contains(osName, "darwin"):
		p := Platform{OS: "darwin", Ext: "dylib", Arch: "x86_64"}
		if strings.Contains(arch, "aarch64") || strings.Contains(arch, "arm64") {
			p.Arch = "aarch64"
		}
		return p
	default:
		p := Platform{OS: "linux", Ext: "so", Arch: "x86_64"}
		if strings.Contains(arch, "aarch64") || strings.Contains(arch, "arm64") {
			p.Arch = "aarch64"
		}
		return p
	}
}

// DetectPlatform resolves the Platform of the running process.
func DetectPlatform() Platform {
	return resolvePlatform(runtime.GOOS, runtime.GOARCH)
}
