//go:build windows

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

func dlopenPath(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

// dlopenSystem resolves a library by bare name: first through the default
// DLL search order, then by scanning PATH and the working directory.
func dlopenSystem(name string) (uintptr, error) {
	fileName := name + ".dll"

	if handle, err := windows.LoadLibrary(fileName); err == nil {
		return uintptr(handle), nil
	}

	paths := strings.Split(os.Getenv("PATH"), ";")
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}
	for _, dir := range paths {
		if dir == "" {
			continue
		}
		full := filepath.Join(dir, fileName)
		if _, err := os.Stat(full); err != nil {
			continue
		}
		handle, err := windows.LoadLibrary(full)
		if err != nil {
			return 0, fmt.Errorf("failed to load library at %s: %w", full, err)
		}
		return uintptr(handle), nil
	}
	return 0, fmt.Errorf("%s not found in PATH or CWD", fileName)
}
