//go:build linux || darwin

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ebitengine/purego"
)

// dlopenPath loads the shared library at an absolute path. RTLD_GLOBAL keeps
// its symbols visible to the dependent libraries extracted beside it.
func dlopenPath(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// dlopenSystem resolves a library by bare name: first through the dynamic
// loader's own search path, then by scanning LD_LIBRARY_PATH and the working
// directory explicitly.
func dlopenSystem(name string) (uintptr, error) {
	fileName := "lib" + name + "." + DetectPlatform().Ext

	if handle, err := purego.Dlopen(fileName, purego.RTLD_NOW|purego.RTLD_GLOBAL); err == nil {
		return handle, nil
	}

	paths := strings.Split(os.Getenv("LD_LIBRARY_PATH"), ":")
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
		handle, err := purego.Dlopen(full, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			return 0, fmt.Errorf("failed to load library at %s: %w", full, err)
		}
		return handle, nil
	}
	return 0, fmt.Errorf("%s not found in LD_LIBRARY_PATH or CWD", fileName)
}
