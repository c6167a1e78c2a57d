package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Loader extracts the bundled native libraries and loads the primary one into
// the process. The zero value reads the embedded bundle, extracts under the
// OS temp root and logs through the standard logrus logger; all three can be
// substituted before the first EnsureLoaded call.
type Loader struct {
	// Resources is the logical resource namespace the bundle is read from.
	// Paths look like "linux-x86_64/libmilvus-storage-jni.so".
	Resources fs.FS

	// ScratchDir overrides the directory libraries are extracted into.
	ScratchDir string

	// Log overrides the logger used for progress reporting.
	Log *logrus.Logger

	// OS loader seams, stubbed in tests.
	openLibrary       func(path string) (uintptr, error)
	openSystemLibrary func(name string) (uintptr, error)

	mu     sync.Mutex
	loaded atomic.Bool
	handle uintptr

	cleanupMu sync.Mutex
	cleanup   []string
}

func (l *Loader) resources() fs.FS {
	if l.Resources != nil {
		return l.Resources
	}
	return bundledResources()
}

func (l *Loader) log() *logrus.Logger {
	if l.Log != nil {
		return l.Log
	}
	return logrus.StandardLogger()
}

// EnsureLoaded loads the native library if it has not been loaded yet.
// Callers racing on the first load serialize here; whoever runs the pipeline
// commits the loaded state only on success, so a failed attempt can be
// retried by calling again.
func (l *Loader) EnsureLoaded() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded.Load() {
		return nil
	}
	handle, err := l.load()
	if err != nil {
		return err
	}
	l.handle = handle
	l.loaded.Store(true)
	return nil
}

// IsLoaded reports whether the native library has been loaded.
func (l *Loader) IsLoaded() bool {
	return l.loaded.Load()
}

// Handle returns the OS handle of the loaded library, or 0 before a
// successful EnsureLoaded.
func (l *Loader) Handle() uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handle
}

// load runs the two-stage strategy: extracted bundle first, then the system
// library search path.
func (l *Loader) load() (uintptr, error) {
	handle, resErr := l.loadFromResources()
	if resErr == nil {
		l.log().Info("milvus-storage native libraries loaded from bundle")
		return handle, nil
	}
	l.log().WithError(resErr).Warn("could not load native libraries from bundle, trying system path")

	handle, sysErr := l.openSystem(primaryLibrary)
	if sysErr != nil {
		return 0, &LibraryLoadError{Library: primaryLibrary, Err: errors.Join(resErr, sysErr)}
	}
	l.log().Info("milvus-storage native library loaded from system path")
	return handle, nil
}

func (l *Loader) loadFromResources() (uintptr, error) {
	p := DetectPlatform()
	dir := l.scratchDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrScratchDirUnavailable, err)
	}
	if err := l.extractAll(p.ResourceDir(), p.Ext); err != nil {
		return 0, err
	}

	// Dependencies extracted above are found relative to the primary library
	// through its embedded RPATH; only the primary file itself is mandatory.
	primary := filepath.Join(dir, "lib"+primaryLibrary+"."+p.Ext)
	if _, err := os.Stat(primary); err != nil {
		return 0, fmt.Errorf("%w: bundle has no %s", ErrResourceLoadFailed, filepath.Base(primary))
	}
	return l.openFile(primary)
}

func (l *Loader) openFile(path string) (uintptr, error) {
	if l.openLibrary != nil {
		return l.openLibrary(path)
	}
	return dlopenPath(path)
}

func (l *Loader) openSystem(name string) (uintptr, error) {
	if l.openSystemLibrary != nil {
		return l.openSystemLibrary(name)
	}
	return dlopenSystem(name)
}

var defaultLoader Loader

// EnsureLoaded loads the native library through the default loader.
func EnsureLoaded() error { return defaultLoader.EnsureLoaded() }

// IsLoaded reports whether the default loader has loaded the native library.
func IsLoaded() bool { return defaultLoader.IsLoaded() }

// Handle returns the default loader's library handle, or 0.
func Handle() uintptr { return defaultLoader.Handle() }

// Cleanup removes the files extracted by the default loader, best effort.
func Cleanup() { defaultLoader.Cleanup() }
