package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
)

// scratchDirName is the fixed directory under the OS temp root that extracted
// libraries are written into. It is shared by every process running these
// bindings; extraction always overwrites, so stale files from an older bundle
// are never loaded.
const scratchDirName = "milvus-storage-native"

// DefaultScratchDir returns the directory extracted libraries are written to
// when the Loader does not override it.
func DefaultScratchDir() string {
	return filepath.Join(os.TempDir(), scratchDirName)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func (l *Loader) scratchDir() string {
	if l.ScratchDir != "" {
		return l.ScratchDir
	}
	return DefaultScratchDir()
}

// extractResource copies the resource at the given logical path into the
// scratch directory under the resource's basename and returns the destination
// path. An existing destination is overwritten. The file is registered for
// best-effort removal via Cleanup.
func (l *Loader) extractResource(name string) (string, error) {
	src, err := l.resources().Open(name)
	if err != nil {
		if isNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrResourceNotFound, name)
		}
		return "", fmt.Errorf("open resource %s: %w", name, err)
	}
	defer src.Close()

	dest := filepath.Join(l.scratchDir(), path.Base(name))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrScratchDirUnavailable, err)
	}
	_, err = io.Copy(out, src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("%w: extracting %s: %v", ErrScratchDirUnavailable, name, err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(dest, 0o755); err != nil {
			return "", fmt.Errorf("%w: %v", ErrScratchDirUnavailable, err)
		}
	}
	l.removeAtExit(dest)
	return dest, nil
}

// extractAll materializes every catalog library the bundle carries under the
// given platform directory. Absent entries are expected and skipped; any
// other failure means the scratch directory is unusable and aborts the pass.
func (l *Loader) extractAll(dir, ext string) error {
	for _, base := range nativeLibraries {
		name := path.Join(dir, "lib"+base+"."+ext)
		dest, err := l.extractResource(name)
		if err != nil {
			if errors.Is(err, ErrResourceNotFound) {
				continue
			}
			return err
		}
		l.log().WithField("library", dest).Debug("extracted bundled library")
	}
	return nil
}

func (l *Loader) removeAtExit(path string) {
	l.cleanupMu.Lock()
	l.cleanup = append(l.cleanup, path)
	l.cleanupMu.Unlock()
}

// Cleanup removes the files this loader extracted. Removal is best effort:
// failures are ignored, and an already-loaded library stays mapped because
// the OS holds it open independently of the file.
func (l *Loader) Cleanup() {
	l.cleanupMu.Lock()
	files := l.cleanup
	l.cleanup = nil
	l.cleanupMu.Unlock()
	for _, f := range files {
		_ = os.Remove(f)
	}
}
