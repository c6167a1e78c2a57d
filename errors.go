package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceNotFound reports that a named resource is absent from the
	// bundle. The dependency extraction pass tolerates it entry by entry.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrResourceLoadFailed reports that the bundle could not produce a
	// loadable primary library; the loader falls back to the system path.
	ErrResourceLoadFailed = errors.New("resource-based load failed")

	// ErrScratchDirUnavailable reports that the scratch directory could not
	// be created or written. It aborts the current load attempt.
	ErrScratchDirUnavailable = errors.New("scratch directory unavailable")
)

// LibraryLoadError reports that a native library could not be loaded by
// either strategy: neither the extracted bundle nor the system search path.
type LibraryLoadError struct {
	Library string
	Err     error
}

func (e *LibraryLoadError) Error() string {
	return fmt.Sprintf("native library %q is unavailable: %v", e.Library, e.Err)
}

func (e *LibraryLoadError) Unwrap() error { return e.Err }
