// Go bindings for the milvus-storage native library.
//
// The native library and its dependency closure are shipped as embedded
// resources, one directory per platform, and materialized into a scratch
// directory at load time. This mirrors the pattern used by other Go projects
// that distribute native binaries (go-embed-python and friends): a single
// self-contained artifact, no LD_LIBRARY_PATH to configure, with a fallback
// to the system search path for hosts that install the library themselves.
package storage

import (
	"embed"
	"io/fs"
	"path"
)

// The packager populates libs/<os>-<arch>/ with the platform's shared
// libraries before building; see libs/README for the layout contract.
//
//go:embed libs
var embeddedLibs embed.FS

// bundledResources exposes the embedded bundle with logical paths rooted at
// the platform directories, e.g. "linux-x86_64/libmilvus-storage-jni.so".
func bundledResources() fs.FS {
	sub, err := fs.Sub(embeddedLibs, "libs")
	if err != nil {
		// "libs" is a compile-time embed root; Sub cannot fail on it.
		panic(err)
	}
	return sub
}

// BundledLibraries lists the shared library files present in the embedded
// bundle for the current platform. An empty result means this build carries
// no natives and only the system search path can satisfy a load.
func BundledLibraries() ([]string, error) {
	p := DetectPlatform()
	entries, err := fs.ReadDir(bundledResources(), p.ResourceDir())
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == "."+p.Ext {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
