package storage

// primaryLibrary is the library whose load this package exists to perform.
// Everything else in the catalog is part of its native dependency closure.
const primaryLibrary = "milvus-storage-jni"

// nativeLibraries is the full set of shared library base names that may ship
// in the platform bundle. Names must match the bundle exactly; order is
// irrelevant because the primary library finds its dependencies through the
// RPATH baked in at build time. Not every entry exists on every platform.
var nativeLibraries = []string{
	"milvus-storage-jni", "milvus-storage",
	"arrow", "arrow_acero", "arrow_dataset", "parquet",
	"protobuf", "protoc", "curl", "ssl", "crypto",
	"z", "lzma", "zstd", "glog", "gflags_nothreads",
	"folly", "follybenchmark", "folly_exception_counter",
	"folly_exception_tracer", "folly_exception_tracer_base", "folly_test_util",
	"avrocpp", "boost_context", "boost_filesystem", "boost_program_options",
	"boost_regex", "boost_system", "boost_thread",
	"aws-cpp-sdk-core", "aws-cpp-sdk-s3", "aws-cpp-sdk-identity-management",
}

// Catalog returns a copy of the bundled library base names.
func Catalog() []string {
	out := make([]string, len(nativeLibraries))
	copy(out, nativeLibraries)
	return out
}
