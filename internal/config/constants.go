package config

// Version is the current wisp toolchain version. Set at build time by
// the release script via -ldflags, or left at this default for dev builds.
var Version = "0.1.0"

const SourceFileExt = ".wisp"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".wisp", ".wsp"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates if the program is running in test mode. Nothing in
// this module reads it; no String() method changes its output on it.
var IsTestMode = false

// Builtin type-name table consulted when a function parameter's declared
// type annotation is resolved: a recognized name binds to that type,
// anything else falls back to any.
const (
	AnyTypeName          = "any"
	BooleanTypeName      = "boolean"
	NumberTypeName       = "number"
	IntTypeName           = "int"
	ListTypeName         = "list"
	MapTypeName          = "map"
	FiberTypeName        = "fiber"
	StringTypeName       = "string"
	StaticStringTypeName = "staticString"
	BoxTypeName          = "box"
)

// BuiltinTypeNames is the recognized type-annotation table in source order.
var BuiltinTypeNames = []string{
	AnyTypeName, BooleanTypeName, NumberTypeName, IntTypeName,
	ListTypeName, MapTypeName, FiberTypeName, StringTypeName,
	StaticStringTypeName, BoxTypeName,
}

// IsBuiltinTypeName reports whether name names one of BuiltinTypeNames.
func IsBuiltinTypeName(name string) bool {
	for _, n := range BuiltinTypeNames {
		if n == name {
			return true
		}
	}
	return false
}

const SelfParamName = "self"
