package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional per-project configuration a host program loads
// before handing chunks to the loader: which extra directories to search
// for relative imports, and which import spec strings name host-supplied
// builtin modules rather than files on disk. internal/sema never reads
// wisp.yaml itself — the host loads one and passes the resulting Manifest
// to internal/loader.New.
type Manifest struct {
	// SearchRoots are extra filesystem directories searched, after the
	// importing chunk's own directory, when resolving a relative import
	// spec.
	SearchRoots []string `yaml:"searchRoots"`

	// BuiltinModules lists spec strings the host treats as builtin-loader
	// names rather than filesystem or URL specs.
	BuiltinModules []string `yaml:"builtinModules"`
}

// LoadManifest reads and parses a wisp.yaml file. A missing file is not an
// error: callers get a zero-value Manifest and proceed with defaults.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
