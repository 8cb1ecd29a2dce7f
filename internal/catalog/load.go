package catalog

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"gopkg.in/yaml.v3"
)

// Load error codes.
const (
	ErrCodeNotFound     = "E210" // path not found
	ErrCodeUnsupported  = "E211" // unsupported file extension
	ErrCodeDecodeFailed = "E212" // CUE or YAML decoding failed
)

// LoadError represents a failure to read a catalog file.
type LoadError struct {
	Code    string
	Message string
	Path    string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode returns the load error code.
func (e *LoadError) ErrorCode() string { return e.Code }

// ParseYAML decodes a YAML catalog. Unknown fields are rejected.
func ParseYAML(data []byte) (*Catalog, error) {
	var raw struct {
		Selectors map[string]string   `yaml:"selectors"`
		Groups    map[string][]string `yaml:"groups"`
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&raw); err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}
	return New(raw.Selectors, raw.Groups), nil
}

// LoadFile reads a catalog from a .cue, .yaml or .yml file, or from a
// directory holding a CUE package.
func LoadFile(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: err.Error(), Path: path}
	}

	var c *Catalog
	switch {
	case info.IsDir():
		c, err = loadCUEDir(path)
	case filepath.Ext(path) == ".cue":
		c, err = loadCUEFile(path)
	case filepath.Ext(path) == ".yaml", filepath.Ext(path) == ".yml":
		c, err = loadYAMLFile(path)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported catalog format %q", filepath.Ext(path)),
			Path:    path,
		}
	}
	if err != nil {
		return nil, err
	}

	slog.Info("catalog loaded",
		"path", path,
		"selectors", len(c.Selectors),
		"groups", len(c.Groups),
	)
	return c, nil
}

func loadYAMLFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: err.Error(), Path: path}
	}
	c, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func loadCUEFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: err.Error(), Path: path}
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	return CompileCUE(v)
}

// loadCUEDir builds the CUE package in dir.
func loadCUEDir(dir string) (*Catalog, error) {
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: "no CUE instances loaded", Path: dir}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err), Path: dir}
	}

	v := ctx.BuildInstance(inst)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileCUE(v)
}
