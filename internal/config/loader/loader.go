// Package loader decodes configuration files and environment overrides
// into typed configuration structs.
//
// File formats are chosen by extension: .toml, .yaml and .yml.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Decoder decodes one file format into v.
type Decoder interface {
	Decode(source string, data []byte, v any) error
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// DecoderFor returns the decoder for the extension of path.
func DecoderFor(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML{}, nil
	case ".yaml", ".yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// File decodes the file at path into v. A missing file leaves v untouched
// and reports false.
func File(fsys FileSystem, path string, v any) (bool, error) {
	dec, err := DecoderFor(path)
	if err != nil {
		return false, err
	}
	if fsys == nil {
		fsys = DefaultFS()
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := dec.Decode(path, data, v); err != nil {
		return false, err
	}
	return true, nil
}

