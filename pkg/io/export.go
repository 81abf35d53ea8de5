package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	perrors "github.com/matzehuels/scatterplot/pkg/errors"
)

// WriteFile writes data to path atomically: it writes a temporary file in
// the same directory and renames it into place. Parent directories are
// created as needed.
func WriteFile(path string, data []byte) error {
	if err := perrors.ValidateOutputPath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

// OutputPaths maps each format to the file it is written to.
//
// With one format, output is used as given (or "<stem>.<format>" when
// empty). With several formats, output is a base path whose extension, if it
// names one of the formats, is replaced per format.
func OutputPaths(output, stem string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = stem
	}
	if ext := strings.TrimPrefix(filepath.Ext(base), "."); ext != "" && contains(formats, ext) {
		base = strings.TrimSuffix(base, "."+ext)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// Stem derives an output base name from an input location:
// "data/colleges.csv" → "colleges", "https://x/y/colleges.csv?v=2" → "colleges".
func Stem(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	name := filepath.Base(strings.TrimRight(location, "/"))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == "/" || strings.Contains(name, ":") {
		return "scatterplot"
	}
	return name
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
