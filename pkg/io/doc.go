// Package io writes rendered artifacts to disk.
//
// [OutputPaths] decides where each requested format goes, and [WriteFile]
// writes it atomically so an interrupted render never leaves a truncated
// chart behind:
//
//	paths := io.OutputPaths(output, io.Stem(input), []string{"svg", "html"})
//	for format, path := range paths {
//	    if err := io.WriteFile(path, artifacts[format]); err != nil {
//	        return err
//	    }
//	}
package io
