// Package fileutil holds the file modes used when writing output.
package fileutil

import "os"

// ReadableByAll is the mode for generated source files, which build tools
// and other users need to read.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the mode for created output directories.
const DirReadableByAll os.FileMode = 0o755
