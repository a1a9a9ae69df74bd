// Package archive walks manifests packed into zip component packages.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"
)

// WalkFunc is called for each file in archive visited by Walk. The archive
// argument contains path to archive passed to Walk, file is the entry which
// satisfied match condition. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// MatchFunc selects archive entries by name.
type MatchFunc func(name string) bool

// WithExt matches entries with given extension, case insensitive.
func WithExt(ext string) MatchFunc {
	return func(name string) bool {
		return strings.EqualFold(path.Ext(name), ext)
	}
}

// WithPrefix matches entries under given path prefix.
func WithPrefix(prefix string) MatchFunc {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}

// Walk visits all files in the archive which satisfy match condition in
// archive order, calling walkFn for each. Nil match selects every file.
// Archives with absolute entries or entries containing ".." are rejected.
func Walk(archive string, match MatchFunc, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if match != nil && !match(name) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// isSafePath returns false for absolute paths and those containing ".."
// components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
