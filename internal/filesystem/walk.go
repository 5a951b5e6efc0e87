// Package filesystem provides directory traversal for locating entity schemas.
package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIgnoreDirs are common directories to skip during traversal.
// Generated output and package caches never hold entity schemas.
var DefaultIgnoreDirs = []string{
	"node_modules", "vendor", ".git", ".svn", ".hg",
	"dist", "build", "bin", "obj", "tmp", "temp", "output",
	".idea", ".vscode", ".vs",
}

// SchemaExtensions are the file extensions offered as entity schema candidates.
var SchemaExtensions = []string{".json", ".yml", ".yaml"}

// WalkOptions configures directory traversal behavior
type WalkOptions struct {
	IgnoreDirs     []string // Directories to skip (default: DefaultIgnoreDirs)
	IgnorePatterns []string // File patterns to skip (e.g., "package*.json")
	IncludeHidden  bool     // Include hidden files/dirs (default: false)
	MaxDepth       int      // Directory levels below root to visit; 0 means unlimited
}

// Walk traverses a directory tree with configurable ignore patterns.
// The visitor function is called for each file and directory.
// Return filepath.SkipDir from visitor to skip a directory.
func Walk(rootPath string, opts WalkOptions, visitor func(path string, info os.FileInfo) error) error {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}

	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden files/directories unless explicitly included
		if !opts.IncludeHidden && strings.HasPrefix(info.Name(), ".") && path != rootPath {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() && path != rootPath {
			for _, ignore := range ignoreDirs {
				if info.Name() == ignore {
					return filepath.SkipDir
				}
			}
			if opts.MaxDepth > 0 && depth(rootPath, path) > opts.MaxDepth {
				return filepath.SkipDir
			}
		}

		if !info.IsDir() && len(opts.IgnorePatterns) > 0 {
			for _, pattern := range opts.IgnorePatterns {
				if matched, _ := filepath.Match(pattern, info.Name()); matched {
					return nil
				}
			}
		}

		return visitor(path, info)
	})
}

// depth counts the directory levels of path below root.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

// FindSchemaCandidates lists files under root that could be entity schemas,
// relative to root and sorted. Package manifests and tool configs are excluded.
func FindSchemaCandidates(root string, maxDepth int) ([]string, error) {
	opts := WalkOptions{
		IgnorePatterns: []string{
			"package.json", "package-lock.json", "tsconfig*.json",
			"appsettings*.json", "launchSettings.json", "nest-cli.json",
			"*.deps.json", "*.runtimeconfig.json",
		},
		MaxDepth: maxDepth,
	}

	var found []string
	err := Walk(root, opts, func(path string, info os.FileInfo) error {
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range SchemaExtensions {
			if ext == want {
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				found = append(found, rel)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}
