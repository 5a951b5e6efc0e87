// Package templates holds the embedded code templates, one directory per stack.
package templates

import (
	"embed"
	"io/fs"
	"path"
	"sort"
)

//go:embed netcore/*.tmpl nestjs/*.tmpl nano/*.tmpl
var FS embed.FS

// List returns the template names embedded for stack, sorted.
func List(stack string) ([]string, error) {
	entries, err := fs.ReadDir(FS, stack)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".tmpl" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
