package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and
// must not touch the disk, so --dry-run leaves no trace.
// force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create Models/Customer.cs (234 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// Replacer is implemented by operations that may replace a whole file.
// Execute consults the conflict resolver when Target already exists with
// content other than Proposed.
type Replacer interface {
	Target() string
	Proposed() []byte
}

// Previewer is implemented by operations that edit an existing file in place.
// Preview returns the file's current and pending content; changed is false
// when the operation would leave the file as it is.
type Previewer interface {
	Preview(ctx context.Context) (path string, before, after []byte, changed bool, err error)
}

// WriteFileOp creates a file with content.
//
// Validation behavior:
//   - Rejects a path that is a directory
//   - Checks for file conflicts unless force=true
//   - Allows empty content (zero bytes) but rejects nil content
//
// Execution behavior:
//   - Creates parent directories if needed
//   - Writes the file with the specified Mode
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)

	existed bool
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if info, err := os.Stat(op.Path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("cannot write file, path is a directory: %s", op.Path)
		}
		if !force {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
		op.existed = true
	}

	// Reject nil content (empty is OK)
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if _, err := os.Stat(op.Path); err == nil {
		op.existed = true
	}
	return os.WriteFile(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	verb := "Create"
	if op.existed {
		verb = "Overwrite"
	}
	return fmt.Sprintf("%s %s (%d bytes)", verb, op.Path, len(op.Content))
}

// Target implements Replacer.
func (op *WriteFileOp) Target() string { return op.Path }

// Proposed implements Replacer.
func (op *WriteFileOp) Proposed() []byte { return op.Content }
