package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eddwinpaz/ez-cli/internal/entity"
	"github.com/eddwinpaz/ez-cli/internal/generator"
	"github.com/eddwinpaz/ez-cli/internal/output"
)

var (
	_ generator.Operation = (*RegisterOp)(nil)
	_ generator.Previewer = (*RegisterOp)(nil)
)

// RegisterOp registers a module in a bootstrap file.
//
// When the file does not exist yet, Fresh (the rendered bootstrap template)
// is written instead. An existing file is patched, never replaced.
type RegisterOp struct {
	Patcher *Patcher
	Path    string
	Names   entity.Names
	Fresh   []byte
	Mode    fs.FileMode

	exists  bool
	result  Result
	planned bool
}

func (op *RegisterOp) Validate(ctx context.Context, force bool) error {
	if op.Patcher == nil {
		return fmt.Errorf("no patcher for bootstrap file %s", op.Path)
	}

	info, err := os.Stat(op.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if op.Fresh == nil {
			return fmt.Errorf("bootstrap file does not exist: %s", op.Path)
		}
		op.exists = false
		return nil
	case err != nil:
		return fmt.Errorf("cannot access bootstrap file %s: %w", op.Path, err)
	case info.IsDir():
		return fmt.Errorf("bootstrap path is a directory: %s", op.Path)
	}

	res, _, err := op.Patcher.Plan(op.Path, op.Names)
	if err != nil {
		return err
	}
	op.exists = true
	op.result = res
	op.planned = true
	return nil
}

func (op *RegisterOp) Execute(ctx context.Context) error {
	if !op.exists {
		if err := os.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
			return err
		}
		mode := op.Mode
		if mode == 0 {
			mode = 0644
		}
		return os.WriteFile(op.Path, op.Fresh, mode)
	}

	res, err := op.Patcher.Patch(ctx, op.Path, op.Names)
	if err != nil {
		return err
	}
	op.result = res
	op.planned = true

	if res.Outcome == AnchorMissing {
		output.Warnf("%s has neither %q nor %q; register %s manually",
			op.Path, op.Patcher.Dialect().Marker, op.Patcher.Dialect().EntryPoint, op.Names.ClassName())
	}
	return nil
}

func (op *RegisterOp) Description() string {
	class := op.Names.ClassName()
	switch {
	case !op.exists:
		return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Fresh))
	case !op.planned:
		return fmt.Sprintf("Register %s in %s", class, op.Path)
	}

	switch op.result.Outcome {
	case Inserted:
		return fmt.Sprintf("Update %s (registered %s at line %d)", op.Path, class, op.result.Line)
	case AlreadyRegistered:
		return fmt.Sprintf("Unchanged %s (%s already registered)", op.Path, class)
	default:
		return fmt.Sprintf("Skip %s (no registration anchor)", op.Path)
	}
}

// Preview implements generator.Previewer.
func (op *RegisterOp) Preview(ctx context.Context) (string, []byte, []byte, bool, error) {
	if !op.exists {
		return op.Path, nil, op.Fresh, false, nil
	}
	res, current, err := op.Patcher.Plan(op.Path, op.Names)
	if err != nil {
		return op.Path, nil, nil, false, err
	}
	return op.Path, current, res.Content, res.Changed(), nil
}

// Result returns the outcome of the last plan or patch.
func (op *RegisterOp) Result() Result {
	return op.result
}
