package bootstrap

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eddwinpaz/ez-cli/internal/entity"
	"github.com/eddwinpaz/ez-cli/internal/output"
)

var (
	// ErrAnchorMissing reports a bootstrap file with neither the marker nor the entry point.
	ErrAnchorMissing = errors.New("no registration anchor found")

	// ErrConcurrentModification reports that the file changed between read and write.
	ErrConcurrentModification = errors.New("bootstrap file modified during update")
)

// testHookBeforeWrite runs after the patch is planned and before it is written.
var testHookBeforeWrite = func(path string) {}

// Patcher applies registrations to bootstrap files on disk.
type Patcher struct {
	dialect Dialect
}

// NewPatcher creates a patcher for the given dialect.
func NewPatcher(d Dialect) (*Patcher, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Patcher{dialect: d}, nil
}

// Dialect returns the patcher's dialect.
func (p *Patcher) Dialect() Dialect {
	return p.dialect
}

// Plan reads path and computes the patch without writing anything.
// It returns the current content alongside the result.
func (p *Patcher) Plan(path string, names entity.Names) (Result, []byte, error) {
	current, err := os.ReadFile(path)
	if err != nil {
		return Result{}, nil, fmt.Errorf("reading bootstrap file: %w", err)
	}
	return Apply(current, p.dialect, names), current, nil
}

// Patch registers names in the bootstrap file at path.
//
// The whole file is rewritten through a temporary file and a rename, so a
// failure leaves either the old or the new content. If another writer
// changed the file after it was read, nothing is written and
// ErrConcurrentModification is returned.
func (p *Patcher) Patch(ctx context.Context, path string, names entity.Names) (Result, error) {
	res, current, err := p.Plan(path, names)
	if err != nil {
		return Result{}, err
	}

	output.Debug("bootstrap patch planned", "path", path, "class", names.ClassName(), "outcome", res.Outcome)

	if !res.Changed() {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading bootstrap file: %w", err)
	}

	digest := sha256.Sum256(current)
	unchanged := func() error {
		now, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("re-reading bootstrap file: %w", err)
		}
		if sum := sha256.Sum256(now); !bytes.Equal(sum[:], digest[:]) {
			return fmt.Errorf("%w: %s", ErrConcurrentModification, path)
		}
		return nil
	}

	testHookBeforeWrite(path)

	if err := writeAtomic(path, res.Content, info.Mode().Perm(), unchanged); err != nil {
		return Result{}, err
	}
	return res, nil
}

// writeAtomic writes content to a temporary file next to path, runs
// precommit, then renames the temporary file over path.
func writeAtomic(path string, content []byte, mode os.FileMode, precommit func() error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpPath) // Best effort
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}
	if err = os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}

	if precommit != nil {
		if err = precommit(); err != nil {
			return err
		}
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
