package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrCancelled is returned when the user cancels at a conflict prompt.
var ErrCancelled = errors.New("generation cancelled")

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun   bool
	Force    bool      // Replace existing files without consulting Resolver
	Resolver *Resolver // Decides on existing files; nil means fail validation on conflict
	Writer   io.Writer // Where to write output (defaults to os.Stdout)
}

// Execute runs operations with validation
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	force := opts.Force || opts.Resolver != nil

	// Phase 1: Validate all operations
	for _, op := range ops {
		if err := op.Validate(ctx, force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	differ := NewDiffGenerator()

	// Phase 2: Execute or report
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}

		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			if p, ok := op.(Previewer); ok {
				path, before, after, changed, err := p.Preview(ctx)
				if err != nil {
					return fmt.Errorf("preview failed: %w", err)
				}
				if changed {
					fmt.Fprint(opts.Writer, differ.GenerateDiffDefault(path, path, before, after))
				}
			}
			continue
		}

		if r, ok := op.(Replacer); ok && !opts.Force && opts.Resolver != nil {
			proceed, err := resolveExisting(r, opts, differ)
			if err != nil {
				return err
			}
			if !proceed {
				continue
			}
		}

		if err := op.Execute(ctx); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}

	return nil
}

// resolveExisting asks the resolver what to do when r's target already
// exists. It reports false when the operation should be skipped.
func resolveExisting(r Replacer, opts ExecuteOptions, differ *DiffGenerator) (bool, error) {
	path := r.Target()
	existing, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading existing file %s: %w", path, err)
	}

	if bytes.Equal(existing, r.Proposed()) {
		fmt.Fprintf(opts.Writer, "• Unchanged %s\n", path)
		return false, nil
	}

	for {
		resolution, err := opts.Resolver.ResolveConflict(path, existing, r.Proposed())
		if err != nil {
			return false, err
		}

		switch resolution {
		case Overwrite:
			return true, nil
		case Skip:
			fmt.Fprintf(opts.Writer, "• Skip %s (kept existing file)\n", path)
			return false, nil
		case ShowDiff:
			fmt.Fprint(opts.Writer, differ.GenerateDiffDefault(path, path, existing, r.Proposed()))
		default:
			return false, ErrCancelled
		}
	}
}
