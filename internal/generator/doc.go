// Package generator renders templates and applies the resulting file
// operations.
//
// # Operations
//
// Generators return []Operation instead of touching the disk, so the same
// plan can be validated, previewed with --dry-run, or executed:
//
//	ops := []generator.Operation{
//	    &generator.WriteFileOp{Path: "Controllers/CustomerController.cs", Content: content, Mode: 0644},
//	}
//	err := generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: dryRun})
//
// Execute validates every operation before executing any of them.
//
// # Conflicts
//
// When an operation would replace an existing file with different content,
// a Resolver decides: overwrite (default), skip, show a diff and ask, or ask
// through an interactive menu.
//
// # Previews
//
// Operations that edit a file in place implement Previewer; in dry-run mode
// Execute prints their pending change as a coloured unified diff.
package generator
