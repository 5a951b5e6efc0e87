package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eddwinpaz/ez-cli/internal/bootstrap"
	"github.com/eddwinpaz/ez-cli/internal/entity"
	"github.com/eddwinpaz/ez-cli/internal/generator"
	"github.com/eddwinpaz/ez-cli/internal/stack"
)

func newRegisterCmd() *cobra.Command {
	var bootstrapPath, stackName, module, prefix, suffix string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a module's service and repository in an existing bootstrap file",
		Long: `Register a module in an existing bootstrap file without generating anything.

The registration lines are inserted right after the "// Register dependencies"
marker. Without the marker, it is added just before the application build line.
A module that is already registered is left alone. A file with neither anchor
is not modified and the command fails.

Examples:
  ez register --module Order
  ez register --bootstrap src/Api/Program.cs --module Order --prefix App --suffix V2
  ez register --module Order --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := stack.Lookup(stackName)
			if err != nil {
				return err
			}
			if s.Dialect == nil {
				return fmt.Errorf("stack %s has no bootstrap file to register in", s.Name)
			}

			ectx, err := entity.NewContext(module, &entity.Schema{}, prefix, suffix)
			if err != nil {
				return err
			}
			if !fileExists(bootstrapPath) {
				return fmt.Errorf("bootstrap file does not exist: %s", bootstrapPath)
			}

			patcher, err := bootstrap.NewPatcher(*s.Dialect)
			if err != nil {
				return err
			}
			op := &bootstrap.RegisterOp{Patcher: patcher, Path: bootstrapPath, Names: ectx.Names()}

			if err := generator.Execute(cmd.Context(), []generator.Operation{op}, generator.ExecuteOptions{
				DryRun: dryRun,
				Writer: cmd.OutOrStdout(),
			}); err != nil {
				return err
			}

			if op.Result().Outcome == bootstrap.AnchorMissing {
				return fmt.Errorf("%s: %w (add %q or %q)", bootstrapPath, bootstrap.ErrAnchorMissing,
					strings.TrimSpace(s.Dialect.Marker), strings.TrimSpace(s.Dialect.EntryPoint))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&bootstrapPath, "bootstrap", "b", "Program.cs", "Bootstrap file to patch")
	f.StringVarP(&stackName, "stack", "s", stack.Default, "Stack whose registration format to use")
	f.StringVarP(&module, "module", "m", "", "Module name, e.g. Customer")
	f.StringVar(&prefix, "prefix", "", "Class-name prefix")
	f.StringVar(&suffix, "suffix", "", "Class-name suffix")
	f.BoolVar(&dryRun, "dry-run", false, "Show the change without writing it")
	_ = cmd.MarkFlagRequired("module")

	return cmd
}
