// Package commands implements the ez command tree.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/eddwinpaz/ez-cli/internal/output"
)

// Version is the ez release, set at build time with -ldflags.
var Version = "dev"

// RootCmd creates the root command. Running ez without a subcommand runs
// the interactive generator.
func RootCmd() *cobra.Command {
	var verbose bool
	var configFile string
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "ez",
		Short: "Scaffold controllers, services, repositories and tests from an entity schema",
		Long: `ez (EzMake) renders a controller, service, repository, entity model and
tests for one module from a JSON or YAML entity schema.

Supported stacks:
  netcore   ASP.NET Core (C#), registers the module in Program.cs
  nestjs    NestJS (TypeScript)
  nano      Framework-free Node.js handlers (TypeScript)

Values not given as flags, EZ_* environment variables or in .ez.yml are
asked for interactively.

Examples:
  ez
  ez --stack nestjs --module Order --schema order.json --yes
  ez register --module Order --bootstrap output/Program.cs`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetupLogging(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, configFile, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default .ez.yml in the working directory or $HOME)")
	opts.addFlags(cmd)

	cmd.AddCommand(newGenerateCmd(&configFile))
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newStacksCmd())

	return cmd
}
