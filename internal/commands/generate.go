package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eddwinpaz/ez-cli/internal/bootstrap"
	"github.com/eddwinpaz/ez-cli/internal/config"
	"github.com/eddwinpaz/ez-cli/internal/entity"
	"github.com/eddwinpaz/ez-cli/internal/filesystem"
	"github.com/eddwinpaz/ez-cli/internal/generator"
	"github.com/eddwinpaz/ez-cli/internal/output"
	"github.com/eddwinpaz/ez-cli/internal/prompt"
	"github.com/eddwinpaz/ez-cli/internal/scaffold"
	"github.com/eddwinpaz/ez-cli/internal/stack"
	"github.com/eddwinpaz/ez-cli/internal/templates"
)

// Defaults offered at each prompt.
const (
	defaultModule = "Customer"
	defaultSchema = "entity.json"
	defaultOutput = "./output"

	otherSchema = "Other (enter a path)"
)

type generateOptions struct {
	dryRun bool
	skip   bool
	diff   bool
	ask    bool
	yes    bool
}

func (o *generateOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP(config.KeyStack, "s", "", "Tech stack: "+strings.Join(stack.Names(), ", "))
	f.StringP(config.KeyModule, "m", "", "Module name, e.g. Customer")
	f.String(config.KeySchema, "", "Path to the entity schema (JSON or YAML)")
	f.StringP(config.KeyOutput, "o", "", "Output directory")
	f.String(config.KeyPrefix, "", "Class-name prefix")
	f.String(config.KeySuffix, "", "Class-name suffix")
	f.String(config.KeyTemplates, "", "Directory of template overrides, laid out as <stack>/<name>.tmpl")

	f.BoolVar(&o.dryRun, "dry-run", false, "Show what would be generated without writing files")
	f.BoolVar(&o.skip, "skip", false, "Keep existing files")
	f.BoolVar(&o.diff, "diff", false, "Show a diff for existing files, then ask")
	f.BoolVar(&o.ask, "ask", false, "Ask what to do with each existing file")
	f.BoolVarP(&o.yes, "yes", "y", false, "Accept defaults for every value not given")
}

func newGenerateCmd(configFile *string) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g", "gen"},
		Short:   "Generate a module from an entity schema",
		Long: `Generate controller, service, repository, entity and test files for one
module into <output>/<module>/.

For the netcore stack the module's service and repository are registered in
<output>/Program.cs. An existing Program.cs is patched in place and never
replaced; running the same module twice registers it once.

Existing module files are overwritten unless --skip, --diff or --ask is given.

Examples:
  ez generate
  ez generate -s netcore -m Customer --schema entity.json -y
  ez generate -s nano -m Order --prefix App --suffix V2 --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, *configFile, opts)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// inputs are the resolved answers for one generation.
type inputs struct {
	Stack     string
	Module    string
	Schema    string
	Output    string
	Prefix    string
	Suffix    string
	Templates string
	Conflict  string

	// Interactive is set when at least one value was asked for.
	Interactive bool
}

func runGenerate(cmd *cobra.Command, configFile string, opts *generateOptions) error {
	loader := config.NewLoader()
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := loader.Load(configFile)
	if err != nil {
		return err
	}
	if used := loader.ConfigFileUsed(); used != "" {
		output.Debug("loaded config", "file", used)
	}

	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
	in, err := resolveInputs(p, loader, cfg, opts.yes)
	if err != nil {
		return err
	}
	output.Debug("resolved inputs", "stack", in.Stack, "module", in.Module, "schema", in.Schema, "output", in.Output)

	s, err := stack.Lookup(in.Stack)
	if err != nil {
		return err
	}

	schema, err := entity.Load(in.Schema)
	if err != nil {
		return err
	}
	output.Debug("loaded schema", "path", in.Schema, "fields", schema.FieldNames(), "meta", schema.MetaKeys())

	ectx, err := entity.NewContext(in.Module, schema, in.Prefix, in.Suffix)
	if err != nil {
		return err
	}

	skip, diff, ask := opts.skip, opts.diff, opts.ask
	if !skip && !diff && !ask {
		switch strings.ToLower(in.Conflict) {
		case config.ConflictSkip:
			skip = true
		case config.ConflictDiff:
			diff = true
		case config.ConflictAsk:
			ask = true
		}
	}
	resolver, err := generator.NewResolver(cmd.OutOrStdout(), skip, diff, ask)
	if err != nil {
		return err
	}

	plan := scaffold.Options{
		Stack:     s,
		Context:   ectx,
		OutputDir: in.Output,
		Renderer:  generator.NewRenderer(templates.FS, in.Templates),
	}

	var ops []generator.Operation
	err = output.RunWithSpinner(cmd.Context(), "Rendering templates...", func() error {
		var planErr error
		ops, planErr = scaffold.Plan(plan)
		return planErr
	})
	if err != nil {
		return err
	}

	if in.Interactive && !opts.dryRun {
		question := fmt.Sprintf("Write %d files for %s to %s?", len(ops), ectx.ClassName(), plan.ModuleDir())
		if !p.Confirm(question, true) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, nothing written")
			return nil
		}
	}

	if err := generator.Execute(cmd.Context(), ops, generator.ExecuteOptions{
		DryRun:   opts.dryRun,
		Resolver: resolver,
		Writer:   cmd.OutOrStdout(),
	}); err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "\nDry run: %d files planned for %s, nothing written\n", len(ops), ectx.ClassName())
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nGenerated %s (%s) in %s\n", ectx.ClassName(), s.Name, plan.ModuleDir())
	for _, op := range ops {
		if reg, ok := op.(*bootstrap.RegisterOp); ok && reg.Result().Outcome == bootstrap.AnchorMissing {
			fmt.Fprintf(cmd.OutOrStdout(), "Register %s manually in %s\n", ectx.ClassName(), reg.Path)
		}
	}
	return nil
}

// resolveInputs fills every value not set by flag, environment or config
// file, asking the user unless yes is set.
func resolveInputs(p *prompt.Prompter, loader *config.Loader, cfg *config.Config, yes bool) (inputs, error) {
	in := inputs{
		Templates: cfg.Templates,
		Conflict:  cfg.Conflict,
	}

	text := func(key, current, message, def string) string {
		if loader.IsSet(key) {
			return current
		}
		if yes {
			return def
		}
		in.Interactive = true
		return p.Input(message, def)
	}

	switch {
	case loader.IsSet(config.KeyStack):
		in.Stack = cfg.Stack
	case yes:
		in.Stack = stack.Default
	default:
		in.Interactive = true
		choice, err := p.Select("Select tech stack", stack.Names(), stack.Default)
		if err != nil {
			return inputs{}, fmt.Errorf("selecting stack: %w", err)
		}
		in.Stack = choice
	}

	in.Module = text(config.KeyModule, cfg.Module, "Enter module name", defaultModule)

	schema, err := resolveSchema(p, loader, cfg, yes)
	if err != nil {
		return inputs{}, err
	}
	in.Schema = schema
	if !loader.IsSet(config.KeySchema) && !yes {
		in.Interactive = true
	}

	in.Output = text(config.KeyOutput, cfg.Output, "Enter output directory", defaultOutput)
	in.Prefix = text(config.KeyPrefix, cfg.Prefix, "Enter class-name prefix (optional)", "")
	in.Suffix = text(config.KeySuffix, cfg.Suffix, "Enter class-name suffix (optional)", "")
	return in, nil
}

// resolveSchema offers schema files found in the working directory, falling
// back to free text when there are none or the user picks another path.
func resolveSchema(p *prompt.Prompter, loader *config.Loader, cfg *config.Config, yes bool) (string, error) {
	if loader.IsSet(config.KeySchema) {
		return cfg.Schema, nil
	}
	if yes {
		return defaultSchema, nil
	}

	candidates, err := schemaCandidates(".")
	if err != nil {
		output.Debug("schema discovery failed", "err", err)
	}
	if len(candidates) == 0 {
		return p.Input("Enter path to entity schema", defaultSchema), nil
	}

	def := candidates[0]
	for _, c := range candidates {
		if c == defaultSchema {
			def = c
		}
	}
	choice, err := p.Select("Select entity schema", append(candidates, otherSchema), def)
	if err != nil {
		return "", fmt.Errorf("selecting schema: %w", err)
	}
	if choice == otherSchema {
		return p.Input("Enter path to entity schema", defaultSchema), nil
	}
	return choice, nil
}

func schemaCandidates(root string) ([]string, error) {
	found, err := filesystem.FindSchemaCandidates(root, 1)
	if err != nil {
		return nil, err
	}
	out := found[:0]
	for _, f := range found {
		if filepath.Base(f) == config.FileName {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
