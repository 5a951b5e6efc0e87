package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eddwinpaz/ez-cli/internal/stack"
)

var (
	stackNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newStacksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stacks",
		Short: "List supported stacks and the files they generate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printStacks(cmd.OutOrStdout(), stack.All())
			return nil
		},
	}
}

func printStacks(w io.Writer, stacks []stack.Stack) {
	for i, s := range stacks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		name := s.Name
		if s.Name == stack.Default {
			name += " (default)"
		}
		fmt.Fprintf(w, "%s  %s\n", stackNameStyle.Render(name), dimStyle.Render("."+s.Ext+"  "+s.Description))

		for _, a := range s.Artifacts {
			note := ""
			if a.Bootstrap {
				note = dimStyle.Render("  (patched when it exists)")
			}
			fmt.Fprintf(w, "  %-28s -> %s%s\n", a.Template, a.Output, note)
		}
	}
}
