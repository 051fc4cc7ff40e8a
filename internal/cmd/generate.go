package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GenerateCommand writes the container file once.
type GenerateCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(root *RootCommand) *GenerateCommand {
	g := &GenerateCommand{root: root}

	g.cmd = &cobra.Command{
		Use:   "generate",
		Short: "Write the container file",
		Long: `Scan the configured sources and write the container file.

The file is only rewritten when its content changes, so running generate from
go:generate or a build script keeps timestamps stable.

Example:
  eyeosee generate --root . --container-path wiring/container.gen.go`,
		Args: cobra.NoArgs,
		RunE: g.Run,
	}

	return g
}

// Command returns the underlying cobra command.
func (g *GenerateCommand) Command() *cobra.Command {
	return g.cmd
}

// Run executes the generate command.
func (g *GenerateCommand) Run(cmd *cobra.Command, _ []string) error {
	res, err := g.root.App().Generator.Generate(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Changed {
		fmt.Fprintf(out, "wrote %s (%d items from %d files)\n", res.Output, res.Items, res.Contributing)
	} else {
		fmt.Fprintf(out, "%s is up to date\n", res.Output)
	}
	return nil
}
