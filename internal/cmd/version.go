package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sghaida/eyeosee/internal/constants"
)

// VersionCommand prints build information.
type VersionCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewVersionCommand creates the version command.
func NewVersionCommand(root *RootCommand) *VersionCommand {
	v := &VersionCommand{root: root}

	v.cmd = &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipApp: "true"},
		RunE:        v.Run,
	}

	return v
}

// Command returns the underlying cobra command.
func (v *VersionCommand) Command() *cobra.Command {
	return v.cmd
}

// Run executes the version command.
func (v *VersionCommand) Run(cmd *cobra.Command, _ []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s %s/%s)\n",
		constants.AppName, constants.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
