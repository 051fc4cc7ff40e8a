package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/sghaida/eyeosee/internal/config"
)

// InitCommand writes a starter configuration file.
type InitCommand struct {
	root  *RootCommand
	cmd   *cobra.Command
	force bool
}

// NewInitCommand creates the init command.
func NewInitCommand(root *RootCommand) *InitCommand {
	i := &InitCommand{root: root}

	i.cmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.DefaultFile,
		Long: `Write the default configuration, with any flags applied, to ` + config.DefaultFile + `
or the file given with --config.

Example:
  eyeosee init --container-path internal/wiring/container.gen.go`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipApp: "true"},
		RunE:        i.Run,
	}
	i.cmd.Flags().BoolVar(&i.force, "force", false, "overwrite an existing file")

	return i
}

// Command returns the underlying cobra command.
func (i *InitCommand) Command() *cobra.Command {
	return i.cmd
}

// Run executes the init command.
func (i *InitCommand) Run(cmd *cobra.Command, _ []string) error {
	path := i.root.configPath
	if path == "" {
		path = config.DefaultFile
	}

	if _, err := os.Stat(path); err == nil && !i.force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg := config.Default()
	i.root.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
