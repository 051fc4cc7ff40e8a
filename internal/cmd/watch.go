package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sghaida/eyeosee/internal/watch"
)

// WatchCommand regenerates the container file on source changes.
type WatchCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(root *RootCommand) *WatchCommand {
	w := &WatchCommand{root: root}

	w.cmd = &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the container file on every source change",
		Long: `Write the container file, then watch the root directory and write it again
after every burst of changes to the scanned files. Stops on SIGINT or SIGTERM.

Example:
  eyeosee watch --debounce 500ms`,
		Args: cobra.NoArgs,
		RunE: w.Run,
	}
	w.cmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before regenerating")

	return w
}

// Command returns the underlying cobra command.
func (w *WatchCommand) Command() *cobra.Command {
	return w.cmd
}

// Run executes the watch command.
func (w *WatchCommand) Run(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return w.root.App().Watcher.Run(ctx)
}
