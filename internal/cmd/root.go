// Package cmd provides the eyeosee command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sghaida/eyeosee/internal/app"
	"github.com/sghaida/eyeosee/internal/config"
	"github.com/sghaida/eyeosee/internal/constants"
)

// skipApp marks commands that run without an initialized App.
const skipApp = "skip-app"

// closeTimeout bounds the metrics push and span flush after a command.
const closeTimeout = 15 * time.Second

// RootCommand is the eyeosee root command.
type RootCommand struct {
	cmd *cobra.Command
	app *app.App

	configPath string
	envFiles   []string

	root          string
	includes      []string
	excludes      []string
	goMod         string
	containerPath string
	runtimeModule string
	pkg           string
}

// NewRootCommand creates the root command and its subcommands.
func NewRootCommand() *RootCommand {
	r := &RootCommand{}

	r.cmd = &cobra.Command{
		Use:   constants.AppName,
		Short: "Generate dependency container wiring for Go packages",
		Long: `eyeosee scans Go sources for container items (configs, functions, hooks and
components built with the di runtime) and writes one wiring file that imports
them, exposes them as a manifest and registers them on a shared container.

To get started, run:
  eyeosee init      - write a default eyeosee.yaml
  eyeosee generate  - write the container file once
  eyeosee watch     - regenerate on every source change`,
		Version:       constants.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipApp] == "true" {
				return nil
			}
			return r.initialize(cmd)
		},
	}

	pf := r.cmd.PersistentFlags()
	pf.StringVarP(&r.configPath, "config", "c", "", "config file (default "+config.DefaultFile+" when present)")
	pf.StringSliceVar(&r.envFiles, "env-file", nil, "env files loaded before the config (default .env)")
	pf.StringVar(&r.root, "root", "", "directory scanned and relative paths are resolved against")
	pf.StringSliceVar(&r.includes, "includes", nil, "doublestar patterns of files to scan")
	pf.StringSliceVar(&r.excludes, "excludes", nil, "doublestar patterns of files to skip")
	pf.StringVar(&r.goMod, "go-mod", "", "go.mod used to compute import paths")
	pf.StringVar(&r.containerPath, "container-path", "", "generated container file, relative to root")
	pf.StringVar(&r.runtimeModule, "runtime-module", "", "import path of the di runtime")
	pf.StringVar(&r.pkg, "package", "", "package clause of the generated file")

	r.cmd.AddCommand(NewGenerateCommand(r).Command())
	r.cmd.AddCommand(NewWatchCommand(r).Command())
	r.cmd.AddCommand(NewInitCommand(r).Command())
	r.cmd.AddCommand(NewVersionCommand(r).Command())

	return r
}

// loadConfig reads the configuration and applies the flags set on cmd.
func (r *RootCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(r.configPath, r.envFiles...)
	if err != nil {
		return nil, err
	}
	r.applyFlags(cmd, cfg)
	return cfg, nil
}

func (r *RootCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = r.root
	}
	if flags.Changed("includes") {
		cfg.Includes = r.includes
	}
	if flags.Changed("excludes") {
		cfg.Excludes = r.excludes
	}
	if flags.Changed("go-mod") {
		cfg.GoMod = r.goMod
	}
	if flags.Changed("container-path") {
		cfg.ContainerPath = r.containerPath
	}
	if flags.Changed("runtime-module") {
		cfg.RuntimeModule = r.runtimeModule
	}
	if flags.Changed("package") {
		cfg.Package = r.pkg
	}
}

// initialize loads the config and builds the App. A preset App is kept.
func (r *RootCommand) initialize(cmd *cobra.Command) error {
	if r.app != nil {
		return nil
	}

	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if d, err := cmd.Flags().GetDuration("debounce"); err == nil && cmd.Flags().Changed("debounce") {
		cfg.Watch.Debounce = d
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.app, err = app.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	r.app.Logger.Debug("app initialized", "root", cfg.Root, "output", cfg.OutputPath(), "version", constants.Version)
	return nil
}

// App returns the initialized App.
func (r *RootCommand) App() *app.App {
	return r.app
}

// SetApp presets the App (for tests).
func (r *RootCommand) SetApp(a *app.App) {
	r.app = a
}

// Command returns the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command, then closes the App whether or not the
// command failed, so that failed runs still push metrics and flush spans.
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.app == nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return errors.Join(err, r.app.Close(ctx))
}

// Execute is the main entry point of the CLI.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
