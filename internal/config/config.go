// Package config loads the eyeosee generator configuration from a YAML file,
// EYEOSEE_* environment variables and optional .env files.
package config

import (
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/sghaida/eyeosee/internal/pkg/apperrors"
	"github.com/sghaida/eyeosee/internal/pkg/logging"
	"github.com/sghaida/eyeosee/internal/pkg/metrics"
	"github.com/sghaida/eyeosee/internal/pkg/tracing"
)

// DefaultFile is looked up in the working directory when no config path is given.
const DefaultFile = "eyeosee.yaml"

// DefaultRuntimeModule is the import path of the runtime package generated
// files register into.
const DefaultRuntimeModule = "github.com/sghaida/eyeosee/di"

// Config is the generator configuration.
type Config struct {
	// Name labels log records and metrics.
	Name string `yaml:"name" env:"EYEOSEE_NAME" env-default:"eyeosee"`

	// Root is the directory patterns and relative paths are resolved against.
	Root string `yaml:"root" env:"EYEOSEE_ROOT" env-default:"."`

	// Includes are doublestar patterns, relative to Root, of files to scan.
	Includes []string `yaml:"includes" env:"EYEOSEE_INCLUDES" env-separator:"," env-default:"**/*.go"`

	// Excludes are doublestar patterns, relative to Root, removed from Includes.
	Excludes []string `yaml:"excludes" env:"EYEOSEE_EXCLUDES" env-separator:"," env-default:"**/*_test.go,**/vendor/**,**/testdata/**"`

	// GoMod is the go.mod used to compute import paths. Empty means: walk up
	// from Root.
	GoMod string `yaml:"goMod" env:"EYEOSEE_GO_MOD"`

	// ContainerPath is the generated file, relative to Root.
	ContainerPath string `yaml:"containerPath" env:"EYEOSEE_CONTAINER_PATH" env-default:"wiring/container.gen.go"`

	// RuntimeModule is the import path of the di runtime.
	RuntimeModule string `yaml:"runtimeModule" env:"EYEOSEE_RUNTIME_MODULE" env-default:"github.com/sghaida/eyeosee/di"`

	// Package overrides the package clause of the generated file.
	Package string `yaml:"package" env:"EYEOSEE_PACKAGE"`

	Watch   WatchConfig    `yaml:"watch" env-prefix:"EYEOSEE_WATCH_"`
	Logging logging.Config `yaml:"logging" env-prefix:"EYEOSEE_LOG_"`
	Metrics metrics.Config `yaml:"metrics" env-prefix:"EYEOSEE_METRICS_"`
	Tracing tracing.Config `yaml:"tracing" env-prefix:"EYEOSEE_TRACING_"`
}

// WatchConfig configures the watch loop.
type WatchConfig struct {
	// Debounce is the quiet period after the last file event before a run.
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE" env-default:"300ms"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Name:          "eyeosee",
		Root:          ".",
		Includes:      []string{"**/*.go"},
		Excludes:      []string{"**/*_test.go", "**/vendor/**", "**/testdata/**"},
		ContainerPath: "wiring/container.gen.go",
		RuntimeModule: DefaultRuntimeModule,
		Watch:         WatchConfig{Debounce: 300 * time.Millisecond},
		Logging:       logging.DefaultConfig(),
		Metrics:       metrics.DefaultConfig(),
		Tracing:       tracing.DefaultConfig(),
	}
}

// Load reads the configuration.
//
// envFiles are loaded into the process environment first (".env" when none are
// given; a missing default .env is not an error). Variables already set are
// never overwritten. Then path is read, or DefaultFile when path is empty and
// it exists, with EYEOSEE_* variables taking precedence over the file. Without
// any file the environment and defaults alone are used.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "cannot load env file", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
				fmt.Sprintf("cannot read config file %s", path), err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "cannot read environment", err)
	}
	return &cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) > 0 {
		return godotenv.Load(files...)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Validate checks required fields and the nested configs.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Root) == "" {
		problems = append(problems, "root is required")
	}
	if len(c.Includes) == 0 {
		problems = append(problems, "at least one include pattern is required")
	}
	if c.ContainerPath == "" {
		problems = append(problems, "containerPath is required")
	} else if filepath.Ext(c.ContainerPath) != ".go" {
		problems = append(problems, fmt.Sprintf("containerPath %q must be a .go file", c.ContainerPath))
	}
	if err := module.CheckImportPath(c.RuntimeModule); err != nil {
		problems = append(problems, fmt.Sprintf("runtimeModule: %v", err))
	}
	if c.Package != "" && !token.IsIdentifier(c.Package) {
		problems = append(problems, fmt.Sprintf("package %q is not a valid identifier", c.Package))
	}
	if c.Watch.Debounce < 0 {
		problems = append(problems, "watch.debounce must not be negative")
	}
	if err := c.Logging.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if err := c.Metrics.Validate(); err != nil {
		problems = append(problems, "metrics: "+err.Error())
	}
	if err := c.Tracing.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return apperrors.NewAppError(apperrors.ErrConfigValidate, strings.Join(problems, "; "), nil)
	}
	return nil
}

// OutputPath returns the container file path resolved against Root.
func (c *Config) OutputPath() string {
	return c.resolve(c.ContainerPath)
}

// GoModPath returns the go.mod path resolved against Root, or "" when unset.
func (c *Config) GoModPath() string {
	if c.GoMod == "" {
		return ""
	}
	return c.resolve(c.GoMod)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Root, p)
}

// Save writes c as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
