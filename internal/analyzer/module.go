package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/sghaida/eyeosee/internal/pkg/apperrors"
)

// findModule walks up from startDir to the nearest go.mod.
func findModule(startDir string) (Module, error) {
	dir := startDir
	for {
		gomod := filepath.Join(dir, "go.mod")
		if st, err := os.Stat(gomod); err == nil && !st.IsDir() {
			return readModule(gomod)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Module{}, apperrors.NewAppError(apperrors.ErrAnalyzeMod,
		"could not find go.mod starting from "+filepath.ToSlash(startDir), nil)
}

// readModule reads the module path declared by gomod.
func readModule(gomod string) (Module, error) {
	abs, err := filepath.Abs(gomod)
	if err != nil {
		return Module{}, err
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return Module{}, apperrors.NewAppError(apperrors.ErrAnalyzeMod, "cannot read "+filepath.ToSlash(gomod), err)
	}
	path := modfile.ModulePath(b)
	if path == "" {
		return Module{}, apperrors.NewAppError(apperrors.ErrAnalyzeMod,
			"go.mod missing module directive at "+filepath.ToSlash(gomod), nil)
	}
	return Module{Root: filepath.Dir(abs), Path: path}, nil
}

// importPathForDir maps a directory inside mod to its import path.
func importPathForDir(mod Module, dir string) (string, error) {
	if mod.Path == "" {
		return "", fmt.Errorf("no module")
	}
	rel, err := filepath.Rel(mod.Root, dir)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)

	if rel == "." {
		return mod.Path, nil
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("directory %s is outside module root %s", filepath.ToSlash(dir), filepath.ToSlash(mod.Root))
	}
	return mod.Path + "/" + rel, nil
}
