package analyzer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/eyeosee/internal/pkg/apperrors"
)

// TestFindModule_WalksUp verifies the nearest go.mod above a directory is used.
func TestFindModule_WalksUp(t *testing.T) {
	t.Parallel()

	p := newProj(t)
	p.write("deep/er/x.go", "package er\n")

	mod, err := findModule(p.path("deep/er"))
	require.NoError(t, err)
	assert.Equal(t, Module{Root: p.dir, Path: "example.com/proj"}, mod)
}

// TestReadModule_MissingDirective verifies a go.mod without module line is rejected.
func TestReadModule_MissingDirective(t *testing.T) {
	t.Parallel()

	p := newProj(t)
	p.write("bad/go.mod", "go 1.22\n")

	_, err := readModule(p.path("bad/go.mod"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrAnalyzeMod))
}

// TestImportPathForDir covers the root, nested and outside cases.
func TestImportPathForDir(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "proj")
	mod := Module{Root: root, Path: "example.com/proj"}

	tests := []struct {
		name    string
		dir     string
		want    string
		wantErr bool
	}{
		{"root", root, "example.com/proj", false},
		{"nested", filepath.Join(root, "greet", "ui"), "example.com/proj/greet/ui", false},
		{"outside", filepath.Dir(root), "", true},
		{"sibling", filepath.Join(filepath.Dir(root), "other"), "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := importPathForDir(mod, tt.dir)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := importPathForDir(Module{}, root)
	require.Error(t, err)
}
