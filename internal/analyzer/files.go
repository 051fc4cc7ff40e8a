package analyzer

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sghaida/eyeosee/internal/pkg/apperrors"
)

// expandPatterns returns the root-relative, slash-separated files matched by
// includes, in pattern order (lexical within one pattern), first occurrence
// wins, minus excludes and the output file.
func expandPatterns(root string, includes, excludes []string, outputAbs string) ([]string, error) {
	for _, p := range append(append([]string(nil), includes...), excludes...) {
		if !doublestar.ValidatePattern(p) {
			return nil, apperrors.NewAppError(apperrors.ErrAnalyzeGlob, "invalid pattern "+p, doublestar.ErrBadPattern)
		}
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var out []string

	for _, pattern := range includes {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrAnalyzeGlob, "cannot expand pattern "+pattern, err)
		}
		sort.Strings(matches)

		for _, rel := range matches {
			if seen[rel] {
				continue
			}
			seen[rel] = true

			if excluded(rel, excludes) {
				continue
			}
			if outputAbs != "" && filepath.Join(root, filepath.FromSlash(rel)) == outputAbs {
				continue
			}
			out = append(out, rel)
		}
	}
	return out, nil
}

func excluded(rel string, excludes []string) bool {
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(filepath.ToSlash(pattern), rel); ok {
			return true
		}
	}
	return false
}
