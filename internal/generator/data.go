package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/sghaida/eyeosee/internal/analyzer"
)

type duplicateKey struct {
	key      string
	previous string
	winner   string
}

// buildFileData turns an analysis into template data. Only files with exports
// are imported and bootstrapped.
func buildFileData(res *analyzer.Result, outDir, pkg, runtimeModule string) (fileData, []duplicateKey) {
	data := fileData{Package: pkg, RuntimeModule: runtimeModule}
	contributing := res.Contributing()

	reserved := map[string]bool{"di": true, "context": true, "modules": true, "bootstrap": true}
	for _, f := range contributing {
		for _, e := range f.Exports {
			reserved[e.Alias] = true
		}
	}
	names := allocateImportNames(contributing, reserved)

	h := sha256.New()
	manifest := map[string]string{}
	origin := map[string]string{}
	var dups []duplicateKey

	for _, f := range contributing {
		source := moduleSource(outDir, f.Path)
		group := sourceGroup{Source: source}
		mod := moduleEntry{Source: source}

		qual := ""
		if !f.Local {
			qual = names[f.ImportPath] + "."
		}

		for _, e := range f.Exports {
			group.Vars = append(group.Vars, aliasVar{Alias: e.Alias, Ref: qual + e.Name})
			mod.Aliases = append(mod.Aliases, e.Alias)

			if prev, ok := origin[e.DependencyName]; ok {
				dups = append(dups, duplicateKey{key: e.DependencyName, previous: prev, winner: f.Rel + ":" + e.Name})
			}
			manifest[e.DependencyName] = e.Alias
			origin[e.DependencyName] = f.Rel + ":" + e.Name

			fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%s\n", f.Rel, e.Name, e.Alias, e.DependencyName, e.Kind)
		}

		data.Groups = append(data.Groups, group)
		data.Modules = append(data.Modules, mod)
	}

	keys := make([]string, 0, len(manifest))
	for k := range manifest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		data.Manifest = append(data.Manifest, manifestEntry{Key: k, Alias: manifest[k]})
	}

	paths := make([]string, 0, len(names))
	for p := range names {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		imp := goImport{Path: p}
		if names[p] != path.Base(p) {
			imp.Name = names[p]
		}
		data.Imports = append(data.Imports, imp)
	}

	data.Hash = hex.EncodeToString(h.Sum(nil))
	return data, dups
}

// allocateImportNames assigns each imported package a unique identifier, in
// discovery order. Collisions get a numeric suffix.
func allocateImportNames(files []analyzer.FileExports, reserved map[string]bool) map[string]string {
	names := map[string]string{}
	used := map[string]bool{}
	for k := range reserved {
		used[k] = true
	}

	for _, f := range files {
		if f.Local || f.ImportPath == "" {
			continue
		}
		if _, ok := names[f.ImportPath]; ok {
			continue
		}
		base := identifier(f.PackageName)
		name := base
		for i := 2; used[name] || token.IsKeyword(name); i++ {
			name = base + strconv.Itoa(i)
		}
		used[name] = true
		names[f.ImportPath] = name
	}
	return names
}

// moduleSource is the file path relative to outDir, slash separated, without
// extension.
func moduleSource(outDir, file string) string {
	rel, err := filepath.Rel(outDir, file)
	if err != nil {
		rel = file
	}
	rel = filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	if !strings.HasPrefix(rel, "../") && !strings.HasPrefix(rel, "/") {
		rel = "./" + rel
	}
	return rel
}

// packageName resolves the package clause of the output: the explicit name,
// else the package of the other Go files next to output, else the directory
// name.
func packageName(explicit, output string) (string, error) {
	if explicit != "" {
		if !token.IsIdentifier(explicit) {
			return "", fmt.Errorf("generator: invalid package name %q", explicit)
		}
		return explicit, nil
	}

	dir := filepath.Dir(output)
	if entries, err := os.ReadDir(dir); err == nil {
		fset := token.NewFileSet()
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
				continue
			}
			full := filepath.Join(dir, name)
			if full == output {
				continue
			}
			f, err := parser.ParseFile(fset, full, nil, parser.PackageClauseOnly)
			if err != nil {
				continue
			}
			return f.Name.Name, nil
		}
	}

	return identifier(filepath.Base(dir)), nil
}

// identifier turns s into a valid Go identifier.
func identifier(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || out == "_" || token.IsKeyword(out) {
		return "pkg" + out
	}
	return out
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
