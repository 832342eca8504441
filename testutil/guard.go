// Package testutil holds the import guards behind the architecture tests.
//
// The board has two boundaries worth enforcing: packages that must build and
// run without a display never reach the windowing library, and plugins see
// only the public contracts in evolve/pkg/domain.
package testutil

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

const (
	modulePath   = "evolve"
	ebitenModule = "github.com/hajimehoshi/ebiten/v2"
)

// Boundary is an import rule: no package on the guarded side may import a
// path Forbidden reports true for.
type Boundary struct {
	Name      string
	Forbidden func(importPath string) bool
}

var (
	// Headless keeps the windowing library out of a package.
	Headless = Boundary{Name: "headless", Forbidden: isEbiten}
	// PluginContracts keeps a package off this module's internal tree.
	PluginContracts = Boundary{Name: "plugin contracts", Forbidden: isModuleInternal}
)

func isEbiten(path string) bool {
	return path == ebitenModule || strings.HasPrefix(path, ebitenModule+"/")
}

func isModuleInternal(path string) bool {
	return strings.HasPrefix(path, modulePath+"/internal/") || path == modulePath+"/internal"
}

// Reporter is the part of testing.TB the guards report through.
type Reporter interface {
	Helper()
	Errorf(format string, args ...any)
}

// RequireDirect checks the import blocks of the non-test Go files in dir and
// reports each offending import with its position.
func RequireDirect(t Reporter, dir string, b Boundary) {
	t.Helper()
	found, err := directViolations(dir, b.Forbidden)
	if err != nil {
		t.Errorf("%s: scan %s: %v", b.Name, dir, err)
		return
	}
	for _, v := range found {
		t.Errorf("%s boundary crossed: %s", b.Name, v)
	}
}

// RequireTransitive loads pattern relative to dir and reports every
// forbidden package reachable from it, with the import chain that reaches it.
func RequireTransitive(t Reporter, dir, pattern string, b Boundary) {
	t.Helper()
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports | packages.NeedDeps, Dir: dir}
	roots, err := packages.Load(cfg, pattern)
	if err != nil {
		t.Errorf("%s: load %s: %v", b.Name, pattern, err)
		return
	}
	for _, chain := range importChains(roots, b.Forbidden) {
		t.Errorf("%s boundary crossed: %s", b.Name, chain)
	}
}

func directViolations(dir string, forbidden func(string) bool) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var found []string
	for _, path := range matches {
		if strings.HasSuffix(path, "_test.go") {
			continue
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return nil, err
		}
		for _, spec := range file.Imports {
			imp := strings.Trim(spec.Path.Value, `"`)
			if forbidden(imp) {
				pos := fset.Position(spec.Pos())
				found = append(found, fmt.Sprintf("%s:%d imports %s", filepath.Base(pos.Filename), pos.Line, imp))
			}
		}
	}
	return found, nil
}

// importChains walks the import graph breadth first from each root and
// returns one "a -> b -> forbidden" chain per forbidden package reached.
func importChains(roots []*packages.Package, forbidden func(string) bool) []string {
	type step struct {
		pkg  *packages.Package
		path []string
	}
	seen := map[string]bool{}
	reported := map[string]string{}
	var queue []step
	for _, r := range roots {
		if r == nil || seen[r.PkgPath] {
			continue
		}
		seen[r.PkgPath] = true
		queue = append(queue, step{pkg: r, path: []string{r.PkgPath}})
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		imports := make([]string, 0, len(cur.pkg.Imports))
		for path := range cur.pkg.Imports {
			imports = append(imports, path)
		}
		sort.Strings(imports)
		for _, path := range imports {
			dep := cur.pkg.Imports[path]
			chain := append(append([]string(nil), cur.path...), path)
			if forbidden(path) {
				if _, ok := reported[path]; !ok {
					reported[path] = strings.Join(chain, " -> ")
				}
				continue
			}
			if dep == nil || seen[path] {
				continue
			}
			seen[path] = true
			queue = append(queue, step{pkg: dep, path: chain})
		}
	}
	out := make([]string, 0, len(reported))
	for _, chain := range reported {
		out = append(out, chain)
	}
	sort.Strings(out)
	return out
}
