// Package noosexit reports direct os.Exit calls in a program's entry
// point. Exiting from main.main skips deferred cleanup (logger sync,
// session store close), so the entry points here return errors to a
// thin main instead.
package noosexit

import (
	"go/ast"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer flags os.Exit calls made directly inside main.main.
var Analyzer = &analysis.Analyzer{
	Name: "noosexit",
	Doc:  "prohibits direct use of os.Exit in main.main",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	for _, file := range pass.Files {
		// Generated wrappers under the build cache also declare main.main.
		if inBuildCache(pass.Fset.File(file.Pos()).Name()) {
			continue
		}

		mainFunc := findMainFunc(file)
		if mainFunc == nil || mainFunc.Body == nil {
			continue
		}

		ast.Inspect(mainFunc.Body, func(n ast.Node) bool {
			if call, ok := n.(*ast.CallExpr); ok && isOSExit(call) {
				pass.Reportf(call.Pos(), "avoid using os.Exit in main.main")
			}
			return true
		})
	}

	return nil, nil
}

func findMainFunc(file *ast.File) *ast.FuncDecl {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if ok && fn.Recv == nil && fn.Name.Name == "main" {
			return fn
		}
	}
	return nil
}

func isOSExit(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Exit" {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "os"
}

func inBuildCache(path string) bool {
	return strings.Contains(filepath.ToSlash(path), "/go-build/")
}
