// Package staticlint provides a custom analyzer that prohibits direct calls
// to time.Sleep in the handler package: the inter-batch throttle belongs to
// the service layer, HTTP handlers must not block on timers.
package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// SleepAnalyzer is an analyzer that prohibits direct calls to time.Sleep in the handler package.
var SleepAnalyzer = &analysis.Analyzer{
	Name:     "sleepcheck",
	Doc:      "prohibits direct calls to time.Sleep in the handler package",
	Run:      runSleepCheck,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

// runSleepCheck performs the analysis to detect time.Sleep calls in the handler package.
func runSleepCheck(pass *analysis.Pass) (interface{}, error) {
	// Проверяем только пакет handler
	if pass.Pkg.Name() != "handler" {
		return nil, nil
	}

	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	inspect.Preorder(nodeFilter, func(node ast.Node) {
		callExpr := node.(*ast.CallExpr)

		// Проверяем, является ли это селектором (package.Function)
		selExpr, ok := callExpr.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}

		// Проверяем, что это вызов функции Sleep
		if selExpr.Sel.Name != "Sleep" {
			return
		}

		// Проверяем, что это из пакета time
		ident, ok := selExpr.X.(*ast.Ident)
		if !ok {
			return
		}
		obj := pass.TypesInfo.Uses[ident]
		if obj == nil {
			return
		}
		pkgName, ok := obj.(*types.PkgName)
		if !ok {
			return
		}
		if pkgName.Imported().Path() == "time" {
			pass.Reportf(
				callExpr.Pos(),
				"avoid direct time.Sleep call in the handler package",
			)
		}
	})

	return nil, nil
}
