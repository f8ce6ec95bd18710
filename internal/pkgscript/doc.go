// Package pkgscript is the Script Runner (C10): it walks a recipe's
// configure/build/install phases in order and execs each step that
// survives the phase's image and target filters, after expanding
// variables in the step's command and working directory against the
// build's variable context.
package pkgscript
