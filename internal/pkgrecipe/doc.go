// Package pkgrecipe is the Recipe Model (C4) and Dependency Resolver (C5):
// the in-memory, validated representation of a recipe, its per-target
// override blocks, and the rules that merge a recipe's declared
// dependencies with per-target and per-image defaults into the final
// install set for a build.
//
// YAML decoding (gopkg.in/yaml.v3, the pack's own choice for this concern
// — see banksean-sand's go.mod) lives in parse.go; recipe file loading
// from disk is the out-of-scope "recipe YAML loading" collaborator named
// in the purpose section, so Parse only ever receives bytes already read
// by the caller.
package pkgrecipe
