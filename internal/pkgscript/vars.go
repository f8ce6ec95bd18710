package pkgscript

import "os"

// Vars is the variable context a build exposes to its scripts:
// PKGER_BLD_DIR, PKGER_OUT_DIR, PKGER_OS, PKGER_OS_VERSION, RECIPE,
// RECIPE_VERSION, RECIPE_RELEASE, plus the recipe's own declared env.
type Vars map[string]string

// Expand substitutes $VAR and ${VAR} references in s against the
// variable context, leaving unknown references as an empty string.
//
// The generic template-string expander is out of scope as a named
// component; this stays on os.Expand rather than inventing one, since
// nothing in the retrieval pack reaches for a dedicated templating
// library for simple key/value substitution.
func (v Vars) Expand(s string) string {
	return os.Expand(s, func(key string) string {
		return v[key]
	})
}

// EnvList renders the variable context as "KEY=VALUE" pairs suitable for
// a container's environment, the same set its scripts expand against.
func (v Vars) EnvList() []string {
	out := make([]string, 0, len(v))
	for k, val := range v {
		out = append(out, k+"="+val)
	}
	return out
}
