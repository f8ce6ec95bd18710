package pkgscript

import "testing"

func TestVarsExpandSubstitutesKnownKeys(t *testing.T) {
	v := Vars{"RECIPE": "hello", "PKGER_BLD_DIR": "/pkger/build"}

	got := v.Expand("cd $PKGER_BLD_DIR && make ${RECIPE}")
	want := "cd /pkger/build && make hello"
	if got != want {
		t.Fatalf("Expand = %q, want %q", got, want)
	}
}

func TestVarsExpandUnknownKeyIsEmpty(t *testing.T) {
	v := Vars{}
	got := v.Expand("value=$MISSING")
	if got != "value=" {
		t.Fatalf("Expand = %q, want %q", got, "value=")
	}
}

func TestVarsEnvListRendersKeyValuePairs(t *testing.T) {
	v := Vars{"RECIPE": "hello", "RECIPE_VERSION": "1.0"}
	list := v.EnvList()
	if len(list) != 2 {
		t.Fatalf("EnvList returned %d entries, want 2", len(list))
	}

	seen := map[string]bool{}
	for _, kv := range list {
		seen[kv] = true
	}
	if !seen["RECIPE=hello"] || !seen["RECIPE_VERSION=1.0"] {
		t.Fatalf("EnvList = %v, missing expected pairs", list)
	}
}
