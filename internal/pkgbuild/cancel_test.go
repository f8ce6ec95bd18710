package pkgbuild

import "testing"

func TestNewCancelStartsUncancelled(t *testing.T) {
	c := NewCancel()
	if c.Cancelled() {
		t.Fatal("a fresh handle should not be cancelled")
	}
}

func TestCancelClearMarksCancelled(t *testing.T) {
	c := NewCancel()
	c.Clear()
	if !c.Cancelled() {
		t.Fatal("Clear should mark the handle cancelled")
	}
}

func TestFailedReportsAnyTaskError(t *testing.T) {
	if Failed(nil) {
		t.Fatal("no results should not be reported as failed")
	}
	if Failed([]Result{{}}) {
		t.Fatal("a result with no error should not be reported as failed")
	}
	if !Failed([]Result{{}, {Err: ErrBuild}}) {
		t.Fatal("a result with an error should be reported as failed")
	}
}
