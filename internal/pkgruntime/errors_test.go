package pkgruntime

import (
	"errors"
	"testing"
)

func TestCommandFailedErrorUnwrapsToSentinel(t *testing.T) {
	err := &CommandFailedError{ExitCode: 2, Stderr: "no such file"}

	if !errors.Is(err, ErrCommandFailed) {
		t.Fatal("CommandFailedError should unwrap to ErrCommandFailed")
	}
	if err.Error() != ErrCommandFailed.Error() {
		t.Fatalf("Error() = %q, want %q", err.Error(), ErrCommandFailed.Error())
	}
}
