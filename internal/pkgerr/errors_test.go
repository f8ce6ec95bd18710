package pkgerr

import (
	"errors"
	"testing"
)

var errSentinel = errors.New("sentinel")

func TestWrapPreservesSentinelAndCause(t *testing.T) {
	cause := errors.New("underlying cause")
	err := Wrap(errSentinel, cause)

	if !errors.Is(err, errSentinel) {
		t.Fatal("wrapped error should match the sentinel")
	}
	if !errors.Is(err, cause) {
		t.Fatal("wrapped error should match the cause")
	}
}

func TestWrapNilCauseYieldsNil(t *testing.T) {
	if err := Wrap(errSentinel, nil); err != nil {
		t.Fatalf("Wrap(sentinel, nil) = %v, want nil", err)
	}
}

func TestWrapfPreservesSentinelAndMessage(t *testing.T) {
	err := Wrapf(errSentinel, "image %q not found", "debian12")

	if !errors.Is(err, errSentinel) {
		t.Fatal("wrapped error should match the sentinel")
	}
	want := "sentinel: image \"debian12\" not found"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
