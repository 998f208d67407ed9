package tdma

import (
	"errors"
	"testing"
)

func TestResultStringExhaustive(t *testing.T) {
	results := []Result{
		Ok, TryAgain, NotSender, FrequencyViolation, LatencyViolation,
		IllegalAddress, SubscriptionFailure, IllegalArgument, NetworkError,
		NotConnected, BufferTooSmall, MalformedPacket, SlotMismatch, OutOfSync,
	}
	for _, r := range results {
		s := r.String()
		if s == "" {
			t.Fatalf("Result(%d).String() is empty", int(r))
		}
	}

	if got := Result(999).String(); got == "" {
		t.Fatalf("out-of-range Result.String() should not be empty")
	}
}

func TestErrorIsResult(t *testing.T) {
	err := newErr("Receive", OutOfSync, nil)
	if !errors.Is(err, OutOfSync) {
		t.Fatalf("errors.Is(err, OutOfSync) = false, want true")
	}
	if errors.Is(err, MalformedPacket) {
		t.Fatalf("errors.Is(err, MalformedPacket) = true, want false")
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := newErr("Send", NetworkError, inner)
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is(err, inner) = false, want true")
	}
}
