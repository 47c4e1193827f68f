package models

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusInitiated, StatusPending},
		{StatusInitiated, StatusCompleted},
		{StatusInitiated, StatusFailed},
		{StatusPending, StatusCompleted},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusFailed},
		{StatusCompleted, StatusRefunded},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("Expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to string }{
		{StatusInitiated, StatusCancelled},
		{StatusInitiated, StatusRefunded},
		{StatusPending, StatusInitiated},
		{StatusPending, StatusRefunded},
		{StatusCompleted, StatusPending},
		{StatusCompleted, StatusFailed},
		{StatusCancelled, StatusPending},
		{StatusRefunded, StatusCompleted},
		{StatusFailed, StatusPending},
		{StatusFailed, StatusCompleted},
	}
	for _, tc := range forbidden {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("Expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, status := range []string{StatusCancelled, StatusRefunded, StatusFailed} {
		if !IsTerminal(status) {
			t.Errorf("Expected %s to be terminal", status)
		}
	}
	// Completed still has the refund edge, so it is not terminal.
	for _, status := range []string{StatusInitiated, StatusPending, StatusCompleted} {
		if IsTerminal(status) {
			t.Errorf("Expected %s to be non-terminal", status)
		}
	}
}
