package dynamo

import (
	"errors"
	"testing"
)

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Frame: 12, Time: 0.2, Wrapped: ErrInvalidState}

	if !errors.Is(err, ErrInvalidState) {
		t.Error("expected SimulationError to unwrap to ErrInvalidState")
	}
	want := "frame 12 (t=0.2000): " + ErrInvalidState.Error()
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
