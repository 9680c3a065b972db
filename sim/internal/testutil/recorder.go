package testutil

import (
	"testing"

	"github.com/inference-sim/boardsim/sim"
)

// Recorder is a client actor that keeps every message it receives together
// with the tick it arrived on.
type Recorder struct {
	sim.Base
	Received []sim.Message
	Ticks    []int64
}

// Receive implements sim.Actor.
func (r *Recorder) Receive(msg sim.Message) error {
	r.Received = append(r.Received, msg)
	r.Ticks = append(r.Ticks, r.TimeSinceSystemStart())
	return nil
}

// Last returns the most recent message, or nil.
func (r *Recorder) Last() sim.Message {
	if len(r.Received) == 0 {
		return nil
	}
	return r.Received[len(r.Received)-1]
}

// RunUntilReceived steps sys one tick at a time until r holds n messages. It
// returns the first run error and fails the test if maxTicks elapse first.
func RunUntilReceived(t *testing.T, sys *sim.System, r *Recorder, n int, maxTicks int64) error {
	t.Helper()
	for i := int64(0); len(r.Received) < n; i++ {
		if i >= maxTicks {
			t.Fatalf("Recorder got %d of %d messages after %d ticks", len(r.Received), n, maxTicks)
		}
		if err := sys.RunFor(1); err != nil {
			return err
		}
	}
	return nil
}
