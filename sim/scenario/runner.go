package scenario

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/boardsim/sim"
	"github.com/inference-sim/boardsim/sim/board"
	"github.com/inference-sim/boardsim/sim/store"
	"github.com/inference-sim/boardsim/sim/trace"
)

// Report is the result of running a scenario.
type Report struct {
	Scenario    string
	Outcomes    []Outcome // in session order
	FinalClock  int64
	StoppedAt   int64 // tick StopAck arrived, -1 if it did not
	TimedOut    bool
	DeadLetters int
	Stored      []board.UserMessage
	Banned      []string
	Errors      []string               // actor errors no session could be blamed for
	Trace       *trace.SimulationTrace // nil unless deliveries were traced
}

// Run executes sc until every session has ended, and any requested Stop has
// been acknowledged, or the horizon passes.
func Run(sc *Scenario, traceConfig trace.TraceConfig) (*Report, error) {
	var st *trace.SimulationTrace
	if traceConfig.Level == trace.TraceLevelDeliveries {
		st = trace.NewSimulationTrace(traceConfig)
	}
	sys := sim.NewSystem(sim.WithTrace(st))

	messageStore := store.New(sys, sc.Store)
	if _, err := sys.Spawn(messageStore); err != nil {
		return nil, fmt.Errorf("spawn store: %w", err)
	}
	dispatcher := board.NewDispatcher(sys, sc.Board, messageStore.ID())
	if _, err := sys.Spawn(dispatcher); err != nil {
		return nil, fmt.Errorf("spawn dispatcher: %w", err)
	}
	var op *operator
	if sc.StopAt != nil {
		op = &operator{ackedAt: -1}
		if _, err := sys.Spawn(op); err != nil {
			return nil, fmt.Errorf("spawn operator: %w", err)
		}
	}
	clients := make([]*client, 0, len(sc.Sessions))
	for i, spec := range sc.Sessions {
		c, err := newClient(sys, spec, dispatcher.ID())
		if err != nil {
			return nil, fmt.Errorf("sessions[%d]: %w", i, err)
		}
		if _, err := sys.Spawn(c); err != nil {
			return nil, fmt.Errorf("sessions[%d]: spawn client: %w", i, err)
		}
		clients = append(clients, c)
	}

	report := &Report{Scenario: sc.Name, StoppedAt: -1, Trace: st}
	finished := func() bool {
		for _, c := range clients {
			if !c.done() {
				return false
			}
		}
		return op == nil || op.ackedAt >= 0
	}

	for !finished() && sys.CurrentTime() <= sc.Horizon {
		if sc.StopAt != nil && sys.CurrentTime() == *sc.StopAt {
			sys.Tell(dispatcher.ID(), board.Stop{Requester: op.ID()})
		}
		if err := sys.RunFor(1); err != nil {
			report.blame(err, clients)
		}
	}

	report.TimedOut = !finished()
	if report.TimedOut {
		logrus.Warnf("Scenario %q reached its horizon %d with unfinished sessions", sc.Name, sc.Horizon)
	}
	report.FinalClock = sys.CurrentTime()
	report.DeadLetters = sys.DeadLetters()
	if op != nil {
		report.StoppedAt = op.ackedAt
	}
	for _, c := range clients {
		report.Outcomes = append(report.Outcomes, c.outcome)
	}
	report.Stored = messageStore.Board().All()
	report.Banned = messageStore.Board().Banned()
	return report, nil
}

// blame assigns each actor error to the session it concerns: the session of
// the failing worker, else the session the message was tagged with.
func (r *Report) blame(err error, clients []*client) {
	for _, de := range sim.DeliveryErrors(err) {
		if c := sessionOf(de, clients); c != nil {
			c.fail(de.Clock, de.Err)
			continue
		}
		r.Errors = append(r.Errors, de.Error())
		logrus.Warnf("Unattributed actor error: %v", de)
	}
}

func sessionOf(de *sim.DeliveryError, clients []*client) *client {
	for _, c := range clients {
		if c.outcome.Worker != sim.NoActor && c.outcome.Worker == de.Actor {
			return c
		}
	}
	sm, ok := de.Message.(sim.SessionMessage)
	if !ok {
		return nil
	}
	id := int64(sm.CommunicationID())
	for _, c := range clients {
		if c.spec.CommunicationID == id {
			return c
		}
	}
	for _, c := range clients {
		if c.sendID() == id {
			return c
		}
	}
	return nil
}
