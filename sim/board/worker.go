package board

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/boardsim/sim"
)

type workerPhase int

const (
	phasePreparing workerPhase = iota
	phaseReady
	phaseExecuting
	phasePersisting
	phaseRetired
)

func (p workerPhase) String() string {
	switch p {
	case phasePreparing:
		return "preparing"
	case phaseReady:
		return "ready"
	case phaseExecuting:
		return "executing"
	case phasePersisting:
		return "persisting"
	case phaseRetired:
		return "retired"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Binding names the actors a Worker talks to.
type Binding struct {
	Session    Session
	Client     sim.ActorID
	Store      sim.ActorID
	Dispatcher sim.ActorID
}

// Worker serves one session. It prepares the store, executes a single
// operation, persists it and forwards the store's reply to the client.
//
// Phases: preparing → ready → executing → persisting → retired.
// Preparing and persisting each last at least StorePhaseTicks and end only
// once the store has answered.
type Worker struct {
	sim.Base
	rt      sim.Runtime
	cfg     Config
	binding Binding

	phase     workerPhase
	remaining int64 // ticks left in the current timed phase
	prepared  bool
	pending   Operation
	reply     Reply
}

// NewWorker creates a Worker. It sends Prepare to the store when spawned.
func NewWorker(rt sim.Runtime, cfg Config, b Binding) *Worker {
	return &Worker{rt: rt, cfg: cfg, binding: b}
}

// Session returns the communication the Worker is bound to.
func (w *Worker) Session() sim.CommunicationID {
	return w.binding.Session.CommunicationID()
}

// Phase returns the name of the current phase.
func (w *Worker) Phase() string {
	return w.phase.String()
}

// AtStartUp implements sim.Starter.
func (w *Worker) AtStartUp() {
	w.phase = phasePreparing
	w.remaining = w.cfg.StorePhaseTicks
	w.rt.Tell(w.binding.Store, Prepare{Envelope: Envelope{Session: w.binding.Session, StoreClient: w.ID()}})
	logrus.Debugf("[tick %07d] Worker %d preparing communication %d", w.rt.CurrentTime(), w.ID(), w.Session())
}

// Receive implements sim.Actor.
func (w *Worker) Receive(msg sim.Message) error {
	if w.phase == phaseRetired {
		return fmt.Errorf("%w: worker for communication %d is retired", sim.ErrUnknownMessage, w.Session())
	}
	sm, ok := msg.(sim.SessionMessage)
	if !ok {
		return fmt.Errorf("%w: worker cannot handle %T", sim.ErrUnknownMessage, msg)
	}
	if sm.CommunicationID() != w.Session() {
		return fmt.Errorf("%w: communication %d sent to worker of communication %d",
			sim.ErrUnknownClient, sm.CommunicationID(), w.Session())
	}

	switch m := msg.(type) {
	case FinishCommunication:
		w.retire(FinishAck{Session: w.binding.Session})
	case PrepareAck:
		if w.phase != phasePreparing || w.prepared {
			return fmt.Errorf("%w: unexpected PrepareAck while %s", sim.ErrUnknownMessage, w.phase)
		}
		w.prepared = true
	case Operation:
		if w.pending != nil {
			return fmt.Errorf("%w: session %d already has an operation", sim.ErrUnknownMessage, w.Session())
		}
		w.pending = m
	case Reply:
		if w.phase != phasePersisting || w.reply != nil {
			return fmt.Errorf("%w: unexpected %T while %s", sim.ErrUnknownMessage, msg, w.phase)
		}
		w.reply = m
	default:
		return fmt.Errorf("%w: worker cannot handle %T", sim.ErrUnknownMessage, msg)
	}
	return nil
}

// Tick implements sim.Ticker.
func (w *Worker) Tick(now int64) error {
	switch w.phase {
	case phasePreparing:
		w.countDown()
		if w.remaining > 0 || !w.prepared {
			return nil
		}
		w.phase = phaseReady
		logrus.Debugf("[tick %07d] Worker %d ready", now, w.ID())
		fallthrough
	case phaseReady:
		if w.pending == nil {
			return nil
		}
		w.phase = phaseExecuting
		w.remaining = w.cfg.OperationTicks(w.pending)
	case phaseExecuting:
		w.countDown()
		if w.remaining > 0 {
			return nil
		}
		req, err := PersistRequest(w.pending, w.ID())
		if err != nil {
			return err
		}
		w.rt.Tell(w.binding.Store, req)
		w.phase = phasePersisting
		w.remaining = w.cfg.StorePhaseTicks
		logrus.Debugf("[tick %07d] Worker %d persisting %T", now, w.ID(), w.pending)
	case phasePersisting:
		w.countDown()
		if w.remaining > 0 || w.reply == nil {
			return nil
		}
		w.retire(w.reply)
	}
	return nil
}

func (w *Worker) countDown() {
	if w.remaining > 0 {
		w.remaining--
	}
}

// retire sends the final reply, releases the session and stops the Worker.
func (w *Worker) retire(final sim.Message) {
	w.rt.Tell(w.binding.Client, final)
	w.rt.Tell(w.binding.Dispatcher, SessionClosed{Session: w.binding.Session, Worker: w.ID()})
	w.rt.Stop(w.ID())
	w.phase = phaseRetired
	logrus.Debugf("[tick %07d] Worker %d retired with %T", w.rt.CurrentTime(), w.ID(), final)
}
