package board

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/boardsim/sim"
)

// Dispatcher is the entry point of the board. It opens a session per
// InitCommunication by spawning a Worker, routes the session's messages to
// it, and shuts down on Stop after the Stop's duration has elapsed.
type Dispatcher struct {
	sim.Base
	rt    sim.Runtime
	cfg   Config
	store sim.ActorID

	sessions  map[sim.CommunicationID]sim.ActorID
	released  map[sim.ActorID]sim.CommunicationID // retired before SessionClosed arrived
	stop      *Stop
	armed     bool
	remaining int64
	retired   bool
}

// NewDispatcher creates a Dispatcher whose Workers persist to store.
func NewDispatcher(rt sim.Runtime, cfg Config, store sim.ActorID) *Dispatcher {
	return &Dispatcher{
		rt:       rt,
		cfg:      cfg,
		store:    store,
		sessions: make(map[sim.CommunicationID]sim.ActorID),
		released: make(map[sim.ActorID]sim.CommunicationID),
	}
}

// Sessions returns the active communication ids in ascending order.
func (d *Dispatcher) Sessions() []sim.CommunicationID {
	ids := lo.Keys(d.sessions)
	slices.Sort(ids)
	return ids
}

// WorkerFor returns the Worker serving id.
func (d *Dispatcher) WorkerFor(id sim.CommunicationID) (sim.ActorID, bool) {
	w, ok := d.sessions[id]
	return w, ok
}

// Stopping reports whether a Stop has been received.
func (d *Dispatcher) Stopping() bool {
	return d.stop != nil
}

// Receive implements sim.Actor.
func (d *Dispatcher) Receive(msg sim.Message) error {
	if d.retired {
		return fmt.Errorf("%w: dispatcher is retired", sim.ErrUnknownMessage)
	}
	switch m := msg.(type) {
	case InitCommunication:
		return d.open(m)
	case SessionClosed:
		if id, ok := d.released[m.Worker]; ok && id == m.CommunicationID() {
			delete(d.released, m.Worker)
			return nil
		}
		worker, ok := d.sessions[m.CommunicationID()]
		if !ok || worker != m.Worker {
			return fmt.Errorf("%w: no session %d served by actor %d", sim.ErrUnknownClient, m.CommunicationID(), m.Worker)
		}
		delete(d.sessions, m.CommunicationID())
		logrus.Debugf("[tick %07d] Dispatcher closed communication %d", d.rt.CurrentTime(), m.CommunicationID())
	case FinishCommunication:
		return d.route(m)
	case Operation:
		return d.route(m)
	case Stop:
		if d.stop != nil {
			return fmt.Errorf("%w: dispatcher is already stopping", sim.ErrUnknownMessage)
		}
		d.stop = &m
		logrus.Infof("[tick %07d] Dispatcher stopping with %d open session(s)", d.rt.CurrentTime(), len(d.sessions))
	default:
		return fmt.Errorf("%w: dispatcher cannot handle %T", sim.ErrUnknownMessage, msg)
	}
	return nil
}

func (d *Dispatcher) open(m InitCommunication) error {
	if d.stop != nil {
		return fmt.Errorf("%w: dispatcher is stopping, refusing communication %d", sim.ErrUnknownMessage, m.CommunicationID())
	}
	if _, ok := d.liveWorker(m.CommunicationID()); ok {
		return fmt.Errorf("%w: communication %d is already open", sim.ErrUnknownClient, m.CommunicationID())
	}
	w := NewWorker(d.rt, d.cfg, Binding{
		Session:    m.Session,
		Client:     m.Client,
		Store:      d.store,
		Dispatcher: d.ID(),
	})
	id, err := d.rt.Spawn(w)
	if err != nil {
		return fmt.Errorf("spawn worker for communication %d: %w", m.CommunicationID(), err)
	}
	d.sessions[m.CommunicationID()] = id
	d.rt.Tell(m.Client, InitAck{Session: m.Session, Worker: id})
	logrus.Debugf("[tick %07d] Dispatcher opened communication %d on worker %d", d.rt.CurrentTime(), m.CommunicationID(), id)
	return nil
}

func (d *Dispatcher) route(m sim.SessionMessage) error {
	worker, ok := d.liveWorker(m.CommunicationID())
	if !ok {
		return fmt.Errorf("%w: no session for communication %d", sim.ErrUnknownClient, m.CommunicationID())
	}
	d.rt.Tell(worker, m)
	return nil
}

// liveWorker returns the Worker serving id. A Worker that retired earlier in
// this tick is released here, ahead of its SessionClosed.
func (d *Dispatcher) liveWorker(id sim.CommunicationID) (sim.ActorID, bool) {
	worker, ok := d.sessions[id]
	if !ok {
		return sim.NoActor, false
	}
	if !d.rt.Alive(worker) {
		delete(d.sessions, id)
		d.released[worker] = id
		logrus.Debugf("[tick %07d] Dispatcher released communication %d of retired worker %d", d.rt.CurrentTime(), id, worker)
		return sim.NoActor, false
	}
	return worker, true
}

// Tick implements sim.Ticker. A Stop is armed on the tick it arrives and
// completes once its duration has elapsed.
func (d *Dispatcher) Tick(now int64) error {
	if d.stop == nil || d.retired {
		return nil
	}
	if !d.armed {
		d.armed = true
		d.remaining = d.stop.Duration()
		return nil
	}
	d.remaining--
	if d.remaining > 0 {
		return nil
	}
	if d.stop.Requester != sim.NoActor {
		d.rt.Tell(d.stop.Requester, StopAck{Sender: d.ID()})
	}
	d.retired = true
	d.rt.Stop(d.ID())
	logrus.Infof("[tick %07d] Dispatcher retired", now)
	return nil
}
