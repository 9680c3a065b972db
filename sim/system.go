package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/boardsim/sim/trace"
)

// System owns the global clock and the registry of live actors.
// It is single-threaded: every method must be called from one goroutine.
type System struct {
	clock   int64
	ticking bool // true while a tick is being processed
	nextID  ActorID
	seq     uint64
	actors  map[ActorID]Actor
	order   []ActorID // live actors in spawn order
	queue   *deliveryQueue

	deadLetters int
	trace       *trace.SimulationTrace
}

// Option configures a System.
type Option func(*System)

// WithTrace records every delivery into st when its level enables it.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(s *System) {
		s.trace = st
	}
}

// NewSystem creates a System with its clock at zero.
func NewSystem(opts ...Option) *System {
	s := &System{
		actors: make(map[ActorID]Actor),
		order:  make([]ActorID, 0),
		queue:  newDeliveryQueue(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spawn registers a, assigns it a fresh id and runs its start-up hook.
func (s *System) Spawn(a Actor) (ActorID, error) {
	b := a.base()
	if b.id != NoActor {
		return b.id, fmt.Errorf("%w: actor %d", ErrAlreadySpawned, b.id)
	}
	s.nextID++
	b.id = s.nextID
	s.actors[b.id] = a
	s.order = append(s.order, b.id)
	b.observe(s.clock)
	logrus.Debugf("[tick %07d] Spawned actor %d (%T)", s.clock, b.id, a)

	if st, ok := a.(Starter); ok {
		st.AtStartUp()
	}
	return b.id, nil
}

// Stop deregisters the actor. Stopping an unknown or stopped actor is a no-op.
func (s *System) Stop(id ActorID) {
	if _, ok := s.actors[id]; !ok {
		return
	}
	delete(s.actors, id)
	for i, live := range s.order {
		if live == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	logrus.Debugf("[tick %07d] Stopped actor %d", s.clock, id)
}

// Tell enqueues msg for immediate delivery to the target. A message told
// while a tick is being processed is delivered on the next tick; otherwise
// it is delivered on the current one.
func (s *System) Tell(to ActorID, msg Message) {
	s.enqueue(to, msg, 0)
}

// Schedule enqueues msg for delivery delay ticks after the tick Tell would use.
// Negative delays are treated as zero.
func (s *System) Schedule(to ActorID, msg Message, delay int64) {
	if delay < 0 {
		delay = 0
	}
	s.enqueue(to, msg, delay)
}

func (s *System) enqueue(to ActorID, msg Message, delay int64) {
	at := s.clock + delay
	if s.ticking {
		at++
	}
	s.seq++
	s.queue.schedule(&delivery{at: at, seq: s.seq, to: to, msg: msg})
}

// CurrentTime returns the current tick.
func (s *System) CurrentTime() int64 {
	return s.clock
}

// Actors returns the ids of live actors in spawn order.
func (s *System) Actors() []ActorID {
	out := make([]ActorID, len(s.order))
	copy(out, s.order)
	return out
}

// Lookup returns the live actor registered under id.
func (s *System) Lookup(id ActorID) (Actor, bool) {
	a, ok := s.actors[id]
	return a, ok
}

// Alive reports whether id names a live actor.
func (s *System) Alive(id ActorID) bool {
	_, ok := s.actors[id]
	return ok
}

// DeadLetters returns the number of messages addressed to actors that were
// not live when the message became due.
func (s *System) DeadLetters() int {
	return s.deadLetters
}

// Pending returns the number of messages not yet delivered.
func (s *System) Pending() int {
	return s.queue.Len()
}

// RunFor processes n ticks. It stops after the first tick in which an actor
// returned an error, and returns that tick's errors joined.
func (s *System) RunFor(n int64) error {
	for i := int64(0); i < n; i++ {
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil processes ticks while the clock is at or before end, with the
// same error behaviour as RunFor.
func (s *System) RunUntil(end int64) error {
	for s.clock <= end {
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

// step processes one tick: every due delivery, then every Ticker that was
// live when the tick began, then the clock advances. Actor errors do not cut
// the tick short, so other sessions are unaffected.
func (s *System) step() error {
	now := s.clock
	s.ticking = true
	live := s.Actors()
	var errs []error

	for d := s.queue.popDue(now); d != nil; d = s.queue.popDue(now) {
		a, ok := s.actors[d.to]
		if !ok {
			s.deadLetters++
			logrus.Warnf("[tick %07d] Dead letter %T for actor %d", now, d.msg, d.to)
			s.record(now, d, true)
			continue
		}
		b := a.base()
		b.observe(now)
		b.record(d.msg)
		s.record(now, d, false)
		logrus.Debugf("[tick %07d] Deliver %T to actor %d", now, d.msg, d.to)
		if err := a.Receive(d.msg); err != nil {
			errs = append(errs, &DeliveryError{Clock: now, Actor: d.to, Message: d.msg, Err: err})
		}
	}

	for _, id := range live {
		a, ok := s.actors[id]
		if !ok {
			continue
		}
		t, ok := a.(Ticker)
		if !ok {
			continue
		}
		a.base().observe(now)
		if err := t.Tick(now); err != nil {
			errs = append(errs, &DeliveryError{Clock: now, Actor: id, Err: err})
		}
	}

	s.ticking = false
	s.clock++
	if len(errs) > 0 {
		logrus.Debugf("[tick %07d] %d actor error(s)", now, len(errs))
	}
	return errors.Join(errs...)
}

func (s *System) record(now int64, d *delivery, dead bool) {
	if !s.trace.Enabled() {
		return
	}
	rec := trace.DeliveryRecord{
		Clock:      now,
		Target:     int64(d.to),
		Kind:       fmt.Sprintf("%T", d.msg),
		DeadLetter: dead,
	}
	if sm, ok := d.msg.(SessionMessage); ok {
		rec.CommunicationID = int64(sm.CommunicationID())
		rec.HasSession = true
	}
	s.trace.RecordDelivery(rec)
}
