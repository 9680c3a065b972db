package sim

// ActorID identifies a spawned actor. IDs are assigned by the System starting
// at 1 and are never reused while the System is live.
type ActorID int64

// NoActor is the zero ActorID. It never names a live actor.
const NoActor ActorID = 0

// Actor is the unit of computation. Receive is invoked by the run loop for
// every message delivered to the actor; it may send further messages through
// the Runtime, mutate only the actor's own state, and return an error
// (typically wrapping ErrUnknownClient or ErrUnknownMessage).
//
// Implementations embed Base, which supplies the identity and message log.
type Actor interface {
	Receive(msg Message) error
	base() *Base
}

// Starter is implemented by actors that act as soon as they are spawned.
type Starter interface {
	AtStartUp()
}

// Ticker is implemented by actors that carry time-dependent state. Tick is
// called once per tick, after that tick's deliveries.
type Ticker interface {
	Tick(now int64) error
}

// Base carries the state every actor shares: its identity, the log of
// messages it has processed, and the last tick it observed.
type Base struct {
	id       ActorID
	observed bool
	now      int64
	log      []Message
}

func (b *Base) base() *Base { return b }

// ID returns the id assigned on spawn, or NoActor before that.
func (b *Base) ID() ActorID {
	return b.id
}

// MessageLog returns the messages delivered to this actor, in arrival order.
func (b *Base) MessageLog() []Message {
	out := make([]Message, len(b.log))
	copy(out, b.log)
	return out
}

// TimeSinceSystemStart returns the last tick the actor observed, or -1 if it
// has not observed the clock yet.
func (b *Base) TimeSinceSystemStart() int64 {
	if !b.observed {
		return -1
	}
	return b.now
}

func (b *Base) observe(now int64) {
	b.observed = true
	b.now = now
}

func (b *Base) record(msg Message) {
	b.log = append(b.log, msg)
}
