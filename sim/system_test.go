package sim

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/boardsim/sim/trace"
)

type ping struct{ n int }

func (ping) Duration() int64 { return 1 }

type sessionPing struct{ id CommunicationID }

func (sessionPing) Duration() int64 { return 1 }

func (p sessionPing) CommunicationID() CommunicationID { return p.id }

// recorder keeps every message it receives and optionally fails.
type recorder struct {
	Base
	received []Message
	at       []int64
	fail     error
}

func (r *recorder) Receive(msg Message) error {
	r.received = append(r.received, msg)
	r.at = append(r.at, r.TimeSinceSystemStart())
	return r.fail
}

// relay forwards everything it receives to next.
type relay struct {
	Base
	rt   Runtime
	next ActorID
}

func (r *relay) Receive(msg Message) error {
	r.rt.Tell(r.next, msg)
	return nil
}

// counter counts Tick calls and may spawn a child on its first tick.
type counter struct {
	Base
	rt      Runtime
	ticks   []int64
	child   *counter
	started bool
}

func (c *counter) Receive(Message) error { return nil }

func (c *counter) AtStartUp() { c.started = true }

func (c *counter) Tick(now int64) error {
	c.ticks = append(c.ticks, now)
	if c.child != nil && c.child.ID() == NoActor {
		if _, err := c.rt.Spawn(c.child); err != nil {
			return err
		}
	}
	return nil
}

func TestSystem_NewSystem_ClockStartsAtZero(t *testing.T) {
	s := NewSystem()
	assert.Equal(t, int64(0), s.CurrentTime())
	assert.Empty(t, s.Actors())
}

func TestSystem_RunUntil_ProcessesThroughEndTick(t *testing.T) {
	// GIVEN a system with one idle actor
	s := NewSystem()
	_, err := s.Spawn(&recorder{})
	require.NoError(t, err)

	// WHEN run until tick 10
	require.NoError(t, s.RunUntil(10))

	// THEN ticks 0..10 were processed and the clock reads 11
	assert.Equal(t, int64(11), s.CurrentTime())
}

func TestSystem_RunFor_AdvancesExactly(t *testing.T) {
	s := NewSystem()
	require.NoError(t, s.RunFor(3))
	require.NoError(t, s.RunFor(0))
	assert.Equal(t, int64(3), s.CurrentTime())
}

func TestSystem_Spawn_AssignsSequentialIDs(t *testing.T) {
	// GIVEN three actors
	s := NewSystem()
	a, b, c := &recorder{}, &recorder{}, &recorder{}

	// WHEN spawned in order
	ida, _ := s.Spawn(a)
	idb, _ := s.Spawn(b)
	idc, _ := s.Spawn(c)

	// THEN ids start at 1 and the registry keeps spawn order
	assert.Equal(t, []ActorID{1, 2, 3}, []ActorID{ida, idb, idc})
	assert.Equal(t, []ActorID{1, 2, 3}, s.Actors())
	assert.Equal(t, ida, a.ID())

	got, ok := s.Lookup(idb)
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestSystem_Spawn_Twice_Fails(t *testing.T) {
	s := NewSystem()
	a := &recorder{}
	id, err := s.Spawn(a)
	require.NoError(t, err)

	again, err := s.Spawn(a)
	assert.ErrorIs(t, err, ErrAlreadySpawned)
	assert.Equal(t, id, again)
	assert.Len(t, s.Actors(), 1)
}

func TestSystem_Spawn_IDsNotReusedAfterStop(t *testing.T) {
	s := NewSystem()
	first, _ := s.Spawn(&recorder{})
	s.Stop(first)
	second, _ := s.Spawn(&recorder{})
	assert.NotEqual(t, first, second)
}

func TestSystem_Spawn_ObservesClockAndRunsStartUp(t *testing.T) {
	// GIVEN an actor that has never been spawned
	c := &counter{}
	assert.Equal(t, int64(-1), c.TimeSinceSystemStart())

	// WHEN spawned at tick 2
	s := NewSystem()
	require.NoError(t, s.RunFor(2))
	c.rt = s
	_, err := s.Spawn(c)
	require.NoError(t, err)

	// THEN it observed the clock and its start-up hook ran
	assert.Equal(t, int64(2), c.TimeSinceSystemStart())
	assert.True(t, c.started)
}

func TestSystem_Tell_OutsideLoop_DeliveredOnCurrentTick(t *testing.T) {
	// GIVEN a message told before any tick ran
	s := NewSystem()
	r := &recorder{}
	id, _ := s.Spawn(r)
	s.Tell(id, ping{n: 1})

	// WHEN one tick is processed
	require.NoError(t, s.RunFor(1))

	// THEN it was delivered during tick 0
	require.Len(t, r.received, 1)
	assert.Equal(t, []int64{0}, r.at)
	assert.Equal(t, 0, s.Pending())
}

func TestSystem_Tell_DuringTick_DeliveredOnNextTick(t *testing.T) {
	// GIVEN a relay in front of a recorder
	s := NewSystem()
	r := &recorder{}
	rid, _ := s.Spawn(r)
	rel := &relay{rt: s, next: rid}
	relID, _ := s.Spawn(rel)

	// WHEN the relay receives a message on tick 0
	s.Tell(relID, ping{n: 7})
	require.NoError(t, s.RunFor(1))

	// THEN the forwarded copy is not visible until tick 1
	assert.Empty(t, r.received)
	require.NoError(t, s.RunFor(1))
	require.Len(t, r.received, 1)
	assert.Equal(t, []int64{1}, r.at)
}

func TestSystem_Tell_SameTarget_PreservesSendOrder(t *testing.T) {
	s := NewSystem()
	r := &recorder{}
	id, _ := s.Spawn(r)
	for i := 0; i < 5; i++ {
		s.Tell(id, ping{n: i})
	}

	require.NoError(t, s.RunFor(1))

	require.Len(t, r.received, 5)
	for i, msg := range r.received {
		assert.Equal(t, ping{n: i}, msg, "position %d", i)
	}
	assert.Equal(t, r.received, r.MessageLog())
}

func TestSystem_Schedule_DelaysDelivery(t *testing.T) {
	// GIVEN a message scheduled 3 ticks ahead
	s := NewSystem()
	r := &recorder{}
	id, _ := s.Spawn(r)
	s.Schedule(id, ping{}, 3)

	// WHEN ticks 0..2 run
	require.NoError(t, s.RunFor(3))

	// THEN nothing arrived yet
	assert.Empty(t, r.received)

	// WHEN tick 3 runs
	require.NoError(t, s.RunFor(1))

	// THEN the message arrives on tick 3
	assert.Equal(t, []int64{3}, r.at)
}

func TestSystem_Schedule_NegativeDelayActsLikeTell(t *testing.T) {
	s := NewSystem()
	r := &recorder{}
	id, _ := s.Spawn(r)
	s.Schedule(id, ping{}, -4)
	require.NoError(t, s.RunFor(1))
	assert.Equal(t, []int64{0}, r.at)
}

func TestSystem_Stop_IsIdempotentAndDropsLaterMessages(t *testing.T) {
	// GIVEN a stopped actor
	s := NewSystem()
	r := &recorder{}
	id, _ := s.Spawn(r)
	assert.True(t, s.Alive(id))
	s.Stop(id)
	assert.False(t, s.Alive(id))
	s.Stop(id)
	s.Stop(ActorID(99))

	// WHEN a message is told to it
	s.Tell(id, ping{})
	require.NoError(t, s.RunFor(1))

	// THEN it is counted as a dead letter and never delivered
	assert.Empty(t, r.received)
	assert.Equal(t, 1, s.DeadLetters())
	assert.Empty(t, s.Actors())
	_, ok := s.Lookup(id)
	assert.False(t, ok)
}

func TestSystem_ReceiveError_PropagatesAfterTickCompletes(t *testing.T) {
	// GIVEN a failing actor and a healthy one, both with mail on tick 0
	s := NewSystem()
	bad := &recorder{fail: fmt.Errorf("%w: communication 21", ErrUnknownClient)}
	good := &recorder{}
	badID, _ := s.Spawn(bad)
	goodID, _ := s.Spawn(good)
	s.Tell(badID, sessionPing{id: 21})
	s.Tell(goodID, ping{})
	s.Tell(goodID, ping{n: 1})

	// WHEN running for several ticks
	err := s.RunFor(5)

	// THEN the error surfaces after tick 0 and the healthy actor was unaffected
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownClient)
	assert.False(t, errors.Is(err, ErrUnknownMessage))
	assert.Equal(t, int64(1), s.CurrentTime())
	assert.Len(t, good.received, 2)

	des := DeliveryErrors(err)
	require.Len(t, des, 1)
	assert.Equal(t, badID, des[0].Actor)
	assert.Equal(t, int64(0), des[0].Clock)
	assert.Equal(t, sessionPing{id: 21}, des[0].Message)

	// THEN the system keeps running afterwards
	bad.fail = nil
	s.Tell(badID, ping{})
	require.NoError(t, s.RunFor(1))
	assert.Len(t, bad.received, 2)
}

func TestSystem_ReceiveErrors_FromSeveralActorsAreJoined(t *testing.T) {
	s := NewSystem()
	a := &recorder{fail: ErrUnknownClient}
	b := &recorder{fail: ErrUnknownMessage}
	ida, _ := s.Spawn(a)
	idb, _ := s.Spawn(b)
	s.Tell(ida, ping{})
	s.Tell(idb, ping{})

	err := s.RunFor(1)

	assert.ErrorIs(t, err, ErrUnknownClient)
	assert.ErrorIs(t, err, ErrUnknownMessage)
	assert.Len(t, DeliveryErrors(err), 2)
}

func TestSystem_Tick_CalledEveryTickInSpawnOrder(t *testing.T) {
	// GIVEN a ticking actor that spawns a ticking child on its first tick
	s := NewSystem()
	child := &counter{}
	parent := &counter{rt: s, child: child}
	_, err := s.Spawn(parent)
	require.NoError(t, err)

	// WHEN three ticks run
	require.NoError(t, s.RunFor(3))

	// THEN the parent ticked on 0,1,2 and the child only from the tick after its spawn
	assert.Equal(t, []int64{0, 1, 2}, parent.ticks)
	assert.Equal(t, []int64{1, 2}, child.ticks)
	assert.True(t, child.started)
}

func TestSystem_Trace_RecordsDeliveriesAndDeadLetters(t *testing.T) {
	// GIVEN a traced system
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDeliveries})
	s := NewSystem(WithTrace(st))
	r := &recorder{}
	id, _ := s.Spawn(r)

	// WHEN one session message is delivered and one message hits a stopped actor
	s.Tell(id, sessionPing{id: 10})
	require.NoError(t, s.RunFor(1))
	s.Stop(id)
	s.Tell(id, ping{})
	require.NoError(t, s.RunFor(1))

	// THEN both are recorded
	require.Len(t, st.Deliveries, 2)
	assert.Equal(t, trace.DeliveryRecord{
		Clock: 0, Target: int64(id), Kind: "sim.sessionPing", CommunicationID: 10, HasSession: true,
	}, st.Deliveries[0])
	assert.True(t, st.Deliveries[1].DeadLetter)
	assert.Equal(t, int64(1), st.Deliveries[1].Clock)
}

func TestSystem_SameInputs_IdenticalTraces(t *testing.T) {
	run := func() []trace.DeliveryRecord {
		st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDeliveries})
		s := NewSystem(WithTrace(st))
		r := &recorder{}
		rid, _ := s.Spawn(r)
		rel := &relay{rt: s, next: rid}
		relID, _ := s.Spawn(rel)
		for i := 0; i < 4; i++ {
			s.Schedule(relID, ping{n: i}, int64(i%2))
			s.Tell(rid, sessionPing{id: CommunicationID(i)})
		}
		require.NoError(t, s.RunFor(5))
		return st.Deliveries
	}

	assert.Equal(t, run(), run())
}
