package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/boardsim/sim"
	"github.com/inference-sim/boardsim/sim/board"
	"github.com/inference-sim/boardsim/sim/internal/testutil"
	"github.com/inference-sim/boardsim/sim/store"
)

type fixture struct {
	sys        *sim.System
	store      *store.MessageStore
	dispatcher *board.Dispatcher
	client     *testutil.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sys := sim.NewSystem()
	st := store.New(sys, store.DefaultConfig())
	_, err := sys.Spawn(st)
	require.NoError(t, err)
	d := board.NewDispatcher(sys, board.DefaultConfig(), st.ID())
	_, err = sys.Spawn(d)
	require.NoError(t, err)
	client := &testutil.Recorder{}
	_, err = sys.Spawn(client)
	require.NoError(t, err)
	return &fixture{sys: sys, store: st, dispatcher: d, client: client}
}

// open initiates communication id and returns the worker from the InitAck.
func (f *fixture) open(t *testing.T, id sim.CommunicationID) sim.ActorID {
	t.Helper()
	want := len(f.client.Received) + 1
	f.sys.Tell(f.dispatcher.ID(), board.InitCommunication{Session: board.Session(id), Client: f.client.ID()})
	require.NoError(t, testutil.RunUntilReceived(t, f.sys, f.client, want, 50))
	ack, ok := f.client.Last().(board.InitAck)
	require.True(t, ok, "got %T", f.client.Last())
	assert.Equal(t, id, ack.CommunicationID())
	return ack.Worker
}

func TestDispatcher_InitCommunication_AcksWithWorker(t *testing.T) {
	// GIVEN a dispatcher
	f := newFixture(t)

	// WHEN a client initiates communication 10
	worker := f.open(t, 10)

	// THEN the InitAck names a live worker bound to 10, one tick after the request
	assert.Equal(t, []int64{1}, f.client.Ticks)
	a, ok := f.sys.Lookup(worker)
	require.True(t, ok)
	assert.Equal(t, sim.CommunicationID(10), a.(*board.Worker).Session())
	assert.Equal(t, []sim.CommunicationID{10}, f.dispatcher.Sessions())
}

func TestDispatcher_PublishRoundTrip(t *testing.T) {
	// GIVEN an open session 10 whose InitAck arrived on tick 1
	f := newFixture(t)
	worker := f.open(t, 10)

	// WHEN the client publishes through the worker
	f.sys.Tell(worker, board.Publish{Session: 10, Message: board.NewUserMessage("John", "hello")})
	require.NoError(t, testutil.RunUntilReceived(t, f.sys, f.client, 2, 50))

	// THEN OperationAck arrives after both store phases and the publish duration
	assert.Equal(t, board.OperationAck{Session: 10}, f.client.Last())
	assert.Equal(t, int64(12), f.client.Ticks[1])
	assert.Equal(t, 1, f.store.Board().Len())

	// AND the session is released and the worker is gone
	require.NoError(t, f.sys.RunFor(2))
	assert.Empty(t, f.dispatcher.Sessions())
	_, live := f.sys.Lookup(worker)
	assert.False(t, live)
}

func TestDispatcher_ReplyTiming_LowerBound(t *testing.T) {
	ops := []board.Operation{
		board.Publish{Session: 10, Message: board.NewUserMessage("John", "hello")},
		board.RetrieveMessages{Session: 10, Author: "John"},
		board.SearchMessages{Session: 10, SearchText: "searchtext"},
		board.Like{Session: 10, ClientName: "John", MessageID: 1},
		board.Dislike{Session: 10, ClientName: "John", MessageID: 1},
		board.RemoveLikeOrDislike{Session: 10, ClientName: "John", MessageID: 1, Type: board.LikeTypeLike},
		board.Reaction{Session: 10, ClientName: "John", MessageID: 1, Emoji: board.EmojiHorror},
		board.Edit{Session: 10, MessageID: 90, ClientName: "John", NewMessage: "newMsg"},
		board.Delete{Session: 10, MessageID: 3, ClientName: "John"},
		board.Report{Session: 10, ClientName: "John", ReportedClientName: "Jane"},
	}
	cfg := board.DefaultConfig()
	for _, op := range ops {
		// GIVEN a fresh session whose worker was spawned on tick 0
		f := newFixture(t)
		worker := f.open(t, 10)

		// WHEN the operation is sent
		f.sys.Tell(worker, op)
		require.NoError(t, testutil.RunUntilReceived(t, f.sys, f.client, 2, 50))

		// THEN exactly one reply arrives, no earlier than both store phases plus execution
		_, isReply := f.client.Last().(board.Reply)
		assert.True(t, isReply, "%T answered with %T", op, f.client.Last())
		assert.GreaterOrEqual(t, f.client.Ticks[1], 2*cfg.StorePhaseTicks+cfg.OperationTicks(op), "%T", op)
		require.NoError(t, f.sys.RunFor(20))
		assert.Len(t, f.client.Received, 2, "%T", op)
	}
}

func TestDispatcher_CommunicationMismatch_UnknownClient(t *testing.T) {
	// GIVEN a session opened with id 20
	f := newFixture(t)
	worker := f.open(t, 20)

	// WHEN the client sends an operation tagged 21 to the worker
	f.sys.Tell(worker, board.Like{Session: 21, ClientName: "John", MessageID: 1})
	err := f.sys.RunFor(1)

	// THEN the run reports ErrUnknownClient from the worker
	require.ErrorIs(t, err, sim.ErrUnknownClient)
	errs := sim.DeliveryErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, worker, errs[0].Actor)
}

func TestDispatcher_RoutesByCommunicationID(t *testing.T) {
	// GIVEN a session 10
	f := newFixture(t)
	f.open(t, 10)

	// WHEN the operation goes through the dispatcher instead of the worker
	f.sys.Tell(f.dispatcher.ID(), board.SearchMessages{Session: 10, SearchText: "x"})
	require.NoError(t, testutil.RunUntilReceived(t, f.sys, f.client, 2, 50))

	// THEN the worker still answers
	assert.IsType(t, board.FoundMessages{}, f.client.Last())

	// WHEN an unknown communication is routed
	f.sys.Tell(f.dispatcher.ID(), board.Like{Session: 99, ClientName: "John", MessageID: 1})

	// THEN the dispatcher reports ErrUnknownClient
	assert.ErrorIs(t, f.sys.RunFor(1), sim.ErrUnknownClient)
}

func TestDispatcher_DuplicateInit_UnknownClient(t *testing.T) {
	f := newFixture(t)
	f.open(t, 10)

	f.sys.Tell(f.dispatcher.ID(), board.InitCommunication{Session: 10, Client: f.client.ID()})

	assert.ErrorIs(t, f.sys.RunFor(1), sim.ErrUnknownClient)
	assert.Equal(t, []sim.CommunicationID{10}, f.dispatcher.Sessions())
}

func TestDispatcher_UnsupportedMessage_UnknownMessage(t *testing.T) {
	f := newFixture(t)
	f.sys.Tell(f.dispatcher.ID(), board.OperationAck{Session: 10})
	assert.ErrorIs(t, f.sys.RunFor(1), sim.ErrUnknownMessage)
}

func TestDispatcher_PublishWithStoredID_OperationFailed(t *testing.T) {
	// GIVEN an open session
	f := newFixture(t)
	worker := f.open(t, 10)

	// WHEN the client publishes a message that already carries an id
	f.sys.Tell(worker, board.Publish{Session: 10, Message: board.UserMessage{ID: 5, Author: "John", Text: "hi"}})
	require.NoError(t, testutil.RunUntilReceived(t, f.sys, f.client, 2, 50))

	// THEN the store's verdict reaches the client as a reply, not an error
	failed, ok := f.client.Last().(board.OperationFailed)
	require.True(t, ok, "got %T", f.client.Last())
	assert.Equal(t, sim.CommunicationID(10), failed.CommunicationID())
	assert.NotEmpty(t, failed.Reason)
	assert.Equal(t, 0, f.store.Board().Len())
}

func TestDispatcher_FinishCommunication(t *testing.T) {
	// GIVEN an open session
	f := newFixture(t)
	worker := f.open(t, 10)

	// WHEN the client finishes it
	f.sys.Tell(worker, board.FinishCommunication{Session: 10})
	require.NoError(t, testutil.RunUntilReceived(t, f.sys, f.client, 2, 10))

	// THEN FinishAck arrives on the next tick and the session is released
	assert.Equal(t, board.FinishAck{Session: 10}, f.client.Last())
	assert.Equal(t, f.client.Ticks[0]+2, f.client.Ticks[1])
	require.NoError(t, f.sys.RunFor(1))
	assert.Empty(t, f.dispatcher.Sessions())

	// AND the id can be reused
	f.open(t, 10)
}

func TestDispatcher_MessageForWorkerRetiredThisTick_UnknownClient(t *testing.T) {
	// GIVEN an open session whose worker is finished on the same tick a Like is routed
	f := newFixture(t)
	worker := f.open(t, 10)
	f.sys.Tell(worker, board.FinishCommunication{Session: 10})
	f.sys.Tell(f.dispatcher.ID(), board.Like{Session: 10, ClientName: "John", MessageID: 1})

	// WHEN that tick runs
	err := f.sys.RunFor(1)

	// THEN the Like is refused instead of turning into a dead letter
	require.ErrorIs(t, err, sim.ErrUnknownClient)
	assert.Empty(t, f.dispatcher.Sessions())
	assert.Equal(t, 0, f.sys.DeadLetters())

	// AND the late SessionClosed is accepted and the client still gets its FinishAck
	require.NoError(t, testutil.RunUntilReceived(t, f.sys, f.client, 2, 10))
	assert.Equal(t, board.FinishAck{Session: 10}, f.client.Last())
	require.NoError(t, f.sys.RunFor(2))
	assert.Equal(t, 0, f.sys.DeadLetters())
	f.open(t, 10)
}

func TestDispatcher_SessionsAreIndependent(t *testing.T) {
	// GIVEN sessions 10 and 20
	f := newFixture(t)
	w10 := f.open(t, 10)
	w20 := f.open(t, 20)

	// WHEN 20 misbehaves while 10 publishes
	f.sys.Tell(w10, board.Publish{Session: 10, Message: board.NewUserMessage("John", "hello")})
	f.sys.Tell(w20, board.Like{Session: 21, ClientName: "Jane", MessageID: 1})
	err := f.sys.RunFor(1)
	require.ErrorIs(t, err, sim.ErrUnknownClient)
	require.NoError(t, testutil.RunUntilReceived(t, f.sys, f.client, 3, 50))

	// THEN session 10 still completes
	assert.Equal(t, board.OperationAck{Session: 10}, f.client.Last())
	assert.Equal(t, []sim.CommunicationID{20}, f.dispatcher.Sessions())
}

func TestDispatcher_Stop(t *testing.T) {
	// GIVEN a dispatcher
	f := newFixture(t)
	start := f.sys.CurrentTime()

	// WHEN Stop is requested
	f.sys.Tell(f.dispatcher.ID(), board.Stop{Requester: f.client.ID()})
	require.NoError(t, testutil.RunUntilReceived(t, f.sys, f.client, 1, 10))

	// THEN StopAck arrives once the Stop's duration has elapsed, naming the dispatcher
	assert.Equal(t, board.StopAck{Sender: f.dispatcher.ID()}, f.client.Last())
	assert.Equal(t, start+3, f.client.Ticks[0])
	_, live := f.sys.Lookup(f.dispatcher.ID())
	assert.False(t, live)

	// AND later messages to it are dead letters
	f.sys.Tell(f.dispatcher.ID(), board.InitCommunication{Session: 10, Client: f.client.ID()})
	require.NoError(t, f.sys.RunFor(1))
	assert.Equal(t, 1, f.sys.DeadLetters())
}

func TestDispatcher_Stopping_RefusesWork(t *testing.T) {
	// GIVEN a dispatcher that received Stop without a requester
	f := newFixture(t)
	f.sys.Tell(f.dispatcher.ID(), board.Stop{})
	require.NoError(t, f.sys.RunFor(1))
	require.True(t, f.dispatcher.Stopping())

	// WHEN a second Stop and a new session arrive
	f.sys.Tell(f.dispatcher.ID(), board.Stop{})
	f.sys.Tell(f.dispatcher.ID(), board.InitCommunication{Session: 10, Client: f.client.ID()})
	err := f.sys.RunFor(1)

	// THEN both are refused
	errs := sim.DeliveryErrors(err)
	require.Len(t, errs, 2)
	for _, de := range errs {
		assert.ErrorIs(t, de, sim.ErrUnknownMessage)
	}

	// AND the dispatcher retires silently
	require.NoError(t, f.sys.RunFor(5))
	_, live := f.sys.Lookup(f.dispatcher.ID())
	assert.False(t, live)
	assert.Empty(t, f.client.Received)
}
