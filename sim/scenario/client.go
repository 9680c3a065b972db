package scenario

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/boardsim/sim"
	"github.com/inference-sim/boardsim/sim/board"
)

// Status is the state of a scripted session.
type Status string

const (
	StatusPending Status = "pending"
	StatusReplied Status = "replied"
	StatusFailed  Status = "failed"
)

// Outcome records how one session ended.
type Outcome struct {
	Client          string
	CommunicationID int64
	Worker          sim.ActorID
	Status          Status
	Reply           string // message type of the final reply
	Reason          string // OperationFailed reason
	Found           int    // messages in FoundMessages
	InitAckAt       int64
	Tick            int64 // tick of the final reply or failure
	Err             string
}

// begin wakes a client at its start tick.
type begin struct{}

func (begin) Duration() int64 { return 0 }

// client runs one SessionSpec.
type client struct {
	sim.Base
	rt         sim.Runtime
	spec       SessionSpec
	dispatcher sim.ActorID
	op         board.Operation // nil when the session only finishes
	outcome    Outcome
}

func newClient(rt sim.Runtime, spec SessionSpec, dispatcher sim.ActorID) (*client, error) {
	c := &client{
		rt:         rt,
		spec:       spec,
		dispatcher: dispatcher,
		outcome: Outcome{
			Client:          spec.Client,
			CommunicationID: spec.CommunicationID,
			Status:          StatusPending,
			InitAckAt:       -1,
			Tick:            -1,
		},
	}
	if spec.Operation != nil {
		op, err := spec.Operation.Build(board.Session(c.sendID()), spec.Client)
		if err != nil {
			return nil, err
		}
		c.op = op
	}
	return c, nil
}

// sendID is the communication id the client tags its operation with.
func (c *client) sendID() int64 {
	if c.spec.SendAs != nil {
		return *c.spec.SendAs
	}
	return c.spec.CommunicationID
}

func (c *client) done() bool {
	return c.outcome.Status != StatusPending
}

// AtStartUp implements sim.Starter.
func (c *client) AtStartUp() {
	c.rt.Schedule(c.ID(), begin{}, c.spec.Start-c.rt.CurrentTime())
}

// Receive implements sim.Actor.
func (c *client) Receive(msg sim.Message) error {
	now := c.TimeSinceSystemStart()
	switch m := msg.(type) {
	case begin:
		c.rt.Tell(c.dispatcher, board.InitCommunication{
			Session: board.Session(c.spec.CommunicationID),
			Client:  c.ID(),
		})
	case board.InitAck:
		c.outcome.Worker = m.Worker
		c.outcome.InitAckAt = now
		target := m.Worker
		if c.spec.ViaDispatcher {
			target = c.dispatcher
		}
		if c.op == nil {
			c.rt.Tell(target, board.FinishCommunication{Session: board.Session(c.sendID())})
		} else {
			c.rt.Tell(target, c.op)
		}
	case board.FinishAck:
		c.finish(now, msg)
	case board.Reply:
		c.finish(now, msg)
		switch r := m.(type) {
		case board.OperationFailed:
			c.outcome.Reason = r.Reason
		case board.FoundMessages:
			c.outcome.Found = len(r.Messages)
		}
	default:
		return fmt.Errorf("%w: client cannot handle %T", sim.ErrUnknownMessage, msg)
	}
	return nil
}

func (c *client) finish(now int64, msg sim.Message) {
	c.outcome.Status = StatusReplied
	c.outcome.Reply = messageName(msg)
	c.outcome.Tick = now
	logrus.Infof("[tick %07d] %s (communication %d) got %s", now, c.spec.Client, c.spec.CommunicationID, c.outcome.Reply)
}

func (c *client) fail(now int64, err error) {
	if c.done() {
		return
	}
	c.outcome.Status = StatusFailed
	c.outcome.Tick = now
	c.outcome.Err = err.Error()
	logrus.Infof("[tick %07d] %s (communication %d) failed: %v", now, c.spec.Client, c.spec.CommunicationID, err)
}

// messageName returns the unqualified type name of msg.
func messageName(msg sim.Message) string {
	name := fmt.Sprintf("%T", msg)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// operator requests Stop and records when it was acknowledged.
type operator struct {
	sim.Base
	ackedAt int64
}

func (o *operator) Receive(msg sim.Message) error {
	if _, ok := msg.(board.StopAck); !ok {
		return fmt.Errorf("%w: operator cannot handle %T", sim.ErrUnknownMessage, msg)
	}
	o.ackedAt = o.TimeSinceSystemStart()
	return nil
}
