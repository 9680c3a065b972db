package board

import "github.com/inference-sim/boardsim/sim"

// Session tags a message with the communication it belongs to.
// Embedding it makes a message a sim.SessionMessage.
type Session sim.CommunicationID

// CommunicationID implements sim.SessionMessage.
func (s Session) CommunicationID() sim.CommunicationID {
	return sim.CommunicationID(s)
}

// === Session messages ===

// InitCommunication asks the Dispatcher to open a session for Client.
type InitCommunication struct {
	Session
	Client sim.ActorID
}

func (InitCommunication) Duration() int64 { return 1 }

// InitAck tells the client which Worker serves its session.
type InitAck struct {
	Session
	Worker sim.ActorID
}

func (InitAck) Duration() int64 { return 1 }

// FinishCommunication ends a session. Clients tell it to their Worker.
type FinishCommunication struct {
	Session
}

func (FinishCommunication) Duration() int64 { return 1 }

// FinishAck confirms FinishCommunication to the client.
type FinishAck struct {
	Session
}

func (FinishAck) Duration() int64 { return 1 }

// SessionClosed is sent by a retiring Worker so the Dispatcher drops the session.
type SessionClosed struct {
	Session
	Worker sim.ActorID
}

func (SessionClosed) Duration() int64 { return 1 }

// === Dispatcher messages ===

// Stop shuts the Dispatcher down. Requester, when set, receives StopAck.
type Stop struct {
	Requester sim.ActorID
}

func (Stop) Duration() int64 { return 2 }

// StopAck confirms that the Dispatcher retired.
type StopAck struct {
	Sender sim.ActorID
}

func (StopAck) Duration() int64 { return 2 }

// === Replies ===

// Reply is the outcome of a client operation, produced by the store and
// forwarded to the client by the Worker.
type Reply interface {
	sim.SessionMessage
	reply()
}

// OperationAck reports a successful operation.
type OperationAck struct {
	Session
}

// OperationFailed reports an operation that was invalid for the board's
// current content. It is a normal reply, not an error.
type OperationFailed struct {
	Session
	Reason string
}

// FoundMessages answers a retrieve or search operation.
type FoundMessages struct {
	Session
	Messages []UserMessage
}

// UserBanned reports that the acting client is banned.
type UserBanned struct {
	Session
}

func (OperationAck) Duration() int64    { return 1 }
func (OperationFailed) Duration() int64 { return 1 }
func (FoundMessages) Duration() int64   { return 1 }
func (UserBanned) Duration() int64      { return 1 }

func (OperationAck) reply()    {}
func (OperationFailed) reply() {}
func (FoundMessages) reply()   {}
func (UserBanned) reply()      {}
