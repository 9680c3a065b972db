package sim

// Message is the unit of communication between actors.
// Duration is the number of ticks the message declares as its processing cost.
// It is a pure function of the concrete message type.
type Message interface {
	Duration() int64
}

// CommunicationID identifies one client session.
type CommunicationID int64

// SessionMessage is a Message bound to a client session.
type SessionMessage interface {
	Message
	CommunicationID() CommunicationID
}
