package board

import "github.com/inference-sim/boardsim/sim"

// StoreRequest is a message a Worker sends to the message store. The store
// answers Prepare with PrepareAck and every other request with a Reply,
// addressed to ReplyTo.
type StoreRequest interface {
	sim.SessionMessage
	ReplyTo() sim.ActorID
	storeRequest()
}

// Envelope carries the header every store request shares.
type Envelope struct {
	Session
	StoreClient sim.ActorID
}

// ReplyTo returns the actor the store answers.
func (e Envelope) ReplyTo() sim.ActorID {
	return e.StoreClient
}

// Prepare asks the store to get ready for an operation on this session.
type Prepare struct {
	Envelope
}

// PrepareAck answers Prepare.
type PrepareAck struct {
	Session
}

func (PrepareAck) Duration() int64 { return 1 }

type UpdateMessageStore struct {
	Envelope
	Message UserMessage
}

type RetrieveFromStore struct {
	Envelope
	Author string
}

type SearchInStore struct {
	Envelope
	SearchText string
}

type AddLike struct {
	Envelope
	ClientName string
	MessageID  int64
}

type AddDislike struct {
	Envelope
	ClientName string
	MessageID  int64
}

type DeleteLikeOrDislike struct {
	Envelope
	ClientName string
	MessageID  int64
	Type       LikeType
}

type AddReaction struct {
	Envelope
	ClientName string
	MessageID  int64
	Reaction   Emoji
}

type AddReport struct {
	Envelope
	ClientName         string
	ReportedClientName string
}

type EditMessage struct {
	Envelope
	MessageID  int64
	ClientName string
	NewMessage string
}

type DeleteMessage struct {
	Envelope
	ClientName string
	MessageID  int64
}

func (Prepare) Duration() int64             { return 1 }
func (UpdateMessageStore) Duration() int64  { return 1 }
func (RetrieveFromStore) Duration() int64   { return 1 }
func (SearchInStore) Duration() int64       { return 1 }
func (AddLike) Duration() int64             { return 1 }
func (AddDislike) Duration() int64          { return 1 }
func (DeleteLikeOrDislike) Duration() int64 { return 1 }
func (AddReaction) Duration() int64         { return 1 }
func (AddReport) Duration() int64           { return 1 }
func (EditMessage) Duration() int64         { return 1 }
func (DeleteMessage) Duration() int64       { return 1 }

func (Prepare) storeRequest()             {}
func (UpdateMessageStore) storeRequest()  {}
func (RetrieveFromStore) storeRequest()   {}
func (SearchInStore) storeRequest()       {}
func (AddLike) storeRequest()             {}
func (AddDislike) storeRequest()          {}
func (DeleteLikeOrDislike) storeRequest() {}
func (AddReaction) storeRequest()         {}
func (AddReport) storeRequest()           {}
func (EditMessage) storeRequest()         {}
func (DeleteMessage) storeRequest()       {}
