package board

import (
	"fmt"

	"github.com/inference-sim/boardsim/sim"
)

// Operation is a client request routed to the session's Worker. Its Duration
// is the number of ticks the Worker spends executing it.
type Operation interface {
	sim.SessionMessage
	operation()
}

// Publish stores a new message. Message.ID must be NewMessageID.
type Publish struct {
	Session
	Message UserMessage
}

// RetrieveMessages lists every message written by Author.
type RetrieveMessages struct {
	Session
	Author string
}

// SearchMessages lists every message whose text contains SearchText.
type SearchMessages struct {
	Session
	SearchText string
}

type Like struct {
	Session
	ClientName string
	MessageID  int64
}

type Dislike struct {
	Session
	ClientName string
	MessageID  int64
}

// RemoveLikeOrDislike takes back a vote of the given type.
type RemoveLikeOrDislike struct {
	Session
	ClientName string
	MessageID  int64
	Type       LikeType
}

type Reaction struct {
	Session
	ClientName string
	MessageID  int64
	Emoji      Emoji
}

// Edit replaces the text of a message. Only its author may edit it.
type Edit struct {
	Session
	MessageID  int64
	ClientName string
	NewMessage string
}

// Delete removes a message. Only its author may delete it.
type Delete struct {
	Session
	MessageID  int64
	ClientName string
}

// Report flags ReportedClientName. Enough reports ban the reported client.
type Report struct {
	Session
	ClientName         string
	ReportedClientName string
}

func (Publish) Duration() int64             { return 3 }
func (RetrieveMessages) Duration() int64    { return 3 }
func (SearchMessages) Duration() int64      { return 3 }
func (Like) Duration() int64                { return 1 }
func (Dislike) Duration() int64             { return 1 }
func (RemoveLikeOrDislike) Duration() int64 { return 1 }
func (Reaction) Duration() int64            { return 1 }
func (Edit) Duration() int64                { return 1 }
func (Delete) Duration() int64              { return 1 }
func (Report) Duration() int64              { return 1 }

func (Publish) operation()             {}
func (RetrieveMessages) operation()    {}
func (SearchMessages) operation()      {}
func (Like) operation()                {}
func (Dislike) operation()             {}
func (RemoveLikeOrDislike) operation() {}
func (Reaction) operation()            {}
func (Edit) operation()                {}
func (Delete) operation()              {}
func (Report) operation()              {}

// PersistRequest maps op onto the store request that persists it. The store
// replies to storeClient.
func PersistRequest(op Operation, storeClient sim.ActorID) (StoreRequest, error) {
	env := Envelope{Session: Session(op.CommunicationID()), StoreClient: storeClient}
	switch o := op.(type) {
	case Publish:
		return UpdateMessageStore{Envelope: env, Message: o.Message}, nil
	case RetrieveMessages:
		return RetrieveFromStore{Envelope: env, Author: o.Author}, nil
	case SearchMessages:
		return SearchInStore{Envelope: env, SearchText: o.SearchText}, nil
	case Like:
		return AddLike{Envelope: env, ClientName: o.ClientName, MessageID: o.MessageID}, nil
	case Dislike:
		return AddDislike{Envelope: env, ClientName: o.ClientName, MessageID: o.MessageID}, nil
	case RemoveLikeOrDislike:
		return DeleteLikeOrDislike{Envelope: env, ClientName: o.ClientName, MessageID: o.MessageID, Type: o.Type}, nil
	case Reaction:
		return AddReaction{Envelope: env, ClientName: o.ClientName, MessageID: o.MessageID, Reaction: o.Emoji}, nil
	case Edit:
		return EditMessage{Envelope: env, MessageID: o.MessageID, ClientName: o.ClientName, NewMessage: o.NewMessage}, nil
	case Delete:
		return DeleteMessage{Envelope: env, ClientName: o.ClientName, MessageID: o.MessageID}, nil
	case Report:
		return AddReport{Envelope: env, ClientName: o.ClientName, ReportedClientName: o.ReportedClientName}, nil
	default:
		return nil, fmt.Errorf("%w: no store request for %T", sim.ErrUnknownMessage, op)
	}
}
