// Package store provides the reference message store: an actor that answers
// the board's store protocol from an in-memory Board.
package store

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/boardsim/sim"
	"github.com/inference-sim/boardsim/sim/board"
)

// MessageStore answers every StoreRequest on the tick it is delivered.
type MessageStore struct {
	sim.Base
	rt      sim.Runtime
	content *Board
}

// New creates a MessageStore with an empty board.
func New(rt sim.Runtime, cfg Config) *MessageStore {
	return &MessageStore{rt: rt, content: NewBoard(cfg)}
}

// Board returns the store's content.
func (s *MessageStore) Board() *Board {
	return s.content
}

// Receive implements sim.Actor.
func (s *MessageStore) Receive(msg sim.Message) error {
	req, ok := msg.(board.StoreRequest)
	if !ok {
		return fmt.Errorf("%w: store cannot handle %T", sim.ErrUnknownMessage, msg)
	}
	reply, err := s.handle(req)
	if err != nil {
		return err
	}
	s.rt.Tell(req.ReplyTo(), reply)
	return nil
}

func (s *MessageStore) handle(req board.StoreRequest) (sim.Message, error) {
	session := board.Session(req.CommunicationID())
	var err error
	switch r := req.(type) {
	case board.Prepare:
		return board.PrepareAck{Session: session}, nil
	case board.RetrieveFromStore:
		return board.FoundMessages{Session: session, Messages: s.content.ByAuthor(r.Author)}, nil
	case board.SearchInStore:
		return board.FoundMessages{Session: session, Messages: s.content.Search(r.SearchText)}, nil
	case board.UpdateMessageStore:
		var id int64
		id, err = s.content.Publish(r.Message)
		if err == nil {
			logrus.Debugf("[tick %07d] Stored message %d by %s", s.rt.CurrentTime(), id, r.Message.Author)
		}
	case board.AddLike:
		err = s.content.Like(r.ClientName, r.MessageID)
	case board.AddDislike:
		err = s.content.Dislike(r.ClientName, r.MessageID)
	case board.DeleteLikeOrDislike:
		err = s.content.RemoveVote(r.ClientName, r.MessageID, r.Type)
	case board.AddReaction:
		err = s.content.React(r.ClientName, r.MessageID, r.Reaction)
	case board.EditMessage:
		err = s.content.Edit(r.ClientName, r.MessageID, r.NewMessage)
	case board.DeleteMessage:
		err = s.content.Delete(r.ClientName, r.MessageID)
	case board.AddReport:
		err = s.content.Report(r.ClientName, r.ReportedClientName)
		if err == nil && s.content.IsBanned(r.ReportedClientName) {
			logrus.Infof("[tick %07d] User %s is banned", s.rt.CurrentTime(), r.ReportedClientName)
		}
	default:
		return nil, fmt.Errorf("%w: store cannot handle %T", sim.ErrUnknownMessage, req)
	}
	return outcome(session, err), nil
}

// outcome turns a domain result into the reply the client receives.
func outcome(session board.Session, err error) board.Reply {
	switch {
	case err == nil:
		return board.OperationAck{Session: session}
	case errors.Is(err, ErrBanned):
		return board.UserBanned{Session: session}
	default:
		return board.OperationFailed{Session: session, Reason: err.Error()}
	}
}
