// Package scenario runs scripted client sessions against a board and
// reports how each session ended.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/boardsim/sim/board"
	"github.com/inference-sim/boardsim/sim/store"
)

// Scenario is the top-level scenario configuration.
// Loaded from YAML via Load(path).
type Scenario struct {
	Name     string        `yaml:"name"`
	Horizon  int64         `yaml:"horizon" validate:"gt=0"`
	StopAt   *int64        `yaml:"stop_at,omitempty" validate:"omitempty,gte=0"`
	Board    board.Config  `yaml:"board"`
	Store    store.Config  `yaml:"store"`
	Sessions []SessionSpec `yaml:"sessions" validate:"required,min=1,dive"`
}

// SessionSpec scripts one client: it starts at Start, opens
// CommunicationID and then either runs Operation or finishes.
type SessionSpec struct {
	Client          string `yaml:"client" validate:"required"`
	CommunicationID int64  `yaml:"communication_id"`
	Start           int64  `yaml:"start" validate:"gte=0"`
	// SendAs tags the operation with another communication id.
	SendAs        *int64         `yaml:"send_as,omitempty"`
	ViaDispatcher bool           `yaml:"via_dispatcher,omitempty"`
	Finish        bool           `yaml:"finish,omitempty"`
	Operation     *OperationSpec `yaml:"operation,omitempty"`
}

// OperationSpec describes a client operation. Fields a kind does not use are ignored.
type OperationSpec struct {
	Kind       string `yaml:"kind" validate:"required,oneof=publish retrieve search like dislike remove_vote reaction edit delete report"`
	Text       string `yaml:"text,omitempty"`
	PresetID   *int64 `yaml:"preset_id,omitempty"`
	Author     string `yaml:"author,omitempty"`
	SearchText string `yaml:"search_text,omitempty"`
	MessageID  int64  `yaml:"message_id,omitempty"`
	LikeType   string `yaml:"like_type,omitempty" validate:"omitempty,oneof=like dislike"`
	Emoji      string `yaml:"emoji,omitempty"`
	NewText    string `yaml:"new_text,omitempty"`
	Reported   string `yaml:"reported,omitempty"`
}

// Load reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario. Board and store settings the document
// omits keep their defaults.
func Parse(data []byte) (*Scenario, error) {
	sc := Scenario{
		Board: board.DefaultConfig(),
		Store: store.DefaultConfig(),
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks field bounds and the rules that span fields.
func (s *Scenario) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	if s.StopAt != nil && *s.StopAt > s.Horizon {
		return fmt.Errorf("stop_at %d is past the horizon %d", *s.StopAt, s.Horizon)
	}
	seen := make(map[int64]bool, len(s.Sessions))
	for i, sess := range s.Sessions {
		prefix := fmt.Sprintf("sessions[%d]", i)
		if seen[sess.CommunicationID] {
			return fmt.Errorf("%s: communication_id %d is used twice", prefix, sess.CommunicationID)
		}
		seen[sess.CommunicationID] = true
		if sess.Finish == (sess.Operation != nil) {
			return fmt.Errorf("%s: exactly one of finish or operation is required", prefix)
		}
		if sess.Operation != nil {
			if _, err := sess.Operation.Build(0, sess.Client); err != nil {
				return fmt.Errorf("%s: %w", prefix, err)
			}
		}
	}
	return nil
}

// Build turns the spec into the operation client sends on session.
func (o OperationSpec) Build(session board.Session, client string) (board.Operation, error) {
	switch o.Kind {
	case "publish":
		msg := board.NewUserMessage(client, o.Text)
		if o.PresetID != nil {
			msg.ID = *o.PresetID
		}
		return board.Publish{Session: session, Message: msg}, nil
	case "retrieve":
		author := o.Author
		if author == "" {
			author = client
		}
		return board.RetrieveMessages{Session: session, Author: author}, nil
	case "search":
		return board.SearchMessages{Session: session, SearchText: o.SearchText}, nil
	case "like":
		return board.Like{Session: session, ClientName: client, MessageID: o.MessageID}, nil
	case "dislike":
		return board.Dislike{Session: session, ClientName: client, MessageID: o.MessageID}, nil
	case "remove_vote":
		kind := board.LikeType(o.LikeType)
		if kind == "" {
			kind = board.LikeTypeLike
		}
		return board.RemoveLikeOrDislike{Session: session, ClientName: client, MessageID: o.MessageID, Type: kind}, nil
	case "reaction":
		emoji := board.Emoji(o.Emoji)
		if !board.ValidEmojis[emoji] {
			return nil, fmt.Errorf("unknown emoji %q", o.Emoji)
		}
		return board.Reaction{Session: session, ClientName: client, MessageID: o.MessageID, Emoji: emoji}, nil
	case "edit":
		return board.Edit{Session: session, MessageID: o.MessageID, ClientName: client, NewMessage: o.NewText}, nil
	case "delete":
		return board.Delete{Session: session, MessageID: o.MessageID, ClientName: client}, nil
	case "report":
		if o.Reported == "" {
			return nil, fmt.Errorf("report requires reported")
		}
		return board.Report{Session: session, ClientName: client, ReportedClientName: o.Reported}, nil
	default:
		return nil, fmt.Errorf("unknown operation kind %q", o.Kind)
	}
}
