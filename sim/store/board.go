package store

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/inference-sim/boardsim/sim/board"
)

// Domain failures. Except for ErrBanned they are reported to the client as
// OperationFailed.
var (
	ErrBanned           = errors.New("user is banned")
	ErrMessageNotFound  = errors.New("message not found")
	ErrAlreadyStored    = errors.New("message already has an id")
	ErrDuplicateMessage = errors.New("message already published")
	ErrMessageTooLong   = errors.New("message text too long")
	ErrAlreadyVoted     = errors.New("vote already cast")
	ErrNoVote           = errors.New("no such vote")
	ErrAlreadyReacted   = errors.New("reaction already added")
	ErrUnknownEmoji     = errors.New("unknown emoji")
	ErrUnknownLikeType  = errors.New("unknown like type")
	ErrNotAuthor        = errors.New("only the author may change a message")
	ErrAlreadyReported  = errors.New("user already reported by this client")
	ErrSelfReport       = errors.New("clients cannot report themselves")
)

// Board is the authoritative in-memory content of the message board.
type Board struct {
	cfg      Config
	nextID   int64
	messages map[int64]*board.UserMessage
	reports  map[string]map[string]struct{} // reported → reporters
	banned   map[string]bool
}

// NewBoard creates an empty board.
func NewBoard(cfg Config) *Board {
	return &Board{
		cfg:      cfg,
		messages: make(map[int64]*board.UserMessage),
		reports:  make(map[string]map[string]struct{}),
		banned:   make(map[string]bool),
	}
}

// Publish stores msg under a fresh id and returns the id.
func (b *Board) Publish(msg board.UserMessage) (int64, error) {
	if !msg.IsNew() {
		return 0, fmt.Errorf("%w: %d", ErrAlreadyStored, msg.ID)
	}
	if b.banned[msg.Author] {
		return 0, fmt.Errorf("%w: %s", ErrBanned, msg.Author)
	}
	if err := b.checkLength(msg.Text); err != nil {
		return 0, err
	}
	dup := lo.ContainsBy(lo.Values(b.messages), func(m *board.UserMessage) bool {
		return m.Author == msg.Author && m.Text == msg.Text
	})
	if dup {
		return 0, fmt.Errorf("%w: %q by %s", ErrDuplicateMessage, msg.Text, msg.Author)
	}
	b.nextID++
	stored := msg.Clone()
	stored.ID = b.nextID
	b.messages[stored.ID] = &stored
	return stored.ID, nil
}

// Message returns a copy of the message stored under id.
func (b *Board) Message(id int64) (board.UserMessage, bool) {
	m, ok := b.messages[id]
	if !ok {
		return board.UserMessage{}, false
	}
	return m.Clone(), true
}

// Len returns the number of stored messages.
func (b *Board) Len() int {
	return len(b.messages)
}

// All returns copies of every stored message by ascending id.
func (b *Board) All() []board.UserMessage {
	return b.collect(func(*board.UserMessage) bool { return true })
}

// ByAuthor returns copies of the messages written by author, by ascending id.
func (b *Board) ByAuthor(author string) []board.UserMessage {
	return b.collect(func(m *board.UserMessage) bool {
		return m.Author == author
	})
}

// Search returns copies of the messages whose text or author contains text,
// compared case-insensitively, by ascending id.
func (b *Board) Search(text string) []board.UserMessage {
	needle := strings.ToLower(text)
	return b.collect(func(m *board.UserMessage) bool {
		return strings.Contains(strings.ToLower(m.Text), needle) ||
			strings.Contains(strings.ToLower(m.Author), needle)
	})
}

func (b *Board) collect(keep func(m *board.UserMessage) bool) []board.UserMessage {
	found := lo.Filter(lo.Values(b.messages), func(m *board.UserMessage, _ int) bool {
		return keep(m)
	})
	slices.SortFunc(found, func(x, y *board.UserMessage) int {
		return cmp.Compare(x.ID, y.ID)
	})
	return lo.Map(found, func(m *board.UserMessage, _ int) board.UserMessage {
		return m.Clone()
	})
}

// Like adds one point to the message on behalf of client.
func (b *Board) Like(client string, id int64) error {
	return b.vote(client, id, board.LikeTypeLike)
}

// Dislike takes one point from the message on behalf of client.
func (b *Board) Dislike(client string, id int64) error {
	return b.vote(client, id, board.LikeTypeDislike)
}

func (b *Board) vote(client string, id int64, kind board.LikeType) error {
	m, err := b.target(client, id)
	if err != nil {
		return err
	}
	voters := b.voters(m, kind)
	if voters == nil {
		return fmt.Errorf("%w: %q", ErrUnknownLikeType, kind)
	}
	if lo.Contains(*voters, client) {
		return fmt.Errorf("%w: %s %s message %d", ErrAlreadyVoted, client, kind, id)
	}
	*voters = append(*voters, client)
	m.Points += points(kind)
	return nil
}

// RemoveVote takes back a like or dislike cast by client.
func (b *Board) RemoveVote(client string, id int64, kind board.LikeType) error {
	m, err := b.target(client, id)
	if err != nil {
		return err
	}
	voters := b.voters(m, kind)
	if voters == nil || !lo.Contains(*voters, client) {
		return fmt.Errorf("%w: %s has no %s on message %d", ErrNoVote, client, kind, id)
	}
	*voters = lo.Without(*voters, client)
	m.Points -= points(kind)
	return nil
}

func (b *Board) voters(m *board.UserMessage, kind board.LikeType) *[]string {
	switch kind {
	case board.LikeTypeLike:
		return &m.Likes
	case board.LikeTypeDislike:
		return &m.Dislikes
	default:
		return nil
	}
}

func points(kind board.LikeType) int {
	if kind == board.LikeTypeDislike {
		return -1
	}
	return 1
}

// React attaches emoji to the message on behalf of client.
func (b *Board) React(client string, id int64, emoji board.Emoji) error {
	if !board.ValidEmojis[emoji] {
		return fmt.Errorf("%w: %q", ErrUnknownEmoji, emoji)
	}
	m, err := b.target(client, id)
	if err != nil {
		return err
	}
	set, ok := m.Reactions[client]
	if !ok {
		set = make(map[board.Emoji]struct{})
		m.Reactions[client] = set
	}
	if _, dup := set[emoji]; dup {
		return fmt.Errorf("%w: %s by %s on message %d", ErrAlreadyReacted, emoji, client, id)
	}
	set[emoji] = struct{}{}
	return nil
}

// Edit replaces the text of a message written by client.
func (b *Board) Edit(client string, id int64, text string) error {
	m, err := b.owned(client, id)
	if err != nil {
		return err
	}
	if err := b.checkLength(text); err != nil {
		return err
	}
	m.Text = text
	return nil
}

// Delete removes a message written by client.
func (b *Board) Delete(client string, id int64) error {
	if _, err := b.owned(client, id); err != nil {
		return err
	}
	delete(b.messages, id)
	return nil
}

// Report records that reporter flagged reported. The reported user is banned
// once BanThreshold distinct clients have reported them.
func (b *Board) Report(reporter, reported string) error {
	if b.banned[reporter] {
		return fmt.Errorf("%w: %s", ErrBanned, reporter)
	}
	if reporter == reported {
		return ErrSelfReport
	}
	reporters, ok := b.reports[reported]
	if !ok {
		reporters = make(map[string]struct{})
		b.reports[reported] = reporters
	}
	if _, dup := reporters[reporter]; dup {
		return fmt.Errorf("%w: %s reported %s", ErrAlreadyReported, reporter, reported)
	}
	reporters[reporter] = struct{}{}
	if len(reporters) >= b.cfg.BanThreshold {
		b.banned[reported] = true
	}
	return nil
}

// IsBanned reports whether name has been banned.
func (b *Board) IsBanned(name string) bool {
	return b.banned[name]
}

// Banned returns the banned users in ascending order.
func (b *Board) Banned() []string {
	names := lo.Keys(b.banned)
	slices.Sort(names)
	return names
}

func (b *Board) target(client string, id int64) (*board.UserMessage, error) {
	if b.banned[client] {
		return nil, fmt.Errorf("%w: %s", ErrBanned, client)
	}
	m, ok := b.messages[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrMessageNotFound, id)
	}
	return m, nil
}

func (b *Board) owned(client string, id int64) (*board.UserMessage, error) {
	m, err := b.target(client, id)
	if err != nil {
		return nil, err
	}
	if m.Author != client {
		return nil, fmt.Errorf("%w: message %d is by %s", ErrNotAuthor, id, m.Author)
	}
	return m, nil
}

func (b *Board) checkLength(text string) error {
	if b.cfg.MaxMessageLength > 0 && len(text) > b.cfg.MaxMessageLength {
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLong, len(text), b.cfg.MaxMessageLength)
	}
	return nil
}
