package board

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// NewMessageID marks a UserMessage that the store has not assigned an id to yet.
const NewMessageID int64 = -1

// Emoji is a reaction a client can attach to a message.
type Emoji string

const (
	EmojiSmiley       Emoji = "smiley"
	EmojiLaughingFace Emoji = "laughing_face"
	EmojiFrowningFace Emoji = "frowning_face"
	EmojiHorror       Emoji = "horror"
	EmojiSurprise     Emoji = "surprise"
	EmojiSkeptical    Emoji = "skeptical"
	EmojiCoolFace     Emoji = "cool_face"
)

// ValidEmojis is the set of recognized reactions.
var ValidEmojis = map[Emoji]bool{
	EmojiSmiley:       true,
	EmojiLaughingFace: true,
	EmojiFrowningFace: true,
	EmojiHorror:       true,
	EmojiSurprise:     true,
	EmojiSkeptical:    true,
	EmojiCoolFace:     true,
}

// LikeType selects which vote RemoveLikeOrDislike takes back.
type LikeType string

const (
	LikeTypeLike    LikeType = "like"
	LikeTypeDislike LikeType = "dislike"
)

// UserMessage is a post on the board. The store owns it; the core only
// carries it inside messages.
type UserMessage struct {
	ID        int64
	Author    string
	Text      string
	Likes     []string
	Dislikes  []string
	Points    int
	Reactions map[string]map[Emoji]struct{} // client name → reactions
}

// NewUserMessage creates a message that has not been stored yet.
func NewUserMessage(author, text string) UserMessage {
	return UserMessage{
		ID:        NewMessageID,
		Author:    author,
		Text:      text,
		Likes:     []string{},
		Dislikes:  []string{},
		Reactions: make(map[string]map[Emoji]struct{}),
	}
}

// IsNew reports whether the store has not assigned an id yet.
func (m UserMessage) IsNew() bool {
	return m.ID == NewMessageID
}

// Clone returns a deep copy, so stored and delivered messages never share state.
func (m UserMessage) Clone() UserMessage {
	out := m
	out.Likes = slices.Clone(m.Likes)
	out.Dislikes = slices.Clone(m.Dislikes)
	out.Reactions = make(map[string]map[Emoji]struct{}, len(m.Reactions))
	for client, set := range m.Reactions {
		out.Reactions[client] = maps.Clone(set)
	}
	if out.Likes == nil {
		out.Likes = []string{}
	}
	if out.Dislikes == nil {
		out.Dislikes = []string{}
	}
	return out
}

func (m UserMessage) String() string {
	return fmt.Sprintf("%s:%s liked by :%s disliked by :%s; Points: %d",
		m.Author, m.Text, strings.Join(m.Likes, ","), strings.Join(m.Dislikes, ","), m.Points)
}
