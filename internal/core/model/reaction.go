package model

import "time"

type ReactionType string

const (
	Like    ReactionType = "Like"
	Dislike ReactionType = "Dislike"
)

func (t ReactionType) Valid() bool {
	return t == Like || t == Dislike
}

// Weight is the ranking contribution of one reaction of this type.
func (t ReactionType) Weight() int {
	switch t {
	case Like:
		return 1
	case Dislike:
		return -1
	default:
		return 0
	}
}

type Reaction struct {
	Type      ReactionType `json:"type"`
	UserID    string       `json:"userID"`
	PostID    int64        `json:"postID"`
	CreatedAt time.Time    `json:"createdAt"`
}

type ReactionOutcome string

const (
	Reacted ReactionOutcome = "reacted"
	Removed ReactionOutcome = "removed"
)

type ToggleResult struct {
	Outcome ReactionOutcome `json:"result"`
	Type    ReactionType    `json:"type"`
}
