package model

import (
	"strings"
	"time"

	"github.com/agenthands/distnode/internal/core/common"
)

type Post struct {
	ID          int64      `json:"postID"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Body        string     `json:"body"`
	Thumbnail   *string    `json:"thumbnail"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	Author      User       `json:"author"`
}

// PostView is a Post as seen by a particular viewer. Reaction is the
// viewer's own reaction and is always nil for anonymous viewers.
type PostView struct {
	Post
	Reaction *ReactionType `json:"reaction"`
}

type FeedPost struct {
	PostView
	Score float64 `json:"score"`
}

type PostInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Body        string  `json:"body"`
	Thumbnail   *string `json:"thumbnail"`
	Published   *bool   `json:"published"`
}

func (in PostInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return common.Validation("title is required")
	case strings.TrimSpace(in.Description) == "":
		return common.Validation("description is required")
	case strings.TrimSpace(in.Body) == "":
		return common.Validation("body is required")
	}
	return nil
}
