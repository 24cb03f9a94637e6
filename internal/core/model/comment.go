package model

import (
	"strings"
	"time"

	"github.com/agenthands/distnode/internal/core/common"
)

type Comment struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type CommentAuthor struct {
	UserID   string  `json:"userID"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

// ChainLink is one CommentTo edge, From the replying comment To its target.
type ChainLink struct {
	ID   int64 `json:"id"`
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// ThreadRecord is one root x reply combination. A root with no replies has
// nil Reply fields and an empty chain. The chain runs from the reply up to
// the root comment.
type ThreadRecord struct {
	RootComment      *Comment       `json:"rootComment"`
	RootCommentFrom  *CommentAuthor `json:"rootCommentFrom"`
	ReplyComment     *Comment       `json:"replyComment"`
	ReplyCommentFrom *CommentAuthor `json:"replyCommentFrom"`
	CommentChain     []ChainLink    `json:"commentChain"`
}

type Thread struct {
	PostID  int64          `json:"postID"`
	Records []ThreadRecord `json:"comments"`
}

type CommentNode struct {
	Comment
	Author  *CommentAuthor `json:"author"`
	Depth   int            `json:"depth"`
	Replies []*CommentNode `json:"replies"`
}

type CommentInput struct {
	Text string `json:"text"`
}

func (in CommentInput) Validate() error {
	if strings.TrimSpace(in.Text) == "" {
		return common.Validation("text is required")
	}
	return nil
}
