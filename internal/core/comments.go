package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/core/model"
	"github.com/agenthands/distnode/internal/core/thread"
	"github.com/agenthands/distnode/internal/driver"
)

// Comments returns every root comment on the post and every reply within
// thread.MaxReplyDepth hops of its root, one record per root x reply.
func (e *Engine) Comments(ctx context.Context, postID int64) (model.Thread, error) {
	records, err := e.query(ctx, "comment thread", driver.CommentThreadQuery, map[string]interface{}{
		"post_id": postID,
	})
	if err != nil {
		return model.Thread{}, err
	}
	if len(records) == 0 {
		return model.Thread{}, common.NotFound("post %d not found", postID)
	}

	return model.Thread{
		PostID:  postID,
		Records: thread.Assemble(thread.Decode(records)),
	}, nil
}

func (e *Engine) CreateComment(ctx context.Context, actor string, postID int64, in model.CommentInput) (model.Comment, error) {
	if err := in.Validate(); err != nil {
		return model.Comment{}, err
	}

	records, err := e.query(ctx, "create comment", driver.CreateCommentQuery, map[string]interface{}{
		"user_id": actor,
		"post_id": postID,
		"text":    in.Text,
	})
	if err != nil {
		return model.Comment{}, err
	}
	if len(records) == 0 {
		return model.Comment{}, common.NotFound("post %d not found", postID)
	}
	return decodeNewComment(records[0], in.Text), nil
}

// ReplyToComment attaches a reply to commentID, which must belong to postID's
// thread.
func (e *Engine) ReplyToComment(ctx context.Context, actor string, postID, commentID int64, in model.CommentInput) (model.Comment, error) {
	if err := in.Validate(); err != nil {
		return model.Comment{}, err
	}

	records, err := e.query(ctx, "reply to comment", driver.ReplyCommentQuery, map[string]interface{}{
		"user_id":    actor,
		"post_id":    postID,
		"comment_id": commentID,
		"text":       in.Text,
	})
	if err != nil {
		return model.Comment{}, err
	}
	if len(records) == 0 {
		return model.Comment{}, common.NotFound("comment %d not found on post %d", commentID, postID)
	}
	return decodeNewComment(records[0], in.Text), nil
}

func (e *Engine) EditComment(ctx context.Context, actor string, commentID int64, in model.CommentInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := e.authorize(ctx, actor, ownedComment, commentID); err != nil {
		return err
	}

	records, err := e.query(ctx, "edit comment", driver.EditCommentQuery, map[string]interface{}{
		"user_id":    actor,
		"comment_id": commentID,
		"text":       in.Text,
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return common.NotFound("comment %d not found", commentID)
	}
	return nil
}

// DeleteComment removes the comment. Its replies stay in the graph but are no
// longer reachable from the post.
func (e *Engine) DeleteComment(ctx context.Context, actor string, commentID int64) error {
	if err := e.authorize(ctx, actor, ownedComment, commentID); err != nil {
		return err
	}

	records, err := e.query(ctx, "delete comment", driver.DeleteCommentQuery, map[string]interface{}{
		"user_id":    actor,
		"comment_id": commentID,
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return common.NotFound("comment %d not found", commentID)
	}
	return nil
}

func decodeNewComment(rec *neo4j.Record, text string) model.Comment {
	id, _ := common.Int64(common.Get(rec, "comment_id"))
	created, _ := common.Millis(common.Get(rec, "created_at"))
	return model.Comment{ID: id, Text: text, CreatedAt: created}
}
