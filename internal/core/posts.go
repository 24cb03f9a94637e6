package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/core/model"
	"github.com/agenthands/distnode/internal/driver"
)

// GetPost returns a post with its author and the viewer's own reaction.
func (e *Engine) GetPost(ctx context.Context, postID int64, viewer model.Viewer) (model.PostView, error) {
	records, err := e.query(ctx, "get post", driver.GetPostQuery, map[string]interface{}{
		"post_id":   postID,
		"viewer_id": viewer.Param(),
	})
	if err != nil {
		return model.PostView{}, err
	}
	if len(records) == 0 {
		return model.PostView{}, common.NotFound("post %d not found", postID)
	}
	return decodePostView(records[0], viewer), nil
}

func (e *Engine) CreatePost(ctx context.Context, actor string, in model.PostInput) (model.Post, error) {
	if err := in.Validate(); err != nil {
		return model.Post{}, err
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	records, err := e.query(ctx, "create post", driver.CreatePostQuery, map[string]interface{}{
		"user_id":     actor,
		"title":       in.Title,
		"description": in.Description,
		"body":        in.Body,
		"thumbnail":   optParam(in.Thumbnail),
		"published":   published,
	})
	if err != nil {
		return model.Post{}, err
	}
	if len(records) == 0 {
		return model.Post{}, common.NotFound("user %s not found", actor)
	}

	id, _ := common.Int64(common.Get(records[0], "post_id"))
	created, _ := common.Millis(common.Get(records[0], "created_at"))
	return model.Post{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		Thumbnail:   in.Thumbnail,
		Published:   published,
		CreatedAt:   created,
		Author:      model.User{UserID: actor},
	}, nil
}

// EditPost replaces title, description and body. A nil thumbnail or
// published flag keeps the stored value.
func (e *Engine) EditPost(ctx context.Context, actor string, postID int64, in model.PostInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := e.authorize(ctx, actor, ownedPost, postID); err != nil {
		return err
	}

	var published any
	if in.Published != nil {
		published = *in.Published
	}

	records, err := e.query(ctx, "edit post", driver.EditPostQuery, map[string]interface{}{
		"post_id":     postID,
		"user_id":     actor,
		"title":       in.Title,
		"description": in.Description,
		"body":        in.Body,
		"thumbnail":   optParam(in.Thumbnail),
		"published":   published,
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return common.NotFound("post %d not found", postID)
	}
	return nil
}

// DeletePost removes the post, its relationships and the reactions to it.
func (e *Engine) DeletePost(ctx context.Context, actor string, postID int64) error {
	if err := e.authorize(ctx, actor, ownedPost, postID); err != nil {
		return err
	}

	records, err := e.query(ctx, "delete post", driver.DeletePostQuery, map[string]interface{}{
		"post_id": postID,
		"user_id": actor,
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return common.NotFound("post %d not found", postID)
	}
	return nil
}

func optParam(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func decodePost(rec *neo4j.Record) model.Post {
	id, _ := common.Int64(common.Get(rec, "post_id"))
	created, _ := common.Millis(common.Get(rec, "created_at"))
	userCreated, _ := common.Millis(common.Get(rec, "user_created_at"))
	return model.Post{
		ID:          id,
		Title:       common.String(common.Get(rec, "title")),
		Description: common.String(common.Get(rec, "description")),
		Body:        common.String(common.Get(rec, "body")),
		Thumbnail:   common.OptString(common.Get(rec, "thumbnail")),
		Published:   common.Published(common.Get(rec, "published")),
		CreatedAt:   created,
		UpdatedAt:   common.OptMillis(common.Get(rec, "updated_at")),
		Author: model.User{
			UserID:    common.String(common.Get(rec, "user_id")),
			Username:  common.String(common.Get(rec, "username")),
			CreatedAt: userCreated,
			Bio:       common.OptString(common.Get(rec, "bio")),
			Avatar:    common.OptString(common.Get(rec, "avatar")),
		},
	}
}

func decodePostView(rec *neo4j.Record, viewer model.Viewer) model.PostView {
	view := model.PostView{Post: decodePost(rec)}
	if viewer.IsAnonymous() {
		return view
	}
	if s := common.OptString(common.Get(rec, "reaction")); s != nil {
		t := model.ReactionType(*s)
		view.Reaction = &t
	}
	return view
}
