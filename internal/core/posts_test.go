package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/core/model"
	"github.com/agenthands/distnode/internal/driver"
)

func validPost() model.PostInput {
	return model.PostInput{Title: "Graphs", Description: "On graphs", Body: "<p>nodes</p>"}
}

func TestGetPost(t *testing.T) {
	mockDriver := &MockDriver{Responses: []MockResponse{
		rows(postRecord(7, 1_700_000_000_000, "alice", "reaction", "Like")),
	}}
	e := NewEngine(mockDriver)

	post, err := e.GetPost(context.Background(), 7, model.Authenticated("bob"))
	require.NoError(t, err)

	assert.Equal(t, driver.GetPostQuery, mockDriver.QueryExecuted)
	assert.Equal(t, int64(7), mockDriver.QueryParams["post_id"])
	assert.Equal(t, "bob", mockDriver.QueryParams["viewer_id"])
	assert.Equal(t, int64(7), post.ID)
	assert.Equal(t, "alice", post.Author.UserID)
	assert.True(t, post.Published)
	require.NotNil(t, post.Reaction)
	assert.Equal(t, model.Like, *post.Reaction)
}

func TestGetPost_AnonymousHasNoReaction(t *testing.T) {
	mockDriver := &MockDriver{Responses: []MockResponse{
		rows(postRecord(7, 1_700_000_000_000, "alice", "reaction", "Like")),
	}}
	e := NewEngine(mockDriver)

	post, err := e.GetPost(context.Background(), 7, model.Anonymous())
	require.NoError(t, err)
	assert.Nil(t, mockDriver.QueryParams["viewer_id"])
	assert.Nil(t, post.Reaction)
}

func TestGetPost_NotFound(t *testing.T) {
	e := NewEngine(&MockDriver{})

	_, err := e.GetPost(context.Background(), 99, model.Anonymous())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreatePost(t *testing.T) {
	mockDriver := &MockDriver{Responses: []MockResponse{
		rows(rec("post_id", int64(12), "created_at", int64(1_700_000_000_000))),
	}}
	e := NewEngine(mockDriver)

	post, err := e.CreatePost(context.Background(), "alice", validPost())
	require.NoError(t, err)

	assert.Equal(t, driver.CreatePostQuery, mockDriver.QueryExecuted)
	assert.Equal(t, true, mockDriver.QueryParams["published"])
	assert.Nil(t, mockDriver.QueryParams["thumbnail"])
	assert.Equal(t, int64(12), post.ID)
	assert.Equal(t, int64(1_700_000_000_000), post.CreatedAt.UnixMilli())
	assert.Equal(t, "alice", post.Author.UserID)
}

func TestCreatePost_Unpublished(t *testing.T) {
	mockDriver := &MockDriver{Responses: []MockResponse{
		rows(rec("post_id", int64(12), "created_at", int64(1_700_000_000_000))),
	}}
	e := NewEngine(mockDriver)

	in := validPost()
	draft := false
	thumb := "https://cdn.example/t.png"
	in.Published = &draft
	in.Thumbnail = &thumb

	post, err := e.CreatePost(context.Background(), "alice", in)
	require.NoError(t, err)
	assert.False(t, post.Published)
	assert.Equal(t, false, mockDriver.QueryParams["published"])
	assert.Equal(t, thumb, mockDriver.QueryParams["thumbnail"])
}

func TestCreatePost_Validation(t *testing.T) {
	mockDriver := &MockDriver{}
	e := NewEngine(mockDriver)

	in := validPost()
	in.Title = "  "
	_, err := e.CreatePost(context.Background(), "alice", in)

	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, "title is required", common.Message(err))
	assert.Empty(t, mockDriver.Calls)
}

func TestCreatePost_UnknownAuthor(t *testing.T) {
	e := NewEngine(&MockDriver{})

	_, err := e.CreatePost(context.Background(), "ghost", validPost())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEditPost(t *testing.T) {
	mockDriver := &MockDriver{Responses: []MockResponse{
		rows(rec("post_id", int64(7), "owner_id", "alice")),
		rows(rec("post_id", int64(7))),
	}}
	e := NewEngine(mockDriver)

	err := e.EditPost(context.Background(), "alice", 7, validPost())
	require.NoError(t, err)

	assert.Equal(t, []string{driver.PostOwnerQuery, driver.EditPostQuery}, mockDriver.Queries())
	assert.Nil(t, mockDriver.QueryParams["published"])
	assert.Equal(t, "alice", mockDriver.QueryParams["user_id"])
}

func TestEditPost_ValidationBeforeStore(t *testing.T) {
	mockDriver := &MockDriver{}
	e := NewEngine(mockDriver)

	err := e.EditPost(context.Background(), "alice", 7, model.PostInput{Title: "t"})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, mockDriver.Calls)
}

func TestEditPost_DeletedAfterCheck(t *testing.T) {
	mockDriver := &MockDriver{Responses: []MockResponse{
		rows(rec("post_id", int64(7), "owner_id", "alice")),
		rows(),
	}}
	e := NewEngine(mockDriver)

	err := e.EditPost(context.Background(), "alice", 7, validPost())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	mockDriver := &MockDriver{Responses: []MockResponse{
		rows(rec("post_id", int64(7), "owner_id", "alice")),
		rows(rec("post_id", int64(7))),
	}}
	e := NewEngine(mockDriver)

	require.NoError(t, e.DeletePost(context.Background(), "alice", 7))
	assert.Equal(t, []string{driver.PostOwnerQuery, driver.DeletePostQuery}, mockDriver.Queries())
}

func TestOwnershipEnforcement(t *testing.T) {
	ops := map[string]struct {
		ownerQuery string
		run        func(e *Engine, actor string) error
	}{
		"edit post": {driver.PostOwnerQuery, func(e *Engine, actor string) error {
			return e.EditPost(context.Background(), actor, 7, validPost())
		}},
		"delete post": {driver.PostOwnerQuery, func(e *Engine, actor string) error {
			return e.DeletePost(context.Background(), actor, 7)
		}},
		"edit comment": {driver.CommentOwnerQuery, func(e *Engine, actor string) error {
			return e.EditComment(context.Background(), actor, 7, model.CommentInput{Text: "edited"})
		}},
		"delete comment": {driver.CommentOwnerQuery, func(e *Engine, actor string) error {
			return e.DeleteComment(context.Background(), actor, 7)
		}},
	}

	for name, op := range ops {
		t.Run(name+" by non-owner", func(t *testing.T) {
			mockDriver := &MockDriver{Responses: []MockResponse{
				rows(rec("owner_id", "alice")),
			}}
			err := op.run(NewEngine(mockDriver), "mallory")

			assert.ErrorIs(t, err, common.ErrForbidden)
			assert.Equal(t, []string{op.ownerQuery}, mockDriver.Queries())
		})

		t.Run(name+" on missing target", func(t *testing.T) {
			mockDriver := &MockDriver{}
			err := op.run(NewEngine(mockDriver), "mallory")

			assert.ErrorIs(t, err, common.ErrNotFound)
			assert.False(t, errors.Is(err, common.ErrForbidden))
			assert.Equal(t, []string{op.ownerQuery}, mockDriver.Queries())
		})

		t.Run(name+" by owner", func(t *testing.T) {
			mockDriver := &MockDriver{Responses: []MockResponse{
				rows(rec("owner_id", "alice")),
				rows(rec("id", int64(7))),
			}}
			err := op.run(NewEngine(mockDriver), "alice")

			assert.NoError(t, err)
			assert.Len(t, mockDriver.Calls, 2)
		})
	}
}

func TestStoreErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mockDriver := &MockDriver{Err: errors.New("connection refused")}
	e := NewEngine(mockDriver, WithLogger(zap.New(core)))

	_, err := e.GetPost(context.Background(), 1, model.Anonymous())
	assert.ErrorIs(t, err, common.ErrStore)
	assert.Equal(t, "get post failed", common.Message(err))
	assert.Contains(t, err.Error(), "connection refused")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "store operation failed", logs.All()[0].Message)
}

func TestCallerErrorsAreNotLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewEngine(&MockDriver{}, WithLogger(zap.New(core)))

	_, err := e.GetPost(context.Background(), 1, model.Anonymous())
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = e.CreatePost(context.Background(), "alice", model.PostInput{})
	assert.ErrorIs(t, err, common.ErrValidation)

	assert.Zero(t, logs.Len())
}
