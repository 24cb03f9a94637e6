package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/saulfrancisco-ruizacevedo/gocypher"
	"go.uber.org/zap"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/core/model"
	"github.com/agenthands/distnode/internal/driver"
)

// GetUser reads through the user cache. Cache failures are logged and fall
// back to the store.
func (e *Engine) GetUser(ctx context.Context, userID string) (model.User, error) {
	if user, ok, err := e.Cache.Get(ctx, userID); err != nil {
		e.Logger.Warn("user cache lookup failed", zap.String("user_id", userID), zap.Error(err))
	} else if ok {
		return user, nil
	}

	query, params, err := gocypher.NewQueryBuilder().
		Match(gocypher.N("u", "User").WithProperties(map[string]interface{}{"userID": userID})).
		Return("u").
		Build()
	if err != nil {
		return model.User{}, e.storeError("build user query", err)
	}

	records, err := e.query(ctx, "get user", query, params)
	if err != nil {
		return model.User{}, err
	}
	if len(records) == 0 {
		return model.User{}, common.NotFound("user %s not found", userID)
	}

	user, err := decodeUserNode(records[0])
	if err != nil {
		return model.User{}, e.storeError("decode user", err)
	}

	if err := e.Cache.Set(ctx, user); err != nil {
		e.Logger.Warn("user cache store failed", zap.String("user_id", userID), zap.Error(err))
	}
	return user, nil
}

// GetProfile returns the user and their posts, newest first. Unpublished
// posts are included only when the viewer is the profile owner.
func (e *Engine) GetProfile(ctx context.Context, userID string, viewer model.Viewer) (model.Profile, error) {
	viewerID, _ := viewer.UserID()
	records, err := e.query(ctx, "get profile", driver.ProfileQuery, map[string]interface{}{
		"user_id":             userID,
		"viewer_id":           viewer.Param(),
		"include_unpublished": viewerID == userID,
	})
	if err != nil {
		return model.Profile{}, err
	}
	if len(records) == 0 {
		return model.Profile{}, common.NotFound("user %s not found", userID)
	}

	profile := model.Profile{
		User:  decodePost(records[0]).Author,
		Posts: make([]model.PostView, 0, len(records)),
	}
	for _, rec := range records {
		if _, ok := common.Int64(common.Get(rec, "post_id")); !ok {
			continue
		}
		profile.Posts = append(profile.Posts, decodePostView(rec, viewer))
	}
	return profile, nil
}

// EditProfile updates bio and/or avatar on the actor's own User.
func (e *Engine) EditProfile(ctx context.Context, actor, pathUserID string, in model.ProfileInput) (model.User, error) {
	if err := in.Validate(); err != nil {
		return model.User{}, err
	}
	if err := authorizeProfile(actor, pathUserID); err != nil {
		return model.User{}, err
	}

	set := make(map[string]interface{}, 2)
	for prop, value := range in.Changes() {
		set["u."+prop] = value
	}

	// A GetUser that read the store before this write can still Set its copy
	// after the eviction below; evicting on both sides narrows that window to
	// the write itself.
	e.evictUser(ctx, actor)

	query, params, err := gocypher.NewQueryBuilder().
		Match(gocypher.N("u", "User").WithProperties(map[string]interface{}{"userID": actor})).
		Set(set).
		Return("u").
		Build()
	if err != nil {
		return model.User{}, e.storeError("build profile update", err)
	}

	records, err := e.query(ctx, "edit profile", query, params)
	if err != nil {
		return model.User{}, err
	}
	if len(records) == 0 {
		return model.User{}, common.NotFound("user %s not found", actor)
	}

	e.evictUser(ctx, actor)

	user, err := decodeUserNode(records[0])
	if err != nil {
		return model.User{}, e.storeError("decode user", err)
	}
	return user, nil
}

func (e *Engine) evictUser(ctx context.Context, userID string) {
	if err := e.Cache.Delete(ctx, userID); err != nil {
		e.Logger.Warn("user cache eviction failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func decodeUserNode(rec *neo4j.Record) (model.User, error) {
	node, _, err := neo4j.GetRecordValue[neo4j.Node](rec, "u")
	if err != nil {
		return model.User{}, err
	}
	created, _ := common.Millis(node.Props["created_at"])
	return model.User{
		UserID:    common.String(node.Props["userID"]),
		Username:  common.String(node.Props["username"]),
		CreatedAt: created,
		Bio:       common.OptString(node.Props["bio"]),
		Avatar:    common.OptString(node.Props["avatar"]),
	}, nil
}
