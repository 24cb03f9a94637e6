package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/core/model"
	"github.com/agenthands/distnode/internal/core/ranking"
	"github.com/agenthands/distnode/internal/driver"
)

// Feed returns up to FeedPageSize published posts the caller has not seen,
// ranked by recency-decayed reaction weight. The store scores and limits the
// candidates against the same clock; ranking.Rank then fixes the final order
// of that page.
func (e *Engine) Feed(ctx context.Context, viewer model.Viewer, currentPosts []int64) ([]model.FeedPost, error) {
	seen := make(map[int64]bool, len(currentPosts))
	// An empty list, never nil: NOT id(p) IN null filters everything out.
	exclude := make([]any, 0, len(currentPosts))
	for _, id := range currentPosts {
		if !seen[id] {
			seen[id] = true
			exclude = append(exclude, id)
		}
	}

	query := driver.AnonymousFeedQuery
	now := e.Now()
	params := map[string]interface{}{
		"current_posts": exclude,
		"now":           now.UnixMilli(),
		"limit":         int64(FeedPageSize),
	}
	if !viewer.IsAnonymous() {
		query = driver.ViewerFeedQuery
		params["viewer_id"] = viewer.Param()
	}

	records, err := e.query(ctx, "feed", query, params)
	if err != nil {
		return nil, err
	}

	views := make(map[int64]model.PostView, len(records))
	candidates := make([]ranking.Candidate, 0, len(records))
	for _, rec := range records {
		view := decodePostView(rec, viewer)
		if seen[view.ID] {
			continue
		}
		if _, dup := views[view.ID]; dup {
			continue
		}
		if view.CreatedAt.IsZero() {
			e.Logger.Warn("skipping feed candidate without created_at", zap.Int64("post_id", view.ID))
			continue
		}

		types := common.Strings(common.Get(rec, "reaction_types"))
		reactions := make([]model.ReactionType, len(types))
		for i, t := range types {
			reactions[i] = model.ReactionType(t)
		}

		views[view.ID] = view
		candidates = append(candidates, ranking.Candidate{
			PostID:    view.ID,
			CreatedAt: view.CreatedAt,
			Reactions: reactions,
		})
	}

	ranked, err := ranking.Rank(candidates, now)
	if err != nil {
		return nil, err
	}
	if len(ranked) > FeedPageSize {
		ranked = ranked[:FeedPageSize]
	}

	posts := make([]model.FeedPost, 0, len(ranked))
	for _, r := range ranked {
		posts = append(posts, model.FeedPost{PostView: views[r.PostID], Score: r.Score})
	}
	return posts, nil
}

// RelatedByAuthor returns up to RelatedPageSize other published posts by the
// author of postID, in store order. A missing source post yields no posts.
func (e *Engine) RelatedByAuthor(ctx context.Context, postID int64, viewer model.Viewer) ([]model.PostView, error) {
	records, err := e.query(ctx, "related posts", driver.RelatedByAuthorQuery, map[string]interface{}{
		"post_id":   postID,
		"viewer_id": viewer.Param(),
		"limit":     int64(RelatedPageSize),
	})
	if err != nil {
		return nil, err
	}

	posts := make([]model.PostView, 0, len(records))
	for _, rec := range records {
		posts = append(posts, decodePostView(rec, viewer))
	}
	return posts, nil
}
