package core

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/core/model"
	"github.com/agenthands/distnode/internal/core/reaction"
	"github.com/agenthands/distnode/internal/driver"
)

// ToggleReaction applies the reaction toggle for (actor, postID) in a single
// write transaction. A concurrent toggle on the same pair trips the
// Reaction.pair constraint; that Conflict is retried once and then returned.
func (e *Engine) ToggleReaction(ctx context.Context, actor string, postID int64, requested model.ReactionType) (model.ToggleResult, error) {
	if !requested.Valid() {
		return model.ToggleResult{}, common.Validation("reaction type must be one of %s, %s", model.Like, model.Dislike)
	}

	outcome, err := e.toggleOnce(ctx, actor, postID, requested)
	if errors.Is(err, common.ErrConflict) {
		e.Logger.Debug("retrying reaction toggle after conflict",
			zap.String("user_id", actor), zap.Int64("post_id", postID))
		outcome, err = e.toggleOnce(ctx, actor, postID, requested)
	}
	if err != nil {
		return model.ToggleResult{}, err
	}
	return model.ToggleResult{Outcome: outcome, Type: requested}, nil
}

func (e *Engine) toggleOnce(ctx context.Context, actor string, postID int64, requested model.ReactionType) (model.ReactionOutcome, error) {
	result, err := e.Driver.ExecuteWrite(ctx, func(tx driver.Tx) (any, error) {
		params := map[string]interface{}{
			"user_id": actor,
			"post_id": postID,
		}

		records, err := tx.Run(ctx, driver.ReactionStateQuery, params)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, common.NotFound("post %d or user %s not found", postID, actor)
		}

		var existing []model.ReactionType
		for _, t := range common.Strings(common.Get(records[0], "types")) {
			existing = append(existing, model.ReactionType(t))
		}

		plan := reaction.Decide(existing, requested)
		if plan.DeleteExisting {
			if _, err := tx.Run(ctx, driver.DeleteReactionsQuery, params); err != nil {
				return nil, err
			}
		}
		if plan.Create {
			if _, err := tx.Run(ctx, driver.CreateReactionQuery, map[string]interface{}{
				"user_id": actor,
				"post_id": postID,
				"type":    string(requested),
				"pair":    reaction.PairKey(actor, postID),
			}); err != nil {
				return nil, err
			}
		}
		return plan.Outcome, nil
	})

	switch {
	case err == nil:
		outcome, _ := result.(model.ReactionOutcome)
		return outcome, nil
	case asDomainError(err) != nil:
		return "", asDomainError(err)
	case driver.IsConstraintViolation(err):
		return "", common.Conflict("reaction changed concurrently", err)
	default:
		return "", e.storeError("toggle reaction", err)
	}
}
