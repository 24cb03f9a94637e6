// Package reaction decides how a toggle request changes a (User, Post)
// reaction pair.
package reaction

import (
	"strconv"

	"github.com/agenthands/distnode/internal/core/model"
)

// Plan is what a toggle must do inside its transaction.
type Plan struct {
	DeleteExisting bool
	Create         bool
	Outcome        model.ReactionOutcome
}

// Decide maps the pair's current reactions and the requested type to a plan.
// Existing reactions are always removed, so a pair left with duplicates by
// older data collapses back to at most one.
func Decide(existing []model.ReactionType, requested model.ReactionType) Plan {
	plan := Plan{DeleteExisting: len(existing) > 0}
	for _, t := range existing {
		if t == requested {
			plan.Outcome = model.Removed
			return plan
		}
	}
	plan.Create = true
	plan.Outcome = model.Reacted
	return plan
}

// PairKey is the value of the uniqueness-constrained Reaction.pair property.
func PairKey(userID string, postID int64) string {
	return userID + "|" + strconv.FormatInt(postID, 10)
}
