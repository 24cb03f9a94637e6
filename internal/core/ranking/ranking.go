// Package ranking orders feed candidates by recency-decayed reaction weight.
package ranking

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/core/model"
)

type Candidate struct {
	PostID    int64
	CreatedAt time.Time
	Reactions []model.ReactionType
}

type Ranked struct {
	Candidate
	Score float64
}

// Score is sum(weight) / (createdAt - now)^2 in milliseconds. A post created
// at exactly now scores math.MaxFloat64.
func Score(c Candidate, now time.Time) (float64, error) {
	if c.CreatedAt.IsZero() {
		return 0, common.Validation("post %d has no createdAt", c.PostID)
	}

	sum := 0
	for _, r := range c.Reactions {
		sum += r.Weight()
	}

	age := float64(c.CreatedAt.UnixMilli() - now.UnixMilli())
	denominator := age * age
	if denominator == 0 {
		return math.MaxFloat64, nil
	}
	return float64(sum) / denominator, nil
}

// Rank scores every candidate and orders them by score, then createdAt, then
// post ID, all descending. Any candidate without createdAt fails the batch.
func Rank(candidates []Candidate, now time.Time) ([]Ranked, error) {
	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		score, err := Score(c, now)
		if err != nil {
			return nil, fmt.Errorf("cannot rank: %w", err)
		}
		ranked = append(ranked, Ranked{Candidate: c, Score: score})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.PostID, a.PostID)
	})
	return ranked, nil
}
