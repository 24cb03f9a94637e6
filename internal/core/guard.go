package core

import (
	"context"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/driver"
)

type ownedKind struct {
	name       string
	ownerQuery string
	idParam    string
}

var (
	ownedPost    = ownedKind{name: "post", ownerQuery: driver.PostOwnerQuery, idParam: "post_id"}
	ownedComment = ownedKind{name: "comment", ownerQuery: driver.CommentOwnerQuery, idParam: "comment_id"}
)

// authorize fetches the owner of the target and fails with NotFound when it
// does not exist, then Forbidden when actor is not the owner. It never
// mutates; callers issue their write only after it returns nil.
func (e *Engine) authorize(ctx context.Context, actor string, kind ownedKind, id int64) error {
	records, err := e.query(ctx, "authorize "+kind.name, kind.ownerQuery, map[string]interface{}{
		kind.idParam: id,
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return common.NotFound("%s %d not found", kind.name, id)
	}

	owner := common.String(common.Get(records[0], "owner_id"))
	if actor == "" || owner != actor {
		return common.Forbidden("you do not own %s %d", kind.name, id)
	}
	return nil
}

func authorizeProfile(actor, pathUserID string) error {
	if actor == "" || actor != pathUserID {
		return common.Forbidden("you can only edit your own profile")
	}
	return nil
}
