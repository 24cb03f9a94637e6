// Package thread shapes comment traversal results into thread records and
// folds them into reply trees.
package thread

import (
	"cmp"
	"slices"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/core/model"
)

// MaxReplyDepth is the number of CommentTo hops a reply may sit below its
// root comment and still be part of the thread.
const MaxReplyDepth = 7

// Decode reads the rows of driver.CommentThreadQuery.
func Decode(records []*neo4j.Record) []model.ThreadRecord {
	out := make([]model.ThreadRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, model.ThreadRecord{
			RootComment:      decodeComment(common.Get(rec, "root_comment")),
			RootCommentFrom:  decodeAuthor(common.Get(rec, "root_comment_from")),
			ReplyComment:     decodeComment(common.Get(rec, "reply_comment")),
			ReplyCommentFrom: decodeAuthor(common.Get(rec, "reply_comment_from")),
			CommentChain:     decodeChain(common.Get(rec, "comment_chain")),
		})
	}
	return out
}

func decodeComment(v any) *model.Comment {
	m := common.Map(v)
	if m == nil {
		return nil
	}
	id, ok := common.Int64(m["id"])
	if !ok {
		return nil
	}
	created, _ := common.Millis(m["created_at"])
	return &model.Comment{
		ID:        id,
		Text:      common.String(m["text"]),
		CreatedAt: created,
		UpdatedAt: common.OptMillis(m["updated_at"]),
	}
}

func decodeAuthor(v any) *model.CommentAuthor {
	m := common.Map(v)
	if m == nil {
		return nil
	}
	return &model.CommentAuthor{
		UserID:   common.String(m["userID"]),
		Username: common.String(m["username"]),
		Avatar:   common.OptString(m["avatar"]),
	}
}

func decodeChain(v any) []model.ChainLink {
	items, _ := v.([]any)
	if len(items) == 0 {
		return nil
	}
	links := make([]model.ChainLink, 0, len(items))
	for _, item := range items {
		m := common.Map(item)
		id, _ := common.Int64(m["id"])
		from, _ := common.Int64(m["from"])
		to, _ := common.Int64(m["to"])
		links = append(links, model.ChainLink{ID: id, From: from, To: to})
	}
	return links
}

// Assemble drops empty rows and replies deeper than MaxReplyDepth, removes
// duplicate root x reply combinations, and orders the rest by root then
// reply creation.
func Assemble(records []model.ThreadRecord) []model.ThreadRecord {
	type key struct{ root, reply int64 }
	seen := make(map[key]bool, len(records))

	out := make([]model.ThreadRecord, 0, len(records))
	for _, r := range records {
		if r.RootComment == nil {
			continue
		}
		if len(r.CommentChain) > MaxReplyDepth {
			continue
		}
		k := key{root: r.RootComment.ID}
		if r.ReplyComment != nil {
			k.reply = r.ReplyComment.ID
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}

	slices.SortStableFunc(out, func(a, b model.ThreadRecord) int {
		if c := compareComments(a.RootComment, b.RootComment); c != 0 {
			return c
		}
		if c := cmp.Compare(len(a.CommentChain), len(b.CommentChain)); c != 0 {
			return c
		}
		return compareComments(a.ReplyComment, b.ReplyComment)
	})
	return out
}

// Fold nests assembled records into trees, one per root comment. A reply is
// attached to the target of its first chain link; replies whose parent is
// not in the thread are dropped.
func Fold(records []model.ThreadRecord) []*model.CommentNode {
	nodes := make(map[int64]*model.CommentNode)
	var roots []*model.CommentNode

	for _, r := range records {
		if r.RootComment == nil {
			continue
		}
		if _, ok := nodes[r.RootComment.ID]; ok {
			continue
		}
		n := &model.CommentNode{Comment: *r.RootComment, Author: r.RootCommentFrom}
		nodes[r.RootComment.ID] = n
		roots = append(roots, n)
	}

	replies := make([]model.ThreadRecord, 0, len(records))
	for _, r := range records {
		if r.ReplyComment != nil && len(r.CommentChain) > 0 && len(r.CommentChain) <= MaxReplyDepth {
			replies = append(replies, r)
		}
	}
	// Shallow first so every parent exists before its children.
	slices.SortStableFunc(replies, func(a, b model.ThreadRecord) int {
		return cmp.Compare(len(a.CommentChain), len(b.CommentChain))
	})

	for _, r := range replies {
		if _, ok := nodes[r.ReplyComment.ID]; ok {
			continue
		}
		parent := nodes[parentOf(r)]
		if parent == nil {
			continue
		}
		n := &model.CommentNode{
			Comment: *r.ReplyComment,
			Author:  r.ReplyCommentFrom,
			Depth:   len(r.CommentChain),
		}
		parent.Replies = append(parent.Replies, n)
		nodes[r.ReplyComment.ID] = n
	}

	sortNodes(roots)
	return roots
}

func parentOf(r model.ThreadRecord) int64 {
	for _, link := range r.CommentChain {
		if link.From == r.ReplyComment.ID {
			return link.To
		}
	}
	return r.CommentChain[0].To
}

func sortNodes(nodes []*model.CommentNode) {
	slices.SortStableFunc(nodes, func(a, b *model.CommentNode) int {
		return compareComments(&a.Comment, &b.Comment)
	})
	for _, n := range nodes {
		sortNodes(n.Replies)
	}
}

func compareComments(a, b *model.Comment) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
