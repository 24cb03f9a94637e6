package driver

// Timestamps are stored as epoch milliseconds written by timestamp().
// Post and Comment identities are the store-assigned id(); Users are keyed by
// the externally issued userID property.

var SchemaQueries = []string{
	"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.userID IS UNIQUE",
	// One Reaction per (User, Post): pair is "<userID>|<postID>".
	"CREATE CONSTRAINT reaction_pair_unique IF NOT EXISTS FOR (r:Reaction) REQUIRE r.pair IS UNIQUE",
	"CREATE INDEX post_created_at IF NOT EXISTS FOR (p:Post) ON (p.created_at)",
}

const (
	postColumns = `
		id(p) AS post_id,
		p.title AS title,
		p.description AS description,
		p.body AS body,
		p.thumbnail AS thumbnail,
		p.published AS published,
		p.created_at AS created_at,
		p.updated_at AS updated_at`

	authorColumns = `
		u.userID AS user_id,
		u.username AS username,
		u.bio AS bio,
		u.avatar AS avatar,
		u.created_at AS user_created_at`

	publishedFilter = `coalesce(p.published, true) <> false`

	// feedCandidates scores unseen published posts as the sum of reaction
	// weights over the squared age in milliseconds against $now, and keeps
	// the top $limit. Age is converted to float before squaring; a post
	// created at $now scores the largest float.
	feedCandidates = `
		MATCH (p:Post)-[:POSTED_BY]->(u:User)
		WHERE NOT id(p) IN $current_posts AND ` + publishedFilter + ` AND p.created_at IS NOT NULL
		OPTIONAL MATCH (r:Reaction)-[:ReactionTo]->(p)
		WITH p, u, collect(r.type) AS reaction_types
		WITH p, u, reaction_types,
			reduce(w = 0, t IN reaction_types |
				w + CASE t WHEN 'Like' THEN 1 WHEN 'Dislike' THEN -1 ELSE 0 END) AS weight,
			toFloat(p.created_at - $now) AS age
		WITH p, u, reaction_types,
			CASE WHEN age = 0.0 THEN 1.7976931348623157e308
				ELSE weight / (age * age)
			END AS score
		ORDER BY score DESC, p.created_at DESC, id(p) DESC
		LIMIT $limit`
)

const (
	GetPostQuery = `
		MATCH (p:Post)-[:POSTED_BY]->(u:User)
		WHERE id(p) = $post_id
		OPTIONAL MATCH (:User {userID: $viewer_id})-[:ReactionFrom]->(mine:Reaction)-[:ReactionTo]->(p)
		WITH p, u, head(collect(mine.type)) AS reaction
		RETURN ` + postColumns + `,` + authorColumns + `,
		reaction
	`

	CreatePostQuery = `
		MATCH (u:User {userID: $user_id})
		CREATE (p:Post {
			title: $title,
			description: $description,
			body: $body,
			thumbnail: $thumbnail,
			published: $published,
			created_at: timestamp()
		})-[:POSTED_BY]->(u)
		RETURN id(p) AS post_id, p.created_at AS created_at
	`

	PostOwnerQuery = `
		MATCH (p:Post)-[:POSTED_BY]->(u:User)
		WHERE id(p) = $post_id
		RETURN id(p) AS post_id, u.userID AS owner_id
	`

	EditPostQuery = `
		MATCH (p:Post)-[:POSTED_BY]->(:User {userID: $user_id})
		WHERE id(p) = $post_id
		SET p.title = $title,
			p.description = $description,
			p.body = $body,
			p.thumbnail = coalesce($thumbnail, p.thumbnail),
			p.published = coalesce($published, p.published, true),
			p.updated_at = timestamp()
		RETURN id(p) AS post_id
	`

	DeletePostQuery = `
		MATCH (p:Post)-[:POSTED_BY]->(:User {userID: $user_id})
		WHERE id(p) = $post_id
		OPTIONAL MATCH (r:Reaction)-[:ReactionTo]->(p)
		WITH p, id(p) AS post_id, collect(r) AS reactions
		FOREACH (r IN reactions | DETACH DELETE r)
		DETACH DELETE p
		RETURN post_id
	`

	AnonymousFeedQuery = feedCandidates + `
		RETURN ` + postColumns + `,` + authorColumns + `,
		reaction_types, score
		ORDER BY score DESC, created_at DESC, post_id DESC
	`

	// The viewer's own reaction is looked up only for the page that survives
	// the LIMIT.
	ViewerFeedQuery = feedCandidates + `
		OPTIONAL MATCH (:User {userID: $viewer_id})-[:ReactionFrom]->(mine:Reaction)-[:ReactionTo]->(p)
		WITH p, u, reaction_types, score, head(collect(mine.type)) AS reaction
		RETURN ` + postColumns + `,` + authorColumns + `,
		reaction_types, score, reaction
		ORDER BY score DESC, created_at DESC, post_id DESC
	`

	RelatedByAuthorQuery = `
		MATCH (src:Post)-[:POSTED_BY]->(u:User)
		WHERE id(src) = $post_id
		MATCH (p:Post)-[:POSTED_BY]->(u)
		WHERE id(p) <> id(src) AND ` + publishedFilter + `
		OPTIONAL MATCH (:User {userID: $viewer_id})-[:ReactionFrom]->(mine:Reaction)-[:ReactionTo]->(p)
		WITH p, u, head(collect(mine.type)) AS reaction
		RETURN ` + postColumns + `,` + authorColumns + `,
		reaction
		LIMIT $limit
	`

	ProfileQuery = `
		MATCH (u:User {userID: $user_id})
		OPTIONAL MATCH (p:Post)-[:POSTED_BY]->(u)
		WHERE $include_unpublished OR ` + publishedFilter + `
		OPTIONAL MATCH (:User {userID: $viewer_id})-[:ReactionFrom]->(mine:Reaction)-[:ReactionTo]->(p)
		WITH u, p, head(collect(mine.type)) AS reaction
		RETURN ` + postColumns + `,` + authorColumns + `,
		reaction
		ORDER BY p.created_at DESC
	`
)

const (
	ReactionStateQuery = `
		MATCH (p:Post)
		WHERE id(p) = $post_id
		MATCH (u:User {userID: $user_id})
		OPTIONAL MATCH (u)-[:ReactionFrom]->(r:Reaction)-[:ReactionTo]->(p)
		RETURN id(p) AS post_id, collect(r.type) AS types
	`

	DeleteReactionsQuery = `
		MATCH (:User {userID: $user_id})-[:ReactionFrom]->(r:Reaction)-[:ReactionTo]->(p:Post)
		WHERE id(p) = $post_id
		DETACH DELETE r
	`

	CreateReactionQuery = `
		MATCH (u:User {userID: $user_id})
		MATCH (p:Post)
		WHERE id(p) = $post_id
		CREATE (r:Reaction {type: $type, pair: $pair, created_at: timestamp()})
		CREATE (u)-[:ReactionFrom]->(r)
		CREATE (r)-[:ReactionTo]->(p)
		RETURN id(r) AS reaction_id
	`
)

const (
	// Replies are collected up to 7 CommentTo hops from their root comment.
	CommentThreadQuery = `
		MATCH (p:Post)
		WHERE id(p) = $post_id
		OPTIONAL MATCH (root:Comment)-[:CommentTo]->(p)
		OPTIONAL MATCH (rootFrom:User)-[:CommentFrom]->(root)
		OPTIONAL MATCH chain = (reply:Comment)-[:CommentTo*1..7]->(root)
		OPTIONAL MATCH (replyFrom:User)-[:CommentFrom]->(reply)
		RETURN id(p) AS post_id,
			root {id: id(root), .text, .created_at, .updated_at} AS root_comment,
			rootFrom {.userID, .username, .avatar} AS root_comment_from,
			reply {id: id(reply), .text, .created_at, .updated_at} AS reply_comment,
			replyFrom {.userID, .username, .avatar} AS reply_comment_from,
			CASE WHEN chain IS NULL THEN null
				ELSE [rel IN relationships(chain) | {id: id(rel), from: id(startNode(rel)), to: id(endNode(rel))}]
			END AS comment_chain
	`

	CommentOwnerQuery = `
		MATCH (u:User)-[:CommentFrom]->(c:Comment)
		WHERE id(c) = $comment_id
		RETURN id(c) AS comment_id, u.userID AS owner_id
	`

	CreateCommentQuery = `
		MATCH (u:User {userID: $user_id})
		MATCH (p:Post)
		WHERE id(p) = $post_id
		CREATE (c:Comment {text: $text, created_at: timestamp()})
		CREATE (u)-[:CommentFrom]->(c)
		CREATE (c)-[:CommentTo]->(p)
		RETURN id(c) AS comment_id, c.created_at AS created_at
	`

	ReplyCommentQuery = `
		MATCH (u:User {userID: $user_id})
		MATCH (parent:Comment)-[:CommentTo*1..]->(p:Post)
		WHERE id(parent) = $comment_id AND id(p) = $post_id
		WITH u, parent
		LIMIT 1
		CREATE (c:Comment {text: $text, created_at: timestamp()})
		CREATE (u)-[:CommentFrom]->(c)
		CREATE (c)-[:CommentTo]->(parent)
		RETURN id(c) AS comment_id, c.created_at AS created_at
	`

	EditCommentQuery = `
		MATCH (:User {userID: $user_id})-[:CommentFrom]->(c:Comment)
		WHERE id(c) = $comment_id
		SET c.text = $text, c.updated_at = timestamp()
		RETURN id(c) AS comment_id
	`

	DeleteCommentQuery = `
		MATCH (:User {userID: $user_id})-[:CommentFrom]->(c:Comment)
		WHERE id(c) = $comment_id
		WITH c, id(c) AS comment_id
		DETACH DELETE c
		RETURN comment_id
	`
)
