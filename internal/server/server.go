package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/distnode/internal/config"
	"github.com/agenthands/distnode/internal/core/model"
)

// Service is the content graph engine as the HTTP layer sees it.
type Service interface {
	GetPost(ctx context.Context, postID int64, viewer model.Viewer) (model.PostView, error)
	CreatePost(ctx context.Context, actor string, in model.PostInput) (model.Post, error)
	EditPost(ctx context.Context, actor string, postID int64, in model.PostInput) error
	DeletePost(ctx context.Context, actor string, postID int64) error
	Feed(ctx context.Context, viewer model.Viewer, currentPosts []int64) ([]model.FeedPost, error)
	RelatedByAuthor(ctx context.Context, postID int64, viewer model.Viewer) ([]model.PostView, error)
	ToggleReaction(ctx context.Context, actor string, postID int64, t model.ReactionType) (model.ToggleResult, error)
	Comments(ctx context.Context, postID int64) (model.Thread, error)
	CreateComment(ctx context.Context, actor string, postID int64, in model.CommentInput) (model.Comment, error)
	ReplyToComment(ctx context.Context, actor string, postID, commentID int64, in model.CommentInput) (model.Comment, error)
	EditComment(ctx context.Context, actor string, commentID int64, in model.CommentInput) error
	DeleteComment(ctx context.Context, actor string, commentID int64) error
	GetUser(ctx context.Context, userID string) (model.User, error)
	GetProfile(ctx context.Context, userID string, viewer model.Viewer) (model.Profile, error)
	EditProfile(ctx context.Context, actor, pathUserID string, in model.ProfileInput) (model.User, error)
}

type Server struct {
	Service Service
	Auth    config.AuthConfig
	Logger  *zap.Logger
}

func NewServer(svc Service, auth config.AuthConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if auth.CookieName == "" {
		auth.CookieName = "accessToken"
	}
	return &Server{Service: svc, Auth: auth, Logger: logger}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	required := s.RequireAuth()
	optional := s.OptionalAuth()

	api.GET("/user/id", required, s.GetUserID)
	api.GET("/user/:userID", s.GetUser)
	api.GET("/user/:userID/profile", optional, s.GetProfile)
	api.POST("/user/:userID/profile/edit", required, s.EditProfile)

	api.GET("/post/:postID", optional, s.GetPost)
	api.GET("/post/:postID/comments", s.GetComments)
	api.GET("/post/:postID/related/author", optional, s.RelatedByAuthor)

	api.POST("/posts", optional, s.Feed)
	api.POST("/posts/add", required, s.CreatePost)
	api.POST("/posts/edit/:postID", required, s.EditPost)
	api.DELETE("/posts/delete/:postID", required, s.DeletePost)
	api.POST("/posts/:postID/react", required, s.React)
	api.POST("/posts/:postID/comment", required, s.CreateComment)
	api.POST("/posts/:postID/comment/:commentID/reply", required, s.ReplyToComment)

	api.POST("/comments/edit/:commentID", required, s.EditComment)
	api.DELETE("/comments/delete/:commentID", required, s.DeleteComment)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Route not found")
	})

	return r
}
