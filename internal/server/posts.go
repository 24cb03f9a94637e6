package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/core/model"
)

type FeedRequest struct {
	CurrentPosts []int64 `json:"currentPosts"`
}

type ReactRequest struct {
	Type model.ReactionType `json:"type"`
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return common.Validation("invalid request body")
	}
	return nil
}

func (s *Server) GetPost(c *gin.Context) {
	postID, err := idParam(c, "postID")
	if err != nil {
		s.fail(c, err)
		return
	}

	post, err := s.Service.GetPost(c.Request.Context(), postID, viewer(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (s *Server) Feed(c *gin.Context) {
	var req FeedRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		s.fail(c, common.Validation("invalid request body"))
		return
	}

	posts, err := s.Service.Feed(c.Request.Context(), viewer(c), req.CurrentPosts)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (s *Server) RelatedByAuthor(c *gin.Context) {
	postID, err := idParam(c, "postID")
	if err != nil {
		s.fail(c, err)
		return
	}

	posts, err := s.Service.RelatedByAuthor(c.Request.Context(), postID, viewer(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (s *Server) CreatePost(c *gin.Context) {
	var in model.PostInput
	if err := bindJSON(c, &in); err != nil {
		s.fail(c, err)
		return
	}

	post, err := s.Service.CreatePost(c.Request.Context(), actor(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func (s *Server) EditPost(c *gin.Context) {
	postID, err := idParam(c, "postID")
	if err != nil {
		s.fail(c, err)
		return
	}
	var in model.PostInput
	if err := bindJSON(c, &in); err != nil {
		s.fail(c, err)
		return
	}

	if err := s.Service.EditPost(c.Request.Context(), actor(c), postID, in); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"postID": postID})
}

func (s *Server) DeletePost(c *gin.Context) {
	postID, err := idParam(c, "postID")
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.Service.DeletePost(c.Request.Context(), actor(c), postID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"postID": postID})
}

func (s *Server) React(c *gin.Context) {
	postID, err := idParam(c, "postID")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req ReactRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.Service.ToggleReaction(c.Request.Context(), actor(c), postID, req.Type)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
