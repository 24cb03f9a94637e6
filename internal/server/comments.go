package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/distnode/internal/core/model"
)

func (s *Server) GetComments(c *gin.Context) {
	postID, err := idParam(c, "postID")
	if err != nil {
		s.fail(c, err)
		return
	}

	thread, err := s.Service.Comments(c.Request.Context(), postID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (s *Server) CreateComment(c *gin.Context) {
	postID, err := idParam(c, "postID")
	if err != nil {
		s.fail(c, err)
		return
	}
	var in model.CommentInput
	if err := bindJSON(c, &in); err != nil {
		s.fail(c, err)
		return
	}

	comment, err := s.Service.CreateComment(c.Request.Context(), actor(c), postID, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func (s *Server) ReplyToComment(c *gin.Context) {
	postID, err := idParam(c, "postID")
	if err != nil {
		s.fail(c, err)
		return
	}
	commentID, err := idParam(c, "commentID")
	if err != nil {
		s.fail(c, err)
		return
	}
	var in model.CommentInput
	if err := bindJSON(c, &in); err != nil {
		s.fail(c, err)
		return
	}

	comment, err := s.Service.ReplyToComment(c.Request.Context(), actor(c), postID, commentID, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func (s *Server) EditComment(c *gin.Context) {
	commentID, err := idParam(c, "commentID")
	if err != nil {
		s.fail(c, err)
		return
	}
	var in model.CommentInput
	if err := bindJSON(c, &in); err != nil {
		s.fail(c, err)
		return
	}

	if err := s.Service.EditComment(c.Request.Context(), actor(c), commentID, in); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commentID": commentID})
}

func (s *Server) DeleteComment(c *gin.Context) {
	commentID, err := idParam(c, "commentID")
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.Service.DeleteComment(c.Request.Context(), actor(c), commentID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commentID": commentID})
}
