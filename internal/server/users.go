package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/distnode/internal/core/model"
)

func (s *Server) GetUserID(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"getUserIDSuccess": "User ID obtained successfully",
		"userID":           actor(c),
	})
}

func (s *Server) GetUser(c *gin.Context) {
	user, err := s.Service.GetUser(c.Request.Context(), c.Param("userID"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) GetProfile(c *gin.Context) {
	profile, err := s.Service.GetProfile(c.Request.Context(), c.Param("userID"), viewer(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) EditProfile(c *gin.Context) {
	var in model.ProfileInput
	if err := bindJSON(c, &in); err != nil {
		s.fail(c, err)
		return
	}

	user, err := s.Service.EditProfile(c.Request.Context(), actor(c), c.Param("userID"), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
