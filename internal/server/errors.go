package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/distnode/internal/core/common"
)

func statusFor(err error) int {
	switch common.Kind(err) {
	case common.ErrValidation:
		return http.StatusBadRequest
	case common.ErrNotFound:
		return http.StatusNotFound
	case common.ErrForbidden:
		return http.StatusForbidden
	case common.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	if common.Kind(err) == nil {
		s.Logger.Error("unclassified error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(statusFor(err), gin.H{"error": common.Message(err)})
}

func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, common.Validation("invalid %s", name)
	}
	return id, nil
}
