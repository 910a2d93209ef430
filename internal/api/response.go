package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldcheck/internal/backup"
	"fieldcheck/internal/inspection"
	"fieldcheck/internal/model"
)

// writeError 按错误类型映射状态码：校验与格式错误 400，不存在 404，其余 500
func (h *Handler) writeError(c *gin.Context, err error) {
	var verrs model.ValidationErrors
	var formatErr *backup.FormatError
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs.Error(), "fields": verrs})
	case errors.As(err, &formatErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": formatErr.Error(), "missing": formatErr.Missing})
	case errors.Is(err, inspection.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
	case errors.Is(err, inspection.ErrNothingToExport):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务内部错误"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
