// Package api 本地 HTTP 接口
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldcheck/internal/inspection"
)

// Handler API 处理器
type Handler struct {
	svc    *inspection.Service
	logger *zap.Logger
}

// NewHandler 创建 API 处理器
func NewHandler(svc *inspection.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)

	// 项目
	router.GET("/projects", h.ListProjects)
	router.POST("/projects", h.CreateProject)
	router.DELETE("/projects/:id", h.DeleteProject)

	// 问题
	router.GET("/issues", h.ListIssues)
	router.POST("/issues", h.CreateIssue)
	router.GET("/issues/:id", h.GetIssue)
	router.PATCH("/issues/:id/status", h.SetIssueStatus)
	router.DELETE("/issues/:id", h.DeleteIssue)
	router.GET("/issues/:id/report", h.IssueReport)

	// 模板
	router.GET("/templates", h.ListTemplates)
	router.PUT("/templates", h.SaveTemplates)
	router.POST("/templates", h.AddTemplate)
	router.DELETE("/templates/:id", h.DeleteTemplate)

	// 导出
	router.GET("/export/csv", h.ExportCSV)
	router.GET("/export/xlsx", h.ExportXLSX)
	router.GET("/export/reports", h.ExportReports)

	// 备份
	router.GET("/backup", h.ExportBackup)
	router.POST("/backup", h.ImportBackup)
	router.GET("/backup/logs", h.ListImportLogs)
}
