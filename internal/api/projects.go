package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldcheck/internal/inspection"
)

// GetDashboard 首页统计
// GET /api/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard())
}

// ListProjects 项目列表
// GET /api/projects
func (h *Handler) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListProjects())
}

// CreateProject 新建项目
// POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var in inspection.ProjectInput
	if err := c.ShouldBind(&in); err != nil {
		badRequest(c, "无效的请求参数")
		return
	}
	p, err := h.svc.CreateProject(in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// DeleteProject 删除项目
// DELETE /api/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.svc.DeleteProject(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
