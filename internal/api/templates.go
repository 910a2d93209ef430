package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldcheck/internal/inspection"
	"fieldcheck/internal/model"
)

// ListTemplates 模板列表
// GET /api/templates
func (h *Handler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListTemplates())
}

// SaveTemplates 整体保存模板列表
// PUT /api/templates
func (h *Handler) SaveTemplates(c *gin.Context) {
	var templates []model.Template
	if err := c.ShouldBindJSON(&templates); err != nil {
		badRequest(c, "无效的模板数据")
		return
	}
	saved, err := h.svc.SaveTemplates(templates)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// AddTemplate 新增模板；请求体可为空
// POST /api/templates
func (h *Handler) AddTemplate(c *gin.Context) {
	var in inspection.TemplateInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "无效的模板数据")
			return
		}
	}
	tpl, err := h.svc.AddTemplate(in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

// DeleteTemplate 删除模板
// DELETE /api/templates/:id
func (h *Handler) DeleteTemplate(c *gin.Context) {
	if err := h.svc.DeleteTemplate(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
