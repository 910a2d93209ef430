package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fieldcheck/internal/filter"
	"fieldcheck/internal/inspection"
)

// MaxMultipartMemory 问题图片表单的内存上限，超出部分落盘
const MaxMultipartMemory = 32 << 20

func bindCriteria(c *gin.Context) (filter.Criteria, bool) {
	var crit filter.Criteria
	if err := c.ShouldBindQuery(&crit); err != nil {
		badRequest(c, "无效的筛选条件")
		return crit, false
	}
	return crit, true
}

// ListIssues 筛选问题
// GET /api/issues?projectId=&status=&severity=&q=
func (h *Handler) ListIssues(c *gin.Context) {
	crit, ok := bindCriteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.ListIssues(crit))
}

// CreateIssue 新建问题；支持 JSON 或带 images 文件的 multipart 表单
// POST /api/issues
func (h *Handler) CreateIssue(c *gin.Context) {
	var in inspection.IssueInput
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			badRequest(c, "无效的表单数据")
			return
		}
		if err := c.ShouldBind(&in); err != nil {
			badRequest(c, "无效的表单数据")
			return
		}
		images, err := inspection.ImagesFromUploads(form.File["images"])
		if err != nil {
			h.writeError(c, err)
			return
		}
		in.Images = append(form.Value["imageData"], images...)
	} else if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "无效的请求参数")
		return
	}

	issue, err := h.svc.CreateIssue(in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// GetIssue 问题详情
// GET /api/issues/:id
func (h *Handler) GetIssue(c *gin.Context) {
	issue, err := h.svc.GetIssue(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// SetIssueStatusRequest 更新状态请求
type SetIssueStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetIssueStatus 更新整改状态
// PATCH /api/issues/:id/status
func (h *Handler) SetIssueStatus(c *gin.Context) {
	var req SetIssueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "缺少 status")
		return
	}
	issue, err := h.svc.SetIssueStatus(c.Param("id"), req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// DeleteIssue 删除问题
// DELETE /api/issues/:id
func (h *Handler) DeleteIssue(c *gin.Context) {
	if err := h.svc.DeleteIssue(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// IssueReport 单条问题整改单 PDF
// GET /api/issues/:id/report
func (h *Handler) IssueReport(c *gin.Context) {
	d, err := h.svc.ExportIssueReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	sendDownload(c, d)
}
