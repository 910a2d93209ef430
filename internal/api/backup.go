package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxBackupSize 备份文件上限（含内嵌图片）
const maxBackupSize = 256 << 20

// ExportBackup 下载全量备份
// GET /api/backup
func (h *Handler) ExportBackup(c *gin.Context) {
	d, err := h.svc.ExportBackup()
	if err != nil {
		h.writeError(c, err)
		return
	}
	sendDownload(c, d)
}

// ImportBackup 导入备份并整体替换现有数据
// POST /api/backup（multipart file 字段或 JSON 请求体）
func (h *Handler) ImportBackup(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBackupSize)

	var (
		data   []byte
		source = "request-body"
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "未找到上传文件")
			return
		}
		f, err := fh.Open()
		if err != nil {
			badRequest(c, "读取上传文件失败")
			return
		}
		defer f.Close()
		if data, err = io.ReadAll(f); err != nil {
			badRequest(c, "读取上传文件失败")
			return
		}
		source = fh.Filename
	} else {
		var err error
		if data, err = io.ReadAll(c.Request.Body); err != nil {
			badRequest(c, "读取请求体失败")
			return
		}
	}

	res, err := h.svc.ImportBackup(data, source)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListImportLogs 最近的导入记录
// GET /api/backup/logs?limit=20
func (h *Handler) ListImportLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	logs, err := h.svc.ImportLogs(limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
