package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"fieldcheck/internal/inspection"
)

// ExportCSV 整改清单 CSV
// GET /api/export/csv
func (h *Handler) ExportCSV(c *gin.Context) {
	crit, ok := bindCriteria(c)
	if !ok {
		return
	}
	d, err := h.svc.ExportCSV(crit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	sendDownload(c, d)
}

// ExportXLSX 整改清单 Excel
// GET /api/export/xlsx
func (h *Handler) ExportXLSX(c *gin.Context) {
	crit, ok := bindCriteria(c)
	if !ok {
		return
	}
	d, err := h.svc.ExportXLSX(crit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	sendDownload(c, d)
}

// ExportReports 按项目生成查验报告（单个项目为 PDF，多个为 zip）
// GET /api/export/reports
func (h *Handler) ExportReports(c *gin.Context) {
	crit, ok := bindCriteria(c)
	if !ok {
		return
	}
	d, err := h.svc.ExportProjectReports(c.Request.Context(), crit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	sendDownload(c, d)
}

func sendDownload(c *gin.Context, d inspection.Download) {
	c.Header("Content-Disposition", buildContentDisposition(d.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, d.ContentType, d.Data)
}

// buildContentDisposition attachment 头：ASCII 文件名兜底 + RFC 5987 UTF-8 文件名
func buildContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", asciiFallback(filename), encodeRFC5987(filename))
}

func asciiFallback(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r > unicode.MaxASCII || r < 0x20 || r == '"' || r == '\\' || r == 0x7f:
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	name := strings.Trim(b.String(), "_-")
	if name == "" {
		name = "download"
	}
	return name + ext
}

func encodeRFC5987(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isAttrChar(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&0x0f])
	}
	return b.String()
}

// isAttrChar RFC 5987 attr-char
func isAttrChar(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", ch) >= 0
}
