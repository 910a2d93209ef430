// Package export 整改清单导出（CSV / XLSX）
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fieldcheck/internal/model"
)

// CreatedAtLayout 创建时间的本地时间格式
const CreatedAtLayout = "2006/1/2 15:04:05"

// Options 导出选项
type Options struct {
	Labels   model.Labels
	Location *time.Location
	// Now 创建时间缺失时的兜底时间（默认 time.Now）
	Now func() time.Time
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Row 一行导出数据（已完成默认值处理）
func Row(projects []model.Project, it model.Issue, opts Options) []string {
	store := model.Store{Projects: projects}
	created := opts.now()
	if it.CreatedAt > 0 {
		created = time.UnixMilli(it.CreatedAt)
	}
	return []string{
		store.ProjectName(it.ProjectID),
		it.Category,
		it.Title,
		opts.Labels.Severity(it.Severity),
		it.Responsible,
		it.Due,
		opts.Labels.Status(it.EffectiveStatus()),
		it.Position,
		it.StandardRef,
		created.In(opts.location()).Format(CreatedAtLayout),
		strconv.Itoa(len(it.Images)),
	}
}

// ToDelimitedText 生成整改清单 CSV：表头 + 每条问题一行，全部字段加引号
func ToDelimitedText(projects []model.Project, issues []model.Issue, opts Options) string {
	lines := make([]string, 0, len(issues)+1)
	lines = append(lines, strings.Join(opts.Labels.ListColumns, ","))
	for _, it := range issues {
		row := Row(projects, it, opts)
		quoted := make([]string, len(row))
		for i, v := range row {
			quoted[i] = quote(v)
		}
		lines = append(lines, strings.Join(quoted, ","))
	}
	return strings.Join(lines, "\n")
}

// quote 标准 CSV 转义：整体加双引号，内部双引号加倍
func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// CSVFilename 整改清单文件名
func CSVFilename(labels model.Labels, date string) string {
	return fmt.Sprintf("%s-%s.csv", labels.ListFile, date)
}

// XLSXFilename 整改清单 Excel 文件名
func XLSXFilename(labels model.Labels, date string) string {
	return fmt.Sprintf("%s-%s.xlsx", labels.ListFile, date)
}
