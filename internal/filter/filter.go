// Package filter 问题筛选与分组：纯函数，保持输入顺序。
package filter

import (
	"strings"

	"github.com/samber/lo"

	"fieldcheck/internal/model"
)

// All 表示该维度不过滤
const All = "all"

// Criteria 筛选条件；空串或 "all" 表示不限
type Criteria struct {
	ProjectID string `form:"projectId" json:"projectId"`
	Status    string `form:"status" json:"status"`
	Severity  string `form:"severity" json:"severity"`
	Keyword   string `form:"q" json:"q"`
}

func active(v string) bool {
	return v != "" && v != All
}

// Match 判断单条问题是否满足全部启用的条件
func (c Criteria) Match(it *model.Issue) bool {
	if active(c.ProjectID) && it.ProjectID != c.ProjectID {
		return false
	}
	if active(c.Status) {
		want := model.Status(c.Status)
		if s, ok := model.ParseStatus(c.Status); ok {
			want = s
		}
		if it.EffectiveStatus() != want {
			return false
		}
	}
	if active(c.Severity) {
		want := model.Severity(c.Severity)
		if s, ok := model.ParseSeverity(c.Severity); ok {
			want = s
		}
		if it.Severity != want {
			return false
		}
	}
	return matchKeyword(it, strings.TrimSpace(c.Keyword))
}

// matchKeyword 区分大小写的子串匹配；缺失字段按空串处理
func matchKeyword(it *model.Issue, kw string) bool {
	if kw == "" {
		return true
	}
	for _, field := range []string{it.Title, it.Desc, it.Category, it.Responsible, it.Position} {
		if strings.Contains(field, kw) {
			return true
		}
	}
	return false
}

// Apply 返回满足条件的问题，保持原有相对顺序
func Apply(issues []model.Issue, c Criteria) []model.Issue {
	return lo.Filter(issues, func(it model.Issue, _ int) bool {
		return c.Match(&it)
	})
}
