package filter

import "fieldcheck/internal/model"

// Stats 状态计数（概览页）
type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Reverify int `json:"reverify"`
	Done     int `json:"done"`
}

// Summary 统计各状态数量，未设置状态计入待整改
func Summary(issues []model.Issue) Stats {
	s := Stats{Total: len(issues)}
	for i := range issues {
		switch issues[i].EffectiveStatus() {
		case model.StatusPending:
			s.Pending++
		case model.StatusReverify:
			s.Reverify++
		case model.StatusDone:
			s.Done++
		}
	}
	return s
}

// Recent 最近 n 条，最新在前
func Recent(issues []model.Issue, n int) []model.Issue {
	if n <= 0 {
		return []model.Issue{}
	}
	start := len(issues) - n
	if start < 0 {
		start = 0
	}
	out := make([]model.Issue, 0, len(issues)-start)
	for i := len(issues) - 1; i >= start; i-- {
		out = append(out, issues[i])
	}
	return out
}
