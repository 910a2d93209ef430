package filter

import "fieldcheck/internal/model"

// Groups 有序分组：键按首次出现顺序，组内保持输入顺序
type Groups[K comparable] struct {
	keys  []K
	items map[K][]model.Issue
}

// GroupBy 按 keyFn 分组
func GroupBy[K comparable](issues []model.Issue, keyFn func(model.Issue) K) Groups[K] {
	g := Groups[K]{items: make(map[K][]model.Issue)}
	for _, it := range issues {
		k := keyFn(it)
		if _, seen := g.items[k]; !seen {
			g.keys = append(g.keys, k)
		}
		g.items[k] = append(g.items[k], it)
	}
	return g
}

// GroupByProject 按 projectId 分组
func GroupByProject(issues []model.Issue) Groups[string] {
	return GroupBy(issues, func(it model.Issue) string { return it.ProjectID })
}

// Keys 键列表（首次出现顺序）
func (g Groups[K]) Keys() []K {
	return append([]K(nil), g.keys...)
}

// Get 取某个分组
func (g Groups[K]) Get(k K) []model.Issue {
	return g.items[k]
}

// Len 分组数量
func (g Groups[K]) Len() int {
	return len(g.keys)
}
