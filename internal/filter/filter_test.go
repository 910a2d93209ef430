package filter

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldcheck/internal/model"
)

func sampleIssues() []model.Issue {
	return []model.Issue{
		{ID: "i1", ProjectID: "p1", Category: "防水工程", Title: "卫生间渗漏", Severity: model.SeverityCritical},
		{ID: "i2", ProjectID: "p2", Category: "电气工程", Title: "插座松动", Severity: model.SeverityNormal, Status: model.StatusDone, Responsible: "机电班组"},
		{ID: "i3", ProjectID: "p1", Category: "精装/公区装饰", Title: "墙面开裂", Severity: model.SeverityMajor, Status: model.StatusReverify, Position: "3栋1单元大堂"},
		{ID: "i4", ProjectID: "p1", Category: "防水工程", Title: "Leak at drain", Desc: "standing water", Severity: model.SeverityNormal, Status: model.StatusPending},
	}
}

func ids(issues []model.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, it := range issues {
		out = append(out, it.ID)
	}
	return out
}

func TestApplyByDimension(t *testing.T) {
	issues := sampleIssues()

	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"no criteria", Criteria{}, []string{"i1", "i2", "i3", "i4"}},
		{"all is a no-op", Criteria{ProjectID: All, Status: All, Severity: All}, []string{"i1", "i2", "i3", "i4"}},
		{"project", Criteria{ProjectID: "p1"}, []string{"i1", "i3", "i4"}},
		{"unset status reads as pending", Criteria{Status: string(model.StatusPending)}, []string{"i1", "i4"}},
		{"status english key", Criteria{Status: "done"}, []string{"i2"}},
		{"severity", Criteria{Severity: string(model.SeverityNormal)}, []string{"i2", "i4"}},
		{"severity english key", Criteria{Severity: "critical"}, []string{"i1"}},
		{"keyword in title", Criteria{Keyword: "渗漏"}, []string{"i1"}},
		{"keyword in desc", Criteria{Keyword: "standing"}, []string{"i4"}},
		{"keyword in responsible", Criteria{Keyword: "机电"}, []string{"i2"}},
		{"keyword in position", Criteria{Keyword: "大堂"}, []string{"i3"}},
		{"keyword in category", Criteria{Keyword: "防水"}, []string{"i1", "i4"}},
		{"keyword is case-sensitive", Criteria{Keyword: "leak"}, []string{}},
		{"keyword trimmed", Criteria{Keyword: "  Leak "}, []string{"i4"}},
		{"combined", Criteria{ProjectID: "p1", Severity: "normal", Keyword: "Leak"}, []string{"i4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(issues, tt.c)))
		})
	}
}

func TestApplyEmptyKeywordIsIdentity(t *testing.T) {
	issues := sampleIssues()
	assert.Equal(t, issues, Apply(issues, Criteria{Keyword: ""}))
	assert.Equal(t, issues, Apply(issues, Criteria{Keyword: "   "}))
}

func TestApplyReturnsOrderedSubsequence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	projects := []string{"p1", "p2", "p3"}
	words := []string{"leak", "crack", "漏水", "loose", ""}

	for round := 0; round < 50; round++ {
		issues := make([]model.Issue, 0, 40)
		for i := 0; i < 40; i++ {
			it := model.Issue{
				ID:        fmt.Sprintf("r%d-%d", round, i),
				ProjectID: projects[rng.Intn(len(projects))],
				Title:     words[rng.Intn(len(words))],
				Severity:  model.Severities[rng.Intn(len(model.Severities))],
			}
			if s := rng.Intn(4); s < 3 {
				it.Status = model.Statuses[s]
			}
			issues = append(issues, it)
		}
		c := Criteria{
			ProjectID: append(projects, All)[rng.Intn(len(projects)+1)],
			Status:    []string{All, "pending", "to-reverify", "done"}[rng.Intn(4)],
			Severity:  []string{All, "normal", "major", "critical"}[rng.Intn(4)],
			Keyword:   words[rng.Intn(len(words))],
		}

		got := Apply(issues, c)

		// 子序列且保序
		pos := 0
		for _, g := range got {
			for pos < len(issues) && issues[pos].ID != g.ID {
				pos++
			}
			require.Less(t, pos, len(issues), "result is not an ordered subsequence")
			require.True(t, c.Match(&g))
			pos++
		}
		// 未选中的元素一定不满足条件
		selected := make(map[string]bool, len(got))
		for _, g := range got {
			selected[g.ID] = true
		}
		for i := range issues {
			if !selected[issues[i].ID] {
				require.False(t, c.Match(&issues[i]))
			}
		}
	}
}

func TestGroupByProjectPartitionsInFirstSeenOrder(t *testing.T) {
	issues := sampleIssues()
	issues = append(issues, model.Issue{ID: "i5", ProjectID: "p3"}, model.Issue{ID: "i6", ProjectID: "p2"})

	g := GroupByProject(issues)
	require.Equal(t, []string{"p1", "p2", "p3"}, g.Keys())
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []string{"i1", "i3", "i4"}, ids(g.Get("p1")))
	assert.Equal(t, []string{"i2", "i6"}, ids(g.Get("p2")))
	assert.Equal(t, []string{"i5"}, ids(g.Get("p3")))

	var total int
	seen := map[string]bool{}
	for _, k := range g.Keys() {
		for _, it := range g.Get(k) {
			assert.False(t, seen[it.ID], "issue %s appears in two groups", it.ID)
			seen[it.ID] = true
			total++
		}
	}
	assert.Equal(t, len(issues), total)
}

func TestGroupByEmpty(t *testing.T) {
	g := GroupByProject(nil)
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.Keys())
}

func TestSummaryCountsUnsetAsPending(t *testing.T) {
	s := Summary(sampleIssues())
	assert.Equal(t, Stats{Total: 4, Pending: 2, Reverify: 1, Done: 1}, s)
}

func TestRecentNewestFirst(t *testing.T) {
	issues := sampleIssues()
	assert.Equal(t, []string{"i4", "i3"}, ids(Recent(issues, 2)))
	assert.Equal(t, []string{"i4", "i3", "i2", "i1"}, ids(Recent(issues, 6)))
	assert.Empty(t, Recent(issues, 0))
}
