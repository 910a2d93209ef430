package inspection

import (
	"fmt"
	"strings"

	"fieldcheck/internal/filter"
	"fieldcheck/internal/imaging"
	"fieldcheck/internal/model"
)

// IssueInput 新建问题。Category 可以是模板 id 或类别名称；
// Severity/Status 接受原值（一般、待整改）或英文键（normal、pending）。
type IssueInput struct {
	ProjectID   string   `json:"projectId" form:"projectId"`
	Category    string   `json:"category" form:"category"`
	Title       string   `json:"title" form:"title"`
	Desc        string   `json:"desc" form:"desc"`
	Severity    string   `json:"severity" form:"severity"`
	Responsible string   `json:"responsible" form:"responsible"`
	Due         string   `json:"due" form:"due"`
	Position    string   `json:"position" form:"position"`
	StandardRef string   `json:"standardRef" form:"standardRef"`
	Status      string   `json:"status" form:"status"`
	Images      []string `json:"images" form:"-"`
}

// issueDraft 归一化后的待校验数据
type issueDraft struct {
	ProjectID string         `validate:"required"`
	Title     string         `validate:"required"`
	Severity  model.Severity `validate:"severity"`
	Status    model.Status   `validate:"status"`
	Due       string         `validate:"omitempty,datetime=2006-01-02"`
}

var issueMessages = map[string]string{
	"ProjectID.required": "请先创建并选择一个项目",
	"Title.required":     "请填写问题概述",
	"Severity.severity":  "严重程度无效",
	"Status.status":      "整改状态无效",
	"Due.datetime":       "整改期限格式应为 YYYY-MM-DD",
}

func parseSeverityOrRaw(v string) model.Severity {
	v = strings.TrimSpace(v)
	if v == "" {
		return model.SeverityNormal
	}
	if sev, ok := model.ParseSeverity(v); ok {
		return sev
	}
	return model.Severity(v)
}

func parseStatusOrRaw(v string) model.Status {
	v = strings.TrimSpace(v)
	if v == "" {
		return model.StatusPending
	}
	if st, ok := model.ParseStatus(v); ok {
		return st
	}
	return model.Status(v)
}

// CreateIssue 校验并追加一条问题。类别按模板 id 解析为模板名称快照，
// 找不到模板时原样保存。
func (s *Service) CreateIssue(in IssueInput) (model.Issue, error) {
	draft := issueDraft{
		ProjectID: strings.TrimSpace(in.ProjectID),
		Title:     strings.TrimSpace(in.Title),
		Severity:  parseSeverityOrRaw(in.Severity),
		Status:    parseStatusOrRaw(in.Status),
		Due:       strings.TrimSpace(in.Due),
	}
	if err := model.Validate(draft, issueMessages); err != nil {
		return model.Issue{}, err
	}
	for i, img := range in.Images {
		raw, err := imaging.DecodePayload(img)
		if err == nil {
			_, err = imaging.Detect(raw)
		}
		if err != nil {
			return model.Issue{}, model.NewValidationError("Images", fmt.Sprintf("第 %d 张图片无法识别", i+1))
		}
	}

	issue := model.Issue{
		ID:          model.NewID("i"),
		ProjectID:   draft.ProjectID,
		Title:       draft.Title,
		Desc:        strings.TrimSpace(in.Desc),
		Severity:    draft.Severity,
		Responsible: in.Responsible,
		Due:         draft.Due,
		Images:      append([]string{}, in.Images...),
		Position:    in.Position,
		StandardRef: in.StandardRef,
		Status:      draft.Status,
		CreatedAt:   s.now().UnixMilli(),
	}
	err := s.commit(func(st *model.Store) error {
		if _, ok := st.FindProject(issue.ProjectID); !ok {
			return model.NewValidationError("ProjectID", "项目不存在")
		}
		issue.Category = in.Category
		if tpl, ok := st.FindTemplate(in.Category); ok {
			issue.Category = tpl.Name
		}
		st.Issues = append(st.Issues, issue)
		return nil
	})
	if err != nil {
		return model.Issue{}, err
	}
	return issue.Clone(), nil
}

// GetIssue 按 id 获取
func (s *Service) GetIssue(id string) (model.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.data.FindIssue(id)
	if !ok {
		return model.Issue{}, ErrNotFound
	}
	return s.data.Issues[idx].Clone(), nil
}

// SetIssueStatus 更新整改状态
func (s *Service) SetIssueStatus(id, status string) (model.Issue, error) {
	st, ok := model.ParseStatus(strings.TrimSpace(status))
	if !ok {
		return model.Issue{}, model.NewValidationError("Status", issueMessages["Status.status"])
	}
	var updated model.Issue
	err := s.commit(func(data *model.Store) error {
		idx, ok := data.FindIssue(id)
		if !ok {
			return ErrNotFound
		}
		data.Issues[idx].Status = st
		updated = data.Issues[idx].Clone()
		return nil
	})
	return updated, err
}

// DeleteIssue 删除问题
func (s *Service) DeleteIssue(id string) error {
	return s.commit(func(data *model.Store) error {
		idx, ok := data.FindIssue(id)
		if !ok {
			return ErrNotFound
		}
		data.Issues = append(data.Issues[:idx], data.Issues[idx+1:]...)
		return nil
	})
}

// ListIssues 按条件筛选，保持创建顺序
func (s *Service) ListIssues(c filter.Criteria) []model.Issue {
	snap := s.Snapshot()
	return filter.Apply(snap.Issues, c)
}

// Dashboard 首页统计
type Dashboard struct {
	Projects int           `json:"projects"`
	Stats    filter.Stats  `json:"stats"`
	Recent   []model.Issue `json:"recent"`
}

// RecentLimit 首页最近问题条数
const RecentLimit = 6

// Dashboard 项目数、各状态问题数与最近问题
func (s *Service) Dashboard() Dashboard {
	snap := s.Snapshot()
	return Dashboard{
		Projects: len(snap.Projects),
		Stats:    filter.Summary(snap.Issues),
		Recent:   filter.Recent(snap.Issues, RecentLimit),
	}
}
