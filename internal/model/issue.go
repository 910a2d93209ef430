package model

import "strings"

// Severity 问题严重程度（存储值沿用中文标签，保证旧备份可直接导入）
type Severity string

const (
	SeverityNormal   Severity = "一般" // normal
	SeverityMajor    Severity = "重要" // major
	SeverityCritical Severity = "严重" // critical
)

// Status 整改状态：待整改 → 待复验 → 已完成
type Status string

const (
	StatusPending  Status = "待整改" // pending
	StatusReverify Status = "待复验" // to-reverify
	StatusDone     Status = "已完成" // done
)

// Severities 全部严重程度（展示顺序）
var Severities = []Severity{SeverityNormal, SeverityMajor, SeverityCritical}

// Statuses 全部状态（生命周期顺序）
var Statuses = []Status{StatusPending, StatusReverify, StatusDone}

var severityKeys = map[string]Severity{
	"normal":   SeverityNormal,
	"major":    SeverityMajor,
	"critical": SeverityCritical,
}

var statusKeys = map[string]Status{
	"pending":     StatusPending,
	"to-reverify": StatusReverify,
	"reverify":    StatusReverify,
	"done":        StatusDone,
}

// Valid 是否为合法的严重程度
func (s Severity) Valid() bool {
	for _, v := range Severities {
		if s == v {
			return true
		}
	}
	return false
}

// Key 英文键
func (s Severity) Key() string {
	for k, v := range severityKeys {
		if v == s {
			return k
		}
	}
	return string(s)
}

// Valid 是否为合法的状态
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Key 英文键
func (s Status) Key() string {
	switch s {
	case StatusPending, "":
		return "pending"
	case StatusReverify:
		return "to-reverify"
	case StatusDone:
		return "done"
	}
	return string(s)
}

// ParseSeverity 解析严重程度，接受中文存储值或英文键
func ParseSeverity(v string) (Severity, bool) {
	v = strings.TrimSpace(v)
	if s := Severity(v); s.Valid() {
		return s, true
	}
	s, ok := severityKeys[strings.ToLower(v)]
	return s, ok
}

// ParseStatus 解析状态，接受中文存储值或英文键
func ParseStatus(v string) (Status, bool) {
	v = strings.TrimSpace(v)
	if s := Status(v); s.Valid() {
		return s, true
	}
	s, ok := statusKeys[strings.ToLower(v)]
	return s, ok
}

// Issue 查验问题
type Issue struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"projectId"`
	Category    string   `json:"category"` // 创建时的模板名称快照，不随模板变更
	Title       string   `json:"title"`
	Desc        string   `json:"desc,omitempty"`
	Severity    Severity `json:"severity"`
	Responsible string   `json:"responsible,omitempty"`
	Due         string   `json:"due,omitempty"` // YYYY-MM-DD
	Images      []string `json:"images"`        // data URI，按添加顺序
	Position    string   `json:"position,omitempty"`
	StandardRef string   `json:"standardRef,omitempty"`
	Status      Status   `json:"status,omitempty"`
	CreatedAt   int64    `json:"createdAt"` // 毫秒时间戳
}

// EffectiveStatus 读取状态，未设置时视为待整改
func (i *Issue) EffectiveStatus() Status {
	if i.Status == "" {
		return StatusPending
	}
	return i.Status
}

// PrimaryImage 首图（汇总报告使用）
func (i *Issue) PrimaryImage() (string, bool) {
	if len(i.Images) == 0 {
		return "", false
	}
	return i.Images[0], true
}

// Clone 深拷贝
func (i Issue) Clone() Issue {
	if i.Images != nil {
		i.Images = append([]string{}, i.Images...)
	}
	return i
}
