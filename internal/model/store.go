package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Store 唯一持久化聚合：项目 + 问题 + 模板
type Store struct {
	Projects  []Project  `json:"projects"`
	Issues    []Issue    `json:"issues"`
	Templates []Template `json:"templates"`
}

// NewStore 空数据 + 预置模板
func NewStore() Store {
	return Store{
		Projects:  []Project{},
		Issues:    []Issue{},
		Templates: DefaultTemplates(),
	}
}

// Normalize 为缺失的集合补默认值
func (s *Store) Normalize() {
	if s.Projects == nil {
		s.Projects = []Project{}
	}
	if s.Issues == nil {
		s.Issues = []Issue{}
	}
	if s.Templates == nil {
		s.Templates = DefaultTemplates()
	}
}

// Clone 深拷贝，供导出等只读场景使用
func (s Store) Clone() Store {
	out := Store{
		Projects:  append([]Project{}, s.Projects...),
		Issues:    make([]Issue, 0, len(s.Issues)),
		Templates: make([]Template, 0, len(s.Templates)),
	}
	for _, it := range s.Issues {
		out.Issues = append(out.Issues, it.Clone())
	}
	for _, t := range s.Templates {
		out.Templates = append(out.Templates, t.Clone())
	}
	return out
}

// FindProject 按 id 查找项目
func (s *Store) FindProject(id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// ProjectName 项目名称，找不到时返回空串
func (s *Store) ProjectName(id string) string {
	p, _ := s.FindProject(id)
	return p.Name
}

// FindIssue 按 id 查找问题下标
func (s *Store) FindIssue(id string) (int, bool) {
	for i := range s.Issues {
		if s.Issues[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// FindTemplate 按 id 查找模板
func (s *Store) FindTemplate(id string) (Template, bool) {
	for _, t := range s.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// NewID 生成不可变的短 id，如 p_1a2b3c4d
func NewID(prefix string) string {
	short := uuid.New().String()[:8]
	if prefix == "" {
		return short
	}
	return fmt.Sprintf("%s_%s", prefix, short)
}
