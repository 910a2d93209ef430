package inspection

import (
	"fmt"
	"strings"

	"fieldcheck/internal/model"
)

// 新增模板的默认内容
const defaultTemplateName = "新模板"

var defaultTemplateItems = []string{"示例检查项 1", "示例检查项 2"}

// TemplateInput 新增模板
type TemplateInput struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// ListTemplates 全部模板（保存顺序）
func (s *Service) ListTemplates() []model.Template {
	snap := s.Snapshot()
	return snap.Templates
}

func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// AddTemplate 追加模板；名称或检查项为空时使用默认内容
func (s *Service) AddTemplate(in TemplateInput) (model.Template, error) {
	tpl := model.Template{
		ID:    model.NewID("tpl"),
		Name:  strings.TrimSpace(in.Name),
		Items: cleanItems(in.Items),
	}
	if tpl.Name == "" {
		tpl.Name = defaultTemplateName
	}
	if len(tpl.Items) == 0 {
		tpl.Items = append([]string{}, defaultTemplateItems...)
	}
	err := s.commit(func(st *model.Store) error {
		st.Templates = append(st.Templates, tpl)
		return nil
	})
	if err != nil {
		return model.Template{}, err
	}
	return tpl.Clone(), nil
}

// SaveTemplates 整体替换模板列表。已有问题的类别快照不受影响。
func (s *Service) SaveTemplates(templates []model.Template) ([]model.Template, error) {
	out := make([]model.Template, 0, len(templates))
	seen := make(map[string]bool, len(templates))
	var verrs model.ValidationErrors
	for i, t := range templates {
		t.Name = strings.TrimSpace(t.Name)
		t.Items = cleanItems(t.Items)
		if t.ID == "" {
			t.ID = model.NewID("tpl")
		}
		if t.Name == "" {
			verrs = append(verrs, model.ValidationError{Field: "Name", Message: fmt.Sprintf("第 %d 个模板名称不能为空", i+1)})
		}
		if seen[t.ID] {
			verrs = append(verrs, model.ValidationError{Field: "ID", Message: fmt.Sprintf("模板 id 重复: %s", t.ID)})
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	err := s.commit(func(st *model.Store) error {
		st.Templates = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ListTemplates(), nil
}

// DeleteTemplate 删除模板；不修改已有问题
func (s *Service) DeleteTemplate(id string) error {
	return s.commit(func(st *model.Store) error {
		for i, t := range st.Templates {
			if t.ID == id {
				st.Templates = append(st.Templates[:i], st.Templates[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
