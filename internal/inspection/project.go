package inspection

import (
	"strings"

	"fieldcheck/internal/model"
)

// ProjectInput 新建项目
type ProjectInput struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Building string `json:"building" form:"building"`
	Unit     string `json:"unit" form:"unit"`
	Remark   string `json:"remark" form:"remark"`
}

var projectMessages = map[string]string{
	"Name.required": "请输入项目名称",
}

// ListProjects 全部项目（创建顺序）
func (s *Service) ListProjects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Project{}, s.data.Projects...)
}

// CreateProject 名称去除首尾空白后不能为空
func (s *Service) CreateProject(in ProjectInput) (model.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := model.Validate(in, projectMessages); err != nil {
		return model.Project{}, err
	}

	p := model.Project{
		ID:       model.NewID("p"),
		Name:     in.Name,
		Building: in.Building,
		Unit:     in.Unit,
		Remark:   in.Remark,
	}
	err := s.commit(func(st *model.Store) error {
		st.Projects = append(st.Projects, p)
		return nil
	})
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// DeleteProject 删除项目；其下问题保留原 projectId，展示时项目名为空
func (s *Service) DeleteProject(id string) error {
	return s.commit(func(st *model.Store) error {
		for i, p := range st.Projects {
			if p.ID == id {
				st.Projects = append(st.Projects[:i], st.Projects[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
