package report

import (
	"archive/zip"
	"context"
	"fmt"
	"io"

	"fieldcheck/internal/filter"
	"fieldcheck/internal/model"
)

// Document 一份渲染完成的文档
type Document struct {
	Filename string
	Data     []byte
}

// RenderProjectReports 按项目分组（首次出现顺序）逐个生成项目报告；
// 找不到的项目以分组键作为名称。
func (r *Renderer) RenderProjectReports(ctx context.Context, projects []model.Project, issues []model.Issue) ([]Document, error) {
	groups := filter.GroupByProject(issues)
	if groups.Len() == 0 {
		return nil, ErrNothingToExport
	}

	store := model.Store{Projects: projects}
	date := r.Today()
	docs := make([]Document, 0, groups.Len())
	for _, pid := range groups.Keys() {
		project, ok := store.FindProject(pid)
		if !ok {
			project = model.Project{ID: pid, Name: pid}
		}
		data, err := r.RenderProjectReport(ctx, project, groups.Get(pid))
		if err != nil {
			return nil, fmt.Errorf("生成项目报告 %s 失败: %w", project.Name, err)
		}
		docs = append(docs, Document{Filename: r.ProjectReportFilename(project.Name, date), Data: data})
	}
	return docs, nil
}

// WriteZip 将多份文档打包为 zip；重名文件追加序号
func WriteZip(w io.Writer, docs []Document) error {
	zw := zip.NewWriter(w)
	used := make(map[string]int, len(docs))
	for _, d := range docs {
		name := d.Filename
		if n := used[d.Filename]; n > 0 {
			name = fmt.Sprintf("%d-%s", n, d.Filename)
		}
		used[d.Filename]++

		fw, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := fw.Write(d.Data); err != nil {
			return err
		}
	}
	return zw.Close()
}
