package inspection

import (
	"bytes"
	"context"
	"fmt"

	"fieldcheck/internal/export"
	"fieldcheck/internal/filter"
	"fieldcheck/internal/report"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypeZip  = "application/zip"
)

// ExportCSV 按筛选条件导出整改清单 CSV
func (s *Service) ExportCSV(c filter.Criteria) (Download, error) {
	snap := s.Snapshot()
	issues := filter.Apply(snap.Issues, c)
	text := export.ToDelimitedText(snap.Projects, issues, s.exportOptions())
	return Download{
		Filename:    export.CSVFilename(s.Labels(), s.today()),
		ContentType: contentTypeCSV,
		Data:        []byte(text),
	}, nil
}

// ExportXLSX 按筛选条件导出整改清单 Excel
func (s *Service) ExportXLSX(c filter.Criteria) (Download, error) {
	snap := s.Snapshot()
	issues := filter.Apply(snap.Issues, c)
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, snap.Projects, issues, s.exportOptions()); err != nil {
		return Download{}, err
	}
	return Download{
		Filename:    export.XLSXFilename(s.Labels(), s.today()),
		ContentType: contentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

// ExportProjectReports 按项目分组生成查验报告：单个项目返回 PDF，多个项目打包为 zip
func (s *Service) ExportProjectReports(ctx context.Context, c filter.Criteria) (Download, error) {
	snap := s.Snapshot()
	issues := filter.Apply(snap.Issues, c)
	docs, err := s.renderer.RenderProjectReports(ctx, snap.Projects, issues)
	if err != nil {
		return Download{}, err
	}
	if len(docs) == 1 {
		return Download{Filename: docs[0].Filename, ContentType: contentTypePDF, Data: docs[0].Data}, nil
	}

	var buf bytes.Buffer
	if err := report.WriteZip(&buf, docs); err != nil {
		return Download{}, fmt.Errorf("打包报告失败: %w", err)
	}
	return Download{
		Filename:    fmt.Sprintf("%s-%s.zip", s.Labels().ReportFile, s.today()),
		ContentType: contentTypeZip,
		Data:        buf.Bytes(),
	}, nil
}

// ExportIssueReport 单条问题整改单
func (s *Service) ExportIssueReport(ctx context.Context, issueID string) (Download, error) {
	snap := s.Snapshot()
	idx, ok := snap.FindIssue(issueID)
	if !ok {
		return Download{}, ErrNotFound
	}
	issue := snap.Issues[idx]
	// 项目已删除时以空名称渲染
	project, _ := snap.FindProject(issue.ProjectID)

	data, err := s.renderer.RenderIssueReport(ctx, project, issue)
	if err != nil {
		return Download{}, err
	}
	name := project.Name
	if name == "" {
		name = s.Labels().Placeholder
	}
	return Download{
		Filename:    s.renderer.IssueReportFilename(name, issue.ID),
		ContentType: contentTypePDF,
		Data:        data,
	}, nil
}
