package report

import (
	"context"
	"fmt"
	"strconv"

	"fieldcheck/internal/model"
)

// RenderProjectReport 项目查验报告：标题、汇总表、问题首图
func (r *Renderer) RenderProjectReport(ctx context.Context, project model.Project, issues []model.Issue) ([]byte, error) {
	cv, err := r.newCanvas(r.layout)
	if err != nil {
		return nil, err
	}
	l := r.layout
	labels := r.labels

	cv.AddPage()
	cv.Text(l.MarginLeft, 50, l.TitleSize, labels.ReportTitle+" / "+project.Name)
	cv.Text(l.MarginLeft, 80, l.TextSize, r.buildingUnit(project))
	cv.Text(l.MarginLeft, 100, l.TextSize, r.kv(labels.GeneratedOn, r.Today()))

	cur := NewPageCursor(l.TopMargin, l.BottomLimit, 120)

	rows := make([][]string, 0, len(issues))
	for idx, it := range issues {
		rows = append(rows, []string{
			strconv.Itoa(idx + 1),
			it.Category,
			it.Title,
			labels.Severity(it.Severity),
			labels.OrPlaceholder(it.Responsible),
			labels.OrPlaceholder(it.Due),
			labels.Status(it.EffectiveStatus()),
		})
	}
	r.drawTable(cv, &cur, tableSpec{
		widths: l.SummaryColumns,
		header: labels.ReportColumns,
		rows:   rows,
		size:   l.SummaryTableSize,
	})

	r.placeSection(cv, &cur, labels.GalleryHeader, l.CaptionHeight+l.GalleryHeight)
	for _, it := range issues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, ok := it.PrimaryImage()
		if !ok {
			continue
		}
		r.placeImage(cv, &cur, imageBlock{
			caption: fmt.Sprintf(labels.CaptionPattern, it.Category, it.Title),
			payload: img,
			boxW:    l.GalleryWidth,
			boxH:    l.GalleryHeight,
			issueID: it.ID,
		})
	}

	return r.output(cv, "project:"+project.ID)
}

// ProjectReportFilename {项目名}-查验报告-{日期}.pdf
func (r *Renderer) ProjectReportFilename(projectName, date string) string {
	return fmt.Sprintf("%s-%s-%s.pdf", safeName(projectName), r.labels.ReportFile, date)
}
