package report

import (
	"context"
	"fmt"

	"fieldcheck/internal/model"
)

// RenderIssueReport 单条问题整改单：明细表 + 最多 MaxIssuePhotos 张现场照片
func (r *Renderer) RenderIssueReport(ctx context.Context, project model.Project, issue model.Issue) ([]byte, error) {
	cv, err := r.newCanvas(r.layout)
	if err != nil {
		return nil, err
	}
	l := r.layout
	labels := r.labels

	cv.AddPage()
	cv.Text(l.MarginLeft, 50, l.TitleSize, labels.IssueTitle)
	cv.Text(l.MarginLeft, 80, l.TextSize, r.kv(labels.ProjectLabel, labels.OrPlaceholder(project.Name)))
	cv.Text(l.MarginLeft, 100, l.TextSize, r.buildingUnit(project))
	cv.Text(l.MarginLeft, 120, l.TextSize, r.kv(labels.IssueIDLabel, issue.ID))

	values := []string{
		issue.Category,
		issue.Title,
		labels.OrPlaceholder(issue.Desc),
		labels.OrPlaceholder(issue.Position),
		labels.OrPlaceholder(issue.StandardRef),
		labels.Severity(issue.Severity),
		labels.OrPlaceholder(issue.Responsible),
		labels.OrPlaceholder(issue.Due),
		labels.Status(issue.EffectiveStatus()),
	}
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{labels.DetailRows[i], v}
	}

	cur := NewPageCursor(l.TopMargin, l.BottomLimit, 140)
	r.drawTable(cv, &cur, tableSpec{
		widths: []float64{l.LabelColumn, l.ValueColumn},
		rows:   rows,
		size:   l.DetailTableSize,
	})

	r.placeSection(cv, &cur, labels.PhotosHeader, l.PhotoHeight)
	photos := issue.Images
	if len(photos) > l.MaxIssuePhotos {
		photos = photos[:l.MaxIssuePhotos]
	}
	for idx, img := range photos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.placeImage(cv, &cur, imageBlock{
			payload: img,
			boxW:    l.PhotoWidth,
			boxH:    l.PhotoHeight,
			issueID: issue.ID,
			index:   idx,
		})
	}

	return r.output(cv, "issue:"+issue.ID)
}

// IssueReportFilename {项目名}-整改单-{问题编号}.pdf
func (r *Renderer) IssueReportFilename(projectName, issueID string) string {
	return fmt.Sprintf("%s-%s-%s.pdf", safeName(projectName), r.labels.IssueFile, safeName(issueID))
}
