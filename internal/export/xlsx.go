package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fieldcheck/internal/filter"
	"fieldcheck/internal/model"
)

// WriteXLSX 导出整改清单 Excel：明细表 + 按项目汇总表
func WriteXLSX(w io.Writer, projects []model.Project, issues []model.Issue, opts Options) error {
	f, err := BuildWorkbook(projects, issues, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("写入 Excel 失败: %w", err)
	}
	return nil
}

// BuildWorkbook 构建整改清单工作簿
func BuildWorkbook(projects []model.Project, issues []model.Issue, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()

	listSheet := opts.Labels.ListSheet
	if err := f.SetSheetName("Sheet1", listSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := writeRows(f, listSheet, opts.Labels.ListColumns, listRows(projects, issues, opts), headerStyle); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("写入 %s 失败: %w", listSheet, err)
	}
	if err := setColWidths(f, listSheet, []colWidth{{"A", "A", 18}, {"B", "C", 24}, {"H", "J", 20}}); err != nil {
		_ = f.Close()
		return nil, err
	}

	summarySheet := opts.Labels.SummarySheet
	if _, err := f.NewSheet(summarySheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeRows(f, summarySheet, opts.Labels.SummaryHeader, summaryRows(projects, issues), headerStyle); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("写入 %s 失败: %w", summarySheet, err)
	}
	if err := setColWidths(f, summarySheet, []colWidth{{"A", "A", 24}}); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

type colWidth struct {
	from, to string
	width    float64
}

func setColWidths(f *excelize.File, sheet string, cols []colWidth) error {
	for _, c := range cols {
		if err := f.SetColWidth(sheet, c.from, c.to, c.width); err != nil {
			return fmt.Errorf("设置 %s 列宽失败: %w", sheet, err)
		}
	}
	return nil
}

func listRows(projects []model.Project, issues []model.Issue, opts Options) [][]any {
	rows := make([][]any, 0, len(issues))
	for _, it := range issues {
		cells := Row(projects, it, opts)
		row := make([]any, len(cells))
		for i, v := range cells {
			row[i] = v
		}
		// 图片数量写成数字
		row[len(row)-1] = len(it.Images)
		rows = append(rows, row)
	}
	return rows
}

func summaryRows(projects []model.Project, issues []model.Issue) [][]any {
	store := model.Store{Projects: projects}
	groups := filter.GroupByProject(issues)
	rows := make([][]any, 0, groups.Len())
	for _, pid := range groups.Keys() {
		name := store.ProjectName(pid)
		if name == "" {
			name = pid
		}
		s := filter.Summary(groups.Get(pid))
		rows = append(rows, []any{name, s.Total, s.Pending, s.Reverify, s.Done})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, header []string, rows [][]any, headerStyle int) error {
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}
