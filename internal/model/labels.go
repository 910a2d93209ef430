package model

// Labels 导出/报告中所有面向用户的文案
type Labels struct {
	Locale      string
	Placeholder string

	// 整改清单（CSV/XLSX）
	ListColumns   []string
	ListSheet     string
	SummarySheet  string
	SummaryHeader []string
	ListFile      string

	// 项目查验报告
	ReportTitle    string
	BuildingUnit   string
	GeneratedOn    string
	ReportColumns  []string
	GalleryHeader  string
	ReportFile     string
	CaptionPattern string

	// 单条问题整改单
	IssueTitle   string
	ProjectLabel string
	IssueIDLabel string
	DetailRows   []string
	PhotosHeader string
	IssueFile    string

	BackupFile string

	severities map[Severity]string
	statuses   map[Status]string
}

var zhLabels = Labels{
	Locale:      "zh",
	Placeholder: "-",

	ListColumns:   []string{"项目", "类别", "问题概述", "严重程度", "责任单位", "计划完成", "状态", "位置", "规范依据", "创建时间", "图片数量"},
	ListSheet:     "整改清单",
	SummarySheet:  "项目汇总",
	SummaryHeader: []string{"项目", "问题总数", "待整改", "待复验", "已完成"},
	ListFile:      "整改清单",

	ReportTitle:    "项目查验报告",
	BuildingUnit:   "楼栋/单元",
	GeneratedOn:    "导出日期",
	ReportColumns:  []string{"序号", "类别", "问题概述", "严重程度", "责任单位", "计划完成", "状态"},
	GalleryHeader:  "问题图片（首图预览）",
	ReportFile:     "查验报告",
	CaptionPattern: "【%s】%s",

	IssueTitle:   "工程问题整改单",
	ProjectLabel: "项目",
	IssueIDLabel: "问题编号",
	DetailRows:   []string{"问题类别", "问题概述", "详细描述", "现场位置", "规范/验收依据", "严重程度", "责任单位", "计划完成时间", "状态"},
	PhotosHeader: "现场照片",
	IssueFile:    "整改单",

	BackupFile: "查验数据备份",
}

var enLabels = Labels{
	Locale:      "en",
	Placeholder: "-",

	ListColumns:   []string{"Project", "Category", "Title", "Severity", "Responsible", "Due", "Status", "Position", "StandardRef", "CreatedAt", "ImageCount"},
	ListSheet:     "Remediation List",
	SummarySheet:  "Summary",
	SummaryHeader: []string{"Project", "Total", "Pending", "To Reverify", "Done"},
	ListFile:      "remediation-list",

	ReportTitle:    "Inspection Report",
	BuildingUnit:   "Building/Unit",
	GeneratedOn:    "Generated",
	ReportColumns:  []string{"No.", "Category", "Title", "Severity", "Responsible", "Due", "Status"},
	GalleryHeader:  "Issue Photos (primary image preview)",
	ReportFile:     "inspection-report",
	CaptionPattern: "[%s] %s",

	IssueTitle:   "Issue Remediation Order",
	ProjectLabel: "Project",
	IssueIDLabel: "Issue ID",
	DetailRows:   []string{"Category", "Title", "Description", "Position", "StandardRef", "Severity", "Responsible", "Due", "Status"},
	PhotosHeader: "Site Photos",
	IssueFile:    "remediation",

	BackupFile: "backup",

	severities: map[Severity]string{
		SeverityNormal:   "Normal",
		SeverityMajor:    "Major",
		SeverityCritical: "Critical",
	},
	statuses: map[Status]string{
		StatusPending:  "Pending",
		StatusReverify: "To Reverify",
		StatusDone:     "Done",
	},
}

// LabelsFor 按语言取文案，未知语言回落到中文
func LabelsFor(locale string) Labels {
	if locale == "en" {
		return enLabels
	}
	return zhLabels
}

// Severity 严重程度展示文案；未知值原样输出
func (l Labels) Severity(s Severity) string {
	if v, ok := l.severities[s]; ok {
		return v
	}
	return string(s)
}

// Status 状态展示文案；空值按待整改展示
func (l Labels) Status(s Status) string {
	if s == "" {
		s = StatusPending
	}
	if v, ok := l.statuses[s]; ok {
		return v
	}
	return string(s)
}

// OrPlaceholder 空串替换为占位符 "-"
func (l Labels) OrPlaceholder(v string) string {
	if v == "" {
		return l.Placeholder
	}
	return v
}
