package report

// Layout 报告版式参数（单位：pt，A4 纵向）
type Layout struct {
	PageWidth  float64 `toml:"page_width"`
	PageHeight float64 `toml:"page_height"`
	MarginLeft float64 `toml:"margin_left"`

	// TopMargin 分页后游标复位的位置
	TopMargin float64 `toml:"top_margin"`
	// BottomLimit 内容块底边不得超过的位置
	BottomLimit float64 `toml:"bottom_limit"`

	TitleSize   float64 `toml:"title_size"`
	TextSize    float64 `toml:"text_size"`
	SectionSize float64 `toml:"section_size"`
	// 以下间距允许为 0，未配置时为 nil
	CellPadding *float64 `toml:"cell_padding"`

	// 项目报告
	SummaryTableSize float64   `toml:"summary_table_size"`
	SummaryColumns   []float64 `toml:"summary_columns"`
	GalleryWidth     float64   `toml:"gallery_width"`
	GalleryHeight    float64   `toml:"gallery_height"`
	CaptionHeight    float64   `toml:"caption_height"`

	// 整改单
	DetailTableSize float64 `toml:"detail_table_size"`
	LabelColumn     float64 `toml:"label_column"`
	ValueColumn     float64 `toml:"value_column"`
	PhotoWidth      float64 `toml:"photo_width"`
	PhotoHeight     float64 `toml:"photo_height"`
	MaxIssuePhotos  int     `toml:"max_issue_photos"`

	ImageGap     *float64 `toml:"image_gap"`
	SectionSpace *float64 `toml:"section_space"`
}

// DefaultLayout 默认版式
func DefaultLayout() Layout {
	return Layout{
		PageWidth:  595.28,
		PageHeight: 841.89,
		MarginLeft: 40,

		TopMargin:   60,
		BottomLimit: 760,

		TitleSize:   16,
		TextSize:    11,
		SectionSize: 13,
		CellPadding: Pt(6),

		SummaryTableSize: 9,
		SummaryColumns:   []float64{35, 70, 150, 55, 75, 65, 65},
		GalleryWidth:     520,
		GalleryHeight:    180,
		CaptionHeight:    18,

		DetailTableSize: 10,
		LabelColumn:     120,
		ValueColumn:     380,
		PhotoWidth:      240,
		PhotoHeight:     160,
		MaxIssuePhotos:  3,

		ImageGap:     Pt(20),
		SectionSpace: Pt(20),
	}
}

// Pt 间距字段的取址辅助
func Pt(v float64) *float64 {
	return &v
}

// Merge 以 o 中的正值覆盖默认值；间距字段只要已配置（含 0）即覆盖
func (l Layout) Merge(o Layout) Layout {
	set := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	setSpacing := func(dst **float64, v *float64) {
		if v != nil && *v >= 0 {
			*dst = Pt(*v)
		}
	}
	set(&l.PageWidth, o.PageWidth)
	set(&l.PageHeight, o.PageHeight)
	set(&l.MarginLeft, o.MarginLeft)
	set(&l.TopMargin, o.TopMargin)
	set(&l.BottomLimit, o.BottomLimit)
	set(&l.TitleSize, o.TitleSize)
	set(&l.TextSize, o.TextSize)
	set(&l.SectionSize, o.SectionSize)
	setSpacing(&l.CellPadding, o.CellPadding)
	set(&l.SummaryTableSize, o.SummaryTableSize)
	set(&l.GalleryWidth, o.GalleryWidth)
	set(&l.GalleryHeight, o.GalleryHeight)
	set(&l.CaptionHeight, o.CaptionHeight)
	set(&l.DetailTableSize, o.DetailTableSize)
	set(&l.LabelColumn, o.LabelColumn)
	set(&l.ValueColumn, o.ValueColumn)
	set(&l.PhotoWidth, o.PhotoWidth)
	set(&l.PhotoHeight, o.PhotoHeight)
	setSpacing(&l.ImageGap, o.ImageGap)
	setSpacing(&l.SectionSpace, o.SectionSpace)
	if len(o.SummaryColumns) == len(l.SummaryColumns) {
		l.SummaryColumns = append([]float64(nil), o.SummaryColumns...)
	}
	if o.MaxIssuePhotos > 0 {
		l.MaxIssuePhotos = o.MaxIssuePhotos
	}
	return l
}

// lineHeight 单行文本高度
func lineHeight(size float64) float64 {
	return size * 1.25
}
