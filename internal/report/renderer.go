// Package report 项目查验报告与单条问题整改单的 PDF 排版
package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"fieldcheck/internal/imaging"
	"fieldcheck/internal/model"
)

var (
	// ErrRenderSkip 单张图片无法解码或放置，跳过且不中断导出
	ErrRenderSkip = errors.New("image skipped")
	// ErrNothingToExport 没有可导出的问题
	ErrNothingToExport = errors.New("没有可导出的数据")
)

// Options 渲染器配置
type Options struct {
	Layout Layout
	Labels model.Labels
	Logger *zap.Logger
	// FontPath UTF-8 TTF 字体路径；为空时使用内置字体（不支持中文字形）
	FontPath string
	Location *time.Location
	Now      func() time.Time
	// NewCanvas 自定义后端（测试用）；为空时使用 PDF
	NewCanvas func(Layout) (Canvas, error)
}

// Renderer 报告渲染器，可并发使用（不持有可变状态）
type Renderer struct {
	layout    Layout
	labels    model.Labels
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
	newCanvas func(Layout) (Canvas, error)
}

// NewRenderer 创建渲染器；字体文件读取失败时返回错误
func NewRenderer(opts Options) (*Renderer, error) {
	r := &Renderer{
		layout:    DefaultLayout().Merge(opts.Layout),
		labels:    opts.Labels,
		logger:    opts.Logger,
		location:  opts.Location,
		now:       opts.Now,
		newCanvas: opts.NewCanvas,
	}
	if r.labels.Locale == "" {
		r.labels = model.LabelsFor("")
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.location == nil {
		r.location = time.Local
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newCanvas == nil {
		var font []byte
		if p := strings.TrimSpace(opts.FontPath); p != "" {
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("读取报告字体失败: %w", err)
			}
			font = data
		} else if r.labels.Locale != "en" {
			r.logger.Warn("未配置 report.font_path，内置字体无法显示中文，报告中的中文将无法辨认",
				zap.String("locale", r.labels.Locale))
		}
		r.newCanvas = func(l Layout) (Canvas, error) { return NewPDFCanvas(l, font) }
	}
	return r, nil
}

// Labels 渲染使用的文案
func (r *Renderer) Labels() model.Labels {
	return r.labels
}

// Today 生成日期（YYYY-MM-DD）
func (r *Renderer) Today() string {
	return r.now().In(r.location).Format("2006-01-02")
}

func (r *Renderer) kv(label, value string) string {
	sep := "："
	if r.labels.Locale == "en" {
		sep = ": "
	}
	return label + sep + value
}

func (r *Renderer) buildingUnit(p model.Project) string {
	return r.kv(r.labels.BuildingUnit, r.labels.OrPlaceholder(p.Building)+" / "+r.labels.OrPlaceholder(p.Unit))
}

// tableSpec 网格表格
type tableSpec struct {
	widths []float64
	header []string
	rows   [][]string
	size   float64
}

// drawTable 逐行放置；行放不下时换页并重绘表头
func (r *Renderer) drawTable(cv Canvas, cur *PageCursor, t tableSpec) {
	pad := *r.layout.CellPadding
	measure := func(cells []string) ([][]string, float64) {
		lines := make([][]string, len(cells))
		maxLines := 1
		for i, cell := range cells {
			lines[i] = cv.SplitLines(cell, t.widths[i]-2*pad, t.size)
			if len(lines[i]) > maxLines {
				maxLines = len(lines[i])
			}
		}
		return lines, float64(maxLines)*lineHeight(t.size) + 2*pad
	}
	draw := func(y float64, lines [][]string, h float64, fill bool) {
		x := r.layout.MarginLeft
		for i, cell := range lines {
			cv.Cell(x, y, t.widths[i], h, cell, t.size, pad, fill)
			x += t.widths[i]
		}
	}

	var headerLines [][]string
	var headerHeight float64
	placeHeader := func() {
		p := cur.Place(headerHeight, 0)
		if p.Break {
			cv.AddPage()
		}
		draw(p.Y, headerLines, headerHeight, true)
	}
	if len(t.header) > 0 {
		headerLines, headerHeight = measure(t.header)
		placeHeader()
	}

	for _, row := range t.rows {
		lines, h := measure(row)
		if !cur.Fits(h) {
			cur.Break()
			cv.AddPage()
			if len(t.header) > 0 {
				placeHeader()
			}
		}
		p := cur.Place(h, 0)
		if p.Break {
			cv.AddPage()
		}
		draw(p.Y, lines, h, false)
	}
}

// placeSection 放置小节标题（标题不单独留在页底）
func (r *Renderer) placeSection(cv Canvas, cur *PageCursor, title string, keepWith float64) {
	cur.Advance(*r.layout.SectionSpace)
	h := lineHeight(r.layout.SectionSize)
	if !cur.Fits(h + keepWith) {
		cur.Break()
		cv.AddPage()
	}
	p := cur.Place(h, 0)
	cv.Text(r.layout.MarginLeft, p.Y+r.layout.SectionSize, r.layout.SectionSize, title)
}

// fitBox 在固定框内等比缩放，返回实际绘制尺寸
func fitBox(pic imaging.Picture, boxW, boxH float64) (float64, float64) {
	if pic.Width <= 0 || pic.Height <= 0 {
		return boxW, boxH
	}
	scale := boxW / float64(pic.Width)
	if s := boxH / float64(pic.Height); s < scale {
		scale = s
	}
	return float64(pic.Width) * scale, float64(pic.Height) * scale
}

// imageBlock 一个图片块：可选标题 + 固定尺寸图片框
type imageBlock struct {
	caption string
	payload string
	boxW    float64
	boxH    float64
	// 日志定位
	issueID string
	index   int
}

// placeImage 解码并放置图片；失败时跳过，游标不前进
func (r *Renderer) placeImage(cv Canvas, cur *PageCursor, b imageBlock) bool {
	pic, err := imaging.DecodePicture(b.payload)
	if err != nil {
		r.skip(b, err)
		return false
	}

	captionH := 0.0
	if b.caption != "" {
		captionH = r.layout.CaptionHeight
	}

	saved := *cur
	p := cur.Place(captionH+b.boxH, *r.layout.ImageGap)
	if p.Break {
		cv.AddPage()
	}

	w, h := fitBox(pic, b.boxW, b.boxH)
	if err := cv.Image(r.layout.MarginLeft, p.Y+captionH, w, h, pic); err != nil {
		if p.Break {
			// 已换到新页，游标停在新页顶部
			cur.y = p.Y
		} else {
			*cur = saved
		}
		r.skip(b, err)
		return false
	}
	if b.caption != "" {
		cv.Text(r.layout.MarginLeft, p.Y+r.layout.TextSize, r.layout.TextSize, b.caption)
	}
	return true
}

func (r *Renderer) skip(b imageBlock, err error) {
	r.logger.Warn("跳过无法嵌入的图片",
		zap.String("issueId", b.issueID),
		zap.Int("index", b.index),
		zap.Error(fmt.Errorf("%w: %v", ErrRenderSkip, err)),
	)
}

func (r *Renderer) output(cv Canvas, doc string) ([]byte, error) {
	var buf bytes.Buffer
	if err := cv.Output(&buf); err != nil {
		return nil, fmt.Errorf("生成 PDF 失败: %w", err)
	}
	r.logger.Debug("报告已生成",
		zap.String("doc", doc),
		zap.Int("pages", cv.PageCount()),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// safeName 文件名中不允许出现路径分隔符等字符
func safeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
