package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"

	"fieldcheck/internal/imaging"
)

// Canvas 排版后端。纵向位置全部由 PageCursor 决定，后端只负责绘制。
type Canvas interface {
	AddPage()
	PageCount() int
	// Text 在基线 y 处绘制单行文本
	Text(x, y, size float64, s string)
	// SplitLines 按宽度折行
	SplitLines(s string, width, size float64) []string
	// Cell 绘制带边框的单元格及其已折行的内容
	Cell(x, y, w, h float64, lines []string, size, padding float64, fill bool)
	Image(x, y, w, h float64, pic imaging.Picture) error
	Output(w io.Writer) error
}

type pdfCanvas struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
	images int
}

// NewPDFCanvas A4 PDF 后端。font 为 UTF-8 TTF 字体内容（中文必需）；为空时使用内置 Helvetica。
func NewPDFCanvas(layout Layout, font []byte) (Canvas, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(layout.MarginLeft, layout.TopMargin, layout.MarginLeft)
	pdf.SetCreator("fieldcheck", true)

	c := &pdfCanvas{pdf: pdf, tr: func(s string) string { return s }}
	if len(font) > 0 {
		pdf.AddUTF8FontFromBytes("body", "", font)
		c.family = "body"
	} else {
		c.family = "Helvetica"
		c.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	if pdf.Err() {
		return nil, fmt.Errorf("初始化 PDF 字体失败: %w", pdf.Error())
	}
	pdf.SetFont(c.family, "", 11)
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetFillColor(240, 240, 240)
	return c, nil
}

func (c *pdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *pdfCanvas) PageCount() int {
	return c.pdf.PageCount()
}

func (c *pdfCanvas) Text(x, y, size float64, s string) {
	c.pdf.SetFontSize(size)
	c.pdf.Text(x, y, c.tr(s))
}

func (c *pdfCanvas) width(s string) float64 {
	return c.pdf.GetStringWidth(c.tr(s))
}

func (c *pdfCanvas) SplitLines(s string, width, size float64) []string {
	c.pdf.SetFontSize(size)
	return wrapText(s, width, c.width)
}

func (c *pdfCanvas) Cell(x, y, w, h float64, lines []string, size, padding float64, fill bool) {
	style := "D"
	if fill {
		style = "FD"
	}
	c.pdf.Rect(x, y, w, h, style)
	c.pdf.SetFontSize(size)
	for i, line := range lines {
		c.pdf.Text(x+padding, y+padding+size*0.85+float64(i)*lineHeight(size), c.tr(line))
	}
}

func (c *pdfCanvas) Image(x, y, w, h float64, pic imaging.Picture) error {
	name := fmt.Sprintf("img-%d", c.images)
	c.images++

	opt := fpdf.ImageOptions{ImageType: pic.Type}
	c.pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(pic.Data))
	if c.pdf.Err() {
		err := c.pdf.Error()
		c.pdf.ClearError()
		return err
	}
	c.pdf.ImageOptions(name, x, y, w, h, false, opt, 0, "")
	if c.pdf.Err() {
		err := c.pdf.Error()
		c.pdf.ClearError()
		return err
	}
	return nil
}

func (c *pdfCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}

// wrapText 贪心折行：优先在空白处断行，无空白（如中文）时按字符断行
func wrapText(s string, width float64, measure func(string) float64) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		runes := []rune(para)
		if len(runes) == 0 {
			out = append(out, "")
			continue
		}
		for len(runes) > 0 {
			n := 1
			for n < len(runes) && measure(string(runes[:n+1])) <= width {
				n++
			}
			if n < len(runes) {
				for i := n; i > 0; i-- {
					if unicode.IsSpace(runes[i]) {
						n = i
						break
					}
				}
			}
			out = append(out, strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace))
			runes = []rune(strings.TrimLeftFunc(string(runes[n:]), unicode.IsSpace))
		}
	}
	return out
}
