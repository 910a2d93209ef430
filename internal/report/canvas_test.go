package report

import (
	"errors"
	"io"
	"strings"

	"fieldcheck/internal/imaging"
)

type placedImage struct {
	page       int
	x, y, w, h float64
}

type placedText struct {
	page int
	y    float64
	s    string
}

// recordingCanvas 记录所有绘制操作，按字符数估算文本宽度
type recordingCanvas struct {
	pages  int
	images []placedImage
	texts  []placedText
	cells  int
	// failImages 模拟放置失败的图片序号（按调用顺序）
	failImages map[int]bool
	calls      int
}

func (c *recordingCanvas) AddPage()       { c.pages++ }
func (c *recordingCanvas) PageCount() int { return c.pages }

func (c *recordingCanvas) Text(_, y, _ float64, s string) {
	c.texts = append(c.texts, placedText{page: c.pages, y: y, s: s})
}

func (c *recordingCanvas) SplitLines(s string, width, size float64) []string {
	return wrapText(s, width, func(v string) float64 {
		return float64(len([]rune(v))) * size * 0.5
	})
}

func (c *recordingCanvas) Cell(_, _, _, _ float64, _ []string, _, _ float64, _ bool) {
	c.cells++
}

func (c *recordingCanvas) Image(x, y, w, h float64, _ imaging.Picture) error {
	defer func() { c.calls++ }()
	if c.failImages[c.calls] {
		return errors.New("placement failed")
	}
	c.images = append(c.images, placedImage{page: c.pages, x: x, y: y, w: w, h: h})
	return nil
}

func (c *recordingCanvas) Output(w io.Writer) error {
	_, err := io.WriteString(w, "%PDF-recorded")
	return err
}

func (c *recordingCanvas) hasText(sub string) bool {
	for _, t := range c.texts {
		if strings.Contains(t.s, sub) {
			return true
		}
	}
	return false
}
