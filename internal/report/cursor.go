package report

// Placement 一次放置的结果
type Placement struct {
	Page  int
	Y     float64
	Break bool // 放置前是否换页
}

// PageCursor 纵向排版游标
//
// 放置前检查：内容块底边超过 bottom 时先换页并复位到 top，再放置，
// 因此任何内容块都不会被页边界截断（块本身高于整页时除外）。
type PageCursor struct {
	page   int
	y      float64
	top    float64
	bottom float64
}

// NewPageCursor 从第 1 页的 startY 开始
func NewPageCursor(top, bottom, startY float64) PageCursor {
	return PageCursor{page: 1, y: startY, top: top, bottom: bottom}
}

// Page 当前页（从 1 开始）
func (c *PageCursor) Page() int { return c.page }

// Y 当前纵向位置
func (c *PageCursor) Y() float64 { return c.y }

// Fits 当前页能否容纳 height
func (c *PageCursor) Fits(height float64) bool {
	return c.y+height <= c.bottom || c.y <= c.top
}

// Break 换页并复位
func (c *PageCursor) Break() {
	c.page++
	c.y = c.top
}

// Place 放置高度为 height 的块，之后前进 height+gap
func (c *PageCursor) Place(height, gap float64) Placement {
	p := Placement{}
	if !c.Fits(height) {
		c.Break()
		p.Break = true
	}
	p.Page, p.Y = c.page, c.y
	c.y += height + gap
	return p
}

// Advance 在当前页内前进 dy
func (c *PageCursor) Advance(dy float64) {
	c.y += dy
}
