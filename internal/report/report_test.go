package report

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"fieldcheck/internal/model"
)

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTestRenderer(t *testing.T, layout Layout, cv *recordingCanvas) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{
		Layout:    layout,
		Labels:    model.LabelsFor("en"),
		Now:       func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) },
		Location:  time.UTC,
		NewCanvas: func(Layout) (Canvas, error) { return cv, nil },
	})
	require.NoError(t, err)
	return r
}

func TestLayoutMergeKeepsZeroSpacing(t *testing.T) {
	l := DefaultLayout().Merge(Layout{GalleryHeight: 90, ImageGap: Pt(0), TextSize: -1})
	assert.Equal(t, 90.0, l.GalleryHeight)
	assert.Zero(t, *l.ImageGap)
	assert.Equal(t, 20.0, *l.SectionSpace, "unset spacing keeps default")
	assert.Equal(t, 6.0, *l.CellPadding)
	assert.Equal(t, 11.0, l.TextSize, "non-positive sizes are ignored")

	cv := &recordingCanvas{}
	r := newTestRenderer(t, Layout{GalleryHeight: 40, ImageGap: Pt(0)}, cv)
	uri := pngDataURI(t)
	_, err := r.RenderProjectReport(context.Background(), model.Project{Name: "P"}, []model.Issue{
		{ID: "a", Images: []string{uri}},
		{ID: "b", Images: []string{uri}},
	})
	require.NoError(t, err)
	require.Len(t, cv.images, 2)
	assert.InDelta(t, cv.images[0].y+40+r.layout.CaptionHeight, cv.images[1].y, 1e-9)
}

func TestPageCursorPaginationFormula(t *testing.T) {
	const top, bottom, gap = 60.0, 760.0, 20.0

	for _, h := range []float64{100, 180, 250} {
		for n := 1; n <= 12; n++ {
			cur := NewPageCursor(top, bottom, top)
			var last Placement
			for i := 0; i < n; i++ {
				last = cur.Place(h, gap)
				require.LessOrEqual(t, last.Y+h, bottom, "block split by page boundary")
				require.GreaterOrEqual(t, last.Y, top)
			}
			perPage := math.Floor((bottom-top-h)/(h+gap)) + 1
			want := int(math.Ceil(float64(n) / perPage))
			assert.Equal(t, want, last.Page, "h=%v n=%d", h, n)
		}
	}

	// H=180、5 张图：ceil(5*(180+20)/(760-60)) = 2 页
	cur := NewPageCursor(top, bottom, top)
	var p Placement
	for i := 0; i < 5; i++ {
		p = cur.Place(180, gap)
	}
	assert.Equal(t, int(math.Ceil(5*(180+gap)/(bottom-top))), p.Page)
}

func TestPageCursorChecksBeforePlacing(t *testing.T) {
	cur := NewPageCursor(60, 760, 600)

	p := cur.Place(150, 20)
	assert.False(t, p.Break)
	assert.Equal(t, 600.0, p.Y)

	// 770+150 > 760：先换页再放置
	p = cur.Place(150, 20)
	assert.True(t, p.Break)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 60.0, p.Y)
	assert.Equal(t, 230.0, cur.Y())
}

func TestPageCursorOversizedBlockStaysOnFreshPage(t *testing.T) {
	cur := NewPageCursor(60, 760, 60)
	p := cur.Place(900, 0)
	assert.False(t, p.Break)
	assert.Equal(t, 1, p.Page)

	p = cur.Place(900, 0)
	assert.True(t, p.Break)
	assert.Equal(t, 2, p.Page)
}

func TestRenderProjectReportPaginatesGallery(t *testing.T) {
	uri := pngDataURI(t)
	issues := make([]model.Issue, 0, 5)
	for i := 0; i < 5; i++ {
		issues = append(issues, model.Issue{
			ID: "i" + string(rune('1'+i)), Category: "Waterproofing", Title: "leak",
			Severity: model.SeverityMajor, Images: []string{uri, uri},
		})
	}

	cv := &recordingCanvas{}
	r := newTestRenderer(t, Layout{}, cv)
	data, err := r.RenderProjectReport(context.Background(), model.Project{Name: "P1"}, issues)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-recorded", string(data))

	l := r.layout
	require.Len(t, cv.images, 5, "only the primary image of each issue")
	for i, img := range cv.images {
		assert.LessOrEqual(t, img.y+img.h, l.BottomLimit, "image %d crosses the page bottom", i)
		assert.LessOrEqual(t, img.w, l.GalleryWidth)
		assert.LessOrEqual(t, img.h, l.GalleryHeight)
		if i > 0 {
			prev := cv.images[i-1]
			if prev.page == img.page {
				assert.InDelta(t, prev.y+l.GalleryHeight+*l.ImageGap+l.CaptionHeight, img.y, 1e-9)
			} else {
				assert.Equal(t, prev.page+1, img.page)
				assert.Equal(t, l.TopMargin+l.CaptionHeight, img.y)
			}
		}
	}
	assert.Equal(t, cv.images[len(cv.images)-1].page, cv.pages)
	assert.Greater(t, cv.pages, 1)

	assert.True(t, cv.hasText("Inspection Report / P1"))
	assert.True(t, cv.hasText("Building/Unit: - / -"))
	assert.True(t, cv.hasText("Generated: 2026-10-18"))
	assert.True(t, cv.hasText("Issue Photos (primary image preview)"))
	assert.True(t, cv.hasText("[Waterproofing] leak"))
	// 表头 7 格 + 5 行 × 7 格
	assert.Equal(t, 7*6, cv.cells)
}

func TestRenderProjectReportSkipsBrokenImagesWithoutAdvancing(t *testing.T) {
	uri := pngDataURI(t)
	issues := []model.Issue{
		{ID: "a", Title: "first", Images: []string{uri}},
		{ID: "b", Title: "broken", Images: []string{"data:image/png;base64,bm90IGFuIGltYWdl"}},
		{ID: "c", Title: "no images"},
		{ID: "d", Title: "third", Images: []string{uri}},
	}

	layout := Layout{GalleryHeight: 40}
	cv := &recordingCanvas{}
	r := newTestRenderer(t, layout, cv)
	_, err := r.RenderProjectReport(context.Background(), model.Project{Name: "P"}, issues)
	require.NoError(t, err)

	require.Len(t, cv.images, 2)
	l := r.layout
	assert.Equal(t, cv.images[0].page, cv.images[1].page)
	assert.InDelta(t, cv.images[0].y+l.CaptionHeight+l.GalleryHeight+*l.ImageGap, cv.images[1].y, 1e-9)
	assert.False(t, cv.hasText("[] broken"))
}

func TestRenderProjectReportPlacementFailureRestoresCursor(t *testing.T) {
	uri := pngDataURI(t)
	issues := []model.Issue{
		{ID: "a", Title: "first", Images: []string{uri}},
		{ID: "b", Title: "second", Images: []string{uri}},
	}

	ok := &recordingCanvas{}
	r := newTestRenderer(t, Layout{GalleryHeight: 40}, ok)
	_, err := r.RenderProjectReport(context.Background(), model.Project{Name: "P"}, issues)
	require.NoError(t, err)
	require.Len(t, ok.images, 2)

	failing := &recordingCanvas{failImages: map[int]bool{0: true}}
	r = newTestRenderer(t, Layout{GalleryHeight: 40}, failing)
	_, err = r.RenderProjectReport(context.Background(), model.Project{Name: "P"}, issues)
	require.NoError(t, err)

	// 第一张放置失败，第二张占据第一张的位置
	require.Len(t, failing.images, 1)
	assert.Equal(t, ok.images[0].page, failing.images[0].page)
	assert.Equal(t, ok.images[0].y, failing.images[0].y)
	assert.False(t, failing.hasText("[] first"))
	assert.True(t, failing.hasText("[] second"))
}

func TestRenderProjectReportEmptyIssues(t *testing.T) {
	cv := &recordingCanvas{}
	r := newTestRenderer(t, Layout{}, cv)
	_, err := r.RenderProjectReport(context.Background(), model.Project{Name: "only-key"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cv.pages)
	assert.Equal(t, 7, cv.cells)
	assert.Empty(t, cv.images)
}

func TestRenderProjectReportHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cv := &recordingCanvas{}
	r := newTestRenderer(t, Layout{}, cv)
	_, err := r.RenderProjectReport(ctx, model.Project{Name: "P"}, []model.Issue{{ID: "a", Images: []string{pngDataURI(t)}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderIssueReportPlacesAtMostThreePhotos(t *testing.T) {
	uri := pngDataURI(t)
	issue := model.Issue{
		ID: "i_12345678", Category: "Electrical", Title: "socket loose",
		Severity: model.SeverityCritical, Images: []string{uri, uri, uri, uri, uri},
	}

	cv := &recordingCanvas{}
	r := newTestRenderer(t, Layout{}, cv)
	_, err := r.RenderIssueReport(context.Background(), model.Project{Name: "P1", Building: "3"}, issue)
	require.NoError(t, err)

	l := r.layout
	require.Len(t, cv.images, 3)
	for _, img := range cv.images {
		assert.LessOrEqual(t, img.w, l.PhotoWidth)
		assert.LessOrEqual(t, img.h, l.PhotoHeight)
		assert.LessOrEqual(t, img.y+img.h, l.BottomLimit)
	}
	// 9 行 × 2 列，无表头
	assert.Equal(t, 18, cv.cells)
	assert.True(t, cv.hasText("Issue Remediation Order"))
	assert.True(t, cv.hasText("Project: P1"))
	assert.True(t, cv.hasText("Building/Unit: 3 / -"))
	assert.True(t, cv.hasText("Issue ID: i_12345678"))
	assert.True(t, cv.hasText("Site Photos"))
	assert.Equal(t, cv.images[2].page, cv.pages)
}

func TestRenderIssueReportDeletedProjectShowsPlaceholder(t *testing.T) {
	cv := &recordingCanvas{}
	r := newTestRenderer(t, Layout{}, cv)
	_, err := r.RenderIssueReport(context.Background(), model.Project{}, model.Issue{ID: "i1"})
	require.NoError(t, err)

	var projectLine string
	for _, tx := range cv.texts {
		if strings.HasPrefix(tx.s, "Project:") {
			projectLine = tx.s
		}
	}
	assert.Equal(t, "Project: -", projectLine)
	assert.True(t, cv.hasText("Building/Unit: - / -"))
	assert.True(t, cv.hasText("Issue ID: i1"))
}

func TestRenderLogsPageCount(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cv := &recordingCanvas{}
	r, err := NewRenderer(Options{
		Labels:    model.LabelsFor("en"),
		Logger:    zap.New(core),
		NewCanvas: func(Layout) (Canvas, error) { return cv, nil },
	})
	require.NoError(t, err)

	_, err = r.RenderIssueReport(context.Background(), model.Project{Name: "P"}, model.Issue{ID: "i1"})
	require.NoError(t, err)

	entries := logs.FilterMessage("报告已生成").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "issue:i1", fields["doc"])
	assert.EqualValues(t, cv.pages, fields["pages"])
}

func TestNewRendererWarnsWithoutCJKFont(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	_, err := NewRenderer(Options{Labels: model.LabelsFor("zh"), Logger: zap.New(core)})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterField(zap.String("locale", "zh")).Len())

	core, logs = observer.New(zapcore.WarnLevel)
	_, err = NewRenderer(Options{Labels: model.LabelsFor("en"), Logger: zap.New(core)})
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestRenderWithPDFBackend(t *testing.T) {
	r, err := NewRenderer(Options{Labels: model.LabelsFor("en")})
	require.NoError(t, err)

	uri := pngDataURI(t)
	issues := []model.Issue{
		{ID: "a", Category: "Fire", Title: "extinguisher expired", Severity: model.SeverityMajor, Images: []string{uri}},
		{ID: "b", Category: "Fire", Title: "broken photo", Images: []string{"data:image/jpeg;base64,/9j/4AAQ"}},
	}
	data, err := r.RenderProjectReport(context.Background(), model.Project{Name: "Tower A"}, issues)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	data, err = r.RenderIssueReport(context.Background(), model.Project{Name: "Tower A"}, issues[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderProjectReportsBundle(t *testing.T) {
	cv := &recordingCanvas{}
	r := newTestRenderer(t, Layout{}, cv)

	projects := []model.Project{{ID: "p1", Name: "Tower/A"}}
	issues := []model.Issue{
		{ID: "a", ProjectID: "p1"},
		{ID: "b", ProjectID: "deleted"},
		{ID: "c", ProjectID: "p1"},
	}
	docs, err := r.RenderProjectReports(context.Background(), projects, issues)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Tower_A-inspection-report-2026-10-18.pdf", docs[0].Filename)
	assert.Equal(t, "deleted-inspection-report-2026-10-18.pdf", docs[1].Filename)

	var buf bytes.Buffer
	require.NoError(t, WriteZip(&buf, append(docs, docs[0])))
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{docs[0].Filename, docs[1].Filename, "1-" + docs[0].Filename}, names)

	_, err = r.RenderProjectReports(context.Background(), projects, nil)
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestFilenames(t *testing.T) {
	zh, err := NewRenderer(Options{Labels: model.LabelsFor("zh")})
	require.NoError(t, err)
	assert.Equal(t, "一号楼-查验报告-2026-10-18.pdf", zh.ProjectReportFilename("一号楼", "2026-10-18"))
	assert.Equal(t, "一号楼-整改单-i_1.pdf", zh.IssueReportFilename("一号楼", "i_1"))

	en, err := NewRenderer(Options{Labels: model.LabelsFor("en")})
	require.NoError(t, err)
	assert.Equal(t, "P1-inspection-report-2026-10-18.pdf", en.ProjectReportFilename("P1", "2026-10-18"))
	assert.Equal(t, "P1-remediation-i_1.pdf", en.IssueReportFilename("P1", "i_1"))
}

func TestWrapText(t *testing.T) {
	measure := func(s string) float64 { return float64(len([]rune(s))) }
	assert.Equal(t, []string{"hello", "world"}, wrapText("hello world", 7, measure))
	assert.Equal(t, []string{"卫生间渗", "漏"}, wrapText("卫生间渗漏", 4, measure))
	assert.Equal(t, []string{"a", "b"}, wrapText("a\nb", 10, measure))
	assert.Equal(t, []string{""}, wrapText("", 10, measure))
}
