package canvasrenderer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/tanzil/mushaf/layout"
	"github.com/tanzil/mushaf/renderer"
)

// Renderer measures and paints fitted pages via github.com/tdewolff/canvas.
// It is both the layout.Measurer backing the fit search and the PDF painter
// consuming its results, so measured and painted widths agree by construction.
type Renderer struct {
	baseDir string

	// injected font blobs by unique name (built-in:<name> sources)
	fontBlobs map[string][]byte

	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry

	// measure memoization; pure optimization, keyed by the full style tuple
	measureMu    sync.Mutex
	measureCache map[measureKey]float64
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

type measureKey struct {
	text          string
	font          string
	fontSize      float64
	letterSpacing float64
	wordSpacing   float64
}

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	Fonts   map[string]Resource // fonts accessible via built-in:<name>
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving
// font paths.
func NewRenderer(baseDir string) *Renderer {
	return NewRendererWithOptions(Options{BaseDir: baseDir})
}

// NewRendererWithOptions creates a renderer with injected font resources.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:      opts.BaseDir,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
		measureCache: map[measureKey]float64{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // ignore error here; caught when the font is actually used
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Measure implements layout.Measurer. The text is shaped as a single line (no
// wrapping); letter and word spacing contribute additively, exactly as the
// painter positions tokens. Widths are mm, fontSize is pt.
func (r *Renderer) Measure(text string, font layout.FontResource, fontSize, letterSpacing, wordSpacing float64) (float64, error) {
	if text == "" {
		return 0, nil
	}
	key := measureKey{text, fontCacheKey(font), fontSize, letterSpacing, wordSpacing}
	r.measureMu.Lock()
	if w, ok := r.measureCache[key]; ok {
		r.measureMu.Unlock()
		return w, nil
	}
	r.measureMu.Unlock()

	face, err := r.fontFace(font, fontSize)
	if err != nil {
		return 0, err
	}
	width := face.TextWidth(text) + spacingExtra(text, letterSpacing, wordSpacing)

	r.measureMu.Lock()
	r.measureCache[key] = width
	r.measureMu.Unlock()
	return width, nil
}

// spacingExtra is the additive width contribution of letter and word spacing.
func spacingExtra(text string, letterSpacing, wordSpacing float64) float64 {
	runes := utf8.RuneCountInString(text)
	spaces := strings.Count(text, " ")
	extra := wordSpacing * float64(spaces)
	if runes > 1 {
		extra += letterSpacing * float64(runes-1)
	}
	return extra
}

// Render renders the fitted pages into a single PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	p := result.Profile

	var buf bytes.Buffer
	writer := pdf.New(&buf, p.PageWidth, p.PageHeight, nil)
	writer.SetInfo(fmt.Sprintf("mushaf %s", p.Name), "", "", "", "mushaf")
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(p.PageWidth, p.PageHeight)
		}
		c := canvas.New(p.PageWidth, p.PageHeight)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, matching layout coordinates

		if err := r.drawPage(ctx, page, p); err != nil {
			return nil, fmt.Errorf("page %d: %w", page.Number, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.FittedPage, p layout.Profile) error {
	lineHeight := p.LineHeight()
	for i, fl := range page.Lines {
		if fl.Line.Empty() {
			continue
		}
		bandTop := p.Margin + float64(i)*lineHeight
		if err := r.drawLine(ctx, fl, p, bandTop); err != nil {
			return fmt.Errorf("line %d: %w", fl.Line.Index, err)
		}
	}
	return nil
}

func (r *Renderer) drawLine(ctx *canvas.Context, fl layout.FittedLine, p layout.Profile, bandTop float64) error {
	face, err := r.fontFace(p.Font, fl.Spec.FontSize)
	if err != nil {
		return err
	}
	baseline := bandTop + face.Metrics().Ascent

	if fl.Line.Role == layout.Centered {
		textLine := canvas.NewTextLine(face, fl.Line.Text, canvas.Center)
		ctx.DrawText(p.PageWidth/2, baseline, textLine)
		return nil
	}
	return r.drawJustified(ctx, face, fl, p, baseline)
}

// drawJustified paints an RTL body line token by token from the right margin,
// distributing the RenderSpec spacing into the inter-token gaps so the painted
// width equals the measured width.
func (r *Renderer) drawJustified(ctx *canvas.Context, face *canvas.FontFace, fl layout.FittedLine, p layout.Profile, baseline float64) error {
	text := fl.Line.Text
	tokens := strings.Fields(text)
	rightEdge := p.PageWidth - p.Margin

	if len(tokens) <= 1 || (fl.Spec.WordSpacing == 0 && fl.Spec.LetterSpacing == 0) {
		textLine := canvas.NewTextLine(face, text, canvas.Right)
		ctx.DrawText(rightEdge, baseline, textLine)
		return nil
	}

	gaps := len(tokens) - 1
	extra := spacingExtra(text, fl.Spec.LetterSpacing, fl.Spec.WordSpacing)
	gap := face.TextWidth(" ") + extra/float64(gaps)

	// Logical order runs right to left on the page.
	cursor := rightEdge
	for _, tok := range tokens {
		textLine := canvas.NewTextLine(face, tok, canvas.Right)
		ctx.DrawText(cursor, baseline, textLine)
		cursor -= face.TextWidth(tok) + gap
	}
	return nil
}

func (r *Renderer) fontFace(font layout.FontResource, sizePt float64) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, canvas.Hex("#1e1e1e"), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(font.Style)
	familyName := font.Name
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)

	data, err := r.loadFontBytes(font)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", font.Name, err)
	}

	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func (r *Renderer) loadFontBytes(font layout.FontResource) ([]byte, error) {
	if font.Src == "" {
		return nil, fmt.Errorf("字体 %s 缺少 src", font.Name)
	}
	src := font.Src
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("找不到内置字体资源 built-in:%s", name)
	}
	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return os.ReadFile(path)
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	return result
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%s|%s", font.Name, font.Src, font.Style)
}
